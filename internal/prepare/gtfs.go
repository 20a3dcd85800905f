package prepare

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/jamespfennell/gtfs"

	"horaris.manresa.cat/internal/schedule"
)

var weekdayNames = map[string]func(*gtfs.Service) bool{
	"monday":    func(s *gtfs.Service) bool { return s.Monday },
	"tuesday":   func(s *gtfs.Service) bool { return s.Tuesday },
	"wednesday": func(s *gtfs.Service) bool { return s.Wednesday },
	"thursday":  func(s *gtfs.Service) bool { return s.Thursday },
	"friday":    func(s *gtfs.Service) bool { return s.Friday },
	"saturday":  func(s *gtfs.Service) bool { return s.Saturday },
	"sunday":    func(s *gtfs.Service) bool { return s.Sunday },
}

// runsOn reports whether a service operates on any weekday of the day.
func runsOn(service *gtfs.Service, day DayLayout) bool {
	if service == nil {
		return false
	}
	for _, weekday := range day.Weekdays {
		if check, ok := weekdayNames[strings.ToLower(weekday)]; ok && check(service) {
			return true
		}
	}
	return false
}

func scheduledStops(trip *gtfs.ScheduledTrip) []schedule.Stop {
	stopTimes := append([]gtfs.ScheduledStopTime(nil), trip.StopTimes...)
	sort.SliceStable(stopTimes, func(i, j int) bool {
		return stopTimes[i].StopSequence < stopTimes[j].StopSequence
	})

	stops := make([]schedule.Stop, 0, len(stopTimes))
	for _, st := range stopTimes {
		if st.Stop == nil {
			continue
		}
		at := st.DepartureTime
		if at == 0 {
			at = st.ArrivalTime
		}
		stops = append(stops, schedule.Stop{Time: formatOffset(at), Stop: strings.TrimSpace(st.Stop.Name)})
	}
	return stops
}

// ImportGTFS builds a document from a GTFS static feed. A section takes the
// trips that call at one of its From stops and later at one of its To
// stops; the route short name, mapped through the layout, gives the
// service type.
func ImportGTFS(feed []byte, layout *Layout, logger *slog.Logger) (*schedule.Document, error) {
	if logger == nil {
		logger = slog.Default()
	}

	static, err := gtfs.ParseStatic(feed, gtfs.ParseStaticOptions{})
	if err != nil {
		return nil, fmt.Errorf("error parsing GTFS data: %w", err)
	}

	b := newBuilder(layout)
	placed := 0

	for i := range static.Trips {
		trip := &static.Trips[i]
		if trip.Route == nil {
			continue
		}

		stops := scheduledStops(trip)
		if len(stops) < 2 {
			continue
		}

		raw := trip.Route.ShortName
		if mapped, ok := layout.GTFSRoutes[raw]; ok {
			raw = mapped
		}
		code := ClassifyBusType(stops, raw)

		for _, section := range layout.Sections {
			from, to := section.From, section.To
			if section.GTFS != nil {
				from, to = section.GTFS.From, section.GTFS.To
			}
			if len(from) == 0 && len(to) == 0 {
				continue
			}
			sub, ok := span(stops, from, to)
			if !ok {
				continue
			}
			for _, day := range layout.Days {
				if runsOn(trip.Service, day) {
					b.add(section, day.Name, code, schedule.TripID(trip.ID), sub)
					placed++
				}
			}
		}
	}

	logger.Info("gtfs import finished",
		slog.Int("routes", len(static.Routes)),
		slog.Int("stops", len(static.Stops)),
		slog.Int("trips", len(static.Trips)),
		slog.Int("placed", placed),
		slog.Int("warnings", len(static.Warnings)))

	return b.document(), nil
}
