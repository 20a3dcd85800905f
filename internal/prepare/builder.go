package prepare

import (
	"sort"

	"horaris.manresa.cat/internal/schedule"
)

// builder accumulates trips into the layout's section/day/service slots.
type builder struct {
	layout *Layout
	slots  map[string]map[string]map[string][]schedule.Trip
}

func newBuilder(layout *Layout) *builder {
	b := &builder{
		layout: layout,
		slots:  make(map[string]map[string]map[string][]schedule.Trip),
	}
	for _, section := range layout.Sections {
		days := make(map[string]map[string][]schedule.Trip)
		for _, day := range layout.Days {
			buses := make(map[string][]schedule.Trip)
			for _, code := range layout.ServiceTypes {
				buses[code] = []schedule.Trip{}
			}
			days[day.Name] = buses
		}
		b.slots[section.ID] = days
	}
	return b
}

func (b *builder) knowsDay(day string) bool {
	return b.layout.dayIndex(day) >= 0
}

// add files a trip made of stops (at least two) under a section.
func (b *builder) add(section SectionLayout, day, code string, id schedule.TripID, stops []schedule.Stop) {
	code = b.layout.allowed(section, code)
	trip := schedule.Trip{
		TripID:    id,
		StartTime: stops[0].Time,
		EndTime:   stops[len(stops)-1].Time,
		Stops:     append([]schedule.Stop(nil), stops...),
	}
	b.slots[section.ID][day][code] = append(b.slots[section.ID][day][code], trip)
}

// document sorts every trip list by start time, then trip id, and lays the
// sections and days out in layout order.
func (b *builder) document() *schedule.Document {
	doc := &schedule.Document{Sections: make([]schedule.Section, 0, len(b.layout.Sections))}

	for _, sl := range b.layout.Sections {
		section := schedule.Section{
			ID:           sl.ID,
			Title:        sl.Title,
			BusTypeOrder: append([]string(nil), sl.BusTypeOrder...),
			Days:         make([]schedule.Day, 0, len(b.layout.Days)),
		}
		for _, dl := range b.layout.Days {
			buses := b.slots[sl.ID][dl.Name]
			for _, trips := range buses {
				sortTrips(trips)
			}
			section.Days = append(section.Days, schedule.Day{Name: dl.Name, Buses: buses})
		}
		doc.Sections = append(doc.Sections, section)
	}

	return doc
}

func sortTrips(trips []schedule.Trip) {
	key := func(t schedule.Trip) int {
		if m, ok := Minutes(t.StartTime); ok {
			return m
		}
		return 1 << 30
	}
	sort.SliceStable(trips, func(i, j int) bool {
		ki, kj := key(trips[i]), key(trips[j])
		if ki != kj {
			return ki < kj
		}
		return trips[i].TripID < trips[j].TripID
	})
}
