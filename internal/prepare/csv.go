package prepare

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/gocarina/gocsv"

	"horaris.manresa.cat/internal/schedule"
)

// RequiredColumns are the header names of the origin/destination matrix.
var RequiredColumns = []string{
	"Tipus_bus",
	"Tipus_dia",
	"Direccio",
	"Parada_sortida",
	"Hora_sortida",
	"Parada_arribada",
	"Hora_arribada",
	"Id_viatge_dia",
}

// matrixRow is one origin/destination pair of a trip. The matrix holds
// every pair of a trip, not only consecutive stops.
type matrixRow struct {
	BusType   string `csv:"Tipus_bus"`
	DayType   string `csv:"Tipus_dia"`
	Direction string `csv:"Direccio"`
	FromStop  string `csv:"Parada_sortida"`
	FromTime  string `csv:"Hora_sortida"`
	ToStop    string `csv:"Parada_arribada"`
	ToTime    string `csv:"Hora_arribada"`
	TripID    string `csv:"Id_viatge_dia"`
}

// MissingColumnsError names every required column absent from the header.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing column(s): %s", strings.Join(e.Columns, ", "))
}

const utf8BOM = "\ufeff"

type tripKey struct {
	day       string
	direction string
	busType   string
	tripID    string
}

func init() {
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		csvReader := csv.NewReader(in)
		csvReader.FieldsPerRecord = -1
		csvReader.TrimLeadingSpace = true
		return csvReader
	})
}

func checkHeader(data []byte) error {
	header, err := csv.NewReader(bytes.NewReader(data)).Read()
	if err != nil {
		return fmt.Errorf("reading CSV header: %w", err)
	}

	present := make(map[string]bool, len(header))
	for _, name := range header {
		present[strings.TrimSpace(strings.TrimPrefix(name, utf8BOM))] = true
	}

	var missing []string
	for _, name := range RequiredColumns {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Columns: missing}
	}
	return nil
}

// ImportCSV rebuilds trips from an origin/destination matrix. For each trip
// every (stop, time) pair is collected, the earliest time per stop is kept
// and the stops are ordered by time.
func ImportCSV(r io.Reader, layout *Layout, logger *slog.Logger) (*schedule.Document, error) {
	if logger == nil {
		logger = slog.Default()
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte(utf8BOM))

	if err := checkHeader(data); err != nil {
		return nil, err
	}

	var rows []*matrixRow
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}

	groups := make(map[tripKey]*stopCollector)
	for _, row := range rows {
		key := tripKey{
			day:       row.DayType,
			direction: row.Direction,
			busType:   row.BusType,
			tripID:    row.TripID,
		}
		collector, ok := groups[key]
		if !ok {
			collector = newStopCollector()
			groups[key] = collector
		}

		if strings.TrimSpace(row.FromStop) == "" || strings.TrimSpace(row.ToStop) == "" {
			continue
		}
		fromTime, toTime := NormalizeClock(row.FromTime), NormalizeClock(row.ToTime)
		if _, ok := Minutes(fromTime); !ok {
			continue
		}
		if _, ok := Minutes(toTime); !ok {
			continue
		}
		collector.add(row.FromStop, fromTime)
		collector.add(row.ToStop, toTime)
	}

	keys := make([]tripKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.day != b.day {
			return a.day < b.day
		}
		if a.direction != b.direction {
			return a.direction < b.direction
		}
		if a.busType != b.busType {
			return a.busType < b.busType
		}
		return a.tripID < b.tripID
	})

	b := newBuilder(layout)
	skippedDays, shortTrips, placed := 0, 0, 0

	for _, key := range keys {
		day := layout.DayBucket(key.day)
		if !b.knowsDay(day) {
			skippedDays++
			continue
		}

		stops := groups[key].stops()
		if len(stops) < 2 {
			shortTrips++
			continue
		}

		code := ClassifyBusType(stops, key.busType)
		id := schedule.TripID(strings.TrimSpace(key.tripID))

		for _, section := range layout.Sections {
			if section.Direction != strings.TrimSpace(key.direction) {
				continue
			}
			if sub, ok := span(stops, section.From, section.To); ok {
				b.add(section, day, code, id, sub)
				placed++
			}
		}
	}

	logger.Info("csv import finished",
		slog.Int("rows", len(rows)),
		slog.Int("trips", len(keys)),
		slog.Int("placed", placed),
		slog.Int("unknown_day", skippedDays),
		slog.Int("too_short", shortTrips))

	return b.document(), nil
}
