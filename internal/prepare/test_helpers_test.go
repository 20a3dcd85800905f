package prepare

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"horaris.manresa.cat/internal/logging"
	"horaris.manresa.cat/internal/schedule"
)

func quietLogger() *slog.Logger {
	return logging.NewStructuredLogger(io.Discard, slog.LevelError)
}

func builtinLayout(t *testing.T) *Layout {
	t.Helper()
	layout, err := DefaultLayout()
	require.NoError(t, err)
	return layout
}

func openFixture(t *testing.T, name string) *os.File {
	t.Helper()
	f, err := os.Open(filepath.Join("..", "..", "testdata", name))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func findSection(t *testing.T, doc *schedule.Document, id string) schedule.Section {
	t.Helper()
	for _, section := range doc.Sections {
		if section.ID == id {
			return section
		}
	}
	require.Failf(t, "section not found", "no section %q", id)
	return schedule.Section{}
}

func findDay(t *testing.T, section schedule.Section, name string) schedule.Day {
	t.Helper()
	for _, day := range section.Days {
		if day.Name == name {
			return day
		}
	}
	require.Failf(t, "day not found", "section %q has no day %q", section.ID, name)
	return schedule.Day{}
}

func tripIDs(trips []schedule.Trip) []schedule.TripID {
	ids := make([]schedule.TripID, len(trips))
	for i, trip := range trips {
		ids[i] = trip.TripID
	}
	return ids
}

const (
	weekday  = "Dilluns a divendres feiners, excepte agost"
	saturday = "Dissabtes i Festius"
	sunday   = "Diumenges, excepte festiu"
)
