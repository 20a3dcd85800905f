package webui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"horaris.manresa.cat/internal/schedule"
	"horaris.manresa.cat/internal/selection"
	"horaris.manresa.cat/internal/timetable"
)

const testTitle = "Horaris Manresa"

func readySnapshot(t *testing.T) timetable.Snapshot {
	t.Helper()
	manager := timetable.NewStaticManager(schedule.LoadFixture(t, "horaris.json"))
	return manager.Snapshot()
}

func visiblePanels(page Page) []Panel {
	var visible []Panel
	for _, panel := range page.Panels {
		if panel.Visible {
			visible = append(visible, panel)
		}
	}
	return visible
}

func TestBuildPageReady(t *testing.T) {
	snap := readySnapshot(t)
	state := snap.Controller.Initial()

	page := BuildPage(testTitle, snap, state, Options{})

	assert.True(t, page.Ready)
	assert.Empty(t, page.Status)
	assert.False(t, page.Refresh)
	require.Len(t, page.Panels, snap.Document.PanelCount())

	require.Len(t, page.Blocks, 2)
	assert.Equal(t, "picker-mb", page.Blocks[0].MountID)
	assert.Equal(t, "picker-mo", page.Blocks[1].MountID)
	assert.Len(t, page.Blocks[0].Controls, 3)
	assert.Len(t, page.Blocks[1].Controls, 1)

	visible := visiblePanels(page)
	require.Len(t, visible, 1, "exactly one panel is visible")
	assert.Equal(t, state.Active.PanelID(), visible[0].ID)
	assert.False(t, visible[0].FocusHeading, "initial render does not move focus")

	first := page.Blocks[0].Controls[0]
	assert.True(t, first.Selected)
	assert.Equal(t, "Manresa → Barcelona · Dilluns a divendres feiners, excepte agost", first.Label)
	assert.Equal(t, visible[0].ID, first.PanelID)

	groups := visible[0].Groups
	require.Len(t, groups, 2, "empty service lists are skipped")
	assert.Equal(t, "E 22", groups[0].Label)
	assert.Equal(t, "Semidirecte", groups[1].Label)
	require.Len(t, groups[0].Trips, 2)

	trip := groups[0].Trips[0]
	assert.Equal(t, "Sortida 06:30. Arribada 07:35. Servei E 22.", trip.Header)
	assert.Equal(t, "Recorregut: 06:30 MANRESA (Bases); 06:45 SANT VICENÇ DE CASTELLET; 07:35 BCN (Pl. Espanya).", trip.Route)
	assert.True(t, trip.Expanded, "routes are always shown without toggles")
	assert.False(t, trip.Expandable)
	assert.Nil(t, groups[0].Table)
	assert.Empty(t, trip.Stops)
}

func TestBuildPageEmptyDay(t *testing.T) {
	snap := readySnapshot(t)
	keys := snap.Controller.Keys()

	state := snap.Controller.Transition(snap.Controller.Initial(), selection.Event{
		Kind: selection.ActivatePanel, PanelID: keys[1].PanelID(),
	})
	page := BuildPage(testTitle, snap, state, Options{})

	visible := visiblePanels(page)
	require.Len(t, visible, 1)
	assert.Equal(t, keys[1].PanelID(), visible[0].ID)
	assert.True(t, visible[0].FocusHeading)
	assert.Empty(t, visible[0].Groups)
	assert.Equal(t, schedule.MessageNoSchedules, visible[0].Notice)
}

func TestBuildPageStates(t *testing.T) {
	testCases := []struct {
		name    string
		snap    timetable.Snapshot
		status  string
		refresh bool
	}{
		{
			name:    "loading",
			snap:    timetable.Snapshot{State: timetable.Loading},
			status:  schedule.MessageLoading,
			refresh: true,
		},
		{
			name:   "fetch failure",
			snap:   timetable.Snapshot{State: timetable.Errored, Err: &schedule.FetchFailure{StatusCode: 404}},
			status: "Error carregant dades (HTTP 404).",
		},
		{
			name: "schema failure",
			snap: timetable.Snapshot{State: timetable.Errored, Err: &schedule.SchemaFailure{
				Field: "sections", Reason: schedule.ReasonMissing,
			}},
			status: `Dades no vàlides: el camp "sections" no hi és.`,
		},
		{
			name:   "unclassified failure",
			snap:   timetable.Snapshot{State: timetable.Errored, Err: errors.New("boom")},
			status: schedule.MessageRenderError,
		},
		{
			name:   "no sections",
			snap:   timetable.NewStaticManager(&schedule.Document{Sections: []schedule.Section{}}).Snapshot(),
			status: schedule.MessageNoData,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			page := BuildPage(testTitle, tc.snap, selection.State{}, Options{})

			assert.False(t, page.Ready)
			assert.Equal(t, tc.status, page.Status)
			assert.Equal(t, tc.refresh, page.Refresh)
			assert.Empty(t, page.Panels)
			assert.Empty(t, page.Blocks)
		})
	}
}

func TestBuildPageServiceFilter(t *testing.T) {
	snap := readySnapshot(t)
	c := snap.Controller
	opts := Options{ServiceFilter: true}

	state := c.Initial()
	page := BuildPage(testTitle, snap, state, opts)
	panel := visiblePanels(page)[0]

	require.Len(t, panel.Filters, 2)
	assert.Equal(t, "e22", panel.Filters[0].Code)
	assert.True(t, panel.Filters[0].Selected, "the first service type is the default filter")
	assert.False(t, panel.Filters[1].Selected)
	require.Len(t, panel.Groups, 1)
	assert.Equal(t, "e22", panel.Groups[0].Code)

	state = c.Transition(state, selection.Event{Kind: selection.SelectFilter, PanelID: panel.ID, Code: "semidirecte"})
	page = BuildPage(testTitle, snap, state, opts)
	panel = visiblePanels(page)[0]

	assert.False(t, panel.Filters[0].Selected)
	assert.True(t, panel.Filters[1].Selected)
	assert.True(t, panel.Filters[1].Focus)
	require.Len(t, panel.Groups, 1)
	assert.Equal(t, "semidirecte", panel.Groups[0].Code)
	assert.Empty(t, panel.Notice)
}

func TestBuildPageExpandableTrips(t *testing.T) {
	snap := readySnapshot(t)
	c := snap.Controller
	opts := Options{ExpandableTrips: true, StopList: true, Table: true}

	state := c.Initial()
	page := BuildPage(testTitle, snap, state, opts)
	trip := visiblePanels(page)[0].Groups[0].Trips[0]

	assert.True(t, trip.Expandable)
	assert.False(t, trip.Expanded, "trips start collapsed")
	assert.Equal(t, "toggle_"+trip.ID, trip.ToggleID)
	assert.Equal(t, []string{
		"06:30 MANRESA (Bases)",
		"06:45 SANT VICENÇ DE CASTELLET",
		"07:35 BCN (Pl. Espanya)",
	}, trip.Stops)

	state = c.Transition(state, selection.Event{Kind: selection.ToggleTrip, TripID: trip.ID})
	page = BuildPage(testTitle, snap, state, opts)
	group := visiblePanels(page)[0].Groups[0]

	assert.True(t, group.Trips[0].Expanded)
	assert.True(t, group.Trips[0].Focus)
	assert.False(t, group.Trips[1].Expanded, "toggling one trip leaves the others alone")

	require.NotNil(t, group.Table)
	assert.Equal(t, "Taula d'horaris E 22", group.Table.Caption)
	assert.Len(t, group.Table.Rows, 2)
}
