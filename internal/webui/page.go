package webui

import (
	"fmt"

	"horaris.manresa.cat/internal/format"
	"horaris.manresa.cat/internal/schedule"
	"horaris.manresa.cat/internal/selection"
	"horaris.manresa.cat/internal/timetable"
)

// Page is everything the page template needs.
type Page struct {
	Title   string
	Status  string
	Refresh bool
	Ready   bool
	Fields  []selection.Field
	Blocks  []PickerBlock
	Panels  []Panel
}

// PickerBlock is the content of one picker mount region.
type PickerBlock struct {
	MountID  string
	Label    string
	Controls []PickerControl
}

type PickerControl struct {
	ID       string
	Label    string
	PanelID  string
	Event    string
	Selected bool
}

type Panel struct {
	ID           string
	HeadingID    string
	Heading      string
	Visible      bool
	FocusHeading bool
	Filters      []FilterControl
	Groups       []ServiceGroup
	Notice       string
}

type FilterControl struct {
	ID       string
	Label    string
	Code     string
	Event    string
	Selected bool
	Focus    bool
}

type ServiceGroup struct {
	Code      string
	Label     string
	HeadingID string
	Trips     []TripView
	Table     *Table
}

type TripView struct {
	ID         string
	ToggleID   string
	Header     string
	Route      string
	Event      string
	Expandable bool
	Expanded   bool
	Focus      bool
	Stops      []string
}

var blockLabels = map[selection.Block]string{
	selection.BlockA: "Manresa i Barcelona",
	selection.BlockB: "Olesa, Monistrol i Barcelona",
}

// BuildPage applies a selection state to a snapshot of the schedule. Only the
// ready state produces panels; every other state yields a status message.
func BuildPage(title string, snap timetable.Snapshot, state selection.State, opts Options) Page {
	page := Page{Title: title}

	switch snap.State {
	case timetable.Loading:
		page.Status = schedule.MessageLoading
		page.Refresh = true
		return page
	case timetable.Errored:
		page.Status = schedule.StatusMessage(snap.Err)
		return page
	}

	if snap.Document.IsEmpty() {
		page.Status = schedule.MessageNoData
		return page
	}

	page.Ready = true
	page.Fields = state.Fields()
	page.Blocks = buildPickers(snap.Controller, snap.Document, state)

	for _, binding := range snap.Controller.Bindings() {
		section := snap.Document.Sections[binding.SectionIndex]
		day := section.Days[binding.DayIndex]
		page.Panels = append(page.Panels, buildPanel(snap.Controller, section, day, binding.Target, state, opts))
	}

	return page
}

func buildPickers(c *selection.Controller, doc *schedule.Document, state selection.State) []PickerBlock {
	blocks := []PickerBlock{
		{MountID: selection.BlockA.MountID(), Label: blockLabels[selection.BlockA]},
		{MountID: selection.BlockB.MountID(), Label: blockLabels[selection.BlockB]},
	}

	for _, binding := range c.Bindings() {
		section := doc.Sections[binding.SectionIndex]
		key := binding.Target
		control := PickerControl{
			ID:       binding.ControlID,
			Label:    format.PickerLabel(section.Title, key.DayName),
			PanelID:  key.PanelID(),
			Event:    selection.Event{Kind: selection.ActivatePanel, PanelID: key.PanelID()}.Encode(),
			Selected: state.IsActive(key),
		}
		blocks[binding.Block].Controls = append(blocks[binding.Block].Controls, control)
	}

	return blocks
}

func buildPanel(c *selection.Controller, section schedule.Section, day schedule.Day, key selection.Key, state selection.State, opts Options) Panel {
	panel := Panel{
		ID:        key.PanelID(),
		HeadingID: key.HeadingID(),
		Heading:   format.PanelHeading(section.Title, day.Name),
		Visible:   state.IsActive(key),
	}
	panel.FocusHeading = panel.Visible && state.Focus == panel.HeadingID

	order := section.ServiceOrder()

	if opts.ServiceFilter {
		active := c.Filter(state, panel.ID)
		for _, code := range order {
			id := selection.FilterControlID(key, code)
			panel.Filters = append(panel.Filters, FilterControl{
				ID:       id,
				Label:    format.ServiceTypeLabel(code),
				Code:     code,
				Event:    selection.Event{Kind: selection.SelectFilter, PanelID: panel.ID, Code: code}.Encode(),
				Selected: code == active,
				Focus:    state.Focus == id,
			})
		}
		if trips := day.TripsFor(active); len(trips) > 0 {
			panel.Groups = append(panel.Groups, buildGroup(key, active, trips, state, opts))
		}
	} else {
		for _, code := range order {
			if trips := day.TripsFor(code); len(trips) > 0 {
				panel.Groups = append(panel.Groups, buildGroup(key, code, trips, state, opts))
			}
		}
	}

	if len(panel.Groups) == 0 {
		panel.Notice = schedule.MessageNoSchedules
	}

	return panel
}

func buildGroup(key selection.Key, code string, trips []schedule.Trip, state selection.State, opts Options) ServiceGroup {
	group := ServiceGroup{
		Code:      code,
		Label:     format.ServiceTypeLabel(code),
		HeadingID: "group_" + format.Sanitize(key.String()+"__"+code),
		Trips:     make([]TripView, 0, len(trips)),
	}

	for i, trip := range trips {
		id := selection.TripID(key, code, i)
		view := TripView{
			ID:         id,
			ToggleID:   selection.ToggleID(id),
			Header:     format.TripHeader(trip, code),
			Route:      format.RouteSentence(trip.Stops),
			Event:      selection.Event{Kind: selection.ToggleTrip, TripID: id}.Encode(),
			Expandable: opts.ExpandableTrips,
			Expanded:   !opts.ExpandableTrips || state.IsExpanded(id),
			Focus:      state.Focus == selection.ToggleID(id),
		}
		if opts.StopList {
			for _, stop := range trip.Stops {
				view.Stops = append(view.Stops, format.StopLine(stop))
			}
		}
		group.Trips = append(group.Trips, view)
	}

	if opts.Table {
		group.Table = BuildTable(fmt.Sprintf("Taula d'horaris %s", group.Label), trips)
	}

	return group
}
