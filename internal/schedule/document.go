// Package schedule holds the timetable document served to the page: its
// shape, parsing and schema validation, and the failure kinds reported
// to the reader when the document cannot be shown.
package schedule

import (
	"encoding/json"
	"strconv"
)

// DefaultBusTypeOrder applies to sections that do not declare busTypeOrder.
var DefaultBusTypeOrder = []string{"e22", "e23", "semidirecte"}

// Document is the top-level schedule container.
type Document struct {
	Sections []Section `json:"sections"`
}

// Section is one travel direction.
type Section struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	BusTypeOrder []string `json:"busTypeOrder,omitempty"`
	Days         []Day    `json:"days"`
}

// Day is a named day-type bucket inside a section.
type Day struct {
	Name  string            `json:"name"`
	Buses map[string][]Trip `json:"buses"`
}

// Trip is one scheduled run. Stops are in itinerary order.
type Trip struct {
	TripID    TripID `json:"trip_id,omitempty"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Stops     []Stop `json:"stops"`
}

// Stop is a stop name and the time the trip reaches it.
type Stop struct {
	Time string `json:"time"`
	Stop string `json:"stop"`
}

// TripID is the identifier the preparation tool attaches to a trip. It is
// written as a JSON number when it is all digits and as a string otherwise.
type TripID string

func (id TripID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseUint(string(id), 10, 64); err == nil {
		return []byte(strconv.FormatUint(n, 10)), nil
	}
	return json.Marshal(string(id))
}

func (id *TripID) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = TripID(s)
		return nil
	}
	if string(b) == "null" {
		*id = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = TripID(n.String())
	return nil
}

// ServiceOrder returns the section's declared service-type order, or the
// default order when none was declared. An explicitly empty list stays empty.
func (s Section) ServiceOrder() []string {
	if s.BusTypeOrder == nil {
		return DefaultBusTypeOrder
	}
	return s.BusTypeOrder
}

// TripsFor returns the trips of a service type. Absent and empty lists are
// both reported as nil.
func (d Day) TripsFor(code string) []Trip {
	trips := d.Buses[code]
	if len(trips) == 0 {
		return nil
	}
	return trips
}

// HasTrips reports whether any service type in order has a trip that day.
func (d Day) HasTrips(order []string) bool {
	for _, code := range order {
		if len(d.TripsFor(code)) > 0 {
			return true
		}
	}
	return false
}

// IsEmpty reports the "no data" state: a valid document without sections.
func (doc *Document) IsEmpty() bool {
	return doc == nil || len(doc.Sections) == 0
}

// PanelCount is the number of section/day combinations in the document.
func (doc *Document) PanelCount() int {
	if doc == nil {
		return 0
	}
	count := 0
	for _, section := range doc.Sections {
		count += len(section.Days)
	}
	return count
}
