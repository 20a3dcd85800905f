// Package format builds the spoken-friendly labels and sentences of the
// timetable page. Every function here is pure.
package format

import (
	"strings"

	"horaris.manresa.cat/internal/schedule"
)

// ServiceTypeLabel maps a service-type code to its spoken label. The
// mapping is closed: every code other than the two express lines is read
// as a semi-direct service.
func ServiceTypeLabel(code string) string {
	switch code {
	case "e22":
		return "E 22"
	case "e23":
		return "E 23"
	default:
		return "Semidirecte"
	}
}

// TripHeader formats a trip as one sentence: departure, arrival, service.
func TripHeader(trip schedule.Trip, code string) string {
	return "Sortida " + trip.StartTime + ". Arribada " + trip.EndTime + ". Servei " + ServiceTypeLabel(code) + "."
}

// RouteSentence reads a trip's itinerary as continuous prose, e.g.
// "Recorregut: 08:00 A; 08:10 B."
func RouteSentence(stops []schedule.Stop) string {
	parts := make([]string, len(stops))
	for i, s := range stops {
		parts[i] = s.Time + " " + s.Stop
	}
	return "Recorregut: " + strings.Join(parts, "; ") + "."
}

// StopLine is one entry of the stop-by-stop breakdown.
func StopLine(s schedule.Stop) string {
	return s.Time + " " + s.Stop
}

// PanelHeading names the section and day of a panel.
func PanelHeading(title, day string) string {
	return title + " — " + day
}

// PickerLabel is the visible text of a panel's picker button.
func PickerLabel(title, day string) string {
	return title + " · " + day
}
