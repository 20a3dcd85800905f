package selection

import "strings"

// EventKind names a user interaction.
type EventKind int

const (
	ActivatePanel EventKind = iota + 1
	SelectFilter
	ToggleTrip
)

// Event is one user interaction, as submitted by a page control.
type Event struct {
	Kind    EventKind
	PanelID string
	Code    string
	TripID  string
}

// Encode renders the event as the value of the "do" form field.
func (e Event) Encode() string {
	switch e.Kind {
	case ActivatePanel:
		return "panel:" + e.PanelID
	case SelectFilter:
		return "filter:" + e.PanelID + ":" + e.Code
	case ToggleTrip:
		return "toggle:" + e.TripID
	default:
		return ""
	}
}

// ParseEvent decodes a "do" form field.
func ParseEvent(raw string) (Event, bool) {
	kind, rest, ok := strings.Cut(raw, ":")
	if !ok || rest == "" {
		return Event{}, false
	}

	switch kind {
	case "panel":
		return Event{Kind: ActivatePanel, PanelID: rest}, true
	case "filter":
		panelID, code, ok := strings.Cut(rest, ":")
		if !ok || panelID == "" || code == "" {
			return Event{}, false
		}
		return Event{Kind: SelectFilter, PanelID: panelID, Code: code}, true
	case "toggle":
		return Event{Kind: ToggleTrip, TripID: rest}, true
	default:
		return Event{}, false
	}
}
