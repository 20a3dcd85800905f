// Package selection models which part of the timetable the reader is
// looking at: the active section/day panel, the service filter of each
// panel and the expanded trips. Transitions are pure functions over State;
// rendering applies the resulting state to the page.
package selection

import (
	"strconv"

	"horaris.manresa.cat/internal/format"
)

// Key addresses one panel: a section and one of its days.
type Key struct {
	SectionID string
	DayName   string
}

func (k Key) String() string {
	return k.SectionID + "__" + k.DayName
}

// IsZero reports whether k addresses no panel.
func (k Key) IsZero() bool {
	return k.SectionID == "" && k.DayName == ""
}

// PanelID is the element id of the panel addressed by k.
func (k Key) PanelID() string {
	return "panel_" + format.Sanitize(k.String())
}

// HeadingID is the element id of the panel heading that receives focus.
func (k Key) HeadingID() string {
	return "heading_" + format.Sanitize(k.String())
}

// ControlID is the element id of the picker button for k.
func (k Key) ControlID() string {
	return "pick_" + format.Sanitize(k.String())
}

// TripID is the element id of a trip's route content. index is the trip's
// position inside its service-type list.
func TripID(k Key, code string, index int) string {
	return "trip_" + format.Sanitize(k.String()+"__"+code+"__"+strconv.Itoa(index+1))
}

// ToggleID is the element id of the button that expands a trip.
func ToggleID(tripID string) string {
	return "toggle_" + tripID
}

// FilterControlID is the element id of a panel's service filter button.
func FilterControlID(k Key, code string) string {
	return "filter_" + format.Sanitize(k.String()) + "__" + format.Sanitize(code)
}

// Block groups picker buttons by direction.
type Block int

const (
	// BlockA holds the Manresa ⇄ Barcelona directions.
	BlockA Block = iota
	// BlockB holds every other direction.
	BlockB
)

// BlockFor places a section in its picker block. Only the two Manresa
// directions belong to block A.
func BlockFor(sectionID string) Block {
	switch sectionID {
	case "m2b", "b2m":
		return BlockA
	default:
		return BlockB
	}
}

// MountID is the id of the page region that hosts the block's pickers.
func (b Block) MountID() string {
	if b == BlockA {
		return "picker-mb"
	}
	return "picker-mo"
}

func (b Block) String() string {
	if b == BlockA {
		return "A"
	}
	return "B"
}
