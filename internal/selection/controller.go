package selection

import (
	"slices"

	"horaris.manresa.cat/internal/schedule"
)

// Binding ties one picker control to the panel it activates.
type Binding struct {
	ControlID    string
	Target       Key
	Block        Block
	SectionIndex int
	DayIndex     int
}

// Controller holds the addressable panels of a document and decides
// transitions between selection states. It never changes after
// construction and is safe for concurrent use.
type Controller struct {
	bindings []Binding
	byPanel  map[string]int
	orders   map[string][]string
	trips    map[string]struct{}
}

// NewController builds the bindings for every section/day pair in document
// order, together with the service orders and trip ids each panel exposes.
func NewController(doc *schedule.Document) *Controller {
	c := &Controller{
		byPanel: make(map[string]int),
		orders:  make(map[string][]string),
		trips:   make(map[string]struct{}),
	}
	if doc == nil {
		return c
	}

	for si, section := range doc.Sections {
		order := section.ServiceOrder()
		for di, day := range section.Days {
			key := Key{SectionID: section.ID, DayName: day.Name}
			c.byPanel[key.PanelID()] = len(c.bindings)
			c.orders[key.PanelID()] = order
			c.bindings = append(c.bindings, Binding{
				ControlID:    key.ControlID(),
				Target:       key,
				Block:        BlockFor(section.ID),
				SectionIndex: si,
				DayIndex:     di,
			})

			for _, code := range order {
				for i := range day.TripsFor(code) {
					c.trips[TripID(key, code, i)] = struct{}{}
				}
			}
		}
	}

	return c
}

// Bindings returns every picker binding in document order.
func (c *Controller) Bindings() []Binding {
	return slices.Clone(c.bindings)
}

// BindingsFor returns the bindings placed in block b, in document order.
func (c *Controller) BindingsFor(b Block) []Binding {
	var out []Binding
	for _, binding := range c.bindings {
		if binding.Block == b {
			out = append(out, binding)
		}
	}
	return out
}

// Keys returns every addressable panel key in document order.
func (c *Controller) Keys() []Key {
	keys := make([]Key, len(c.bindings))
	for i, b := range c.bindings {
		keys[i] = b.Target
	}
	return keys
}

// Lookup finds the key of a panel id.
func (c *Controller) Lookup(panelID string) (Key, bool) {
	i, ok := c.byPanel[panelID]
	if !ok {
		return Key{}, false
	}
	return c.bindings[i].Target, true
}

// KnowsTrip reports whether tripID names a rendered trip.
func (c *Controller) KnowsTrip(tripID string) bool {
	_, ok := c.trips[tripID]
	return ok
}

// ServiceOrder returns the service types a panel renders, in order.
func (c *Controller) ServiceOrder(panelID string) []string {
	return c.orders[panelID]
}

// Initial is the state on first load: the first panel in document order is
// active, every filter is at its default and every trip is collapsed.
func (c *Controller) Initial() State {
	s := State{}
	if len(c.bindings) > 0 {
		s.Active = c.bindings[0].Target
	}
	return s
}

// Filter returns the service type selected in a panel. Without an explicit
// choice the first type of the panel's order applies.
func (c *Controller) Filter(s State, panelID string) string {
	if code, ok := s.Filters[panelID]; ok {
		return code
	}
	order := c.orders[panelID]
	if len(order) == 0 {
		return ""
	}
	return order[0]
}

// Transition applies one event to a state and returns the new state. The
// input state is left untouched. Events naming unknown panels, service
// types or trips produce an unchanged copy.
func (c *Controller) Transition(s State, e Event) State {
	next := s.clone()
	next.Focus = ""

	switch e.Kind {
	case ActivatePanel:
		key, ok := c.Lookup(e.PanelID)
		if !ok {
			return next
		}
		next.Active = key
		next.Focus = key.HeadingID()

	case SelectFilter:
		key, ok := c.Lookup(e.PanelID)
		if !ok || !slices.Contains(c.orders[e.PanelID], e.Code) {
			return next
		}
		if next.Filters == nil {
			next.Filters = make(map[string]string)
		}
		next.Filters[e.PanelID] = e.Code
		next.Focus = FilterControlID(key, e.Code)

	case ToggleTrip:
		if !c.KnowsTrip(e.TripID) {
			return next
		}
		if next.Expanded == nil {
			next.Expanded = make(map[string]bool)
		}
		if next.Expanded[e.TripID] {
			delete(next.Expanded, e.TripID)
		} else {
			next.Expanded[e.TripID] = true
		}
		next.Focus = ToggleID(e.TripID)
	}

	return next
}

// Dispatch activates the panel bound to a picker control id.
func (c *Controller) Dispatch(s State, controlID string) State {
	for _, b := range c.bindings {
		if b.ControlID == controlID {
			return c.Transition(s, Event{Kind: ActivatePanel, PanelID: b.Target.PanelID()})
		}
	}
	return s.clone()
}
