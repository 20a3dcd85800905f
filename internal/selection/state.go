package selection

import (
	"maps"
	"net/url"
	"slices"
	"strings"
)

// Query parameters carrying the selection state between requests.
const (
	ParamPanel  = "panel"
	ParamFilter = "filter"
	ParamOpen   = "open"
	ParamEvent  = "do"
)

// State is the complete selection of one page view.
type State struct {
	// Active is the only visible panel.
	Active Key
	// Filters holds explicit service-type choices per panel id.
	Filters map[string]string
	// Expanded holds the ids of trips whose route is shown.
	Expanded map[string]bool
	// Focus is the element id that should receive focus after the last
	// transition. It is never carried between requests.
	Focus string
}

func (s State) clone() State {
	next := State{Active: s.Active, Focus: s.Focus}
	if s.Filters != nil {
		next.Filters = maps.Clone(s.Filters)
	}
	if s.Expanded != nil {
		next.Expanded = maps.Clone(s.Expanded)
	}
	return next
}

// IsActive reports whether k is the visible panel.
func (s State) IsActive(k Key) bool {
	return s.Active == k
}

// IsExpanded reports whether a trip's route is shown.
func (s State) IsExpanded(tripID string) bool {
	return s.Expanded[tripID]
}

// Field is one hidden form field that carries the state forward.
type Field struct {
	Name  string
	Value string
}

// Fields encodes the state as form fields in a stable order.
func (s State) Fields() []Field {
	var fields []Field
	if !s.Active.IsZero() {
		fields = append(fields, Field{Name: ParamPanel, Value: s.Active.PanelID()})
	}
	for _, panelID := range slices.Sorted(maps.Keys(s.Filters)) {
		fields = append(fields, Field{Name: ParamFilter, Value: panelID + ":" + s.Filters[panelID]})
	}
	for _, tripID := range slices.Sorted(maps.Keys(s.Expanded)) {
		if s.Expanded[tripID] {
			fields = append(fields, Field{Name: ParamOpen, Value: tripID})
		}
	}
	return fields
}

// Query encodes the state as URL query values.
func (s State) Query() url.Values {
	q := url.Values{}
	for _, f := range s.Fields() {
		q.Add(f.Name, f.Value)
	}
	return q
}

// Decode rebuilds a state from query values. Anything that does not name a
// known panel, service type or trip is dropped; a missing or unknown active
// panel falls back to the initial one.
func (c *Controller) Decode(q url.Values) State {
	s := c.Initial()

	if key, ok := c.Lookup(q.Get(ParamPanel)); ok {
		s.Active = key
	}

	for _, raw := range q[ParamFilter] {
		panelID, code, ok := strings.Cut(raw, ":")
		if !ok {
			continue
		}
		if _, known := c.byPanel[panelID]; !known || !slices.Contains(c.orders[panelID], code) {
			continue
		}
		if s.Filters == nil {
			s.Filters = make(map[string]string)
		}
		s.Filters[panelID] = code
	}

	for _, tripID := range q[ParamOpen] {
		if !c.KnowsTrip(tripID) {
			continue
		}
		if s.Expanded == nil {
			s.Expanded = make(map[string]bool)
		}
		s.Expanded[tripID] = true
	}

	return s
}

// Apply decodes the state carried by a request and applies the event it
// names, if any.
func (c *Controller) Apply(q url.Values) State {
	s := c.Decode(q)
	if raw := q.Get(ParamEvent); raw != "" {
		if e, ok := ParseEvent(raw); ok {
			s = c.Transition(s, e)
		}
	}
	return s
}
