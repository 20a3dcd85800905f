// Package prepare builds schedule documents from operator exports: the
// origin/destination CSV matrix and GTFS static feeds.
package prepare

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed default_layout.yaml
var defaultLayout []byte

// Casers are stateful and must not be shared.
func upper(s string) string { return cases.Upper(language.Catalan).String(s) }

func lower(s string) string { return cases.Lower(language.Catalan).String(s) }

// Layout describes the document to produce: its day buckets, its sections
// and how source trips are routed into them.
type Layout struct {
	ServiceTypes []string          `yaml:"service_types"`
	Fallback     string            `yaml:"fallback"`
	Days         []DayLayout       `yaml:"days"`
	DayRules     []DayRule         `yaml:"day_rules"`
	GTFSRoutes   map[string]string `yaml:"gtfs_routes"`
	Sections     []SectionLayout   `yaml:"sections"`
}

type DayLayout struct {
	Name     string   `yaml:"name"`
	Weekdays []string `yaml:"weekdays"`
}

// DayRule buckets a free-form day label that mentions Contains into Day.
type DayRule struct {
	Contains string `yaml:"contains"`
	Day      string `yaml:"day"`
}

type SectionLayout struct {
	ID           string   `yaml:"id"`
	Title        string   `yaml:"title"`
	BusTypeOrder []string `yaml:"bus_type_order"`
	// Direction is the Direccio value of the CSV rows feeding the section.
	Direction string `yaml:"direction"`
	// From and To slice a trip between the first stop matching a From
	// prefix and the last stop matching a To prefix. When both are empty
	// the whole trip is used.
	From []string `yaml:"from"`
	To   []string `yaml:"to"`
	// GTFS overrides From and To for the GTFS importer.
	GTFS *StopSpan `yaml:"gtfs"`
}

type StopSpan struct {
	From []string `yaml:"from"`
	To   []string `yaml:"to"`
}

// DefaultLayout returns the built-in layout.
func DefaultLayout() (*Layout, error) {
	return ParseLayout(defaultLayout)
}

// LoadLayout reads a layout file. An empty path selects the built-in layout.
func LoadLayout(path string) (*Layout, error) {
	if path == "" {
		return DefaultLayout()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layout: %w", err)
	}
	return ParseLayout(b)
}

func ParseLayout(b []byte) (*Layout, error) {
	var layout Layout
	decoder := yaml.NewDecoder(bytes.NewReader(b))
	decoder.KnownFields(true)
	if err := decoder.Decode(&layout); err != nil {
		return nil, fmt.Errorf("parsing layout: %w", err)
	}
	if err := layout.validate(); err != nil {
		return nil, err
	}
	return &layout, nil
}

func (layout *Layout) validate() error {
	var errs []error

	if len(layout.Days) == 0 {
		errs = append(errs, errors.New("layout has no days"))
	}
	if len(layout.Sections) == 0 {
		errs = append(errs, errors.New("layout has no sections"))
	}
	if !slices.Contains(layout.ServiceTypes, layout.Fallback) {
		errs = append(errs, fmt.Errorf("fallback %q is not a service type", layout.Fallback))
	}

	for _, rule := range layout.DayRules {
		if layout.dayIndex(rule.Day) < 0 {
			errs = append(errs, fmt.Errorf("day rule %q names unknown day %q", rule.Contains, rule.Day))
		}
	}
	for _, day := range layout.Days {
		for _, weekday := range day.Weekdays {
			if _, ok := weekdayNames[strings.ToLower(weekday)]; !ok {
				errs = append(errs, fmt.Errorf("day %q: unknown weekday %q", day.Name, weekday))
			}
		}
	}

	seen := make(map[string]bool)
	for _, section := range layout.Sections {
		if section.ID == "" {
			errs = append(errs, fmt.Errorf("section %q has no id", section.Title))
		}
		if seen[section.ID] {
			errs = append(errs, fmt.Errorf("duplicate section id %q", section.ID))
		}
		seen[section.ID] = true
		for _, code := range section.BusTypeOrder {
			if !slices.Contains(layout.ServiceTypes, code) {
				errs = append(errs, fmt.Errorf("section %q: unknown service type %q", section.ID, code))
			}
		}
	}

	return errors.Join(errs...)
}

func (layout *Layout) dayIndex(name string) int {
	return slices.IndexFunc(layout.Days, func(d DayLayout) bool { return d.Name == name })
}

// DayBucket maps a source day label onto one of the layout's days. Exact
// names win (case-insensitively), then the day rules in order. Unknown
// labels are returned unchanged and match no day.
func (layout *Layout) DayBucket(raw string) string {
	s := strings.TrimSpace(raw)
	low := lower(s)

	for _, day := range layout.Days {
		if lower(day.Name) == low {
			return day.Name
		}
	}
	for _, rule := range layout.DayRules {
		if strings.Contains(low, lower(rule.Contains)) {
			return rule.Day
		}
	}
	return s
}

// allowed maps a classified service type onto the section's own types.
func (layout *Layout) allowed(section SectionLayout, code string) string {
	if slices.Contains(section.BusTypeOrder, code) {
		return code
	}
	return layout.Fallback
}
