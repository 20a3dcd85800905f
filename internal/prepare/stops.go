package prepare

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"horaris.manresa.cat/internal/schedule"
)

var (
	looseClock  = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	strictClock = regexp.MustCompile(`^(\d{2}):(\d{2})$`)
)

// NormalizeClock rewrites "8.05" or "8:05" as "08:05". Values that do not
// look like a clock time are returned trimmed but otherwise untouched.
func NormalizeClock(raw string) string {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ".", ":")
	m := looseClock.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	h, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	return fmt.Sprintf("%02d:%02d", h, mm)
}

// Minutes converts an "HH:MM" time to minutes after midnight.
func Minutes(clock string) (int, bool) {
	m := strictClock.FindStringSubmatch(clock)
	if m == nil {
		return 0, false
	}
	h, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	return h*60 + mm, true
}

// formatOffset renders a GTFS time offset, which may pass 24:00.
func formatOffset(d time.Duration) string {
	total := int(d / time.Minute)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// stopCollector keeps the earliest time seen at each stop of one trip.
type stopCollector struct {
	times map[string]int
}

func newStopCollector() *stopCollector {
	return &stopCollector{times: make(map[string]int)}
}

func (c *stopCollector) add(stop, clock string) {
	stop = strings.TrimSpace(stop)
	if stop == "" {
		return
	}
	minutes, ok := Minutes(clock)
	if !ok {
		return
	}
	if current, seen := c.times[stop]; !seen || minutes < current {
		c.times[stop] = minutes
	}
}

// stops orders the collected stops by time, then by name.
func (c *stopCollector) stops() []schedule.Stop {
	out := make([]schedule.Stop, 0, len(c.times))
	for stop, minutes := range c.times {
		out = append(out, schedule.Stop{Time: fmt.Sprintf("%02d:%02d", minutes/60, minutes%60), Stop: stop})
	}
	sort.Slice(out, func(i, j int) bool {
		mi, mj := c.times[out[i].Stop], c.times[out[j].Stop]
		if mi != mj {
			return mi < mj
		}
		return out[i].Stop < out[j].Stop
	})
	return out
}

func hasPrefix(name string, prefixes []string) bool {
	up := upper(name)
	for _, p := range prefixes {
		if strings.HasPrefix(up, upper(p)) {
			return true
		}
	}
	return false
}

func anyHasPrefix(stops []schedule.Stop, prefixes []string) bool {
	for _, s := range stops {
		if hasPrefix(s.Stop, prefixes) {
			return true
		}
	}
	return false
}

func firstIndex(stops []schedule.Stop, prefixes []string) int {
	for i, s := range stops {
		if hasPrefix(s.Stop, prefixes) {
			return i
		}
	}
	return -1
}

func lastIndex(stops []schedule.Stop, prefixes []string) int {
	for i := len(stops) - 1; i >= 0; i-- {
		if hasPrefix(stops[i].Stop, prefixes) {
			return i
		}
	}
	return -1
}

// span cuts stops down to [first From match, last To match]. Empty From
// starts at the first stop and empty To ends at the last one. ok is false
// when the span does not exist or holds fewer than two stops.
func span(stops []schedule.Stop, from, to []string) ([]schedule.Stop, bool) {
	start, end := 0, len(stops)-1
	if len(from) > 0 {
		start = firstIndex(stops, from)
	}
	if len(to) > 0 {
		end = lastIndex(stops, to)
	}
	if start < 0 || end < 0 || start >= end {
		return nil, false
	}
	return stops[start : end+1], true
}

// ClassifyBusType respects an explicit e22 or e23 and treats anything else
// as semidirecte. An e23 that serves Manresa without passing through Olesa
// or Monistrol is an e22.
func ClassifyBusType(stops []schedule.Stop, raw string) string {
	code := lower(strings.TrimSpace(raw))
	if code != "e22" && code != "e23" {
		return "semidirecte"
	}

	if code == "e23" && anyHasPrefix(stops, []string{"MANRESA"}) && !anyHasPrefix(stops, []string{"OLESA", "MONISTROL"}) {
		return "e22"
	}
	return code
}
