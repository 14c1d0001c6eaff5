// Package timeutil parses the trailing windows used to scope mood statistics.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const day = 24 * time.Hour

// All is the window spelling that disables windowing.
const All = "all"

var (
	segment = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	units   = map[string]time.Duration{}
)

func init() {
	for d, names := range map[time.Duration][]string{
		time.Minute: {"m", "min", "mins", "minute", "minutes"},
		time.Hour:   {"h", "hr", "hrs", "hour", "hours"},
		day:         {"d", "day", "days"},
		7 * day:     {"w", "wk", "wks", "week", "weeks"},
		30 * day:    {"mo", "month", "months"},
		365 * day:   {"y", "yr", "year", "years"},
	} {
		for _, n := range names {
			units[n] = d
		}
	}
}

// ParseWindow parses strings like "7d", "2w" or "1w3d" and returns the total
// along with its canonical spelling. "" and "all" mean no window and return
// zero.
func ParseWindow(input string) (time.Duration, string, error) {
	rest := strings.ToLower(strings.TrimSpace(input))
	if rest == "" || rest == All {
		return 0, All, nil
	}

	var total time.Duration
	for rest != "" {
		m := segment.FindStringSubmatch(rest)
		if m == nil {
			return 0, "", fmt.Errorf("invalid window segment %q", strings.TrimSpace(rest))
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("invalid window value %q: %w", m[1], err)
		}
		unit, ok := units[m[2]]
		if !ok {
			return 0, "", fmt.Errorf("unsupported window unit %q", m[2])
		}
		total += time.Duration(n) * unit
		rest = strings.TrimSpace(rest[len(m[0]):])
	}
	if total <= 0 {
		return 0, "", fmt.Errorf("window must be greater than zero")
	}
	return total, FormatWindow(total), nil
}

// FormatWindow renders a duration with the largest whole units first.
func FormatWindow(d time.Duration) string {
	if d <= 0 {
		return All
	}
	var b strings.Builder
	for _, u := range []struct {
		label string
		size  time.Duration
	}{
		{"y", 365 * day},
		{"mo", 30 * day},
		{"w", 7 * day},
		{"d", day},
		{"h", time.Hour},
		{"m", time.Minute},
	} {
		if d < u.size {
			continue
		}
		fmt.Fprintf(&b, "%d%s", d/u.size, u.label)
		d %= u.size
	}
	if b.Len() == 0 {
		return "0m"
	}
	return b.String()
}
