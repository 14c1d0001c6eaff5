// Package analytics derives mood statistics from the journal. It keeps no
// state of its own; every call re-reads the source.
package analytics

import (
	"fmt"
	"math"
	"time"

	"tableflip.dev/mindease/pkg/entry"
)

const (
	// UnknownLabel buckets entries without a mood.
	UnknownLabel = "unknown"
	// NoDataLabel is the placeholder bar shown for an empty journal.
	NoDataLabel = "No data"
)

// Source provides the full entry set, newest first.
type Source interface {
	All() ([]entry.Entry, error)
}

// Bucket is one bar of the mood chart.
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Distribution is the mood tally in first-seen order. Empty marks the
// placeholder distribution of an empty journal.
type Distribution struct {
	Buckets []Bucket `json:"buckets"`
	Empty   bool     `json:"empty"`
}

// Map returns the tally keyed by label. The placeholder of an empty journal
// is included, with a zero count.
func (d Distribution) Map() map[string]int {
	m := make(map[string]int, len(d.Buckets))
	for _, b := range d.Buckets {
		m[b.Label] = b.Count
	}
	return m
}

// Max returns the largest bucket count.
func (d Distribution) Max() int {
	max := 0
	for _, b := range d.Buckets {
		if b.Count > max {
			max = b.Count
		}
	}
	return max
}

// Scale returns a bar length per bucket, the largest count filling width.
// Non-zero counts always get at least one cell.
func (d Distribution) Scale(width int) []int {
	peak := d.Max()
	out := make([]int, len(d.Buckets))
	if peak == 0 || width <= 0 {
		return out
	}
	for i, b := range d.Buckets {
		n := b.Count * width / peak
		if b.Count > 0 && n == 0 {
			n = 1
		}
		out[i] = n
	}
	return out
}

// Distribute tallies the moods of entries.
func Distribute(entries []entry.Entry) Distribution {
	if len(entries) == 0 {
		return Distribution{Buckets: []Bucket{{Label: NoDataLabel}}, Empty: true}
	}
	index := make(map[string]int)
	var buckets []Bucket
	for _, e := range entries {
		label := UnknownLabel
		if e.Mood.IsSet() {
			label = string(e.Mood)
		}
		i, ok := index[label]
		if !ok {
			i = len(buckets)
			index[label] = i
			buckets = append(buckets, Bucket{Label: label})
		}
		buckets[i].Count++
	}
	return Distribution{Buckets: buckets}
}

// Average returns the mean score of the scoreable entries rounded to one
// decimal place. ok is false when no entry is scoreable.
func Average(entries []entry.Entry) (avg float64, ok bool) {
	var total float64
	count := 0
	for _, e := range entries {
		if score, scored := e.Mood.Score(); scored {
			total += score
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return roundTenth(total / float64(count)), true
}

// roundTenth rounds half up to one decimal.
func roundTenth(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

// Summary bundles what the analytics view renders.
type Summary struct {
	Entries      int          `json:"entries"`
	Distribution Distribution `json:"distribution"`
	Average      float64      `json:"average"`
	HasAverage   bool         `json:"hasAverage"`
}

// Summarize computes a Summary over entries.
func Summarize(entries []entry.Entry) Summary {
	avg, ok := Average(entries)
	return Summary{
		Entries:      len(entries),
		Distribution: Distribute(entries),
		Average:      avg,
		HasAverage:   ok,
	}
}

// Insight is the one-line caption under the chart.
func (s Summary) Insight() string {
	if !s.HasAverage {
		return fmt.Sprintf("Entries: %d • Add entries to see trends", s.Entries)
	}
	return fmt.Sprintf("Entries: %d • Average mood: %s", s.Entries, FormatAverage(s.Average))
}

// FormatAverage prints an average the way the insight line shows it: no
// trailing ".0".
func FormatAverage(v float64) string {
	return fmt.Sprintf("%g", v)
}

// View reads a Source on demand.
type View struct {
	Source Source
	// Window, when positive, limits the view to entries created within the
	// trailing window ending at Now.
	Window time.Duration
	Now    func() time.Time
}

// Entries returns the entries the view covers.
func (v *View) Entries() ([]entry.Entry, error) {
	all, err := v.Source.All()
	if err != nil {
		return nil, err
	}
	if v.Window <= 0 {
		return all, nil
	}
	now := time.Now
	if v.Now != nil {
		now = v.Now
	}
	since := now().Add(-v.Window)
	out := make([]entry.Entry, 0, len(all))
	for _, e := range all {
		if !e.CreatedAt().Before(since) {
			out = append(out, e)
		}
	}
	return out, nil
}

// MoodDistribution tallies moods across the covered entries.
func (v *View) MoodDistribution() (Distribution, error) {
	entries, err := v.Entries()
	if err != nil {
		return Distribution{}, err
	}
	return Distribute(entries), nil
}

// AverageMood averages the scoreable moods across the covered entries.
func (v *View) AverageMood() (float64, bool, error) {
	entries, err := v.Entries()
	if err != nil {
		return 0, false, err
	}
	avg, ok := Average(entries)
	return avg, ok, nil
}

// Summary computes everything the analytics screen shows in one read.
func (v *View) Summary() (Summary, error) {
	entries, err := v.Entries()
	if err != nil {
		return Summary{}, err
	}
	return Summarize(entries), nil
}
