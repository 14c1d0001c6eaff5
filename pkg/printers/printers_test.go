package printers

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/mindease/pkg/analytics"
	"tableflip.dev/mindease/pkg/entry"
	"tableflip.dev/mindease/pkg/mood"
	"tableflip.dev/mindease/pkg/tui/theme"
)

func init() {
	color.NoColor = true
}

func TestChartScalesToPeak(t *testing.T) {
	var buf bytes.Buffer
	c := &Chart{Out: &buf, BarWidth: 10, Plain: true, Theme: theme.New(true)}

	lines := c.Bars(analytics.Distribution{Buckets: []analytics.Bucket{
		{Label: string(mood.Happy), Count: 4},
		{Label: analytics.UnknownLabel, Count: 1},
	}})
	if len(lines) != 2 {
		t.Fatalf("expected two bars, got %d", len(lines))
	}
	if got := strings.Count(lines[0], "#"); got != 10 {
		t.Errorf("peak bar has %d blocks, want 10", got)
	}
	if got := strings.Count(lines[1], "#"); got != 2 {
		t.Errorf("small bar has %d blocks, want 2", got)
	}
	if !strings.Contains(lines[1], analytics.UnknownLabel) {
		t.Errorf("missing label in %q", lines[1])
	}
}

func TestChartPlaceholder(t *testing.T) {
	var buf bytes.Buffer
	c := &Chart{Out: &buf, Plain: true}
	c.Print(analytics.Summarize(nil))

	out := buf.String()
	if !strings.Contains(out, analytics.NoDataLabel) {
		t.Fatalf("placeholder bar missing: %q", out)
	}
	if strings.Contains(out, "#") {
		t.Fatalf("placeholder should have no bar: %q", out)
	}
	if !strings.Contains(out, "Add entries to see trends") {
		t.Fatalf("insight missing: %q", out)
	}
}

func TestEntriesShowsTextAndMeta(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf, ShowID: true}
	e := entry.Entry{ID: 1717171717171, Text: "walked by the river", Mood: mood.Happy, Created: "6/1/2024, 8:00:00 AM"}
	pp.Entries(e)

	out := buf.String()
	for _, want := range []string{"1717171717171", "walked by the river", e.Meta()} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestEntriesEmpty(t *testing.T) {
	var buf bytes.Buffer
	(&PrettyPrint{Out: &buf}).Entries()
	if !strings.Contains(buf.String(), "No entries yet") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestEntriesWrapsLongText(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf, Width: 20}
	pp.Entries(entry.Entry{ID: 1, Text: "one two three four five six seven eight", Mood: mood.Any})
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) < 3 {
		t.Fatalf("expected wrapped text, got %q", buf.String())
	}
}
