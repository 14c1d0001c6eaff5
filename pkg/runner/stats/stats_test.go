package stats

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/mindease/pkg/analytics"
	"tableflip.dev/mindease/pkg/journal"
	"tableflip.dev/mindease/pkg/mood"
	"tableflip.dev/mindease/pkg/store"
)

func TestStatsJSON(t *testing.T) {
	j := journal.New(store.NewMemory())
	for _, m := range []mood.Mood{mood.Happy, mood.Sad, mood.Happy, mood.Any} {
		if _, err := j.Save("entry", m); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	var buf bytes.Buffer
	s := Stats{View: &analytics.View{Source: j}, JSON: true, Out: &buf}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}

	var got struct {
		Window       string                 `json:"window"`
		Entries      int                    `json:"entries"`
		Distribution analytics.Distribution `json:"distribution"`
		Average      float64                `json:"average"`
		Insight      string                 `json:"insight"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, buf.String())
	}
	want := map[string]int{
		string(mood.Happy):     2,
		string(mood.Sad):       1,
		analytics.UnknownLabel: 1,
	}
	if diff := cmp.Diff(want, got.Distribution.Map()); diff != "" {
		t.Fatalf("distribution mismatch (-want +got):\n%s", diff)
	}
	if got.Average != 3.7 || got.Window != "all" {
		t.Fatalf("unexpected report %+v", got)
	}
	if got.Insight != "Entries: 4 • Average mood: 3.7" {
		t.Fatalf("insight = %q", got.Insight)
	}
}

func TestStatsWindow(t *testing.T) {
	base := time.Date(2024, 6, 10, 12, 0, 0, 0, time.Local)
	clock := base.Add(-30 * 24 * time.Hour)
	j := journal.New(store.NewMemory(), journal.WithClock(func() time.Time { return clock }))
	if _, err := j.Save("old", mood.Angry); err != nil {
		t.Fatalf("save: %v", err)
	}
	clock = base.Add(-time.Hour)
	if _, err := j.Save("recent", mood.Happy); err != nil {
		t.Fatalf("save: %v", err)
	}

	var buf bytes.Buffer
	s := Stats{
		View:  &analytics.View{Source: j, Window: 7 * 24 * time.Hour, Now: func() time.Time { return base }},
		Label: "1w",
		Plain: true,
		Out:   &buf,
	}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Average mood: 5")) {
		t.Fatalf("window should only cover the recent entry:\n%s", buf.String())
	}
}
