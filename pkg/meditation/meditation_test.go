package meditation

import (
	"testing"
	"time"
)

func TestFormatClock(t *testing.T) {
	tests := map[int]string{300: "5:00", 299: "4:59", 69: "1:09", 9: "0:09", 0: "0:00", -3: "0:00"}
	for in, want := range tests {
		if got := FormatClock(in); got != want {
			t.Errorf("FormatClock(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestCountdownRunsToCompletion(t *testing.T) {
	c := NewCountdown(3 * time.Second)
	if c.Tick() {
		t.Fatal("tick before start should do nothing")
	}
	c.Start()
	if c.Display() != "0:03" {
		t.Fatalf("unexpected display %q", c.Display())
	}
	if c.Tick() || c.Tick() {
		t.Fatal("finished too early")
	}
	if !c.Tick() {
		t.Fatal("third tick should finish")
	}
	if !c.Finished() || c.Running() || c.Display() != FinishedMessage {
		t.Fatalf("unexpected final state: %q", c.Display())
	}
	if c.Tick() {
		t.Fatal("finished countdown should not finish again")
	}
}

func TestCountdownReset(t *testing.T) {
	c := NewCountdown(0)
	if c.Remaining() != DefaultSession {
		t.Fatalf("default length = %v", c.Remaining())
	}
	c.Start()
	c.Tick()
	c.Reset()
	if c.Running() || c.Remaining() != DefaultSession || c.Display() != StoppedMessage {
		t.Fatalf("unexpected state after reset: %v %q", c.Remaining(), c.Display())
	}
	c.Start()
	if c.Display() != "5:00" {
		t.Fatalf("restart display %q", c.Display())
	}
}

func TestPacerCycles(t *testing.T) {
	var p Pacer
	if p.Display() != "Breathe slowly..." {
		t.Fatalf("idle display %q", p.Display())
	}
	p.Start()
	want := []Phase{Hold, Exhale, Inhale, Hold}
	for i, w := range want {
		if got := p.Advance(); got != w {
			t.Fatalf("step %d: got %v want %v", i, got, w)
		}
	}
	if !p.Expanded() {
		t.Fatal("circle should be expanded while holding")
	}
	p.Advance()
	if p.Expanded() {
		t.Fatal("circle should shrink on exhale")
	}
	p.Stop()
	if p.Display() != "Stopped" || p.Expanded() {
		t.Fatalf("stopped display %q", p.Display())
	}
	if p.Advance() != Exhale {
		t.Fatal("stopped pacer should not advance")
	}
}
