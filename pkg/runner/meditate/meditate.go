package meditate

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/mindease/pkg/meditation"
)

// Meditate runs the meditation countdown, or the breathing pacer when
// Breathe is set, until it finishes or ctx is cancelled.
type Meditate struct {
	Length  time.Duration
	Breathe bool
	// Cycles bounds the breathing exercise; zero runs until cancelled.
	Cycles int
	Out    io.Writer

	// Ticks overrides the wall clock. Each receive is one second for the
	// countdown and one phase for the pacer.
	Ticks <-chan time.Time
}

func (n *Meditate) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}
	if n.Breathe {
		return n.breathe(ctx, out)
	}
	return n.meditate(ctx, out)
}

func (n *Meditate) ticks(every time.Duration) (<-chan time.Time, func()) {
	if n.Ticks != nil {
		return n.Ticks, func() {}
	}
	t := time.NewTicker(every)
	return t.C, t.Stop
}

func (n *Meditate) meditate(ctx context.Context, out io.Writer) error {
	c := meditation.NewCountdown(n.Length)
	c.Start()
	ticks, stop := n.ticks(time.Second)
	defer stop()

	_, _ = fmt.Fprintf(out, "\r%s ", c.Display())
	for {
		select {
		case <-ctx.Done():
			c.Reset()
			_, _ = fmt.Fprintf(out, "\r%s\n", c.Display())
			return nil
		case <-ticks:
			done := c.Tick()
			_, _ = fmt.Fprintf(out, "\r%s ", c.Display())
			if done {
				_, _ = fmt.Fprintln(out, "")
				_, _ = color.New(color.Italic).Fprintln(out, meditation.SpokenCompletion)
				return nil
			}
		}
	}
}

func (n *Meditate) breathe(ctx context.Context, out io.Writer) error {
	p := &meditation.Pacer{}
	_, _ = fmt.Fprintln(out, p.Display())
	p.Start()
	ticks, stop := n.ticks(meditation.PhaseLength)
	defer stop()

	bold := color.New(color.Bold)
	_, _ = bold.Fprintln(out, p.Display())
	phases := 1
	for {
		if n.Cycles > 0 && phases >= n.Cycles*3 {
			p.Stop()
			_, _ = fmt.Fprintln(out, p.Display())
			return nil
		}
		select {
		case <-ctx.Done():
			p.Stop()
			_, _ = fmt.Fprintln(out, p.Display())
			return nil
		case <-ticks:
			p.Advance()
			phases++
			_, _ = bold.Fprintln(out, p.Display())
		}
	}
}
