// Package meditation models the timed calm exercises: the meditation
// countdown and the breathing pacer. Both advance on explicit ticks so a
// UI can drive them from its own clock.
package meditation

import (
	"fmt"
	"time"
)

const (
	// DefaultSession is the length of a meditation session.
	DefaultSession = 5 * time.Minute

	FinishedMessage = "Time's up! Great job staying mindful!"
	StoppedMessage  = "Meditation stopped. Please start again."
	// SpokenCompletion is announced when a session finishes.
	SpokenCompletion = "Well done. You completed your mindfulness session."
)

// Countdown is a one-second resolution timer.
type Countdown struct {
	Length    time.Duration
	remaining int
	running   bool
	finished  bool
	stopped   bool
}

// NewCountdown returns a countdown for length, or DefaultSession when
// length is not positive.
func NewCountdown(length time.Duration) *Countdown {
	if length <= 0 {
		length = DefaultSession
	}
	c := &Countdown{Length: length}
	c.remaining = c.seconds()
	return c
}

func (c *Countdown) seconds() int {
	return int(c.Length / time.Second)
}

// Start (re)starts the session from the full length.
func (c *Countdown) Start() {
	c.remaining = c.seconds()
	c.running = true
	c.finished = false
	c.stopped = false
}

// Reset stops the session and rewinds it.
func (c *Countdown) Reset() {
	c.remaining = c.seconds()
	c.running = false
	c.finished = false
	c.stopped = true
}

// Tick advances one second. It reports true on the tick that finishes the
// session.
func (c *Countdown) Tick() bool {
	if !c.running {
		return false
	}
	c.remaining--
	if c.remaining <= 0 {
		c.remaining = 0
		c.running = false
		c.finished = true
		return true
	}
	return false
}

func (c *Countdown) Running() bool  { return c.running }
func (c *Countdown) Finished() bool { return c.finished }

// Remaining returns the time left.
func (c *Countdown) Remaining() time.Duration {
	return time.Duration(c.remaining) * time.Second
}

// Display is the text shown in place of the timer.
func (c *Countdown) Display() string {
	switch {
	case c.finished:
		return FinishedMessage
	case c.stopped:
		return StoppedMessage
	default:
		return FormatClock(c.remaining)
	}
}

// FormatClock renders seconds as M:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// Phase is a step of the breathing cycle.
type Phase int

const (
	Inhale Phase = iota
	Hold
	Exhale
)

func (p Phase) String() string {
	switch p {
	case Hold:
		return "Hold..."
	case Exhale:
		return "Exhale..."
	default:
		return "Inhale..."
	}
}

// PhaseLength is how long each breathing phase lasts.
const PhaseLength = 4 * time.Second

// Pacer cycles inhale, hold, exhale.
type Pacer struct {
	phase   Phase
	running bool
	started bool
}

// Start begins at inhale.
func (p *Pacer) Start() {
	p.phase = Inhale
	p.running = true
	p.started = true
}

// Stop halts the cycle.
func (p *Pacer) Stop() {
	p.running = false
}

// Advance moves to the next phase, once per PhaseLength.
func (p *Pacer) Advance() Phase {
	if p.running {
		p.phase = (p.phase + 1) % 3
	}
	return p.phase
}

func (p *Pacer) Phase() Phase  { return p.phase }
func (p *Pacer) Running() bool { return p.running }

// Expanded reports whether the breathing circle is drawn large, which it is
// from inhale until exhale starts.
func (p *Pacer) Expanded() bool {
	return p.running && p.phase != Exhale
}

// Display is the caption under the breathing circle.
func (p *Pacer) Display() string {
	switch {
	case !p.started:
		return "Breathe slowly..."
	case !p.running:
		return "Stopped"
	default:
		return p.phase.String()
	}
}
