package printers

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"tableflip.dev/mindease/pkg/analytics"
	"tableflip.dev/mindease/pkg/tui/theme"
)

// DefaultBarWidth is the length of the longest bar.
const DefaultBarWidth = 30

// Chart renders a mood distribution as horizontal bars.
type Chart struct {
	Out      io.Writer
	BarWidth int
	// Plain forces ASCII bars without color. When false, bars are drawn with
	// block characters only if Out is a terminal.
	Plain bool
	Theme theme.Theme
}

func (c *Chart) out() io.Writer {
	if c.Out != nil {
		return c.Out
	}
	return color.Output
}

func (c *Chart) plain() bool {
	if c.Plain {
		return true
	}
	if f, ok := c.out().(*os.File); ok {
		return !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
	}
	return c.out() != color.Output
}

// Bars returns the chart lines without printing them.
func (c *Chart) Bars(d analytics.Distribution) []string {
	width := c.BarWidth
	if width <= 0 {
		width = DefaultBarWidth
	}
	plain := c.plain()
	block := "█"
	if plain {
		block = "#"
	}

	colors := c.Theme.BarColors(len(d.Buckets))
	profile := termenv.ColorProfile()
	lengths := d.Scale(width)

	lines := make([]string, 0, len(d.Buckets))
	for i, b := range d.Buckets {
		bar := strings.Repeat(block, lengths[i])
		if !plain && bar != "" && i < len(colors) {
			bar = termenv.String(bar).Foreground(profile.Color(colors[i])).String()
		}
		lines = append(lines, fmt.Sprintf("%10s │ %s %d", b.Label, bar, b.Count))
	}
	return lines
}

// Print writes the chart followed by the insight line.
func (c *Chart) Print(s analytics.Summary) {
	w := c.out()
	for _, line := range c.Bars(s.Distribution) {
		_, _ = fmt.Fprintln(w, line)
	}
	_, _ = fmt.Fprintln(w, "")
	f := color.New(color.Faint)
	_, _ = f.Fprintln(w, s.Insight())
}
