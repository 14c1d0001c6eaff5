package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Dark   bool
	Tabs   TabTheme
	Panel  PanelTheme
	Footer FooterTheme
	Chart  ChartTheme
}

// TabTheme styles the tab strip across the top.
type TabTheme struct {
	Active   lipgloss.Style
	Inactive lipgloss.Style
	Gap      lipgloss.Style
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
	Meta  lipgloss.Style
	Focus lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// ChartTheme styles the mood bar chart.
type ChartTheme struct {
	Label lipgloss.Style
	Count lipgloss.Style
	Low   colorful.Color
	High  colorful.Color
}

var (
	calm = colorful.Color{R: 0.40, G: 0.75, B: 0.72}
	warm = colorful.Color{R: 0.98, G: 0.62, B: 0.40}
	deep = colorful.Color{R: 0.12, G: 0.45, B: 0.50}
	rust = colorful.Color{R: 0.78, G: 0.33, B: 0.18}
)

// Resolve turns a stored preference ("dark", "light" or anything else for
// automatic) into a dark flag, asking the terminal when automatic.
func Resolve(pref string) bool {
	switch pref {
	case "dark":
		return true
	case "light":
		return false
	}
	return termenv.HasDarkBackground()
}

// New returns the theme for a dark or light background.
func New(dark bool) Theme {
	fg, dim, accent := lipgloss.Color("236"), lipgloss.Color("244"), lipgloss.Color("30")
	low, high := deep, rust
	if dark {
		fg, dim, accent = lipgloss.Color("252"), lipgloss.Color("245"), lipgloss.Color("86")
		low, high = calm, warm
	}

	return Theme{
		Dark: dark,
		Tabs: TabTheme{
			Active: lipgloss.NewStyle().
				Bold(true).
				Foreground(accent).
				Border(lipgloss.RoundedBorder(), true, true, false, true).
				BorderForeground(accent).
				Padding(0, 1),
			Inactive: lipgloss.NewStyle().
				Foreground(dim).
				Border(lipgloss.RoundedBorder(), true, true, false, true).
				BorderForeground(dim).
				Padding(0, 1),
			Gap: lipgloss.NewStyle().Foreground(dim),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(dim).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true).Foreground(accent),
			Body:  lipgloss.NewStyle().Foreground(fg),
			Meta:  lipgloss.NewStyle().Foreground(dim).Italic(true),
			Focus: lipgloss.NewStyle().Foreground(accent).Bold(true),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(dim),
			Status: lipgloss.NewStyle().Foreground(dim).Italic(true),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		},
		Chart: ChartTheme{
			Label: lipgloss.NewStyle().Width(10).Align(lipgloss.Right),
			Count: lipgloss.NewStyle().Foreground(dim),
			Low:   low,
			High:  high,
		},
	}
}

// Default returns the theme matching the terminal background.
func Default() Theme {
	return New(Resolve(""))
}

// Gradient returns n hex colors blended from low to high.
func Gradient(low, high colorful.Color, n int) []string {
	if n <= 0 {
		return nil
	}
	out := make([]string, n)
	for i := range out {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		out[i] = low.BlendLab(high, t).Clamped().Hex()
	}
	return out
}

// BarColors returns one color per chart bar.
func (t Theme) BarColors(n int) []string {
	return Gradient(t.Chart.Low, t.Chart.High, n)
}
