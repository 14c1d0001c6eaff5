package teaui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/mindease/pkg/analytics"
	"tableflip.dev/mindease/pkg/app"
	"tableflip.dev/mindease/pkg/chat"
	"tableflip.dev/mindease/pkg/games/memory"
	"tableflip.dev/mindease/pkg/mood"
)

const chartWidth = 30

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	var body string
	switch m.tab {
	case app.TabJournal:
		body = m.renderJournal()
	case app.TabAnalysis:
		body = m.renderAnalysis()
	case app.TabMeditate:
		body = m.renderMeditate()
	case app.TabBreathe:
		body = m.renderBreathe()
	case app.TabMemory:
		body = m.renderMemory()
	case app.TabChat:
		body = m.renderChat()
	default:
		body = m.renderHome()
	}
	frame := m.theme.Panel.Frame
	if m.width > 0 {
		frame = frame.Width(m.width - 2)
	}
	b.WriteString(frame.Render(body))
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m *Model) renderTabs() string {
	tabs := app.Tabs()
	parts := make([]string, 0, len(tabs))
	for i, t := range tabs {
		label := fmt.Sprintf("%d %s", i+1, tabTitle(t))
		if t == m.tab {
			parts = append(parts, m.theme.Tabs.Active.Render(label))
		} else {
			parts = append(parts, m.theme.Tabs.Inactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, parts...)
}

func tabTitle(t app.Tab) string {
	switch t {
	case app.TabJournal:
		return "Journal"
	case app.TabAnalysis:
		return "Analysis"
	case app.TabMeditate:
		return "Meditate"
	case app.TabBreathe:
		return "Breathe"
	case app.TabMemory:
		return "Memory"
	case app.TabChat:
		return "Chat"
	}
	return "Home"
}

func (m *Model) renderHome() string {
	p := m.theme.Panel
	lines := []string{
		p.Title.Render("MindEase"),
		"",
		p.Body.Render("A quiet place to write down how you feel, notice patterns,"),
		p.Body.Render("and take a breath."),
		"",
		p.Meta.Render("tab/shift+tab or 1-7 switch screens. ctrl+t toggles dark mode."),
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderJournal() string {
	p := m.theme.Panel
	var b strings.Builder

	title := "New entry"
	if m.editing != 0 {
		title = fmt.Sprintf("Editing entry %d", m.editing)
	}
	b.WriteString(p.Title.Render(title))
	b.WriteString("  ")
	b.WriteString(p.Meta.Render("mood: " + moodLabel(m.composeMood)))
	b.WriteString("\n")
	b.WriteString(m.composer.View())
	b.WriteString("\n\n")

	_, filter := m.sess.Filter()
	b.WriteString(m.search.View())
	b.WriteString("  ")
	b.WriteString(p.Meta.Render("filter: " + moodLabel(filter)))
	b.WriteString("\n\n")

	if len(m.snap.Entries) == 0 {
		b.WriteString(p.Meta.Render("No entries yet"))
		return b.String()
	}
	width := m.width - 10
	if width < 20 {
		width = 60
	}
	for i, e := range m.snap.Entries {
		marker := "  "
		text := truncate.StringWithTail(firstLine(e.Text), uint(width), "…")
		line := p.Body.Render(text)
		if i == m.cursor && m.focus == focusList {
			marker = p.Focus.Render("➜ ")
			line = p.Focus.Render(text)
		}
		b.WriteString(marker + line + "\n")
		b.WriteString("  " + p.Meta.Render(e.Meta()) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}

func moodLabel(m mood.Mood) string {
	if g, ok := m.Glyph(); ok && m.IsSet() {
		return m.String() + " " + g.Noun
	}
	return "any"
}

func (m *Model) renderAnalysis() string {
	p := m.theme.Panel
	c := m.theme.Chart
	s := m.snap.Summary
	if len(s.Distribution.Buckets) == 0 {
		s = analytics.Summarize(nil)
	}

	var b strings.Builder
	b.WriteString(p.Title.Render("Mood distribution"))
	b.WriteString("\n\n")
	colors := m.theme.BarColors(len(s.Distribution.Buckets))
	lengths := s.Distribution.Scale(chartWidth)
	for i, bucket := range s.Distribution.Buckets {
		bar := lipgloss.NewStyle().Foreground(lipgloss.Color(colors[i])).Render(strings.Repeat("█", lengths[i]))
		b.WriteString(c.Label.Render(bucket.Label))
		b.WriteString(" │ ")
		b.WriteString(bar)
		b.WriteString(" ")
		b.WriteString(c.Count.Render(fmt.Sprint(bucket.Count)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(p.Meta.Render(s.Insight()))
	return b.String()
}

func (m *Model) renderMeditate() string {
	p := m.theme.Panel
	clock := lipgloss.NewStyle().Bold(true).Padding(1, 4).Render(m.countdown.Display())
	return strings.Join([]string{
		p.Title.Render("5-minute meditation"),
		"",
		clock,
		"",
		p.Meta.Render("s start  r reset"),
	}, "\n")
}

var (
	circleSmall = []string{
		"   .-.   ",
		"  (   )  ",
		"   '-'   ",
	}
	circleLarge = []string{
		"   .-'''-.   ",
		" .'       '. ",
		"(           )",
		" '.       .' ",
		"   '-...-'   ",
	}
)

func (m *Model) renderBreathe() string {
	p := m.theme.Panel
	circle := circleSmall
	if m.pacer.Expanded() {
		circle = circleLarge
	}
	shape := p.Focus.Render(strings.Join(circle, "\n"))
	return strings.Join([]string{
		p.Title.Render("Breathing"),
		"",
		shape,
		"",
		p.Body.Render(m.pacer.Display()),
		"",
		p.Meta.Render("s start/stop"),
	}, "\n")
}

func (m *Model) renderTranscript() string {
	p := m.theme.Panel
	var b strings.Builder
	for _, msg := range m.sess.Companion.Transcript() {
		from := p.Meta.Render(msg.From + ":")
		if msg.From == chat.Name {
			from = p.Focus.Render(msg.From + ":")
		}
		b.WriteString(from + " " + p.Body.Render(msg.Text) + "\n")
	}
	return b.String()
}

func (m *Model) renderChat() string {
	p := m.theme.Panel
	transcript := m.chatView.View()
	if len(m.sess.Companion.Transcript()) == 0 {
		transcript = p.Meta.Render(chat.Name + " is listening.")
	}
	return strings.Join([]string{
		p.Title.Render("Talk with " + chat.Name),
		"",
		transcript,
		"",
		m.chatInput.View(),
	}, "\n")
}

func (m *Model) renderMemory() string {
	p := m.theme.Panel
	g := m.memory
	var b strings.Builder
	b.WriteString(p.Title.Render("Memory match"))
	b.WriteString("  ")
	b.WriteString(p.Meta.Render(g.Score()))
	b.WriteString("\n\n")
	for i := range g.Cards {
		cell := " " + g.Face(i) + " "
		if i == m.memCursor {
			cell = p.Focus.Render("[" + g.Face(i) + "]")
		}
		b.WriteString(cell)
		if (i+1)%memory.Columns == 0 {
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}
	b.WriteString("\n")
	b.WriteString(p.Meta.Render("Find the matching flowers. r deals a new board."))
	return b.String()
}

func (m *Model) renderFooter() string {
	f := m.theme.Footer
	var parts []string
	if m.tab == app.TabJournal {
		parts = append(parts, f.Status.Render(m.sess.Autosaver.Status().String()))
	}
	if m.status != "" {
		style := f.Status
		if strings.HasPrefix(m.status, "ERR:") {
			style = f.Error
		}
		parts = append(parts, style.Render(m.status))
	}
	parts = append(parts, m.help.View(m.helpKeys()))
	return strings.Join(parts, "\n")
}

func (m *Model) helpKeys() helpKeys {
	k := m.keys
	if m.confirmClear {
		return helpKeys{
			key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "delete all")),
			key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "keep")),
		}
	}
	switch m.tab {
	case app.TabJournal:
		switch m.focus {
		case focusComposer:
			return helpKeys{k.Save, k.MoodCycle, k.CancelEd, k.Leave, k.NextTab, k.Quit}
		case focusSearch:
			return helpKeys{k.Leave, k.Quit}
		}
		return helpKeys{k.Up, k.Down, k.Compose, k.Edit, k.Delete, k.Search, k.Filter, k.ClearAll, k.Quit}
	case app.TabMeditate:
		return helpKeys{k.Start, k.Reset, k.NextTab, k.Quit}
	case app.TabBreathe:
		return helpKeys{k.Start, k.NextTab, k.Quit}
	case app.TabMemory:
		return helpKeys{k.Up, k.Down, k.Left, k.Right, k.Flip, k.Reset, k.Quit}
	case app.TabChat:
		return helpKeys{k.Send, k.NextTab, k.Quit}
	}
	return helpKeys{k.NextTab, k.PrevTab, k.Theme, k.Quit}
}
