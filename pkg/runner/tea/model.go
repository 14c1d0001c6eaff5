// Package teaui is the full-screen terminal interface.
package teaui

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/mindease/pkg/app"
	"tableflip.dev/mindease/pkg/chat"
	"tableflip.dev/mindease/pkg/games/memory"
	"tableflip.dev/mindease/pkg/journal"
	"tableflip.dev/mindease/pkg/logger"
	"tableflip.dev/mindease/pkg/meditation"
	"tableflip.dev/mindease/pkg/mood"
	"tableflip.dev/mindease/pkg/store"
	"tableflip.dev/mindease/pkg/tui/theme"
)

type focusArea int

const (
	focusComposer focusArea = iota
	focusSearch
	focusList
)

// Model is the Bubble Tea model behind every tab.
type Model struct {
	ctx   context.Context
	sess  *app.Session
	theme theme.Theme
	keys  keyMap
	help  help.Model

	width  int
	height int

	tab    app.Tab
	snap   app.Snapshot
	status string

	focus        focusArea
	composer     textarea.Model
	composeMood  mood.Mood
	editing      int64
	stash        string
	search       textinput.Model
	cursor       int
	confirmClear bool
	polling      bool

	countdown *meditation.Countdown
	medGen    int
	pacer     *meditation.Pacer
	breathGen int

	memory    *memory.Game
	memCursor int
	memGen    int

	chatInput textinput.Model
	chatView  viewport.Model

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc
}

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event store.Event
}

type watchStoppedMsg struct{}

type autosavePollMsg struct{}

type meditateTickMsg struct{ gen int }

type breatheTickMsg struct{ gen int }

type memoryResolveMsg struct{ gen int }

// New builds the model over sess. The draft left by a previous run is
// restored into the composer.
func New(ctx context.Context, sess *app.Session, th theme.Theme) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	ta := textarea.New()
	ta.Placeholder = "How are you feeling today?"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(5)

	si := textinput.New()
	si.Prompt = "search: "
	si.Placeholder = "text or date"

	ci := textinput.New()
	ci.Prompt = "> "
	ci.Placeholder = "Say something to " + chat.Name

	m := &Model{
		ctx:         ctx,
		sess:        sess,
		theme:       th,
		keys:        defaultKeys(),
		help:        help.New(),
		tab:         app.TabHome,
		focus:       focusList,
		composer:    ta,
		composeMood: mood.Any,
		search:      si,
		countdown:   meditation.NewCountdown(meditation.DefaultSession),
		pacer:       &meditation.Pacer{},
		memory:      memory.New(nil),
		chatInput:   ci,
		chatView:    viewport.New(60, 10),
	}
	if draft, err := sess.Journal.Draft(); err != nil {
		m.status = "ERR: " + err.Error()
	} else if draft != "" {
		m.composer.SetValue(draft)
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	return startWatchCmd(m.ctx, m.sess.Persistence)
}

func startWatchCmd(parent context.Context, p store.Persistence) tea.Cmd {
	if p == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := p.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.applySizes()
	case watchStartedMsg:
		if msg.err != nil {
			m.setStatus("ERR: watch " + msg.err.Error())
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchEventMsg:
		m.handleWatchEvent(msg.event)
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchStoppedMsg:
		m.stopWatch()
	case autosavePollMsg:
		if m.sess.Autosaver.Status() == journal.StatusSaving {
			cmds = append(cmds, pollAutosave())
		} else {
			m.polling = false
		}
	case meditateTickMsg:
		if msg.gen == m.medGen && m.countdown.Running() {
			if m.countdown.Tick() {
				m.setStatus(meditation.SpokenCompletion)
			} else {
				cmds = append(cmds, m.meditateTick())
			}
		}
	case breatheTickMsg:
		if msg.gen == m.breathGen && m.pacer.Running() {
			m.pacer.Advance()
			cmds = append(cmds, m.breatheTick())
		}
	case memoryResolveMsg:
		if msg.gen == m.memGen && m.memory.Pending() {
			m.memory.Resolve()
			if m.memory.Won() {
				m.setStatus(m.memory.WinMessage())
			}
		}
	case tea.KeyMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleWatchEvent(ev store.Event) {
	switch ev.Key {
	case store.KeyJournals, "":
		m.sess.Invalidate()
		m.refresh()
	case store.KeyDark:
		if pref, err := m.sess.Theme(); err == nil {
			m.theme = theme.New(theme.Resolve(string(pref)))
		}
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		m.shutdown()
		return tea.Quit
	}
	if m.confirmClear {
		return m.handleConfirmKey(msg)
	}
	switch {
	case key.Matches(msg, m.keys.NextTab):
		return m.openTab(m.shiftTab(1))
	case key.Matches(msg, m.keys.PrevTab):
		return m.openTab(m.shiftTab(-1))
	case key.Matches(msg, m.keys.Theme):
		m.toggleTheme()
		return nil
	}

	if !m.typing() {
		if t, ok := tabForDigit(msg.String()); ok {
			return m.openTab(t)
		}
	}

	switch m.tab {
	case app.TabJournal:
		return m.handleJournalKey(msg)
	case app.TabMeditate:
		return m.handleMeditateKey(msg)
	case app.TabBreathe:
		return m.handleBreatheKey(msg)
	case app.TabMemory:
		return m.handleMemoryKey(msg)
	case app.TabChat:
		return m.handleChatKey(msg)
	}
	return nil
}

func (m *Model) typing() bool {
	switch m.tab {
	case app.TabJournal:
		return m.focus != focusList
	case app.TabChat:
		return true
	}
	return false
}

func tabForDigit(s string) (app.Tab, bool) {
	n, err := strconv.Atoi(s)
	tabs := app.Tabs()
	if err != nil || n < 1 || n > len(tabs) {
		return "", false
	}
	return tabs[n-1], true
}

func (m *Model) shiftTab(delta int) app.Tab {
	tabs := app.Tabs()
	for i, t := range tabs {
		if t == m.tab {
			return tabs[(i+delta+len(tabs))%len(tabs)]
		}
	}
	return app.TabHome
}

func (m *Model) openTab(t app.Tab) tea.Cmd {
	snap, err := m.sess.OpenTab(t)
	m.tab = t
	if err != nil {
		m.setStatus("ERR: " + err.Error())
	} else if t == app.TabJournal || t == app.TabAnalysis {
		m.snap = snap
		m.clampCursor()
	}

	m.composer.Blur()
	m.search.Blur()
	m.chatInput.Blur()
	switch t {
	case app.TabJournal:
		m.focus = focusComposer
		return m.composer.Focus()
	case app.TabChat:
		return m.chatInput.Focus()
	}
	return nil
}

func (m *Model) refresh() {
	snap, err := m.sess.Refresh()
	if err != nil {
		m.setStatus("ERR: " + err.Error())
		return
	}
	m.snap = snap
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.snap.Entries) {
		m.cursor = len(m.snap.Entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) handleJournalKey(msg tea.KeyMsg) tea.Cmd {
	switch m.focus {
	case focusComposer:
		return m.handleComposerKey(msg)
	case focusSearch:
		return m.handleSearchKey(msg)
	}
	return m.handleListKey(msg)
}

func (m *Model) handleComposerKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Save):
		m.commit()
		return nil
	case key.Matches(msg, m.keys.MoodCycle):
		m.composeMood = nextMood(m.composeMood)
		return nil
	case key.Matches(msg, m.keys.CancelEd):
		m.cancelEdit()
		return nil
	case key.Matches(msg, m.keys.Leave):
		m.composer.Blur()
		m.focus = focusList
		return nil
	}

	before := m.composer.Value()
	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(msg)
	// Edits are not drafts; only new-entry text is autosaved.
	if after := m.composer.Value(); after != before && m.editing == 0 {
		m.sess.Autosaver.Input(after)
		if !m.polling {
			m.polling = true
			return tea.Batch(cmd, pollAutosave())
		}
	}
	return cmd
}

func (m *Model) commit() {
	text := m.composer.Value()
	_, err := m.sess.Commit(m.editing, text, m.composeMood)
	switch {
	case errors.Is(err, journal.ErrEmptyText):
		m.setStatus("Please write something first.")
		return
	case err != nil:
		m.setStatus("ERR: " + err.Error())
		return
	}
	if m.editing != 0 {
		m.setStatus("Entry updated.")
	} else {
		m.setStatus("Entry saved.")
	}
	m.composer.Reset()
	m.composeMood = mood.Any
	if m.editing != 0 && m.stash != "" {
		m.composer.SetValue(m.stash)
		m.sess.Autosaver.Input(m.stash)
	}
	m.editing = 0
	m.stash = ""
	m.refresh()
}

func (m *Model) cancelEdit() {
	if m.editing == 0 {
		return
	}
	m.editing = 0
	m.composer.Reset()
	m.composer.SetValue(m.stash)
	m.stash = ""
	m.composeMood = mood.Any
	m.setStatus("Edit cancelled.")
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Leave) || msg.Type == tea.KeyEnter {
		m.search.Blur()
		m.focus = focusList
		return nil
	}
	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if after := m.search.Value(); after != before {
		_, filter := m.sess.Filter()
		m.sess.SetFilter(after, filter)
		m.cursor = 0
		m.refresh()
	}
	return cmd
}

func (m *Model) handleListKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.snap.Entries)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Compose):
		m.focus = focusComposer
		return m.composer.Focus()
	case key.Matches(msg, m.keys.Search):
		m.focus = focusSearch
		return m.search.Focus()
	case key.Matches(msg, m.keys.Filter):
		search, filter := m.sess.Filter()
		m.sess.SetFilter(search, nextMood(filter))
		m.cursor = 0
		m.refresh()
	case key.Matches(msg, m.keys.Edit):
		return m.beginEdit()
	case key.Matches(msg, m.keys.Delete):
		m.deleteSelected()
	case key.Matches(msg, m.keys.ClearAll):
		m.confirmClear = true
		m.setStatus(journal.ClearPrompt + " (y/n)")
	}
	return nil
}

func (m *Model) selected() (int64, bool) {
	if m.cursor < 0 || m.cursor >= len(m.snap.Entries) {
		return 0, false
	}
	return m.snap.Entries[m.cursor].ID, true
}

func (m *Model) beginEdit() tea.Cmd {
	id, ok := m.selected()
	if !ok {
		return nil
	}
	e, err := m.sess.Journal.BeginEdit(id)
	if err != nil {
		m.setStatus("ERR: " + err.Error())
		return nil
	}
	if m.editing == 0 {
		m.stash = m.composer.Value()
		if err := m.sess.Autosaver.Flush(); err != nil {
			logger.Warn("flush draft before edit", "err", err)
		}
	}
	m.editing = e.ID
	m.composeMood = e.Mood
	m.composer.SetValue(e.Text)
	m.focus = focusComposer
	m.setStatus("Editing entry. ctrl+s saves, ctrl+x cancels.")
	return m.composer.Focus()
}

func (m *Model) deleteSelected() {
	id, ok := m.selected()
	if !ok {
		return
	}
	if err := m.sess.Journal.Delete(id); err != nil {
		m.setStatus("ERR: " + err.Error())
		return
	}
	if id == m.editing {
		m.cancelEdit()
	}
	m.setStatus("Entry deleted.")
	m.refresh()
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Yes):
		m.confirmClear = false
		yes := journal.ConfirmFunc(func(string) (bool, error) { return true, nil })
		if _, err := m.sess.Journal.ClearAll(yes); err != nil {
			m.setStatus("ERR: " + err.Error())
			return nil
		}
		m.cancelEdit()
		m.setStatus("All entries deleted.")
		m.refresh()
	case key.Matches(msg, m.keys.No):
		m.confirmClear = false
		m.setStatus("Nothing deleted.")
	}
	return nil
}

func (m *Model) handleMeditateKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Start):
		if m.countdown.Running() {
			return nil
		}
		m.countdown.Start()
		m.medGen++
		return m.meditateTick()
	case key.Matches(msg, m.keys.Reset):
		m.countdown.Reset()
		m.medGen++
	}
	return nil
}

func (m *Model) handleBreatheKey(msg tea.KeyMsg) tea.Cmd {
	if !key.Matches(msg, m.keys.Start) {
		return nil
	}
	m.breathGen++
	if m.pacer.Running() {
		m.pacer.Stop()
		return nil
	}
	m.pacer.Start()
	return m.breatheTick()
}

func (m *Model) handleMemoryKey(msg tea.KeyMsg) tea.Cmd {
	n := len(m.memory.Cards)
	switch {
	case key.Matches(msg, m.keys.Left):
		if m.memCursor%memory.Columns > 0 {
			m.memCursor--
		}
	case key.Matches(msg, m.keys.Right):
		if m.memCursor%memory.Columns < memory.Columns-1 && m.memCursor < n-1 {
			m.memCursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.memCursor >= memory.Columns {
			m.memCursor -= memory.Columns
		}
	case key.Matches(msg, m.keys.Down):
		if m.memCursor+memory.Columns < n {
			m.memCursor += memory.Columns
		}
	case key.Matches(msg, m.keys.Reset):
		m.memory.Deal()
		m.memGen++
		m.memCursor = 0
		m.setStatus("")
	case key.Matches(msg, m.keys.Flip):
		pair, err := m.memory.Flip(m.memCursor)
		if err != nil || !pair {
			return nil
		}
		gen := m.memGen
		return tea.Tick(memory.Reveal, func(time.Time) tea.Msg {
			return memoryResolveMsg{gen: gen}
		})
	}
	return nil
}

func (m *Model) handleChatKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Send) {
		if _, ok := m.sess.Companion.Send(m.chatInput.Value()); ok {
			m.chatInput.Reset()
			m.chatView.SetContent(m.renderTranscript())
			m.chatView.GotoBottom()
		}
		return nil
	}
	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return cmd
}

func (m *Model) toggleTheme() {
	next := app.ThemeDark
	if m.theme.Dark {
		next = app.ThemeLight
	}
	if err := m.sess.SetTheme(next); err != nil {
		m.setStatus("ERR: " + err.Error())
		return
	}
	m.theme = theme.New(next == app.ThemeDark)
}

func (m *Model) setStatus(s string) {
	m.status = s
}

func (m *Model) applySizes() {
	if m.width == 0 || m.height == 0 {
		return
	}
	inner := m.width - 6
	if inner < 20 {
		inner = 20
	}
	m.composer.SetWidth(inner)
	m.search.Width = inner - len(m.search.Prompt)
	m.chatInput.Width = inner - len(m.chatInput.Prompt)
	m.chatView.Width = inner
	h := m.height - 12
	if h < 3 {
		h = 3
	}
	m.chatView.Height = h
	m.help.Width = m.width
}

func (m *Model) shutdown() {
	if err := m.sess.Autosaver.Flush(); err != nil {
		logger.Warn("flush draft on exit", "err", err)
	}
	m.stopWatch()
}

func pollAutosave() tea.Cmd {
	return tea.Tick(journal.DefaultAutosaveDelay/2, func(time.Time) tea.Msg {
		return autosavePollMsg{}
	})
}

func (m *Model) meditateTick() tea.Cmd {
	gen := m.medGen
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return meditateTickMsg{gen: gen}
	})
}

func (m *Model) breatheTick() tea.Cmd {
	gen := m.breathGen
	return tea.Tick(meditation.PhaseLength, func(time.Time) tea.Msg {
		return breatheTickMsg{gen: gen}
	})
}

// nextMood cycles through the vocabulary, ending on the unset tag.
func nextMood(m mood.Mood) mood.Mood {
	moods := mood.DefaultMoods()
	for i, g := range moods {
		if g.Mood == m {
			return moods[(i+1)%len(moods)].Mood
		}
	}
	return moods[0].Mood
}

// Run launches the terminal UI until the user quits or ctx ends.
func Run(ctx context.Context, sess *app.Session) error {
	pref, err := sess.Theme()
	if err != nil {
		logger.Warn("read theme preference", "err", err)
	}
	m := New(ctx, sess, theme.New(theme.Resolve(string(pref))))
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	m.shutdown()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
