// Package tui holds the interactive ranked-list browser.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rnwolfe/triage/internal/bulk"
	"github.com/rnwolfe/triage/internal/rank"
	"github.com/rnwolfe/triage/internal/task"
	"github.com/rnwolfe/triage/internal/ui"
	"github.com/rnwolfe/triage/internal/view"
)

// Backend is the session the browser drives.
type Backend interface {
	View() view.View
	Strategy() rank.Strategy
	SetStrategy(rank.Strategy)
	SubmitBulk(ctx context.Context, raw []byte) (bulk.Result, error)
	Suggestions(ctx context.Context) ([]task.Scored, error)
}

type bulkDoneMsg struct {
	res bulk.Result
	err error
}

type suggestionsMsg struct {
	tasks []task.Scored
	err   error
}

type browseMode int

const (
	modeNormal browseMode = iota
	modeFilter
)

// BrowseModel is the bubbletea model for `triage browse`.
type BrowseModel struct {
	ctx     context.Context
	backend Backend
	preload []byte

	view   view.View
	rows   []view.Item
	cursor int
	mode   browseMode
	filter string

	busy   bool
	status string
	failed bool

	showSuggestions bool
	suggestions     []task.Scored
	suggestErr      error
	loadingSugg     bool

	width  int
	height int
}

// NewBrowseModel creates a browser over backend. A non-nil preload is
// submitted as a bulk request when the program starts.
func NewBrowseModel(ctx context.Context, backend Backend, preload []byte) *BrowseModel {
	m := &BrowseModel{
		ctx:     ctx,
		backend: backend,
		preload: preload,
		width:   80,
		height:  24,
	}
	m.refresh()
	return m
}

// RunBrowse launches the browser full-screen.
func RunBrowse(ctx context.Context, backend Backend, preload []byte) error {
	m := NewBrowseModel(ctx, backend, preload)
	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("browse tui: %w", err)
	}
	return nil
}

func (m *BrowseModel) Init() tea.Cmd {
	if m.preload == nil {
		return nil
	}
	m.busy = true
	m.status = "Analyzing tasks..."
	return m.submitBulk(m.preload)
}

func (m *BrowseModel) submitBulk(raw []byte) tea.Cmd {
	ctx, backend := m.ctx, m.backend
	return func() tea.Msg {
		res, err := backend.SubmitBulk(ctx, raw)
		return bulkDoneMsg{res: res, err: err}
	}
}

func (m *BrowseModel) fetchSuggestions() tea.Cmd {
	ctx, backend := m.ctx, m.backend
	return func() tea.Msg {
		tasks, err := backend.Suggestions(ctx)
		return suggestionsMsg{tasks: tasks, err: err}
	}
}

func (m *BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case bulkDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.failed = true
			m.status = msg.err.Error()
		} else {
			m.failed = false
			m.status = fmt.Sprintf("%d analyzed, %d failed", len(msg.res.Accepted), msg.res.FailedCount)
		}
		m.refresh()
		return m, nil

	case suggestionsMsg:
		m.loadingSugg = false
		m.suggestions = msg.tasks
		m.suggestErr = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.mode == modeFilter {
			return m.handleFilterKey(msg)
		}
		return m.handleNormalKey(msg)
	}
	return m, nil
}

func (m *BrowseModel) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit

	case "j", "down":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}

	case "g":
		m.cursor = 0

	case "G":
		if len(m.rows) > 0 {
			m.cursor = len(m.rows) - 1
		}

	case "tab":
		m.setStrategy(m.backend.Strategy().Next())

	case "1", "2", "3", "4":
		m.setStrategy(rank.Strategies[key[0]-'1'])

	case "s":
		m.showSuggestions = !m.showSuggestions
		if m.showSuggestions {
			m.loadingSugg = true
			return m, m.fetchSuggestions()
		}

	case "/":
		m.mode = modeFilter
		m.filter = ""
		m.applyFilter()
	}
	return m, nil
}

func (m *BrowseModel) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.mode = modeNormal
		m.filter = ""
		m.applyFilter()

	case "enter":
		m.mode = modeNormal

	case "backspace":
		if len(m.filter) > 0 {
			runes := []rune(m.filter)
			m.filter = string(runes[:len(runes)-1])
			m.applyFilter()
		}

	default:
		if msg.Type == tea.KeyRunes {
			m.filter += string(msg.Runes)
			m.applyFilter()
		}
	}
	return m, nil
}

// setStrategy re-derives the view; the working set is untouched.
func (m *BrowseModel) setStrategy(s rank.Strategy) {
	if s == m.backend.Strategy() {
		return
	}
	m.backend.SetStrategy(s)
	m.refresh()
	m.cursor = 0
}

func (m *BrowseModel) refresh() {
	m.view = m.backend.View()
	m.applyFilter()
}

func (m *BrowseModel) applyFilter() {
	m.rows = filterItems(m.view.Items, m.filter)
	if m.cursor >= len(m.rows) {
		m.cursor = max(len(m.rows)-1, 0)
	}
}

func (m *BrowseModel) View() string {
	var b strings.Builder

	header := ui.Title.Render("  triage") + ui.Muted.Render("  "+ui.IconDot+" ") + ui.Accent.Render(m.view.StrategyLabel)
	if m.filter != "" {
		header += ui.Muted.Render(fmt.Sprintf("  filter: %q", m.filter))
	}
	b.WriteString(header + "\n")
	b.WriteString("  " + ui.Muted.Render(m.view.Summary) + "\n\n")

	if m.view.Empty {
		if m.busy {
			b.WriteString("  " + ui.Muted.Render("Waiting for the scoring service...") + "\n")
		}
	} else if len(m.rows) == 0 {
		b.WriteString("  " + ui.Muted.Render("No matches. Press esc to clear filter.") + "\n")
	} else {
		m.renderRows(&b)
	}

	if m.showSuggestions {
		b.WriteString("\n")
		m.renderSuggestions(&b)
	}

	b.WriteString("\n")
	if m.mode == modeFilter {
		prompt := lipgloss.NewStyle().Foreground(ui.Gold).Bold(true).Render("/")
		b.WriteString("  " + prompt + " " + m.filter + "█\n")
	} else {
		b.WriteString("\n")
	}

	if m.status != "" {
		style := ui.Muted
		if m.failed {
			style = ui.Error
		}
		b.WriteString("  " + style.Render(m.status) + "\n")
	}

	var help string
	if m.mode == modeFilter {
		help = "  esc clear · enter confirm"
	} else {
		help = "  j/k move · tab/1-4 strategy · s suggestions · / filter · q quit"
	}
	b.WriteString(ui.Muted.Render(help) + "\n")

	return b.String()
}

func (m *BrowseModel) renderRows(b *strings.Builder) {
	visHeight := m.height - 12
	if m.showSuggestions {
		visHeight -= 5
	}
	if visHeight < 3 {
		visHeight = 3
	}

	offset := 0
	if m.cursor >= visHeight {
		offset = m.cursor - visHeight + 1
	}
	end := min(offset+visHeight, len(m.rows))

	for i := offset; i < end; i++ {
		it := m.rows[i]
		selected := i == m.cursor

		pointer := "  "
		title := ui.TaskTitle.Render(it.Description)
		if selected {
			pointer = ui.Accent.Render(ui.IconArrow + " ")
			title = lipgloss.NewStyle().Foreground(ui.Gold).Bold(true).Render(it.Description)
		}
		pill := ui.LevelStyle(it.Level).Render(fmt.Sprintf("%-6s", it.Level.Label()))
		due := ui.BandStyle(it.Band).Render("(" + ui.DaysPhrase(it.DaysLeft) + ")")

		fmt.Fprintf(b, "  %s%s %s  %s %s\n", pointer, pill, title, ui.Score.Render(it.Score), due)
		if selected {
			b.WriteString("       " + ui.Muted.Render(it.Explanation) + "\n")
		}
	}
}

func (m *BrowseModel) renderSuggestions(b *strings.Builder) {
	b.WriteString("  " + ui.Title.Render("Suggested next") + "\n")
	switch {
	case m.loadingSugg:
		b.WriteString("  " + ui.Muted.Render("Loading...") + "\n")
	case m.suggestErr != nil:
		b.WriteString("  " + ui.Error.Render(m.suggestErr.Error()) + "\n")
	case len(m.suggestions) == 0:
		b.WriteString("  " + ui.Muted.Render(ui.NoSuggestions) + "\n")
	default:
		for i, t := range m.suggestions {
			fmt.Fprintf(b, "  %d. %s  %s\n", i+1, t.Description, ui.Score.Render(view.FormatScore(t.PriorityScore)))
		}
	}
}
