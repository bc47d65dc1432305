package cli

import (
	"context"
	"strings"
	"time"

	chewyapp "github.com/alexanderramin/chewy/internal/app"
	"github.com/alexanderramin/chewy/internal/cli/formatter"
	"github.com/alexanderramin/chewy/internal/domain"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type watchKeyMap struct {
	Refresh key.Binding
	Next    key.Binding
	Prev    key.Binding
	Quit    key.Binding
}

func defaultWatchKeys() watchKeyMap {
	return watchKeyMap{
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Next:    key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("n", "next board")),
		Prev:    key.NewBinding(key.WithKeys("p", "left"), key.WithHelp("p", "previous board")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k watchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.Next, k.Prev, k.Quit}
}

func (k watchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// Ticks and results carry the generation they were issued under. A refresh
// or board switch bumps the generation, so anything still in flight from
// before is dropped on arrival.
type (
	tickMsg struct{ gen int }

	dashboardMsg struct {
		gen  int
		resp *chewyapp.DashboardResponse
		err  error
	}

	boardsMsg struct {
		boards []domain.Board
		err    error
	}

	// hardReloadMsg purges the response cache and refetches, once.
	hardReloadMsg struct{}
)

type watchOptions struct {
	interval    time.Duration
	statusboard bool
	reloadDelay time.Duration
}

type watchModel struct {
	ctx  context.Context
	app  *App
	opts watchOptions

	keys    watchKeyMap
	help    help.Model
	spinner spinner.Model
	now     func() time.Time

	boards    []domain.Board
	boardID   string
	gen       int
	loading   bool
	reloaded  bool
	state     chewyapp.ViewState
	dashboard *chewyapp.DashboardResponse
	err       error
	width     int
}

func newWatchModel(ctx context.Context, app *App, boardID string, opts watchOptions) watchModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple

	return watchModel{
		ctx:     ctx,
		app:     app,
		opts:    opts,
		keys:    defaultWatchKeys(),
		help:    help.New(),
		spinner: sp,
		now:     time.Now,
		boardID: boardID,
		loading: true,
		state:   chewyapp.StateLoading,
	}
}

func (m watchModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.fetch(), m.loadBoards(), m.spinner.Tick}
	if m.opts.statusboard && m.opts.reloadDelay > 0 {
		cmds = append(cmds, tea.Tick(m.opts.reloadDelay, func(time.Time) tea.Msg { return hardReloadMsg{} }))
	}
	return tea.Batch(cmds...)
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			return m.refresh()
		case key.Matches(msg, m.keys.Next):
			return m.switchBoard(1)
		case key.Matches(msg, m.keys.Prev):
			return m.switchBoard(-1)
		}
		return m, nil

	case boardsMsg:
		if msg.err != nil {
			m.app.logger().Warn("listing boards", zap.Error(msg.err))
			return m, nil
		}
		m.boards = msg.boards
		return m, nil

	case tickMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = true
		return m, m.fetch()

	case dashboardMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		m.state = chewyapp.StateFor(msg.err)
		m.err = msg.err
		m.dashboard = msg.resp
		return m, m.scheduleTick()

	case hardReloadMsg:
		if m.reloaded {
			return m, nil
		}
		m.reloaded = true
		if m.app.Cache != nil {
			if err := m.app.Cache.Purge(m.ctx); err != nil {
				m.app.logger().Warn("purging cache", zap.Error(err))
			}
		}
		return m.refresh()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m watchModel) refresh() (watchModel, tea.Cmd) {
	m.gen++
	m.loading = true
	return m, m.fetch()
}

func (m watchModel) switchBoard(delta int) (tea.Model, tea.Cmd) {
	if len(m.boards) == 0 {
		return m, nil
	}
	idx := -1
	for i, b := range m.boards {
		if b.ID == m.boardID {
			idx = i
			break
		}
	}
	if idx < 0 && delta < 0 {
		idx = 0
	}
	idx = (idx + delta + len(m.boards)) % len(m.boards)

	m.boardID = m.boards[idx].ID
	m.dashboard = nil
	m.err = nil
	m.state = chewyapp.StateLoading
	m, cmd := m.refresh()
	return m, tea.Batch(cmd, m.remember())
}

func (m watchModel) fetch() tea.Cmd {
	gen, boardID := m.gen, m.boardID
	return func() tea.Msg {
		resp, err := m.app.Dashboard.Calc(m.ctx, chewyapp.NewDashboardRequest(boardID))
		return dashboardMsg{gen: gen, resp: resp, err: err}
	}
}

func (m watchModel) scheduleTick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.opts.interval, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

func (m watchModel) loadBoards() tea.Cmd {
	return func() tea.Msg {
		list, err := m.app.Boards.ListBoards(m.ctx)
		if err != nil {
			return boardsMsg{err: err}
		}
		return boardsMsg{boards: list.Boards}
	}
}

func (m watchModel) remember() tea.Cmd {
	boardID := m.boardID
	return func() tea.Msg {
		if err := m.app.Boards.RememberBoard(m.ctx, boardID); err != nil {
			m.app.logger().Warn("remembering board", zap.Error(err))
		}
		return nil
	}
}

func (m watchModel) View() string {
	var b strings.Builder

	if !m.opts.statusboard {
		b.WriteString(m.titleBar())
		b.WriteString("\n\n")
	}

	switch {
	case m.dashboard != nil:
		b.WriteString(formatter.FormatDashboard(m.dashboard, formatter.DashboardOptions{
			Bare: m.opts.statusboard,
			Now:  m.now(),
		}))
	case m.err != nil:
		b.WriteString(formatter.FormatError(m.err))
		b.WriteString("\n")
	default:
		b.WriteString(m.spinner.View() + " " + formatter.Dim("Loading board…"))
		b.WriteString("\n")
	}

	if !m.opts.statusboard {
		b.WriteString("\n")
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

func (m watchModel) titleBar() string {
	parts := []string{formatter.StyleHeader.Render("chewy")}
	name := m.boardID
	for _, bd := range m.boards {
		if bd.ID == m.boardID {
			name = bd.Name
			break
		}
	}
	parts = append(parts, formatter.Bold(name), formatter.StateIndicator(m.state))
	if m.loading {
		parts = append(parts, m.spinner.View())
	}
	return strings.Join(parts, "  ")
}
