package model

import (
	"fmt"
	"log"
	"time"

	"github.com/byxorna/doclib/pkg/app"
	"github.com/byxorna/doclib/pkg/config"
	"github.com/byxorna/doclib/pkg/db"
	"github.com/byxorna/doclib/pkg/plugins/filter"
	"github.com/byxorna/doclib/pkg/text"
	v1 "github.com/byxorna/doclib/pkg/types/v1"
	"github.com/byxorna/doclib/pkg/ui"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
)

const (
	statusMessageTimeout = time.Second * 3 // how long to show status messages like "opened"
	chromeHeight         = 6               // header, toolbar, status, help and spacing
)

// ReconfigureMsg carries a configuration that replaced the running one.
type ReconfigureMsg struct {
	Config *config.Config
}

type statusMessageTimeoutMsg struct{ seq int }

// mode is what the keyboard is currently driving.
type mode int

const (
	modeBrowse mode = iota
	modeFilter
	modeMenu
	modeDetail
)

func (s mode) String() string {
	return map[mode]string{
		modeBrowse: "browsing documents",
		modeFilter: "editing filter",
		modeMenu:   "row action menu",
		modeDetail: "showing document details",
	}[s]
}

type Model struct {
	cfg        *config.Config
	dispatcher *app.Dispatcher
	retrieval  *db.Retrieval
	first      db.Ticket

	presentation app.Presentation

	mode    mode
	keys    keyMap
	help    help.Model
	spinner spinner.Model
	table   table.Model
	filter  textinput.Model
	matcher *filter.Matcher
	detail  viewport.Model

	// highlight is resolved once, it queries the terminal
	highlight termenv.Style

	menuRow   int
	menuIndex int

	statusMessage string
	statusIsError bool
	statusSeq     int

	width, height int
	quitting      bool
}

// New builds the viewer and starts the first retrieval cycle, so the first
// frame already shows the loading indicator.
func New(cfg *config.Config, d *app.Dispatcher) Model {
	r := db.NewRetrieval(cfg.Collection())

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	fi := textinput.New()
	fi.Prompt = app.FilterLabel + ": "
	fi.CharLimit = 256

	t := table.New(
		table.WithColumns(tableColumns(app.Columns)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(tableStyles())

	m := Model{
		cfg:        cfg,
		dispatcher: d,
		retrieval:  r,
		first:      r.Refresh(),
		keys:       defaultKeyMap(cfg.CustomAction.Label),
		help:       help.New(),
		spinner:    sp,
		table:      t,
		filter:     fi,
		matcher:    &filter.Matcher{},
		detail:     viewport.New(80, 20),
		highlight:  ui.TermStyle(ui.Normal),
	}
	m.rebind()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.dispatcher.Retrieve(m.first))
}

// State is the current retrieval state.
func (m Model) State() db.State { return m.retrieval.State() }

// Presentation is what the last frame was drawn from.
func (m Model) Presentation() app.Presentation { return m.presentation }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table.SetWidth(msg.Width)
		m.table.SetHeight(max(msg.Height-chromeHeight, 3))
		m.detail.Width = msg.Width
		m.detail.Height = max(msg.Height-chromeHeight, 3)
		return m, nil

	case spinner.TickMsg:
		if !m.presentation.IsLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case app.RetrievedMsg:
		if !m.retrieval.Resolve(msg.Ticket, msg.Documents) {
			log.Printf("discarding stale result for ticket %d", msg.Ticket.Seq)
			return m, nil
		}
		m.rebind()
		return m, nil

	case app.RetrievalFailedMsg:
		if !m.retrieval.Reject(msg.Ticket, msg.Err) {
			log.Printf("discarding stale failure for ticket %d: %v", msg.Ticket.Seq, msg.Err)
			return m, nil
		}
		m.rebind()
		return m, nil

	case app.OpenedMsg:
		if msg.Err != nil {
			return m, m.setStatus(msg.Err.Error(), true)
		}
		return m, m.setStatus("Opened "+msg.Document.Name, false)

	case app.ActionDoneMsg:
		if msg.Err != nil {
			return m, m.setStatus(msg.Err.Error(), true)
		}
		return m, m.setStatus(msg.Notice, false)

	case statusMessageTimeoutMsg:
		if msg.seq == m.statusSeq {
			m.statusMessage = ""
			m.statusIsError = false
		}
		return m, nil

	case ReconfigureMsg:
		return m.reconfigure(msg.Config)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) reconfigure(cfg *config.Config) (tea.Model, tea.Cmd) {
	if cfg == nil {
		return m, nil
	}
	m.cfg = cfg
	m.keys = defaultKeyMap(cfg.CustomAction.Label)
	if n, err := cfg.Normalizer(); err == nil {
		m.dispatcher.Normalizer = n
	}
	m.dispatcher.Timeout = cfg.Timeout

	cmd := m.dispatcher.Reconfigure(cfg.Collection(), m.retrieval)
	m.rebind()
	if cmd == nil {
		return m, nil
	}
	log.Printf("collection changed to %s", cfg.Collection())
	return m, tea.Batch(m.spinner.Tick, cmd)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.mode {
	case modeFilter:
		return m.handleFilterKey(msg)
	case modeMenu:
		return m.handleMenuKey(msg)
	case modeDetail:
		return m.handleDetailKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Refresh):
		return m.dispatch(v1.Refresh())

	case key.Matches(msg, m.keys.Toolbar):
		return m.dispatch(v1.CustomAction(nil))

	case key.Matches(msg, m.keys.Open):
		if row, ok := m.selectedRow(); ok {
			return m.dispatch(row.Commands[0])
		}
		return m, nil

	case key.Matches(msg, m.keys.Action):
		if row, ok := m.selectedRow(); ok {
			return m.dispatch(row.Commands[1])
		}
		return m, nil

	case key.Matches(msg, m.keys.Menu):
		if _, ok := m.selectedRow(); ok {
			m.mode = modeMenu
			m.menuRow = m.table.Cursor()
			m.menuIndex = 0
		}
		return m, nil

	case key.Matches(msg, m.keys.Detail):
		if row, ok := m.selectedRow(); ok {
			m.mode = modeDetail
			m.detail.SetContent(renderDetail(row.Document, m.detail.Width))
			m.detail.GotoTop()
		}
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		m.mode = modeFilter
		return m, m.filter.Focus()

	case key.Matches(msg, m.keys.Back):
		if m.filter.Value() != "" {
			m.filter.SetValue("")
			m.rebind()
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.mode = modeBrowse
		m.filter.Blur()
		return m, nil
	case tea.KeyEsc:
		m.mode = modeBrowse
		m.filter.Blur()
		m.filter.SetValue("")
		m.rebind()
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.rebind()
	return m, cmd
}

func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.presentation.Rows
	if m.menuRow >= len(rows) {
		m.mode = modeBrowse
		return m, nil
	}
	commands := rows[m.menuRow].Commands
	switch {
	case key.Matches(msg, m.keys.Up):
		m.menuIndex = max(m.menuIndex-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.menuIndex = min(m.menuIndex+1, len(commands)-1)
	case msg.Type == tea.KeyEnter:
		m.mode = modeBrowse
		return m.dispatch(commands[m.menuIndex])
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Menu), key.Matches(msg, m.keys.Quit):
		m.mode = modeBrowse
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Detail), key.Matches(msg, m.keys.Quit):
		m.mode = modeBrowse
		return m, nil
	case key.Matches(msg, m.keys.Open):
		if row, ok := m.selectedRow(); ok {
			return m.dispatch(row.Commands[0])
		}
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m Model) dispatch(cmd v1.Command) (tea.Model, tea.Cmd) {
	log.Printf("dispatching %s %s", cmd.Kind, cmd.Path())
	c := m.dispatcher.Dispatch(cmd, m.retrieval)
	if cmd.Kind != v1.RefreshCommand {
		return m, c
	}
	m.rebind()
	return m, tea.Batch(m.spinner.Tick, c)
}

func (m Model) selectedRow() (app.Row, bool) {
	rows := m.presentation.Rows
	i := m.table.Cursor()
	if i < 0 || i >= len(rows) {
		return app.Row{}, false
	}
	return rows[i], true
}

// rebind recomputes the presentation from state and pushes the rows into
// the table.
func (m *Model) rebind() {
	m.presentation = app.Bind(m.retrieval.State(), app.BindOptions{
		Title:       m.cfg.Title,
		Description: m.cfg.Description,
		ActionLabel: m.cfg.CustomAction.Label,
		Filter:      m.filter.Value(),
		Matcher:     m.matcher,
	})

	rows := make([]table.Row, 0, len(m.presentation.Rows))
	for _, r := range m.presentation.Rows {
		cells := make(table.Row, len(r.Cells))
		copy(cells, r.Cells)
		cells[0] = fmt.Sprintf("%s %s", text.ExtensionIcon(r.Document.Extension), cells[0])
		rows = append(rows, cells)
	}
	m.table.SetRows(rows)
	if len(rows) > 0 {
		m.table.SetCursor(min(m.table.Cursor(), len(rows)-1))
	}
}

func (m *Model) setStatus(msg string, isError bool) tea.Cmd {
	m.statusSeq++
	m.statusMessage = msg
	m.statusIsError = isError
	seq := m.statusSeq
	return tea.Tick(statusMessageTimeout, func(time.Time) tea.Msg {
		return statusMessageTimeoutMsg{seq: seq}
	})
}

func tableColumns(cols []app.Column) []table.Column {
	out := make([]table.Column, len(cols))
	for i, c := range cols {
		out[i] = table.Column{Title: c.Title, Width: c.Width}
	}
	return out
}
