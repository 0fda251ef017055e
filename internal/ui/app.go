package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/shelfscan/internal/prefs"
	"github.com/five82/shelfscan/internal/scan"
	"github.com/five82/shelfscan/internal/session"
	"github.com/five82/shelfscan/internal/state"
)

// keyboardSource labels events typed into the scan field.
const keyboardSource = "keyboard"

// Options configures the UI.
type Options struct {
	Context         context.Context
	Controller      *session.Controller
	Bus             *scan.Bus
	APIURL          string
	ThemeName       string
	ShowDescription bool
	PrefsPath       string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx        context.Context
	controller *session.Controller
	bus        *scan.Bus
	apiURL     string
	prefsPath  string
	keys       keyMap

	// UI state
	theme    Theme
	showDesc bool
	width    int
	height   int
	ready    bool
	now      time.Time

	// Data state
	snapshot state.Snapshot

	scanInput textinput.Model
	spinner   spinner.Model

	// Help overlay
	showHelp bool

	// Search modal
	showSearch     bool
	searching      bool
	searchInput    textinput.Model
	searchViewport viewport.Model
	searchOutcome  *session.SearchOutcome
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.Default().Theme
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	scanInput := textinput.New()
	scanInput.Prompt = "ISBN ▸ "
	scanInput.Placeholder = "scan or type an ISBN"
	scanInput.CharLimit = 32
	scanInput.Focus()

	searchInput := textinput.New()
	searchInput.Prompt = "ISBN ▸ "
	searchInput.Placeholder = "e.g. 9780134190440"
	searchInput.CharLimit = 32

	spin := spinner.New()
	spin.Spinner = spinner.MiniDot

	m := Model{
		ctx:            ctx,
		controller:     opts.Controller,
		bus:            opts.Bus,
		apiURL:         opts.APIURL,
		prefsPath:      prefsPath,
		keys:           DefaultKeyMap(),
		theme:          GetTheme(themeName),
		showDesc:       opts.ShowDescription,
		now:            time.Now(),
		scanInput:      scanInput,
		searchInput:    searchInput,
		spinner:        spin,
		searchViewport: viewport.New(SearchModalWidth-6, SearchViewportHeight),
	}
	if m.controller != nil {
		m.snapshot = m.controller.Snapshot()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(DefaultUIInterval),
		m.spinner.Tick,
		textinput.Blink,
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeSearchViewport()
		return m, nil

	case tickMsg:
		m.now = time.Time(msg)
		return m, tickCmd(DefaultUIInterval)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		return m, nil

	case searchResultMsg:
		m.searching = false
		outcome := msg.outcome
		m.searchOutcome = &outcome
		m.searchViewport.SetContent(outcome.Text())
		m.searchViewport.GotoTop()
		return m, nil
	}

	// Cursor blink and other component messages.
	var scanCmd, searchCmd tea.Cmd
	m.scanInput, scanCmd = m.scanInput.Update(msg)
	m.searchInput, searchCmd = m.searchInput.Update(msg)
	return m, tea.Batch(scanCmd, searchCmd)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.showSearch {
		return m.renderSearch()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if m.showSearch {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Escape):
		if m.scanInput.Value() != "" {
			m.scanInput.Reset()
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Place):
		if text := strings.TrimSpace(m.scanInput.Value()); text != "" {
			m.scanInput.Reset()
			return m, m.submitScanCmd(text)
		}
		if !m.placeEnabled() {
			return m, nil
		}
		return m, m.placeCmd()

	case key.Matches(msg, m.keys.ClearScan):
		m.scanInput.Reset()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.ToggleDesc):
		m.showDesc = !m.showDesc
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.showSearch = true
		m.scanInput.Blur()
		cmd := m.searchInput.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshCmd()

	case key.Matches(msg, m.keys.Up):
		return m, m.moveCmd(-1)

	case key.Matches(msg, m.keys.Down):
		return m, m.moveCmd(1)
	}

	if routesToScanField(msg) {
		var cmd tea.Cmd
		m.scanInput, cmd = m.scanInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleSearchKey processes keyboard input while the search modal is open.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.closeSearch()
		cmd := m.scanInput.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.ConfirmScan):
		isbn := strings.TrimSpace(m.searchInput.Value())
		if isbn == "" || m.searching {
			return m, nil
		}
		m.searching = true
		m.searchOutcome = nil
		return m, tea.Batch(m.searchCmd(isbn), m.spinner.Tick)

	case key.Matches(msg, m.keys.ScrollUp), key.Matches(msg, m.keys.ScrollDown):
		var cmd tea.Cmd
		m.searchViewport, cmd = m.searchViewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m *Model) closeSearch() {
	m.showSearch = false
	m.searching = false
	m.searchOutcome = nil
	m.searchInput.Reset()
	m.searchInput.Blur()
	m.searchViewport.SetContent("")
}

func (m *Model) resizeSearchViewport() {
	w := SearchModalWidth - 6
	if m.width > 0 && m.width-10 < w {
		w = maxInt(m.width-10, 20)
	}
	h := SearchViewportHeight
	if m.height > 0 && m.height-12 < h {
		h = maxInt(m.height-12, 3)
	}
	m.searchViewport.Width = w
	m.searchViewport.Height = h
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, ShowDescription: m.showDesc})
}

func (m Model) placeEnabled() bool {
	if m.snapshot.Book == nil || m.snapshot.Placing {
		return false
	}
	return session.BuildShelfView(m.snapshot.Shelves, m.snapshot.SelectedShelfID).PlaceEnabled
}

// routesToScanField reports whether msg is input for the keyboard-wedge field.
func routesToScanField(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyLeft, tea.KeyRight:
		return true
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return false
		}
		for _, r := range msg.Runes {
			if !isScanRune(r) {
				return false
			}
		}
		return true
	}
	return false
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderScanBar())
	b.WriteString("\n")

	if m.width < LayoutCompactWidth {
		b.WriteString(m.renderBook(m.width))
		b.WriteString("\n")
		b.WriteString(m.renderShelves(m.width))
	} else {
		left := maxInt(m.width/2, LayoutMinPanelWidth)
		right := maxInt(m.width-left, LayoutMinPanelWidth)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderBook(left),
			m.renderShelves(right),
		))
	}
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type searchResultMsg struct {
	outcome session.SearchOutcome
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) actionContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(m.ctx, ActionTimeout)
}

func (m Model) submitScanCmd(text string) tea.Cmd {
	c, bus, ctx := m.controller, m.bus, m.ctx
	return func() tea.Msg {
		if c == nil {
			return nil
		}
		if bus != nil {
			bus.Publish(scan.Event{Text: text, At: time.Now(), Source: keyboardSource})
		} else {
			c.HandleScan(ctx, text)
		}
		return snapshotMsg(c.Snapshot())
	}
}

func (m Model) placeCmd() tea.Cmd {
	c := m.controller
	return func() tea.Msg {
		if c == nil {
			return nil
		}
		ctx, cancel := m.actionContext()
		defer cancel()
		_, _ = c.PlaceOnShelf(ctx)
		return snapshotMsg(c.Snapshot())
	}
}

func (m Model) refreshCmd() tea.Cmd {
	c := m.controller
	return func() tea.Msg {
		if c == nil {
			return nil
		}
		ctx, cancel := m.actionContext()
		defer cancel()
		_ = c.RefreshShelves(ctx)
		return snapshotMsg(c.Snapshot())
	}
}

func (m Model) moveCmd(delta int) tea.Cmd {
	c := m.controller
	return func() tea.Msg {
		if c == nil {
			return nil
		}
		c.MoveSelection(delta)
		return snapshotMsg(c.Snapshot())
	}
}

func (m Model) searchCmd(isbn string) tea.Cmd {
	c := m.controller
	return func() tea.Msg {
		if c == nil {
			return searchResultMsg{outcome: session.SearchOutcome{ISBN: isbn}}
		}
		ctx, cancel := m.actionContext()
		defer cancel()
		outcome, _ := c.Search(ctx, isbn)
		return searchResultMsg{outcome: outcome}
	}
}

// Run starts the Bubble Tea program and feeds it controller snapshots until
// the user quits or ctx is cancelled.
func Run(opts Options) error {
	m := New(opts)
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, programOpts...)

	if opts.Controller != nil {
		unsubscribe := opts.Controller.Subscribe(func(s state.Snapshot) {
			p.Send(snapshotMsg(s))
		})
		defer unsubscribe()
	}

	_, err := p.Run()
	return err
}
