package ui

import (
	"log"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"fpick/internal/config"
	"fpick/internal/domain"
	"fpick/internal/eventbus"
	"fpick/internal/preview"
	"fpick/internal/ui/session"
	"fpick/internal/ui/state"
	"fpick/internal/ui/views"
)

// SearchEngine is the picker's view of the external search engine. Search
// may fail; the session then shows zero results and a warning. Progress
// may fail; that is treated as "not scanning".
type SearchEngine interface {
	Search(query string, maxResults int, hint string) (domain.SearchResult, error)
	Progress() (domain.ScanProgress, error)
	RecordAccess(path string)
}

// Model is the picker UI. All session state is mutated inside Update, the
// single logical thread of control; debounce, render scheduling, and
// preview loading coordinate through single-slot guards (generation
// counters and markers) rather than locks.
type Model struct {
	cfg    *config.Config
	engine SearchEngine
	cache  *preview.Cache
	loader *preview.Loader

	state    *state.SessionState
	machine  *session.Machine
	renderer *views.Renderer
	input    textinput.Model
	pager    FilePager

	// initBackend runs during the Opening transition; failure falls the
	// session back to Closed.
	initBackend func() error

	width  int
	height int

	// Single-slot guards
	debounceGen     uint64 // only the newest debounce timer may act
	scanGen         uint64 // only the current session's monitor may act
	renderScheduled bool   // at most one queued render

	// Output of the last executed render
	rendered     string
	previewEntry *preview.Entry
	previewPath  string

	selected string // path chosen on Enter, read by the caller after Run
	quitting bool
}

// NewModel creates the picker model. cache and loader are owned by the
// model; initBackend is invoked on every session open.
func NewModel(cfg *config.Config, engine SearchEngine, cache *preview.Cache, loader *preview.Loader, initBackend func() error) *Model {
	input := textinput.New()
	input.Placeholder = "Search files"
	input.Prompt = "> "
	input.Focus()

	return &Model{
		cfg:         cfg,
		engine:      engine,
		cache:       cache,
		loader:      loader,
		state:       state.NewSessionState(),
		machine:     session.NewMachine(),
		renderer:    views.NewRenderer(),
		input:       input,
		initBackend: initBackend,
	}
}

// Selected returns the path chosen by the user, "" if none
func (m *Model) Selected() string {
	return m.selected
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.pager = newOvPager(p)
}

// Init opens the session
func (m *Model) Init() tea.Cmd {
	return m.openSession()
}

// openSession drives the Closed→Opening→Active transition, triggers the
// initial search, and starts the scan monitor.
func (m *Model) openSession() tea.Cmd {
	if err := m.machine.Open(m.initBackend); err != nil {
		log.Printf("session open failed: %v", err)
		m.state.Notice = err.Error()
		return m.requestRender()
	}
	if !m.machine.IsActive() {
		return nil
	}

	m.state.Active = true
	m.scanGen++

	return tea.Batch(
		m.scheduleUpdate(),
		m.scanTickCmd(m.scanGen),
		textinput.Blink,
	)
}

// closeSession drives Active→Closing→Closed. Teardown cancels the live
// debounce timer and the in-flight preview request by bumping generations
// and clearing the pending-target marker, then clears the cache.
func (m *Model) closeSession() {
	m.machine.Close(func() {
		m.debounceGen++
		m.scanGen++
		m.cache.Clear()
		m.state.Reset()
		m.input.SetValue("")
		m.renderScheduled = false
		m.rendered = ""
		m.previewEntry = nil
		m.previewPath = ""
	})
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width / 2
		return m, m.requestRender()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case debounceFiredMsg:
		// Only the most recently armed timer may fire
		if msg.gen != m.debounceGen || !m.machine.IsActive() {
			return m, nil
		}
		return m, m.performRefresh()

	case renderMsg:
		m.renderScheduled = false
		m.renderNow()
		return m, nil

	case scanTickMsg:
		return m.handleScanTick(msg)

	case previewLoadMsg:
		return m, m.handlePreviewLoad(msg)

	case pagerDoneMsg:
		if msg.err != nil {
			log.Printf("pager failed: %v", msg.err)
			m.state.Notice = "pager failed"
			m.refreshStatus()
		}
		// RestoreTerminal repaints the program view; redo ours too
		return m, m.requestRender()

	case EventMsg:
		return m.handleEvent(msg.Event)
	}

	return m, nil
}

// handleKey processes keyboard input
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.closeSession()
		m.quitting = true
		return m, tea.Quit

	case "enter":
		item, ok := m.state.CursorItem()
		if !ok {
			m.state.Notice = "nothing to select"
			return m, m.requestRender()
		}
		// Close first, selection side effect after
		m.closeSession()
		m.selected = item.Path
		m.engine.RecordAccess(item.Path)
		m.quitting = true
		return m, tea.Quit

	case "up", "ctrl+p":
		m.state.MoveCursor(-1)
		return m, tea.Batch(m.requestRender(), m.scheduleUpdate())

	case "down", "ctrl+n":
		m.state.MoveCursor(1)
		return m, tea.Batch(m.requestRender(), m.scheduleUpdate())

	case "ctrl+g":
		// Toggling git status display needs a full session rebuild
		m.cfg.ShowGitStatus = !m.cfg.ShowGitStatus
		m.closeSession()
		return m, m.openSession()

	case "ctrl+v":
		item, ok := m.state.CursorItem()
		if !ok || m.pager == nil {
			return m, nil
		}
		return m, m.openPager(item.Path)
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)

	if q := m.input.Value(); q != m.state.Query {
		if cmd := m.onQueryChanged(q); cmd != nil {
			return m, tea.Batch(inputCmd, m.requestRender(), cmd)
		}
		return m, tea.Batch(inputCmd, m.requestRender())
	}

	return m, inputCmd
}

// onQueryChanged validates a query edit and schedules the debounced
// refresh. Empty-query signals before the first completed render are
// spurious and ignored; oversized queries are rejected at the boundary
// with the session state left unchanged.
func (m *Model) onQueryChanged(q string) tea.Cmd {
	if q == "" && !m.state.InitialRenderDone {
		m.input.SetValue("")
		return nil
	}

	if len(q) > m.cfg.MaxQueryLength {
		m.state.Notice = "query too long"
		m.input.SetValue(m.state.Query)
		return nil
	}

	m.state.Query = q
	return m.scheduleUpdate()
}

// scheduleUpdate arms the debounce timer. Bumping the generation cancels
// any previously armed timer, so only the newest one can ever act:
// last-write-wins under rapid input bursts.
func (m *Model) scheduleUpdate() tea.Cmd {
	m.debounceGen++
	gen := m.debounceGen
	return tea.Tick(m.cfg.DebounceInterval(), func(time.Time) tea.Msg {
		return debounceFiredMsg{gen: gen}
	})
}

// performRefresh is the debounced update: search, result re-render,
// preview refresh decision, status refresh, in that order; afterwards the
// initial render is marked complete exactly once.
func (m *Model) performRefresh() tea.Cmd {
	res, err := m.engine.Search(m.state.Query, m.cfg.MaxResults, "")
	if err != nil {
		log.Printf("search failed: %v", err)
		m.state.SetResults(domain.SearchResult{})
		m.state.Notice = "search failed: " + err.Error()
	} else {
		m.state.SetResults(res)
	}

	cmds := []tea.Cmd{m.requestRender()}
	if cmd := m.refreshPreview(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	m.refreshStatus()

	m.state.InitialRenderDone = true

	return tea.Batch(cmds...)
}

// requestRender queues a single deferred full render. Idempotent while one
// is queued; the render itself runs on the next message-loop pass and
// reads the then-current state.
func (m *Model) requestRender() tea.Cmd {
	if m.renderScheduled {
		return nil
	}
	m.renderScheduled = true
	return func() tea.Msg { return renderMsg{} }
}

// renderNow executes the queued render against current state
func (m *Model) renderNow() {
	progress := m.currentProgress()

	m.rendered = m.renderer.Render(views.ViewState{
		Width:        m.width,
		Height:       m.height,
		QueryView:    m.input.View(),
		Results:      m.state.Results,
		Cursor:       m.state.Cursor,
		TotalMatched: m.state.TotalMatched,
		TotalFiles:   m.state.TotalFiles,
		Status:       m.state.LastStatus,
		Scanning:     progress.IsScanning,
		PreviewPath:  m.previewPath,
		PreviewEntry: m.previewEntry,
		ShowGit:      m.cfg.ShowGitStatus,
	})
}

// refreshStatus recomputes the status line, skipping when unchanged
func (m *Model) refreshStatus() {
	s := m.renderer.StatusLine(m.state.TotalMatched, m.state.TotalFiles, m.currentProgress(), m.state.Notice)
	if s == m.state.LastStatus {
		return
	}
	m.state.LastStatus = s
}

// currentProgress queries the scan provider; a failure is "not scanning"
func (m *Model) currentProgress() domain.ScanProgress {
	p, err := m.engine.Progress()
	if err != nil {
		return domain.ScanProgress{}
	}
	return p
}

// handleScanTick is one pass of the scan progress monitor: while the scan
// is in flight it refreshes the status line and reschedules itself; on
// completion it triggers one full result refresh and stops.
func (m *Model) handleScanTick(msg scanTickMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.scanGen || !m.machine.IsActive() {
		return m, nil
	}

	if p := m.currentProgress(); p.IsScanning {
		m.refreshStatus()
		return m, tea.Batch(m.requestRender(), m.scanTickCmd(msg.gen))
	}

	return m, m.performRefresh()
}

// scanTickCmd schedules the next monitor poll
func (m *Model) scanTickCmd(gen uint64) tea.Cmd {
	return tea.Tick(m.cfg.ScanPollInterval(), func(time.Time) tea.Msg {
		return scanTickMsg{gen: gen}
	})
}

// refreshPreview decides whether the cursor item needs a preview request
func (m *Model) refreshPreview() tea.Cmd {
	item, ok := m.state.CursorItem()
	if !ok {
		m.state.DisplayedPath = ""
		m.previewEntry = nil
		m.previewPath = ""
		return nil
	}
	return m.requestPreview(item)
}

// requestPreview starts an async preview load for item. Marking the
// pending target before the deferred step suppresses concurrent requests
// for the same path; a newer request supersedes an older in-flight one.
func (m *Model) requestPreview(item domain.FileItem) tea.Cmd {
	if item.Path == m.state.DisplayedPath {
		return nil
	}

	m.state.DisplayedPath = item.Path
	m.previewPath = item.Path
	m.previewEntry = preview.Loading(item.Path)

	path := item.Path
	return func() tea.Msg { return previewLoadMsg{path: path} }
}

// openPager hands the cursor file to the full-content pager. The preview
// pane stays bounded; the pager shows everything.
func (m *Model) openPager(path string) tea.Cmd {
	pager := m.pager
	return func() tea.Msg {
		return pagerDoneMsg{err: pager.ShowFile(path)}
	}
}

// handlePreviewLoad is the deferred load step. If the pending-target
// marker has moved on, the result is discarded without touching the cache
// or the renderer.
func (m *Model) handlePreviewLoad(msg previewLoadMsg) tea.Cmd {
	if msg.path != m.state.DisplayedPath {
		return nil
	}

	entry, ok := m.cache.Get(msg.path)
	if !ok {
		entry = m.loader.Load(msg.path)
		m.cache.Put(msg.path, entry)
	}

	m.previewEntry = entry
	m.previewPath = msg.path

	return m.requestRender()
}

// handleEvent processes domain events forwarded from the event bus
func (m *Model) handleEvent(event eventbus.DomainEvent) (tea.Model, tea.Cmd) {
	if !m.machine.IsActive() {
		return m, nil
	}

	switch e := event.(type) {
	case eventbus.ErrorEvent:
		m.state.Notice = e.Message
		m.refreshStatus()
		return m, m.requestRender()

	case eventbus.IndexUpdatedEvent:
		// The searchable set changed under the current query
		return m, m.performRefresh()

	case eventbus.ScanStartedEvent, eventbus.ScanCompletedEvent:
		m.refreshStatus()
		return m, m.requestRender()
	}

	return m, nil
}

// View returns the last executed render
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	return m.rendered
}
