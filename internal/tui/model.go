package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/valter-silva-au/cyber-warrior/internal/core"
	"github.com/valter-silva-au/cyber-warrior/pkg/models"
)

// helperTickMsg advances the breathing cycle that issued it.
type helperTickMsg struct {
	gen uint64
}

// catalogReloadedMsg carries missions re-read from the catalog file.
type catalogReloadedMsg struct {
	missions []models.Mission
}

// catalogErrMsg reports a failed catalog reload.
type catalogErrMsg struct {
	err error
}

// Option configures a Model.
type Option func(*Model)

// WithHelperInterval sets how long each breathing phase lasts.
func WithHelperInterval(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithCatalogUpdates makes the shell follow catalog reloads.
func WithCatalogUpdates(updates <-chan []models.Mission, errs <-chan error) Option {
	return func(m *Model) {
		m.catalogUpdates = updates
		m.catalogErrs = errs
	}
}

// Model is the shell's bubbletea model. Session holds all mission state;
// the model itself only keeps view state.
type Model struct {
	session  *core.Session
	router   Router
	keys     keyMap
	help     help.Model
	bar      progress.Model
	helper   core.HelperWidget
	interval time.Duration

	cursor    int
	status    string
	statusErr bool

	width  int
	height int

	catalogUpdates <-chan []models.Mission
	catalogErrs    <-chan error
}

// New creates the shell over session.
func New(session *core.Session, opts ...Option) Model {
	m := Model{
		session:  session,
		router:   NewRouter(),
		keys:     defaultKeyMap(),
		help:     help.New(),
		bar:      progress.New(progress.WithDefaultGradient()),
		interval: core.DefaultHelperInterval,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Route returns the current view.
func (m Model) Route() Route { return m.router.Current() }

// Helper returns the helper widget state.
func (m Model) Helper() core.HelperWidget { return m.helper }

func (m Model) Init() tea.Cmd {
	return m.waitForCatalog()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.bar.Width = max(10, min(msg.Width-8, 60))
		return m, nil

	case helperTickMsg:
		if m.helper.Advance(msg.gen) && m.helper.Cycle().Active() {
			return m, m.tick(msg.gen)
		}
		return m, nil

	case catalogReloadedMsg:
		catalog, err := core.NewCatalog(msg.missions)
		if err != nil {
			m.setError(fmt.Errorf("catalog reload rejected: %w", err))
		} else {
			m.session.ReplaceCatalog(catalog)
			m.cursor = clamp(m.cursor, catalog.Len())
			m.setStatus(fmt.Sprintf("Catalog reloaded: %d missions", catalog.Len()))
		}
		return m, m.waitForCatalog()

	case catalogErrMsg:
		m.setError(fmt.Errorf("catalog reload failed: %w", msg.err))
		return m, m.waitForCatalog()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.helper.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Home):
		m.navigate(RouteHome)
		return m, nil
	case key.Matches(msg, m.keys.Missions):
		m.navigate(RouteMissions)
		return m, nil
	case key.Matches(msg, m.keys.Helper):
		m.helper.Toggle()
		return m, nil
	case key.Matches(msg, m.keys.Breathe):
		gen := m.helper.StartCycle()
		m.session.RecordHelperCycle()
		return m, m.tick(gen)
	}

	if m.router.Current() == RouteHome {
		if key.Matches(msg, m.keys.Enter) {
			m.navigate(RouteMissions)
		}
		return m, nil
	}

	if _, _, ok := m.session.Active(); ok {
		m.handleRunnerKey(msg)
		return m, nil
	}
	m.handleCatalogKey(msg)
	return m, nil
}

func (m *Model) handleCatalogKey(msg tea.KeyMsg) {
	missions := m.session.Catalog().List()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(missions)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Enter):
		if len(missions) == 0 {
			return
		}
		if _, err := m.session.StartMission(missions[m.cursor].ID); err != nil {
			m.setError(err)
			return
		}
		m.setStatus("")
	}
}

func (m *Model) handleRunnerKey(msg tea.KeyMsg) {
	snap, _, _ := m.session.Active()
	switch {
	case key.Matches(msg, m.keys.Up):
		if snap.ActiveIndex > 0 {
			m.apply(m.session.SelectTask(snap.ActiveIndex - 1))
		}
	case key.Matches(msg, m.keys.Down):
		if snap.ActiveIndex < snap.TaskCount-1 {
			m.apply(m.session.SelectTask(snap.ActiveIndex + 1))
		}
	case key.Matches(msg, m.keys.Complete):
		m.apply(m.session.CompleteTask(snap.ActiveIndex))
	case key.Matches(msg, m.keys.Finish):
		if !snap.CanFinish {
			m.setError(fmt.Errorf("%w: %d/%d required tasks done",
				core.ErrCriteriaUnmet, snap.CompletedCount, snap.RequiredTasks))
			return
		}
		_, mission, _ := m.session.Active()
		if _, err := m.session.FinishMission(); err != nil {
			m.setError(err)
			return
		}
		m.setStatus(fmt.Sprintf("Mission complete: %s (+%d XP)", mission.Title, mission.Rewards.XP))
	case key.Matches(msg, m.keys.Back):
		m.session.AbandonMission()
		m.setStatus("")
	}
}

// navigate switches views. Leaving the missions view discards the active
// runner.
func (m *Model) navigate(to Route) {
	from := m.router.Current()
	changed, err := m.router.Navigate(string(to))
	if err != nil {
		m.setError(err)
		return
	}
	if changed && from == RouteMissions {
		m.session.AbandonMission()
	}
	if changed {
		m.setStatus("")
	}
}

func (m *Model) apply(_ core.RunnerSnapshot, err error) {
	if err != nil {
		m.setError(err)
		return
	}
	m.setStatus("")
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
	if errors.Is(err, core.ErrNoActiveMission) {
		m.status = "No mission in progress."
	}
}

func (m Model) tick(gen uint64) tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return helperTickMsg{gen: gen}
	})
}

func (m Model) waitForCatalog() tea.Cmd {
	if m.catalogUpdates == nil {
		return nil
	}
	updates, errs := m.catalogUpdates, m.catalogErrs
	return func() tea.Msg {
		select {
		case missions, ok := <-updates:
			if !ok {
				return nil
			}
			return catalogReloadedMsg{missions: missions}
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			return catalogErrMsg{err: err}
		}
	}
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
