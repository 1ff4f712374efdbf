package core

import (
	"fmt"
	"sync"

	"github.com/valter-silva-au/cyber-warrior/pkg/models"
	"go.uber.org/zap"
)

// Session is the app shell's state: the catalog, the player's progress and
// at most one active mission runner. All mutation goes through its methods.
type Session struct {
	mu       sync.Mutex
	catalog  *Catalog
	progress models.UserProgress
	active   *MissionRunner
	events   EventLogger
	logger   *zap.Logger
}

// NewSession creates a session over catalog. events and logger may be nil.
func NewSession(catalog *Catalog, events EventLogger, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		catalog: catalog,
		progress: models.UserProgress{
			CompletedMissions: []string{},
			Badges:            []string{},
		},
		events: events,
		logger: logger,
	}
}

// Catalog returns the current catalog.
func (s *Session) Catalog() *Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog
}

// ReplaceCatalog swaps in a new catalog. The active runner keeps its own
// copy of its mission and is not affected.
func (s *Session) ReplaceCatalog(c *Catalog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = c
	s.logger.Debug("catalog replaced", zap.Int("missions", c.Len()))
}

// Progress returns a copy of the player's progress.
func (s *Session) Progress() models.UserProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progressCopy()
}

// progressCopy must be called with s.mu held.
func (s *Session) progressCopy() models.UserProgress {
	return models.UserProgress{
		XP:                s.progress.XP,
		CompletedMissions: append([]string{}, s.progress.CompletedMissions...),
		Badges:            append([]string{}, s.progress.Badges...),
	}
}

// StartMission creates a fresh runner for the mission, replacing any
// active one.
func (s *Session) StartMission(id string) (RunnerSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mission, err := s.catalog.Get(id)
	if err != nil {
		return RunnerSnapshot{}, err
	}
	runner, err := NewMissionRunner(mission)
	if err != nil {
		return RunnerSnapshot{}, err
	}
	if s.active != nil {
		s.logEvent(EventMissionAbandoned, map[string]any{"mission_id": s.active.mission.ID})
	}
	s.active = runner
	s.logEvent(EventMissionStarted, map[string]any{
		"mission_id": id,
		"tasks":      len(mission.Tasks),
		"required":   mission.CompletionCriteria.RequiredTasks,
	})
	return runner.Snapshot(), nil
}

// Active returns the active runner's snapshot and mission.
func (s *Session) Active() (RunnerSnapshot, models.Mission, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return RunnerSnapshot{}, models.Mission{}, false
	}
	return s.active.Snapshot(), s.active.Mission(), true
}

// SelectTask changes the active runner's displayed task.
func (s *Session) SelectTask(index int) (RunnerSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return RunnerSnapshot{}, ErrNoActiveMission
	}
	if err := s.active.SelectTask(index); err != nil {
		return RunnerSnapshot{}, err
	}
	s.logEvent(EventTaskSelected, map[string]any{"mission_id": s.active.mission.ID, "task": index})
	return s.active.Snapshot(), nil
}

// CompleteTask marks a task of the active mission complete.
func (s *Session) CompleteTask(index int) (RunnerSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return RunnerSnapshot{}, ErrNoActiveMission
	}
	already := s.active.IsComplete(index)
	if err := s.active.CompleteTask(index); err != nil {
		return RunnerSnapshot{}, err
	}
	if !already {
		s.logEvent(EventTaskCompleted, map[string]any{"mission_id": s.active.mission.ID, "task": index})
	}
	return s.active.Snapshot(), nil
}

// FinishMission finishes the active mission, credits its rewards and clears
// it. The runner stays active when the criteria are not met.
func (s *Session) FinishMission() (models.UserProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return models.UserProgress{}, ErrNoActiveMission
	}
	event, err := s.active.FinishMission()
	if err != nil {
		return models.UserProgress{}, fmt.Errorf("finishing %s: %w", s.active.mission.ID, err)
	}
	s.progress = ApplyCompletion(s.progress, event)
	s.active = nil
	s.logEvent(EventMissionFinished, map[string]any{
		"mission_id": event.MissionID,
		"xp":         event.XP,
		"badges":     event.Badges,
	})
	s.logger.Info("mission finished",
		zap.String("mission", event.MissionID),
		zap.Int("xp_total", s.progress.XP),
	)
	return s.progressCopy(), nil
}

// AbandonMission discards the active runner without credit. It reports
// whether a mission was active.
func (s *Session) AbandonMission() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return false
	}
	s.logEvent(EventMissionAbandoned, map[string]any{"mission_id": s.active.mission.ID})
	s.active = nil
	return true
}

// RecordHelperCycle logs that a breathing cycle was started.
func (s *Session) RecordHelperCycle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logEvent(EventHelperCycle, nil)
}

func (s *Session) logEvent(eventType string, data map[string]any) {
	s.logger.Debug(eventType, zap.Any("data", data))
	if s.events == nil {
		return
	}
	if err := s.events.LogEvent(eventType, data); err != nil {
		// Non-fatal: the event log is observability only.
		s.logger.Warn("writing event", zap.String("type", eventType), zap.Error(err))
	}
}
