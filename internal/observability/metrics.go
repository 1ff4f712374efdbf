package observability

import (
	"fmt"
	"time"
)

// Metrics holds play statistics derived from the event log.
type Metrics struct {
	Sessions          int            `json:"sessions"`
	MissionsStarted   int            `json:"missions_started"`
	MissionsFinished  int            `json:"missions_finished"`
	MissionsAbandoned int            `json:"missions_abandoned"`
	TasksCompleted    int            `json:"tasks_completed"`
	XPEarned          int            `json:"xp_earned"`
	BadgesEarned      map[string]int `json:"badges_earned"`
	FinishedByMission map[string]int `json:"finished_by_mission"`
	HelperCycles      int            `json:"helper_cycles"`
	EventCount        int            `json:"event_count"`
	OldestEvent       *time.Time     `json:"oldest_event,omitempty"`
	NewestEvent       *time.Time     `json:"newest_event,omitempty"`
}

// MetricsCalculator derives metrics from the event log.
type MetricsCalculator interface {
	Calculate(since time.Time) (*Metrics, error)
}

type metricsCalculator struct {
	eventLog EventLog
}

// NewMetricsCalculator creates a MetricsCalculator reading from eventLog.
func NewMetricsCalculator(eventLog EventLog) MetricsCalculator {
	return &metricsCalculator{eventLog: eventLog}
}

// Calculate aggregates every event recorded at or after since.
func (mc *metricsCalculator) Calculate(since time.Time) (*Metrics, error) {
	events, err := mc.eventLog.Read(EventFilter{Since: &since})
	if err != nil {
		return nil, fmt.Errorf("reading events for metrics: %w", err)
	}

	m := &Metrics{
		BadgesEarned:      make(map[string]int),
		FinishedByMission: make(map[string]int),
		EventCount:        len(events),
	}
	sessions := make(map[string]struct{})

	for i, event := range events {
		t := event.Time
		if i == 0 {
			m.OldestEvent = &t
		}
		m.NewestEvent = &t
		if event.Session != "" {
			sessions[event.Session] = struct{}{}
		}

		switch event.Type {
		case "mission.started":
			m.MissionsStarted++
		case "mission.abandoned":
			m.MissionsAbandoned++
		case "task.completed":
			m.TasksCompleted++
		case "helper.cycle_started":
			m.HelperCycles++
		case "mission.finished":
			m.MissionsFinished++
			if id, ok := event.Data["mission_id"].(string); ok {
				m.FinishedByMission[id]++
			}
			// Numbers decode from JSON as float64.
			if xp, ok := event.Data["xp"].(float64); ok {
				m.XPEarned += int(xp)
			}
			if badges, ok := event.Data["badges"].([]any); ok {
				for _, b := range badges {
					if s, ok := b.(string); ok {
						m.BadgesEarned[s]++
					}
				}
			}
		}
	}
	m.Sessions = len(sessions)

	return m, nil
}
