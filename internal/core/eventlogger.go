package core

// EventLogger is the subset of the observability event log that core
// services need. Defining it here avoids importing the observability package.
type EventLogger interface {
	LogEvent(eventType string, data map[string]any) error
}

// Event types written by the session.
const (
	EventMissionStarted   = "mission.started"
	EventMissionAbandoned = "mission.abandoned"
	EventMissionFinished  = "mission.finished"
	EventTaskSelected     = "task.selected"
	EventTaskCompleted    = "task.completed"
	EventHelperCycle      = "helper.cycle_started"
)
