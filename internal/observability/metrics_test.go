package observability

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

func writeSessionEvents(t *testing.T, log EventLog, session string, at time.Time) {
	t.Helper()
	sl := NewSessionLogger(log, session)
	sl.now = func() time.Time { return at }

	steps := []struct {
		typ  string
		data map[string]any
	}{
		{"mission.started", map[string]any{"mission_id": "cyber-basics"}},
		{"task.completed", map[string]any{"mission_id": "cyber-basics", "task": 0}},
		{"task.completed", map[string]any{"mission_id": "cyber-basics", "task": 1}},
		{"mission.finished", map[string]any{"mission_id": "cyber-basics", "xp": 100, "badges": []string{"cyber-basics"}}},
		{"helper.cycle_started", nil},
	}
	for _, s := range steps {
		if err := sl.LogEvent(s.typ, s.data); err != nil {
			t.Fatal(err)
		}
	}
}

func TestMetricsCalculator_Aggregates(t *testing.T) {
	log, err := NewJSONLEventLog(filepath.Join(t.TempDir(), "events.jsonl"))
	if err != nil {
		t.Fatal(err)
	}
	defer log.Close()

	now := time.Now().UTC()
	writeSessionEvents(t, log, "one", now.Add(-time.Hour))
	writeSessionEvents(t, log, "two", now.Add(-30*time.Minute))

	m, err := NewMetricsCalculator(log).Calculate(now.Add(-24 * time.Hour))
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	if m.Sessions != 2 {
		t.Errorf("Sessions = %d, want 2", m.Sessions)
	}
	if m.MissionsStarted != 2 || m.MissionsFinished != 2 {
		t.Errorf("started=%d finished=%d, want 2/2", m.MissionsStarted, m.MissionsFinished)
	}
	if m.TasksCompleted != 4 {
		t.Errorf("TasksCompleted = %d, want 4", m.TasksCompleted)
	}
	if m.XPEarned != 200 {
		t.Errorf("XPEarned = %d, want 200", m.XPEarned)
	}
	if m.BadgesEarned["cyber-basics"] != 2 {
		t.Errorf("BadgesEarned = %v", m.BadgesEarned)
	}
	if m.FinishedByMission["cyber-basics"] != 2 {
		t.Errorf("FinishedByMission = %v", m.FinishedByMission)
	}
	if m.HelperCycles != 2 {
		t.Errorf("HelperCycles = %d, want 2", m.HelperCycles)
	}
	if m.EventCount != 10 {
		t.Errorf("EventCount = %d, want 10", m.EventCount)
	}
	if m.OldestEvent == nil || m.NewestEvent == nil || !m.OldestEvent.Before(*m.NewestEvent) {
		t.Errorf("event range = %v..%v", m.OldestEvent, m.NewestEvent)
	}
}

func TestMetricsCalculator_SinceExcludesOlder(t *testing.T) {
	log, err := NewJSONLEventLog(filepath.Join(t.TempDir(), "events.jsonl"))
	if err != nil {
		t.Fatal(err)
	}
	defer log.Close()

	now := time.Now().UTC()
	writeSessionEvents(t, log, "old", now.Add(-10*24*time.Hour))
	writeSessionEvents(t, log, "new", now.Add(-time.Hour))

	m, err := NewMetricsCalculator(log).Calculate(now.AddDate(0, 0, -7))
	if err != nil {
		t.Fatal(err)
	}
	if m.Sessions != 1 || m.XPEarned != 100 {
		t.Errorf("Sessions=%d XPEarned=%d, want 1/100", m.Sessions, m.XPEarned)
	}
}

func TestMetricsCalculator_Empty(t *testing.T) {
	log, err := NewJSONLEventLog(filepath.Join(t.TempDir(), "events.jsonl"))
	if err != nil {
		t.Fatal(err)
	}
	defer log.Close()

	m, err := NewMetricsCalculator(log).Calculate(time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	if m.EventCount != 0 || m.OldestEvent != nil || m.BadgesEarned == nil {
		t.Errorf("empty metrics = %+v", m)
	}
}

type failingLog struct{}

func (failingLog) Write(Event) error                 { return nil }
func (failingLog) Read(EventFilter) ([]Event, error) { return nil, fmt.Errorf("boom") }
func (failingLog) Close() error                      { return nil }

func TestMetricsCalculator_ReadError(t *testing.T) {
	if _, err := NewMetricsCalculator(failingLog{}).Calculate(time.Time{}); err == nil {
		t.Error("expected error from failing log")
	}
}
