package core

import (
	"errors"
	"testing"

	"github.com/valter-silva-au/cyber-warrior/pkg/models"
)

func twoTaskMission() models.Mission {
	return models.Mission{
		ID:    "mission-two",
		Title: "Two Tasks",
		Level: 1,
		Tasks: []models.Task{
			{Name: "first", Duration: "5 minutes"},
			{Name: "second", Duration: "5 minutes", Resources: []string{"guide"}},
		},
		CompletionCriteria: models.CompletionCriteria{RequiredTasks: 2},
		Rewards:            models.Rewards{XP: 100, Badges: []string{"cyber-basics"}},
	}
}

func newTestRunner(t *testing.T, m models.Mission) *MissionRunner {
	t.Helper()
	r, err := NewMissionRunner(m)
	if err != nil {
		t.Fatalf("NewMissionRunner: %v", err)
	}
	return r
}

func TestNewMissionRunner_InitialState(t *testing.T) {
	r := newTestRunner(t, twoTaskMission())

	if r.ActiveIndex() != 0 {
		t.Errorf("ActiveIndex = %d, want 0", r.ActiveIndex())
	}
	if r.CompletedCount() != 0 {
		t.Errorf("CompletedCount = %d, want 0", r.CompletedCount())
	}
	if r.Progress() != 0 {
		t.Errorf("Progress = %v, want 0", r.Progress())
	}
	if r.CanFinish() {
		t.Error("CanFinish = true on a fresh runner requiring 2 tasks")
	}
	if r.ActiveTask().Name != "first" {
		t.Errorf("ActiveTask = %q, want first", r.ActiveTask().Name)
	}
}

func TestNewMissionRunner_RejectsInvalidMission(t *testing.T) {
	m := twoTaskMission()
	m.Tasks = nil

	_, err := NewMissionRunner(m)
	if !errors.Is(err, ErrInvalidMission) {
		t.Fatalf("expected ErrInvalidMission, got %v", err)
	}
}

func TestMissionRunner_TwoTaskScenario(t *testing.T) {
	r := newTestRunner(t, twoTaskMission())

	if err := r.CompleteTask(0); err != nil {
		t.Fatalf("CompleteTask(0): %v", err)
	}
	if r.CanFinish() {
		t.Error("CanFinish = true after completing only task 0")
	}
	if got := r.Progress(); got != 0.5 {
		t.Errorf("Progress = %v, want 0.5", got)
	}

	if err := r.CompleteTask(1); err != nil {
		t.Fatalf("CompleteTask(1): %v", err)
	}
	if !r.CanFinish() {
		t.Error("CanFinish = false after completing both tasks")
	}
	if got := r.Progress(); got != 1 {
		t.Errorf("Progress = %v, want 1", got)
	}
}

func TestMissionRunner_CompleteOutOfOrder(t *testing.T) {
	r := newTestRunner(t, twoTaskMission())

	if err := r.CompleteTask(1); err != nil {
		t.Fatalf("CompleteTask(1): %v", err)
	}
	if !r.IsComplete(1) || r.IsComplete(0) {
		t.Errorf("completion set = %v, want [1]", r.CompletedIndices())
	}
}

func TestMissionRunner_SelectTask(t *testing.T) {
	r := newTestRunner(t, twoTaskMission())

	if err := r.SelectTask(1); err != nil {
		t.Fatalf("SelectTask(1): %v", err)
	}
	if r.ActiveIndex() != 1 {
		t.Errorf("ActiveIndex = %d, want 1", r.ActiveIndex())
	}
	if len(r.ActiveTask().Resources) != 1 {
		t.Errorf("expected active task resources, got %v", r.ActiveTask().Resources)
	}

	// Selecting a completed task is allowed.
	_ = r.CompleteTask(0)
	if err := r.SelectTask(0); err != nil {
		t.Errorf("SelectTask on completed task: %v", err)
	}
}

func TestMissionRunner_IndexOutOfRange(t *testing.T) {
	r := newTestRunner(t, twoTaskMission())

	for _, idx := range []int{-1, 2, 100} {
		if err := r.SelectTask(idx); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("SelectTask(%d) error = %v, want ErrIndexOutOfRange", idx, err)
		}
		if err := r.CompleteTask(idx); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("CompleteTask(%d) error = %v, want ErrIndexOutOfRange", idx, err)
		}
		if r.IsComplete(idx) {
			t.Errorf("IsComplete(%d) = true for out-of-range index", idx)
		}
	}
	if r.ActiveIndex() != 0 {
		t.Errorf("ActiveIndex changed to %d after rejected selects", r.ActiveIndex())
	}
	if r.CompletedCount() != 0 {
		t.Errorf("CompletedCount = %d after rejected completes", r.CompletedCount())
	}
}

func TestMissionRunner_FinishRejectedWhenCriteriaUnmet(t *testing.T) {
	r := newTestRunner(t, twoTaskMission())
	_ = r.CompleteTask(0)

	_, err := r.FinishMission()
	if !errors.Is(err, ErrCriteriaUnmet) {
		t.Fatalf("expected ErrCriteriaUnmet, got %v", err)
	}
	if r.Finished() {
		t.Error("runner marked finished after a rejected finish")
	}
}

func TestMissionRunner_FinishEmitsEvent(t *testing.T) {
	r := newTestRunner(t, twoTaskMission())
	_ = r.CompleteTask(0)
	_ = r.CompleteTask(1)

	event, err := r.FinishMission()
	if err != nil {
		t.Fatalf("FinishMission: %v", err)
	}
	if event.MissionID != "mission-two" {
		t.Errorf("MissionID = %q", event.MissionID)
	}
	if event.XP != 100 {
		t.Errorf("XP = %d, want 100", event.XP)
	}
	if len(event.Badges) != 1 || event.Badges[0] != "cyber-basics" {
		t.Errorf("Badges = %v", event.Badges)
	}

	if _, err := r.FinishMission(); !errors.Is(err, ErrMissionFinished) {
		t.Errorf("second FinishMission error = %v, want ErrMissionFinished", err)
	}
}

func TestMissionRunner_ZeroRequiredCanFinishImmediately(t *testing.T) {
	m := twoTaskMission()
	m.CompletionCriteria.RequiredTasks = 0
	r := newTestRunner(t, m)

	if !r.CanFinish() {
		t.Error("CanFinish = false with zero required tasks")
	}
}

func TestMissionRunner_DoesNotAliasMission(t *testing.T) {
	m := twoTaskMission()
	r := newTestRunner(t, m)

	m.Tasks[0].Name = "mutated"
	m.Rewards.Badges[0] = "mutated"

	if r.ActiveTask().Name != "first" {
		t.Error("runner task changed when caller mutated its mission")
	}
	got := r.Mission()
	if got.Rewards.Badges[0] != "cyber-basics" {
		t.Error("runner rewards changed when caller mutated its mission")
	}
}

func TestMissionRunner_Snapshot(t *testing.T) {
	r := newTestRunner(t, twoTaskMission())
	_ = r.CompleteTask(1)
	_ = r.SelectTask(1)

	snap := r.Snapshot()
	if snap.MissionID != "mission-two" || snap.ActiveIndex != 1 {
		t.Errorf("snapshot = %+v", snap)
	}
	if snap.CompletedCount != 1 || snap.TaskCount != 2 || snap.RequiredTasks != 2 {
		t.Errorf("snapshot counts = %+v", snap)
	}
	if len(snap.Completed) != 1 || snap.Completed[0] != 1 {
		t.Errorf("snapshot Completed = %v", snap.Completed)
	}
	if snap.CanFinish {
		t.Error("snapshot CanFinish = true")
	}
}
