package core

import (
	"fmt"
	"sort"

	"github.com/valter-silva-au/cyber-warrior/pkg/models"
)

// MissionCompleted is emitted by a runner when its mission is finished. The
// owner of the runner feeds it to ApplyCompletion.
type MissionCompleted struct {
	MissionID string
	XP        int
	Badges    []string
}

// RunnerSnapshot is a read-only view of a runner for display layers.
type RunnerSnapshot struct {
	MissionID      string
	ActiveIndex    int
	Completed      []int
	CompletedCount int
	TaskCount      int
	RequiredTasks  int
	Progress       float64
	CanFinish      bool
	Finished       bool
}

// MissionRunner tracks the player's work through one mission: which task is
// displayed and which tasks are marked complete. A runner is created fresh
// for every mission selection and discarded once finished or abandoned.
type MissionRunner struct {
	mission   models.Mission
	completed map[int]struct{}
	active    int
	finished  bool
}

// NewMissionRunner validates the mission and returns a runner positioned on
// the first task with nothing completed.
func NewMissionRunner(mission models.Mission) (*MissionRunner, error) {
	if err := ValidateMission(mission); err != nil {
		return nil, err
	}
	return &MissionRunner{
		mission:   mission.Clone(),
		completed: make(map[int]struct{}),
	}, nil
}

// Mission returns a copy of the mission being run.
func (r *MissionRunner) Mission() models.Mission {
	return r.mission.Clone()
}

func (r *MissionRunner) checkIndex(index int) error {
	if index < 0 || index >= len(r.mission.Tasks) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(r.mission.Tasks))
	}
	return nil
}

// SelectTask makes the task at index the active one.
func (r *MissionRunner) SelectTask(index int) error {
	if err := r.checkIndex(index); err != nil {
		return err
	}
	r.active = index
	return nil
}

// CompleteTask marks the task at index complete. Completing an already
// completed task is a no-op; tasks may be completed in any order.
func (r *MissionRunner) CompleteTask(index int) error {
	if err := r.checkIndex(index); err != nil {
		return err
	}
	r.completed[index] = struct{}{}
	return nil
}

// IsComplete reports whether the task at index is marked complete.
func (r *MissionRunner) IsComplete(index int) bool {
	_, ok := r.completed[index]
	return ok
}

// CompletedCount returns the number of completed tasks.
func (r *MissionRunner) CompletedCount() int {
	return len(r.completed)
}

// CompletedIndices returns the completed task indices in ascending order.
func (r *MissionRunner) CompletedIndices() []int {
	out := make([]int, 0, len(r.completed))
	for i := range r.completed {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// ActiveIndex returns the index of the displayed task.
func (r *MissionRunner) ActiveIndex() int {
	return r.active
}

// ActiveTask returns the displayed task.
func (r *MissionRunner) ActiveTask() models.Task {
	return r.mission.Tasks[r.active]
}

// CanFinish reports whether enough tasks are complete to finish the mission.
func (r *MissionRunner) CanFinish() bool {
	return len(r.completed) >= r.mission.CompletionCriteria.RequiredTasks
}

// Progress returns the fraction of tasks completed, in [0, 1].
func (r *MissionRunner) Progress() float64 {
	return float64(len(r.completed)) / float64(len(r.mission.Tasks))
}

// Finished reports whether FinishMission has succeeded on this runner.
func (r *MissionRunner) Finished() bool {
	return r.finished
}

// FinishMission closes out the mission and returns the completion event.
// It fails with ErrCriteriaUnmet when CanFinish is false and with
// ErrMissionFinished on repeated calls.
func (r *MissionRunner) FinishMission() (MissionCompleted, error) {
	if r.finished {
		return MissionCompleted{}, fmt.Errorf("%w: %s", ErrMissionFinished, r.mission.ID)
	}
	if !r.CanFinish() {
		return MissionCompleted{}, fmt.Errorf("%w: %d of %d required tasks completed",
			ErrCriteriaUnmet, len(r.completed), r.mission.CompletionCriteria.RequiredTasks)
	}
	r.finished = true
	return MissionCompleted{
		MissionID: r.mission.ID,
		XP:        r.mission.Rewards.XP,
		Badges:    append([]string(nil), r.mission.Rewards.Badges...),
	}, nil
}

// Snapshot returns the runner state for rendering.
func (r *MissionRunner) Snapshot() RunnerSnapshot {
	return RunnerSnapshot{
		MissionID:      r.mission.ID,
		ActiveIndex:    r.active,
		Completed:      r.CompletedIndices(),
		CompletedCount: len(r.completed),
		TaskCount:      len(r.mission.Tasks),
		RequiredTasks:  r.mission.CompletionCriteria.RequiredTasks,
		Progress:       r.Progress(),
		CanFinish:      r.CanFinish(),
		Finished:       r.finished,
	}
}
