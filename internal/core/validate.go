package core

import (
	"fmt"
	"strings"

	"github.com/valter-silva-au/cyber-warrior/pkg/models"
)

// ValidateMission checks a mission record for missing required fields and
// inconsistent completion criteria. All problems are reported in one error
// wrapping ErrInvalidMission.
func ValidateMission(m models.Mission) error {
	var errs []string

	if strings.TrimSpace(m.ID) == "" {
		errs = append(errs, "id must not be empty")
	}
	if strings.TrimSpace(m.Title) == "" {
		errs = append(errs, "title must not be empty")
	}
	if len(m.Tasks) == 0 {
		errs = append(errs, "tasks must not be empty")
	}
	for i, t := range m.Tasks {
		if strings.TrimSpace(t.Name) == "" {
			errs = append(errs, fmt.Sprintf("tasks[%d].name must not be empty", i))
		}
	}

	required := m.CompletionCriteria.RequiredTasks
	if required < 0 {
		errs = append(errs, fmt.Sprintf("completion_criteria.required_tasks must be non-negative, got %d", required))
	}
	if required > len(m.Tasks) {
		errs = append(errs, fmt.Sprintf(
			"completion_criteria.required_tasks %d exceeds task count %d",
			required, len(m.Tasks),
		))
	}
	if m.Rewards.XP < 0 {
		errs = append(errs, fmt.Sprintf("rewards.xp must be non-negative, got %d", m.Rewards.XP))
	}

	if len(errs) > 0 {
		id := m.ID
		if id == "" {
			id = "<unnamed>"
		}
		return fmt.Errorf("%w %s:\n  - %s", ErrInvalidMission, id, strings.Join(errs, "\n  - "))
	}
	return nil
}
