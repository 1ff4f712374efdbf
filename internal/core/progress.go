package core

import "github.com/valter-silva-au/cyber-warrior/pkg/models"

// ApplyCompletion returns the progress that results from crediting a
// finished mission. The input is not modified. Repeated completions of the
// same mission are credited again: ids and badges are appended without
// deduplication.
func ApplyCompletion(progress models.UserProgress, event MissionCompleted) models.UserProgress {
	next := models.UserProgress{
		XP:                progress.XP,
		CompletedMissions: make([]string, 0, len(progress.CompletedMissions)+1),
		Badges:            make([]string, 0, len(progress.Badges)+len(event.Badges)),
	}
	if event.XP > 0 {
		next.XP += event.XP
	}
	next.CompletedMissions = append(next.CompletedMissions, progress.CompletedMissions...)
	next.CompletedMissions = append(next.CompletedMissions, event.MissionID)
	next.Badges = append(next.Badges, progress.Badges...)
	next.Badges = append(next.Badges, event.Badges...)
	return next
}
