package core

import "github.com/valter-silva-au/cyber-warrior/pkg/models"

// DefaultMissions returns the built-in catalog used when no catalog file is
// configured.
func DefaultMissions() []models.Mission {
	return []models.Mission{
		{
			ID:          "mission-1",
			Title:       "Example Mission",
			Description: "This is an example mission description",
			Level:       1,
			Duration:    "30 minutes",
			Tags:        []string{"beginner", "example"},
			Tasks: []models.Task{
				{
					Name:        "Task 1",
					Description: "Complete this example task",
					Duration:    "10 minutes",
					Resources:   []string{"Resource 1", "Resource 2"},
				},
			},
			CompletionCriteria: models.CompletionCriteria{RequiredTasks: 1},
			Rewards:            models.Rewards{XP: 100, Badges: []string{"beginner-badge"}},
		},
		{
			ID:          "cyber-basics",
			Title:       "Cyber Basics",
			Description: "Learn the **fundamentals** of staying safe online: passwords, updates and phishing.",
			Level:       1,
			Duration:    "45 minutes",
			Tags:        []string{"beginner", "security"},
			Tasks: []models.Task{
				{
					Name:        "Strong passwords",
					Description: "Create a passphrase of at least four random words and store it in a password manager.",
					Duration:    "15 minutes",
					Resources:   []string{"NIST SP 800-63B", "Password manager comparison"},
				},
				{
					Name:        "Spot the phish",
					Description: "Review five sample emails and flag the ones that are phishing attempts.",
					Duration:    "20 minutes",
					Resources:   []string{"Phishing field guide"},
				},
				{
					Name:        "Patch day",
					Description: "Check your operating system and browser for pending updates and install them.",
					Duration:    "10 minutes",
				},
			},
			CompletionCriteria: models.CompletionCriteria{RequiredTasks: 2},
			Rewards:            models.Rewards{XP: 100, Badges: []string{"cyber-basics"}},
		},
		{
			ID:          "network-recon",
			Title:       "Network Recon",
			Description: "Map a lab network and document every exposed service.",
			Level:       2,
			Duration:    "1 hour",
			Tags:        []string{"intermediate", "networking"},
			Tasks: []models.Task{
				{
					Name:        "Host discovery",
					Description: "Enumerate the live hosts on the lab subnet.",
					Duration:    "20 minutes",
					Resources:   []string{"nmap reference guide"},
				},
				{
					Name:        "Service scan",
					Description: "Identify the services and versions listening on each host.",
					Duration:    "25 minutes",
				},
				{
					Name:        "Write-up",
					Description: "Summarise the findings and flag anything outdated.",
					Duration:    "15 minutes",
				},
			},
			CompletionCriteria: models.CompletionCriteria{RequiredTasks: 3},
			Rewards:            models.Rewards{XP: 250, Badges: []string{"recon-rookie"}},
		},
	}
}
