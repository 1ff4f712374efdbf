package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/valter-silva-au/cyber-warrior/internal/core"
	"github.com/valter-silva-au/cyber-warrior/pkg/models"
)

func (m Model) View() string {
	var sections []string

	sections = append(sections, m.renderHeader())

	var body string
	switch m.router.Current() {
	case RouteHome:
		body = m.renderHome()
	case RouteMissions:
		if snap, mission, ok := m.session.Active(); ok {
			body = m.renderRunner(snap, mission)
		} else {
			body = m.renderCatalog()
		}
	}
	sections = append(sections, panelStyle.Render(body))

	if m.helper.IsOpen() {
		sections = append(sections, helperPanelStyle.Render(renderHelper(m.helper.Cycle())))
	}

	if m.status != "" {
		style := okStyle
		if m.statusErr {
			style = errorStyle
		}
		sections = append(sections, style.Render(m.status))
	}

	sections = append(sections, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	tabs := make([]string, 0, len(Routes))
	for _, r := range Routes {
		label := fmt.Sprintf("%s %s", r.Title(), dimStyle.Render(string(r)))
		if r == m.router.Current() {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render(" Cyber Warrior "),
		strings.Join(tabs, ""),
	)
}

func (m Model) renderHome() string {
	p := m.session.Progress()

	var b strings.Builder
	b.WriteString(headerStyle.Render("Your progress"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  XP: %s\n", xpStyle.Render(fmt.Sprintf("%d", p.XP))))
	b.WriteString(fmt.Sprintf("  Missions completed: %d\n", len(p.CompletedMissions)))

	if len(p.Badges) == 0 {
		b.WriteString("  Badges: " + dimStyle.Render("none yet"))
	} else {
		badges := make([]string, len(p.Badges))
		for i, badge := range p.Badges {
			badges[i] = badgeStyle.Render("[" + badge + "]")
		}
		b.WriteString("  Badges: " + strings.Join(badges, " "))
	}

	if len(p.CompletedMissions) > 0 {
		b.WriteString("\n\n  History:\n")
		for _, id := range p.CompletedMissions {
			b.WriteString("    • " + id + "\n")
		}
	}

	b.WriteString("\n\n" + dimStyle.Render("  Press enter to browse missions."))
	return b.String()
}

func (m Model) renderCatalog() string {
	missions := m.session.Catalog().List()

	var b strings.Builder
	b.WriteString(headerStyle.Render("Missions"))
	b.WriteString("\n")

	if len(missions) == 0 {
		b.WriteString("  No missions available.")
		return b.String()
	}

	for i, mission := range missions {
		cursor := "  "
		style := pendingTaskStyle
		if i == m.cursor {
			cursor = "> "
			style = activeTaskStyle
		}
		line := fmt.Sprintf("%s%-28s L%d  %-12s %s", cursor, mission.Title, mission.Level, mission.Duration,
			xpStyle.Render(fmt.Sprintf("%d XP", mission.Rewards.XP)))
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	selected := missions[clamp(m.cursor, len(missions))]
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + selected.Description))
	if len(selected.Tags) > 0 {
		b.WriteString("\n" + dimStyle.Render("  #"+strings.Join(selected.Tags, " #")))
	}
	return b.String()
}

func (m Model) renderRunner(snap core.RunnerSnapshot, mission models.Mission) string {
	tasks := renderTaskList(snap, mission)
	detail := renderTaskDetail(snap, mission)

	var b strings.Builder
	b.WriteString(headerStyle.Render(mission.Title))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tasks, "   ", detail))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Progress: %s    Required: %d tasks\n",
		xpStyle.Render(fmt.Sprintf("%d/%d tasks completed", snap.CompletedCount, snap.TaskCount)),
		snap.RequiredTasks,
	))
	b.WriteString(m.bar.ViewAs(snap.Progress))
	if snap.CanFinish {
		b.WriteString("\n\n" + okStyle.Render("[f] Complete Mission"))
	}
	return b.String()
}

func renderTaskList(snap core.RunnerSnapshot, mission models.Mission) string {
	done := make(map[int]bool, len(snap.Completed))
	for _, i := range snap.Completed {
		done[i] = true
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Tasks"))
	b.WriteString("\n")
	for i, task := range mission.Tasks {
		style := pendingTaskStyle
		switch {
		case i == snap.ActiveIndex:
			style = activeTaskStyle
		case done[i]:
			style = completedTaskStyle
		}
		mark := " "
		if done[i] {
			mark = checkStyle.Render("✓")
		}
		b.WriteString(fmt.Sprintf("%s %s\n", style.Render(task.Name), mark))
		b.WriteString(dimStyle.Render("  "+task.Duration) + "\n")
	}
	return b.String()
}

func renderTaskDetail(snap core.RunnerSnapshot, mission models.Mission) string {
	task := mission.Tasks[snap.ActiveIndex]
	completed := false
	for _, i := range snap.Completed {
		if i == snap.ActiveIndex {
			completed = true
			break
		}
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(task.Name))
	b.WriteString("\n")
	b.WriteString(task.Description)
	if len(task.Resources) > 0 {
		b.WriteString("\n\nResources:\n")
		for _, r := range task.Resources {
			b.WriteString(dimStyle.Render("• "+r) + "\n")
		}
	}
	if !completed {
		b.WriteString("\n" + okStyle.Render("[c] Complete Task"))
	}
	return lipgloss.NewStyle().Width(50).Render(b.String())
}

func renderHelper(c core.BreathingCycle) string {
	var b strings.Builder
	b.WriteString(badgeStyle.Render("Helper bot"))
	b.WriteString("\n")
	if !c.Active() {
		b.WriteString("Feeling stuck? Press b for a breathing exercise.")
		return b.String()
	}
	b.WriteString(c.Phase().Instruction())
	b.WriteString("  ")
	for p := 0; p < models.BreathPhaseCount; p++ {
		if models.BreathPhase(p) == c.Phase() {
			b.WriteString("●")
		} else {
			b.WriteString("○")
		}
	}
	return b.String()
}
