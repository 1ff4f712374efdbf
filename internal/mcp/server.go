// Package mcp provides an MCP (Model Context Protocol) server that lets
// assistants browse the mission catalog and play missions through tools.
package mcp

import (
	"context"
	"fmt"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/valter-silva-au/cyber-warrior/internal/core"
	"github.com/valter-silva-au/cyber-warrior/pkg/models"
)

// Server wraps a session and exposes it as MCP tools.
type Server struct {
	server  *gomcp.Server
	session *core.Session
}

// NewServer creates a new MCP server driving session.
func NewServer(session *core.Session, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{session: session}
	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "cw", Version: version},
		nil,
	)
	s.registerTools()
	return s
}

// Run serves on stdio, blocking until the client disconnects or the
// context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type missionSummary struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Level         int      `json:"level"`
	Duration      string   `json:"duration"`
	Tags          []string `json:"tags,omitempty"`
	TaskCount     int      `json:"task_count"`
	RequiredTasks int      `json:"required_tasks"`
	XP            int      `json:"xp"`
}

type listMissionsInput struct {
	Tag string `json:"tag,omitempty" jsonschema:"only list missions carrying this tag"`
}

type listMissionsOutput struct {
	Missions []missionSummary `json:"missions"`
	Count    int              `json:"count"`
}

type missionIDInput struct {
	MissionID string `json:"mission_id" jsonschema:"required,the mission identifier (e.g. mission-1)"`
}

type taskIndexInput struct {
	Index int `json:"index" jsonschema:"zero-based task index within the active mission"`
}

type emptyInput struct{}

type runnerOutput struct {
	MissionID      string  `json:"mission_id"`
	Title          string  `json:"title"`
	ActiveIndex    int     `json:"active_index"`
	ActiveTask     string  `json:"active_task"`
	Completed      []int   `json:"completed"`
	CompletedCount int     `json:"completed_count"`
	TaskCount      int     `json:"task_count"`
	RequiredTasks  int     `json:"required_tasks"`
	Progress       float64 `json:"progress"`
	CanFinish      bool    `json:"can_finish"`
}

type progressOutput struct {
	XP                int      `json:"xp"`
	CompletedMissions []string `json:"completed_missions"`
	Badges            []string `json:"badges"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "list_missions",
		Description: "List available missions with level, duration, task count and XP reward.",
	}, s.handleListMissions)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_mission",
		Description: "Get a mission's full record including its ordered tasks and rewards.",
	}, s.handleGetMission)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "start_mission",
		Description: "Start a mission. Replaces any mission already in progress.",
	}, s.handleStartMission)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "select_task",
		Description: "Make a task of the active mission the displayed one.",
	}, s.handleSelectTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "complete_task",
		Description: "Mark a task of the active mission complete. Completing a task twice has no further effect.",
	}, s.handleCompleteTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "finish_mission",
		Description: "Finish the active mission once enough tasks are complete and collect its rewards.",
	}, s.handleFinishMission)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_runner",
		Description: "Get the state of the mission in progress.",
	}, s.handleGetRunner)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_progress",
		Description: "Get accumulated XP, completed missions and badges for this session.",
	}, s.handleGetProgress)
}

// --- Tool handlers ---

func (s *Server) handleListMissions(_ context.Context, _ *gomcp.CallToolRequest, input listMissionsInput) (*gomcp.CallToolResult, listMissionsOutput, error) {
	out := listMissionsOutput{Missions: []missionSummary{}}
	for _, m := range s.session.Catalog().List() {
		if input.Tag != "" && !hasTag(m.Tags, input.Tag) {
			continue
		}
		out.Missions = append(out.Missions, summarize(m))
	}
	out.Count = len(out.Missions)
	return nil, out, nil
}

func (s *Server) handleGetMission(_ context.Context, _ *gomcp.CallToolRequest, input missionIDInput) (*gomcp.CallToolResult, models.Mission, error) {
	if input.MissionID == "" {
		return errorResult("mission_id is required"), models.Mission{}, nil
	}
	m, err := s.session.Catalog().Get(input.MissionID)
	if err != nil {
		return errorResult(fmt.Sprintf("getting mission: %s", err)), models.Mission{}, nil
	}
	return nil, m, nil
}

func (s *Server) handleStartMission(_ context.Context, _ *gomcp.CallToolRequest, input missionIDInput) (*gomcp.CallToolResult, runnerOutput, error) {
	if input.MissionID == "" {
		return errorResult("mission_id is required"), runnerOutput{}, nil
	}
	if _, err := s.session.StartMission(input.MissionID); err != nil {
		return errorResult(fmt.Sprintf("starting mission: %s", err)), runnerOutput{}, nil
	}
	return s.runnerResult()
}

func (s *Server) handleSelectTask(_ context.Context, _ *gomcp.CallToolRequest, input taskIndexInput) (*gomcp.CallToolResult, runnerOutput, error) {
	if _, err := s.session.SelectTask(input.Index); err != nil {
		return errorResult(fmt.Sprintf("selecting task: %s", err)), runnerOutput{}, nil
	}
	return s.runnerResult()
}

func (s *Server) handleCompleteTask(_ context.Context, _ *gomcp.CallToolRequest, input taskIndexInput) (*gomcp.CallToolResult, runnerOutput, error) {
	if _, err := s.session.CompleteTask(input.Index); err != nil {
		return errorResult(fmt.Sprintf("completing task: %s", err)), runnerOutput{}, nil
	}
	return s.runnerResult()
}

func (s *Server) handleFinishMission(_ context.Context, _ *gomcp.CallToolRequest, _ emptyInput) (*gomcp.CallToolResult, progressOutput, error) {
	p, err := s.session.FinishMission()
	if err != nil {
		return errorResult(err.Error()), progressOutput{}, nil
	}
	return nil, toProgressOutput(p), nil
}

func (s *Server) handleGetRunner(_ context.Context, _ *gomcp.CallToolRequest, _ emptyInput) (*gomcp.CallToolResult, runnerOutput, error) {
	return s.runnerResult()
}

func (s *Server) handleGetProgress(_ context.Context, _ *gomcp.CallToolRequest, _ emptyInput) (*gomcp.CallToolResult, progressOutput, error) {
	return nil, toProgressOutput(s.session.Progress()), nil
}

// --- Helpers ---

func (s *Server) runnerResult() (*gomcp.CallToolResult, runnerOutput, error) {
	snap, mission, ok := s.session.Active()
	if !ok {
		return errorResult(core.ErrNoActiveMission.Error()), runnerOutput{}, nil
	}
	completed := snap.Completed
	if completed == nil {
		completed = []int{}
	}
	return nil, runnerOutput{
		MissionID:      snap.MissionID,
		Title:          mission.Title,
		ActiveIndex:    snap.ActiveIndex,
		ActiveTask:     mission.Tasks[snap.ActiveIndex].Name,
		Completed:      completed,
		CompletedCount: snap.CompletedCount,
		TaskCount:      snap.TaskCount,
		RequiredTasks:  snap.RequiredTasks,
		Progress:       snap.Progress,
		CanFinish:      snap.CanFinish,
	}, nil
}

func summarize(m models.Mission) missionSummary {
	return missionSummary{
		ID:            m.ID,
		Title:         m.Title,
		Level:         m.Level,
		Duration:      m.Duration,
		Tags:          m.Tags,
		TaskCount:     len(m.Tasks),
		RequiredTasks: m.CompletionCriteria.RequiredTasks,
		XP:            m.Rewards.XP,
	}
}

func toProgressOutput(p models.UserProgress) progressOutput {
	out := progressOutput{
		XP:                p.XP,
		CompletedMissions: p.CompletedMissions,
		Badges:            p.Badges,
	}
	if out.CompletedMissions == nil {
		out.CompletedMissions = []string{}
	}
	if out.Badges == nil {
		out.Badges = []string{}
	}
	return out
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}
