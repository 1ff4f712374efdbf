package internal

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/valter-silva-au/cyber-warrior/internal/cli"
	"github.com/valter-silva-au/cyber-warrior/internal/core"
	"github.com/valter-silva-au/cyber-warrior/internal/observability"
	"github.com/valter-silva-au/cyber-warrior/internal/storage"
)

func newTestApp(t *testing.T, dir string) *App {
	t.Helper()
	app, err := NewApp(dir)
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestResolveBasePath_CWHomeSet(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("CW_HOME", tmpDir)

	got := ResolveBasePath()
	if got != tmpDir {
		t.Errorf("ResolveBasePath() = %q, want %q", got, tmpDir)
	}
}

func TestResolveBasePath_FindsConfig(t *testing.T) {
	tmpDir := t.TempDir()
	subDir := filepath.Join(tmpDir, "sub", "nested")
	if err := os.MkdirAll(subDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, ".cwconfig.yaml"), []byte("log:\n  level: warn\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CW_HOME", "")
	t.Chdir(subDir)

	got := ResolveBasePath()
	if got != tmpDir {
		t.Errorf("ResolveBasePath() = %q, want %q (should find .cwconfig.yaml in parent)", got, tmpDir)
	}
}

func TestResolveBasePath_FallbackToCwd(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("CW_HOME", "")
	t.Chdir(tmpDir)

	got := ResolveBasePath()
	if got != tmpDir {
		t.Errorf("ResolveBasePath() = %q, want %q (should fall back to cwd)", got, tmpDir)
	}
}

func TestNewApp_Defaults(t *testing.T) {
	tmpDir := t.TempDir()
	app := newTestApp(t, tmpDir)

	if app.BasePath != tmpDir {
		t.Errorf("app.BasePath = %q, want %q", app.BasePath, tmpDir)
	}
	if app.SessionID == "" {
		t.Error("app.SessionID is empty")
	}
	if app.Catalog.Len() != len(core.DefaultMissions()) {
		t.Errorf("catalog has %d missions, want the %d built-in ones", app.Catalog.Len(), len(core.DefaultMissions()))
	}
	if app.EventLog == nil || app.MetricsCalc == nil {
		t.Fatal("event log and metrics should be wired by default")
	}
	if _, err := os.Stat(filepath.Join(tmpDir, ".cw_events.jsonl")); err != nil {
		t.Errorf("event log file not created: %v", err)
	}

	if cli.Session != app.Session {
		t.Error("cli.Session not wired")
	}
	if cli.HelperInterval != core.DefaultHelperInterval {
		t.Errorf("cli.HelperInterval = %v, want %v", cli.HelperInterval, core.DefaultHelperInterval)
	}
}

func TestNewApp_LoadsCatalogFile(t *testing.T) {
	tmpDir := t.TempDir()
	missions := core.DefaultMissions()[:1]
	if err := storage.NewCatalogStore(tmpDir, "missions.yaml").Save(missions); err != nil {
		t.Fatal(err)
	}

	app := newTestApp(t, tmpDir)

	if app.Catalog.Len() != 1 {
		t.Errorf("catalog has %d missions, want 1", app.Catalog.Len())
	}
}

func TestNewApp_InvalidCatalog(t *testing.T) {
	tmpDir := t.TempDir()
	bad := "missions:\n  - id: broken\n    title: Broken\n    tasks: []\n"
	if err := os.WriteFile(filepath.Join(tmpDir, "missions.yaml"), []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}

	app := newTestApp(t, tmpDir)

	if !errors.Is(app.CatalogErr, core.ErrInvalidMission) {
		t.Errorf("CatalogErr = %v, want ErrInvalidMission", app.CatalogErr)
	}
	if !errors.Is(cli.CatalogErr, core.ErrInvalidMission) {
		t.Errorf("cli.CatalogErr = %v, want ErrInvalidMission", cli.CatalogErr)
	}
	if app.Catalog.Len() != len(core.DefaultMissions()) {
		t.Errorf("catalog has %d missions, want the %d built-in ones", app.Catalog.Len(), len(core.DefaultMissions()))
	}
}

func TestNewApp_UnreadableCatalog(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "missions.yaml"), []byte("missions: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}

	app := newTestApp(t, tmpDir)

	if app.CatalogErr == nil {
		t.Fatal("expected CatalogErr for malformed YAML")
	}
	if app.Session == nil {
		t.Fatal("Session should still be wired")
	}
}

func TestNewApp_InvalidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := "log:\n  level: loud\n"
	if err := os.WriteFile(filepath.Join(tmpDir, ".cwconfig.yaml"), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewApp(tmpDir)
	if err == nil || !strings.Contains(err.Error(), "log.level") {
		t.Errorf("expected log.level validation error, got %v", err)
	}
}

func TestNewApp_EventLogDisabled(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := "event_log:\n  enabled: false\n"
	if err := os.WriteFile(filepath.Join(tmpDir, ".cwconfig.yaml"), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	app := newTestApp(t, tmpDir)

	if app.EventLog != nil || app.MetricsCalc != nil {
		t.Error("event log should be disabled")
	}
	if _, err := os.Stat(filepath.Join(tmpDir, ".cw_events.jsonl")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("event log file should not exist, stat err = %v", err)
	}
	// Playing without an event log must still work.
	if _, err := app.Session.StartMission("mission-1"); err != nil {
		t.Errorf("StartMission: %v", err)
	}
}

func TestNewApp_SessionEventsRecorded(t *testing.T) {
	tmpDir := t.TempDir()
	app := newTestApp(t, tmpDir)

	if _, err := app.Session.StartMission("mission-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := app.Session.CompleteTask(0); err != nil {
		t.Fatal(err)
	}
	if _, err := app.Session.FinishMission(); err != nil {
		t.Fatal(err)
	}

	events, err := app.EventLog.Read(observability.EventFilter{Session: app.SessionID})
	if err != nil {
		t.Fatal(err)
	}
	var types []string
	for _, e := range events {
		types = append(types, e.Type)
	}
	want := []string{core.EventMissionStarted, core.EventTaskCompleted, core.EventMissionFinished}
	if strings.Join(types, ",") != strings.Join(want, ",") {
		t.Errorf("event types = %v, want %v", types, want)
	}
}
