// Package internal provides the App struct that wires all components of the
// Cyber Warrior trainer together and initializes the CLI layer.
package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/valter-silva-au/cyber-warrior/internal/cli"
	"github.com/valter-silva-au/cyber-warrior/internal/core"
	"github.com/valter-silva-au/cyber-warrior/internal/observability"
	"github.com/valter-silva-au/cyber-warrior/internal/storage"
	"github.com/valter-silva-au/cyber-warrior/pkg/models"
	"go.uber.org/zap"
)

// App holds all service dependencies for the Cyber Warrior trainer.
type App struct {
	BasePath  string
	SessionID string

	// Configuration
	ConfigMgr core.ConfigurationManager
	Config    *models.GlobalConfig

	// Diagnostics
	Logger *zap.Logger

	// Storage layer
	CatalogStore storage.CatalogStore
	// CatalogErr is set when the catalog file could not be loaded; the
	// built-in missions stand in for it.
	CatalogErr error

	// Core services
	Catalog *core.Catalog
	Session *core.Session

	// Observability
	EventLog    observability.EventLog
	MetricsCalc observability.MetricsCalculator
}

// NewApp creates and wires all components of the trainer. basePath is the
// directory holding .cwconfig.yaml, the catalog file and the event log.
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath, SessionID: uuid.NewString()}

	// --- Configuration ---
	app.ConfigMgr = core.NewConfigurationManager(basePath)
	cfg, err := app.ConfigMgr.LoadGlobalConfig()
	if err != nil {
		return nil, err
	}
	if err := app.ConfigMgr.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	app.Config = cfg

	app.Logger, err = newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	// --- Storage layer ---
	app.CatalogStore = storage.NewCatalogStore(basePath, cfg.CatalogPath)
	missions, err := app.loadCatalog()
	if err != nil {
		app.CatalogErr = err
		app.Logger.Warn("catalog unusable, using built-in missions",
			zap.String("path", app.CatalogStore.Path()),
			zap.Error(err))
		missions = core.DefaultMissions()
	}

	// --- Core services ---
	app.Catalog, err = core.NewCatalog(missions)
	if err != nil {
		return nil, fmt.Errorf("built-in catalog: %w", err)
	}

	// --- Observability ---
	var events core.EventLogger
	if cfg.EventLogEnabled {
		eventLogPath := cfg.EventLogPath
		if !filepath.IsAbs(eventLogPath) {
			eventLogPath = filepath.Join(basePath, eventLogPath)
		}
		app.EventLog, err = observability.NewJSONLEventLog(eventLogPath)
		if err != nil {
			// Non-fatal: play on without an event log.
			app.Logger.Warn("event log disabled", zap.Error(err))
			app.EventLog = nil
		}
	}
	if app.EventLog != nil {
		events = observability.NewSessionLogger(app.EventLog, app.SessionID)
		app.MetricsCalc = observability.NewMetricsCalculator(app.EventLog)
	}

	app.Session = core.NewSession(app.Catalog, events, app.Logger.With(zap.String("session", app.SessionID)))

	// --- Wire CLI ---
	cli.BasePath = basePath
	cli.Session = app.Session
	cli.CatalogStore = app.CatalogStore
	cli.CatalogErr = app.CatalogErr
	cli.HelperInterval = cfg.HelperInterval
	cli.Logger = app.Logger
	cli.EventLog = app.EventLog
	cli.MetricsCalc = app.MetricsCalc

	return app, nil
}

// loadCatalog reads and validates the catalog file, or returns the built-in
// missions when the file does not exist.
func (a *App) loadCatalog() ([]models.Mission, error) {
	if !a.CatalogStore.Exists() {
		return core.DefaultMissions(), nil
	}
	missions, err := a.CatalogStore.Load()
	if err != nil {
		return nil, err
	}
	if _, err := core.NewCatalog(missions); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", a.CatalogStore.Path(), err)
	}
	a.Logger.Debug("catalog loaded",
		zap.String("path", a.CatalogStore.Path()),
		zap.Int("missions", len(missions)))
	return missions, nil
}

// newLogger builds the diagnostic logger. Output goes to stderr so it never
// interleaves with command output or the MCP stdio stream.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}
	config := zap.NewProductionConfig()
	config.Level = lvl
	config.Encoding = "console"
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	return logger, nil
}

// Close releases resources held by the App, such as the event log file handle.
// It is safe to call Close on an App whose EventLog is nil.
func (a *App) Close() error {
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
	if a.EventLog != nil {
		return a.EventLog.Close()
	}
	return nil
}

// ResolveBasePath determines the base path for the Cyber Warrior data
// directory. It checks the CW_HOME env var, then the nearest directory
// holding .cwconfig.yaml, then falls back to the current directory.
func ResolveBasePath() string {
	if home := os.Getenv("CW_HOME"); home != "" {
		return home
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	configFile := core.ConfigFileName + ".yaml"
	for {
		if _, err := os.Stat(filepath.Join(dir, configFile)); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	cwd, _ := os.Getwd()
	return cwd
}
