// Package core contains the business logic for Cyber Warrior: the mission
// catalog, the mission runner, the progress reducer, the helper widget's
// breathing cycle and configuration.
package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/valter-silva-au/cyber-warrior/pkg/models"
)

// ConfigFileName is the name of the global configuration file, without the
// extension Viper appends when searching.
const ConfigFileName = ".cwconfig"

// ConfigurationManager loads and validates the .cwconfig file.
type ConfigurationManager interface {
	LoadGlobalConfig() (*models.GlobalConfig, error)
	ValidateConfig(cfg *models.GlobalConfig) error
}

// viperConfigManager implements ConfigurationManager using Viper for
// reading YAML configuration files and CW_* environment overrides.
type viperConfigManager struct {
	basePath string
}

// NewConfigurationManager creates a ConfigurationManager that reads
// configuration files relative to basePath.
func NewConfigurationManager(basePath string) ConfigurationManager {
	return &viperConfigManager{basePath: basePath}
}

// DefaultGlobalConfig returns a GlobalConfig populated with defaults.
func DefaultGlobalConfig() *models.GlobalConfig {
	return &models.GlobalConfig{
		CatalogPath:     "missions.yaml",
		HelperInterval:  DefaultHelperInterval,
		EventLogEnabled: true,
		EventLogPath:    ".cw_events.jsonl",
		LogLevel:        "warn",
	}
}

// LoadGlobalConfig reads .cwconfig from the base path. A .env file next to
// it is loaded into the process environment first so CW_* variables set
// there take effect. Missing files yield defaults.
func (cm *viperConfigManager) LoadGlobalConfig() (*models.GlobalConfig, error) {
	cfg := DefaultGlobalConfig()

	if err := godotenv.Load(filepath.Join(cm.basePath, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName(ConfigFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(cm.basePath)
	v.SetEnvPrefix("CW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("catalog.path", cfg.CatalogPath)
	v.SetDefault("helper.interval", cfg.HelperInterval.String())
	v.SetDefault("event_log.enabled", cfg.EventLogEnabled)
	v.SetDefault("event_log.path", cfg.EventLogPath)
	v.SetDefault("log.level", cfg.LogLevel)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading %s: %w", ConfigFileName, err)
		}
	}

	cfg.CatalogPath = v.GetString("catalog.path")
	cfg.EventLogEnabled = v.GetBool("event_log.enabled")
	cfg.EventLogPath = v.GetString("event_log.path")
	cfg.LogLevel = v.GetString("log.level")

	raw := v.GetString("helper.interval")
	interval, err := time.ParseDuration(raw)
	if err != nil {
		return nil, fmt.Errorf("helper.interval %q is not a duration: %w", raw, err)
	}
	cfg.HelperInterval = interval

	return cfg, nil
}

// validLogLevels are the zap level names accepted by log.level.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// ValidateConfig checks cfg for invalid values and reports every problem.
func (cm *viperConfigManager) ValidateConfig(cfg *models.GlobalConfig) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	var errs []string

	if cfg.HelperInterval <= 0 {
		errs = append(errs, fmt.Sprintf("helper.interval must be positive, got %s", cfg.HelperInterval))
	}
	if cfg.EventLogEnabled && strings.TrimSpace(cfg.EventLogPath) == "" {
		errs = append(errs, "event_log.path must not be empty when the event log is enabled")
	}
	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		errs = append(errs, fmt.Sprintf(
			"log.level %q is invalid, must be one of: debug, info, warn, error",
			cfg.LogLevel,
		))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
