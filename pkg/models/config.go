package models

import "time"

// GlobalConfig holds settings read from .cwconfig via Viper.
type GlobalConfig struct {
	CatalogPath     string        `yaml:"catalog_path" mapstructure:"catalog_path"`
	HelperInterval  time.Duration `yaml:"helper_interval" mapstructure:"helper_interval"`
	EventLogEnabled bool          `yaml:"event_log_enabled" mapstructure:"event_log_enabled"`
	EventLogPath    string        `yaml:"event_log_path" mapstructure:"event_log_path"`
	LogLevel        string        `yaml:"log_level" mapstructure:"log_level"`
}
