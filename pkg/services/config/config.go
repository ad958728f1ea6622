package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "TIMELINE_REPORT"

const (
	ViewerNone    = "none"
	ViewerBrowser = "browser"
	// ViewerHost shows reports through the host's own display command
	ViewerHost = "host"
)

type Config struct {
	TempDir      string        `mapstructure:"temp_dir"`
	LogLevel     string        `mapstructure:"log_level"`
	CommandsFile string        `mapstructure:"commands_file"`
	Viewer       string        `mapstructure:"viewer"`
	History      HistoryConfig `mapstructure:"history"`
	Server       ServerConfig  `mapstructure:"server"`
}

type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DBPath  string `mapstructure:"db_path"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("temp_dir", os.TempDir())
	v.SetDefault("log_level", "info")
	v.SetDefault("commands_file", "")
	v.SetDefault("viewer", ViewerNone)
	v.SetDefault("history.enabled", false)
	v.SetDefault("history.db_path", "timeline-report.db")
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", "8080")
}

// LoadConfig reads settings from the optional config file and TIMELINE_REPORT_* variables.
// An empty path loads defaults and environment only.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse timeline report config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Viewer {
	case ViewerNone, ViewerBrowser, ViewerHost:
	default:
		return fmt.Errorf("unsupported viewer %q", c.Viewer)
	}

	if c.History.Enabled && c.History.DBPath == "" {
		return fmt.Errorf("history.db_path is required when history is enabled")
	}
	return nil
}
