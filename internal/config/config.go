// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Emby     EmbyConfig     `toml:"emby"`
	Notify   NotifyConfig   `toml:"notify"`
}

type ServerConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	LogLevel string `toml:"log_level"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
	// EventRetentionDays bounds the persisted event log; 0 keeps
	// events forever.
	EventRetentionDays int `toml:"event_retention_days"`
}

// EmbyConfig describes the connection to the Emby server whose libraries
// scanarr refreshes.
type EmbyConfig struct {
	Enabled          bool          `toml:"enabled"`
	URL              string        `toml:"url"`
	APIKey           string        `toml:"api_key"`
	TimeoutSeconds   int           `toml:"timeout_seconds"`
	NotifyOnComplete bool          `toml:"notify_on_complete"`
	HistorySize      int           `toml:"history_size"`
	Triggers         TriggerPolicy `toml:"triggers"`
}

// TriggerPolicy maps upstream events to a refresh decision.
type TriggerPolicy struct {
	OnGenerate bool     `toml:"on_generate"`
	OnRename   bool     `toml:"on_rename"`
	Cron       string   `toml:"cron"`
	Libraries  []string `toml:"libraries"`
}

type NotifyConfig struct {
	NtfyServer     string `toml:"ntfy_server"`
	NtfyTopic      string `toml:"ntfy_topic"`
	NtfyPriority   string `toml:"ntfy_priority"`
	TelegramToken  string `toml:"telegram_token"`
	TelegramChatID string `toml:"telegram_chat_id"`
}

// Configured reports whether the Emby integration is usable: enabled with
// both a URL and a credential present.
func (e EmbyConfig) Configured() bool {
	return e.Enabled && e.URL != "" && e.APIKey != ""
}

// Timeout returns the per-request timeout as a duration.
func (e EmbyConfig) Timeout() time.Duration {
	return time.Duration(e.TimeoutSeconds) * time.Second
}

// Load reads and parses the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Substitute environment variables
	content := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Apply defaults
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8585
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = "info"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "./data/scanarr.db"
	}
	if cfg.Emby.TimeoutSeconds == 0 {
		cfg.Emby.TimeoutSeconds = 30
	}
	if cfg.Emby.HistorySize == 0 {
		cfg.Emby.HistorySize = 100
	}
	if cfg.Notify.NtfyServer == "" {
		cfg.Notify.NtfyServer = "https://ntfy.sh"
	}

	// Fail early on credentials that still hold ${VAR} references
	if missing := unresolvedVars(&cfg); len(missing) > 0 {
		return nil, &Error{Path: path, Missing: missing}
	}

	return &cfg, nil
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func substituteEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1] // Strip ${ and }
		if value, ok := os.LookupEnv(varName); ok {
			return value
		}
		return match // Leave unchanged if not found
	})
}

// unresolvedVars reports environment variable references that survived
// substitution in decoded string fields. Comments are not scanned.
func unresolvedVars(cfg *Config) []string {
	fields := []string{
		cfg.Database.Path,
		cfg.Emby.URL,
		cfg.Emby.APIKey,
		cfg.Notify.NtfyServer,
		cfg.Notify.NtfyTopic,
		cfg.Notify.TelegramToken,
		cfg.Notify.TelegramChatID,
	}

	var missing []string
	for _, f := range fields {
		for _, m := range envVarPattern.FindAllStringSubmatch(f, -1) {
			missing = append(missing, m[1])
		}
	}
	return missing
}
