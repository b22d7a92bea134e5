// internal/config/validate.go
package config

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	// Server validation
	if c.Server.Port != 0 && (c.Server.Port < 1 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	// Database validation
	if c.Database.EventRetentionDays < 0 {
		errs = append(errs, fmt.Sprintf("database.event_retention_days: must not be negative, got %d", c.Database.EventRetentionDays))
	}

	// Emby validation
	if c.Emby.Enabled {
		if c.Emby.URL == "" {
			errs = append(errs, "emby.url: required when emby is enabled")
		}
		if c.Emby.APIKey == "" {
			errs = append(errs, "emby.api_key: required when emby is enabled")
		}
	}
	if c.Emby.TimeoutSeconds < 0 {
		errs = append(errs, fmt.Sprintf("emby.timeout_seconds: must not be negative, got %d", c.Emby.TimeoutSeconds))
	}
	if c.Emby.HistorySize < 0 {
		errs = append(errs, fmt.Sprintf("emby.history_size: must not be negative, got %d", c.Emby.HistorySize))
	}
	if expr := c.Emby.Triggers.Cron; expr != "" {
		if _, err := cron.ParseStandard(expr); err != nil {
			errs = append(errs, fmt.Sprintf("emby.triggers.cron: %v", err))
		}
	}
	for i, id := range c.Emby.Triggers.Libraries {
		if id == "" {
			errs = append(errs, fmt.Sprintf("emby.triggers.libraries: empty library id at position %d", i))
		}
	}

	// Notify validation
	if c.Notify.TelegramToken != "" && c.Notify.TelegramChatID == "" {
		errs = append(errs, "notify.telegram_chat_id: required when telegram_token is set")
	}
	if c.Notify.TelegramChatID != "" && c.Notify.TelegramToken == "" {
		errs = append(errs, "notify.telegram_token: required when telegram_chat_id is set")
	}

	return errs
}
