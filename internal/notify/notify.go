// Package notify delivers campaign notifications through pluggable
// senders. ntfy and Telegram are supported; with neither configured a
// no-op notifier is returned so callers never need a nil check.
package notify

import (
	"context"
	"errors"
	"time"

	"github.com/vmunix/scanarr/internal/config"
)

const sendTimeout = 10 * time.Second

// Message is a notification to deliver.
type Message struct {
	Title    string
	Body     string
	Tags     []string // ntfy only
	Priority string   // "low", "default" or "high"; empty means default
}

// Notifier sends a message through one delivery channel.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// New builds a Notifier from config. Senders missing required settings
// are skipped; when none remain a no-op notifier is returned.
func New(cfg config.NotifyConfig) Notifier {
	var senders []Notifier
	if cfg.NtfyTopic != "" {
		senders = append(senders, newNtfy(cfg.NtfyServer, cfg.NtfyTopic, cfg.NtfyPriority))
	}
	if cfg.TelegramToken != "" && cfg.TelegramChatID != "" {
		senders = append(senders, newTelegram(cfg.TelegramToken, cfg.TelegramChatID))
	}

	switch len(senders) {
	case 0:
		return noop{}
	case 1:
		return senders[0]
	default:
		return multi(senders)
	}
}

type noop struct{}

func (noop) Send(context.Context, Message) error { return nil }

// multi fans a message out to every sender and joins their errors.
type multi []Notifier

func (m multi) Send(ctx context.Context, msg Message) error {
	var errs []error
	for _, s := range m {
		if err := s.Send(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
