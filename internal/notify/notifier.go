// Package notify defines the notification interface and implementations
// for offer delivery.
package notify

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

// ErrNotConfigured is returned by notifiers that have no usable backend.
// Callers must treat it as a failed delivery.
var ErrNotConfigured = errors.New("notifier not configured")

// OfferPayload contains the data needed to announce a running offer.
type OfferPayload struct {
	ProductID  string
	Name       string
	URL        string
	PromoPrice string
	BasePrice  string
	Currency   string
	Sizes      []string
}

// Notifier defines the interface for sending offer notifications.
type Notifier interface {
	SendOffer(ctx context.Context, offer *OfferPayload) error
	SendText(ctx context.Context, text string) error
}

// Backends accepted by New.
const (
	BackendTelegram = "telegram"
	BackendDiscord  = "discord"
	BackendNone     = "none"
)

// Config selects a notification backend.
type Config struct {
	// Backend is telegram, discord or none. Empty picks telegram when a
	// token is set, then discord when a webhook is set.
	Backend string

	TelegramToken    string
	TelegramChatID   string
	TelegramEndpoint string
	// TelegramNoPreview hides the link preview under the product link.
	TelegramNoPreview bool

	DiscordWebhookURL string
}

// New builds the configured notifier. Missing credentials fall back to a
// NoOpNotifier with a warning rather than failing startup.
func New(cfg *Config, log *slog.Logger) Notifier {
	if log == nil {
		log = slog.Default()
	}

	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))
	if backend == "" {
		switch {
		case cfg.TelegramToken != "":
			backend = BackendTelegram
		case cfg.DiscordWebhookURL != "":
			backend = BackendDiscord
		default:
			backend = BackendNone
		}
	}

	switch backend {
	case BackendTelegram:
		if cfg.TelegramToken == "" || cfg.TelegramChatID == "" {
			log.Warn("telegram token or chat id missing, notifications disabled")
			return NewNoOpNotifier(log)
		}
		opts := []TelegramOption{WithLinkPreview(!cfg.TelegramNoPreview)}
		if cfg.TelegramEndpoint != "" {
			opts = append(opts, WithTelegramEndpoint(cfg.TelegramEndpoint))
		}
		return NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID, opts...)
	case BackendDiscord:
		if cfg.DiscordWebhookURL == "" {
			log.Warn("discord webhook url missing, notifications disabled")
			return NewNoOpNotifier(log)
		}
		return NewDiscordNotifier(cfg.DiscordWebhookURL)
	default:
		log.Warn("no notification backend configured", "backend", backend)
		return NewNoOpNotifier(log)
	}
}
