package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier logs and rejects every notification. It is used when no
// backend is configured, so an offer is never recorded as delivered.
type NoOpNotifier struct {
	log *slog.Logger
}

var _ Notifier = (*NoOpNotifier)(nil)

// NewNoOpNotifier creates a notifier that rejects notifications with a log message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

// SendOffer logs the offer and returns ErrNotConfigured.
func (n *NoOpNotifier) SendOffer(_ context.Context, offer *OfferPayload) error {
	n.log.Warn("offer notification dropped (no backend configured)",
		"product_id", offer.ProductID,
		"name", offer.Name,
		"sizes", offer.Sizes,
	)
	return ErrNotConfigured
}

// SendText logs the text and returns ErrNotConfigured.
func (n *NoOpNotifier) SendText(_ context.Context, text string) error {
	n.log.Warn("text notification dropped (no backend configured)", "length", len(text))
	return ErrNotConfigured
}
