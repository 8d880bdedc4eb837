package client

import (
	"context"

	domain "github.com/donaldgifford/offer-tracker/pkg/types"
)

// Ready returns the server's readiness status.
func (c *Client) Ready(ctx context.Context) (string, error) {
	var msg domain.StatusMessage
	if err := c.get(ctx, "/readyz", &msg); err != nil {
		return "", err
	}
	return msg.Status, nil
}

// Check runs one catalog check on the server and returns its report.
func (c *Client) Check(ctx context.Context) (*domain.TickReport, error) {
	var report domain.TickReport
	if err := c.post(ctx, "/api/v1/check", nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// GetState returns the server's notification record and last tick.
func (c *Client) GetState(ctx context.Context) (*domain.StateView, error) {
	var view domain.StateView
	if err := c.get(ctx, "/api/v1/state", &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// ResetState clears the server's notification record.
func (c *Client) ResetState(ctx context.Context) error {
	var msg domain.StatusMessage
	return c.del(ctx, "/api/v1/state", &msg)
}
