package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const colorGreen = 0x2ECC71

// DiscordNotifier implements Notifier via Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
}

var _ Notifier = (*DiscordNotifier)(nil)

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

// discordWebhookPayload is the Discord webhook JSON structure.
type discordWebhookPayload struct {
	Content string         `json:"content,omitempty"`
	Embeds  []discordEmbed `json:"embeds,omitempty"`
}

type discordEmbed struct {
	Title  string              `json:"title"`
	URL    string              `json:"url,omitempty"`
	Color  int                 `json:"color"`
	Fields []discordEmbedField `json:"fields,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// SendOffer sends the offer as a Discord embed.
func (d *DiscordNotifier) SendOffer(ctx context.Context, offer *OfferPayload) error {
	return d.post(ctx, discordWebhookPayload{
		Embeds: []discordEmbed{buildEmbed(offer)},
	})
}

// SendText sends a plain message.
func (d *DiscordNotifier) SendText(ctx context.Context, text string) error {
	return d.post(ctx, discordWebhookPayload{Content: text})
}

func buildEmbed(offer *OfferPayload) discordEmbed {
	cur := currency(offer)
	fields := []discordEmbedField{
		{Name: "Price", Value: offer.PromoPrice + cur, Inline: true},
	}
	if offer.BasePrice != "" {
		fields = append(fields, discordEmbedField{Name: "Was", Value: offer.BasePrice + cur, Inline: true})
	}
	fields = append(fields, discordEmbedField{Name: "Sizes", Value: strings.Join(offer.Sizes, ", "), Inline: false})

	return discordEmbed{
		Title:  fmt.Sprintf("Offer found: %s", offer.Name),
		URL:    offer.URL,
		Color:  colorGreen,
		Fields: fields,
	}
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.webhookURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("discord rate limited (429)")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode)
		}
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}
