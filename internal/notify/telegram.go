package notify

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const defaultTelegramTimeout = 10 * time.Second

// TelegramNotifier implements Notifier via the Telegram Bot API. The bot
// client is created on first use, so an unreachable Telegram at startup
// only fails the sends that happen while it is down.
type TelegramNotifier struct {
	token    string
	chatID   string
	endpoint string
	client   *http.Client
	preview  bool

	mu  sync.Mutex
	bot *tgbotapi.BotAPI
}

var _ Notifier = (*TelegramNotifier)(nil)

// TelegramOption configures a TelegramNotifier.
type TelegramOption func(*TelegramNotifier)

// WithTelegramEndpoint overrides the Bot API endpoint format, which takes
// the token and the method name (default tgbotapi.APIEndpoint).
func WithTelegramEndpoint(endpoint string) TelegramOption {
	return func(t *TelegramNotifier) {
		t.endpoint = endpoint
	}
}

// WithTelegramHTTPClient sets a custom HTTP client.
func WithTelegramHTTPClient(c *http.Client) TelegramOption {
	return func(t *TelegramNotifier) {
		t.client = c
	}
}

// WithLinkPreview toggles the web page preview under the product link.
func WithLinkPreview(enabled bool) TelegramOption {
	return func(t *TelegramNotifier) {
		t.preview = enabled
	}
}

// NewTelegramNotifier creates a notifier posting to chatID, which is either
// a numeric chat id or an @channel username.
func NewTelegramNotifier(token, chatID string, opts ...TelegramOption) *TelegramNotifier {
	t := &TelegramNotifier{
		token:    token,
		chatID:   strings.TrimSpace(chatID),
		endpoint: tgbotapi.APIEndpoint,
		client:   &http.Client{Timeout: defaultTelegramTimeout},
		preview:  true,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SendOffer sends the offer as an HTML message.
func (t *TelegramNotifier) SendOffer(ctx context.Context, offer *OfferPayload) error {
	return t.send(ctx, FormatOfferHTML(offer))
}

// SendText sends text as an HTML message.
func (t *TelegramNotifier) SendText(ctx context.Context, text string) error {
	return t.send(ctx, text)
}

func (t *TelegramNotifier) send(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("sending telegram message: %w", err)
	}

	bot, err := t.botAPI()
	if err != nil {
		return err
	}

	msg, err := t.message(text)
	if err != nil {
		return err
	}

	if _, err := bot.Send(msg); err != nil {
		return fmt.Errorf("sending telegram message: %w", err)
	}
	return nil
}

func (t *TelegramNotifier) message(text string) (tgbotapi.MessageConfig, error) {
	var msg tgbotapi.MessageConfig
	if strings.HasPrefix(t.chatID, "@") {
		msg = tgbotapi.NewMessageToChannel(t.chatID, text)
	} else {
		id, err := strconv.ParseInt(t.chatID, 10, 64)
		if err != nil {
			return msg, fmt.Errorf("parsing telegram chat id %q: %w", t.chatID, err)
		}
		msg = tgbotapi.NewMessage(id, text)
	}
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = !t.preview
	return msg, nil
}

func (t *TelegramNotifier) botAPI() (*tgbotapi.BotAPI, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.bot != nil {
		return t.bot, nil
	}

	bot, err := tgbotapi.NewBotAPIWithClient(t.token, t.endpoint, t.client)
	if err != nil {
		return nil, fmt.Errorf("connecting to telegram: %w", err)
	}
	t.bot = bot
	return bot, nil
}
