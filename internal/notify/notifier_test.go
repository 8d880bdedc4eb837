package notify

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
		want Notifier
	}{
		{
			name: "telegram inferred from token",
			cfg:  Config{TelegramToken: "t", TelegramChatID: "1"},
			want: &TelegramNotifier{},
		},
		{
			name: "telegram missing chat id",
			cfg:  Config{Backend: "telegram", TelegramToken: "t"},
			want: &NoOpNotifier{},
		},
		{
			name: "discord inferred from webhook",
			cfg:  Config{DiscordWebhookURL: "https://discord.test/hook"},
			want: &DiscordNotifier{},
		},
		{
			name: "discord missing webhook",
			cfg:  Config{Backend: "Discord"},
			want: &NoOpNotifier{},
		},
		{
			name: "nothing configured",
			cfg:  Config{},
			want: &NoOpNotifier{},
		},
		{
			name: "explicit none ignores credentials",
			cfg:  Config{Backend: "none", TelegramToken: "t", TelegramChatID: "1"},
			want: &NoOpNotifier{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.IsType(t, tt.want, New(&tt.cfg, quietLogger()))
		})
	}
}

func TestNew_TelegramEndpoint(t *testing.T) {
	t.Parallel()

	n := New(&Config{
		TelegramToken:    "t",
		TelegramChatID:   "1",
		TelegramEndpoint: "http://localhost/bot%s/%s",
	}, quietLogger())

	tg, ok := n.(*TelegramNotifier)
	require.True(t, ok)
	assert.Equal(t, "http://localhost/bot%s/%s", tg.endpoint)
	assert.True(t, tg.preview)
}

func TestNew_TelegramNoPreview(t *testing.T) {
	t.Parallel()

	n := New(&Config{TelegramToken: "t", TelegramChatID: "1", TelegramNoPreview: true}, quietLogger())

	tg, ok := n.(*TelegramNotifier)
	require.True(t, ok)
	assert.False(t, tg.preview)
}

func TestNoOpNotifier(t *testing.T) {
	t.Parallel()

	n := NewNoOpNotifier(quietLogger())

	err := n.SendOffer(context.Background(), testOffer())
	require.ErrorIs(t, err, ErrNotConfigured)

	err = n.SendText(context.Background(), "hello")
	require.ErrorIs(t, err, ErrNotConfigured)
}
