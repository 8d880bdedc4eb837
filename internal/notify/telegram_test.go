package notify

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "123:ABC"

type fakeTelegram struct {
	mu       sync.Mutex
	getMe    int
	sent     []url.Values
	failSend string
	failMe   bool
}

func (f *fakeTelegram) forms() []url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]url.Values(nil), f.sent...)
}

func (f *fakeTelegram) getMeCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.getMe
}

func (f *fakeTelegram) handler(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/bot" + testToken + "/getMe":
			f.getMe++
			if f.failMe {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"ok":false,"error_code":401,"description":"Unauthorized"}`))
				return
			}
			_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"offers","username":"offers_bot"}}`))
		case "/bot" + testToken + "/sendMessage":
			assert.NoError(t, r.ParseForm())
			f.sent = append(f.sent, r.PostForm)
			if f.failSend != "" {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = fmt.Fprintf(w, `{"ok":false,"error_code":400,"description":%q}`, f.failSend)
				return
			}
			_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":7,"date":0,"chat":{"id":42,"type":"private"},"text":"ok"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"ok":false,"error_code":404,"description":"Not Found"}`))
		}
	})
}

func newTestTelegram(t *testing.T, f *fakeTelegram, chatID string, opts ...TelegramOption) *TelegramNotifier {
	t.Helper()
	srv := httptest.NewServer(f.handler(t))
	t.Cleanup(srv.Close)

	opts = append([]TelegramOption{WithTelegramEndpoint(srv.URL + "/bot%s/%s")}, opts...)
	return NewTelegramNotifier(testToken, chatID, opts...)
}

func TestTelegramNotifier_SendOffer(t *testing.T) {
	t.Parallel()

	f := &fakeTelegram{}
	n := newTestTelegram(t, f, "42")

	err := n.SendOffer(context.Background(), testOffer())
	require.NoError(t, err)

	sent := f.forms()
	require.Len(t, sent, 1)
	form := sent[0]
	assert.Equal(t, "42", form.Get("chat_id"))
	assert.Equal(t, "HTML", form.Get("parse_mode"))
	assert.NotEqual(t, "true", form.Get("disable_web_page_preview"))
	assert.Contains(t, form.Get("text"), "Offer found!")
	assert.Contains(t, form.Get("text"), "AIRism Cotton T-Shirt")
}

func TestTelegramNotifier_ChannelUsername(t *testing.T) {
	t.Parallel()

	f := &fakeTelegram{}
	n := newTestTelegram(t, f, "@offers", WithLinkPreview(false))

	require.NoError(t, n.SendText(context.Background(), "hello"))

	sent := f.forms()
	require.Len(t, sent, 1)
	assert.Equal(t, "@offers", sent[0].Get("chat_id"))
	assert.Equal(t, "hello", sent[0].Get("text"))
	assert.Equal(t, "true", sent[0].Get("disable_web_page_preview"))
}

func TestTelegramNotifier_BotCreatedOnce(t *testing.T) {
	t.Parallel()

	f := &fakeTelegram{}
	n := newTestTelegram(t, f, "42")

	require.NoError(t, n.SendText(context.Background(), "one"))
	require.NoError(t, n.SendText(context.Background(), "two"))

	assert.Equal(t, 1, f.getMeCalls())
	assert.Len(t, f.forms(), 2)
}

func TestTelegramNotifier_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		fake    *fakeTelegram
		chatID  string
		ctx     func() context.Context
		errMsg  string
		wantGot int
	}{
		{
			name:   "bad token",
			fake:   &fakeTelegram{failMe: true},
			chatID: "42",
			errMsg: "connecting to telegram",
		},
		{
			name:    "chat not found",
			fake:    &fakeTelegram{failSend: "Bad Request: chat not found"},
			chatID:  "42",
			errMsg:  "chat not found",
			wantGot: 1,
		},
		{
			name:   "invalid chat id",
			fake:   &fakeTelegram{},
			chatID: "not-a-number",
			errMsg: "parsing telegram chat id",
		},
		{
			name:   "canceled context",
			fake:   &fakeTelegram{},
			chatID: "42",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			},
			errMsg: "context canceled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			n := newTestTelegram(t, tt.fake, tt.chatID)
			ctx := context.Background()
			if tt.ctx != nil {
				ctx = tt.ctx()
			}

			err := n.SendOffer(ctx, testOffer())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.Len(t, tt.fake.forms(), tt.wantGot)
		})
	}
}

func TestTelegramNotifier_RetriesBotCreation(t *testing.T) {
	t.Parallel()

	f := &fakeTelegram{failMe: true}
	n := newTestTelegram(t, f, "42")

	require.Error(t, n.SendText(context.Background(), "first"))

	f.mu.Lock()
	f.failMe = false
	f.mu.Unlock()

	require.NoError(t, n.SendText(context.Background(), "second"))
	assert.Equal(t, 2, f.getMeCalls())
	sent := f.forms()
	require.Len(t, sent, 1)
	assert.True(t, strings.HasPrefix(sent[0].Get("text"), "second"))
}
