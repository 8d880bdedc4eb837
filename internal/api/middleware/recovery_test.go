package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecovery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		method     string
		path       string
		handler    echo.HandlerFunc
		wantStatus int
		wantLog    []string
	}{
		{
			name:       "no panic passes through",
			method:     http.MethodGet,
			path:       "/api/v1/state",
			handler:    func(c echo.Context) error { return c.String(http.StatusOK, "ok") },
			wantStatus: http.StatusOK,
		},
		{
			name:       "string panic",
			method:     http.MethodPost,
			path:       "/api/v1/check",
			handler:    func(_ echo.Context) error { panic("catalog exploded") },
			wantStatus: http.StatusInternalServerError,
			wantLog:    []string{"panic recovered", "catalog exploded", "path=/api/v1/check", "method=POST"},
		},
		{
			name:       "non-string panic",
			method:     http.MethodDelete,
			path:       "/api/v1/state",
			handler:    func(_ echo.Context) error { panic(42) },
			wantStatus: http.StatusInternalServerError,
			wantLog:    []string{"error=42", "method=DELETE"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			e := echo.New()
			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.Set("request_id", "req-1")

			err := Recovery(logger)(tt.handler)(c)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, rec.Code)

			if len(tt.wantLog) == 0 {
				assert.Empty(t, buf.String())
				return
			}

			assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
			for _, want := range tt.wantLog {
				assert.Contains(t, buf.String(), want)
			}
			assert.Contains(t, buf.String(), "request_id=req-1")
		})
	}
}

func TestRecovery_PanicAfterCommit(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := Recovery(logger)(func(c echo.Context) error {
		_ = c.String(http.StatusOK, "partial")
		panic("late")
	})(c)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "partial", rec.Body.String())
	assert.Contains(t, buf.String(), "panic recovered")
}
