package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/offer-tracker/internal/api/handlers"
	"github.com/donaldgifford/offer-tracker/internal/engine"
	"github.com/donaldgifford/offer-tracker/pkg/offer"
	domain "github.com/donaldgifford/offer-tracker/pkg/types"
)

// fakeController implements handlers.Controller for testing.
type fakeController struct {
	target   offer.Target
	result   *engine.TickResult
	tickErr  error
	last     *engine.TickResult
	ids      []string
	listErr  error
	resetErr error
	ticks    int
	resets   int
}

func newFakeController() *fakeController {
	return &fakeController{target: offer.NewTarget("E457428-000", []string{"S", "M"}, "")}
}

func (f *fakeController) Target() offer.Target { return f.target }

func (f *fakeController) RunTick(_ context.Context) (*engine.TickResult, error) {
	f.ticks++
	return f.result, f.tickErr
}

func (f *fakeController) LastResult() *engine.TickResult { return f.last }

func (f *fakeController) NotifiedIDs(_ context.Context) ([]string, error) {
	return f.ids, f.listErr
}

func (f *fakeController) ResetState(_ context.Context) error {
	f.resets++
	return f.resetErr
}

func notifiedResult() *engine.TickResult {
	promo := decimal.RequireFromString("29.9")
	return &engine.TickResult{
		Outcome:   engine.OutcomeNotified,
		Found:     true,
		Qualifies: true,
		Status: offer.Status{
			ProductID:     "E457428-000",
			Name:          "AIRism Cotton T-Shirt",
			BasePrice:     decimal.RequireFromString("39.9"),
			PromoPrice:    &promo,
			PromoActive:   true,
			MatchingSizes: []string{"M", "S"},
		},
		PagesFetched: 2,
		ItemsSeen:    40,
		StoppedAt:    "offer_found",
		StartedAt:    time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Duration:     1500 * time.Millisecond,
	}
}

func TestCheck_Success(t *testing.T) {
	t.Parallel()

	fc := newFakeController()
	fc.result = notifiedResult()

	_, api := humatest.New(t)
	handlers.RegisterCheckRoutes(api, handlers.NewCheckHandler(fc))

	resp := api.Post("/api/v1/check")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, 1, fc.ticks)

	var got domain.TickReport
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Equal(t, "notified", got.Outcome)
	assert.Equal(t, "E457428-000", got.ProductID)
	assert.True(t, got.Qualifies)
	assert.Equal(t, "29.90", got.PromoPrice)
	assert.Equal(t, "39.90", got.BasePrice)
	assert.Equal(t, []string{"M", "S"}, got.MatchingSizes)
	assert.Equal(t, 2, got.PagesFetched)
	assert.Equal(t, int64(1500), got.DurationMs)
	assert.Empty(t, got.Error)
}

func TestCheck_Error(t *testing.T) {
	t.Parallel()

	fc := newFakeController()
	fc.result = &engine.TickResult{Outcome: engine.OutcomeError, Err: "scanning catalog: boom"}
	fc.tickErr = errors.New("scanning catalog: boom")

	_, api := humatest.New(t)
	handlers.RegisterCheckRoutes(api, handlers.NewCheckHandler(fc))

	resp := api.Post("/api/v1/check")
	require.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Contains(t, resp.Body.String(), "check failed: scanning catalog: boom")
}

func TestReport(t *testing.T) {
	t.Parallel()

	target := offer.NewTarget("E457428-000", []string{"S"}, "")

	tests := []struct {
		name  string
		res   *engine.TickResult
		check func(t *testing.T, r *domain.TickReport)
	}{
		{
			name: "nil result",
			res:  nil,
			check: func(t *testing.T, r *domain.TickReport) {
				t.Helper()
				assert.Nil(t, r)
			},
		},
		{
			name: "product absent has no prices",
			res:  &engine.TickResult{Outcome: engine.OutcomeIdle, StoppedAt: "no_more_results"},
			check: func(t *testing.T, r *domain.TickReport) {
				t.Helper()
				require.NotNil(t, r)
				assert.Equal(t, "idle", r.Outcome)
				assert.False(t, r.Found)
				assert.Empty(t, r.PromoPrice)
				assert.Empty(t, r.BasePrice)
				assert.Equal(t, "E457428-000", r.ProductID)
			},
		},
		{
			name: "found without promotion keeps base price",
			res: &engine.TickResult{
				Outcome: engine.OutcomeIdle,
				Found:   true,
				Status:  offer.Status{ProductID: "E457428-000", BasePrice: decimal.RequireFromString("39.9")},
			},
			check: func(t *testing.T, r *domain.TickReport) {
				t.Helper()
				assert.Empty(t, r.PromoPrice)
				assert.Equal(t, "39.90", r.BasePrice)
				assert.False(t, r.Qualifies)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tt.check(t, handlers.Report(target, tt.res))
		})
	}
}

func TestCheck_DeliveryProblemsStillReport(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		outcome engine.Outcome
		errMsg  string
	}{
		{
			name:    "notifier failed",
			outcome: engine.OutcomeNotifyFailed,
			errMsg:  "sending notification: notifier not configured",
		},
		{
			name:    "sent but not recorded",
			outcome: engine.OutcomeNotified,
			errMsg:  "recording notification: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fc := newFakeController()
			fc.result = notifiedResult()
			fc.result.Outcome = tt.outcome
			fc.result.Err = tt.errMsg
			fc.tickErr = errors.New(tt.errMsg)

			_, api := humatest.New(t)
			handlers.RegisterCheckRoutes(api, handlers.NewCheckHandler(fc))

			resp := api.Post("/api/v1/check")
			require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

			var got domain.TickReport
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
			assert.Equal(t, string(tt.outcome), got.Outcome)
			assert.Equal(t, tt.errMsg, got.Error)
			assert.True(t, got.Qualifies)
			assert.Equal(t, "29.90", got.PromoPrice)
		})
	}
}
