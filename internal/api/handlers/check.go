package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/offer-tracker/internal/engine"
	"github.com/donaldgifford/offer-tracker/pkg/offer"
	domain "github.com/donaldgifford/offer-tracker/pkg/types"
)

// Controller is the part of the engine the control API drives.
type Controller interface {
	Target() offer.Target
	RunTick(ctx context.Context) (*engine.TickResult, error)
	LastResult() *engine.TickResult
	NotifiedIDs(ctx context.Context) ([]string, error)
	ResetState(ctx context.Context) error
}

var _ Controller = (*engine.Engine)(nil)

// CheckHandler runs an out-of-schedule tick.
type CheckHandler struct {
	ctrl Controller
}

// NewCheckHandler creates a new CheckHandler.
func NewCheckHandler(c Controller) *CheckHandler {
	return &CheckHandler{ctrl: c}
}

// CheckOutput is the response body for the check endpoint.
type CheckOutput struct {
	Body *domain.TickReport
}

// Check polls the catalog now. An aborted tick returns 500 with the error.
// Every tick that got as far as a decision returns 200 with its report,
// including a failed delivery, whose cause is in the report's error field.
func (h *CheckHandler) Check(ctx context.Context, _ *struct{}) (*CheckOutput, error) {
	res, err := h.ctrl.RunTick(ctx)
	if err != nil && (res == nil || res.Outcome == engine.OutcomeError) {
		return nil, huma.Error500InternalServerError("check failed: " + err.Error())
	}
	return &CheckOutput{Body: Report(h.ctrl.Target(), res)}, nil
}

// Report converts an engine result to its wire form. It returns nil for a
// nil result.
func Report(target offer.Target, res *engine.TickResult) *domain.TickReport {
	if res == nil {
		return nil
	}

	r := &domain.TickReport{
		Outcome:       string(res.Outcome),
		ProductID:     target.ProductID,
		Name:          res.Status.Name,
		Found:         res.Found,
		Qualifies:     res.Qualifies,
		MatchingSizes: res.Status.MatchingSizes,
		PagesFetched:  res.PagesFetched,
		ItemsSeen:     res.ItemsSeen,
		StoppedAt:     res.StoppedAt,
		StartedAt:     res.StartedAt,
		DurationMs:    res.Duration.Milliseconds(),
		Error:         res.Err,
	}
	if res.Status.PromoPrice != nil {
		r.PromoPrice = res.Status.PromoPrice.StringFixed(2)
	}
	if res.Found && !res.Status.BasePrice.IsZero() {
		r.BasePrice = res.Status.BasePrice.StringFixed(2)
	}
	return r
}

// RegisterCheckRoutes registers the manual check endpoint with the Huma API.
func RegisterCheckRoutes(api huma.API, h *CheckHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "run-check",
		Method:      http.MethodPost,
		Path:        "/api/v1/check",
		Summary:     "Run a catalog check now",
		Description: "Scans the catalog for the tracked product and notifies, " +
			"suppresses or resets exactly as a scheduled tick would.",
		Tags:   []string{"check"},
		Errors: []int{http.StatusInternalServerError},
	}, h.Check)
}
