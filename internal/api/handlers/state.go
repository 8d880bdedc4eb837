package handlers

import (
	"context"
	"net/http"
	"slices"

	"github.com/danielgtaylor/huma/v2"

	domain "github.com/donaldgifford/offer-tracker/pkg/types"
)

// StateHandler exposes the notification record.
type StateHandler struct {
	ctrl Controller
}

// NewStateHandler creates a new StateHandler.
func NewStateHandler(c Controller) *StateHandler {
	return &StateHandler{ctrl: c}
}

// StateOutput is the response for GET /api/v1/state.
type StateOutput struct {
	Body *domain.StateView
}

// GetState returns the notified ids and the last tick result.
func (h *StateHandler) GetState(ctx context.Context, _ *struct{}) (*StateOutput, error) {
	ids, err := h.ctrl.NotifiedIDs(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to read notification state: " + err.Error())
	}
	if ids == nil {
		ids = []string{}
	}

	target := h.ctrl.Target()
	return &StateOutput{Body: &domain.StateView{
		ProductID: target.ProductID,
		Sizes:     target.SizeLabels(),
		Notified:  ids,
		Current:   slices.Contains(ids, target.ProductID),
		LastTick:  Report(target, h.ctrl.LastResult()),
	}}, nil
}

// ResetOutput is the response for DELETE /api/v1/state.
type ResetOutput struct {
	Body domain.StatusMessage
}

// ResetState clears the notification record so the next active offer is
// announced again.
func (h *StateHandler) ResetState(ctx context.Context, _ *struct{}) (*ResetOutput, error) {
	if err := h.ctrl.ResetState(ctx); err != nil {
		return nil, huma.Error500InternalServerError("failed to reset notification state: " + err.Error())
	}
	resp := &ResetOutput{}
	resp.Body.Status = "state reset"
	return resp, nil
}

// RegisterStateRoutes registers the state endpoints with the Huma API.
func RegisterStateRoutes(api huma.API, h *StateHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-state",
		Method:      http.MethodGet,
		Path:        "/api/v1/state",
		Summary:     "Get notification state",
		Description: "Returns the notified product ids and the most recent tick result.",
		Tags:        []string{"state"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.GetState)

	huma.Register(api, huma.Operation{
		OperationID: "reset-state",
		Method:      http.MethodDelete,
		Path:        "/api/v1/state",
		Summary:     "Reset notification state",
		Description: "Clears the notification record. Waits for a running check to finish.",
		Tags:        []string{"state"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.ResetState)
}
