package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hetulpatel/MantleCoop/internal/config"
	"github.com/hetulpatel/MantleCoop/internal/eligibility"
)

// Submitter runs one session-aware eligibility check.
type Submitter interface {
	Submit(ctx context.Context, sub eligibility.Submission) eligibility.Outcome
}

// CheckRequest is the body of POST /v1/eligibility/check. AccountHistory is
// a pointer so an explicit empty string reaches the service and comes back
// as a validation message instead of a 400.
type CheckRequest struct {
	SessionID      string             `json:"sessionId" validate:"omitempty,max=128,printascii"`
	AccountHistory *string            `json:"accountHistory" validate:"required"`
	Previous       *eligibility.State `json:"previous,omitempty"`
}

type CheckResponse struct {
	State    eligibility.State `json:"state"`
	Sequence int64             `json:"sequence"`
	Stale    bool              `json:"stale"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

type Handler struct {
	service Submitter
	network config.NetworkConfig
	logger  *zap.Logger
}

func NewHandler(service Submitter, network config.NetworkConfig, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, network: network, logger: logger}
}

// HandleCheck handles POST /v1/eligibility/check. Validation and inference
// failures are part of the returned state and still answer 200.
func (h *Handler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Debug("rejected check envelope",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	sub := eligibility.Submission{
		SessionID:      req.SessionID,
		AccountHistory: *req.AccountHistory,
	}
	if req.Previous != nil {
		sub.Previous = *req.Previous
	}

	out := h.service.Submit(r.Context(), sub)
	writeJSON(w, http.StatusOK, CheckResponse{
		State:    out.State,
		Sequence: out.Sequence,
		Stale:    out.Stale,
	})
}

// HandleNetwork handles GET /v1/network.
func (h *Handler) HandleNetwork(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.network)
}

func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, RequestID: middleware.GetReqID(r.Context())})
}
