package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"inspekt/internal/schedule/planner"
	"inspekt/pkg/domain"
	dErrors "inspekt/pkg/domain-errors"
	"inspekt/pkg/platform/httputil"
	"inspekt/pkg/requestcontext"
)

// Handler exposes annual plan generation.
type Handler struct {
	svc *planner.Service
}

// New creates a schedule Handler.
func New(svc *planner.Service) *Handler {
	return &Handler{svc: svc}
}

// Register registers the schedule routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/plan/generate", h.handleGenerate)
}

type generateRequest struct {
	Scope    string     `json:"scope"`
	Kinds    []string   `json:"kinds"`
	BaseDate domain.Day `json:"base_date"`
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.Scope == "" {
		req.Scope = domain.ScopeAll
	}
	if req.BaseDate.IsZero() {
		req.BaseDate = domain.DayOf(requestcontext.Now(ctx))
	}

	// Selection order is preserved; it drives the rotation offsets.
	kinds := make([]domain.InspectionKind, 0, len(req.Kinds))
	for _, raw := range req.Kinds {
		kind, err := domain.ParseInspectionKind(raw)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "unknown inspection kind: "+raw))
			return
		}
		kinds = append(kinds, kind)
	}

	res, err := h.svc.Generate(ctx, req.Scope, kinds, req.BaseDate)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "plan generation failed"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}
