package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"inspekt/internal/photo"
	"inspekt/internal/submission"
	"inspekt/pkg/domain"
	dErrors "inspekt/pkg/domain-errors"
	"inspekt/pkg/platform/httputil"
)

// Handler exposes the one-shot submission endpoint: the request body carries
// the full checklist state and the response reports the outcome.
type Handler struct {
	svc *submission.Service
}

// New creates a submission Handler.
func New(svc *submission.Service) *Handler {
	return &Handler{svc: svc}
}

// Register registers the submission routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/events/{id}/submit", h.handleSubmit)
}

type nonConformityPayload struct {
	Note     string `json:"note"`
	Severity string `json:"severity"`
}

type photoPayload struct {
	Name string `json:"name"`
	Data []byte `json:"data"`
}

type submitRequest struct {
	Answers         map[string]bool        `json:"answers"`
	NonConformities []nonConformityPayload `json:"non_conformities"`
	Photos          []photoPayload         `json:"photos"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := domain.ParseEventID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	d, err := h.svc.Begin(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	for item, checked := range req.Answers {
		d.SetAnswer(item, checked)
	}
	for _, nc := range req.NonConformities {
		sev, err := domain.ParseSeverity(nc.Severity)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		if err := d.UpdateNonConformity(d.AddNonConformity(), nc.Note, sev); err != nil {
			httputil.WriteError(w, err)
			return
		}
	}
	if len(req.Photos) > 0 {
		uploads := make([]photo.Upload, 0, len(req.Photos))
		for _, p := range req.Photos {
			uploads = append(uploads, photo.Upload{Name: p.Name, Data: p.Data})
		}
		if err := d.AttachPhotos(ctx, uploads); err != nil {
			httputil.WriteError(w, err)
			return
		}
	}

	out, err := h.svc.Submit(ctx, d)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}
