package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"inspekt/internal/registry"
	"inspekt/pkg/domain"
	"inspekt/pkg/platform/httputil"
)

// Handler exposes the reference data as a read-only API surface.
type Handler struct {
	store *registry.Store
}

// New creates a registry Handler.
func New(store *registry.Store) *Handler {
	return &Handler{store: store}
}

// Register registers the registry routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/registry/properties", h.handleProperties)
	r.Get("/registry/vendors", h.handleVendors)
	r.Get("/registry/staff", h.handleStaff)
	r.Get("/registry/kinds", h.handleKinds)
}

func (h *Handler) handleProperties(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.store.Properties(r.Context()))
}

func (h *Handler) handleVendors(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.store.Vendors(r.Context()))
}

func (h *Handler) handleStaff(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.store.Staff(r.Context()))
}

func (h *Handler) handleKinds(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, domain.Kinds())
}
