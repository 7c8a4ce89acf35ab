package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"inspekt/internal/notification"
	dErrors "inspekt/pkg/domain-errors"
	"inspekt/pkg/platform/httputil"
)

// Handler exposes the notification feed.
type Handler struct {
	feed notification.Feed
}

// New creates a notification Handler.
func New(feed notification.Feed) *Handler {
	return &Handler{feed: feed}
}

// Register registers the notification routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/notifications", h.handleRecent)
}

func (h *Handler) handleRecent(w http.ResponseWriter, r *http.Request) {
	entries, err := h.feed.Recent(r.Context())
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read notifications"))
		return
	}
	if entries == nil {
		entries = []notification.Notification{}
	}
	httputil.WriteJSON(w, http.StatusOK, entries)
}
