package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"inspekt/internal/events"
	eventstore "inspekt/internal/events/store"
	"inspekt/internal/schedule/urgency"
	"inspekt/pkg/domain"
	dErrors "inspekt/pkg/domain-errors"
	"inspekt/pkg/platform/httputil"
	"inspekt/pkg/platform/sentinel"
	"inspekt/pkg/requestcontext"
)

// Handler exposes the event list and the month calendar. Urgency tiers are
// computed per request against the request-scoped clock, never stored.
type Handler struct {
	store eventstore.Store
}

// New creates an events Handler.
func New(store eventstore.Store) *Handler {
	return &Handler{store: store}
}

// Register registers the event routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/events", h.handleList)
	r.Get("/events/{id}", h.handleGet)
	r.Get("/calendar", h.handleCalendar)
}

// eventView decorates a stored event with its display label and the urgency
// tier valid for this request's "today".
type eventView struct {
	events.Event
	Label   string       `json:"label"`
	Urgency urgency.Tier `json:"urgency"`
}

func view(e *events.Event, today domain.Day) eventView {
	return eventView{
		Event:   *e,
		Label:   e.Kind.Label(),
		Urgency: urgency.Classify(e.DueDate, today),
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, err := filterFromQuery(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	evs, err := h.store.List(ctx, filter)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list events"))
		return
	}

	today := domain.DayOf(requestcontext.Now(ctx))
	views := make([]eventView, 0, len(evs))
	for _, e := range evs {
		views = append(views, view(e, today))
	}
	httputil.WriteJSON(w, http.StatusOK, views)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := domain.ParseEventID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	e, err := h.store.FindByID(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "event not found: "+id.String()))
		return
	}
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load event"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, view(e, domain.DayOf(requestcontext.Now(ctx))))
}

// calendarCell is one day of the month grid.
type calendarCell struct {
	Date   domain.Day  `json:"date"`
	Events []eventView `json:"events"`
}

type calendarResponse struct {
	Month string         `json:"month"`
	Days  []calendarCell `json:"days"`
}

func (h *Handler) handleCalendar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	month := r.URL.Query().Get("month")
	first, err := time.Parse("2006-01", month)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "month must be YYYY-MM"))
		return
	}

	filter, err := filterFromQuery(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	evs, err := h.store.List(ctx, filter)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list events"))
		return
	}

	today := domain.DayOf(requestcontext.Now(ctx))
	byDay := make(map[string][]eventView)
	for _, e := range evs {
		if e.ScheduledDate.Year() != first.Year() || e.ScheduledDate.Month() != first.Month() {
			continue
		}
		key := e.ScheduledDate.String()
		byDay[key] = append(byDay[key], view(e, today))
	}

	last := domain.NewDay(first.Year(), first.Month(), 31)
	days := make([]calendarCell, 0, last.DayOfMonth())
	for d := 1; d <= last.DayOfMonth(); d++ {
		date := domain.NewDay(first.Year(), first.Month(), d)
		cell := calendarCell{Date: date, Events: byDay[date.String()]}
		if cell.Events == nil {
			cell.Events = []eventView{}
		}
		days = append(days, cell)
	}
	httputil.WriteJSON(w, http.StatusOK, calendarResponse{Month: month, Days: days})
}

// filterFromQuery builds the store filter from the optional property and
// repeatable kind query parameters. Kind filtering is restricted to the
// catalog; corrective kinds are reachable by property and month instead.
func filterFromQuery(r *http.Request) (eventstore.Filter, error) {
	var f eventstore.Filter
	if prop := r.URL.Query().Get("property"); prop != "" && prop != domain.ScopeAll {
		f.Property = domain.PropertyID(prop)
	}
	for _, raw := range r.URL.Query()["kind"] {
		kind, err := domain.ParseInspectionKind(raw)
		if err != nil {
			return eventstore.Filter{}, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown inspection kind: %s", raw))
		}
		f.Kinds = append(f.Kinds, kind)
	}
	return f, nil
}
