package submission

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"inspekt/internal/events"
	eventstore "inspekt/internal/events/store"
	"inspekt/internal/notification"
	"inspekt/internal/photo"
	"inspekt/internal/platform/metrics"
	"inspekt/internal/registry"
	"inspekt/internal/report"
	"inspekt/pkg/domain"
	dErrors "inspekt/pkg/domain-errors"
	"inspekt/pkg/platform/sentinel"
	"inspekt/pkg/requestcontext"
)

// Renderer produces the durable report artifact and returns its location.
// internal/report/render satisfies this with an Excel workbook on disk.
type Renderer interface {
	Render(ctx context.Context, rep *report.Report) (string, error)
}

// renderTimeout bounds report production so a wedged renderer cannot hold
// the submission slot forever.
const renderTimeout = 60 * time.Second

// Service runs the submission workflow end to end. Completion is all or
// nothing: the report artifact, the parent's Completed status and the
// corrective events become observable together, or nothing changes.
type Service struct {
	registry *registry.Store
	store    eventstore.Store
	feed     notification.Feed
	renderer Renderer
	encoder  *photo.Encoder
	metrics  *metrics.Metrics
	logger   *slog.Logger
	tracer   trace.Tracer

	mu       sync.Mutex
	inFlight map[domain.EventID]struct{}
}

// NewService creates a submission Service.
func NewService(
	reg *registry.Store,
	store eventstore.Store,
	feed notification.Feed,
	renderer Renderer,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Service {
	return &Service{
		registry: reg,
		store:    store,
		feed:     feed,
		renderer: renderer,
		encoder:  photo.NewEncoder(),
		metrics:  m,
		logger:   logger,
		tracer:   otel.Tracer("inspekt/submission"),
		inFlight: make(map[domain.EventID]struct{}),
	}
}

// Begin opens a draft for the given event. Completed events cannot be
// submitted again; reopening is not supported.
func (s *Service) Begin(ctx context.Context, id domain.EventID) (*Draft, error) {
	ev, err := s.store.FindByID(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "event not found: "+id.String())
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load event")
	}
	if ev.Status == events.StatusCompleted {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "event already completed: "+id.String())
	}
	return &Draft{
		event:   ev,
		answers: make(map[string]bool),
		state:   StateEditing,
		encoder: s.encoder,
	}, nil
}

// Outcome summarizes one successful submission.
type Outcome struct {
	ReportPath  string `json:"report_path"`
	Correctives int    `json:"correctives"`
}

// Submit finalizes the draft: render the report, then complete the parent
// and insert the derived corrective events in one atomic store operation.
// A render failure leaves the draft editable and the store untouched; the
// caller may fix the draft and retry.
func (s *Service) Submit(ctx context.Context, d *Draft) (Outcome, error) {
	if d == nil || d.event == nil {
		return Outcome{}, dErrors.New(dErrors.CodeInvariantViolation, "submission has no target event")
	}
	if d.state == StateSubmitting || d.state == StateCompleted {
		return Outcome{}, dErrors.New(dErrors.CodeConflict, "submission is not editable")
	}
	if !s.acquire(d.event.ID) {
		return Outcome{}, dErrors.New(dErrors.CodeConflict, "submission already in flight for "+d.event.ID.String())
	}
	defer s.release(d.event.ID)

	ctx, span := s.tracer.Start(ctx, "submission.submit",
		trace.WithAttributes(attribute.String("event.id", d.event.ID.String())))
	defer span.End()

	start := time.Now()
	d.state = StateSubmitting

	now := requestcontext.Now(ctx)
	today := domain.DayOf(now)
	rep := s.snapshot(ctx, d, now)
	correctives := deriveCorrectives(d.event, d.nonConformities, today)

	renderCtx, cancel := context.WithTimeout(ctx, renderTimeout)
	defer cancel()
	path, err := s.renderer.Render(renderCtx, rep)
	if err != nil {
		return Outcome{}, s.fail(ctx, d, span, rep, dErrors.Wrap(err, dErrors.CodeInternal, "render report"))
	}

	if err := s.store.Complete(ctx, d.event.ID, correctives); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			err = dErrors.Wrap(err, dErrors.CodeNotFound, "event not found: "+d.event.ID.String())
		case errors.Is(err, sentinel.ErrInvalidState):
			err = dErrors.Wrap(err, dErrors.CodeConflict, "event already completed: "+d.event.ID.String())
		default:
			err = dErrors.Wrap(err, dErrors.CodeInternal, "complete event")
		}
		return Outcome{}, s.fail(ctx, d, span, rep, err)
	}

	d.state = StateCompleted
	s.metrics.Submissions.WithLabelValues("completed").Inc()
	s.metrics.CorrectiveEvents.Add(float64(len(correctives)))
	s.metrics.SubmitDuration.Observe(time.Since(start).Seconds())
	s.logger.Info("submission completed",
		"event_id", d.event.ID,
		"correctives", len(correctives),
		"report", path,
	)
	s.feed.Append(ctx, notification.LevelSuccess,
		fmt.Sprintf("Inspection completed: %s at %s", d.event.Kind.Label(), rep.Property.Name))
	if n := len(correctives); n > 0 {
		s.feed.Append(ctx, notification.LevelInfo, fmt.Sprintf("%d corrective tasks created", n))
	}

	return Outcome{ReportPath: path, Correctives: len(correctives)}, nil
}

// fail records a failed submission attempt. The draft moves to Failed but
// keeps its content, so Submit may be retried after the cause is fixed.
func (s *Service) fail(ctx context.Context, d *Draft, span trace.Span, rep *report.Report, err error) error {
	d.state = StateFailed
	span.RecordError(err)
	s.metrics.Submissions.WithLabelValues("failed").Inc()
	s.logger.Error("submission failed",
		"event_id", d.event.ID,
		"error", err,
	)
	s.feed.Append(ctx, notification.LevelError,
		fmt.Sprintf("Submission failed: %s at %s", d.event.Kind.Label(), rep.Property.Name))
	return err
}

// snapshot assembles the immutable report input. Registry misses degrade to
// id-only placeholders rather than failing the submission.
func (s *Service) snapshot(ctx context.Context, d *Draft, now time.Time) *report.Report {
	prop, err := s.registry.FindProperty(ctx, d.event.PropertyID)
	if err != nil {
		prop = registry.Property{ID: d.event.PropertyID, Name: d.event.PropertyID.String()}
	}
	assignee, err := s.registry.FindStaff(ctx, d.event.AssigneeID)
	if err != nil {
		assignee = registry.Staff{ID: d.event.AssigneeID, Name: d.event.AssigneeID.String()}
	}
	return &report.Report{
		Property:        prop,
		Kind:            d.event.Kind,
		CompletedAt:     now,
		Assignee:        assignee,
		Answers:         d.Answers(),
		Photos:          d.Photos(),
		NonConformities: d.NonConformities(),
	}
}

// deriveCorrectives turns each recorded non-conformity into a corrective
// event. Ids are derived from the parent so the same submission could never
// mint two different sets; due dates follow the severity lead times.
func deriveCorrectives(parent *events.Event, ncs []report.NonConformity, today domain.Day) []*events.Event {
	out := make([]*events.Event, 0, len(ncs))
	for i, nc := range ncs {
		out = append(out, &events.Event{
			ID:            domain.EventID(fmt.Sprintf("%s-C%d", parent.ID, i+1)),
			ScheduledDate: today,
			DueDate:       today.AddDays(nc.Severity.LeadDays()),
			PropertyID:    parent.PropertyID,
			Kind:          correctiveKind(parent.Kind, nc.Note),
			AssigneeID:    parent.AssigneeID,
			VendorID:      parent.VendorID,
			Status:        events.StatusInCorrection,
			ParentID:      parent.ID,
		})
	}
	return out
}

// correctiveKind labels the follow-up task after its origin and finding.
func correctiveKind(parent domain.InspectionKind, note string) domain.InspectionKind {
	label := strings.TrimSpace(note)
	if label == "" {
		label = "corrective action"
	}
	return domain.InspectionKind(fmt.Sprintf("%s: %s", parent, label))
}

func (s *Service) acquire(id domain.EventID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[id]; busy {
		return false
	}
	s.inFlight[id] = struct{}{}
	return true
}

func (s *Service) release(id domain.EventID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, id)
}
