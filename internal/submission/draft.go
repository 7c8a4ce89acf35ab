// Package submission orchestrates the checklist workflow: collect answers,
// non-conformities and photo evidence, then turn them into a finalized
// report and its corrective follow-up events in one atomic step.
package submission

import (
	"context"

	"inspekt/internal/events"
	"inspekt/internal/photo"
	"inspekt/internal/report"
	"inspekt/pkg/domain"
	dErrors "inspekt/pkg/domain-errors"
)

// State is the lifecycle of one in-progress submission.
type State string

const (
	StateEditing    State = "editing"
	StateSubmitting State = "submitting"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
)

// MaxPhotos caps photo evidence per submission; uploads beyond the cap are
// silently dropped.
const MaxPhotos = 6

// Draft is the ephemeral editing state for one target event. It never
// touches the event store until Submit; every mutation here is freely
// reversible. A Draft is not safe for concurrent use; the single-session
// model serializes edits.
type Draft struct {
	event           *events.Event
	answers         map[string]bool
	nonConformities []report.NonConformity
	photos          []photo.Photo
	state           State
	encoder         *photo.Encoder
}

// Event returns the snapshot of the target event the draft was begun for.
func (d *Draft) Event() events.Event { return *d.event }

// State returns the draft's current lifecycle state.
func (d *Draft) State() State { return d.state }

// SetAnswer records a checklist answer. Unanswered items default to false.
func (d *Draft) SetAnswer(item string, checked bool) {
	d.answers[item] = checked
}

// Answers returns a copy of the current answers.
func (d *Draft) Answers() map[string]bool {
	out := make(map[string]bool, len(d.answers))
	for k, v := range d.answers {
		out[k] = v
	}
	return out
}

// AddNonConformity appends a new entry with the defaults (empty note, Low
// severity) and returns its index.
func (d *Draft) AddNonConformity() int {
	d.nonConformities = append(d.nonConformities, report.NonConformity{Severity: domain.SeverityLow})
	return len(d.nonConformities) - 1
}

// UpdateNonConformity edits the entry at index.
func (d *Draft) UpdateNonConformity(index int, note string, severity domain.Severity) error {
	if index < 0 || index >= len(d.nonConformities) {
		return dErrors.New(dErrors.CodeInvalidInput, "non-conformity index out of range")
	}
	if !severity.IsValid() {
		return dErrors.New(dErrors.CodeInvalidInput, "unknown severity: "+severity.String())
	}
	d.nonConformities[index] = report.NonConformity{Note: note, Severity: severity}
	return nil
}

// RemoveNonConformity deletes the entry at index.
func (d *Draft) RemoveNonConformity(index int) error {
	if index < 0 || index >= len(d.nonConformities) {
		return dErrors.New(dErrors.CodeInvalidInput, "non-conformity index out of range")
	}
	d.nonConformities = append(d.nonConformities[:index], d.nonConformities[index+1:]...)
	return nil
}

// NonConformities returns a copy of the current entries.
func (d *Draft) NonConformities() []report.NonConformity {
	return append([]report.NonConformity{}, d.nonConformities...)
}

// AttachPhotos encodes and appends photo evidence. Uploads beyond the
// MaxPhotos cap are silently dropped; encoding runs concurrently and all
// encodes finish before the call returns. A non-image upload fails the
// batch while the draft stays editable.
func (d *Draft) AttachPhotos(ctx context.Context, uploads []photo.Upload) error {
	room := MaxPhotos - len(d.photos)
	if room <= 0 {
		return nil
	}
	if len(uploads) > room {
		uploads = uploads[:room]
	}
	encoded, err := d.encoder.EncodeAll(ctx, uploads)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidInput, "photo could not be processed")
	}
	d.photos = append(d.photos, encoded...)
	return nil
}

// Photos returns a copy of the attached evidence in upload order.
func (d *Draft) Photos() []photo.Photo {
	return append([]photo.Photo{}, d.photos...)
}
