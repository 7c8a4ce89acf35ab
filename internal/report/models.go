// Package report defines the write-once artifact produced by a completed
// checklist submission.
package report

import (
	"fmt"
	"strings"
	"time"

	"inspekt/internal/photo"
	"inspekt/internal/registry"
	"inspekt/pkg/domain"
)

// NonConformity is one deficiency recorded during an inspection. It lives
// on the report snapshot only; persistence happens through the corrective
// event derived from it.
type NonConformity struct {
	Note     string          `json:"note"`
	Severity domain.Severity `json:"severity"`
}

// Report is the snapshot handed to the document renderer. Never mutated
// after construction.
type Report struct {
	Property        registry.Property     `json:"property"`
	Kind            domain.InspectionKind `json:"kind"`
	CompletedAt     time.Time             `json:"completed_at"`
	Assignee        registry.Staff        `json:"assignee"`
	Answers         map[string]bool       `json:"answers"`
	Photos          []photo.Photo         `json:"photos"`
	NonConformities []NonConformity       `json:"non_conformities"`
}

// Filename returns the deterministic artifact name:
// property, kind, a fixed report marker and a minute-precision timestamp.
func (r *Report) Filename() string {
	return fmt.Sprintf("%s_%s_report_%s.xlsx",
		sanitize(r.Property.Name),
		r.Kind,
		r.CompletedAt.Format("20060102_1504"),
	)
}

// sanitize keeps filenames filesystem-safe without losing readability.
func sanitize(s string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_':
			return r
		case r == ' ':
			return '_'
		default:
			return -1
		}
	}, s)
	if mapped == "" {
		return "property"
	}
	return mapped
}
