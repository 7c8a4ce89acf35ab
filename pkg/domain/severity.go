package domain

import dErrors "inspekt/pkg/domain-errors"

// Severity grades a recorded non-conformity and determines the corrective
// lead time granted before the follow-up task falls due.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// correctiveLeadDays maps severity to the number of days granted for the
// derived corrective event.
var correctiveLeadDays = map[Severity]int{
	SeverityHigh:   7,
	SeverityMedium: 14,
	SeverityLow:    30,
}

// ParseSeverity constructs a Severity from external input.
func ParseSeverity(s string) (Severity, error) {
	sev := Severity(s)
	if _, ok := correctiveLeadDays[sev]; !ok {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown severity: "+s)
	}
	return sev, nil
}

// IsValid reports whether the severity is one of the supported grades.
func (s Severity) IsValid() bool {
	_, ok := correctiveLeadDays[s]
	return ok
}

// LeadDays returns the corrective lead time in days. Unknown severities
// fall back to the Low lead time rather than panicking.
func (s Severity) LeadDays() int {
	if days, ok := correctiveLeadDays[s]; ok {
		return days
	}
	return correctiveLeadDays[SeverityLow]
}

func (s Severity) String() string { return string(s) }
