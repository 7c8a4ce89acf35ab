package domain

import dErrors "inspekt/pkg/domain-errors"

// InspectionKind identifies a category of legally mandated facility check.
// The catalog is fixed at compile time; each kind carries a display label
// and a default recurrence used by the annual planner.
type InspectionKind string

// Supported inspection kinds.
const (
	KindFireSafety   InspectionKind = "fire_safety"
	KindElevator     InspectionKind = "elevator"
	KindElectrical   InspectionKind = "electrical"
	KindWaterHygiene InspectionKind = "water_hygiene"
	KindVentilation  InspectionKind = "ventilation"
)

// Frequency is a default recurrence cadence for an inspection kind.
type Frequency string

const (
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
)

// KindInfo describes one catalog entry.
type KindInfo struct {
	Kind      InspectionKind `json:"kind"`
	Label     string         `json:"label"`
	Frequency Frequency      `json:"frequency"`
}

// kindCatalog is the single source of truth for supported kinds.
var kindCatalog = map[InspectionKind]KindInfo{
	KindFireSafety:   {Kind: KindFireSafety, Label: "Fire safety equipment", Frequency: FrequencyMonthly},
	KindElevator:     {Kind: KindElevator, Label: "Elevator", Frequency: FrequencyQuarterly},
	KindElectrical:   {Kind: KindElectrical, Label: "Electrical installation", Frequency: FrequencyYearly},
	KindWaterHygiene: {Kind: KindWaterHygiene, Label: "Drinking water hygiene", Frequency: FrequencyQuarterly},
	KindVentilation:  {Kind: KindVentilation, Label: "Ventilation system", Frequency: FrequencyMonthly},
}

// kindOrder fixes catalog iteration order; rotation indices depend on it.
var kindOrder = []InspectionKind{
	KindFireSafety,
	KindElevator,
	KindElectrical,
	KindWaterHygiene,
	KindVentilation,
}

// ParseInspectionKind constructs an InspectionKind from external input.
func ParseInspectionKind(s string) (InspectionKind, error) {
	k := InspectionKind(s)
	if _, ok := kindCatalog[k]; !ok {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown inspection kind: "+s)
	}
	return k, nil
}

// IsValid reports whether the kind is part of the catalog.
func (k InspectionKind) IsValid() bool {
	_, ok := kindCatalog[k]
	return ok
}

// Label returns the human-readable catalog label, or the raw value for
// derived corrective labels that are not catalog entries.
func (k InspectionKind) Label() string {
	if info, ok := kindCatalog[k]; ok {
		return info.Label
	}
	return string(k)
}

// DefaultFrequency returns the catalog recurrence for the kind.
func (k InspectionKind) DefaultFrequency() (Frequency, bool) {
	info, ok := kindCatalog[k]
	return info.Frequency, ok
}

func (k InspectionKind) String() string { return string(k) }

// Kinds returns the catalog entries in fixed order.
func Kinds() []KindInfo {
	out := make([]KindInfo, 0, len(kindOrder))
	for _, k := range kindOrder {
		out = append(out, kindCatalog[k])
	}
	return out
}
