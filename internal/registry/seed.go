package registry

import (
	"context"

	"inspekt/pkg/domain"
)

// Seed provisions the demo portfolio used by the reference in-memory
// deployment. Real deployments load reference data from their own
// provisioning pipeline instead.
func Seed(store *Store) {
	ctx := context.Background()

	properties := []Property{
		{ID: "P-001", Name: "Harbor Office Park", Address: "12 Quay Street"},
		{ID: "P-002", Name: "Northgate Residences", Address: "88 North Gate Road"},
		{ID: "P-003", Name: "Mill Lane Warehouse", Address: "3 Mill Lane"},
	}
	for _, p := range properties {
		_ = store.AddProperty(ctx, p)
	}

	vendors := []Vendor{
		{ID: "V-001", Name: "Pyrotech Services", Skills: []domain.InspectionKind{domain.KindFireSafety, domain.KindVentilation}},
		{ID: "V-002", Name: "LiftCare GmbH", Skills: []domain.InspectionKind{domain.KindElevator}},
		{ID: "V-003", Name: "Voltline Electric", Skills: []domain.InspectionKind{domain.KindElectrical, domain.KindFireSafety}},
		{ID: "V-004", Name: "AquaCheck Labs", Skills: []domain.InspectionKind{domain.KindWaterHygiene}},
	}
	for _, v := range vendors {
		_ = store.AddVendor(ctx, v)
	}

	staff := []Staff{
		{ID: "U-001", Name: "Mara Lindqvist"},
		{ID: "U-002", Name: "Deniz Acar"},
		{ID: "U-003", Name: "Jonas Keller"},
	}
	for _, m := range staff {
		_ = store.AddStaff(ctx, m)
	}
}
