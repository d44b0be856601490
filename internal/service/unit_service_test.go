package service

import (
	"context"
	"testing"

	"github.com/careops/hospitalops/internal/domain"
	apperrors "github.com/careops/hospitalops/pkg/util/errorutil"
)

func TestUnitCreateNormalizesInput(t *testing.T) {
	repo := &fakeUnitRepo{units: map[string]domain.Unit{}}
	svc := NewUnitService(repo)

	unit, err := svc.Create(context.Background(), UnitInput{
		Name:        "  Mercy West  ",
		Email:       "Ops@MercyWest.org",
		Departments: []string{" ICU ", "", "Radiology"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if unit.ID == "" {
		t.Error("ID not set by repository")
	}
	if unit.Name != "Mercy West" {
		t.Errorf("Name = %q, want trimmed", unit.Name)
	}
	if unit.Email != "ops@mercywest.org" {
		t.Errorf("Email = %q, want lowercased", unit.Email)
	}
	if len(unit.Departments) != 2 || unit.Departments[0] != "ICU" || unit.Departments[1] != "Radiology" {
		t.Errorf("Departments = %v, want [ICU Radiology]", unit.Departments)
	}
}

func TestUnitCreateRequiresName(t *testing.T) {
	svc := NewUnitService(&fakeUnitRepo{units: map[string]domain.Unit{}})
	_, err := svc.Create(context.Background(), UnitInput{Name: "  "})
	if !apperrors.IsCode(err, "VALIDATION_FAILED") {
		t.Fatalf("Create error = %v, want VALIDATION_FAILED", err)
	}
}

func TestUnitListReturnsAll(t *testing.T) {
	repo := &fakeUnitRepo{units: map[string]domain.Unit{}}
	svc := NewUnitService(repo)
	for _, name := range []string{"Mercy West", "St. Catherine General"} {
		if _, err := svc.Create(context.Background(), UnitInput{Name: name}); err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
	}

	units, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(units) != 2 {
		t.Fatalf("List = %d units, want 2", len(units))
	}
}
