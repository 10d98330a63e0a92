package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/covicare/covicare/internal/domain/patient"
)

func seedTestPatient(t *testing.T, ctx context.Context, mrn string) *patient.Patient {
	t.Helper()
	repo := patient.NewPatientRepoPG(globalDB.Pool)
	p := &patient.Patient{
		MRN:       mrn,
		FirstName: "John",
		LastName:  "Doe",
		BirthDate: time.Date(1955, 3, 15, 0, 0, 0, 0, time.UTC),
		Gender:    ptrStr("male"),
	}
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("create patient: %v", err)
	}
	return p
}

func TestPatientCRUD(t *testing.T) {
	ctx := context.Background()
	repo := patient.NewPatientRepoPG(globalDB.Pool)

	p := seedTestPatient(t, ctx, "MRN-CRUD-001")
	if p.ID == uuid.Nil {
		t.Fatal("expected non-nil ID after create")
	}
	if p.FHIRID == "" {
		t.Fatal("expected non-empty FHIR ID after create")
	}

	t.Run("GetByID", func(t *testing.T) {
		got, err := repo.GetByID(ctx, p.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.MRN != "MRN-CRUD-001" || got.LastName != "Doe" {
			t.Errorf("unexpected patient: %+v", got)
		}
	})

	t.Run("GetByMRN", func(t *testing.T) {
		got, err := repo.GetByMRN(ctx, "MRN-CRUD-001")
		if err != nil {
			t.Fatalf("GetByMRN: %v", err)
		}
		if got.ID != p.ID {
			t.Errorf("id = %v, want %v", got.ID, p.ID)
		}
	})

	t.Run("Update", func(t *testing.T) {
		p.LastName = "Smith"
		if err := repo.Update(ctx, p); err != nil {
			t.Fatalf("Update: %v", err)
		}
		got, err := repo.GetByID(ctx, p.ID)
		if err != nil {
			t.Fatalf("GetByID after update: %v", err)
		}
		if got.LastName != "Smith" {
			t.Errorf("last name = %q, want Smith", got.LastName)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := repo.Delete(ctx, p.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := repo.GetByID(ctx, p.ID); err == nil {
			t.Error("expected error after delete")
		}
	})
}

func TestConditionRepo(t *testing.T) {
	ctx := context.Background()
	p := seedTestPatient(t, ctx, "MRN-COND-001")
	repo := patient.NewConditionRepoPG(globalDB.Pool)

	active := &patient.Condition{PatientID: p.ID, Name: "Type 2 Diabetes", Severity: "moderate", Active: true}
	if err := repo.Create(ctx, active); err != nil {
		t.Fatalf("create active condition: %v", err)
	}
	resolved := &patient.Condition{PatientID: p.ID, Name: "Asthma", Severity: "mild", Active: false}
	if err := repo.Create(ctx, resolved); err != nil {
		t.Fatalf("create resolved condition: %v", err)
	}

	all, total, err := repo.ListByPatient(ctx, p.ID, 20, 0)
	if err != nil {
		t.Fatalf("ListByPatient: %v", err)
	}
	if total != 2 || len(all) != 2 {
		t.Errorf("list = %d/%d, want 2/2", len(all), total)
	}

	activeOnly, err := repo.ListActiveByPatient(ctx, p.ID)
	if err != nil {
		t.Fatalf("ListActiveByPatient: %v", err)
	}
	if len(activeOnly) != 1 || activeOnly[0].Name != "Type 2 Diabetes" {
		t.Errorf("unexpected active conditions: %+v", activeOnly)
	}
}

func TestVaccinationRepoOrdering(t *testing.T) {
	ctx := context.Background()
	p := seedTestPatient(t, ctx, "MRN-VAX-001")
	repo := patient.NewVaccinationRepoPG(globalDB.Pool)

	// Insert out of order; listing must come back by administration date.
	second := &patient.VaccinationDose{PatientID: p.ID, DoseNumber: 2, Vaccine: "BNT162b2", AdministeredAt: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)}
	first := &patient.VaccinationDose{PatientID: p.ID, DoseNumber: 1, Vaccine: "BNT162b2", AdministeredAt: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)}
	for _, d := range []*patient.VaccinationDose{second, first} {
		if err := repo.Create(ctx, d); err != nil {
			t.Fatalf("create dose %d: %v", d.DoseNumber, err)
		}
	}

	doses, err := repo.ListByPatient(ctx, p.ID)
	if err != nil {
		t.Fatalf("ListByPatient: %v", err)
	}
	if len(doses) != 2 {
		t.Fatalf("doses = %d, want 2", len(doses))
	}
	if doses[0].DoseNumber != 1 || doses[1].DoseNumber != 2 {
		t.Errorf("doses out of order: %d then %d", doses[0].DoseNumber, doses[1].DoseNumber)
	}

	// The schema rejects a duplicate dose number per patient.
	dup := &patient.VaccinationDose{PatientID: p.ID, DoseNumber: 2, Vaccine: "BNT162b2", AdministeredAt: time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC)}
	if err := repo.Create(ctx, dup); err == nil {
		t.Error("expected unique violation for duplicate dose number")
	}
}

func TestLifestyleUpsert(t *testing.T) {
	ctx := context.Background()
	p := seedTestPatient(t, ctx, "MRN-LIFE-001")
	repo := patient.NewLifestyleRepoPG(globalDB.Pool)

	l := &patient.LifestyleProfile{PatientID: p.ID, SmokingStatus: "current", ActivityLevel: "sedentary", OccupationalExposure: true}
	if err := repo.Upsert(ctx, l); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	replacement := &patient.LifestyleProfile{PatientID: p.ID, SmokingStatus: "former", ActivityLevel: "light"}
	if err := repo.Upsert(ctx, replacement); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := repo.GetByPatient(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByPatient: %v", err)
	}
	if got.SmokingStatus != "former" || got.ActivityLevel != "light" || got.OccupationalExposure {
		t.Errorf("unexpected profile after upsert: %+v", got)
	}
}
