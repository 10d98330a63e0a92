package integration

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/covicare/covicare/internal/domain/assessment"
	"github.com/covicare/covicare/internal/domain/patient"
	"github.com/covicare/covicare/internal/risk"
)

func newAssessmentStack() (*patient.Service, *assessment.Service) {
	patientSvc := patient.NewService(
		patient.NewPatientRepoPG(globalDB.Pool),
		patient.NewConditionRepoPG(globalDB.Pool),
		patient.NewVaccinationRepoPG(globalDB.Pool),
		patient.NewLifestyleRepoPG(globalDB.Pool),
	)
	assessSvc := assessment.NewService(assessment.NewRepoPG(globalDB.Pool), patientSvc, zerolog.Nop())
	return patientSvc, assessSvc
}

func TestRecalculateEndToEnd(t *testing.T) {
	ctx := context.Background()
	patientSvc, assessSvc := newAssessmentStack()

	p := &patient.Patient{
		MRN:       "MRN-ASSESS-001",
		FirstName: "Rosa",
		LastName:  "Parks",
		BirthDate: time.Now().UTC().AddDate(-75, 0, -30),
	}
	if err := patientSvc.CreatePatient(ctx, p); err != nil {
		t.Fatalf("create patient: %v", err)
	}

	cond := &patient.Condition{PatientID: p.ID, Name: "COPD", Severity: "severe", Active: true}
	if err := patientSvc.CreateCondition(ctx, cond); err != nil {
		t.Fatalf("create condition: %v", err)
	}

	dose := &patient.VaccinationDose{PatientID: p.ID, Vaccine: "BNT162b2", AdministeredAt: time.Now().UTC().AddDate(0, -2, 0)}
	if err := patientSvc.RecordDose(ctx, dose); err != nil {
		t.Fatalf("record dose: %v", err)
	}

	l := &patient.LifestyleProfile{PatientID: p.ID, SmokingStatus: "never", ActivityLevel: "light"}
	if err := patientSvc.UpsertLifestyle(ctx, l); err != nil {
		t.Fatalf("upsert lifestyle: %v", err)
	}

	ra, err := assessSvc.Recalculate(ctx, p.ID, nil)
	if err != nil {
		t.Fatalf("Recalculate: %v", err)
	}

	// age 20 + comorbidity 15 + vaccination -5 + lifestyle 5 = 35
	if ra.TotalScore != 35 {
		t.Errorf("total score = %d, want 35", ra.TotalScore)
	}
	if ra.RiskLevel != string(risk.RiskHigh) {
		t.Errorf("risk level = %q, want high", ra.RiskLevel)
	}
	if len(ra.Recommendations) == 0 {
		t.Error("expected recommendations")
	}

	// Stored row round-trips including the recommendations array.
	got, err := assessSvc.GetByID(ctx, ra.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.TotalScore != ra.TotalScore || got.RiskLevel != ra.RiskLevel {
		t.Errorf("stored row mismatch: %+v vs %+v", got, ra)
	}
	if len(got.Recommendations) != len(ra.Recommendations) {
		t.Errorf("recommendations = %d, want %d", len(got.Recommendations), len(ra.Recommendations))
	}

	// A second recalculation appends rather than overwrites.
	if _, err := assessSvc.Recalculate(ctx, p.ID, nil); err != nil {
		t.Fatalf("second Recalculate: %v", err)
	}
	history, total, err := assessSvc.History(ctx, p.ID, 20, 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if total != 2 || len(history) != 2 {
		t.Errorf("history = %d/%d, want 2/2", len(history), total)
	}

	latest, err := assessSvc.Latest(ctx, p.ID)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest.ComputedAt.Before(history[len(history)-1].ComputedAt) {
		t.Error("latest is older than history tail")
	}
}

func TestRecalculateRejectsIncompleteRecord(t *testing.T) {
	ctx := context.Background()
	patientSvc, assessSvc := newAssessmentStack()

	// Patient without a lifestyle profile cannot be scored.
	p := &patient.Patient{
		MRN:       "MRN-ASSESS-002",
		FirstName: "Mary",
		LastName:  "Seacole",
		BirthDate: time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := patientSvc.CreatePatient(ctx, p); err != nil {
		t.Fatalf("create patient: %v", err)
	}

	if _, err := assessSvc.Recalculate(ctx, p.ID, nil); err == nil {
		t.Fatal("expected error for missing lifestyle profile")
	}

	if _, _, err := assessSvc.History(ctx, p.ID, 20, 0); err != nil {
		t.Fatalf("History: %v", err)
	}
	if history, total, _ := assessSvc.History(ctx, p.ID, 20, 0); total != 0 || len(history) != 0 {
		t.Errorf("history = %d/%d, want empty", len(history), total)
	}
}
