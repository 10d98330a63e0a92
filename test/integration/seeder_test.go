package integration

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/covicare/covicare/internal/domain/patient"
	"github.com/covicare/covicare/internal/platform/sandbox"
)

func TestSeederGeneratesAssessablePatients(t *testing.T) {
	ctx := context.Background()
	patientSvc, assessSvc := newAssessmentStack()

	seeder := sandbox.NewSeeder(patientSvc, assessSvc, zerolog.Nop())
	cfg := sandbox.SeedConfig{
		PatientCount:      10,
		MaxConditions:     2,
		MaxDoses:          3,
		AssessEachPatient: true,
		Seed:              42,
	}

	created, err := seeder.Run(ctx, cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if created == 0 {
		t.Fatal("expected at least one seeded patient")
	}

	// Every seeded patient has a complete record and an assessment.
	repo := patient.NewPatientRepoPG(globalDB.Pool)
	for i := 1; i <= created; i++ {
		p, err := repo.GetByMRN(ctx, seededMRN(i))
		if err != nil {
			continue // some indices may have been skipped
		}
		if _, err := patientSvc.GetLifestyle(ctx, p.ID); err != nil {
			t.Errorf("patient %s missing lifestyle profile: %v", p.MRN, err)
		}
		if _, err := assessSvc.Latest(ctx, p.ID); err != nil {
			t.Errorf("patient %s missing assessment: %v", p.MRN, err)
		}
	}
}

func seededMRN(i int) string {
	return fmt.Sprintf("DEMO-%06d", i)
}
