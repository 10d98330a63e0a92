// Package sandbox generates synthetic patient data for demo and development
// environments. Generation is reproducible for a given seed so demo
// databases stay stable across rebuilds.
package sandbox

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/covicare/covicare/internal/domain/assessment"
	"github.com/covicare/covicare/internal/domain/patient"
)

// SeedConfig controls the volume and shape of generated synthetic data.
type SeedConfig struct {
	PatientCount      int   `json:"patientCount"`
	MaxConditions     int   `json:"maxConditions"`
	MaxDoses          int   `json:"maxDoses"`
	AssessEachPatient bool  `json:"assessEachPatient"`
	Seed              int64 `json:"seed"`
}

// DefaultSeedConfig returns a SeedConfig with sensible demo defaults.
func DefaultSeedConfig() SeedConfig {
	return SeedConfig{
		PatientCount:      50,
		MaxConditions:     3,
		MaxDoses:          4,
		AssessEachPatient: true,
		Seed:              1,
	}
}

var firstNames = []string{
	"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael",
	"Linda", "David", "Elizabeth", "Carlos", "Amara", "Wei", "Fatima",
	"Yuki", "Priya", "Omar", "Ingrid",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Rodriguez", "Martinez", "Nguyen", "Kim", "Patel", "Okafor",
	"Tanaka", "Andersson",
}

var conditionNames = []string{
	"Type 2 Diabetes", "Essential Hypertension", "COPD", "Asthma",
	"Chronic Kidney Disease Stage 3", "Obesity", "Seasonal Allergies",
	"Migraine", "Coronary Heart Disease", "Hypothyroidism",
}

var severities = []string{"mild", "moderate", "severe"}
var smokingStatuses = []string{"never", "never", "former", "current"}
var activityLevels = []string{"sedentary", "light", "active"}
var vaccines = []string{"BNT162b2", "mRNA-1273", "Ad26.COV2.S"}

// Seeder populates the database with synthetic patients, their risk factor
// records, and optionally an initial assessment per patient.
type Seeder struct {
	patients    *patient.Service
	assessments *assessment.Service
	logger      zerolog.Logger
}

func NewSeeder(patients *patient.Service, assessments *assessment.Service, logger zerolog.Logger) *Seeder {
	return &Seeder{patients: patients, assessments: assessments, logger: logger}
}

// Run generates cfg.PatientCount synthetic patients. It returns the number
// of patients created. Failures on individual patients are logged and
// skipped so one bad record does not abort the whole seed.
func (s *Seeder) Run(ctx context.Context, cfg SeedConfig) (int, error) {
	if cfg.PatientCount <= 0 {
		return 0, fmt.Errorf("patient count must be positive")
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	created := 0
	for i := 0; i < cfg.PatientCount; i++ {
		if err := ctx.Err(); err != nil {
			return created, err
		}
		if err := s.seedPatient(ctx, rng, cfg, i); err != nil {
			s.logger.Warn().Err(err).Int("index", i).Msg("skipping synthetic patient")
			continue
		}
		created++
	}

	s.logger.Info().Int("patients", created).Msg("sandbox seed complete")
	return created, nil
}

func (s *Seeder) seedPatient(ctx context.Context, rng *rand.Rand, cfg SeedConfig, index int) error {
	age := 18 + rng.Intn(75)
	birth := time.Now().UTC().AddDate(-age, 0, -rng.Intn(365))
	gender := []string{"male", "female", "other"}[rng.Intn(3)]

	p := &patient.Patient{
		MRN:       fmt.Sprintf("DEMO-%06d", index+1),
		FirstName: firstNames[rng.Intn(len(firstNames))],
		LastName:  lastNames[rng.Intn(len(lastNames))],
		BirthDate: birth,
		Gender:    &gender,
	}
	if err := s.patients.CreatePatient(ctx, p); err != nil {
		return fmt.Errorf("create patient: %w", err)
	}

	for c := 0; c < rng.Intn(cfg.MaxConditions+1); c++ {
		cond := &patient.Condition{
			PatientID: p.ID,
			Name:      conditionNames[rng.Intn(len(conditionNames))],
			Severity:  severities[rng.Intn(len(severities))],
			Active:    rng.Intn(4) != 0,
		}
		if err := s.patients.CreateCondition(ctx, cond); err != nil {
			return fmt.Errorf("create condition: %w", err)
		}
	}

	doses := rng.Intn(cfg.MaxDoses + 1)
	last := time.Now().UTC().AddDate(0, 0, -(30 + rng.Intn(400)))
	for d := doses; d > 0; d-- {
		dose := &patient.VaccinationDose{
			PatientID:      p.ID,
			DoseNumber:     d,
			Vaccine:        vaccines[rng.Intn(len(vaccines))],
			AdministeredAt: last.AddDate(0, -2*(doses-d), 0),
		}
		if err := s.patients.RecordDose(ctx, dose); err != nil {
			return fmt.Errorf("record dose: %w", err)
		}
	}

	l := &patient.LifestyleProfile{
		PatientID:            p.ID,
		SmokingStatus:        smokingStatuses[rng.Intn(len(smokingStatuses))],
		ActivityLevel:        activityLevels[rng.Intn(len(activityLevels))],
		OccupationalExposure: rng.Intn(5) == 0,
	}
	if err := s.patients.UpsertLifestyle(ctx, l); err != nil {
		return fmt.Errorf("upsert lifestyle: %w", err)
	}

	if cfg.AssessEachPatient {
		if _, err := s.assessments.Recalculate(ctx, p.ID, nil); err != nil {
			return fmt.Errorf("assess: %w", err)
		}
	}
	return nil
}
