package patient

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/covicare/covicare/internal/risk"
)

type Service struct {
	patients    PatientRepository
	conditions  ConditionRepository
	vaccination VaccinationRepository
	lifestyle   LifestyleRepository
}

func NewService(patients PatientRepository, conditions ConditionRepository, vaccination VaccinationRepository, lifestyle LifestyleRepository) *Service {
	return &Service{patients: patients, conditions: conditions, vaccination: vaccination, lifestyle: lifestyle}
}

// -- Patient --

func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	if p.MRN == "" {
		return fmt.Errorf("mrn is required")
	}
	if p.FirstName == "" || p.LastName == "" {
		return fmt.Errorf("first_name and last_name are required")
	}
	if p.BirthDate.IsZero() {
		return fmt.Errorf("birth_date is required")
	}
	if p.BirthDate.After(time.Now()) {
		return fmt.Errorf("birth_date cannot be in the future")
	}
	return s.patients.Create(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) GetPatientByMRN(ctx context.Context, mrn string) (*Patient, error) {
	return s.patients.GetByMRN(ctx, mrn)
}

func (s *Service) UpdatePatient(ctx context.Context, p *Patient) error {
	if p.BirthDate.After(time.Now()) {
		return fmt.Errorf("birth_date cannot be in the future")
	}
	return s.patients.Update(ctx, p)
}

func (s *Service) DeletePatient(ctx context.Context, id uuid.UUID) error {
	return s.patients.Delete(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, limit, offset)
}

// -- Condition --

var validSeverities = map[string]bool{
	string(risk.SeverityMild):     true,
	string(risk.SeverityModerate): true,
	string(risk.SeveritySevere):   true,
}

func (s *Service) CreateCondition(ctx context.Context, c *Condition) error {
	if c.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	if c.Severity == "" {
		c.Severity = string(risk.SeverityMild)
	}
	if !validSeverities[c.Severity] {
		return fmt.Errorf("invalid severity: %s", c.Severity)
	}
	return s.conditions.Create(ctx, c)
}

func (s *Service) GetCondition(ctx context.Context, id uuid.UUID) (*Condition, error) {
	return s.conditions.GetByID(ctx, id)
}

func (s *Service) UpdateCondition(ctx context.Context, c *Condition) error {
	if c.Severity != "" && !validSeverities[c.Severity] {
		return fmt.Errorf("invalid severity: %s", c.Severity)
	}
	return s.conditions.Update(ctx, c)
}

func (s *Service) DeleteCondition(ctx context.Context, id uuid.UUID) error {
	return s.conditions.Delete(ctx, id)
}

func (s *Service) ListConditionsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Condition, int, error) {
	return s.conditions.ListByPatient(ctx, patientID, limit, offset)
}

// -- Vaccination --

func (s *Service) RecordDose(ctx context.Context, d *VaccinationDose) error {
	if d.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if d.Vaccine == "" {
		return fmt.Errorf("vaccine is required")
	}
	if d.AdministeredAt.IsZero() {
		return fmt.Errorf("administered_at is required")
	}
	if d.AdministeredAt.After(time.Now()) {
		return fmt.Errorf("administered_at cannot be in the future")
	}

	existing, err := s.vaccination.ListByPatient(ctx, d.PatientID)
	if err != nil {
		return fmt.Errorf("list doses: %w", err)
	}
	if d.DoseNumber == 0 {
		d.DoseNumber = len(existing) + 1
	}
	for _, e := range existing {
		if e.DoseNumber == d.DoseNumber {
			return fmt.Errorf("dose %d is already recorded", d.DoseNumber)
		}
	}
	return s.vaccination.Create(ctx, d)
}

func (s *Service) DeleteDose(ctx context.Context, id uuid.UUID) error {
	return s.vaccination.Delete(ctx, id)
}

func (s *Service) ListDoses(ctx context.Context, patientID uuid.UUID) ([]*VaccinationDose, error) {
	return s.vaccination.ListByPatient(ctx, patientID)
}

// -- Lifestyle --

var validSmokingStatuses = map[string]bool{
	string(risk.SmokingNever):   true,
	string(risk.SmokingFormer):  true,
	string(risk.SmokingCurrent): true,
}

var validActivityLevels = map[string]bool{
	string(risk.ActivitySedentary): true,
	string(risk.ActivityLight):     true,
	string(risk.ActivityActive):    true,
}

func (s *Service) UpsertLifestyle(ctx context.Context, l *LifestyleProfile) error {
	if l.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if !validSmokingStatuses[l.SmokingStatus] {
		return fmt.Errorf("invalid smoking_status: %s", l.SmokingStatus)
	}
	if !validActivityLevels[l.ActivityLevel] {
		return fmt.Errorf("invalid activity_level: %s", l.ActivityLevel)
	}
	return s.lifestyle.Upsert(ctx, l)
}

func (s *Service) GetLifestyle(ctx context.Context, patientID uuid.UUID) (*LifestyleProfile, error) {
	return s.lifestyle.GetByPatient(ctx, patientID)
}

// -- Snapshot assembly --

// Snapshot assembles the point-in-time risk engine input for a patient from
// their stored records. The dose count and last dose date are derived from
// the dose rows, which keeps them mutually consistent by construction.
func (s *Service) Snapshot(ctx context.Context, patientID uuid.UUID, at time.Time) (risk.PatientSnapshot, error) {
	var snap risk.PatientSnapshot

	p, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return snap, fmt.Errorf("load patient: %w", err)
	}
	snap.Age = p.AgeAt(at)

	conds, err := s.conditions.ListActiveByPatient(ctx, patientID)
	if err != nil {
		return snap, fmt.Errorf("load conditions: %w", err)
	}
	for _, c := range conds {
		snap.Conditions = append(snap.Conditions, risk.MedicalCondition{
			Name:     c.Name,
			Severity: risk.Severity(c.Severity),
			Active:   c.Active,
		})
	}

	doses, err := s.vaccination.ListByPatient(ctx, patientID)
	if err != nil {
		return snap, fmt.Errorf("load vaccination doses: %w", err)
	}
	snap.Vaccination.DoseCount = len(doses)
	for _, d := range doses {
		if snap.Vaccination.LastDoseDate == nil || d.AdministeredAt.After(*snap.Vaccination.LastDoseDate) {
			t := d.AdministeredAt
			snap.Vaccination.LastDoseDate = &t
		}
	}

	l, err := s.lifestyle.GetByPatient(ctx, patientID)
	if err != nil {
		return snap, fmt.Errorf("load lifestyle profile: %w", err)
	}
	snap.Lifestyle = risk.Lifestyle{
		SmokingStatus:        risk.SmokingStatus(l.SmokingStatus),
		ActivityLevel:        risk.ActivityLevel(l.ActivityLevel),
		OccupationalExposure: l.OccupationalExposure,
	}

	return snap, nil
}
