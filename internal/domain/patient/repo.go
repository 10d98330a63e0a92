package patient

import (
	"context"

	"github.com/google/uuid"
)

type PatientRepository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	GetByMRN(ctx context.Context, mrn string) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
}

type ConditionRepository interface {
	Create(ctx context.Context, c *Condition) error
	GetByID(ctx context.Context, id uuid.UUID) (*Condition, error)
	Update(ctx context.Context, c *Condition) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Condition, int, error)
	// ListActiveByPatient returns every active condition, unpaginated, for
	// snapshot assembly.
	ListActiveByPatient(ctx context.Context, patientID uuid.UUID) ([]*Condition, error)
}

type VaccinationRepository interface {
	Create(ctx context.Context, d *VaccinationDose) error
	GetByID(ctx context.Context, id uuid.UUID) (*VaccinationDose, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// ListByPatient returns all doses ordered by administered_at ascending.
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*VaccinationDose, error)
}

type LifestyleRepository interface {
	// Upsert creates or replaces the patient's single lifestyle profile.
	Upsert(ctx context.Context, l *LifestyleProfile) error
	GetByPatient(ctx context.Context, patientID uuid.UUID) (*LifestyleProfile, error)
	Delete(ctx context.Context, patientID uuid.UUID) error
}
