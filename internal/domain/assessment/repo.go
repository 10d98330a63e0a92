package assessment

import (
	"context"

	"github.com/google/uuid"
)

// Repository is append-only: assessments are created and read, never
// updated. Delete exists for administrative cleanup only.
type Repository interface {
	Create(ctx context.Context, ra *RiskAssessment) error
	GetByID(ctx context.Context, id uuid.UUID) (*RiskAssessment, error)
	GetByFHIRID(ctx context.Context, fhirID string) (*RiskAssessment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// ListByPatient returns assessments newest first.
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*RiskAssessment, int, error)
	// Latest returns the most recently computed assessment for the patient.
	Latest(ctx context.Context, patientID uuid.UUID) (*RiskAssessment, error)
}
