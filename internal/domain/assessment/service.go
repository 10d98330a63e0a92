package assessment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/covicare/covicare/internal/risk"
)

// SnapshotSource provides the point-in-time engine input for a patient.
// The patient service implements it.
type SnapshotSource interface {
	Snapshot(ctx context.Context, patientID uuid.UUID, at time.Time) (risk.PatientSnapshot, error)
}

type Service struct {
	repo      Repository
	snapshots SnapshotSource
	logger    zerolog.Logger
	now       func() time.Time
}

func NewService(repo Repository, snapshots SnapshotSource, logger zerolog.Logger) *Service {
	return &Service{repo: repo, snapshots: snapshots, logger: logger, now: time.Now}
}

// Recalculate assembles the patient's current snapshot, runs the risk
// engine, and appends the result to the assessment history. Validation
// failures propagate as *risk.ValidationError so callers can distinguish
// bad input from infrastructure errors.
func (s *Service) Recalculate(ctx context.Context, patientID uuid.UUID, computedBy *uuid.UUID) (*RiskAssessment, error) {
	now := s.now().UTC()

	snap, err := s.snapshots.Snapshot(ctx, patientID, now)
	if err != nil {
		return nil, fmt.Errorf("assemble snapshot: %w", err)
	}

	res, err := risk.Assess(snap, now)
	if err != nil {
		return nil, err
	}

	ra := FromResult(patientID, res)
	ra.ComputedBy = computedBy
	if err := s.repo.Create(ctx, ra); err != nil {
		return nil, fmt.Errorf("store assessment: %w", err)
	}

	s.logger.Info().
		Str("patient_id", patientID.String()).
		Str("assessment_id", ra.ID.String()).
		Int("total_score", ra.TotalScore).
		Str("risk_level", ra.RiskLevel).
		Msg("risk assessment computed")

	return ra, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*RiskAssessment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByFHIRID(ctx context.Context, fhirID string) (*RiskAssessment, error) {
	return s.repo.GetByFHIRID(ctx, fhirID)
}

// History returns the patient's assessments, newest first.
func (s *Service) History(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*RiskAssessment, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}

// Latest returns the most recent assessment without recomputing.
func (s *Service) Latest(ctx context.Context, patientID uuid.UUID) (*RiskAssessment, error) {
	return s.repo.Latest(ctx, patientID)
}
