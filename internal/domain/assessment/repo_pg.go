package assessment

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const assessmentCols = `id, fhir_id, patient_id, age_score, comorbidity_score,
	vaccination_score, lifestyle_score, total_score, risk_level, recommendations,
	computed_at, computed_by, created_at`

func scanAssessment(row pgx.Row) (*RiskAssessment, error) {
	var ra RiskAssessment
	err := row.Scan(&ra.ID, &ra.FHIRID, &ra.PatientID, &ra.AgeScore, &ra.ComorbidityScore,
		&ra.VaccinationScore, &ra.LifestyleScore, &ra.TotalScore, &ra.RiskLevel, &ra.Recommendations,
		&ra.ComputedAt, &ra.ComputedBy, &ra.CreatedAt)
	return &ra, err
}

func (r *repoPG) Create(ctx context.Context, ra *RiskAssessment) error {
	ra.ID = uuid.New()
	if ra.FHIRID == "" {
		ra.FHIRID = ra.ID.String()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO risk_assessment (id, fhir_id, patient_id, age_score, comorbidity_score,
			vaccination_score, lifestyle_score, total_score, risk_level, recommendations,
			computed_at, computed_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		ra.ID, ra.FHIRID, ra.PatientID, ra.AgeScore, ra.ComorbidityScore,
		ra.VaccinationScore, ra.LifestyleScore, ra.TotalScore, ra.RiskLevel, ra.Recommendations,
		ra.ComputedAt, ra.ComputedBy)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*RiskAssessment, error) {
	return scanAssessment(r.pool.QueryRow(ctx, `SELECT `+assessmentCols+` FROM risk_assessment WHERE id = $1`, id))
}

func (r *repoPG) GetByFHIRID(ctx context.Context, fhirID string) (*RiskAssessment, error) {
	return scanAssessment(r.pool.QueryRow(ctx, `SELECT `+assessmentCols+` FROM risk_assessment WHERE fhir_id = $1`, fhirID))
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM risk_assessment WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*RiskAssessment, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM risk_assessment WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+assessmentCols+` FROM risk_assessment
		WHERE patient_id = $1 ORDER BY computed_at DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*RiskAssessment
	for rows.Next() {
		ra, err := scanAssessment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, ra)
	}
	return items, total, rows.Err()
}

func (r *repoPG) Latest(ctx context.Context, patientID uuid.UUID) (*RiskAssessment, error) {
	return scanAssessment(r.pool.QueryRow(ctx, `
		SELECT `+assessmentCols+` FROM risk_assessment
		WHERE patient_id = $1 ORDER BY computed_at DESC LIMIT 1`, patientID))
}
