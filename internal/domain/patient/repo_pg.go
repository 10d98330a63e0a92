package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// -- Patient --

type patientRepoPG struct{ pool *pgxpool.Pool }

func NewPatientRepoPG(pool *pgxpool.Pool) PatientRepository {
	return &patientRepoPG{pool: pool}
}

const patientCols = `id, fhir_id, mrn, first_name, last_name, birth_date, gender,
	email, phone, created_at, updated_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.FHIRID, &p.MRN, &p.FirstName, &p.LastName, &p.BirthDate, &p.Gender,
		&p.Email, &p.Phone, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	if p.FHIRID == "" {
		p.FHIRID = p.ID.String()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO patient (id, fhir_id, mrn, first_name, last_name, birth_date, gender, email, phone)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		p.ID, p.FHIRID, p.MRN, p.FirstName, p.LastName, p.BirthDate, p.Gender, p.Email, p.Phone)
	return err
}

func (r *patientRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return scanPatient(r.pool.QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE id = $1`, id))
}

func (r *patientRepoPG) GetByMRN(ctx context.Context, mrn string) (*Patient, error) {
	return scanPatient(r.pool.QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE mrn = $1`, mrn))
}

func (r *patientRepoPG) Update(ctx context.Context, p *Patient) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE patient SET mrn=$2, first_name=$3, last_name=$4, birth_date=$5, gender=$6,
			email=$7, phone=$8, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.MRN, p.FirstName, p.LastName, p.BirthDate, p.Gender, p.Email, p.Phone)
	return err
}

func (r *patientRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM patient WHERE id = $1`, id)
	return err
}

func (r *patientRepoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM patient`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+patientCols+` FROM patient ORDER BY last_name, first_name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

// -- Condition --

type conditionRepoPG struct{ pool *pgxpool.Pool }

func NewConditionRepoPG(pool *pgxpool.Pool) ConditionRepository {
	return &conditionRepoPG{pool: pool}
}

const conditionCols = `id, patient_id, name, severity, active, onset_date, recorded_by,
	created_at, updated_at`

func scanCondition(row pgx.Row) (*Condition, error) {
	var c Condition
	err := row.Scan(&c.ID, &c.PatientID, &c.Name, &c.Severity, &c.Active, &c.OnsetDate, &c.RecordedBy,
		&c.CreatedAt, &c.UpdatedAt)
	return &c, err
}

func (r *conditionRepoPG) Create(ctx context.Context, c *Condition) error {
	c.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO condition (id, patient_id, name, severity, active, onset_date, recorded_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		c.ID, c.PatientID, c.Name, c.Severity, c.Active, c.OnsetDate, c.RecordedBy)
	return err
}

func (r *conditionRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Condition, error) {
	return scanCondition(r.pool.QueryRow(ctx, `SELECT `+conditionCols+` FROM condition WHERE id = $1`, id))
}

func (r *conditionRepoPG) Update(ctx context.Context, c *Condition) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE condition SET name=$2, severity=$3, active=$4, onset_date=$5, updated_at=NOW()
		WHERE id = $1`,
		c.ID, c.Name, c.Severity, c.Active, c.OnsetDate)
	return err
}

func (r *conditionRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM condition WHERE id = $1`, id)
	return err
}

func (r *conditionRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Condition, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM condition WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+conditionCols+` FROM condition WHERE patient_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Condition
	for rows.Next() {
		c, err := scanCondition(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, c)
	}
	return items, total, rows.Err()
}

func (r *conditionRepoPG) ListActiveByPatient(ctx context.Context, patientID uuid.UUID) ([]*Condition, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+conditionCols+` FROM condition WHERE patient_id = $1 AND active ORDER BY created_at`,
		patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Condition
	for rows.Next() {
		c, err := scanCondition(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// -- VaccinationDose --

type vaccinationRepoPG struct{ pool *pgxpool.Pool }

func NewVaccinationRepoPG(pool *pgxpool.Pool) VaccinationRepository {
	return &vaccinationRepoPG{pool: pool}
}

const doseCols = `id, patient_id, dose_number, vaccine, administered_at, lot_number, created_at`

func scanDose(row pgx.Row) (*VaccinationDose, error) {
	var d VaccinationDose
	err := row.Scan(&d.ID, &d.PatientID, &d.DoseNumber, &d.Vaccine, &d.AdministeredAt, &d.LotNumber, &d.CreatedAt)
	return &d, err
}

func (r *vaccinationRepoPG) Create(ctx context.Context, d *VaccinationDose) error {
	d.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO vaccination_dose (id, patient_id, dose_number, vaccine, administered_at, lot_number)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		d.ID, d.PatientID, d.DoseNumber, d.Vaccine, d.AdministeredAt, d.LotNumber)
	return err
}

func (r *vaccinationRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*VaccinationDose, error) {
	return scanDose(r.pool.QueryRow(ctx, `SELECT `+doseCols+` FROM vaccination_dose WHERE id = $1`, id))
}

func (r *vaccinationRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM vaccination_dose WHERE id = $1`, id)
	return err
}

func (r *vaccinationRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*VaccinationDose, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+doseCols+` FROM vaccination_dose WHERE patient_id = $1 ORDER BY administered_at`,
		patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*VaccinationDose
	for rows.Next() {
		d, err := scanDose(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

// -- LifestyleProfile --

type lifestyleRepoPG struct{ pool *pgxpool.Pool }

func NewLifestyleRepoPG(pool *pgxpool.Pool) LifestyleRepository {
	return &lifestyleRepoPG{pool: pool}
}

const lifestyleCols = `id, patient_id, smoking_status, activity_level, occupational_exposure,
	created_at, updated_at`

func scanLifestyle(row pgx.Row) (*LifestyleProfile, error) {
	var l LifestyleProfile
	err := row.Scan(&l.ID, &l.PatientID, &l.SmokingStatus, &l.ActivityLevel, &l.OccupationalExposure,
		&l.CreatedAt, &l.UpdatedAt)
	return &l, err
}

func (r *lifestyleRepoPG) Upsert(ctx context.Context, l *LifestyleProfile) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO lifestyle_profile (id, patient_id, smoking_status, activity_level, occupational_exposure)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (patient_id) DO UPDATE SET
			smoking_status = EXCLUDED.smoking_status,
			activity_level = EXCLUDED.activity_level,
			occupational_exposure = EXCLUDED.occupational_exposure,
			updated_at = NOW()`,
		l.ID, l.PatientID, l.SmokingStatus, l.ActivityLevel, l.OccupationalExposure)
	return err
}

func (r *lifestyleRepoPG) GetByPatient(ctx context.Context, patientID uuid.UUID) (*LifestyleProfile, error) {
	l, err := scanLifestyle(r.pool.QueryRow(ctx, `SELECT `+lifestyleCols+` FROM lifestyle_profile WHERE patient_id = $1`, patientID))
	if err != nil {
		return nil, fmt.Errorf("lifestyle profile for patient %s: %w", patientID, err)
	}
	return l, nil
}

func (r *lifestyleRepoPG) Delete(ctx context.Context, patientID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM lifestyle_profile WHERE patient_id = $1`, patientID)
	return err
}
