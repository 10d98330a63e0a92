package patient

import (
	"time"

	"github.com/google/uuid"

	"github.com/covicare/covicare/internal/platform/fhir"
)

// Patient maps to the patient table.
type Patient struct {
	ID        uuid.UUID `db:"id" json:"id"`
	FHIRID    string    `db:"fhir_id" json:"fhir_id"`
	MRN       string    `db:"mrn" json:"mrn"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	BirthDate time.Time `db:"birth_date" json:"birth_date"`
	Gender    *string   `db:"gender" json:"gender,omitempty"`
	Email     *string   `db:"email" json:"email,omitempty"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// AgeAt returns the patient's age in whole years at the given time.
func (p *Patient) AgeAt(at time.Time) int {
	age := at.Year() - p.BirthDate.Year()
	// Subtract one if the birthday hasn't occurred yet this year.
	anniversary := p.BirthDate.AddDate(age, 0, 0)
	if anniversary.After(at) {
		age--
	}
	if age < 0 {
		age = 0
	}
	return age
}

func (p *Patient) ToFHIR() map[string]interface{} {
	result := map[string]interface{}{
		"resourceType": "Patient",
		"id":           p.FHIRID,
		"name": []map[string]interface{}{
			{"family": p.LastName, "given": []string{p.FirstName}},
		},
		"birthDate": p.BirthDate.Format("2006-01-02"),
		"identifier": []map[string]interface{}{
			{"system": "urn:covicare:mrn", "value": p.MRN},
		},
		"meta": fhir.Meta{LastUpdated: p.UpdatedAt},
	}
	if p.Gender != nil {
		result["gender"] = *p.Gender
	}
	return result
}

// Condition maps to the condition table. Name and severity feed the risk
// engine's comorbidity scorer for rows with active = true.
type Condition struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	PatientID  uuid.UUID  `db:"patient_id" json:"patient_id"`
	Name       string     `db:"name" json:"name"`
	Severity   string     `db:"severity" json:"severity"`
	Active     bool       `db:"active" json:"active"`
	OnsetDate  *time.Time `db:"onset_date" json:"onset_date,omitempty"`
	RecordedBy *uuid.UUID `db:"recorded_by" json:"recorded_by,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// VaccinationDose maps to the vaccination_dose table, one row per
// administered COVID-19 dose.
type VaccinationDose struct {
	ID             uuid.UUID `db:"id" json:"id"`
	PatientID      uuid.UUID `db:"patient_id" json:"patient_id"`
	DoseNumber     int       `db:"dose_number" json:"dose_number"`
	Vaccine        string    `db:"vaccine" json:"vaccine"`
	AdministeredAt time.Time `db:"administered_at" json:"administered_at"`
	LotNumber      *string   `db:"lot_number" json:"lot_number,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// LifestyleProfile maps to the lifestyle_profile table, at most one row per
// patient.
type LifestyleProfile struct {
	ID                   uuid.UUID `db:"id" json:"id"`
	PatientID            uuid.UUID `db:"patient_id" json:"patient_id"`
	SmokingStatus        string    `db:"smoking_status" json:"smoking_status"`
	ActivityLevel        string    `db:"activity_level" json:"activity_level"`
	OccupationalExposure bool      `db:"occupational_exposure" json:"occupational_exposure"`
	CreatedAt            time.Time `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time `db:"updated_at" json:"updated_at"`
}
