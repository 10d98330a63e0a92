// Package assessment persists risk engine results as an immutable,
// append-only history per patient and projects them as FHIR RiskAssessment
// resources.
package assessment

import (
	"time"

	"github.com/google/uuid"

	"github.com/covicare/covicare/internal/platform/fhir"
	"github.com/covicare/covicare/internal/risk"
)

// RiskAssessment maps to the risk_assessment table. Rows are never updated;
// a recalculation always inserts a new row.
type RiskAssessment struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	FHIRID           string     `db:"fhir_id" json:"fhir_id"`
	PatientID        uuid.UUID  `db:"patient_id" json:"patient_id"`
	AgeScore         int        `db:"age_score" json:"age_score"`
	ComorbidityScore int        `db:"comorbidity_score" json:"comorbidity_score"`
	VaccinationScore int        `db:"vaccination_score" json:"vaccination_score"`
	LifestyleScore   int        `db:"lifestyle_score" json:"lifestyle_score"`
	TotalScore       int        `db:"total_score" json:"total_score"`
	RiskLevel        string     `db:"risk_level" json:"risk_level"`
	Recommendations  []string   `db:"recommendations" json:"recommendations"`
	ComputedAt       time.Time  `db:"computed_at" json:"computed_at"`
	ComputedBy       *uuid.UUID `db:"computed_by" json:"computed_by,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
}

// FromResult builds a storable row from an engine result.
func FromResult(patientID uuid.UUID, res *risk.Result) *RiskAssessment {
	return &RiskAssessment{
		PatientID:        patientID,
		AgeScore:         res.Scores.Age,
		ComorbidityScore: res.Scores.Comorbidity,
		VaccinationScore: res.Scores.Vaccination,
		LifestyleScore:   res.Scores.Lifestyle,
		TotalScore:       res.TotalScore,
		RiskLevel:        string(res.Level),
		Recommendations:  res.Recommendations,
		ComputedAt:       res.ComputedAt,
	}
}

func (ra *RiskAssessment) ToFHIR() map[string]interface{} {
	prediction := map[string]interface{}{
		"outcome": fhir.CodeableConcept{
			Coding: []fhir.Coding{{System: "urn:covicare:risk-score", Code: "covid19-severity", Display: "COVID-19 severe outcome risk"}},
		},
		"qualitativeRisk": fhir.CodeableConcept{
			Coding: []fhir.Coding{{System: "urn:covicare:risk-level", Code: ra.RiskLevel}},
		},
	}
	mitigations := make([]interface{}, 0, len(ra.Recommendations))
	for _, rec := range ra.Recommendations {
		mitigations = append(mitigations, rec)
	}
	result := map[string]interface{}{
		"resourceType":       "RiskAssessment",
		"id":                 ra.FHIRID,
		"status":             "final",
		"subject":            fhir.Reference{Reference: fhir.FormatReference("Patient", ra.PatientID.String())},
		"occurrenceDateTime": ra.ComputedAt.Format(time.RFC3339),
		"prediction":         []interface{}{prediction},
		"meta":               fhir.Meta{LastUpdated: ra.CreatedAt},
		"extension": []map[string]interface{}{
			{"url": "urn:covicare:age-score", "valueInteger": ra.AgeScore},
			{"url": "urn:covicare:comorbidity-score", "valueInteger": ra.ComorbidityScore},
			{"url": "urn:covicare:vaccination-score", "valueInteger": ra.VaccinationScore},
			{"url": "urn:covicare:lifestyle-score", "valueInteger": ra.LifestyleScore},
			{"url": "urn:covicare:total-score", "valueInteger": ra.TotalScore},
		},
	}
	if len(mitigations) > 0 {
		result["mitigation"] = mitigations
	}
	if ra.ComputedBy != nil {
		result["performer"] = fhir.Reference{Reference: fhir.FormatReference("Practitioner", ra.ComputedBy.String())}
	}
	return result
}
