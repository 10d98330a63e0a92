// Package risk implements the COVID-19 risk assessment scoring engine.
//
// The engine is a deterministic, side-effect-free function from a patient
// snapshot to a numeric risk score, a categorical risk level, and a list of
// recommendations. It owns no state and performs no I/O; callers assemble the
// snapshot from stored records and persist the result themselves.
package risk

import "time"

// Severity grades a medical condition.
type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// SmokingStatus is the patient's smoking history.
type SmokingStatus string

const (
	SmokingNever   SmokingStatus = "never"
	SmokingFormer  SmokingStatus = "former"
	SmokingCurrent SmokingStatus = "current"
)

// ActivityLevel is the patient's physical activity level.
type ActivityLevel string

const (
	ActivitySedentary ActivityLevel = "sedentary"
	ActivityLight     ActivityLevel = "light"
	ActivityActive    ActivityLevel = "active"
)

// MedicalCondition is a single condition entry in a snapshot. Only entries
// with Active = true participate in scoring.
type MedicalCondition struct {
	Name     string   `json:"name"`
	Severity Severity `json:"severity"`
	Active   bool     `json:"active"`
}

// Vaccination holds the patient's COVID-19 vaccination state. LastDoseDate
// must be nil when DoseCount is 0 and set when DoseCount is at least 1.
type Vaccination struct {
	DoseCount    int        `json:"dose_count"`
	LastDoseDate *time.Time `json:"last_dose_date,omitempty"`
}

// Lifestyle holds the lifestyle attributes that feed the lifestyle scorer.
type Lifestyle struct {
	SmokingStatus        SmokingStatus `json:"smoking_status"`
	ActivityLevel        ActivityLevel `json:"activity_level"`
	OccupationalExposure bool          `json:"occupational_exposure"`
}

// PatientSnapshot is a read-only, point-in-time assembly of the patient
// attributes relevant to risk scoring.
type PatientSnapshot struct {
	Age         int                `json:"age"`
	Conditions  []MedicalCondition `json:"conditions"`
	Vaccination Vaccination        `json:"vaccination"`
	Lifestyle   Lifestyle          `json:"lifestyle"`
}
