package risk

import "time"

// Recommendation texts. Fixed strings so callers can deduplicate and the UI
// can translate by exact match.
const (
	RecommendVaccination         = "Complete or update your COVID-19 vaccination series"
	RecommendBooster             = "Schedule a COVID-19 booster dose; protection from your last dose has waned"
	RecommendSmokingCessation    = "Enroll in smoking cessation counseling"
	RecommendPhysicalActivity    = "Increase regular physical activity"
	RecommendWorkplaceCaution    = "Use enhanced COVID-19 precautions at your workplace"
	RecommendConditionMonitoring = "Maintain regular clinical monitoring of your chronic conditions"
	RecommendAgePrecautions      = "Take extra precautions appropriate to elevated age-related risk"
	RecommendClinicalConsult     = "Seek prompt clinical consultation"
)

// Recommend evaluates the fixed rule list against a snapshot and its factor
// scores and returns an ordered, deduplicated list of recommendations. The
// rules fire independently; when the level is very-high, the clinical
// consultation recommendation is prepended.
func Recommend(s PatientSnapshot, scores FactorScores, level RiskLevel, now time.Time) []string {
	var recs []string
	seen := make(map[string]bool)
	add := func(text string) {
		if !seen[text] {
			seen[text] = true
			recs = append(recs, text)
		}
	}

	if scores.Vaccination > 0 {
		add(RecommendVaccination)
	}
	if WaningImmunity(s.Vaccination, now) {
		add(RecommendBooster)
	}
	if s.Lifestyle.SmokingStatus == SmokingCurrent {
		add(RecommendSmokingCessation)
	}
	if s.Lifestyle.ActivityLevel == ActivitySedentary {
		add(RecommendPhysicalActivity)
	}
	if s.Lifestyle.OccupationalExposure {
		add(RecommendWorkplaceCaution)
	}
	if scores.Comorbidity > 0 {
		add(RecommendConditionMonitoring)
	}
	if s.Age >= 60 {
		add(RecommendAgePrecautions)
	}
	if level == RiskVeryHigh && !seen[RecommendClinicalConsult] {
		recs = append([]string{RecommendClinicalConsult}, recs...)
	}
	return recs
}
