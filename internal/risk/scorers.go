package risk

import (
	"strings"
	"time"
)

// highRiskConditions is the fixed reference set of condition names that the
// comorbidity scorer recognizes. Matching is case-insensitive and substring
// based, so "type 2 diabetes mellitus" matches "diabetes".
var highRiskConditions = []string{
	"diabetes",
	"heart disease",
	"hypertension",
	"copd",
	"asthma",
	"chronic kidney disease",
	"chronic liver disease",
	"cancer",
	"immunocompromised",
	"obesity",
}

// severityWeights maps condition severity to its score contribution.
var severityWeights = map[Severity]int{
	SeverityMild:     5,
	SeverityModerate: 10,
	SeveritySevere:   15,
}

// waningThreshold is how long after the last dose vaccine protection is
// treated as partially decayed.
const waningThreshold = 180 * 24 * time.Hour

// ScoreAge returns the age band contribution.
func ScoreAge(age int) int {
	switch {
	case age >= 80:
		return 30
	case age >= 70:
		return 20
	case age >= 60:
		return 15
	case age >= 50:
		return 10
	default:
		return 0
	}
}

// IsHighRisk reports whether a condition name matches the high-risk
// reference set.
func IsHighRisk(name string) bool {
	lower := strings.ToLower(name)
	for _, ref := range highRiskConditions {
		if strings.Contains(lower, ref) {
			return true
		}
	}
	return false
}

// ScoreComorbidities sums severity-weighted contributions from every active
// condition that matches the high-risk reference set. Contributions are
// cumulative: ten concurrent severe conditions score ten times a single one.
func ScoreComorbidities(conditions []MedicalCondition) int {
	total := 0
	for _, c := range conditions {
		if !c.Active || !IsHighRisk(c.Name) {
			continue
		}
		total += severityWeights[c.Severity]
	}
	return total
}

// WaningImmunity reports whether the waning-immunity adjustment applies: at
// least one dose, with the last dose more than 180 days before now.
func WaningImmunity(v Vaccination, now time.Time) bool {
	if v.DoseCount < 1 || v.LastDoseDate == nil {
		return false
	}
	return now.Sub(*v.LastDoseDate) > waningThreshold
}

// ScoreVaccination returns the dose-count base score with the
// waning-immunity adjustment applied. More doses lower the score;
// no vaccination raises it. Waning adds +5 but never fully reverses
// the protection conferred by the doses.
func ScoreVaccination(v Vaccination, now time.Time) int {
	var base int
	switch {
	case v.DoseCount >= 4:
		base = -20
	case v.DoseCount == 3:
		base = -15
	case v.DoseCount == 2:
		base = -10
	case v.DoseCount == 1:
		base = -5
	default:
		base = 15
	}
	if WaningImmunity(v, now) {
		base += 5
	}
	return base
}

// ScoreLifestyle sums the three independent lifestyle contributions.
func ScoreLifestyle(l Lifestyle) int {
	score := 0
	switch l.SmokingStatus {
	case SmokingCurrent:
		score += 15
	case SmokingFormer:
		score += 5
	}
	switch l.ActivityLevel {
	case ActivitySedentary:
		score += 10
	case ActivityLight:
		score += 5
	}
	if l.OccupationalExposure {
		score += 10
	}
	return score
}
