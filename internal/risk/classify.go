package risk

// RiskLevel is one of four ordered risk categories.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskVeryHigh RiskLevel = "very-high"
)

// FactorScores holds the per-factor contributions of a single assessment.
type FactorScores struct {
	Age         int `json:"age_score"`
	Comorbidity int `json:"comorbidity_score"`
	Vaccination int `json:"vaccination_score"`
	Lifestyle   int `json:"lifestyle_score"`
}

// Total returns the aggregate risk score. Totals are not clamped and may be
// negative for well-protected, low-risk patients.
func (f FactorScores) Total() int {
	return f.Age + f.Comorbidity + f.Vaccination + f.Lifestyle
}

// Classify maps a total score to its risk level.
func Classify(total int) RiskLevel {
	switch {
	case total < 15:
		return RiskLow
	case total < 30:
		return RiskModerate
	case total < 50:
		return RiskHigh
	default:
		return RiskVeryHigh
	}
}
