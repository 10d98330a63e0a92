package risk

import "time"

// Result is the immutable outcome of a single assessment. Re-running the
// same snapshot with the same timestamp yields an identical Result.
type Result struct {
	Scores          FactorScores `json:"scores"`
	TotalScore      int          `json:"total_score"`
	Level           RiskLevel    `json:"risk_level"`
	Recommendations []string     `json:"recommendations"`
	ComputedAt      time.Time    `json:"computed_at"`
}

// Assess validates the snapshot, runs the four factor scorers, aggregates,
// classifies, and generates recommendations. The snapshot is rejected with a
// *ValidationError before any scorer runs; no partial result is produced.
func Assess(s PatientSnapshot, now time.Time) (*Result, error) {
	if err := Validate(s); err != nil {
		return nil, err
	}

	scores := FactorScores{
		Age:         ScoreAge(s.Age),
		Comorbidity: ScoreComorbidities(s.Conditions),
		Vaccination: ScoreVaccination(s.Vaccination, now),
		Lifestyle:   ScoreLifestyle(s.Lifestyle),
	}
	total := scores.Total()
	level := Classify(total)

	return &Result{
		Scores:          scores,
		TotalScore:      total,
		Level:           level,
		Recommendations: Recommend(s, scores, level, now),
		ComputedAt:      now,
	}, nil
}
