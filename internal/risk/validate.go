package risk

import "fmt"

// ValidationKind distinguishes the two classes of snapshot rejection.
type ValidationKind string

const (
	// InvalidInput covers out-of-range values: negative age, negative dose
	// count, or an unrecognized enum value.
	InvalidInput ValidationKind = "invalid_input"
	// InconsistentInput covers contradictory values: a last dose date with no
	// doses, or doses claimed with no date. These indicate a data-integrity
	// bug upstream and are surfaced rather than silently ignored.
	InconsistentInput ValidationKind = "inconsistent_input"
)

// ValidationError reports why a snapshot was rejected before scoring.
type ValidationError struct {
	Kind   ValidationKind
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func invalidf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Kind: InvalidInput, Reason: fmt.Sprintf(format, args...)}
}

func inconsistentf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Kind: InconsistentInput, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks a snapshot against the engine's input contract. It returns
// a *ValidationError describing the first violation found, or nil.
func Validate(s PatientSnapshot) error {
	if s.Age < 0 {
		return invalidf("age must be >= 0, got %d", s.Age)
	}
	for i, c := range s.Conditions {
		switch c.Severity {
		case SeverityMild, SeverityModerate, SeveritySevere:
		default:
			return invalidf("conditions[%d]: unrecognized severity %q", i, c.Severity)
		}
	}
	if s.Vaccination.DoseCount < 0 {
		return invalidf("dose_count must be >= 0, got %d", s.Vaccination.DoseCount)
	}
	if s.Vaccination.DoseCount == 0 && s.Vaccination.LastDoseDate != nil {
		return inconsistentf("last_dose_date is set but dose_count is 0")
	}
	if s.Vaccination.DoseCount >= 1 && s.Vaccination.LastDoseDate == nil {
		return inconsistentf("dose_count is %d but last_dose_date is missing", s.Vaccination.DoseCount)
	}
	switch s.Lifestyle.SmokingStatus {
	case SmokingNever, SmokingFormer, SmokingCurrent:
	default:
		return invalidf("unrecognized smoking_status %q", s.Lifestyle.SmokingStatus)
	}
	switch s.Lifestyle.ActivityLevel {
	case ActivitySedentary, ActivityLight, ActivityActive:
	default:
		return invalidf("unrecognized activity_level %q", s.Lifestyle.ActivityLevel)
	}
	return nil
}
