package assessment

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/covicare/covicare/internal/risk"
)

// =========== Mocks ===========

type mockRepo struct {
	store map[uuid.UUID]*RiskAssessment
}

func newMockRepo() *mockRepo {
	return &mockRepo{store: make(map[uuid.UUID]*RiskAssessment)}
}

func (m *mockRepo) Create(_ context.Context, ra *RiskAssessment) error {
	ra.ID = uuid.New()
	if ra.FHIRID == "" {
		ra.FHIRID = ra.ID.String()
	}
	ra.CreatedAt = time.Now()
	m.store[ra.ID] = ra
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*RiskAssessment, error) {
	ra, ok := m.store[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return ra, nil
}

func (m *mockRepo) GetByFHIRID(_ context.Context, fhirID string) (*RiskAssessment, error) {
	for _, ra := range m.store {
		if ra.FHIRID == fhirID {
			return ra, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.store, id)
	return nil
}

func (m *mockRepo) byPatient(patientID uuid.UUID) []*RiskAssessment {
	var result []*RiskAssessment
	for _, ra := range m.store {
		if ra.PatientID == patientID {
			result = append(result, ra)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ComputedAt.After(result[j].ComputedAt)
	})
	return result
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*RiskAssessment, int, error) {
	all := m.byPatient(patientID)
	return all, len(all), nil
}

func (m *mockRepo) Latest(_ context.Context, patientID uuid.UUID) (*RiskAssessment, error) {
	all := m.byPatient(patientID)
	if len(all) == 0 {
		return nil, fmt.Errorf("not found")
	}
	return all[0], nil
}

type mockSnapshotSource struct {
	snapshots map[uuid.UUID]risk.PatientSnapshot
	err       error
}

func (m *mockSnapshotSource) Snapshot(_ context.Context, patientID uuid.UUID, _ time.Time) (risk.PatientSnapshot, error) {
	if m.err != nil {
		return risk.PatientSnapshot{}, m.err
	}
	snap, ok := m.snapshots[patientID]
	if !ok {
		return risk.PatientSnapshot{}, fmt.Errorf("patient not found")
	}
	return snap, nil
}

func newTestAssessmentService(snaps map[uuid.UUID]risk.PatientSnapshot) (*Service, *mockRepo) {
	repo := newMockRepo()
	src := &mockSnapshotSource{snapshots: snaps}
	svc := NewService(repo, src, zerolog.Nop())
	return svc, repo
}

// =========== Tests ===========

func TestRecalculateStoresResult(t *testing.T) {
	pid := uuid.New()
	snap := risk.PatientSnapshot{
		Age: 72,
		Conditions: []risk.MedicalCondition{
			{Name: "Type 2 Diabetes", Severity: risk.SeverityModerate, Active: true},
			{Name: "Hypertension", Severity: risk.SeverityMild, Active: true},
		},
		Vaccination: risk.Vaccination{DoseCount: 2, LastDoseDate: timePtr(time.Now().AddDate(0, -2, 0))},
		Lifestyle:   risk.Lifestyle{SmokingStatus: risk.SmokingFormer, ActivityLevel: risk.ActivityLight, OccupationalExposure: false},
	}
	svc, repo := newTestAssessmentService(map[uuid.UUID]risk.PatientSnapshot{pid: snap})

	ra, err := svc.Recalculate(context.Background(), pid, nil)
	if err != nil {
		t.Fatalf("Recalculate() error: %v", err)
	}

	// age 20 + comorbidity (10+5) + vaccination -10 + lifestyle (5+5) = 35
	if ra.TotalScore != 35 {
		t.Errorf("total score = %d, want 35", ra.TotalScore)
	}
	if ra.RiskLevel != string(risk.RiskHigh) {
		t.Errorf("risk level = %q, want %q", ra.RiskLevel, risk.RiskHigh)
	}
	if ra.AgeScore != 20 || ra.ComorbidityScore != 15 || ra.VaccinationScore != -10 || ra.LifestyleScore != 10 {
		t.Errorf("factor scores = %d/%d/%d/%d, want 20/15/-10/10",
			ra.AgeScore, ra.ComorbidityScore, ra.VaccinationScore, ra.LifestyleScore)
	}
	if len(repo.store) != 1 {
		t.Errorf("store size = %d, want 1", len(repo.store))
	}
	if ra.ID == uuid.Nil {
		t.Errorf("expected assigned id")
	}
}

func TestRecalculateAppendsHistory(t *testing.T) {
	pid := uuid.New()
	snap := risk.PatientSnapshot{
		Age:         45,
		Vaccination: risk.Vaccination{DoseCount: 0},
		Lifestyle:   risk.Lifestyle{SmokingStatus: risk.SmokingNever, ActivityLevel: risk.ActivityActive},
	}
	svc, repo := newTestAssessmentService(map[uuid.UUID]risk.PatientSnapshot{pid: snap})
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		stamp := base.Add(time.Duration(i) * time.Hour)
		svc.now = func() time.Time { return stamp }
		if _, err := svc.Recalculate(ctx, pid, nil); err != nil {
			t.Fatalf("Recalculate() #%d error: %v", i, err)
		}
	}

	if len(repo.store) != 3 {
		t.Fatalf("store size = %d, want 3 (append-only history)", len(repo.store))
	}

	history, total, err := svc.History(ctx, pid, 20, 0)
	if err != nil {
		t.Fatalf("History() error: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	for i := 1; i < len(history); i++ {
		if history[i].ComputedAt.After(history[i-1].ComputedAt) {
			t.Errorf("history not ordered newest first at index %d", i)
		}
	}

	latest, err := svc.Latest(ctx, pid)
	if err != nil {
		t.Fatalf("Latest() error: %v", err)
	}
	want := base.Add(2 * time.Hour)
	if !latest.ComputedAt.Equal(want) {
		t.Errorf("latest computed at %v, want %v", latest.ComputedAt, want)
	}
}

func TestRecalculatePropagatesValidationError(t *testing.T) {
	pid := uuid.New()
	snap := risk.PatientSnapshot{
		Age:         -1,
		Vaccination: risk.Vaccination{DoseCount: 0},
		Lifestyle:   risk.Lifestyle{SmokingStatus: risk.SmokingNever, ActivityLevel: risk.ActivityActive},
	}
	svc, repo := newTestAssessmentService(map[uuid.UUID]risk.PatientSnapshot{pid: snap})

	_, err := svc.Recalculate(context.Background(), pid, nil)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var verr *risk.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error type = %T, want *risk.ValidationError", err)
	}
	if verr.Kind != risk.InvalidInput {
		t.Errorf("kind = %q, want %q", verr.Kind, risk.InvalidInput)
	}
	if len(repo.store) != 0 {
		t.Errorf("store size = %d, want 0 (nothing stored on rejection)", len(repo.store))
	}
}

func TestRecalculateSnapshotFailure(t *testing.T) {
	repo := newMockRepo()
	src := &mockSnapshotSource{err: fmt.Errorf("profile missing")}
	svc := NewService(repo, src, zerolog.Nop())

	_, err := svc.Recalculate(context.Background(), uuid.New(), nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if len(repo.store) != 0 {
		t.Errorf("store size = %d, want 0", len(repo.store))
	}
}

func TestRecalculateRecordsComputedBy(t *testing.T) {
	pid := uuid.New()
	clinician := uuid.New()
	snap := risk.PatientSnapshot{
		Age:         30,
		Vaccination: risk.Vaccination{DoseCount: 3, LastDoseDate: timePtr(time.Now().AddDate(0, -1, 0))},
		Lifestyle:   risk.Lifestyle{SmokingStatus: risk.SmokingNever, ActivityLevel: risk.ActivityActive},
	}
	svc, _ := newTestAssessmentService(map[uuid.UUID]risk.PatientSnapshot{pid: snap})

	ra, err := svc.Recalculate(context.Background(), pid, &clinician)
	if err != nil {
		t.Fatalf("Recalculate() error: %v", err)
	}
	if ra.ComputedBy == nil || *ra.ComputedBy != clinician {
		t.Errorf("computed by = %v, want %v", ra.ComputedBy, clinician)
	}
}

func timePtr(t time.Time) *time.Time { return &t }
