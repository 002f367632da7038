package progress

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"curriculum-service/internal/models"
)

// fakeStore keeps records in memory and can be told to fail in the ways the
// tracker distinguishes.
type fakeStore struct {
	records map[string]*models.ModuleProgress
	loadErr error
	saveErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: make(map[string]*models.ModuleProgress)}
}

func key(userID, moduleID string) string { return userID + "/" + moduleID }

func (s *fakeStore) Load(_ context.Context, userID, moduleID string) (*models.ModuleProgress, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	rec, ok := s.records[key(userID, moduleID)]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *rec
	return &clone, nil
}

func (s *fakeStore) Save(_ context.Context, rec *models.ModuleProgress) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	clone := *rec
	s.records[key(rec.UserID, rec.ModuleID)] = &clone
	return nil
}

func TestResourceAndAssignmentAggregation(t *testing.T) {
	// Two resources, one assignment, one quiz: four items total. Completing
	// three of them lands on 75.
	totals := Totals{Resources: 2, Assignments: 1, Quizzes: 1}
	store := newFakeStore()
	tracker := NewTracker(store)
	ctx := context.Background()

	rec, err := tracker.RecordResourceComplete(ctx, "u1", "m1", "r1", totals)
	if err != nil {
		t.Fatal(err)
	}
	if rec.OverallProgress != 25 {
		t.Errorf("after one of four: OverallProgress = %d, want 25", rec.OverallProgress)
	}

	if _, err := tracker.RecordResourceComplete(ctx, "u1", "m1", "r2", totals); err != nil {
		t.Fatal(err)
	}
	rec, err = tracker.RecordAssignmentComplete(ctx, "u1", "m1", "a1", totals)
	if err != nil {
		t.Fatal(err)
	}
	if rec.OverallProgress != 75 {
		t.Errorf("after three of four: OverallProgress = %d, want 75", rec.OverallProgress)
	}
	if rec.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not set")
	}
}

func TestResourceSetSemantics(t *testing.T) {
	totals := Totals{Resources: 2}
	store := newFakeStore()
	tracker := NewTracker(store)
	ctx := context.Background()

	if _, err := tracker.RecordResourceComplete(ctx, "u1", "m1", "r1", totals); err != nil {
		t.Fatal(err)
	}
	rec, err := tracker.RecordResourceComplete(ctx, "u1", "m1", "r1", totals)
	if err != nil {
		t.Fatal(err)
	}
	if len(rec.CompletedResources) != 1 {
		t.Errorf("CompletedResources = %v, re-adding must not duplicate", rec.CompletedResources)
	}
	if rec.OverallProgress != 50 {
		t.Errorf("OverallProgress = %d, want 50", rec.OverallProgress)
	}
}

func TestProgressBoundsAndMonotonicity(t *testing.T) {
	totals := Totals{Resources: 3, Quizzes: 1}
	store := newFakeStore()
	tracker := NewTracker(store)
	ctx := context.Background()

	last := 0
	for _, id := range []string{"r1", "r2", "r3"} {
		rec, err := tracker.RecordResourceComplete(ctx, "u1", "m1", id, totals)
		if err != nil {
			t.Fatal(err)
		}
		if rec.OverallProgress < 0 || rec.OverallProgress > 100 {
			t.Fatalf("OverallProgress = %d, out of [0,100]", rec.OverallProgress)
		}
		if rec.OverallProgress < last {
			t.Fatalf("OverallProgress went backwards: %d after %d", rec.OverallProgress, last)
		}
		last = rec.OverallProgress
	}
	rec, err := tracker.RecordQuizComplete(ctx, "u1", "m1", 80, totals)
	if err != nil {
		t.Fatal(err)
	}
	if rec.OverallProgress != 100 {
		t.Errorf("OverallProgress = %d, want 100 with everything complete", rec.OverallProgress)
	}
}

func TestEmptyModuleKeepsZeroProgress(t *testing.T) {
	// A module with no items divides by nothing; the value must simply stay
	// where it is.
	store := newFakeStore()
	tracker := NewTracker(store)
	ctx := context.Background()

	rec, err := tracker.RecordQuizComplete(ctx, "u1", "m1", 50, Totals{})
	if err != nil {
		t.Fatal(err)
	}
	if rec.OverallProgress != 0 {
		t.Errorf("OverallProgress = %d, want 0 for an empty module", rec.OverallProgress)
	}
	if len(rec.CompletedQuizzes) != 1 {
		t.Errorf("CompletedQuizzes = %v, the score is still recorded", rec.CompletedQuizzes)
	}
}

// Quiz completions append rather than de-duplicate, so retaking a quiz pushes
// the completed count past the denominator. Known gap, kept as-is: this test
// pins the current behavior rather than endorsing it.
func TestQuizRetakeInflatesProgress(t *testing.T) {
	totals := Totals{Quizzes: 2}
	store := newFakeStore()
	tracker := NewTracker(store)
	ctx := context.Background()

	if _, err := tracker.RecordQuizComplete(ctx, "u1", "m1", 40, totals); err != nil {
		t.Fatal(err)
	}
	rec, err := tracker.RecordQuizComplete(ctx, "u1", "m1", 90, totals)
	if err != nil {
		t.Fatal(err)
	}
	if len(rec.CompletedQuizzes) != 2 {
		t.Fatalf("CompletedQuizzes = %v, want both scores kept", rec.CompletedQuizzes)
	}
	// Two entries against two distinct quizzes reads as fully complete even
	// though only one quiz was ever taken.
	if rec.OverallProgress != 100 {
		t.Errorf("OverallProgress = %d, want 100 (retake counts twice)", rec.OverallProgress)
	}
}

func TestGetWithoutRecord(t *testing.T) {
	tracker := NewTracker(newFakeStore())

	rec, err := tracker.Get(context.Background(), "u1", "m1")
	if err != nil {
		t.Fatal(err)
	}
	if rec.OverallProgress != 0 || len(rec.CompletedResources) != 0 {
		t.Errorf("expected the zero record, got %+v", rec)
	}
	if rec.UserID != "u1" || rec.ModuleID != "m1" {
		t.Errorf("zero record not keyed to the request: %+v", rec)
	}
}

func TestCorruptRecordFallsBackToZero(t *testing.T) {
	store := newFakeStore()
	store.loadErr = fmt.Errorf("%w: unexpected field type", ErrCorrupt)
	tracker := NewTracker(store)

	rec, err := tracker.Get(context.Background(), "u1", "m1")
	if err != nil {
		t.Fatalf("a corrupt record must not surface an error, got %v", err)
	}
	if rec.OverallProgress != 0 || len(rec.CompletedQuizzes) != 0 {
		t.Errorf("expected the zero record, got %+v", rec)
	}
}

func TestStorageFailuresAreWrapped(t *testing.T) {
	t.Run("load", func(t *testing.T) {
		store := newFakeStore()
		store.loadErr = errors.New("connection reset")
		tracker := NewTracker(store)

		_, err := tracker.Get(context.Background(), "u1", "m1")
		if !errors.Is(err, ErrStorage) {
			t.Errorf("error = %v, want ErrStorage", err)
		}
	})

	t.Run("save", func(t *testing.T) {
		store := newFakeStore()
		store.saveErr = errors.New("connection reset")
		tracker := NewTracker(store)

		_, err := tracker.RecordResourceComplete(context.Background(), "u1", "m1", "r1", Totals{Resources: 1})
		if !errors.Is(err, ErrStorage) {
			t.Errorf("error = %v, want ErrStorage", err)
		}
	})
}

func TestReset(t *testing.T) {
	totals := Totals{Resources: 1}
	store := newFakeStore()
	tracker := NewTracker(store)
	ctx := context.Background()

	if _, err := tracker.RecordResourceComplete(ctx, "u1", "m1", "r1", totals); err != nil {
		t.Fatal(err)
	}
	rec, err := tracker.Reset(ctx, "u1", "m1")
	if err != nil {
		t.Fatal(err)
	}
	if rec.OverallProgress != 0 || len(rec.CompletedResources) != 0 {
		t.Errorf("reset record = %+v, want zero progress", rec)
	}

	// The zero record is what subsequent loads see.
	rec, err = tracker.Get(ctx, "u1", "m1")
	if err != nil {
		t.Fatal(err)
	}
	if rec.OverallProgress != 0 {
		t.Errorf("OverallProgress after reset = %d, want 0", rec.OverallProgress)
	}
}

func TestTotalsFor(t *testing.T) {
	m := &models.Module{
		Resources:   []models.Resource{{ID: "r1"}, {ID: "r2"}},
		Assignments: []models.Assignment{{ID: "a1"}},
		Quizzes:     []models.Quiz{{ID: "q1"}},
	}
	totals := TotalsFor(m)
	if totals.Sum() != 4 {
		t.Errorf("Sum() = %d, want 4", totals.Sum())
	}
	if totals != (Totals{Resources: 2, Assignments: 1, Quizzes: 1}) {
		t.Errorf("TotalsFor = %+v", totals)
	}
}
