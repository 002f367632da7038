package progress

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"curriculum-service/internal/models"
)

var (
	// ErrNotFound means no record exists yet for the (user, module) pair.
	ErrNotFound = errors.New("progress record not found")
	// ErrCorrupt means a stored record could not be decoded.
	ErrCorrupt = errors.New("corrupt progress record")
	// ErrStorage wraps persistence failures so the raw store error never
	// leaks past this package.
	ErrStorage = errors.New("progress storage failure")
)

// Store persists module progress records keyed by (user, module).
type Store interface {
	Load(ctx context.Context, userID, moduleID string) (*models.ModuleProgress, error)
	Save(ctx context.Context, record *models.ModuleProgress) error
}

// Totals is the denominator of the progress percentage for one module.
type Totals struct {
	Resources   int
	Assignments int
	Quizzes     int
}

func TotalsFor(m *models.Module) Totals {
	return Totals{
		Resources:   len(m.Resources),
		Assignments: len(m.Assignments),
		Quizzes:     len(m.Quizzes),
	}
}

func (t Totals) Sum() int { return t.Resources + t.Assignments + t.Quizzes }

// Tracker aggregates completion across a module's resources, assignments and
// quizzes into one persisted percentage.
type Tracker struct {
	store Store
}

func NewTracker(store Store) *Tracker {
	return &Tracker{store: store}
}

// RecordResourceComplete adds a resource to the record with set semantics:
// re-adding an already-present id is a no-op, not an error.
func (t *Tracker) RecordResourceComplete(ctx context.Context, userID, moduleID, resourceID string, totals Totals) (*models.ModuleProgress, error) {
	rec, err := t.load(ctx, userID, moduleID)
	if err != nil {
		return nil, err
	}
	if !rec.HasResource(resourceID) {
		rec.CompletedResources = append(rec.CompletedResources, resourceID)
	}
	return t.save(ctx, rec, totals)
}

// RecordQuizComplete appends a quiz score. Append, not a set: repeated
// attempts at the same quiz each contribute a new entry. A learner who
// retakes one quiz therefore inflates the completed count against a
// denominator that counts distinct quizzes once; this mirrors the observed
// behavior of the progress record and is documented in the tests rather
// than silently corrected.
func (t *Tracker) RecordQuizComplete(ctx context.Context, userID, moduleID string, score float64, totals Totals) (*models.ModuleProgress, error) {
	rec, err := t.load(ctx, userID, moduleID)
	if err != nil {
		return nil, err
	}
	rec.CompletedQuizzes = append(rec.CompletedQuizzes, score)
	return t.save(ctx, rec, totals)
}

// RecordAssignmentComplete adds an assignment with the same set semantics as
// resources.
func (t *Tracker) RecordAssignmentComplete(ctx context.Context, userID, moduleID, assignmentID string, totals Totals) (*models.ModuleProgress, error) {
	rec, err := t.load(ctx, userID, moduleID)
	if err != nil {
		return nil, err
	}
	if !rec.HasAssignment(assignmentID) {
		rec.CompletedAssignments = append(rec.CompletedAssignments, assignmentID)
	}
	return t.save(ctx, rec, totals)
}

// Get returns the current record, or the zero record when none exists.
func (t *Tracker) Get(ctx context.Context, userID, moduleID string) (*models.ModuleProgress, error) {
	return t.load(ctx, userID, moduleID)
}

// Reset discards the record, returning the learner to zero progress.
func (t *Tracker) Reset(ctx context.Context, userID, moduleID string) (*models.ModuleProgress, error) {
	rec := models.NewModuleProgress(userID, moduleID)
	rec.UpdatedAt = time.Now().UTC()
	if err := t.store.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return rec, nil
}

// load fetches the record, creating the zero record lazily. A record that no
// longer decodes is discarded and replaced by the zero record: losing stale
// progress is preferred over blocking the learner on a parse error.
func (t *Tracker) load(ctx context.Context, userID, moduleID string) (*models.ModuleProgress, error) {
	rec, err := t.store.Load(ctx, userID, moduleID)
	switch {
	case err == nil:
		return rec, nil
	case errors.Is(err, ErrNotFound):
		return models.NewModuleProgress(userID, moduleID), nil
	case errors.Is(err, ErrCorrupt):
		log.Printf("discarding corrupt progress record for user %s module %s: %v", userID, moduleID, err)
		return models.NewModuleProgress(userID, moduleID), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
}

func (t *Tracker) save(ctx context.Context, rec *models.ModuleProgress, totals Totals) (*models.ModuleProgress, error) {
	rec.Recompute(totals.Sum())
	rec.UpdatedAt = time.Now().UTC()
	if err := t.store.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return rec, nil
}
