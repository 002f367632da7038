package attempt

import (
	"errors"
	"fmt"
	"time"
)

type State string

const (
	StateInProgress State = "in_progress"
	StateSubmitting State = "submitting"
	StateCompleted  State = "completed"
)

var (
	// ErrAdvanceInFlight rejects a re-entrant advance while a previous one
	// has not finished. Callers retry, the call is never queued.
	ErrAdvanceInFlight = errors.New("advance already in flight")
	// ErrSubmissionTimeout reports a submission that outlived the guard
	// timer. The single-flight flag is released, the caller may retry.
	ErrSubmissionTimeout = errors.New("submission timed out")
	// ErrAttemptComplete rejects interaction with a finished attempt.
	ErrAttemptComplete = errors.New("attempt already complete")
)

// ValidationError reports an answer that failed its question's type-specific
// check. The attempt stays on the same question.
type ValidationError struct {
	QuestionID string
	Reason     string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or invalid answer for question %s: %s", e.QuestionID, e.Reason)
}

// Attempt is one learner's run through a quiz. It is ephemeral state, scoped
// to a single quiz-taking session and serialized between requests.
type Attempt struct {
	ID       string         `json:"id"`
	QuizID   string         `json:"quizId"`
	ModuleID string         `json:"moduleId"`
	UserID   string         `json:"userId"`
	// CurriculumID locates the quiz definition when the attempt is reloaded.
	CurriculumID string         `json:"curriculumId"`
	Current      int            `json:"currentQuestionIndex"`
	Answers      map[string]any `json:"answers"`
	State        State          `json:"state"`
	Score        float64        `json:"score"`
	StartedAt    time.Time      `json:"startedAt"`
	// SubmittingSince is set while the single-flight flag is held.
	SubmittingSince time.Time `json:"submittingSince,omitempty"`
}

// New starts an attempt at the first question.
func New(id, userID, curriculumID, moduleID, quizID string) *Attempt {
	return &Attempt{
		ID:           id,
		QuizID:       quizID,
		ModuleID:     moduleID,
		UserID:       userID,
		CurriculumID: curriculumID,
		Answers:      make(map[string]any),
		State:        StateInProgress,
		StartedAt:    time.Now().UTC(),
	}
}
