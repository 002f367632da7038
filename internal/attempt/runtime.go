package attempt

import (
	"time"

	"curriculum-service/internal/models"
)

// DefaultSubmitTimeout is the guard on one submission step. It stops the
// caller from waiting on a hung submission path; work already in flight may
// still complete silently.
const DefaultSubmitTimeout = 30 * time.Second

// Outcome is the result of one successful advance.
type Outcome struct {
	Completed bool    `json:"completed"`
	Score     float64 `json:"score,omitempty"`
	NextIndex int     `json:"nextIndex"`
}

// Runtime sequences one quiz's questions through an attempt, one at a time.
// Each attempt is independent; a runtime holds no per-attempt state of its
// own and can drive any number of attempts at its quiz.
//
// The advance cycle is split in two so a real submission step can sit in the
// middle: BeginAdvance validates the current answer and takes the
// single-flight flag, FinishAdvance applies the transition, AbortAdvance
// releases the flag after a failed submission. Begin and Finish report
// ErrSubmissionTimeout when the guard timer has already expired.
type Runtime struct {
	quiz    *models.Quiz
	timeout time.Duration
}

func NewRuntime(quiz *models.Quiz) *Runtime {
	return &Runtime{quiz: quiz, timeout: DefaultSubmitTimeout}
}

func (r *Runtime) Quiz() *models.Quiz        { return r.quiz }
func (r *Runtime) Timeout() time.Duration    { return r.timeout }
func (r *Runtime) SetTimeout(d time.Duration) { r.timeout = d }

// SubmitAnswer stores the answer for a question without advancing. Repeated
// calls for the same question overwrite, last write wins.
func (r *Runtime) SubmitAnswer(a *Attempt, questionID string, value any) error {
	switch a.State {
	case StateCompleted:
		return ErrAttemptComplete
	case StateSubmitting:
		return ErrAdvanceInFlight
	}
	if a.Answers == nil {
		a.Answers = make(map[string]any)
	}
	a.Answers[questionID] = value
	return nil
}

// BeginAdvance validates the current question's stored answer and enters the
// submitting state. On a validation failure the attempt does not move and
// the question is replayed.
func (r *Runtime) BeginAdvance(a *Attempt) error {
	switch a.State {
	case StateCompleted:
		return ErrAttemptComplete
	case StateSubmitting:
		if r.expired(a) {
			// Guard fired: release the flag, report the timeout, let the
			// caller retry.
			a.State = StateInProgress
			a.SubmittingSince = time.Time{}
			return ErrSubmissionTimeout
		}
		return ErrAdvanceInFlight
	}

	q := r.quiz.Questions[a.Current]
	answer, ok := a.Answers[q.QuestionID()]
	if !ok {
		return &ValidationError{QuestionID: q.QuestionID(), Reason: "no answer submitted"}
	}
	if err := q.CheckAnswer(answer); err != nil {
		return &ValidationError{QuestionID: q.QuestionID(), Reason: err.Error()}
	}

	a.State = StateSubmitting
	a.SubmittingSince = time.Now().UTC()
	return nil
}

// FinishAdvance completes a submission begun with BeginAdvance: either the
// attempt moves to the next question, or, on the last question, the final
// score is computed once and the attempt completes. The score is never
// recomputed after that; the value reported here is authoritative.
func (r *Runtime) FinishAdvance(a *Attempt) (*Outcome, error) {
	if a.State != StateSubmitting {
		return nil, ErrAttemptComplete
	}
	if r.expired(a) {
		a.State = StateInProgress
		a.SubmittingSince = time.Time{}
		return nil, ErrSubmissionTimeout
	}
	a.SubmittingSince = time.Time{}

	if a.Current >= len(r.quiz.Questions)-1 {
		a.Score = r.finalScore(a)
		a.State = StateCompleted
		return &Outcome{Completed: true, Score: a.Score, NextIndex: a.Current}, nil
	}

	a.Current++
	a.State = StateInProgress
	return &Outcome{NextIndex: a.Current}, nil
}

// AbortAdvance releases the single-flight flag after a failed submission
// step, returning the attempt to the current question.
func (r *Runtime) AbortAdvance(a *Attempt) {
	if a.State == StateSubmitting {
		a.State = StateInProgress
		a.SubmittingSince = time.Time{}
	}
}

func (r *Runtime) expired(a *Attempt) bool {
	return !a.SubmittingSince.IsZero() && time.Since(a.SubmittingSince) > r.timeout
}

// finalScore sums the points of every question whose stored answer exactly
// equals its correct answer. Only multiple-choice and true-false carry one;
// essay, coding, short-answer and matching grade to zero here and are scored
// out-of-band.
func (r *Runtime) finalScore(a *Attempt) float64 {
	var total float64
	for _, q := range r.quiz.Questions {
		if answer, ok := a.Answers[q.QuestionID()]; ok {
			total += q.Grade(answer)
		}
	}
	return total
}
