package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"curriculum-service/internal/attempt"
	"curriculum-service/internal/event"
	"curriculum-service/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrQuizNotFound  = errors.New("quiz not found")
	ErrEmptyQuiz     = errors.New("quiz has no questions")
	ErrAttemptAccess = errors.New("attempt does not belong to user")
)

type AttemptService struct {
	Attempts  *repository.AttemptRepository
	Curricula *CurriculumService
	Progress  *ProgressService
	Publisher *event.Publisher
	// SubmitTimeout overrides the default submission guard when positive.
	SubmitTimeout time.Duration
}

func NewAttemptService(attempts *repository.AttemptRepository, curricula *CurriculumService, progressSvc *ProgressService, publisher *event.Publisher) *AttemptService {
	return &AttemptService{
		Attempts:  attempts,
		Curricula: curricula,
		Progress:  progressSvc,
		Publisher: publisher,
	}
}

// Start opens a new attempt at the quiz's first question.
func (s *AttemptService) Start(ctx context.Context, userID, curriculumID, quizID string) (*attempt.Attempt, error) {
	idx, err := s.Curricula.GetIndex(ctx, curriculumID)
	if err != nil {
		return nil, err
	}
	quiz, ok := idx.Quiz(quizID)
	if !ok {
		return nil, ErrQuizNotFound
	}
	if len(quiz.Questions) == 0 {
		return nil, ErrEmptyQuiz
	}
	mod, _ := idx.ModuleForQuiz(quizID)

	a := attempt.New(uuid.NewString(), userID, curriculumID, mod.ID, quizID)
	if err := s.Attempts.Save(ctx, a); err != nil {
		return nil, fmt.Errorf("persisting attempt: %w", err)
	}
	s.Publisher.Publish(event.AttemptStarted, map[string]any{
		"attemptId": a.ID,
		"quizId":    quizID,
		"userId":    userID,
	})
	return a, nil
}

func (s *AttemptService) Get(ctx context.Context, userID, attemptID string) (*attempt.Attempt, error) {
	a, _, err := s.load(ctx, userID, attemptID)
	return a, err
}

// SubmitAnswer stores an answer on the attempt without advancing it.
func (s *AttemptService) SubmitAnswer(ctx context.Context, userID, attemptID, questionID string, value any) (*attempt.Attempt, error) {
	a, rt, err := s.load(ctx, userID, attemptID)
	if err != nil {
		return nil, err
	}
	if err := rt.SubmitAnswer(a, questionID, value); err != nil {
		return nil, err
	}
	if err := s.Attempts.Save(ctx, a); err != nil {
		return nil, fmt.Errorf("persisting attempt: %w", err)
	}
	return a, nil
}

// Advance validates the current answer and moves the attempt forward. The
// persistence step between taking and releasing the single-flight flag runs
// under the submission guard deadline; when it fires the flag is released
// and the caller may retry the same question. On the last question the final
// score is written into module progress and reported by event.
func (s *AttemptService) Advance(ctx context.Context, userID, attemptID string) (*attempt.Outcome, error) {
	a, rt, err := s.load(ctx, userID, attemptID)
	if err != nil {
		return nil, err
	}

	if err := rt.BeginAdvance(a); err != nil {
		if errors.Is(err, attempt.ErrSubmissionTimeout) {
			// The guard fired against a flag left by an earlier call;
			// persist the release so the retry starts clean.
			_ = s.Attempts.Save(ctx, a)
		}
		return nil, err
	}

	// Make the flag visible to interleaved calls before doing the work.
	subCtx, cancel := context.WithTimeout(ctx, rt.Timeout())
	defer cancel()
	if err := s.Attempts.Save(subCtx, a); err != nil {
		rt.AbortAdvance(a)
		_ = s.Attempts.Save(ctx, a)
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, attempt.ErrSubmissionTimeout
		}
		return nil, fmt.Errorf("persisting attempt: %w", err)
	}

	outcome, err := rt.FinishAdvance(a)
	if err != nil {
		_ = s.Attempts.Save(ctx, a)
		return nil, err
	}
	if err := s.Attempts.Save(ctx, a); err != nil {
		return nil, fmt.Errorf("persisting attempt: %w", err)
	}

	if outcome.Completed {
		// The attempt's score is final from this point. A failed progress
		// write does not undo completion; it only costs the aggregate a
		// retry.
		if _, err := s.Progress.CompleteQuiz(ctx, a.UserID, a.CurriculumID, a.ModuleID, outcome.Score); err != nil {
			log.Printf("recording quiz completion for attempt %s: %v", a.ID, err)
		}
		s.Publisher.Publish(event.AttemptCompleted, map[string]any{
			"attemptId": a.ID,
			"quizId":    a.QuizID,
			"userId":    a.UserID,
			"score":     outcome.Score,
		})
	}
	return outcome, nil
}

func (s *AttemptService) load(ctx context.Context, userID, attemptID string) (*attempt.Attempt, *attempt.Runtime, error) {
	a, err := s.Attempts.FindByID(ctx, attemptID)
	if err != nil {
		return nil, nil, err
	}
	if a.UserID != userID {
		return nil, nil, ErrAttemptAccess
	}
	idx, err := s.Curricula.GetIndex(ctx, a.CurriculumID)
	if err != nil {
		return nil, nil, err
	}
	quiz, ok := idx.Quiz(a.QuizID)
	if !ok {
		return nil, nil, ErrQuizNotFound
	}
	rt := attempt.NewRuntime(quiz)
	if s.SubmitTimeout > 0 {
		rt.SetTimeout(s.SubmitTimeout)
	}
	return a, rt, nil
}
