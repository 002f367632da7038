package service

import (
	"context"
	"errors"

	"curriculum-service/internal/event"
	"curriculum-service/internal/models"
	"curriculum-service/internal/progress"
)

var ErrModuleNotFound = errors.New("module not found")

type ProgressService struct {
	Tracker   *progress.Tracker
	Curricula *CurriculumService
	Publisher *event.Publisher
}

func NewProgressService(tracker *progress.Tracker, curricula *CurriculumService, publisher *event.Publisher) *ProgressService {
	return &ProgressService{Tracker: tracker, Curricula: curricula, Publisher: publisher}
}

func (s *ProgressService) CompleteResource(ctx context.Context, userID, curriculumID, moduleID, resourceID string) (*models.ModuleProgress, error) {
	totals, err := s.moduleTotals(ctx, curriculumID, moduleID)
	if err != nil {
		return nil, err
	}
	rec, err := s.Tracker.RecordResourceComplete(ctx, userID, moduleID, resourceID, totals)
	if err != nil {
		return nil, err
	}
	s.publishUpdate(rec)
	return rec, nil
}

func (s *ProgressService) CompleteQuiz(ctx context.Context, userID, curriculumID, moduleID string, score float64) (*models.ModuleProgress, error) {
	totals, err := s.moduleTotals(ctx, curriculumID, moduleID)
	if err != nil {
		return nil, err
	}
	rec, err := s.Tracker.RecordQuizComplete(ctx, userID, moduleID, score, totals)
	if err != nil {
		return nil, err
	}
	s.publishUpdate(rec)
	return rec, nil
}

func (s *ProgressService) CompleteAssignment(ctx context.Context, userID, curriculumID, moduleID, assignmentID string) (*models.ModuleProgress, error) {
	totals, err := s.moduleTotals(ctx, curriculumID, moduleID)
	if err != nil {
		return nil, err
	}
	rec, err := s.Tracker.RecordAssignmentComplete(ctx, userID, moduleID, assignmentID, totals)
	if err != nil {
		return nil, err
	}
	s.publishUpdate(rec)
	return rec, nil
}

func (s *ProgressService) GetProgress(ctx context.Context, userID, moduleID string) (*models.ModuleProgress, error) {
	return s.Tracker.Get(ctx, userID, moduleID)
}

func (s *ProgressService) ResetProgress(ctx context.Context, userID, moduleID string) (*models.ModuleProgress, error) {
	rec, err := s.Tracker.Reset(ctx, userID, moduleID)
	if err != nil {
		return nil, err
	}
	s.publishUpdate(rec)
	return rec, nil
}

func (s *ProgressService) moduleTotals(ctx context.Context, curriculumID, moduleID string) (progress.Totals, error) {
	idx, err := s.Curricula.GetIndex(ctx, curriculumID)
	if err != nil {
		return progress.Totals{}, err
	}
	mod, ok := idx.Module(moduleID)
	if !ok {
		return progress.Totals{}, ErrModuleNotFound
	}
	return progress.TotalsFor(mod), nil
}

func (s *ProgressService) publishUpdate(rec *models.ModuleProgress) {
	s.Publisher.Publish(event.ProgressUpdated, map[string]any{
		"userId":          rec.UserID,
		"moduleId":        rec.ModuleID,
		"overallProgress": rec.OverallProgress,
	})
}
