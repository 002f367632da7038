package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"curriculum-service/internal/curriculum"
	"curriculum-service/internal/event"
	"curriculum-service/internal/models"
	"curriculum-service/internal/repository"

	"github.com/google/uuid"
)

type CurriculumService struct {
	Repo      *repository.CurriculumRepository
	Publisher *event.Publisher
}

func NewCurriculumService(repo *repository.CurriculumRepository, publisher *event.Publisher) *CurriculumService {
	return &CurriculumService{Repo: repo, Publisher: publisher}
}

// Import normalizes a raw curriculum document and stores the result as one
// record. Format errors pass through untouched so the handler can name the
// offending field to the author.
func (s *CurriculumService) Import(ctx context.Context, ownerID string, raw []byte) (*models.Curriculum, error) {
	cur, err := curriculum.Normalize(raw)
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx, ownerID, cur); err != nil {
		return nil, err
	}
	s.Publisher.Publish(event.CurriculumImported, map[string]any{
		"id":      cur.ID,
		"name":    cur.Name,
		"ownerId": ownerID,
	})
	return cur, nil
}

// Get loads and decodes one imported curriculum tree.
func (s *CurriculumService) Get(ctx context.Context, id string) (*models.Curriculum, error) {
	rec, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	var cur models.Curriculum
	if err := json.Unmarshal(rec.Payload, &cur); err != nil {
		return nil, fmt.Errorf("decoding stored curriculum %s: %w", id, err)
	}
	return &cur, nil
}

// GetIndex loads a curriculum and builds its id lookup. Each call returns an
// independent index over an independent copy of the tree.
func (s *CurriculumService) GetIndex(ctx context.Context, id string) (*curriculum.Index, error) {
	cur, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return curriculum.NewIndex(cur), nil
}

func (s *CurriculumService) List(ctx context.Context) ([]repository.CurriculumRecord, error) {
	return s.Repo.List(ctx)
}

func (s *CurriculumService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.Publisher.Publish(event.CurriculumDeleted, map[string]any{"id": id})
	return nil
}

// SeedFromDir imports every curriculum document found under dir. Documents
// that fail the format check were already skipped by the loader.
func (s *CurriculumService) SeedFromDir(ctx context.Context, dir, ownerID string) error {
	curricula, err := curriculum.LoadDir(dir)
	if err != nil {
		return err
	}
	for _, cur := range curricula {
		if err := s.persist(ctx, ownerID, cur); err != nil {
			return err
		}
	}
	log.Printf("Seeded %d curricula from %s", len(curricula), dir)
	return nil
}

func (s *CurriculumService) persist(ctx context.Context, ownerID string, cur *models.Curriculum) error {
	if cur.ID == "" {
		cur.ID = uuid.NewString()
	}
	payload, err := json.Marshal(cur)
	if err != nil {
		return fmt.Errorf("encoding curriculum: %w", err)
	}
	rec := &repository.CurriculumRecord{
		ID:          cur.ID,
		OwnerID:     ownerID,
		Name:        cur.Name,
		Description: cur.Description,
		Payload:     payload,
		ImportedAt:  time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, rec); err != nil {
		return fmt.Errorf("storing curriculum: %w", err)
	}
	return nil
}
