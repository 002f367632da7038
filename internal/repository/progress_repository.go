package repository

import (
	"context"
	"errors"
	"fmt"

	"curriculum-service/internal/models"
	"curriculum-service/internal/progress"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProgressRepository persists one module progress document per
// (user, module) pair. It implements progress.Store.
type ProgressRepository struct {
	Col *mongo.Collection
}

func NewProgressRepository(db *mongo.Database) *ProgressRepository {
	return &ProgressRepository{Col: db.Collection("module_progress")}
}

func (r *ProgressRepository) Load(ctx context.Context, userID, moduleID string) (*models.ModuleProgress, error) {
	res := r.Col.FindOne(ctx, bson.M{"user_id": userID, "module_id": moduleID})
	raw, err := res.Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, progress.ErrNotFound
		}
		return nil, err
	}

	// Decode separately from the fetch so a document that no longer matches
	// the record shape surfaces as corrupt, not as a storage failure.
	var rec models.ModuleProgress
	if err := bson.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", progress.ErrCorrupt, err)
	}
	return &rec, nil
}

func (r *ProgressRepository) Save(ctx context.Context, rec *models.ModuleProgress) error {
	filter := bson.M{"user_id": rec.UserID, "module_id": rec.ModuleID}
	update := bson.M{"$set": bson.M{
		"user_id":               rec.UserID,
		"module_id":             rec.ModuleID,
		"completed_resources":   rec.CompletedResources,
		"completed_quizzes":     rec.CompletedQuizzes,
		"completed_assignments": rec.CompletedAssignments,
		"overall_progress":      rec.OverallProgress,
		"updated_at":            rec.UpdatedAt,
	}}
	_, err := r.Col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}
