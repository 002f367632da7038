package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrCurriculumNotFound = errors.New("curriculum not found")

// CurriculumRecord is one import: the normalized tree serialized as an
// opaque JSON payload, one document per import.
type CurriculumRecord struct {
	ID          string    `bson:"_id"`
	OwnerID     string    `bson:"owner_id"`
	Name        string    `bson:"name"`
	Description string    `bson:"description"`
	Payload     []byte    `bson:"payload"`
	ImportedAt  time.Time `bson:"imported_at"`
}

type CurriculumRepository struct {
	Col *mongo.Collection
}

func NewCurriculumRepository(db *mongo.Database) *CurriculumRepository {
	return &CurriculumRepository{Col: db.Collection("curricula")}
}

func (r *CurriculumRepository) Create(ctx context.Context, rec *CurriculumRecord) error {
	_, err := r.Col.InsertOne(ctx, rec)
	return err
}

func (r *CurriculumRepository) FindByID(ctx context.Context, id string) (*CurriculumRecord, error) {
	var rec CurriculumRecord
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCurriculumNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// List returns import metadata only, newest first; payloads stay in the
// database.
func (r *CurriculumRepository) List(ctx context.Context) ([]CurriculumRecord, error) {
	opts := options.Find().
		SetProjection(bson.M{"payload": 0}).
		SetSort(bson.M{"imported_at": -1})
	cursor, err := r.Col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var recs []CurriculumRecord
	if err := cursor.All(ctx, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *CurriculumRepository) Delete(ctx context.Context, id string) error {
	res, err := r.Col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrCurriculumNotFound
	}
	return nil
}
