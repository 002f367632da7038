package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"curriculum-service/internal/attempt"

	"github.com/redis/go-redis/v9"
)

var ErrAttemptNotFound = errors.New("attempt not found")

const attemptKeyPrefix = "quiz_attempt:"

// AttemptRepository keeps in-flight quiz attempts in Redis. Attempts are
// ephemeral, so they live behind a TTL rather than in the document store.
type AttemptRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAttemptRepository(client *redis.Client, ttl time.Duration) *AttemptRepository {
	return &AttemptRepository{client: client, ttl: ttl}
}

func (r *AttemptRepository) Save(ctx context.Context, a *attempt.Attempt) error {
	data, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, attemptKeyPrefix+a.ID, data, r.ttl).Err()
}

func (r *AttemptRepository) FindByID(ctx context.Context, id string) (*attempt.Attempt, error) {
	data, err := r.client.Get(ctx, attemptKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrAttemptNotFound
		}
		return nil, err
	}
	var a attempt.Attempt
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AttemptRepository) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, attemptKeyPrefix+id).Err()
}
