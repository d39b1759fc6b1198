package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis stores answers in a shared redis instance so multiple replicas can
// reuse each other's generations. Entries carry no TTL, matching the
// unbounded in-memory behaviour.
type Redis struct {
	client *redis.Client
}

func NewRedisStore(addr, password string, db int) *Redis {
	return &Redis{client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

func (r *Redis) Get(ctx context.Context, question string) (string, bool, error) {
	val, err := r.client.Get(ctx, answerKey(question)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (r *Redis) Set(ctx context.Context, question, answer string) error {
	return r.client.Set(ctx, answerKey(question), answer, 0).Err()
}

func answerKey(question string) string {
	return fmt.Sprintf("answer:%s", question)
}
