package bulkops

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "dashboard:bulkops:"

// RedisStore keeps workspaces in Redis so selection sessions survive gateway
// restarts and can be shared across replicas.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(addr string, password string, db int, ttl time.Duration) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) Put(ctx context.Context, sessionID string, workspace *Workspace) error {
	if workspace == nil {
		return nil
	}
	payload, err := json.Marshal(workspace)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, redisKeyPrefix+sessionID, payload, s.ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*Workspace, bool, error) {
	value, err := s.client.Get(ctx, redisKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var workspace Workspace
	if err := json.Unmarshal([]byte(value), &workspace); err != nil {
		return nil, false, err
	}
	return &workspace, true, nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, redisKeyPrefix+sessionID).Err()
}
