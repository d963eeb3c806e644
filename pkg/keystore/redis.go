package keystore

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisStore keeps each partition in a redis hash. Durability follows the
// redis server's persistence configuration.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %v", err)
	}

	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Put(ctx context.Context, partition, id string, payload []byte) error {
	return s.client.HSet(ctx, partition, id, payload).Err()
}

func (s *RedisStore) PutAll(ctx context.Context, partition string, entries map[string][]byte) error {
	if len(entries) == 0 {
		return nil
	}
	fields := make(map[string]interface{}, len(entries))
	for id, payload := range entries {
		fields[id] = payload
	}
	return s.client.HSet(ctx, partition, fields).Err()
}

func (s *RedisStore) Get(ctx context.Context, partition, id string) ([]byte, error) {
	payload, err := s.client.HGet(ctx, partition, id).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (s *RedisStore) GetAll(ctx context.Context, partition string) (map[string][]byte, error) {
	values, err := s.client.HGetAll(ctx, partition).Result()
	if err != nil {
		return nil, err
	}
	entries := make(map[string][]byte, len(values))
	for id, payload := range values {
		entries[id] = []byte(payload)
	}
	return entries, nil
}

func (s *RedisStore) Delete(ctx context.Context, partition, id string) error {
	return s.client.HDel(ctx, partition, id).Err()
}

func (s *RedisStore) Clear(ctx context.Context, partition string) error {
	return s.client.Del(ctx, partition).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
