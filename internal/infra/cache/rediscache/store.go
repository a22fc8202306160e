package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

var (
	// ErrInvalidEntry возвращается, если запись кэша не удалось сериализовать или разобрать
	ErrInvalidEntry = errors.New("rediscache: invalid cache entry")

	// ErrRedis возвращается при ошибках обращения к Redis
	ErrRedis = errors.New("rediscache: redis error")
)

type entryRecord struct {
	Key        string           `json:"key"`
	ComputedAt time.Time        `json:"computed_at"`
	Versions   map[string]int64 `json:"versions"`
	Payload    json.RawMessage  `json:"payload"`
}

// Store хранилище записей кэша доступности в Redis
// Каждая запись хранится как JSON {key, computed_at, versions, payload}
type Store struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewStore создает хранилище; ttl служит только для сборки мусора,
// актуальность записи определяется сравнением версий таблиц-источников
func NewStore(client *redis.Client, keyPrefix string, ttl time.Duration) *Store {
	return &Store{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

// Get возвращает запись по ключу или domain.ErrCacheMiss
func (s *Store) Get(ctx context.Context, key string) (*domain.CacheEntry, error) {
	data, err := s.client.Get(ctx, s.keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrCacheMiss
		}
		return nil, fmt.Errorf("%w: get %s: %v", ErrRedis, key, err)
	}

	var record entryRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidEntry, key, err)
	}

	return &domain.CacheEntry{
		Key:        record.Key,
		ComputedAt: record.ComputedAt,
		Versions:   record.Versions,
		Payload:    record.Payload,
	}, nil
}

// Set целиком заменяет запись
func (s *Store) Set(ctx context.Context, entry *domain.CacheEntry) error {
	if entry == nil || !json.Valid(entry.Payload) {
		return ErrInvalidEntry
	}

	data, err := json.Marshal(entryRecord{
		Key:        entry.Key,
		ComputedAt: entry.ComputedAt,
		Versions:   entry.Versions,
		Payload:    entry.Payload,
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidEntry, entry.Key, err)
	}

	if err := s.client.Set(ctx, s.keyPrefix+entry.Key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrRedis, entry.Key, err)
	}
	return nil
}
