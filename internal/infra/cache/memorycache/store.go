package memorycache

import (
	"context"
	"maps"
	"sync"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Store хранилище записей кэша в памяти процесса
// Используется в тестах и когда Redis отключен в конфигурации
type Store struct {
	mu      sync.RWMutex
	entries map[string]domain.CacheEntry
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{entries: make(map[string]domain.CacheEntry)}
}

// Get возвращает копию записи или domain.ErrCacheMiss
func (s *Store) Get(_ context.Context, key string) (*domain.CacheEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key]
	if !ok {
		return nil, domain.ErrCacheMiss
	}

	entry.Payload = append([]byte(nil), entry.Payload...)
	entry.Versions = maps.Clone(entry.Versions)
	return &entry, nil
}

// Set целиком заменяет запись; payload и версии копируются
func (s *Store) Set(_ context.Context, entry *domain.CacheEntry) error {
	stored := *entry
	stored.Payload = append([]byte(nil), entry.Payload...)
	stored.Versions = maps.Clone(entry.Versions)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[entry.Key] = stored
	return nil
}
