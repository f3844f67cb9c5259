package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/BloggingApp/feed-service/internal/repository/redisrepo"
	"github.com/redis/go-redis/v9"
)

var ErrMiss = errors.New("cache miss")

// Store is a byte-oriented key/value backend for a listing cache.
// Keys are scoped to one listing; Clear drops all of them.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Clear(ctx context.Context) error
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

type memoryStore struct {
	mu      sync.RWMutex
	now     Clock
	entries map[string]memoryEntry
}

func NewMemoryStore(now Clock) Store {
	if now == nil {
		now = time.Now
	}
	return &memoryStore{
		now:     now,
		entries: make(map[string]memoryEntry),
	}
}

func (s *memoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrMiss
	}
	if !s.now().Before(entry.expiresAt) {
		s.mu.Lock()
		if current, ok := s.entries[key]; ok && current.expiresAt.Equal(entry.expiresAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, ErrMiss
	}

	return entry.value, nil
}

func (s *memoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = memoryEntry{value: value, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *memoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]memoryEntry)
	return nil
}

type redisStore struct {
	repo    redisrepo.Default
	listing string
}

// NewRedisStore keeps entries under the listing's key namespace in Redis.
func NewRedisStore(repo redisrepo.Default, listing string) Store {
	return &redisStore{
		repo:    repo,
		listing: listing,
	}
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.repo.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}

	return value, nil
}

func (s *redisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.repo.Set(ctx, key, value, ttl)
}

func (s *redisStore) Clear(ctx context.Context) error {
	keys, err := s.repo.ScanKeys(ctx, redisrepo.ListingKeyPattern(s.listing))
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	return s.repo.Del(ctx, keys...).Err()
}
