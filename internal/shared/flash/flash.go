// Package flash keeps one-time values scoped to a user session: a value is
// returned by the first Pop and gone afterwards.
package flash

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store holds one-time values keyed by owner and name.
type Store interface {
	// Put stores v (JSON-encoded) for owner under name, replacing any previous value.
	Put(ctx context.Context, owner, name string, v any) error
	// Pop decodes the value into dst and removes it. found is false when nothing was stored.
	Pop(ctx context.Context, owner, name string, dst any) (found bool, err error)
}

func key(owner, name string) string {
	return fmt.Sprintf("flash:%s:%s", owner, name)
}

// RedisStore keeps values in Redis with a TTL; Pop uses GETDEL so a value is
// observed by at most one reader.
type RedisStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisStore(client redis.Cmdable, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Put(ctx context.Context, owner, name string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode flash value: %w", err)
	}
	if err := s.client.Set(ctx, key(owner, name), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("store flash value: %w", err)
	}
	return nil
}

func (s *RedisStore) Pop(ctx context.Context, owner, name string, dst any) (bool, error) {
	payload, err := s.client.GetDel(ctx, key(owner, name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("pop flash value: %w", err)
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return false, fmt.Errorf("decode flash value: %w", err)
	}
	return true, nil
}

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryStore is a process-local Store used when Redis is not configured.
// Values do not survive restarts and are not shared between instances.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Put(_ context.Context, owner, name string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode flash value: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.pruneExpired(now)
	s.entries[key(owner, name)] = memoryEntry{payload: payload, expiresAt: now.Add(s.ttl)}
	return nil
}

// pruneExpired drops entries nobody popped before their TTL ran out.
// Callers hold s.mu.
func (s *MemoryStore) pruneExpired(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	for k, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, k)
		}
	}
}

func (s *MemoryStore) Pop(_ context.Context, owner, name string, dst any) (bool, error) {
	s.mu.Lock()
	k := key(owner, name)
	entry, ok := s.entries[k]
	delete(s.entries, k)
	s.mu.Unlock()

	if !ok || (s.ttl > 0 && s.now().After(entry.expiresAt)) {
		return false, nil
	}
	if err := json.Unmarshal(entry.payload, dst); err != nil {
		return false, fmt.Errorf("decode flash value: %w", err)
	}
	return true, nil
}
