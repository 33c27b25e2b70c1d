// Package session tracks logged-in browsers through an opaque cookie
// token. Tokens live in process memory by default; configuring Redis
// moves them there so sessions survive restarts.
package session

import (
	"context"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"blog/config"
)

// CookieName is the session cookie set on login and cleared on logout.
const CookieName = "session_id"

// Store maps opaque tokens to user ids for the lifetime of a session.
type Store interface {
	// Create issues a new token bound to the user.
	Create(ctx context.Context, userID uint) (string, error)
	// UserID resolves a token; ok is false for unknown or expired tokens.
	UserID(ctx context.Context, token string) (uint, bool)
	// Destroy invalidates a token. Destroying an unknown token is a no-op.
	Destroy(ctx context.Context, token string) error
}

// NewStore picks the backend from configuration: Redis when a host is
// configured, otherwise the in-process store.
func NewStore(cfg config.AppConfig) Store {
	ttl := time.Duration(cfg.SessionTTLHours) * time.Hour
	if cfg.RedisHost != "" {
		client := redis.NewClient(&redis.Options{
			Addr:         net.JoinHostPort(cfg.RedisHost, strconv.Itoa(cfg.RedisPort)),
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			DialTimeout:  3 * time.Second,
			ReadTimeout:  2 * time.Second,
			WriteTimeout: 2 * time.Second,
		})
		return NewRedisStore(client, ttl)
	}
	return NewMemoryStore(ttl)
}

type memoryEntry struct {
	userID  uint
	expires time.Time
}

// MemoryStore keeps sessions in a process-wide map.
type MemoryStore struct {
	mu  sync.Mutex
	ttl time.Duration
	m   map[string]memoryEntry
}

// NewMemoryStore creates an in-process session store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, m: map[string]memoryEntry{}}
}

func (s *MemoryStore) Create(_ context.Context, userID uint) (string, error) {
	token := uuid.New().String()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleanupLocked()
	s.m[token] = memoryEntry{userID: userID, expires: time.Now().Add(s.ttl)}
	return token, nil
}

func (s *MemoryStore) UserID(_ context.Context, token string) (uint, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.m[token]
	if !ok {
		return 0, false
	}
	if time.Now().After(entry.expires) {
		delete(s.m, token)
		return 0, false
	}
	return entry.userID, true
}

func (s *MemoryStore) Destroy(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, token)
	return nil
}

func (s *MemoryStore) cleanupLocked() {
	now := time.Now()
	for token, entry := range s.m {
		if now.After(entry.expires) {
			delete(s.m, token)
		}
	}
}

// RedisStore keeps sessions in Redis with a TTL per token.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Create(ctx context.Context, userID uint) (string, error) {
	token := uuid.New().String()
	err := s.client.Set(ctx, key(token), strconv.FormatUint(uint64(userID), 10), s.ttl).Err()
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *RedisStore) UserID(ctx context.Context, token string) (uint, bool) {
	val, err := s.client.Get(ctx, key(token)).Result()
	if err != nil {
		return 0, false
	}
	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func (s *RedisStore) Destroy(ctx context.Context, token string) error {
	return s.client.Del(ctx, key(token)).Err()
}

func key(token string) string {
	return "session:" + token
}
