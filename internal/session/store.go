package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store maps a Telegram user id to exactly one session, created on
// demand. GetOrCreate never fails: backends that can error fall back
// to a fresh session and log the problem.
type Store interface {
	GetOrCreate(ctx context.Context, telegramID int64) *Session
	Save(ctx context.Context, s *Session)
}

// MemoryStore keeps sessions in a process-local map. Carts and
// in-progress checkouts are lost on restart; orders and scheduled
// jobs are durable, so only conversation progress disappears.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[int64]*Session)}
}

func (m *MemoryStore) GetOrCreate(_ context.Context, telegramID int64) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[telegramID]; ok {
		return s
	}
	s := &Session{TelegramID: telegramID, State: StateMainMenu}
	m.sessions[telegramID] = s
	return s
}

// Save is a no-op: callers mutate the shared session in place.
func (m *MemoryStore) Save(_ context.Context, _ *Session) {}

// RedisStore keeps sessions as JSON blobs in Redis, so conversation
// state survives restarts and can be shared by several workers.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore constructs a RedisStore against the given address.
func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    24 * time.Hour,
	}
}

func sessionKey(telegramID int64) string {
	return fmt.Sprintf("session:%d", telegramID)
}

func (r *RedisStore) GetOrCreate(ctx context.Context, telegramID int64) *Session {
	fresh := &Session{TelegramID: telegramID, State: StateMainMenu}

	data, err := r.client.Get(ctx, sessionKey(telegramID)).Bytes()
	if err == redis.Nil {
		return fresh
	}
	if err != nil {
		log.Printf("[Session] Redis read failed for %d: %v", telegramID, err)
		return fresh
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		log.Printf("[Session] Corrupt session for %d: %v", telegramID, err)
		return fresh
	}
	return &s
}

func (r *RedisStore) Save(ctx context.Context, s *Session) {
	data, err := json.Marshal(s)
	if err != nil {
		log.Printf("[Session] Marshal failed for %d: %v", s.TelegramID, err)
		return
	}
	if err := r.client.Set(ctx, sessionKey(s.TelegramID), data, r.ttl).Err(); err != nil {
		log.Printf("[Session] Redis write failed for %d: %v", s.TelegramID, err)
	}
}
