package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// LinkStore keeps short-lived download tokens for the local store.
type LinkStore interface {
	Save(ctx context.Context, token, objectPath string, ttl time.Duration) error
	Resolve(ctx context.Context, token string) (string, error)
}

const linkKeyPrefix = "adjunto:link:"

type redisLinks struct {
	client *redis.Client
}

func NewRedisLinkStore(client *redis.Client) LinkStore {
	return &redisLinks{client: client}
}

// NewRedisClient connects and pings within five seconds.
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis address not set")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

func (r *redisLinks) Save(ctx context.Context, token, objectPath string, ttl time.Duration) error {
	return r.client.Set(ctx, linkKeyPrefix+token, objectPath, ttl).Err()
}

func (r *redisLinks) Resolve(ctx context.Context, token string) (string, error) {
	p, err := r.client.Get(ctx, linkKeyPrefix+token).Result()
	if err == redis.Nil {
		return "", ErrLinkNotFound
	}
	if err != nil {
		return "", err
	}
	return p, nil
}

type memoryLink struct {
	path      string
	expiresAt time.Time
}

type memoryLinks struct {
	mu    sync.Mutex
	links map[string]memoryLink
	now   func() time.Time
}

// NewMemoryLinkStore is used when no Redis is configured. Links do not
// survive a restart.
func NewMemoryLinkStore() LinkStore {
	return &memoryLinks{links: map[string]memoryLink{}, now: time.Now}
}

func (m *memoryLinks) Save(_ context.Context, token, objectPath string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for k, l := range m.links {
		if now.After(l.expiresAt) {
			delete(m.links, k)
		}
	}
	m.links[token] = memoryLink{path: objectPath, expiresAt: now.Add(ttl)}
	return nil
}

func (m *memoryLinks) Resolve(_ context.Context, token string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.links[token]
	if !ok || m.now().After(l.expiresAt) {
		delete(m.links, token)
		return "", ErrLinkNotFound
	}
	return l.path, nil
}
