package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Persister saves committed snapshots and loads the last one back.
type Persister interface {
	// Load returns the stored snapshot; ok is false when nothing is stored.
	Load(ctx context.Context) (snap Snapshot, ok bool, err error)
	Save(ctx context.Context, snap Snapshot) error
}

// RedisClient is the subset of redis.UniversalClient the persister needs.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// DefaultRedisKey is the key the snapshot is stored under.
const DefaultRedisKey = "workspacebilling:snapshot"

// RedisPersister stores the snapshot as JSON under a single key.
type RedisPersister struct {
	client RedisClient
	key    string
	ttl    time.Duration
}

// RedisPersisterOption configures a RedisPersister.
type RedisPersisterOption func(*RedisPersister)

// WithRedisKey sets the key the snapshot is stored under. Empty keys are ignored.
func WithRedisKey(key string) RedisPersisterOption {
	return func(p *RedisPersister) {
		if key != "" {
			p.key = key
		}
	}
}

// WithRedisTTL expires the stored snapshot after d. Zero means no expiration.
func WithRedisTTL(d time.Duration) RedisPersisterOption {
	return func(p *RedisPersister) {
		if d >= 0 {
			p.ttl = d
		}
	}
}

// NewRedisPersister creates a persister backed by client.
// Panics if client is nil.
func NewRedisPersister(client RedisClient, opts ...RedisPersisterOption) *RedisPersister {
	if client == nil {
		panic("store: redis client is required")
	}
	p := &RedisPersister{
		client: client,
		key:    DefaultRedisKey,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Load reads the snapshot; a missing key is not an error.
func (p *RedisPersister) Load(ctx context.Context) (Snapshot, bool, error) {
	data, err := p.client.Get(ctx, p.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, err
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, false, err
	}
	return snap, true, nil
}

// Save writes the snapshot.
func (p *RedisPersister) Save(ctx context.Context, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return p.client.Set(ctx, p.key, data, p.ttl).Err()
}
