// Package cache provides an optional TTL cache for verdicts, backed by
// Redis. Classification is deterministic for a fixed model and trust list,
// so repeated scans of the same URL can be answered from cache. The cache is
// strictly an accelerator: every method is nil-safe and a cache failure
// degrades to recomputing the verdict.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/darklord8515/PhishBuster/pkg/detect"
)

const keyPrefix = "phishbuster:verdict:"

// VerdictCache wraps a Redis client with verdict marshalling and TTLs.
type VerdictCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects a verdict cache. An empty addr disables caching and returns
// nil, which every method accepts.
func New(addr string, ttl time.Duration) *VerdictCache {
	if addr == "" {
		return nil
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &VerdictCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

// Get returns the cached verdict for the key, or (nil, false) on miss,
// disabled cache, or any Redis/decode error.
func (c *VerdictCache) Get(ctx context.Context, key string) (*detect.Verdict, bool) {
	if c == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		return nil, false
	}

	var v detect.Verdict
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, false
	}
	return &v, true
}

// Set stores a verdict under the key for the configured TTL. Errors are
// swallowed: a broken cache must never fail a classification.
func (c *VerdictCache) Set(ctx context.Context, key string, v *detect.Verdict) {
	if c == nil || v == nil {
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.client.Set(ctx, keyPrefix+key, data, c.ttl)
}

// Close releases the Redis connection.
func (c *VerdictCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
