// SPDX-License-Identifier: MIT

// Package cache stores encoded distance matrices keyed by a digest of the
// request that produced them. Two backends are provided: an in-process TTL
// map and Redis.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a byte-value store with per-entry expiry. A zero ttl never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
}

// Memory is an in-process Cache. Expired entries are dropped on access.
type Memory struct {
	mu  sync.Mutex
	m   map[string]entry
	now func() time.Time
}

type entry struct {
	b   []byte
	exp time.Time
}

// NewMemory returns an empty Memory cache.
func NewMemory() *Memory {
	return &Memory{m: make(map[string]entry), now: time.Now}
}

// Get returns a copy of the stored value.
func (c *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.m[key]
	if !ok {
		return nil, false, nil
	}
	if !e.exp.IsZero() && c.now().After(e.exp) {
		delete(c.m, key)

		return nil, false, nil
	}

	return append([]byte(nil), e.b...), true, nil
}

// Set stores a copy of val.
func (c *Memory) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := entry{b: append([]byte(nil), val...)}
	if ttl > 0 {
		e.exp = c.now().Add(ttl)
	}
	c.m[key] = e

	return nil
}

// Len reports the number of stored entries, expired ones included.
func (c *Memory) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.m)
}

// Redis is a Cache backed by a go-redis client.
type Redis struct {
	r      *redis.Client
	prefix string
}

// DefaultPrefix namespaces keys written by Redis.
const DefaultPrefix = "tsdist:"

// NewRedis wraps an existing client.
func NewRedis(r *redis.Client) *Redis {
	return &Redis{r: r, prefix: DefaultPrefix}
}

// DialRedis connects to addr/db and checks the connection with PING.
func DialRedis(ctx context.Context, addr string, db int) (*Redis, error) {
	r := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	if err := r.Ping(ctx).Err(); err != nil {
		_ = r.Close()

		return nil, err
	}

	return NewRedis(r), nil
}

// Get returns (nil, false, nil) on a miss.
func (c *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := c.r.Get(ctx, c.prefix+key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, false, nil
	case err != nil:
		return nil, false, err
	}

	return v, true, nil
}

// Set writes val with the given expiry.
func (c *Redis) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return c.r.Set(ctx, c.prefix+key, val, ttl).Err()
}

// Close closes the underlying client.
func (c *Redis) Close() error { return c.r.Close() }

// Key digests a request: the metric, its encoded parameters and both
// collections. x2 == nil and an empty x2 hash differently.
func Key(metric string, params []byte, x1, x2 [][]float64) string {
	h := sha256.New()
	var buf [8]byte
	writeBytes := func(b []byte) {
		binary.LittleEndian.PutUint64(buf[:], uint64(len(b)))
		h.Write(buf[:])
		h.Write(b)
	}
	writeCollection := func(xs [][]float64) {
		if xs == nil {
			binary.LittleEndian.PutUint64(buf[:], math.MaxUint64)
			h.Write(buf[:])

			return
		}
		binary.LittleEndian.PutUint64(buf[:], uint64(len(xs)))
		h.Write(buf[:])
		for _, x := range xs {
			binary.LittleEndian.PutUint64(buf[:], uint64(len(x)))
			h.Write(buf[:])
			for _, v := range x {
				binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
				h.Write(buf[:])
			}
		}
	}

	writeBytes([]byte(metric))
	writeBytes(params)
	writeCollection(x1)
	writeCollection(x2)

	return hex.EncodeToString(h.Sum(nil))
}
