// Package cache holds the shared response cache for catalog reads.
package cache

import (
	"context"
	"time"
)

// Store is a byte-level TTL cache
type Store interface {
	// Get returns the cached value; ok is false on a miss or expired entry
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Set stores value for ttl
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// DeletePrefix removes every key starting with prefix
	DeletePrefix(ctx context.Context, prefix string) error
	// Close releases resources
	Close() error
}
