// Package cache provides the tag-domain page cache backing the review UI.
// Cached views are tagged with one or more invalidation domains; mutating
// data in a domain forces the next read of every view tagged with it to
// re-fetch.
package cache

import (
	"context"
	"time"
)

// Invalidation domains recognized by the review page.
const (
	DomainField   = "field"
	DomainStats   = "stats"
	DomainChat    = "chat"
	DomainDefault = "default"
)

// Store is a tagged key/value cache. Implementations: Redis for shared
// deployments, Memory for single-process ones.
type Store interface {
	// Get returns the cached value and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key, tagged with the given domains. Untagged
	// entries land in the default domain.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration, domains ...string) error
	// Invalidate drops every entry tagged with any of the given domains.
	Invalidate(ctx context.Context, domains ...string) error
	Close() error
}
