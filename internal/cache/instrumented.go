package cache

import (
	"context"
	"time"
)

// Backend is the contract shared by Cache and Noop.
type Backend interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// HitCounter receives cache hit and miss events.
type HitCounter interface {
	IncCacheHits()
	IncCacheMisses()
}

// Instrumented counts the hits and misses of the wrapped Backend.
type Instrumented struct {
	Backend
	counter HitCounter
}

// NewInstrumented wraps b.
func NewInstrumented(b Backend, counter HitCounter) *Instrumented {
	return &Instrumented{Backend: b, counter: counter}
}

// Get delegates to the wrapped Backend and records the outcome.
func (c *Instrumented) Get(ctx context.Context, key string, result any) (bool, error) {
	found, err := c.Backend.Get(ctx, key, result)
	if err != nil {
		return false, err
	}
	if found {
		c.counter.IncCacheHits()
	} else {
		c.counter.IncCacheMisses()
	}
	return found, nil
}
