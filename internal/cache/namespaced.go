package cache

import (
	"context"
	"fmt"
	"time"
)

// Namespaced prefixes every key of the wrapped Backend. Each process uses its own
// namespace, so entries written against an earlier store are never read back.
type Namespaced struct {
	backend Backend
	prefix  string
}

// NewNamespaced wraps b under namespace.
func NewNamespaced(b Backend, namespace string) *Namespaced {
	return &Namespaced{backend: b, prefix: namespace + ":"}
}

// ProcessNamespace names the keys of a process started at start.
func ProcessNamespace(app string, start time.Time) string {
	return fmt.Sprintf("%s:%d", app, start.UnixNano())
}

func (c *Namespaced) Get(ctx context.Context, key string, result any) (bool, error) {
	return c.backend.Get(ctx, c.prefix+key, result)
}

func (c *Namespaced) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	return c.backend.Set(ctx, c.prefix+key, value, expiration)
}

func (c *Namespaced) Invalidate(ctx context.Context, key string) error {
	return c.backend.Invalidate(ctx, c.prefix+key)
}
