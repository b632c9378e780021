package domain

import (
	"context"
	"time"
)

// Cache defines the key-value operations backing short-lived server
// state such as admin session tokens. Implementations translate their
// native miss signal to ErrCacheMiss.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
