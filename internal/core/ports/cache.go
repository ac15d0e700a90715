package ports

import "context"

// Cache stores encoded upstream lookups for a short time. Implementations
// treat every failure as a miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
}
