package reports

import (
	"context"
	"time"
)

// CachePort cache opcional para el dashboard (implementado sobre Redis).
// Get devuelve (nil, nil) en cache miss. Un error de cache nunca debe tumbar
// el request: el caller lo loguea y sigue contra la BD.
type CachePort interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
