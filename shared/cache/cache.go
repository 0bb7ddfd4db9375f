package cache

//go:generate go run go.uber.org/mock/mockgen -source=./cache.go -destination=./mocks/cache_mock.go -package=mocks

import (
	"context"
	"strings"
	"time"
)

const (
	otelScopeName         = "cache"
	otelCacheKeyAttribute = "cache.key"
)

// Counter counts hits per key inside a fixed window that starts with the first hit.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (count int, err error)
}

// BuildKey joins parts with ':' under prefix.
func BuildKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), ":")
}
