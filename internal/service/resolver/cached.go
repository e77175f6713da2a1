package resolver

import (
	"context"

	"arwikicats/internal/telemetry"

	"go.uber.org/zap"
)

// LabelCache 由 redis LabelCacheRepository 實作
type LabelCache interface {
	Get(ctx context.Context, title string) (label string, found bool, hit bool, err error)
	Set(ctx context.Context, title string, label string, found bool) error
}

// CachedResolver 先查快取；快取錯誤只記 log 並退回內層 resolver。解析失敗不寫入快取。
type CachedResolver struct {
	trace  *telemetry.Trace
	logger *zap.Logger
	inner  Resolver
	cache  LabelCache
}

func NewCachedResolver(trace *telemetry.Trace, logger *zap.Logger, inner Resolver, cache LabelCache) *CachedResolver {
	return &CachedResolver{trace: trace, logger: logger, inner: inner, cache: cache}
}

func (s *CachedResolver) Resolve(ctx context.Context, title string) (label string, found bool, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx, "resolver.cached")
	defer func() { end(returnedError) }()

	cachedLabel, cachedFound, hit, err := s.cache.Get(ctx, title)
	if err != nil {
		s.logger.Warn("label cache read failed", zap.String("title", title), zap.Error(err))
	} else if hit {
		return cachedLabel, cachedFound, nil
	}

	label, found, returnedError = s.inner.Resolve(ctx, title)
	if returnedError != nil {
		return "", false, returnedError
	}
	if err := s.cache.Set(ctx, title, label, found); err != nil {
		s.logger.Warn("label cache write failed", zap.String("title", title), zap.Error(err))
	}
	return label, found, nil
}
