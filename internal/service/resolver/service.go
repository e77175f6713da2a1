package resolver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"arwikicats/config"
	redisRepo "arwikicats/internal/database/redis/repository"
	"arwikicats/internal/telemetry"

	"go.uber.org/zap"
)

// Resolver 將英文分類標題解析成阿拉伯文標籤。
// found=false 且 err=nil 代表確定沒有對應標籤。
type Resolver interface {
	Resolve(ctx context.Context, title string) (label string, found bool, err error)
}

var ErrResolverURLMissing = errors.New("resolver url is not configured")

// NewResolver 依設定組出 Resolver；Redis 啟用時包一層快取
func NewResolver(
	trace *telemetry.Trace,
	logger *zap.Logger,
	config *config.Configuration,
	httpClient *http.Client,
	labelCache *redisRepo.LabelCacheRepository,
) (Resolver, error) {
	if config.Resolver.URL == "" {
		return nil, ErrResolverURLMissing
	}
	timeout := time.Duration(config.Resolver.Timeout) * time.Millisecond
	var resolver Resolver = NewHTTPResolver(trace, httpClient, config.Resolver.URL, config.Resolver.UserAgent, timeout)
	if labelCache != nil && labelCache.Enabled() {
		resolver = NewCachedResolver(trace, logger, resolver, labelCache)
	}
	return resolver, nil
}
