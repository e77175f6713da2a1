package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"arwikicats/config"
	"arwikicats/internal/core"
	client "arwikicats/internal/database/client"
	"arwikicats/internal/telemetry"

	"github.com/redis/go-redis/v9"
)

// 快取值：找到標籤為 "1:<label>"，確認沒有標籤為 "0:"
const (
	labelFoundPrefix   = "1:"
	labelMissingMarker = "0:"
)

// LabelCacheRepository 快取標題解析結果
type LabelCacheRepository struct {
	trace  *telemetry.Trace
	client *redis.Client
	ttl    time.Duration
}

func NewLabelCacheRepository(trace *telemetry.Trace, config *config.Configuration, client *client.RedisClient) *LabelCacheRepository {
	ttl := time.Duration(config.Redis.LabelTTL) * time.Second
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &LabelCacheRepository{trace: trace, client: client.Client(), ttl: ttl}
}

func (repository *LabelCacheRepository) Enabled() bool {
	return repository.client != nil
}

// Get hit=false 表示快取中沒有此標題
func (repository *LabelCacheRepository) Get(
	contextValue context.Context,
	title string,
) (label string, found bool, hit bool, returnedError error) {

	if repository.client == nil {
		return "", false, false, ErrRedisDisabled
	}

	contextValue, span, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()

	value, getError := repository.client.Get(contextValue, repository.buildKey(title)).Result()
	if errors.Is(getError, redis.Nil) {
		repository.trace.ApplyTraceAttributes(span, core.TraceLookupMeta{Title: title})
		return "", false, false, nil
	}
	if getError != nil {
		returnedError = getError
		return "", false, false, returnedError
	}

	label, found, returnedError = decodeLabel(value)
	if returnedError != nil {
		return "", false, false, returnedError
	}
	repository.trace.ApplyTraceAttributes(span, core.TraceLookupMeta{Title: title, Found: found, CacheHit: true})
	return label, found, true, nil
}

// Set 寫入解析結果；解析失敗不應寫入
func (repository *LabelCacheRepository) Set(
	contextValue context.Context,
	title string,
	label string,
	found bool,
) (returnedError error) {

	if repository.client == nil {
		return ErrRedisDisabled
	}

	contextValue, span, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()
	repository.trace.ApplyTraceAttributes(span, core.TraceLookupMeta{Title: title, Found: found})

	returnedError = repository.client.Set(contextValue, repository.buildKey(title), encodeLabel(label, found), repository.ttl).Err()
	return returnedError
}

// buildKey 標題可能很長且含任意字元，以 sha256 作為 key
func (repository *LabelCacheRepository) buildKey(title string) string {
	return buildLabelKey(title)
}

func buildLabelKey(title string) string {
	sum := sha256.Sum256([]byte(title))
	return fmt.Sprintf("%s:%s:%s", core.RedisKeyServerName, core.RedisKeyLabel, hex.EncodeToString(sum[:]))
}

func encodeLabel(label string, found bool) string {
	if !found {
		return labelMissingMarker
	}
	return labelFoundPrefix + label
}

func decodeLabel(value string) (string, bool, error) {
	switch {
	case value == labelMissingMarker:
		return "", false, nil
	case strings.HasPrefix(value, labelFoundPrefix):
		return strings.TrimPrefix(value, labelFoundPrefix), true, nil
	default:
		return "", false, fmt.Errorf("unexpected label cache value %q", value)
	}
}
