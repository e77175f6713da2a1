package database

import (
	client "arwikicats/internal/database/client"
	fluentdRepo "arwikicats/internal/database/fluentd/repository"
	redisRepo "arwikicats/internal/database/redis/repository"
	sqliteRepo "arwikicats/internal/database/sqlite/repository"

	"github.com/google/wire"
)

// ProviderSet 定義所有 DB Client 的依賴
var ProviderSet = wire.NewSet(
	client.NewSqliteClient,
	client.NewRedisClient,
	client.NewFluentdClient,
	sqliteRepo.ProviderSet,
	redisRepo.ProviderSet,
	fluentdRepo.ProviderSet,
)
