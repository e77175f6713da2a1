package repository

import (
	"time"

	"arwikicats/config"

	"github.com/google/wire"
)

// Wire 依賴提供
var ProviderSet = wire.NewSet(
	NewLogRepository,
	NewQueryRepository,
)

func operationTimeout(config *config.Configuration) time.Duration {
	if config.Storage.OperationTimeout > 0 {
		return time.Duration(config.Storage.OperationTimeout) * time.Millisecond
	}
	return 10 * time.Second
}

func retryAttempts(config *config.Configuration) int {
	if config.Storage.RetryAttempts > 0 {
		return config.Storage.RetryAttempts
	}
	return 5
}
