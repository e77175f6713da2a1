package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"arwikicats/config"
	"arwikicats/internal/core"
	"arwikicats/internal/database/client"
	"arwikicats/internal/telemetry"
)

// LogRepository 寫入路徑：每次 API 呼叫附加一列
type LogRepository struct {
	trace            *telemetry.Trace
	db               *sql.DB
	now              func() time.Time
	operationTimeout time.Duration
	retryAttempts    int

	// 同一程序內序列化寫入，跨程序交給 WAL + busy_timeout
	writeMutex sync.Mutex
}

func NewLogRepository(trace *telemetry.Trace, config *config.Configuration, sqliteClient *client.SqliteClient) *LogRepository {
	return &LogRepository{
		trace:            trace,
		db:               sqliteClient.DB(),
		now:              time.Now,
		operationTimeout: operationTimeout(config),
		retryAttempts:    retryAttempts(config),
	}
}

var insertStatements = func() map[core.SqliteTable]string {
	statements := make(map[core.SqliteTable]string, len(core.SqliteTables))
	for _, table := range core.SqliteTables {
		statements[table] = fmt.Sprintf(`INSERT INTO %s
			(endpoint, request_data, response_status, response_time, response_count, timestamp, date_only)
			VALUES (?, ?, ?, ?, ?, ?, ?)`, table)
	}
	return statements
}()

// LogRequest 寫入一列並回傳 id。批次端點寫入 list_logs，其餘寫入 logs。
// timestamp 取呼叫當下（UTC），date_only 為其日期部分。
func (repository *LogRepository) LogRequest(
	contextValue context.Context,
	endpoint string,
	requestData string,
	responseStatus string,
	responseTime float64,
	responseCount int,
) (insertedID int64, returnedError error) {

	contextValue, span, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()

	table := core.TableForEndpoint(endpoint)
	traceMetadata := core.TraceLogWriteMeta{
		Table:         string(table),
		Endpoint:      endpoint,
		Status:        responseStatus,
		ResponseTime:  responseTime,
		ResponseCount: responseCount,
	}

	if responseCount < 0 {
		returnedError = fmt.Errorf("%w: response_count must be non-negative, got %d", core.ErrInvalidQueryParam, responseCount)
		return 0, returnedError
	}

	now := repository.now().UTC()
	timestamp := now.Format(core.TimestampLayout)
	dateOnly := now.Format(core.DayLayout)

	contextValue, cancel := context.WithTimeout(contextValue, repository.operationTimeout)
	defer cancel()

	repository.writeMutex.Lock()
	defer repository.writeMutex.Unlock()

	insertedID, returnedError = retryBusy(contextValue, repository.retryAttempts, func() (int64, error) {
		traceMetadata.Attempts++
		result, err := repository.db.ExecContext(contextValue, insertStatements[table],
			endpoint, requestData, responseStatus, responseTime, responseCount, timestamp, dateOnly)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	})
	traceMetadata.InsertedID = insertedID
	repository.trace.ApplyTraceAttributes(span, traceMetadata)

	if returnedError != nil {
		returnedError = classify(returnedError, core.ErrStorageWrite)
		return 0, returnedError
	}
	return insertedID, nil
}
