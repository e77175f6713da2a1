package client

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"arwikicats/config"
	"arwikicats/internal/core"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SqliteClient 管理請求紀錄資料庫與其 schema
type SqliteClient struct {
	db     *sql.DB
	path   string
	logger *zap.Logger
}

func NewSqliteClient(logger *zap.Logger, config *config.Configuration) (*SqliteClient, func(), error) {
	sqliteClient, err := OpenSqlite(logger, config.Storage)
	if err != nil {
		logger.Error("failed to open SQLite", zap.String("path", config.Storage.Path), zap.Error(err))
		return nil, nil, err
	}
	logger.Info("Connected to SQLite", zap.String("path", sqliteClient.path))

	cleanup := func() {
		logger.Info("closing the SQLite resources")
		if err := sqliteClient.Close(); err != nil {
			logger.Error("failed to close SQLite client", zap.Error(err))
		}
	}
	return sqliteClient, cleanup, nil
}

// OpenSqlite 開啟（必要時建立）資料庫檔案並確保 schema 存在。
// 任何失敗皆包成 core.ErrStorageInit。
func OpenSqlite(logger *zap.Logger, storage config.Storage) (*SqliteClient, error) {
	if storage.Path == "" {
		return nil, fmt.Errorf("%w: empty database path", core.ErrStorageInit)
	}
	dir := filepath.Dir(storage.Path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("%w: create database directory: %w", core.ErrStorageInit, err)
		}
	}

	db, err := sql.Open("sqlite", buildSqliteDSN(storage))
	if err != nil {
		return nil, fmt.Errorf("%w: open database: %w", core.ErrStorageInit, err)
	}
	if storage.MaxOpenConns > 0 {
		db.SetMaxOpenConns(storage.MaxOpenConns)
	}

	ctx, cancel := context.WithTimeout(context.Background(), operationTimeout(storage))
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: connect database: %w", core.ErrStorageInit, err)
	}

	sqliteClient := &SqliteClient{db: db, path: storage.Path, logger: logger}
	if err := sqliteClient.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return sqliteClient, nil
}

// busy_timeout 需要套用在每條連線上，因此放在 DSN
func buildSqliteDSN(storage config.Storage) string {
	busyTimeout := storage.BusyTimeout
	if busyTimeout <= 0 {
		busyTimeout = 5000
	}
	return fmt.Sprintf(
		"%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)",
		storage.Path, busyTimeout,
	)
}

func operationTimeout(storage config.Storage) time.Duration {
	if storage.OperationTimeout > 0 {
		return time.Duration(storage.OperationTimeout) * time.Millisecond
	}
	return 10 * time.Second
}

// EnsureSchema 建立 logs / list_logs（已存在則不動），舊表補上 date_only 欄位並回填
func (client *SqliteClient) EnsureSchema(ctx context.Context) error {
	for _, table := range core.SqliteTables {
		query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			endpoint TEXT NOT NULL,
			request_data TEXT NOT NULL,
			response_status TEXT NOT NULL,
			response_time REAL NOT NULL DEFAULT 0,
			response_count INTEGER NOT NULL DEFAULT 0,
			timestamp TEXT NOT NULL,
			date_only TEXT
		)`, table)
		if _, err := client.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("%w: create table %s: %w", core.ErrStorageInit, table, err)
		}

		if _, err := client.addDateOnlyColumn(ctx, table); err != nil {
			return fmt.Errorf("%w: %w", core.ErrStorageInit, err)
		}
		n, err := client.backfillDateOnly(ctx, table)
		if err != nil {
			return fmt.Errorf("%w: %w", core.ErrStorageInit, err)
		}
		if n > 0 {
			client.logger.Info("backfilled date_only", zap.String("table", string(table)), zap.Int64("rows", n))
		}

		indexes := fmt.Sprintf(`
		CREATE INDEX IF NOT EXISTS idx_%[1]s_date_only ON %[1]s(date_only);
		CREATE INDEX IF NOT EXISTS idx_%[1]s_response_status ON %[1]s(response_status);
		`, table)
		if _, err := client.db.ExecContext(ctx, indexes); err != nil {
			return fmt.Errorf("%w: create indexes on %s: %w", core.ErrStorageInit, table, err)
		}
	}
	return nil
}

// addDateOnlyColumn 舊版資料表沒有 date_only 時補上；回傳是否有新增
func (client *SqliteClient) addDateOnlyColumn(ctx context.Context, table core.SqliteTable) (bool, error) {
	exists, err := client.hasColumn(ctx, table, "date_only")
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	if _, err := client.db.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s ADD COLUMN date_only TEXT", table)); err != nil {
		return false, fmt.Errorf("add date_only to %s: %w", table, err)
	}
	client.logger.Info("added date_only column", zap.String("table", string(table)))
	return true, nil
}

func (client *SqliteClient) hasColumn(ctx context.Context, table core.SqliteTable, column string) (bool, error) {
	rows, err := client.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("table_info %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

// BackfillDateOnly 以 DATE(timestamp) 回填缺少 date_only 的舊資料，回傳更新筆數
func (client *SqliteClient) BackfillDateOnly(ctx context.Context) (map[core.SqliteTable]int64, error) {
	updated := make(map[core.SqliteTable]int64, len(core.SqliteTables))
	for _, table := range core.SqliteTables {
		if _, err := client.addDateOnlyColumn(ctx, table); err != nil {
			return updated, err
		}
		n, err := client.backfillDateOnly(ctx, table)
		if err != nil {
			return updated, err
		}
		updated[table] = n
	}
	return updated, nil
}

// backfillDateOnly 只更新 date_only 為空的列，可重複執行
func (client *SqliteClient) backfillDateOnly(ctx context.Context, table core.SqliteTable) (int64, error) {
	result, err := client.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE %s SET date_only = DATE(timestamp) WHERE date_only IS NULL OR date_only = ''", table))
	if err != nil {
		return 0, fmt.Errorf("backfill %s: %w", table, err)
	}
	n, _ := result.RowsAffected()
	return n, nil
}

// Checkpoint 把 WAL 併回主檔並截斷
func (client *SqliteClient) Checkpoint(ctx context.Context) error {
	_, err := client.db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)")
	return err
}

// Optimize 讓 SQLite 依統計資訊更新查詢計畫
func (client *SqliteClient) Optimize(ctx context.Context) error {
	_, err := client.db.ExecContext(ctx, "PRAGMA optimize")
	return err
}

// Close 關閉前先做一次 checkpoint
func (client *SqliteClient) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Checkpoint(ctx); err != nil {
		client.logger.Warn("wal checkpoint on close failed", zap.Error(err))
	}
	return client.db.Close()
}

// DB 回傳 *sql.DB
func (client *SqliteClient) DB() *sql.DB {
	return client.db
}

// Ping 供 readiness 檢查
func (client *SqliteClient) Ping(ctx context.Context) error {
	return client.db.PingContext(ctx)
}
