package command

import (
	"context"
	"time"

	"arwikicats/internal/core"
	"arwikicats/internal/database/client"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type dateBackfiller interface {
	BackfillDateOnly(ctx context.Context) (map[core.SqliteTable]int64, error)
}

type MigrateHandler struct {
	logger  *zap.Logger
	storage dateBackfiller
}

func NewMigrateHandler(logger *zap.Logger, sqliteClient *client.SqliteClient) *MigrateHandler {
	return &MigrateHandler{logger: logger, storage: sqliteClient}
}

// Migrate 舊資料表補上 date_only 欄位並回填；可重複執行
func (handler *MigrateHandler) Migrate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
	defer cancel()

	updated, err := handler.storage.BackfillDateOnly(ctx)
	if err != nil {
		handler.logger.Error("date_only backfill failed", zap.Error(err))
		return err
	}
	for _, table := range core.SqliteTables {
		handler.logger.Info("date_only backfilled", zap.String("table", string(table)), zap.Int64("rows", updated[table]))
		cmd.Printf("%s: %d rows backfilled\n", table, updated[table])
	}
	return nil
}
