package config

// Storage SQLite 請求紀錄資料庫
type Storage struct {
	// 資料庫檔案路徑；空值時依 HOME 推導
	Path string `mapstructure:"PATH" json:"path" yaml:"path"`
	// SQLite busy_timeout（毫秒）
	BusyTimeout int64 `mapstructure:"BUSY_TIMEOUT" json:"busy_timeout" yaml:"busy_timeout"`
	// 單次讀寫操作的逾時（毫秒）
	OperationTimeout int64 `mapstructure:"OPERATION_TIMEOUT" json:"operation_timeout" yaml:"operation_timeout"`
	MaxOpenConns     int   `mapstructure:"MAX_OPEN_CONNS" json:"max_open_conns" yaml:"max_open_conns"`
	// 遇到 SQLITE_BUSY 時的最大嘗試次數
	RetryAttempts int `mapstructure:"RETRY_ATTEMPTS" json:"retry_attempts" yaml:"retry_attempts"`
}
