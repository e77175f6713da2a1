package model

// LookupLog 與 SQLite 請求紀錄同欄位；SQLite 寫入失敗時亦作為備援
type LookupLog struct {
	Table          string  `json:"table"`
	Endpoint       string  `json:"endpoint"`
	RequestData    string  `json:"request_data"`
	ResponseStatus string  `json:"response_status"`
	ResponseTime   float64 `json:"response_time"`
	ResponseCount  int     `json:"response_count"`
	LogID          int64   `json:"log_id,omitempty"`
	StorageError   string  `json:"storage_error,omitempty"`
	Version        string  `json:"version,omitempty"`
	LoggedAt       string  `json:"logged_at"`
}
