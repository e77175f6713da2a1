package config

// RateLimit 以 client IP 為單位限制批次查詢
type RateLimit struct {
	Enabled bool  `mapstructure:"ENABLED" json:"enabled" yaml:"enabled"`
	Window  int64 `mapstructure:"WINDOW" json:"window" yaml:"window"` // 秒
	Limit   int   `mapstructure:"LIMIT" json:"limit" yaml:"limit"`
}
