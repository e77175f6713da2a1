package config

// Resolver 外部分類標籤解析服務
type Resolver struct {
	URL       string `mapstructure:"URL" json:"url" yaml:"url"`
	Timeout   int64  `mapstructure:"TIMEOUT" json:"timeout" yaml:"timeout"` // 毫秒
	UserAgent string `mapstructure:"USER_AGENT" json:"user_agent" yaml:"user_agent"`
}
