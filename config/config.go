package config

import (
	"os"
	"path/filepath"
)

type Configuration struct {
	App       App             `mapstructure:"APP" json:"app" yaml:"app"`
	Log       Log             `mapstructure:"LOG" json:"log" yaml:"log"`
	Storage   Storage         `mapstructure:"STORAGE" json:"storage" yaml:"storage"`
	Resolver  Resolver        `mapstructure:"RESOLVER" json:"resolver" yaml:"resolver"`
	Redis     Redis           `mapstructure:"REDIS" json:"redis" yaml:"redis"`
	Telemetry TelemetryConfig `mapstructure:"TELEMETRY" yaml:"telemetry"`
	Fluentd   Fluentd         `mapstructure:"FLUENTD" yaml:"fluentd"`
	Cron      Cron            `mapstructure:"CRON" json:"cron" yaml:"cron"`
	RateLimit RateLimit       `mapstructure:"RATE_LIMIT" json:"rate_limit" yaml:"rate_limit"`
}

var defaultAllowOrigins = []string{
	"https://ar.wikipedia.org",
	"https://www.ar.wikipedia.org",
}

// ApplyDefaults 補齊未設定的欄位
func (c *Configuration) ApplyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "arwikicats"
	}
	if c.App.Port == 0 {
		c.App.Port = 8000
	}
	if len(c.App.AllowOrigins) == 0 {
		c.App.AllowOrigins = defaultAllowOrigins
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	if c.Storage.Path == "" {
		c.Storage.Path = DefaultStoragePath(os.Getenv("HOME"))
	}
	if c.Storage.BusyTimeout <= 0 {
		c.Storage.BusyTimeout = 5000
	}
	if c.Storage.OperationTimeout <= 0 {
		c.Storage.OperationTimeout = 10000
	}
	if c.Storage.MaxOpenConns <= 0 {
		c.Storage.MaxOpenConns = 4
	}
	if c.Storage.RetryAttempts <= 0 {
		c.Storage.RetryAttempts = 5
	}

	if c.Resolver.Timeout <= 0 {
		c.Resolver.Timeout = 10000
	}
	if c.Resolver.UserAgent == "" {
		c.Resolver.UserAgent = c.App.Name + "/" + c.App.Version
	}
	if c.Redis.LabelTTL <= 0 {
		c.Redis.LabelTTL = 86400
	}

	if c.Cron.MaintenanceSpec == "" {
		c.Cron.MaintenanceSpec = "0 */30 * * * *"
	}
	if c.Cron.SummarySpec == "" {
		c.Cron.SummarySpec = "0 5 0 * * *"
	}

	if c.RateLimit.Window <= 0 {
		c.RateLimit.Window = 60
	}
	if c.RateLimit.Limit <= 0 {
		c.RateLimit.Limit = 30
	}
}

// DefaultStoragePath Toolforge 上放在 $HOME/www/python/dbs，本機則放在 ./data
func DefaultStoragePath(home string) string {
	if home != "" {
		return filepath.Join(home, "www", "python", "dbs", "new_logs.db")
	}
	return filepath.Join("data", "new_logs.db")
}
