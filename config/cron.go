package config

type Cron struct {
	Enabled bool `mapstructure:"ENABLED" json:"enabled" yaml:"enabled"`
	// WAL checkpoint + PRAGMA optimize
	MaintenanceSpec string `mapstructure:"MAINTENANCE_SPEC" json:"maintenance_spec" yaml:"maintenance_spec"`
	// 每日統計摘要
	SummarySpec string `mapstructure:"SUMMARY_SPEC" json:"summary_spec" yaml:"summary_spec"`
}
