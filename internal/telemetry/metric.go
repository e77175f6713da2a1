package telemetry

import (
	"arwikicats/config"
	"arwikicats/internal/core"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric struct；未啟用時所有欄位為 nil，呼叫端需先判斷
type Metric struct {
	HttpRequestsTotal     *prometheus.CounterVec
	HttpRequestDuration   *prometheus.HistogramVec
	LookupTotal           *prometheus.CounterVec
	ResolveDuration       *prometheus.HistogramVec
	StorageWriteFailTotal *prometheus.CounterVec
	RateLimitedTotal      *prometheus.CounterVec
	config                *config.Configuration
}

// NewMetric 建立所有指標
func NewMetric(config *config.Configuration) *Metric {
	if config == nil || !config.Telemetry.Metric.Enabled {
		return &Metric{}
	}
	buckets := prometheus.DefBuckets
	if len(config.Telemetry.Metric.Buckets) > 0 {
		buckets = config.Telemetry.Metric.Buckets
	}
	return &Metric{
		config: config,
		HttpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricName(config, core.MetricHttpRequestsTotal),
				Help: "Total received API requests",
			},
			labelNames(core.MetricLabelEndpoint, core.MetricLabelStatus),
		),
		HttpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricName(config, core.MetricHttpRequestDuration),
				Help:    "API request duration (seconds)",
				Buckets: buckets,
			},
			labelNames(core.MetricLabelEndpoint),
		),
		LookupTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricName(config, core.MetricLookupTotal),
				Help: "Resolved titles by outcome (ok / no_label / error)",
			},
			labelNames(core.MetricLabelEndpoint, core.MetricLabelStatus),
		),
		ResolveDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricName(config, core.MetricResolveDuration),
				Help:    "Label resolver call duration (seconds)",
				Buckets: buckets,
			},
			labelNames(core.MetricLabelEndpoint),
		),
		StorageWriteFailTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricName(config, core.MetricStorageWriteFailTotal),
				Help: "Request log rows that could not be written",
			},
			labelNames(core.MetricLabelTable, core.MetricLabelReason),
		),
		RateLimitedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricName(config, core.MetricRateLimitTotal),
				Help: "Requests rejected by the rate limiter",
			},
			labelNames(core.MetricLabelEndpoint),
		),
	}
}

func metricName(config *config.Configuration, name core.MetricName) string {
	return config.App.Name + "_" + string(name)
}

// labelNames helper: LabelName slice 轉成 []string
func labelNames(labels ...core.MetricLabelName) []string {
	strs := make([]string, len(labels))
	for i, l := range labels {
		strs[i] = string(l)
	}
	return strs
}
