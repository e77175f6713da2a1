package model

type ResponseLog struct {
	RequestID  string  `json:"request_id"`
	Path       string  `json:"path"`
	Code       int     `json:"code"`
	StatusCode int     `json:"status_code"`
	Body       string  `json:"body,omitempty"`
	Error      string  `json:"error,omitempty"`
	LatencyMs  float64 `json:"latency_ms"`
	Version    string  `json:"version,omitempty"`
	ResponseTS string  `json:"response_ts"`
	LoggedAt   string  `json:"logged_at"`
}
