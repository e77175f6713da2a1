package model

// LogEntry logs / list_logs 的一列
type LogEntry struct {
	ID             int64   `json:"id"`
	Endpoint       string  `json:"endpoint"`
	RequestData    string  `json:"request_data"`
	ResponseStatus string  `json:"response_status"`
	ResponseTime   float64 `json:"response_time"`
	ResponseCount  int     `json:"response_count"`
	Timestamp      string  `json:"timestamp"`
	DateOnly       string  `json:"date_only"`
}

type DayCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// DailyStatusCount 某天某狀態群組的筆數與 response_count 總和
type DailyStatusCount struct {
	Day         string `json:"day"`
	StatusGroup string `json:"status_group"`
	TitleCount  int64  `json:"title_count"`
	Count       int64  `json:"count"`
}

// TitleTotals 依每個標題最後一次狀態統計的不重複標題數
type TitleTotals struct {
	SumAll        int64 `json:"sum_all"`
	SumDataResult int64 `json:"sum_data_result"`
	SumNoResult   int64 `json:"sum_no_result"`
}
