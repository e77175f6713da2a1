package core

import "time"

const (
	DayLayout       = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05.000000"
)

// IsDay 是否為 YYYY-MM-DD
func IsDay(s string) bool {
	_, err := time.Parse(DayLayout, s)
	return err == nil
}
