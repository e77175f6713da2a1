package command

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"arwikicats/internal/core"
	"arwikicats/internal/database/sqlite/model"
	"arwikicats/internal/service"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	noLabStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB86C"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555"))
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

type logStats interface {
	CountsByDay(ctx context.Context, table core.SqliteTable) ([]model.DayCount, error)
	StatusSummary(ctx context.Context, table core.SqliteTable) (map[string]int64, error)
}

type StatsHandler struct {
	stats logStats
}

func NewStatsHandler(logQueryService *service.LogQueryService) *StatsHandler {
	return &StatsHandler{stats: logQueryService}
}

func (handler *StatsHandler) Stats(cmd *cobra.Command, args []string) error {
	tableName, _ := cmd.Flags().GetString("table")
	width, _ := cmd.Flags().GetInt("width")
	table, err := core.ParseSqliteTable(tableName)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()

	counts, err := handler.stats.CountsByDay(ctx, table)
	if err != nil {
		return err
	}
	summary, err := handler.stats.StatusSummary(ctx, table)
	if err != nil {
		return err
	}

	cmd.Println(titleStyle.Render(fmt.Sprintf("%s per day", table)))
	cmd.Println(renderDayChart(counts, width))
	cmd.Println(renderStatusSummary(summary))
	return nil
}

func renderDayChart(counts []model.DayCount, width int) string {
	series, first, last := dailySeries(counts)
	if len(series) == 0 {
		return subtleStyle.Render("No data available")
	}
	if width < 20 {
		width = 20
	}
	caption := fmt.Sprintf("%s → %s (%d days)", first, last, len(series))
	return asciigraph.Plot(series,
		asciigraph.Height(10),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// dailySeries 從第一天到最後一天逐日展開，沒有紀錄的日期補 0；無法解析的日期略過
func dailySeries(counts []model.DayCount) ([]float64, string, string) {
	byDay := make(map[string]int64, len(counts))
	var first, last time.Time
	for _, c := range counts {
		day, err := time.Parse(core.DayLayout, c.Day)
		if err != nil {
			continue
		}
		byDay[c.Day] += c.Count
		if first.IsZero() || day.Before(first) {
			first = day
		}
		if day.After(last) {
			last = day
		}
	}
	if len(byDay) == 0 {
		return nil, "", ""
	}

	series := make([]float64, 0, int(last.Sub(first).Hours()/24)+1)
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		series = append(series, float64(byDay[day.Format(core.DayLayout)]))
	}
	return series, first.Format(core.DayLayout), last.Format(core.DayLayout)
}

// renderStatusSummary 依筆數遞減列出狀態，ok / no_label / error 各自上色
func renderStatusSummary(summary map[string]int64) string {
	if len(summary) == 0 {
		return boxStyle.Render(subtleStyle.Render("no rows"))
	}
	statuses := make([]string, 0, len(summary))
	var total int64
	for status, n := range summary {
		statuses = append(statuses, status)
		total += n
	}
	slices.SortFunc(statuses, func(a, b string) int {
		if summary[a] != summary[b] {
			if summary[a] > summary[b] {
				return -1
			}
			return 1
		}
		return strings.Compare(a, b)
	})

	lines := make([]string, 0, len(statuses)+1)
	for _, status := range statuses {
		style := errorStyle
		switch core.StatusGroup(status) {
		case core.LookupStatusOK:
			style = okStyle
		case core.LookupStatusNoLabel:
			style = noLabStyle
		}
		lines = append(lines, fmt.Sprintf("%-40s %s", style.Render(status), lipgloss.NewStyle().Width(8).Align(lipgloss.Right).Render(fmt.Sprint(summary[status]))))
	}
	lines = append(lines, subtleStyle.Render(fmt.Sprintf("total %d", total)))
	return boxStyle.Render(strings.Join(lines, "\n"))
}
