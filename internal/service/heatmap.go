package service

import (
	"career_coach_backend/internal/model"
	"career_coach_backend/internal/util"
	"time"
)

// DefaultHeatmapDays 贡献热力图默认窗口
const DefaultHeatmapDays = 365

// MaxHeatmapDays 单次热力图最多覆盖的天数（闰年一整年）
const MaxHeatmapDays = 366

// HeatmapCell 热力图中的一天
type HeatmapCell struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// BuildHeatmap 生成以 windowEnd 所在 UTC 日结束、长度为 windowLengthDays 的热力图，
// 按时间正序排列，没有记录的日期计数为 0。
func BuildHeatmap(days []model.ActivityDay, windowEnd time.Time, windowLengthDays int) ([]HeatmapCell, error) {
	if err := validateHeatmapWindow(windowLengthDays); err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(days))
	for _, d := range days {
		counts[d.Date] += d.Count
	}

	end := utcMidnight(windowEnd)
	cells := make([]HeatmapCell, windowLengthDays)
	for i := 0; i < windowLengthDays; i++ {
		key := end.AddDate(0, 0, i-windowLengthDays+1).Format(model.DateLayout)
		cells[i] = HeatmapCell{Date: key, Count: counts[key]}
	}
	return cells, nil
}

// HeatmapWindowStart 窗口内第一天的日期键
func HeatmapWindowStart(windowEnd time.Time, windowLengthDays int) string {
	return utcMidnight(windowEnd).AddDate(0, 0, 1-windowLengthDays).Format(model.DateLayout)
}

func validateHeatmapWindow(days int) error {
	if days <= 0 {
		return util.InvalidInputf("window length must be positive, got %d", days)
	}
	if days > MaxHeatmapDays {
		return util.InvalidInputf("window length %d exceeds %d days", days, MaxHeatmapDays)
	}
	return nil
}
