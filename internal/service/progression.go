package service

import (
	"career_coach_backend/internal/model"
	"time"
)

// ProgressionState 用户的积分/连续天数状态
type ProgressionState struct {
	Points     int       `json:"points"`
	Streak     int       `json:"streak"`
	LastActive time.Time `json:"lastActive"`
}

// ProgressionFromUser 从用户记录中读取成长状态
func ProgressionFromUser(u *model.User) ProgressionState {
	return ProgressionState{
		Points:     u.Points,
		Streak:     u.Streak,
		LastActive: u.LastActive,
	}
}

// DayGap 两个时间点之间相差的 UTC 日历天数（to - from）
func DayGap(from, to time.Time) int {
	f := utcMidnight(from)
	t := utcMidnight(to)
	return int(t.Sub(f).Hours() / 24)
}

func utcMidnight(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// ApplyStreak 按日间隔更新连续天数：
// 间隔 1 天 +1，超过 1 天重置为 1，同一天仅在 streak 为 0 时置 1。
// 时钟回拨（负间隔）按同一天处理。
func ApplyStreak(state *ProgressionState, now time.Time) {
	gap := DayGap(state.LastActive, now)
	switch {
	case gap == 1:
		state.Streak++
	case gap > 1:
		state.Streak = 1
	default:
		if state.Streak == 0 {
			state.Streak = 1
		}
	}
	state.LastActive = now
}

// ApplyActivity 对成长状态应用一次活动：加积分，必要时推进连续天数
func (t *PointTable) ApplyActivity(state *ProgressionState, at model.ActivityType, now time.Time) (int, error) {
	award, err := t.Award(at)
	if err != nil {
		return 0, err
	}
	if t.StreakEligible(at) {
		ApplyStreak(state, now)
	}
	state.Points += award
	return award, nil
}
