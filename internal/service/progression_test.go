package service

import (
	"career_coach_backend/internal/model"
	"career_coach_backend/internal/util"
	"errors"
	"testing"
	"time"
)

func day(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func TestApplyStreak(t *testing.T) {
	last := day(2024, 3, 10, 22)
	cases := []struct {
		name       string
		streak     int
		now        time.Time
		wantStreak int
	}{
		{"next day increments", 4, day(2024, 3, 11, 1), 5},
		{"two days later resets", 4, day(2024, 3, 12, 9), 1},
		{"much later resets", 9, day(2024, 6, 1, 9), 1},
		{"same day keeps nonzero", 4, day(2024, 3, 10, 23), 4},
		{"same day initializes zero", 0, day(2024, 3, 10, 23), 1},
		{"clock skew treated as same day", 3, day(2024, 3, 9, 12), 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			state := ProgressionState{Streak: tc.streak, LastActive: last}
			ApplyStreak(&state, tc.now)
			if state.Streak != tc.wantStreak {
				t.Fatalf("streak=%d, want %d", state.Streak, tc.wantStreak)
			}
			if !state.LastActive.Equal(tc.now) {
				t.Fatalf("lastActive=%v, want %v", state.LastActive, tc.now)
			}
		})
	}
}

func TestDayGapUsesCalendarDays(t *testing.T) {
	// 相隔不到 24 小时，但跨了 UTC 日期
	if got := DayGap(day(2024, 1, 1, 23), day(2024, 1, 2, 0)); got != 1 {
		t.Fatalf("gap=%d, want 1", got)
	}
	// 相隔接近 48 小时，只差一个日历日
	if got := DayGap(day(2024, 1, 1, 0), day(2024, 1, 2, 23)); got != 1 {
		t.Fatalf("gap=%d, want 1", got)
	}
	shanghai := time.FixedZone("CST", 8*3600)
	from := time.Date(2024, 1, 2, 7, 0, 0, 0, shanghai) // 2024-01-01 23:00 UTC
	if got := DayGap(from, day(2024, 1, 2, 1)); got != 1 {
		t.Fatalf("gap across zones=%d, want 1", got)
	}
}

func TestPointTableApplyActivity(t *testing.T) {
	table, err := NewPointTable(nil, nil)
	if err != nil {
		t.Fatalf("NewPointTable: %v", err)
	}
	last := day(2024, 5, 1, 10)

	state := ProgressionState{Points: 100, Streak: 2, LastActive: last}
	awarded, err := table.ApplyActivity(&state, model.ActivityTimelineSave, day(2024, 5, 2, 10))
	if err != nil {
		t.Fatalf("ApplyActivity: %v", err)
	}
	if awarded != 20 || state.Points != 120 {
		t.Fatalf("awarded=%d points=%d", awarded, state.Points)
	}
	if state.Streak != 2 || !state.LastActive.Equal(last) {
		t.Fatalf("non-streak activity changed streak state: %+v", state)
	}

	awarded, err = table.ApplyActivity(&state, model.ActivityDailyStreak, day(2024, 5, 2, 11))
	if err != nil {
		t.Fatalf("ApplyActivity: %v", err)
	}
	if awarded != 10 || state.Points != 130 || state.Streak != 3 {
		t.Fatalf("after streak: awarded=%d state=%+v", awarded, state)
	}

	before := state
	if _, err := table.ApplyActivity(&state, model.ActivityType("DANCE"), day(2024, 5, 3, 0)); !errors.Is(err, util.ErrInvalidInput) {
		t.Fatalf("unknown type err=%v, want ErrInvalidInput", err)
	}
	if state != before {
		t.Fatalf("state changed on rejected activity")
	}
}

func TestNewPointTableOverrides(t *testing.T) {
	table, err := NewPointTable(map[string]int{"milestone_complete": 80}, []string{"daily_streak", "review_post"})
	if err != nil {
		t.Fatalf("NewPointTable: %v", err)
	}
	if p, _ := table.Award(model.ActivityMilestoneComplete); p != 80 {
		t.Fatalf("override not applied: %d", p)
	}
	if p, _ := table.Award(model.ActivityJobSearch); p != 5 {
		t.Fatalf("default lost: %d", p)
	}
	if !table.StreakEligible(model.ActivityReviewPost) || table.StreakEligible(model.ActivityJobSearch) {
		t.Fatalf("streak types not applied")
	}

	if _, err := NewPointTable(map[string]int{"JOB_SEARCH": -1}, nil); err == nil {
		t.Fatalf("negative award accepted")
	}
	if _, err := NewPointTable(nil, []string{"UNKNOWN"}); err == nil {
		t.Fatalf("unknown streak type accepted")
	}
}
