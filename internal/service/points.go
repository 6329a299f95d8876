package service

import (
	"career_coach_backend/internal/model"
	"career_coach_backend/internal/util"
	"sort"
	"strings"
)

// DefaultPoints 各活动类型的积分奖励，可通过配置 ledger.points 覆盖
var DefaultPoints = map[model.ActivityType]int{
	model.ActivityDailyStreak:          10,
	model.ActivityTimelineSave:         20,
	model.ActivityReviewPost:           15,
	model.ActivityInterviewStart:       10,
	model.ActivityMilestoneComplete:    50,
	model.ActivityCourseRecommendation: 5,
	model.ActivityMarketTrendsCheck:    5,
	model.ActivityCareerInsights:       5,
	model.ActivitySkillDecayCheck:      5,
	model.ActivitySectorTransition:     5,
	model.ActivityJobSearch:            5,
	model.ActivityProfileUpdate:        5,
}

// PointTable 活动类型 -> 奖励积分，以及哪些类型会推进连续天数
type PointTable struct {
	awards      map[model.ActivityType]int
	streakTypes map[model.ActivityType]bool
}

// NewPointTable 以默认表为基础合并覆盖项。
// viper 会把 map 的 key 转成小写，这里统一转回大写。
func NewPointTable(overrides map[string]int, streakTypes []string) (*PointTable, error) {
	t := &PointTable{
		awards:      make(map[model.ActivityType]int, len(DefaultPoints)),
		streakTypes: make(map[model.ActivityType]bool),
	}
	for k, v := range DefaultPoints {
		t.awards[k] = v
	}
	for k, v := range overrides {
		if v < 0 {
			return nil, util.InvalidInputf("points for %s must not be negative", k)
		}
		t.awards[model.ActivityType(strings.ToUpper(strings.TrimSpace(k)))] = v
	}

	if len(streakTypes) == 0 {
		streakTypes = []string{string(model.ActivityDailyStreak)}
	}
	for _, s := range streakTypes {
		at := model.ActivityType(strings.ToUpper(strings.TrimSpace(s)))
		if _, ok := t.awards[at]; !ok {
			return nil, util.InvalidInputf("streak type %s has no point entry", s)
		}
		t.streakTypes[at] = true
	}
	return t, nil
}

// Award 返回活动类型对应的积分；未知类型返回 ErrInvalidInput
func (t *PointTable) Award(at model.ActivityType) (int, error) {
	p, ok := t.awards[at]
	if !ok {
		return 0, util.InvalidInputf("unknown activity type %q", at)
	}
	return p, nil
}

// StreakEligible 该类型是否参与连续天数计算
func (t *PointTable) StreakEligible(at model.ActivityType) bool {
	return t.streakTypes[at]
}

// Types 返回所有已知活动类型（按字母序）
func (t *PointTable) Types() []model.ActivityType {
	types := make([]model.ActivityType, 0, len(t.awards))
	for k := range t.awards {
		types = append(types, k)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
