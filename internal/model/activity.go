package model

import "time"

// ActivityType 活动类型标签，仅用于展示分组和积分表查找
type ActivityType string

const (
	ActivityDailyStreak          ActivityType = "DAILY_STREAK"
	ActivityTimelineSave         ActivityType = "TIMELINE_SAVE"
	ActivityReviewPost           ActivityType = "REVIEW_POST"
	ActivityInterviewStart       ActivityType = "INTERVIEW_START"
	ActivityMilestoneComplete    ActivityType = "MILESTONE_COMPLETE"
	ActivityCourseRecommendation ActivityType = "COURSE_RECOMMENDATIONS"
	ActivityMarketTrendsCheck    ActivityType = "MARKET_TRENDS_CHECK"
	ActivityCareerInsights       ActivityType = "CAREER_INSIGHTS"
	ActivitySkillDecayCheck      ActivityType = "SKILL_DECAY_CHECK"
	ActivitySectorTransition     ActivityType = "SECTOR_TRANSITION"
	ActivityJobSearch            ActivityType = "JOB_SEARCH"
	ActivityProfileUpdate        ActivityType = "PROFILE_UPDATE"
)

// DateLayout 活动日的日期键格式（UTC）
const DateLayout = "2006-01-02"

// ActivityDay 用户某个 UTC 日历日的活动汇总，(user_id, date) 唯一
// swagger:model ActivityDay
type ActivityDay struct {
	ID         uint            `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID     uint            `gorm:"not null;uniqueIndex:idx_activity_day_user_date" json:"-"`
	Date       string          `gorm:"size:10;not null;uniqueIndex:idx_activity_day_user_date" json:"date"`
	Count      int             `gorm:"column:activity_count;not null;default:0" json:"count"`
	Activities []ActivityEntry `gorm:"foreignKey:ActivityDayID" json:"activities"`
	CreatedAt  time.Time       `json:"-"`
	UpdatedAt  time.Time       `json:"-"`
}

func (ActivityDay) TableName() string {
	return "activity_days"
}

// ActivityEntry 单条活动，只追加不修改
// swagger:model ActivityEntry
type ActivityEntry struct {
	UUIDBase
	ActivityDayID uint         `gorm:"not null;index" json:"-"`
	UserID        uint         `gorm:"not null;index" json:"-"`
	Type          ActivityType `gorm:"size:40;not null" json:"type"`
	OccurredAt    time.Time    `gorm:"not null" json:"timestamp"`
}

func (ActivityEntry) TableName() string {
	return "activity_entries"
}

// DayKey 返回时间点所在 UTC 日历日的键
func DayKey(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
