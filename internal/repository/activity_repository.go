package repository

import (
	"career_coach_backend/internal/model"
	"career_coach_backend/internal/util"
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrVersionConflict 用户记录已被并发修改，调用方应整体重试
var ErrVersionConflict = errors.New("user record modified concurrently")

type ActivityRepository struct {
	DB *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

// ProgressionMutator 在事务内修改用户的成长字段
type ProgressionMutator func(user *model.User) error

// Record 在一个事务内完成：按乐观锁更新用户成长状态、当日计数 +1、追加活动明细。
// 任何一步失败整体回滚，不会出现积分变了但计数没变的情况。
func (r *ActivityRepository) Record(ctx context.Context, userID uint, activityType model.ActivityType, now time.Time, mutate ProgressionMutator) (*model.User, *model.ActivityDay, error) {
	var (
		user model.User
		day  model.ActivityDay
	)

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrUserNotFound
			}
			return err
		}

		prevVersion := user.Version
		if err := mutate(&user); err != nil {
			return err
		}

		res := tx.Model(&model.User{}).
			Where("id = ? AND version = ?", user.ID, prevVersion).
			Updates(map[string]interface{}{
				"points":      user.Points,
				"streak":      user.Streak,
				"last_active": user.LastActive,
				"version":     prevVersion + 1,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrVersionConflict
		}
		user.Version = prevVersion + 1

		dateKey := model.DayKey(now)
		newDay := model.ActivityDay{UserID: userID, Date: dateKey, Count: 1}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"activity_count": gorm.Expr("activity_days.activity_count + 1"),
				"updated_at":     now,
			}),
		}).Create(&newDay).Error; err != nil {
			return fmt.Errorf("upsert activity day: %w", err)
		}

		if err := tx.Where("user_id = ? AND date = ?", userID, dateKey).First(&day).Error; err != nil {
			return fmt.Errorf("reload activity day: %w", err)
		}

		entry := model.ActivityEntry{
			ActivityDayID: day.ID,
			UserID:        userID,
			Type:          activityType,
			OccurredAt:    now,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("append activity entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &user, &day, nil
}

// ListDays 返回 [from, to] 区间内（含）的活动日及明细，按日期正序
func (r *ActivityRepository) ListDays(ctx context.Context, userID uint, from, to string) ([]model.ActivityDay, error) {
	var days []model.ActivityDay
	err := r.DB.WithContext(ctx).
		Preload("Activities", func(db *gorm.DB) *gorm.DB {
			return db.Order("occurred_at ASC")
		}).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date ASC").
		Find(&days).Error
	if err != nil {
		return nil, fmt.Errorf("查询活动记录失败: %w", err)
	}
	return days, nil
}

// DayCounts 只查询计数，热力图使用
func (r *ActivityRepository) DayCounts(ctx context.Context, userID uint, from, to string) ([]model.ActivityDay, error) {
	var days []model.ActivityDay
	err := r.DB.WithContext(ctx).
		Select("id", "user_id", "date", "activity_count").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date ASC").
		Find(&days).Error
	if err != nil {
		return nil, fmt.Errorf("查询活动计数失败: %w", err)
	}
	return days, nil
}

// CountEntries 某天的明细条数
func (r *ActivityRepository) CountEntries(ctx context.Context, dayID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.ActivityEntry{}).Where("activity_day_id = ?", dayID).Count(&count).Error
	return count, err
}
