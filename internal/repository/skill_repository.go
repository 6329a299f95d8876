package repository

import (
	"career_coach_backend/internal/model"
	"career_coach_backend/internal/util"
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SkillRepository 用户技能仓储，删除均为物理删除（唯一索引不能被软删除记录占用）
type SkillRepository struct {
	DB *gorm.DB
}

func NewSkillRepository(db *gorm.DB) *SkillRepository {
	return &SkillRepository{DB: db}
}

func (r *SkillRepository) ListByUser(ctx context.Context, userID uint) ([]model.UserSkill, error) {
	var skills []model.UserSkill
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&skills).Error
	if err != nil {
		return nil, fmt.Errorf("查询技能失败: %w", err)
	}
	return skills, nil
}

// ReplaceForUser 整体替换用户技能列表
func (r *SkillRepository) ReplaceForUser(ctx context.Context, userID uint, skills []model.UserSkill) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&model.UserSkill{}).Error; err != nil {
			return fmt.Errorf("清空技能失败: %w", err)
		}
		if len(skills) == 0 {
			return nil
		}
		for i := range skills {
			skills[i].ID = 0
			skills[i].UserID = userID
			skills[i].NameKey = model.SkillKey(skills[i].Name)
		}
		if err := tx.Create(&skills).Error; err != nil {
			return fmt.Errorf("写入技能失败: %w", err)
		}
		return nil
	})
}

// Upsert 按 (user_id, name_key) 插入或更新
func (r *SkillRepository) Upsert(ctx context.Context, skill *model.UserSkill) error {
	skill.NameKey = model.SkillKey(skill.Name)
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "name_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "category", "proficiency_score", "updated_at"}),
	}).Create(skill).Error
}

func (r *SkillRepository) Delete(ctx context.Context, userID uint, name string) error {
	res := r.DB.WithContext(ctx).Unscoped().
		Where("user_id = ? AND name_key = ?", userID, model.SkillKey(name)).
		Delete(&model.UserSkill{})
	if res.Error != nil {
		return fmt.Errorf("删除技能失败: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return util.ErrSkillNotFound
	}
	return nil
}
