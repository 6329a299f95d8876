package model

import "strings"

type SkillCategory string

const (
	SkillTechnical SkillCategory = "technical"
	SkillSoft      SkillCategory = "soft"
	SkillTools     SkillCategory = "tools"
	SkillLanguages SkillCategory = "languages"
)

func (c SkillCategory) Valid() bool {
	switch c {
	case SkillTechnical, SkillSoft, SkillTools, SkillLanguages:
		return true
	}
	return false
}

// UserSkill 用户技能，名称在同一用户下大小写不敏感唯一
// swagger:model UserSkill
type UserSkill struct {
	BaseModel
	UserID           uint          `gorm:"not null;uniqueIndex:idx_user_skill_name" json:"-"`
	Name             string        `gorm:"size:100;not null" json:"name"`
	NameKey          string        `gorm:"size:100;not null;uniqueIndex:idx_user_skill_name" json:"-"`
	Category         SkillCategory `gorm:"size:20;not null" json:"category"`
	ProficiencyScore int           `gorm:"not null;default:0" json:"proficiencyScore"`
}

func (UserSkill) TableName() string {
	return "user_skills"
}

// SkillKey 技能名归一化（去空白 + 小写）
func SkillKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
