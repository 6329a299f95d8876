package service

import (
	"career_coach_backend/internal/model"
	"career_coach_backend/internal/repository"
	"career_coach_backend/internal/util"
	"career_coach_backend/pkg/logger"
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

// SkillInput 技能编辑请求
// swagger:model SkillInput
type SkillInput struct {
	Name             string              `json:"name" yaml:"name"`
	Category         model.SkillCategory `json:"category" yaml:"category"`
	ProficiencyScore int                 `json:"proficiencyScore" yaml:"proficiencyScore"`
}

// ProfileService 用户技能档案
type ProfileService struct {
	UserRepo  *repository.UserRepository
	SkillRepo *repository.SkillRepository
	Ledger    *LedgerService
}

func NewProfileService(userRepo *repository.UserRepository, skillRepo *repository.SkillRepository, ledger *LedgerService) *ProfileService {
	return &ProfileService{
		UserRepo:  userRepo,
		SkillRepo: skillRepo,
		Ledger:    ledger,
	}
}

// ValidateSkills 校验技能列表：名称非空且大小写不敏感唯一、分类合法、分数 0-100
func ValidateSkills(inputs []SkillInput) ([]model.UserSkill, error) {
	seen := make(map[string]struct{}, len(inputs))
	skills := make([]model.UserSkill, 0, len(inputs))
	for _, in := range inputs {
		s, err := validateSkill(in)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[s.NameKey]; dup {
			return nil, util.InvalidInputf("duplicate skill %q", in.Name)
		}
		seen[s.NameKey] = struct{}{}
		skills = append(skills, s)
	}
	return skills, nil
}

func validateSkill(in SkillInput) (model.UserSkill, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.UserSkill{}, util.InvalidInputf("skill name is required")
	}
	if len(name) > 100 {
		return model.UserSkill{}, util.InvalidInputf("skill name %q is too long", name)
	}
	if !in.Category.Valid() {
		return model.UserSkill{}, util.InvalidInputf("skill %q has invalid category %q", name, in.Category)
	}
	if in.ProficiencyScore < 0 || in.ProficiencyScore > 100 {
		return model.UserSkill{}, util.InvalidInputf("skill %q proficiency %d out of range [0,100]", name, in.ProficiencyScore)
	}
	return model.UserSkill{
		Name:             name,
		NameKey:          model.SkillKey(name),
		Category:         in.Category,
		ProficiencyScore: in.ProficiencyScore,
	}, nil
}

func (s *ProfileService) GetSkills(ctx context.Context, userID uint) ([]model.UserSkill, error) {
	if _, err := s.UserRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.SkillRepo.ListByUser(ctx, userID)
}

// ReplaceSkills 整体替换技能列表
func (s *ProfileService) ReplaceSkills(ctx context.Context, userID uint, inputs []SkillInput) ([]model.UserSkill, error) {
	skills, err := ValidateSkills(inputs)
	if err != nil {
		return nil, err
	}
	if _, err := s.UserRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.SkillRepo.ReplaceForUser(ctx, userID, skills); err != nil {
		return nil, util.PersistenceErr("replace skills", err)
	}
	if err := s.recordProfileUpdate(ctx, userID); err != nil {
		return nil, err
	}
	return s.SkillRepo.ListByUser(ctx, userID)
}

// UpsertSkill 新增或修改单个技能
func (s *ProfileService) UpsertSkill(ctx context.Context, userID uint, input SkillInput) (*model.UserSkill, error) {
	skill, err := validateSkill(input)
	if err != nil {
		return nil, err
	}
	if _, err := s.UserRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	skill.UserID = userID
	if err := s.SkillRepo.Upsert(ctx, &skill); err != nil {
		return nil, util.PersistenceErr("upsert skill", err)
	}
	if err := s.recordProfileUpdate(ctx, userID); err != nil {
		return nil, err
	}
	return &skill, nil
}

func (s *ProfileService) DeleteSkill(ctx context.Context, userID uint, name string) error {
	if model.SkillKey(name) == "" {
		return util.InvalidInputf("skill name is required")
	}
	return s.SkillRepo.Delete(ctx, userID, name)
}

// recordProfileUpdate 技能写入是幂等的，活动记录失败时把错误返回给调用方重试
func (s *ProfileService) recordProfileUpdate(ctx context.Context, userID uint) error {
	if s.Ledger == nil {
		return nil
	}
	if _, err := s.Ledger.RecordActivity(ctx, userID, model.ActivityProfileUpdate, time.Now().UTC()); err != nil {
		logger.ForUser(userID).Warn("record profile update activity failed", zap.Error(err))
		return err
	}
	return nil
}
