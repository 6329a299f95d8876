package service

import (
	"career_coach_backend/internal/model"
	"career_coach_backend/internal/repository"
	"career_coach_backend/pkg/monitoring"
	"context"
)

// RecommendationService 根据用户技能为岗位目录打分排序
type RecommendationService struct {
	SkillRepo *repository.SkillRepository
	UserRepo  *repository.UserRepository
	Catalog   *CatalogService
	Scorer    *FitScorer
}

func NewRecommendationService(
	skillRepo *repository.SkillRepository,
	userRepo *repository.UserRepository,
	catalog *CatalogService,
	scorer *FitScorer,
) *RecommendationService {
	return &RecommendationService{
		SkillRepo: skillRepo,
		UserRepo:  userRepo,
		Catalog:   catalog,
		Scorer:    scorer,
	}
}

func (s *RecommendationService) userSkills(ctx context.Context, userID uint) ([]model.UserSkill, error) {
	if _, err := s.UserRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.SkillRepo.ListByUser(ctx, userID)
}

// RankForUser 对整个目录排序，limit <= 0 表示不限制
func (s *RecommendationService) RankForUser(ctx context.Context, userID uint, limit int) ([]FitResult, error) {
	skills, err := s.userSkills(ctx, userID)
	if err != nil {
		return nil, err
	}
	results, err := s.Scorer.RankRoles(skills, s.Catalog.List())
	if err != nil {
		return nil, err
	}
	for _, r := range results {
		monitoring.FitScores.Observe(float64(r.FitScore))
	}
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// ScoreForUser 对目录中的单个岗位打分
func (s *RecommendationService) ScoreForUser(ctx context.Context, userID uint, roleID string) (*FitResult, error) {
	role, err := s.Catalog.Get(roleID)
	if err != nil {
		return nil, err
	}
	skills, err := s.userSkills(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.Scorer.ScoreFit(skills, role)
}

// ScoreAdHoc 对外部传入的岗位打分，先按目录规则校验并归一化
func (s *RecommendationService) ScoreAdHoc(ctx context.Context, userID uint, role model.RoleProfile) (*FitResult, error) {
	normalized, err := ValidateRole(role, s.Catalog.Tolerance())
	if err != nil {
		return nil, err
	}
	skills, err := s.userSkills(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.Scorer.ScoreFit(skills, normalized)
}
