package service

import (
	"career_coach_backend/internal/repository"
	"career_coach_backend/pkg/logger"
	"context"

	"go.uber.org/zap"
)

type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	UserID uint   `json:"userId"`
	User   string `json:"user"`
	Points int    `json:"points"`
	Streak int    `json:"streak"`
	Tier   Tier   `json:"tier"`
}

// LeaderboardService 积分排行，Redis 可用时读缓存，否则直接查库
type LeaderboardService struct {
	UserRepo        *repository.UserRepository
	LeaderboardRepo *repository.LeaderboardRepository
}

func NewLeaderboardService(userRepo *repository.UserRepository, leaderboardRepo *repository.LeaderboardRepository) *LeaderboardService {
	return &LeaderboardService{
		UserRepo:        userRepo,
		LeaderboardRepo: leaderboardRepo,
	}
}

func (s *LeaderboardService) Top(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	if s.LeaderboardRepo.Enabled() {
		entries, err := s.topFromCache(ctx, limit)
		if err == nil && len(entries) > 0 {
			return entries, nil
		}
		if err != nil {
			logger.Log.Warn("leaderboard cache unavailable, falling back to database", zap.Error(err))
		}
	}

	users, err := s.UserRepo.FindTopByPoints(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]LeaderboardEntry, len(users))
	for i, u := range users {
		out[i] = LeaderboardEntry{
			Rank:   i + 1,
			UserID: u.ID,
			User:   u.Name,
			Points: u.Points,
			Streak: u.Streak,
			Tier:   ComputeTier(u.Points).Tier,
		}
	}
	return out, nil
}

func (s *LeaderboardService) topFromCache(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	cached, err := s.LeaderboardRepo.Top(ctx, limit)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, len(cached))
	for i, c := range cached {
		ids[i] = c.UserID
	}
	users, err := s.UserRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(users))
	streaks := make(map[uint]int, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
		streaks[u.ID] = u.Streak
	}

	out := make([]LeaderboardEntry, 0, len(cached))
	for _, c := range cached {
		name, ok := names[c.UserID]
		if !ok {
			continue
		}
		out = append(out, LeaderboardEntry{
			Rank:   len(out) + 1,
			UserID: c.UserID,
			User:   name,
			Points: c.Points,
			Streak: streaks[c.UserID],
			Tier:   ComputeTier(c.Points).Tier,
		})
	}
	return out, nil
}

// Warm 启动时用数据库中的积分填充排行缓存
func (s *LeaderboardService) Warm(ctx context.Context, limit int) error {
	if !s.LeaderboardRepo.Enabled() {
		return nil
	}
	users, err := s.UserRepo.FindTopByPoints(ctx, limit)
	if err != nil {
		return err
	}
	for _, u := range users {
		if err := s.LeaderboardRepo.SetPoints(ctx, u.ID, u.Points); err != nil {
			return err
		}
	}
	logger.Log.Info("leaderboard cache warmed", zap.Int("users", len(users)))
	return nil
}

// RankOf 用户当前名次（1 起始），以数据库为准
func (s *LeaderboardService) RankOf(ctx context.Context, userID uint) (int, error) {
	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	above, err := s.UserRepo.CountAbovePoints(ctx, user.Points)
	if err != nil {
		return 0, err
	}
	return int(above) + 1, nil
}
