package service

import (
	"career_coach_backend/internal/model"
	"career_coach_backend/internal/repository"
	"career_coach_backend/internal/util"
	"career_coach_backend/pkg/logger"
	"career_coach_backend/pkg/monitoring"
	"career_coach_backend/pkg/tracing"
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

const maxListDaysRange = 366

// LedgerService 活动记录与积分/连续天数
type LedgerService struct {
	ActivityRepo    *repository.ActivityRepository
	UserRepo        *repository.UserRepository
	LeaderboardRepo *repository.LeaderboardRepository
	Points          *PointTable
	MaxRetries      int
	RetryBackoff    time.Duration
}

func NewLedgerService(
	activityRepo *repository.ActivityRepository,
	userRepo *repository.UserRepository,
	leaderboardRepo *repository.LeaderboardRepository,
	points *PointTable,
	maxRetries int,
	retryBackoff time.Duration,
) *LedgerService {
	return &LedgerService{
		ActivityRepo:    activityRepo,
		UserRepo:        userRepo,
		LeaderboardRepo: leaderboardRepo,
		Points:          points,
		MaxRetries:      maxRetries,
		RetryBackoff:    retryBackoff,
	}
}

// DayCount 活动日计数快照
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// ActivityResult 一次活动记录提交后的状态，仅在事务提交后返回
type ActivityResult struct {
	Type          model.ActivityType `json:"type"`
	PointsAwarded int                `json:"pointsAwarded"`
	Progression   ProgressionState   `json:"progression"`
	Tier          TierInfo           `json:"tier"`
	Day           DayCount           `json:"day"`
}

// RecordActivity 记录一次活动：当日追加、积分累加，连续天数类型同时推进 streak。
// 乐观锁冲突或瞬时存储错误按指数退避整体重试，用尽后返回 ErrPersistence。
func (s *LedgerService) RecordActivity(ctx context.Context, userID uint, activityType model.ActivityType, now time.Time) (*ActivityResult, error) {
	ctx, span := tracing.Tracer.Start(ctx, "ledger.RecordActivity")
	defer span.End()
	span.SetAttributes(tracing.ActivityAttributes(userID, string(activityType))...)
	log := logger.ForUser(userID)

	if _, err := s.Points.Award(activityType); err != nil {
		return nil, err
	}

	var (
		awarded int
		user    *model.User
		day     *model.ActivityDay
		err     error
	)
	backoff := s.RetryBackoff
	for attempt := 0; ; attempt++ {
		user, day, err = s.ActivityRepo.Record(ctx, userID, activityType, now, func(u *model.User) error {
			state := ProgressionFromUser(u)
			a, err := s.Points.ApplyActivity(&state, activityType, now)
			if err != nil {
				return err
			}
			awarded = a
			u.Points = state.Points
			u.Streak = state.Streak
			u.LastActive = state.LastActive
			return nil
		})
		if err == nil {
			break
		}
		if errors.Is(err, util.ErrNotFound) || errors.Is(err, util.ErrInvalidInput) {
			return nil, err
		}
		if attempt >= s.MaxRetries || ctx.Err() != nil {
			monitoring.LedgerWriteFailures.Inc()
			span.RecordError(err)
			span.SetStatus(codes.Error, "ledger write failed")
			log.Error("record activity failed",
				zap.String("type", string(activityType)),
				zap.Int("attempts", attempt+1),
				zap.Error(err))
			return nil, util.PersistenceErr("record activity", err)
		}

		monitoring.LedgerWriteRetries.Inc()
		log.Debug("retrying ledger write",
			zap.Int("attempt", attempt+1),
			zap.Bool("conflict", errors.Is(err, repository.ErrVersionConflict)),
			zap.Error(err))

		select {
		case <-ctx.Done():
			monitoring.LedgerWriteFailures.Inc()
			return nil, util.PersistenceErr("record activity", ctx.Err())
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	monitoring.ActivitiesRecorded.WithLabelValues(string(activityType)).Inc()

	// 排行榜只是缓存，失败不影响已提交的结果
	if err := s.LeaderboardRepo.RaisePoints(ctx, userID, user.Points); err != nil {
		log.Warn("update leaderboard cache failed", zap.Error(err))
	}

	progression := ProgressionFromUser(user)
	return &ActivityResult{
		Type:          activityType,
		PointsAwarded: awarded,
		Progression:   progression,
		Tier:          ComputeTier(progression.Points),
		Day:           DayCount{Date: day.Date, Count: day.Count},
	}, nil
}

// UpdateStreak 显式的每日打卡，是唯一默认推进连续天数的入口
func (s *LedgerService) UpdateStreak(ctx context.Context, userID uint, now time.Time) (*ActivityResult, error) {
	return s.RecordActivity(ctx, userID, model.ActivityDailyStreak, now)
}

// GetProgression 读取成长状态与等级
func (s *LedgerService) GetProgression(ctx context.Context, userID uint) (ProgressionState, TierInfo, error) {
	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		return ProgressionState{}, TierInfo{}, err
	}
	state := ProgressionFromUser(user)
	return state, ComputeTier(state.Points), nil
}

// GetHeatmap 读取窗口内的活动计数并补零
func (s *LedgerService) GetHeatmap(ctx context.Context, userID uint, windowEnd time.Time, days int) ([]HeatmapCell, error) {
	if err := validateHeatmapWindow(days); err != nil {
		return nil, err
	}
	if _, err := s.UserRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	from := HeatmapWindowStart(windowEnd, days)
	records, err := s.ActivityRepo.DayCounts(ctx, userID, from, model.DayKey(windowEnd))
	if err != nil {
		return nil, err
	}
	return BuildHeatmap(records, windowEnd, days)
}

// ListDays 按日期正序列出活动明细，from/to 为 YYYY-MM-DD（含）
func (s *LedgerService) ListDays(ctx context.Context, userID uint, from, to string) ([]model.ActivityDay, error) {
	f, err := time.Parse(model.DateLayout, from)
	if err != nil {
		return nil, util.InvalidInputf("invalid from date %q", from)
	}
	t, err := time.Parse(model.DateLayout, to)
	if err != nil {
		return nil, util.InvalidInputf("invalid to date %q", to)
	}
	if t.Before(f) {
		return nil, util.InvalidInputf("from %s is after to %s", from, to)
	}
	if DayGap(f, t) >= maxListDaysRange {
		return nil, util.InvalidInputf("range exceeds %d days", maxListDaysRange)
	}
	if _, err := s.UserRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.ActivityRepo.ListDays(ctx, userID, from, to)
}

// ActivityTypes 可用的活动类型及积分
func (s *LedgerService) ActivityTypes() map[model.ActivityType]int {
	out := make(map[model.ActivityType]int)
	for _, t := range s.Points.Types() {
		out[t], _ = s.Points.Award(t)
	}
	return out
}
