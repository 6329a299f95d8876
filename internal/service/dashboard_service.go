package service

import (
	"context"
	"time"
)

type DashboardService struct {
	Ledger      *LedgerService
	Leaderboard *LeaderboardService
	HeatmapDays int
}

func NewDashboardService(ledger *LedgerService, leaderboard *LeaderboardService, heatmapDays int) *DashboardService {
	if heatmapDays <= 0 {
		heatmapDays = DefaultHeatmapDays
	}
	return &DashboardService{
		Ledger:      ledger,
		Leaderboard: leaderboard,
		HeatmapDays: heatmapDays,
	}
}

type Dashboard struct {
	Progression  ProgressionState `json:"progression"`
	Tier         TierInfo         `json:"tier"`
	Rank         int              `json:"rank"`
	ActiveDays   int              `json:"activeDays"`
	TotalActions int              `json:"totalActions"`
	Heatmap      []HeatmapCell    `json:"heatmap"`
}

// GetUserDashboard 仪表盘：成长状态、等级、名次和一年热力图
func (s *DashboardService) GetUserDashboard(ctx context.Context, userID uint, now time.Time) (*Dashboard, error) {
	progression, tier, err := s.Ledger.GetProgression(ctx, userID)
	if err != nil {
		return nil, err
	}

	heatmap, err := s.Ledger.GetHeatmap(ctx, userID, now, s.HeatmapDays)
	if err != nil {
		return nil, err
	}

	rank, err := s.Leaderboard.RankOf(ctx, userID)
	if err != nil {
		return nil, err
	}

	activeDays, total := 0, 0
	for _, c := range heatmap {
		if c.Count > 0 {
			activeDays++
			total += c.Count
		}
	}

	return &Dashboard{
		Progression:  progression,
		Tier:         tier,
		Rank:         rank,
		ActiveDays:   activeDays,
		TotalActions: total,
		Heatmap:      heatmap,
	}, nil
}
