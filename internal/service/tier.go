package service

import "math"

type Tier string

const (
	TierBeginner     Tier = "Beginner"
	TierNovice       Tier = "Novice"
	TierIntermediate Tier = "Intermediate"
	TierAdvanced     Tier = "Advanced"
	TierExpert       Tier = "Expert"
)

// TierThreshold 等级下限（含）
type TierThreshold struct {
	Tier      Tier
	MinPoints int
}

// TierThresholds 升序排列
var TierThresholds = []TierThreshold{
	{TierBeginner, 0},
	{TierNovice, 300},
	{TierIntermediate, 800},
	{TierAdvanced, 1500},
	{TierExpert, 2500},
}

// TierInfo computeTier 的结果，NextTier 为空表示已是最高等级
type TierInfo struct {
	Points          int     `json:"points"`
	Tier            Tier    `json:"tier"`
	NextTier        Tier    `json:"nextTier,omitempty"`
	CurrentMin      int     `json:"currentMin"`
	NextMin         int     `json:"nextMin,omitempty"`
	ProgressPercent float64 `json:"progressPercent"`
}

// ComputeTier 根据累计积分计算等级以及到下一级的进度
func ComputeTier(points int) TierInfo {
	if points < 0 {
		points = 0
	}

	idx := 0
	for i, th := range TierThresholds {
		if points >= th.MinPoints {
			idx = i
		}
	}

	cur := TierThresholds[idx]
	info := TierInfo{
		Points:     points,
		Tier:       cur.Tier,
		CurrentMin: cur.MinPoints,
	}
	if idx == len(TierThresholds)-1 {
		info.ProgressPercent = 100
		return info
	}

	next := TierThresholds[idx+1]
	info.NextTier = next.Tier
	info.NextMin = next.MinPoints
	pct := float64(points-cur.MinPoints) / float64(next.MinPoints-cur.MinPoints) * 100
	info.ProgressPercent = math.Round(math.Min(math.Max(pct, 0), 100)*10) / 10
	return info
}
