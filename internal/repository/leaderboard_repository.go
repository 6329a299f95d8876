package repository

import (
	"context"
	"strconv"

	"github.com/go-redis/redis/v8"
)

const leaderboardKey = "career:leaderboard:points"

// LeaderboardEntry Redis 排行榜中的一项
type LeaderboardEntry struct {
	UserID uint
	Points int
}

// LeaderboardRepository 积分排行缓存（Redis 有序集合），数据库是唯一可信来源
type LeaderboardRepository struct {
	Redis *redis.Client
}

func NewLeaderboardRepository(rdb *redis.Client) *LeaderboardRepository {
	return &LeaderboardRepository{Redis: rdb}
}

func (r *LeaderboardRepository) Enabled() bool {
	return r != nil && r.Redis != nil
}

// SetPoints 直接覆盖缓存分数，预热时以数据库为准
func (r *LeaderboardRepository) SetPoints(ctx context.Context, userID uint, points int) error {
	if !r.Enabled() {
		return nil
	}
	return r.Redis.ZAdd(ctx, leaderboardKey, &redis.Z{
		Score:  float64(points),
		Member: member(userID),
	}).Err()
}

// RaisePoints 只在新分数更高时写入（ZADD GT，需要 Redis 6.2+）。
// 积分只增不减，乱序到达的旧提交不会覆盖较新的分数。
func (r *LeaderboardRepository) RaisePoints(ctx context.Context, userID uint, points int) error {
	if !r.Enabled() {
		return nil
	}
	return r.Redis.ZAddArgs(ctx, leaderboardKey, redis.ZAddArgs{
		GT:      true,
		Members: []redis.Z{{Score: float64(points), Member: member(userID)}},
	}).Err()
}

func member(userID uint) string {
	return strconv.FormatUint(uint64(userID), 10)
}

func (r *LeaderboardRepository) Top(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	zs, err := r.Redis.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]LeaderboardEntry, 0, len(zs))
	for _, z := range zs {
		member, _ := z.Member.(string)
		id, err := strconv.ParseUint(member, 10, 64)
		if err != nil {
			continue
		}
		entries = append(entries, LeaderboardEntry{UserID: uint(id), Points: int(z.Score)})
	}
	return entries, nil
}
