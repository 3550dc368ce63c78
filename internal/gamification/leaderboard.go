package gamification

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const leaderboardKey = "gymxp:leaderboard"

var ErrNotRanked = errors.New("user not on the leaderboard")

// Leaderboard ranks users by total XP in a redis sorted set.
type Leaderboard struct {
	rdb *redis.Client
	key string
}

func NewLeaderboard(rdb *redis.Client) *Leaderboard {
	return &Leaderboard{
		rdb: rdb,
		key: leaderboardKey,
	}
}

// Add sets the user's score to totalXP.
func (l *Leaderboard) Add(ctx context.Context, userID string, totalXP int) error {
	if err := l.rdb.ZAdd(ctx, l.key, &redis.Z{
		Score:  float64(totalXP),
		Member: userID,
	}).Err(); err != nil {
		return fmt.Errorf("leaderboard add [%s]: %w", userID, err)
	}
	return nil
}

func (l *Leaderboard) Top(ctx context.Context, n int) ([]LeaderboardEntry, error) {
	if n <= 0 {
		return []LeaderboardEntry{}, nil
	}

	res, err := l.rdb.ZRevRangeWithScores(ctx, l.key, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("leaderboard top %d: %w", n, err)
	}

	entries := make([]LeaderboardEntry, 0, len(res))
	for i, z := range res {
		userID, ok := z.Member.(string)
		if !ok {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			Rank:   i + 1,
			UserID: userID,
			XP:     int(z.Score),
		})
	}
	return entries, nil
}

// Rank is 1-based, the user with the most XP is first.
func (l *Leaderboard) Rank(ctx context.Context, userID string) (int, error) {
	rank, err := l.rdb.ZRevRank(ctx, l.key, userID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrNotRanked
		}
		return 0, fmt.Errorf("leaderboard rank [%s]: %w", userID, err)
	}
	return int(rank) + 1, nil
}

func (l *Leaderboard) Remove(ctx context.Context, userID string) error {
	if err := l.rdb.ZRem(ctx, l.key, userID).Err(); err != nil {
		return fmt.Errorf("leaderboard remove [%s]: %w", userID, err)
	}
	return nil
}
