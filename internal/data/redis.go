package data

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/redditor-labs/redditor/internal/biz/repo"
)

// redisStore implements StoreRepo on Redis sorted sets and counters.
// Atomicity per key comes from Redis itself; no client-side locking.
type redisStore struct {
	rdb *redis.Client
}

// NewRedisStore creates a Redis-backed store and verifies connectivity
func NewRedisStore(ctx context.Context, addr, password string, db int) (repo.StoreRepo, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}

	return &redisStore{rdb: rdb}, nil
}

func (s *redisStore) IncrementCounter(ctx context.Context, name string, by int64) error {
	if err := s.rdb.IncrBy(ctx, name, by).Err(); err != nil {
		return fmt.Errorf("incrby %s: %w: %v", name, repo.ErrStorageUnavailable, err)
	}
	return nil
}

func (s *redisStore) Counter(ctx context.Context, name string) (int64, error) {
	val, err := s.rdb.Get(ctx, name).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get %s: %w: %v", name, repo.ErrStorageUnavailable, err)
	}
	return val, nil
}

func (s *redisStore) OrderedInsert(ctx context.Context, key string, score float64, member string) error {
	err := s.rdb.ZAdd(ctx, key, redis.Z{Score: score, Member: member}).Err()
	if err != nil {
		return fmt.Errorf("zadd %s: %w: %v", key, repo.ErrStorageUnavailable, err)
	}
	return nil
}

func (s *redisStore) Count(ctx context.Context, key string) (int64, error) {
	count, err := s.rdb.ZCard(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("zcard %s: %w: %v", key, repo.ErrStorageUnavailable, err)
	}
	return count, nil
}

func (s *redisStore) TrimLowestScored(ctx context.Context, key string, start, stop int64) error {
	if err := s.rdb.ZRemRangeByRank(ctx, key, start, stop).Err(); err != nil {
		return fmt.Errorf("zremrangebyrank %s: %w: %v", key, repo.ErrStorageUnavailable, err)
	}
	return nil
}

func (s *redisStore) RangeByScore(ctx context.Context, key string) ([]repo.ScoredMember, error) {
	zs, err := s.rdb.ZRangeByScoreWithScores(ctx, key, &redis.ZRangeBy{
		Min: "-inf",
		Max: "+inf",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("zrangebyscore %s: %w: %v", key, repo.ErrStorageUnavailable, err)
	}

	members := make([]repo.ScoredMember, 0, len(zs))
	for _, z := range zs {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		members = append(members, repo.ScoredMember{Score: z.Score, Member: member})
	}
	return members, nil
}
