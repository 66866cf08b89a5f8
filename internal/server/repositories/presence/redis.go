package presence

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/gamekeeper/internal/common"
	"github.com/dmitrijs2005/gamekeeper/internal/server/models"
	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the sorted set holding presence entries.
const DefaultRedisKey = "gamekeeper:presence"

// AccountLookup resolves the username of an online account.
type AccountLookup interface {
	GetByID(ctx context.Context, id string) (*models.Account, error)
}

// SaveLookup resolves the character of an online account.
type SaveLookup interface {
	Get(ctx context.Context, accountID string) (*models.SaveRecord, error)
}

// RedisRepository keeps presence in a sorted set: member is the account ID,
// score is last_seen in unix milliseconds. Account and character details for
// ListSince come from the SQL store.
type RedisRepository struct {
	rdb      redis.Cmdable
	key      string
	accounts AccountLookup
	saves    SaveLookup
}

func NewRedisRepository(rdb redis.Cmdable, key string, accounts AccountLookup, saves SaveLookup) *RedisRepository {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisRepository{rdb: rdb, key: key, accounts: accounts, saves: saves}
}

func (r *RedisRepository) Upsert(ctx context.Context, accountID string, at time.Time) error {
	err := r.rdb.ZAdd(ctx, r.key, redis.Z{Score: float64(at.UnixMilli()), Member: accountID}).Err()
	if err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	return nil
}

func (r *RedisRepository) Delete(ctx context.Context, accountID string) error {
	if err := r.rdb.ZRem(ctx, r.key, accountID).Err(); err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	return nil
}

func (r *RedisRepository) ListSince(ctx context.Context, cutoff time.Time) ([]models.OnlinePlayer, error) {
	entries, err := r.rdb.ZRevRangeByScoreWithScores(ctx, r.key, &redis.ZRangeBy{
		Min: strconv.FormatInt(cutoff.UnixMilli(), 10),
		Max: "+inf",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("redis error: %w", err)
	}

	players := make([]models.OnlinePlayer, 0, len(entries))
	for _, z := range entries {
		id, ok := z.Member.(string)
		if !ok {
			continue
		}

		acc, err := r.accounts.GetByID(ctx, id)
		if err != nil {
			// entry outlived its account
			if errors.Is(err, common.ErrNotFound) {
				continue
			}
			return nil, err
		}

		p := models.OnlinePlayer{
			AccountID: id,
			UserName:  acc.UserName,
			LastSeen:  time.UnixMilli(int64(z.Score)).UTC(),
		}

		rec, err := r.saves.Get(ctx, id)
		switch {
		case err == nil:
			name, level := rec.CharacterName, rec.Level
			p.CharacterName = &name
			p.Level = &level
		case !errors.Is(err, common.ErrNotFound):
			return nil, err
		}

		players = append(players, p)
	}

	return players, nil
}

func (r *RedisRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := r.rdb.ZRemRangeByScore(ctx, r.key, "-inf", "("+strconv.FormatInt(cutoff.UnixMilli(), 10)).Result()
	if err != nil {
		return 0, fmt.Errorf("redis error: %w", err)
	}
	return n, nil
}
