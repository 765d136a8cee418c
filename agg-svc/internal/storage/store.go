package storage

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"orderboard/agg-svc/internal/domain"
)

// boardZone matches the board's fixed UTC-6 calendar.
var boardZone = time.FixedZone("UTC-6", -6*60*60)

const retention = 90 * 24 * time.Hour

type Store struct {
	rdb *redis.Client
	ctx context.Context
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{
		rdb: rdb,
		ctx: context.Background(),
	}
}

// RecordOrder folds one order into the counters for its calendar day: total
// count and revenue in a hash, per-restaurant counts in a sorted set.
func (s *Store) RecordOrder(msg domain.OrderMessage) error {
	day := msg.Timestamp.In(boardZone).Format("2006-01-02")
	key := "board:daily:" + day

	pipe := s.rdb.TxPipeline()
	pipe.HIncrBy(s.ctx, key, "orders", 1)
	pipe.HIncrByFloat(s.ctx, key, "revenue", msg.Amount)
	pipe.Expire(s.ctx, key, retention)
	pipe.ZIncrBy(s.ctx, key+":restaurants", 1, msg.Restaurant)
	pipe.Expire(s.ctx, key+":restaurants", retention)
	_, err := pipe.Exec(s.ctx)
	return err
}
