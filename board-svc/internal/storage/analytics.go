package storage

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// DailySnapshot is the aggregation service's running view of one calendar
// day: order count, revenue, and order counts per restaurant.
type DailySnapshot struct {
	Date         string             `json:"date"`
	Orders       int64              `json:"orders"`
	Revenue      float64            `json:"revenue"`
	ByRestaurant map[string]float64 `json:"byRestaurant"`
}

type AnalyticsReader struct {
	rdb *redis.Client
	ctx context.Context
}

func NewAnalyticsReader(rdb *redis.Client) *AnalyticsReader {
	return &AnalyticsReader{
		rdb: rdb,
		ctx: context.Background(),
	}
}

func (a *AnalyticsReader) Daily(date string) (*DailySnapshot, error) {
	key := "board:daily:" + date
	stats, err := a.rdb.HGetAll(a.ctx, key).Result()
	if err != nil {
		return nil, err
	}

	snapshot := &DailySnapshot{Date: date, ByRestaurant: map[string]float64{}}
	snapshot.Orders, _ = strconv.ParseInt(stats["orders"], 10, 64)
	snapshot.Revenue, _ = strconv.ParseFloat(stats["revenue"], 64)

	members, err := a.rdb.ZRevRangeWithScores(a.ctx, key+":restaurants", 0, -1).Result()
	if err != nil {
		return snapshot, nil
	}
	for _, member := range members {
		if name, ok := member.Member.(string); ok {
			snapshot.ByRestaurant[name] = member.Score
		}
	}
	return snapshot, nil
}
