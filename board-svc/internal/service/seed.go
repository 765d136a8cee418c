package service

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"orderboard/board-svc/internal/domain"
	"orderboard/board-svc/internal/mxtime"
)

// SeedConfig drives the demo-data generator. Every field is optional.
type SeedConfig struct {
	Start           string  `json:"start"`
	End             string  `json:"end"`
	PerDayMin       int     `json:"perDayMin"`
	PerDayMax       int     `json:"perDayMax"`
	HourStart       int     `json:"hourStart"`
	HourEnd         int     `json:"hourEnd"`
	AmountMin       float64 `json:"amountMin"`
	AmountMax       float64 `json:"amountMax"`
	PublishRealtime bool    `json:"publishRealtime"`
}

func (c *SeedConfig) applyDefaults() {
	if c.Start == "" {
		c.Start = "2025-06-01T00:00:00Z"
	}
	if c.End == "" {
		c.End = "2025-08-10T23:59:59Z"
	}
	if c.PerDayMin == 0 {
		c.PerDayMin = 1
	}
	if c.PerDayMax == 0 {
		c.PerDayMax = 6
	}
	if c.HourStart == 0 {
		c.HourStart = 8
	}
	if c.HourEnd == 0 {
		c.HourEnd = 24
	}
	if c.AmountMin == 0 {
		c.AmountMin = 30
	}
	if c.AmountMax == 0 {
		c.AmountMax = 220
	}
}

// Seed appends random orders across the configured date range, spread over
// the board's operating hours. Broadcasting each order is off by default so
// large seeds don't flood the channels.
func (s *BoardService) Seed(cfg SeedConfig) (int, error) {
	cfg.applyDefaults()

	start, err := time.Parse(time.RFC3339, cfg.Start)
	if err != nil {
		return 0, fmt.Errorf("invalid start: %w", err)
	}
	end, err := time.Parse(time.RFC3339, cfg.End)
	if err != nil {
		return 0, fmt.Errorf("invalid end: %w", err)
	}

	restaurants, err := s.blobs.ReadRestaurants()
	if err != nil {
		return 0, fmt.Errorf("failed to read restaurants: %w", err)
	}
	if len(restaurants) == 0 {
		return 0, ErrNoRestaurants
	}

	orders, err := s.blobs.ReadOrders()
	if err != nil {
		return 0, fmt.Errorf("failed to read orders: %w", err)
	}

	created := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		count := randBetween(cfg.PerDayMin, cfg.PerDayMax)
		for i := 0; i < count; i++ {
			rest := restaurants[rand.Intn(len(restaurants))]
			hour := randBetween(cfg.HourStart, cfg.HourEnd)
			minute := rand.Intn(60)

			// Hour 24 rolls over to midnight of the next day, the close of
			// this operating day.
			iso := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, mxtime.Zone).UTC()
			order := domain.Order{
				ID:         uuid.NewString(),
				Restaurant: rest.Name,
				Amount:     float64(randBetween(int(cfg.AmountMin), int(cfg.AmountMax))),
				ISO:        iso,
				LocalTime:  mxtime.FormatLocal(iso),
			}

			orders = append(orders, order)
			created++

			if cfg.PublishRealtime {
				s.publish(domain.ChannelOrders, domain.EventAdded, order)
			}
		}
	}

	if err := s.blobs.WriteOrders(orders); err != nil {
		return 0, fmt.Errorf("failed to write orders: %w", err)
	}
	return created, nil
}

func randBetween(min, max int) int {
	if max <= min {
		return min
	}
	return min + rand.Intn(max-min+1)
}
