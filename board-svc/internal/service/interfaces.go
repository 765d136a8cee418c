package service

import (
	"orderboard/board-svc/internal/broker"
	"orderboard/board-svc/internal/domain"
	"orderboard/board-svc/internal/storage"
)

type BlobStore interface {
	ReadRestaurants() ([]domain.Restaurant, error)
	WriteRestaurants(restaurants []domain.Restaurant) error
	ReadOrders() ([]domain.Order, error)
	WriteOrders(orders []domain.Order) error
}

type EventPublisher interface {
	Publish(channel, name string, data interface{}) error
}

type OrderFeed interface {
	Emit(msg domain.OrderMessage) error
}

type AnalyticsSource interface {
	Daily(date string) (*storage.DailySnapshot, error)
}

type BoardServiceInterface interface {
	State() ([]domain.Restaurant, []domain.Order, error)
	AddOrder(restaurant string, amount float64) (*domain.Order, error)
	UpdateOrder(id string, restaurant *string, amount *float64) (*domain.Order, error)
	DeleteOrder(id string) error
	ClearHistory() error
	AddRestaurant(name string) (*domain.Restaurant, error)
	DeleteRestaurant(name string) error
	Seed(cfg SeedConfig) (int, error)
}

var (
	_ BlobStore       = (*storage.BlobRepository)(nil)
	_ EventPublisher  = (*broker.Publisher)(nil)
	_ OrderFeed       = (*broker.OrderFeed)(nil)
	_ AnalyticsSource = (*storage.AnalyticsReader)(nil)
)
