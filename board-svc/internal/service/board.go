package service

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"orderboard/board-svc/internal/domain"
	"orderboard/board-svc/internal/mxtime"
)

var (
	ErrMissingRestaurant  = errors.New("missing restaurant")
	ErrMissingName        = errors.New("missing name")
	ErrMissingID          = errors.New("missing id")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrOrderNotFound      = errors.New("order not found")
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrNoRestaurants      = errors.New("no restaurants to assign orders to")
)

// BoardService performs every mutation as a read-modify-write of the
// corresponding blob document, then broadcasts the change. The broadcast is
// best-effort: a failed publish is logged, never rolled back, and clients
// heal on their next full fetch.
type BoardService struct {
	blobs  BlobStore
	events EventPublisher
	feed   OrderFeed
}

func NewBoardService(blobs BlobStore, events EventPublisher, feed OrderFeed) *BoardService {
	return &BoardService{
		blobs:  blobs,
		events: events,
		feed:   feed,
	}
}

// State reads both collections fresh from the blob store. Legacy restaurant
// entries are normalized on the way in (see domain.Restaurant).
func (s *BoardService) State() ([]domain.Restaurant, []domain.Order, error) {
	restaurants, err := s.blobs.ReadRestaurants()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read restaurants: %w", err)
	}
	orders, err := s.blobs.ReadOrders()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read orders: %w", err)
	}
	return restaurants, orders, nil
}

func validAmount(amount float64) bool {
	return !math.IsNaN(amount) && !math.IsInf(amount, 0) && amount > 0
}

func (s *BoardService) AddOrder(restaurant string, amount float64) (*domain.Order, error) {
	restaurant = strings.TrimSpace(restaurant)
	if restaurant == "" {
		return nil, ErrMissingRestaurant
	}
	if !validAmount(amount) {
		return nil, ErrInvalidAmount
	}

	now := time.Now().UTC().Truncate(time.Second)
	order := domain.Order{
		ID:         uuid.NewString(),
		Restaurant: restaurant,
		Amount:     amount,
		ISO:        now,
		LocalTime:  mxtime.FormatLocal(now),
	}

	orders, err := s.blobs.ReadOrders()
	if err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}
	orders = append(orders, order)
	if err := s.blobs.WriteOrders(orders); err != nil {
		return nil, fmt.Errorf("failed to write orders: %w", err)
	}

	s.publish(domain.ChannelOrders, domain.EventAdded, order)
	s.emitOrderMessage(order)
	return &order, nil
}

func (s *BoardService) UpdateOrder(id string, restaurant *string, amount *float64) (*domain.Order, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	if restaurant != nil && strings.TrimSpace(*restaurant) == "" {
		return nil, ErrMissingRestaurant
	}
	if amount != nil && !validAmount(*amount) {
		return nil, ErrInvalidAmount
	}

	orders, err := s.blobs.ReadOrders()
	if err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}

	idx := findOrder(orders, id)
	if idx == -1 {
		return nil, ErrOrderNotFound
	}
	if restaurant != nil {
		orders[idx].Restaurant = strings.TrimSpace(*restaurant)
	}
	if amount != nil {
		orders[idx].Amount = *amount
	}

	if err := s.blobs.WriteOrders(orders); err != nil {
		return nil, fmt.Errorf("failed to write orders: %w", err)
	}

	updated := orders[idx]
	s.publish(domain.ChannelOrders, domain.EventUpdated, updated)
	return &updated, nil
}

func (s *BoardService) DeleteOrder(id string) error {
	if id == "" {
		return ErrMissingID
	}

	orders, err := s.blobs.ReadOrders()
	if err != nil {
		return fmt.Errorf("failed to read orders: %w", err)
	}

	idx := findOrder(orders, id)
	if idx == -1 {
		return ErrOrderNotFound
	}
	orders = append(orders[:idx], orders[idx+1:]...)

	if err := s.blobs.WriteOrders(orders); err != nil {
		return fmt.Errorf("failed to write orders: %w", err)
	}

	s.publish(domain.ChannelOrders, domain.EventRemoved, domain.OrderRef{ID: id})
	return nil
}

func (s *BoardService) ClearHistory() error {
	if err := s.blobs.WriteOrders([]domain.Order{}); err != nil {
		return fmt.Errorf("failed to clear orders: %w", err)
	}
	s.publish(domain.ChannelOrders, domain.EventCleared, struct{}{})
	return nil
}

// AddRestaurant is idempotent: adding an existing name returns the current
// record without a write or broadcast.
func (s *BoardService) AddRestaurant(name string) (*domain.Restaurant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMissingName
	}

	restaurants, err := s.blobs.ReadRestaurants()
	if err != nil {
		return nil, fmt.Errorf("failed to read restaurants: %w", err)
	}

	for _, existing := range restaurants {
		if existing.Name == name {
			return &existing, nil
		}
	}

	rest := domain.Restaurant{Name: name, CreatedAt: time.Now().UTC()}
	restaurants = append(restaurants, rest)
	if err := s.blobs.WriteRestaurants(restaurants); err != nil {
		return nil, fmt.Errorf("failed to write restaurants: %w", err)
	}

	s.publish(domain.ChannelRestaurants, domain.EventAdded, rest)
	return &rest, nil
}

// DeleteRestaurant removes the record by name. Historical orders keep the
// denormalized restaurant string.
func (s *BoardService) DeleteRestaurant(name string) error {
	if name == "" {
		return ErrMissingName
	}

	restaurants, err := s.blobs.ReadRestaurants()
	if err != nil {
		return fmt.Errorf("failed to read restaurants: %w", err)
	}

	kept := make([]domain.Restaurant, 0, len(restaurants))
	for _, rest := range restaurants {
		if rest.Name != name {
			kept = append(kept, rest)
		}
	}
	if len(kept) == len(restaurants) {
		return ErrRestaurantNotFound
	}

	if err := s.blobs.WriteRestaurants(kept); err != nil {
		return fmt.Errorf("failed to write restaurants: %w", err)
	}

	s.publish(domain.ChannelRestaurants, domain.EventRemoved, domain.RestaurantRef{Name: name})
	return nil
}

func (s *BoardService) publish(channel, name string, data interface{}) {
	if err := s.events.Publish(channel, name, data); err != nil {
		log.Printf("Warning: failed to publish %s/%s: %v", channel, name, err)
	}
}

func (s *BoardService) emitOrderMessage(order domain.Order) {
	if s.feed == nil {
		return
	}
	msg := domain.OrderMessage{
		Type:       domain.MessageOrderAdded,
		OrderID:    order.ID,
		Restaurant: order.Restaurant,
		Amount:     order.Amount,
		Timestamp:  order.ISO,
	}
	if err := s.feed.Emit(msg); err != nil {
		log.Printf("Warning: failed to emit order message: %v", err)
	}
}

func findOrder(orders []domain.Order, id string) int {
	for i, order := range orders {
		if order.ID == id {
			return i
		}
	}
	return -1
}

var _ BoardServiceInterface = (*BoardService)(nil)
