package domain

import (
	"encoding/json"
	"time"
)

// Restaurant is identified by its name. Deleting one leaves its historical
// orders pointing at the dangling name on purpose.
type Restaurant struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// UnmarshalJSON accepts both the canonical object shape and the legacy bare
// name string still found in old restaurant documents. Legacy entries get a
// createdAt of "now": the true creation time is gone, this is a known
// precision loss.
func (r *Restaurant) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		r.Name = name
		r.CreatedAt = time.Now().UTC()
		return nil
	}

	type plain Restaurant
	var rest plain
	if err := json.Unmarshal(data, &rest); err != nil {
		return err
	}
	*r = Restaurant(rest)
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	return nil
}

type Order struct {
	ID         string    `json:"id"`
	Restaurant string    `json:"restaurant"`
	Amount     float64   `json:"amount"`
	ISO        time.Time `json:"iso"`
	LocalTime  string    `json:"localTime"`
}

const (
	ChannelOrders      = "orders"
	ChannelRestaurants = "restaurants"

	EventAdded   = "added"
	EventUpdated = "updated"
	EventRemoved = "removed"
	EventCleared = "cleared"
)

// Event is the envelope published on a broadcast channel.
type Event struct {
	Name string          `json:"name"`
	Data json.RawMessage `json:"data"`
}

type OrderRef struct {
	ID string `json:"id"`
}

type RestaurantRef struct {
	Name string `json:"name"`
}

// OrderMessage is emitted to Kafka for the aggregation service.
type OrderMessage struct {
	Type       string    `json:"type"`
	OrderID    string    `json:"order_id"`
	Restaurant string    `json:"restaurant"`
	Amount     float64   `json:"amount"`
	Timestamp  time.Time `json:"timestamp"`
}

const MessageOrderAdded = "order_added"
