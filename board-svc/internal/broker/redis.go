// Package broker carries mutation events between boards: Redis Pub/Sub for
// the realtime broadcast channels, Kafka for the analytics feed.
package broker

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"

	"orderboard/board-svc/internal/domain"
)

// Publisher fans mutation events out to every connected board, one Pub/Sub
// channel per collection. Delivery is fire-and-forget: the broker owns
// reliability, the board only compensates with full re-fetches.
type Publisher struct {
	rdb *redis.Client
	ctx context.Context
}

func NewPublisher(rdb *redis.Client) *Publisher {
	return &Publisher{
		rdb: rdb,
		ctx: context.Background(),
	}
}

func (p *Publisher) Publish(channel, name string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	event, err := json.Marshal(domain.Event{Name: name, Data: payload})
	if err != nil {
		return err
	}
	return p.rdb.Publish(p.ctx, channel, event).Err()
}

// Subscriber delivers decoded broadcast events to a handler.
type Subscriber struct {
	rdb *redis.Client
}

func NewSubscriber(rdb *redis.Client) *Subscriber {
	return &Subscriber{rdb: rdb}
}

func (s *Subscriber) Listen(ctx context.Context, handler func(channel string, event domain.Event), channels ...string) error {
	sub := s.rdb.Subscribe(ctx, channels...)
	defer sub.Close()

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			var event domain.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("Error unmarshaling broadcast event: %v", err)
				continue
			}
			handler(msg.Channel, event)
		}
	}
}
