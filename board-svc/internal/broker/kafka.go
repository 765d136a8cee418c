package broker

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"orderboard/board-svc/internal/domain"
)

type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// OrderFeed emits order mutations to the aggregation service's topic.
type OrderFeed struct {
	Writer KafkaWriter
}

func NewOrderFeed(writer KafkaWriter) *OrderFeed {
	return &OrderFeed{Writer: writer}
}

func (f *OrderFeed) Emit(msg domain.OrderMessage) error {
	value, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return f.Writer.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(msg.OrderID),
		Value: value,
	})
}
