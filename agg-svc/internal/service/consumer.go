package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/segmentio/kafka-go"

	"orderboard/agg-svc/internal/domain"
)

type Consumer struct {
	Reader *kafka.Reader
	Store  StoreInterface
}

func NewConsumer(reader *kafka.Reader, store StoreInterface) *Consumer {
	return &Consumer{
		Reader: reader,
		Store:  store,
	}
}

func (c *Consumer) Start(ctx context.Context) {
	log.Println("Starting Aggregation Service consumer...")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			log.Printf("Error reading message: %v", err)
			continue
		}

		var msg domain.OrderMessage
		if err := json.Unmarshal(message.Value, &msg); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}

		if msg.Type == domain.MessageOrderAdded {
			c.ProcessOrder(msg)
		}
	}
}

func (c *Consumer) ProcessOrder(msg domain.OrderMessage) {
	if msg.Type != domain.MessageOrderAdded {
		return
	}
	log.Printf("Processing order: ID=%s, Restaurant=%s, Amount=%.2f",
		msg.OrderID, msg.Restaurant, msg.Amount)

	if err := c.Store.RecordOrder(msg); err != nil {
		log.Printf("Error recording order: %v", err)
		return
	}

	log.Printf("Successfully recorded order %s", msg.OrderID)
}
