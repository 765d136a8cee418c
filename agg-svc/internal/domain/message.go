package domain

import "time"

type OrderMessage struct {
	Type       string    `json:"type"`
	OrderID    string    `json:"order_id"`
	Restaurant string    `json:"restaurant"`
	Amount     float64   `json:"amount"`
	Timestamp  time.Time `json:"timestamp"`
}

const MessageOrderAdded = "order_added"
