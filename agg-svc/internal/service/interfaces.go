package service

import (
	"context"

	"orderboard/agg-svc/internal/domain"
	"orderboard/agg-svc/internal/storage"
)

type StoreInterface interface {
	RecordOrder(msg domain.OrderMessage) error
}

type ConsumerInterface interface {
	Start(ctx context.Context)
	ProcessOrder(msg domain.OrderMessage)
}

var _ StoreInterface = (*storage.Store)(nil)
