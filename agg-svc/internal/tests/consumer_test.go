package tests

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"orderboard/agg-svc/internal/domain"
	"orderboard/agg-svc/internal/mocks"
	"orderboard/agg-svc/internal/service"
)

func orderMessage(msgType string) domain.OrderMessage {
	return domain.OrderMessage{
		Type:       msgType,
		OrderID:    "o1",
		Restaurant: "Tacos El Rey",
		Amount:     100,
		Timestamp:  time.Date(2024, 3, 4, 14, 0, 0, 0, time.UTC),
	}
}

func TestProcessOrder(t *testing.T) {
	tests := []struct {
		name      string
		msg       domain.OrderMessage
		setupMock func(store *mocks.StoreInterface)
	}{
		{
			name: "records order_added message",
			msg:  orderMessage(domain.MessageOrderAdded),
			setupMock: func(store *mocks.StoreInterface) {
				store.On("RecordOrder", orderMessage(domain.MessageOrderAdded)).Return(nil)
			},
		},
		{
			name: "store failure is swallowed",
			msg:  orderMessage(domain.MessageOrderAdded),
			setupMock: func(store *mocks.StoreInterface) {
				store.On("RecordOrder", mock.Anything).Return(errors.New("redis down"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewStoreInterface(t)
			tt.setupMock(store)

			consumer := service.NewConsumer(nil, store)
			consumer.ProcessOrder(tt.msg)
		})
	}
}

func TestProcessOrder_IgnoresOtherMessageTypes(t *testing.T) {
	store := mocks.NewStoreInterface(t)

	consumer := service.NewConsumer(nil, store)
	consumer.ProcessOrder(orderMessage("order_removed"))

	store.AssertNotCalled(t, "RecordOrder", mock.Anything)
}
