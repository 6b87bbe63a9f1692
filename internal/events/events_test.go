package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"warung/internal/events"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Publish(eventType string, body []byte) error {
	args := m.Called(eventType, body)
	return args.Error(0)
}

func sampleEvent() events.OrderCompleted {
	return events.OrderCompleted{
		OrderID:       "order-1",
		CustomerID:    "customer-1",
		TransactionID: "tx-1",
		Total:         decimal.RequireFromString("25.50"),
		ItemCount:     3,
		CompletedAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestBrokerPublisher_PublishesJSON(t *testing.T) {
	sender := new(MockSender)
	publisher := events.NewBrokerPublisher(sender, zap.NewNop())

	sender.On("Publish", events.TypeOrderCompleted, mock.MatchedBy(func(body []byte) bool {
		var evt events.OrderCompleted
		if err := json.Unmarshal(body, &evt); err != nil {
			return false
		}
		return evt.OrderID == "order-1" && evt.Total.Equal(decimal.RequireFromString("25.5"))
	})).Return(nil).Once()

	err := publisher.PublishOrderCompleted(context.Background(), sampleEvent())
	assert.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestBrokerPublisher_OpensAfterConsecutiveFailures(t *testing.T) {
	sender := new(MockSender)
	publisher := events.NewBrokerPublisher(sender, zap.NewNop())
	brokerDown := errors.New("connection refused")

	sender.On("Publish", events.TypeOrderCompleted, mock.Anything).Return(brokerDown).Times(5)

	for i := 0; i < 5; i++ {
		err := publisher.PublishOrderCompleted(context.Background(), sampleEvent())
		assert.ErrorIs(t, err, brokerDown)
	}

	// The breaker is open now: the sender is not called again.
	err := publisher.PublishOrderCompleted(context.Background(), sampleEvent())
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	sender.AssertExpectations(t)
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, events.NopPublisher{}.PublishOrderCompleted(context.Background(), sampleEvent()))
}

func TestLogHandler(t *testing.T) {
	handle := events.LogHandler(zap.NewNop())

	body, err := json.Marshal(sampleEvent())
	require.NoError(t, err)
	assert.NoError(t, handle(events.TypeOrderCompleted, body))
	assert.Error(t, handle(events.TypeOrderCompleted, []byte("{")))
	assert.Error(t, handle("order.unknown", body))
}
