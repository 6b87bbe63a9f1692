package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// TypeOrderCompleted is emitted once an order passes checkout.
const TypeOrderCompleted = "order.completed"

// OrderCompleted describes a finished checkout.
type OrderCompleted struct {
	OrderID       string          `json:"order_id"`
	CustomerID    string          `json:"customer_id"`
	TransactionID string          `json:"transaction_id"`
	Total         decimal.Decimal `json:"total"`
	ItemCount     int             `json:"item_count"`
	CompletedAt   time.Time       `json:"completed_at"`
}

// Publisher announces order lifecycle events.
type Publisher interface {
	PublishOrderCompleted(ctx context.Context, evt OrderCompleted) error
}

// Sender is the transport used by BrokerPublisher; *rabbitmq.Client satisfies it.
type Sender interface {
	Publish(eventType string, body []byte) error
}

// BrokerPublisher publishes through a Sender guarded by a circuit breaker.
// While the breaker is open, publishes fail immediately with gobreaker.ErrOpenState.
type BrokerPublisher struct {
	sender Sender
	cb     *gobreaker.CircuitBreaker[struct{}]
	log    *zap.Logger
}

func NewBrokerPublisher(sender Sender, log *zap.Logger) *BrokerPublisher {
	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "order-events",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
	return &BrokerPublisher{sender: sender, cb: cb, log: log}
}

func (p *BrokerPublisher) PublishOrderCompleted(ctx context.Context, evt OrderCompleted) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", TypeOrderCompleted, err)
	}

	_, err = p.cb.Execute(func() (struct{}, error) {
		return struct{}{}, p.sender.Publish(TypeOrderCompleted, body)
	})
	if err != nil {
		return fmt.Errorf("publish %s for order %s: %w", TypeOrderCompleted, evt.OrderID, err)
	}
	return nil
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishOrderCompleted(context.Context, OrderCompleted) error { return nil }

// LogHandler returns a consumer callback that decodes and logs order events.
func LogHandler(log *zap.Logger) func(eventType string, body []byte) error {
	return func(eventType string, body []byte) error {
		switch eventType {
		case TypeOrderCompleted:
			var evt OrderCompleted
			if err := json.Unmarshal(body, &evt); err != nil {
				return fmt.Errorf("decode %s: %w", eventType, err)
			}
			log.Info("order completed",
				zap.String("order_id", evt.OrderID),
				zap.String("customer_id", evt.CustomerID),
				zap.String("transaction_id", evt.TransactionID),
				zap.String("total", evt.Total.StringFixed(2)),
				zap.Int("item_count", evt.ItemCount))
			return nil
		default:
			return errors.New("unknown event type " + eventType)
		}
	}
}
