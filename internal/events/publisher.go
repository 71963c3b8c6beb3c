package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/fsobarzo/resto-orders/internal/config"
	"github.com/fsobarzo/resto-orders/internal/domain"
	"github.com/fsobarzo/resto-orders/internal/pkg/retry"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// NewWriter builds the kafka writer for the order-created topic.
func NewWriter(brokers []string, topic string) *kafkago.Writer {
	return &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}
}

// OrderCreated is the event emitted after an order has been charged and
// persisted. It never carries the payment token.
type OrderCreated struct {
	EventID       string    `json:"event_id"`
	OrderID       int64     `json:"order_id"`
	ChargeID      string    `json:"charge_id"`
	Amount        int64     `json:"amount"`
	City          string    `json:"city"`
	State         string    `json:"state"`
	PaymentMethod string    `json:"payment_method"`
	DishIDs       []int64   `json:"dish_ids"`
	UserID        *int64    `json:"user_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Publisher emits order-created events best effort: a failed publish is the
// caller's to log, never to fail the order on.
type Publisher struct {
	writer      Writer
	retryPolicy config.Retry
	logger      *zap.Logger
}

func NewPublisher(writer Writer, retryPolicy config.Retry, logger *zap.Logger) *Publisher {
	return &Publisher{
		writer:      writer,
		retryPolicy: retryPolicy,
		logger:      logger,
	}
}

func (p *Publisher) OrderCreated(ctx context.Context, order *domain.Order) error {
	ev := OrderCreated{
		EventID:       uuid.NewString(),
		OrderID:       order.ID,
		ChargeID:      order.ChargeID,
		Amount:        order.Amount,
		City:          order.City,
		State:         order.State,
		PaymentMethod: order.PaymentMethod,
		CreatedAt:     order.CreatedAt,
	}
	for _, d := range order.Dishes {
		ev.DishIDs = append(ev.DishIDs, d.ID)
	}
	if order.User != nil {
		ev.UserID = &order.User.ID
	}

	value, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	msg := kafkago.Message{
		Key:   []byte(strconv.FormatInt(order.ID, 10)),
		Value: value,
		Time:  time.Now(),
	}

	err = retry.Do(ctx, p.retryPolicy, func() error {
		return p.writer.WriteMessages(ctx, msg)
	})
	if err != nil {
		return err
	}

	p.logger.Debug("order event published",
		zap.String("event_id", ev.EventID),
		zap.Int64("order_id", order.ID),
	)
	return nil
}

func (p *Publisher) Close() error { return p.writer.Close() }
