// Package events publishes storefront events to kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/WilliamClf/ecommerce-shop/internal/domain"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	DefaultTopic         = "storefront-orders"
	EventTypeOrderPlaced = "order_placed"
	eventTypeHeader      = "event_type"
	eventIDHeader        = "event_id"
)

type OrderPlacedItem struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type OrderPlaced struct {
	OrderID    string            `json:"order_id"`
	CustomerID string            `json:"customer_id"`
	Items      []OrderPlacedItem `json:"items"`
	Total      float64           `json:"total"`
	PlacedAt   time.Time         `json:"placed_at"`
}

// NewOrderPlaced builds the event for an order the backend accepted.
func NewOrderPlaced(order *domain.Order, req domain.OrderRequest, placedAt time.Time) OrderPlaced {
	items := make([]OrderPlacedItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, OrderPlacedItem{ProductID: it.Product.ID, Quantity: it.Quantity, UnitPrice: it.Value})
	}
	return OrderPlaced{
		OrderID:    order.ID,
		CustomerID: req.Customer.ID,
		Items:      items,
		Total:      req.Total,
		PlacedAt:   placedAt.UTC(),
	}
}

type Publisher interface {
	PublishOrderPlaced(ctx context.Context, event OrderPlaced) error
	Close() error
}

// messageWriter is implemented by *kafka.Writer.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(topic string, brokers ...string) *KafkaPublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireOne,
	}
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) PublishOrderPlaced(ctx context.Context, event OrderPlaced) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order placed event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID), // keeps events of one order on one partition
		Value: payload,
		Headers: []kafka.Header{
			{Key: eventTypeHeader, Value: []byte(EventTypeOrderPlaced)},
			{Key: eventIDHeader, Value: []byte(uuid.NewString())},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish order %s: %w", event.OrderID, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops every event. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishOrderPlaced(context.Context, OrderPlaced) error { return nil }
func (NopPublisher) Close() error                                          { return nil }
