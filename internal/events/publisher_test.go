package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/WilliamClf/ecommerce-shop/internal/domain"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	m        sync.Mutex
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.m.Lock()
	defer w.m.Unlock()
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func header(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func sampleEvent() OrderPlaced {
	placed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	order := &domain.Order{ID: "o-1", Status: domain.OrderStatusNew}
	req := domain.OrderRequest{
		Customer: domain.EntityRef{ID: "c-1"},
		Status:   domain.OrderStatusNew,
		Total:    59.7,
		Items: []domain.OrderItemRequest{
			{Product: domain.EntityRef{ID: "p-1"}, Quantity: 3, Value: 19.9},
		},
	}
	return NewOrderPlaced(order, req, placed)
}

func TestNewOrderPlaced(t *testing.T) {
	event := sampleEvent()

	assert.Equal(t, "o-1", event.OrderID)
	assert.Equal(t, "c-1", event.CustomerID)
	assert.Equal(t, 59.7, event.Total)
	require.Len(t, event.Items, 1)
	assert.Equal(t, OrderPlacedItem{ProductID: "p-1", Quantity: 3, UnitPrice: 19.9}, event.Items[0])
}

func TestPublishOrderPlaced(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w}

	require.NoError(t, p.PublishOrderPlaced(context.Background(), sampleEvent()))

	require.Len(t, w.messages, 1)
	msg := w.messages[0]
	assert.Equal(t, "o-1", string(msg.Key))
	assert.Equal(t, EventTypeOrderPlaced, header(msg, "event_type"))
	assert.NotEmpty(t, header(msg, "event_id"))

	var decoded OrderPlaced
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	want := sampleEvent()
	assert.True(t, want.PlacedAt.Equal(decoded.PlacedAt))
	decoded.PlacedAt = want.PlacedAt
	assert.Equal(t, want, decoded)
}

func TestPublishOrderPlaced_WriterError(t *testing.T) {
	w := &fakeWriter{err: errors.New("no brokers")}
	p := &KafkaPublisher{writer: w}

	err := p.PublishOrderPlaced(context.Background(), sampleEvent())
	assert.ErrorContains(t, err, "no brokers")
	assert.ErrorContains(t, err, "o-1")
}

func TestKafkaPublisher_Close(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w}
	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestNewKafkaPublisher_DefaultTopic(t *testing.T) {
	p := NewKafkaPublisher("", "localhost:9092")
	w, ok := p.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, DefaultTopic, w.Topic)
	require.NoError(t, p.Close())
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.PublishOrderPlaced(context.Background(), sampleEvent()))
	assert.NoError(t, p.Close())
}
