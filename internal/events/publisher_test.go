package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"menuboard/internal/models"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
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

func testOrder() *models.Order {
	return &models.Order{
		Document:     models.Document{ID: "order-1"},
		RestaurantID: "fonda",
		Table:        "4",
		Products: []models.OrderProduct{
			{ProductID: "pizza", Quantity: 2, UnitPrice: 12000, Product: &models.MenuItem{Name: "Pizza"}},
		},
		Subtotal: 24000,
		Tax:      1920,
		Total:    25920,
	}
}

func TestKafkaPublisher_PublishOrderCreated(t *testing.T) {
	w := &fakeWriter{}
	p := NewKafkaPublisher(w)

	require.NoError(t, p.PublishOrderCreated(context.Background(), testOrder()))
	require.Len(t, w.messages, 1)

	msg := w.messages[0]
	assert.Equal(t, "fonda", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, OrderCreatedType, string(msg.Headers[0].Value))

	var evt OrderCreated
	require.NoError(t, json.Unmarshal(msg.Value, &evt))
	assert.Equal(t, OrderCreatedType, evt.Type)
	assert.Equal(t, "order-1", evt.OrderID)
	assert.Equal(t, 25920.0, evt.Total)
	require.Len(t, evt.Lines, 1)
	assert.Equal(t, "Pizza", evt.Lines[0].Name)
	assert.Equal(t, 2, evt.Lines[0].Quantity)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	p := NewKafkaPublisher(&fakeWriter{err: errors.New("broker down")})

	err := p.PublishOrderCreated(context.Background(), testOrder())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}

func TestNewKafkaWriter(t *testing.T) {
	w := NewKafkaWriter([]string{"localhost:9092"}, "orders")
	assert.Equal(t, "orders", w.Topic)
	assert.Equal(t, "localhost:9092", w.Addr.String())
	require.NoError(t, NoopPublisher{}.PublishOrderCreated(context.Background(), testOrder()))
}
