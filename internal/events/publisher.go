// Package events publishes order lifecycle events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"menuboard/internal/models"

	"github.com/segmentio/kafka-go"
)

// OrderCreatedType is the event type written for new orders.
const OrderCreatedType = "order.created"

// OrderLine is one product of an order event.
type OrderLine struct {
	ProductID string  `json:"productID"`
	Name      string  `json:"name,omitempty"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// OrderCreated is the payload of an order.created event.
type OrderCreated struct {
	Type         string      `json:"type"`
	OrderID      string      `json:"orderID"`
	RestaurantID string      `json:"restaurantID"`
	Table        string      `json:"table"`
	Lines        []OrderLine `json:"lines"`
	Subtotal     float64     `json:"subtotal"`
	Tax          float64     `json:"tax"`
	Total        float64     `json:"total"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// NewOrderCreated builds the event for a stored order.
func NewOrderCreated(order *models.Order) OrderCreated {
	lines := make([]OrderLine, 0, len(order.Products))
	for _, p := range order.Products {
		line := OrderLine{ProductID: p.ProductID, Quantity: p.Quantity, UnitPrice: p.UnitPrice}
		if p.Product != nil {
			line.Name = p.Product.Name
		}
		lines = append(lines, line)
	}
	return OrderCreated{
		Type:         OrderCreatedType,
		OrderID:      order.ID,
		RestaurantID: order.RestaurantID,
		Table:        order.Table,
		Lines:        lines,
		Subtotal:     order.Subtotal,
		Tax:          order.Tax,
		Total:        order.Total,
		CreatedAt:    order.CreatedAt,
	}
}

// OrderPublisher publishes order events.
type OrderPublisher interface {
	PublishOrderCreated(ctx context.Context, order *models.Order) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes order events keyed by restaurant, so one restaurant's
// events stay ordered within a partition.
type KafkaPublisher struct {
	writer messageWriter
}

// NewKafkaWriter builds the writer for topic on brokers.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		WriteTimeout:           5 * time.Second,
	}
}

// NewKafkaPublisher wraps a kafka writer.
func NewKafkaPublisher(writer messageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

// PublishOrderCreated implements OrderPublisher.
func (p *KafkaPublisher) PublishOrderCreated(ctx context.Context, order *models.Order) error {
	payload, err := json.Marshal(NewOrderCreated(order))
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}
	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(order.RestaurantID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(OrderCreatedType)},
		},
	}); err != nil {
		return fmt.Errorf("publish order event: %w", err)
	}
	return nil
}

// Close flushes and closes the writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

// PublishOrderCreated implements OrderPublisher.
func (NoopPublisher) PublishOrderCreated(context.Context, *models.Order) error { return nil }

// Close implements OrderPublisher.
func (NoopPublisher) Close() error { return nil }
