package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sneha01vaish/BackendAPICartItem/internal/domain"
	pkgkafka "github.com/sneha01vaish/BackendAPICartItem/pkg/kafka"
	"github.com/sneha01vaish/BackendAPICartItem/pkg/logger"
)

// Kafka topics for cart events.
const (
	TopicCartUpdated = "storefront.cart.updated"
	TopicCartCleared = "storefront.cart.cleared"
)

// Event types carried in the envelope.
const (
	TypeCartUpdated = "cart.updated"
	TypeCartCleared = "cart.cleared"
)

// Source identifies this service in event envelopes.
const Source = "storefront-api"

// CartUpdatedData is the payload of a cart.updated event.
type CartUpdatedData struct {
	SessionID string         `json:"session_id"`
	Items     []CartItemData `json:"items"`
	ItemCount int            `json:"item_count"`
	Total     string         `json:"total"`
}

// CartItemData is one line within CartUpdatedData.
type CartItemData struct {
	ProductID int    `json:"product_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
}

// CartClearedData is the payload of a cart.cleared event.
type CartClearedData struct {
	SessionID string `json:"session_id"`
}

type publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes cart events to Kafka.
type Producer struct {
	kafka  publisher
	logger *slog.Logger
}

// NewProducer creates a cart event producer on top of a Kafka producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{kafka: kafka, logger: logger}
}

// NewCartUpdatedData builds the cart.updated payload.
func NewCartUpdatedData(cart *domain.Cart) CartUpdatedData {
	items := make([]CartItemData, len(cart.Items))
	for i, item := range cart.Items {
		items[i] = CartItemData{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price.StringFixed(2),
			Quantity:  item.Quantity,
		}
	}

	return CartUpdatedData{
		SessionID: cart.SessionID,
		Items:     items,
		ItemCount: cart.ItemCount(),
		Total:     cart.Total().StringFixed(2),
	}
}

// PublishCartUpdated publishes a cart.updated event keyed by session.
func (p *Producer) PublishCartUpdated(ctx context.Context, cart *domain.Cart) error {
	return p.publish(ctx, TopicCartUpdated, TypeCartUpdated, cart.SessionID, NewCartUpdatedData(cart))
}

// PublishCartCleared publishes a cart.cleared event keyed by session.
func (p *Producer) PublishCartCleared(ctx context.Context, sessionID string) error {
	return p.publish(ctx, TopicCartCleared, TypeCartCleared, sessionID, CartClearedData{SessionID: sessionID})
}

func (p *Producer) publish(ctx context.Context, topic, eventType, sessionID string, data any) error {
	event, err := pkgkafka.NewEvent(eventType, sessionID, Source, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", eventType, err)
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		event.WithCorrelationID(id)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", eventType, err)
	}

	p.logger.DebugContext(ctx, "published cart event",
		slog.String("event_type", eventType),
		slog.String("session_id", sessionID),
	)
	return nil
}

// NoopPublisher discards events. It is used when Kafka is disabled.
type NoopPublisher struct{}

// PublishCartUpdated does nothing.
func (NoopPublisher) PublishCartUpdated(context.Context, *domain.Cart) error { return nil }

// PublishCartCleared does nothing.
func (NoopPublisher) PublishCartCleared(context.Context, string) error { return nil }
