package mykafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	TopicUserEvents         = "user_events"
	TopicShoeEvents         = "shoe_events"
	TopicOrderEvents        = "order_events"
	TopicDeliveryEvents     = "delivery_events"
	TopicRefundEvents       = "refund_events"
	TopicNotificationEvents = "notification_events"
)

type Publisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

// Event is the envelope every topic carries.
type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data"`
}

func NewEvent(typ string, data any) Event {
	return Event{Type: typ, OccurredAt: time.Now().UTC(), Data: data}
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.Hash{},
			BatchTimeout:           10 * time.Millisecond,
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
	}
}

func (p *Producer) PublishEvent(ctx context.Context, topic, key string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write to %s failed: %w", topic, err)
	}
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

// LogPublisher stands in for Kafka when no brokers are configured.
type LogPublisher struct {
	Logger *slog.Logger
}

func (p LogPublisher) PublishEvent(ctx context.Context, topic, key string, event any) error {
	p.Logger.DebugContext(ctx, "event_not_published", "topic", topic, "key", key, "event", event)
	return nil
}

func (LogPublisher) Close() error { return nil }

// PublisherCloser is what service mains hold on to.
type PublisherCloser interface {
	Publisher
	Close() error
}

func NewPublisher(brokers []string, logger *slog.Logger) PublisherCloser {
	if len(brokers) == 0 {
		logger.Warn("kafka brokers not configured, events are only logged")
		return LogPublisher{Logger: logger}
	}
	return NewProducer(brokers)
}
