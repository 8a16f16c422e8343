package mykafka

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Skotchmaster/shoe_shop/pkg/retry"
)

type HandlerFunc func(ctx context.Context, m kafka.Message) error

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer reads one topic in a consumer group. Messages the handler rejects
// go to "<topic>-dlq" and are committed so the group keeps moving.
type Consumer struct {
	logger *slog.Logger
	reader messageReader
	dlq    messageWriter
	handle HandlerFunc

	fetchBackoff retry.Config
	dlqRetry     retry.Config
}

func NewConsumer(logger *slog.Logger, brokers []string, groupID, topic string, handle HandlerFunc) *Consumer {
	return &Consumer{
		logger: logger.With("consumer", topic),
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			GroupID: groupID,
			Topic:   topic,
			MaxWait: 500 * time.Millisecond,
		}),
		dlq: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
		},
		handle:       handle,
		fetchBackoff: retry.Config{InitialDelay: 200 * time.Millisecond, MaxDelay: 10 * time.Second},
		dlqRetry:     retry.Config{MaxAttempts: 5, InitialDelay: 200 * time.Millisecond, MaxDelay: 5 * time.Second},
	}
}

// Run handles messages until ctx is done. A message that can be neither
// handled nor dead-lettered stops the consumer uncommitted, so the group
// delivers it again after a restart.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := retry.NewBackoff(c.fetchBackoff)
	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return nil
			}
			c.logger.Error("fetch_message_failed", "error", err)
			if backoff.Wait(ctx) != nil {
				return nil
			}
			continue
		}
		backoff.Reset()

		if err := c.handle(ctx, m); err != nil {
			c.logger.Error("handle_message_failed", "offset", m.Offset, "error", err)
			err = retry.Do(ctx, c.dlqRetry, func() error { return c.writeToDLQ(ctx, m) })
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				c.logger.Error("write_dlq_failed", "offset", m.Offset, "error", err)
				return fmt.Errorf("dead-letter %s offset %d: %w", m.Topic, m.Offset, err)
			}
		}

		if err := c.reader.CommitMessages(ctx, m); err != nil {
			c.logger.Error("commit_failed", "offset", m.Offset, "error", err)
		}
	}
}

func (c *Consumer) writeToDLQ(ctx context.Context, m kafka.Message) error {
	return c.dlq.WriteMessages(ctx, kafka.Message{
		Topic: m.Topic + "-dlq",
		Key:   m.Key,
		Value: m.Value,
	})
}

func (c *Consumer) Close() error {
	if err := c.reader.Close(); err != nil {
		return err
	}
	return c.dlq.Close()
}
