package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/Skotchmaster/shoe_shop/internal/models"
	"github.com/Skotchmaster/shoe_shop/pkg/mykafka"
)

// Indexer is the part of the search index the consumer writes to.
type Indexer interface {
	Put(ctx context.Context, shoe *models.Shoe) error
	Delete(ctx context.Context, id string) error
}

type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ShoeEvents returns a handler that mirrors catalog events into idx.
// Returned errors send the message to the dead letter topic.
func ShoeEvents(logger *slog.Logger, idx Indexer) mykafka.HandlerFunc {
	return func(ctx context.Context, m kafka.Message) error {
		var ev envelope
		if err := json.Unmarshal(m.Value, &ev); err != nil {
			return fmt.Errorf("decode envelope: %w", err)
		}

		switch ev.Type {
		case mykafka.EventShoeCreated, mykafka.EventShoeUpdated:
			var shoe models.Shoe
			if err := json.Unmarshal(ev.Data, &shoe); err != nil {
				return fmt.Errorf("decode %s: %w", ev.Type, err)
			}
			if err := idx.Put(ctx, &shoe); err != nil {
				return err
			}
			logger.Debug("shoe_indexed", "shoe_id", shoe.ID, "type", ev.Type)
		case mykafka.EventShoeDeleted:
			var del mykafka.DeletedShoe
			if err := json.Unmarshal(ev.Data, &del); err != nil {
				return fmt.Errorf("decode %s: %w", ev.Type, err)
			}
			if err := idx.Delete(ctx, del.ID.String()); err != nil {
				return err
			}
			logger.Debug("shoe_unindexed", "shoe_id", del.ID)
		default:
			logger.Warn("unknown_event_skipped", "type", ev.Type, "offset", m.Offset)
		}
		return nil
	}
}
