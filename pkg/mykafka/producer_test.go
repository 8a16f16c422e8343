package mykafka

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent_Envelope(t *testing.T) {
	t.Parallel()

	ev := NewEvent("order_placed", map[string]string{"orderId": "o1"})

	raw, err := json.Marshal(ev)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "order_placed", decoded["type"])
	assert.Equal(t, map[string]any{"orderId": "o1"}, decoded["data"])
	assert.WithinDuration(t, time.Now(), ev.OccurredAt, time.Second)
}

func TestNewPublisher_WithoutBrokersLogsOnly(t *testing.T) {
	t.Parallel()

	p := NewPublisher(nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, ok := p.(LogPublisher)
	require.True(t, ok)

	assert.NoError(t, p.PublishEvent(context.Background(), TopicOrderEvents, "o1", NewEvent("order_placed", nil)))
	assert.NoError(t, p.Close())
}
