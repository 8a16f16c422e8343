package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/shoe_shop/internal/models"
	"github.com/Skotchmaster/shoe_shop/pkg/mykafka"
)

type mockIndexer struct {
	mock.Mock
}

func (m *mockIndexer) Put(ctx context.Context, shoe *models.Shoe) error {
	return m.Called(ctx, shoe).Error(0)
}

func (m *mockIndexer) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func message(t *testing.T, ev mykafka.Event) kafka.Message {
	t.Helper()

	raw, err := json.Marshal(ev)
	require.NoError(t, err)
	return kafka.Message{Topic: mykafka.TopicShoeEvents, Value: raw}
}

func TestShoeEvents(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	id := uuid.New()

	idx := &mockIndexer{}
	idx.On("Put", mock.Anything, mock.MatchedBy(func(s *models.Shoe) bool { return s.ID == id && s.Brand == "Nike" })).Return(nil).Twice()
	idx.On("Delete", mock.Anything, id.String()).Return(nil).Once()
	handle := ShoeEvents(logger, idx)
	ctx := context.Background()

	shoe := models.Shoe{ID: id, Brand: "Nike", Model: "Air"}
	require.NoError(t, handle(ctx, message(t, mykafka.NewEvent(mykafka.EventShoeCreated, shoe))))
	require.NoError(t, handle(ctx, message(t, mykafka.NewEvent(mykafka.EventShoeUpdated, shoe))))
	require.NoError(t, handle(ctx, message(t, mykafka.NewEvent(mykafka.EventShoeDeleted, mykafka.DeletedShoe{ID: id}))))
	require.NoError(t, handle(ctx, message(t, mykafka.NewEvent("something_else", nil))))

	idx.AssertExpectations(t)
}

func TestShoeEvents_Failures(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	idx := &mockIndexer{}
	idx.On("Put", mock.Anything, mock.Anything).Return(errors.New("es down"))
	handle := ShoeEvents(logger, idx)
	ctx := context.Background()

	assert.Error(t, handle(ctx, kafka.Message{Value: []byte("{not json")}))
	assert.Error(t, handle(ctx, kafka.Message{Value: []byte(`{"type":"shoe_created","data":"nope"}`)}))
	assert.Error(t, handle(ctx, message(t, mykafka.NewEvent(mykafka.EventShoeCreated, models.Shoe{ID: uuid.New()}))))
}
