package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/shoe_shop/pkg/mykafka"
	"github.com/Skotchmaster/shoe_shop/pkg/tokens"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishEvent(ctx context.Context, topic, key string, event any) error {
	args := m.Called(ctx, topic, key, event)
	return args.Error(0)
}

// EventOfType matches a mykafka.Event argument by its type field.
func EventOfType(typ string) any {
	return mock.MatchedBy(func(e mykafka.Event) bool { return e.Type == typ })
}

// AcceptAll returns a publisher that accepts any event.
func AcceptAll() *MockPublisher {
	p := &MockPublisher{}
	p.On("PublishEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	return p
}

var TestSecret = []byte("test-secret")

// Bearer returns an "Authorization" header value for sub and role signed with TestSecret.
func Bearer(t *testing.T, sub, role string) string {
	t.Helper()

	tok, err := tokens.SignAccess(sub, role, time.Now().Add(time.Hour), TestSecret)
	require.NoError(t, err)
	return "Bearer " + tok
}
