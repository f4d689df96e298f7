package websocket

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quietLogger struct{}

func (quietLogger) Debug(string, string, map[string]interface{}) {}
func (quietLogger) Info(string, string, map[string]interface{})  {}
func (quietLogger) Warn(string, string, map[string]interface{})  {}
func (quietLogger) Error(string, string, map[string]interface{}) {}
func (quietLogger) Sync() error                                  { return nil }

func registerTestClient(hub *Hub, userId uuid.UUID) *Client {
	client := &Client{Hub: hub, UserID: userId, Send: make(chan []byte, 1)}
	hub.clients[userId] = []*Client{client}
	return client
}

func TestClusterMessageFromAnotherInstanceIsDelivered(t *testing.T) {
	hub := NewHub(nil, quietLogger{})
	userId := uuid.New()
	client := registerTestClient(hub, userId)

	envelope, err := json.Marshal(clusterEnvelope{
		Origin:       "some-other-instance",
		TargetUserID: userId.String(),
		Message:      json.RawMessage(`{"type":"generation.finished"}`),
	})
	require.NoError(t, err)

	hub.handleClusterMessage(string(envelope))

	select {
	case msg := <-client.Send:
		assert.JSONEq(t, `{"type":"generation.finished"}`, string(msg))
	default:
		t.Fatal("expected a push for the target user")
	}
}

// The publishing instance hears its own cluster message back from Redis; its
// local clients already received the direct push and must not get a second.
func TestClusterMessageFromSelfIsDropped(t *testing.T) {
	hub := NewHub(nil, quietLogger{})
	userId := uuid.New()
	client := registerTestClient(hub, userId)

	envelope, err := json.Marshal(clusterEnvelope{
		Origin:       hub.instanceID,
		TargetUserID: userId.String(),
		Message:      json.RawMessage(`{"type":"generation.finished"}`),
	})
	require.NoError(t, err)

	hub.handleClusterMessage(string(envelope))

	select {
	case <-client.Send:
		t.Fatal("loopback message must not be delivered twice")
	default:
	}
}

func TestClusterMessageForOtherUserIsIgnored(t *testing.T) {
	hub := NewHub(nil, quietLogger{})
	client := registerTestClient(hub, uuid.New())

	envelope, err := json.Marshal(clusterEnvelope{
		Origin:       "some-other-instance",
		TargetUserID: uuid.NewString(),
		Message:      json.RawMessage(`{}`),
	})
	require.NoError(t, err)

	hub.handleClusterMessage(string(envelope))

	select {
	case <-client.Send:
		t.Fatal("message targeted another user")
	default:
	}
}
