package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Publisher is the in-process event bus contract. Services publish through
// it without knowing who listens.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// InProcessTopic carries every platform event inside the process. Consumers
// filter by the embedded event type.
const InProcessTopic = "platform.events"

// Envelope is the wire form of an event on the in-process bus.
type Envelope struct {
	Type      string                 `json:"type"`
	Payload   map[string]interface{} `json:"payload"`
	Timestamp string                 `json:"timestamp"`
}

// Bus is a watermill gochannel pub/sub shared by the publisher and the
// consumers wired at bootstrap.
type Bus struct {
	pubsub *gochannel.GoChannel
}

func NewBus() *Bus {
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: 64,
		}, watermill.NopLogger{}),
	}
}

func (b *Bus) Publish(ctx context.Context, event Event) error {
	env := Envelope{
		Type:      event.EventType(),
		Payload:   event.Payload(),
		Timestamp: event.Timestamp().Format("2006-01-02T15:04:05.000Z07:00"),
	}
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.SetContext(ctx)
	return b.pubsub.Publish(InProcessTopic, msg)
}

// Subscribe returns a channel of envelopes for consumers.
func (b *Bus) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return b.pubsub.Subscribe(ctx, InProcessTopic)
}

func (b *Bus) Close() error {
	return b.pubsub.Close()
}
