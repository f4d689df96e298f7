// FILE: internal/service/event_relay.go
package service

import (
	"context"
	"encoding/json"

	"pixfusion-be/internal/pkg/logger"
	"pixfusion-be/internal/websocket"
	"pixfusion-be/pkg/events"
	pkgnats "pixfusion-be/pkg/nats"

	"github.com/google/uuid"
)

// EventRelay consumes the in-process event bus and fans events out: user
// events go to the websocket hub, and everything is republished to NATS for
// external consumers.
type EventRelay struct {
	bus  *events.Bus
	hub  *websocket.Hub
	nats *pkgnats.Publisher
	log  logger.ILogger
}

func NewEventRelay(bus *events.Bus, hub *websocket.Hub, nats *pkgnats.Publisher, log logger.ILogger) *EventRelay {
	return &EventRelay{bus: bus, hub: hub, nats: nats, log: log}
}

// Run blocks consuming the bus until ctx is cancelled or the bus closes.
func (r *EventRelay) Run(ctx context.Context) error {
	messages, err := r.bus.Subscribe(ctx)
	if err != nil {
		return err
	}

	for msg := range messages {
		var env events.Envelope
		if err := json.Unmarshal(msg.Payload, &env); err != nil {
			r.log.Warn("relay", "dropping malformed event", map[string]interface{}{"error": err.Error()})
			msg.Ack()
			continue
		}

		r.dispatch(ctx, env)
		msg.Ack()
	}
	return nil
}

func (r *EventRelay) dispatch(ctx context.Context, env events.Envelope) {
	if r.hub != nil {
		if userId, ok := userIdOf(env); ok {
			r.hub.Send(userId, env.Type, env.Payload)
		}
	}

	if r.nats != nil {
		if err := r.nats.PublishEnvelope(ctx, env); err != nil {
			r.log.Warn("relay", "nats republish failed", map[string]interface{}{
				"type":  env.Type,
				"error": err.Error(),
			})
		}
	}
}

func userIdOf(env events.Envelope) (uuid.UUID, bool) {
	raw, ok := env.Payload["user_id"].(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
