package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/piresc/roadassist/internal/pkg/constants"
	"github.com/piresc/roadassist/internal/pkg/logger"
	natspkg "github.com/piresc/roadassist/internal/pkg/nats"
)

// Relay forwards locally emitted events to the other nodes
type Relay interface {
	Publish(env Envelope) error
}

// Envelope is an emit or a room eviction mirrored between nodes
type Envelope struct {
	NodeID    string          `json:"node_id"`
	Room      string          `json:"room,omitempty"`
	Broadcast bool            `json:"broadcast,omitempty"`
	Filter    *Filter         `json:"filter,omitempty"`
	Evict     bool            `json:"evict,omitempty"`
	Keep      []uuid.UUID     `json:"keep,omitempty"`
	Event     string          `json:"event,omitempty"`
	Message   json.RawMessage `json:"message,omitempty"`
}

// Bus is the subset of the NATS client the relay needs
type Bus interface {
	PublishJSON(subject string, v interface{}) error
	Subscribe(subject string, handler natspkg.MessageHandler) (*nats.Subscription, error)
}

// NATSRelay mirrors room traffic over NATS. Messages carry the sending node
// id so a node never delivers its own emits twice.
type NATSRelay struct {
	bus    Bus
	nodeID string
	sub    *nats.Subscription
}

func NewNATSRelay(bus Bus, nodeID string) *NATSRelay {
	return &NATSRelay{bus: bus, nodeID: nodeID}
}

// Publish sends env to the other nodes
func (r *NATSRelay) Publish(env Envelope) error {
	env.NodeID = r.nodeID
	return r.bus.PublishJSON(constants.SubjectRoomEmit, env)
}

// Start delivers envelopes from other nodes into router and makes router
// publish through the relay
func (r *NATSRelay) Start(router *Router) error {
	sub, err := r.bus.Subscribe(constants.SubjectRoomEmit, func(data []byte) error {
		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			return fmt.Errorf("invalid relay envelope: %w", err)
		}
		if env.NodeID == r.nodeID {
			return nil
		}
		switch {
		case env.Broadcast:
			var f Filter
			if env.Filter != nil {
				f = *env.Filter
			}
			router.DeliverBroadcast(f, env.Message)
		case env.Evict:
			router.RemoveExcept(env.Room, env.Keep)
		case env.Room != "":
			router.DeliverRoom(env.Room, env.Message)
		}
		return nil
	})
	if err != nil {
		return err
	}
	r.sub = sub
	router.SetRelay(r)
	logger.Info("Room relay started", logger.String("node_id", r.nodeID))
	return nil
}

// Stop unsubscribes from the relay subject
func (r *NATSRelay) Stop() error {
	if r.sub == nil {
		return nil
	}
	return r.sub.Unsubscribe()
}
