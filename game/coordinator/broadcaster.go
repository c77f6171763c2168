package coordinator

import (
	"encoding/json"
	"log"
)

// Broadcaster encodes and delivers messages to one connection or to every
// registered connection. Delivery to a peer that is already gone is a silent
// no-op; transport failures never propagate back into the handlers.
type Broadcaster struct {
	registry *ConnectionRegistry
}

// NewBroadcaster creates a broadcaster over the given registry.
func NewBroadcaster(registry *ConnectionRegistry) *Broadcaster {
	return &Broadcaster{registry: registry}
}

// SendTo delivers one message to exactly one connection.
func (b *Broadcaster) SendTo(conn Conn, message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to marshal message for %s: %v", conn.ID(), err)
		return
	}
	conn.Send(data)
}

// Broadcast delivers one message to every currently registered connection.
func (b *Broadcaster) Broadcast(message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to marshal broadcast message: %v", err)
		return
	}
	for _, conn := range b.registry.Conns() {
		conn.Send(data)
	}
}
