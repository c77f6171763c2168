package coordinator

// Conn is the coordinator's handle to one bidirectional client channel. The
// coordinator owns metadata about the connection, never the channel itself.
type Conn interface {
	// ID returns a stable identity used for registry and table lookups.
	ID() string

	// Send queues an encoded message for delivery. Implementations must not
	// block the caller and must treat delivery to an already-closed peer as a
	// no-op; disconnect races are expected.
	Send(data []byte)
}
