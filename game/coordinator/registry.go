package coordinator

// ConnectionRegistry maps each live connection to its display name. It is the
// source of truth for who is currently known to the server and preserves
// registration order for roster broadcasts.
//
// Display names are not unique; they are for display only.
type ConnectionRegistry struct {
	order []Conn
	names map[string]string
}

// NewConnectionRegistry creates an empty registry.
func NewConnectionRegistry() *ConnectionRegistry {
	return &ConnectionRegistry{
		names: make(map[string]string),
	}
}

// Register records the display name for a connection. Re-registering an
// already-known connection updates the name but keeps its roster position.
func (r *ConnectionRegistry) Register(conn Conn, name string) {
	if _, known := r.names[conn.ID()]; !known {
		r.order = append(r.order, conn)
	}
	r.names[conn.ID()] = name
}

// Unregister removes the connection's entry. Unknown connections are a no-op.
func (r *ConnectionRegistry) Unregister(conn Conn) {
	if _, known := r.names[conn.ID()]; !known {
		return
	}
	delete(r.names, conn.ID())
	for i, c := range r.order {
		if c.ID() == conn.ID() {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// NameOf returns the display name recorded for a connection.
func (r *ConnectionRegistry) NameOf(conn Conn) (string, bool) {
	name, ok := r.names[conn.ID()]
	return name, ok
}

// Names returns the current display names in registration order.
func (r *ConnectionRegistry) Names() []string {
	names := make([]string, 0, len(r.order))
	for _, conn := range r.order {
		names = append(names, r.names[conn.ID()])
	}
	return names
}

// Conns returns the registered connections in registration order.
func (r *ConnectionRegistry) Conns() []Conn {
	conns := make([]Conn, len(r.order))
	copy(conns, r.order)
	return conns
}

// Count returns the number of registered connections.
func (r *ConnectionRegistry) Count() int {
	return len(r.order)
}
