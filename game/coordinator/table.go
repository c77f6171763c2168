package coordinator

// SessionTable maps each in-session connection to its session identifier.
// Both members of a session always map to the same identifier, and a
// connection appears here if and only if it is a member of that session.
type SessionTable struct {
	byConn map[string]string
}

// NewSessionTable creates an empty table.
func NewSessionTable() *SessionTable {
	return &SessionTable{
		byConn: make(map[string]string),
	}
}

// Attach records the mapping. Attaching an existing member again is
// idempotent; restart reuses the session identifier.
func (t *SessionTable) Attach(conn Conn, sessionID string) {
	t.byConn[conn.ID()] = sessionID
}

// Detach removes the connection's mapping.
func (t *SessionTable) Detach(conn Conn) {
	delete(t.byConn, conn.ID())
}

// SessionOf returns the session identifier the connection participates in.
// Absence means no active session.
func (t *SessionTable) SessionOf(conn Conn) (string, bool) {
	id, ok := t.byConn[conn.ID()]
	return id, ok
}
