package coordinator

// WaitingPool holds at most one connection awaiting an opponent. A connection
// held here is never simultaneously mapped in the SessionTable.
type WaitingPool struct {
	waiting Conn
}

// NewWaitingPool creates an empty pool.
func NewWaitingPool() *WaitingPool {
	return &WaitingPool{}
}

// Offer places the connection into the pool or matches it against the one
// already held. It returns the matched opponent and true when a pair formed;
// the pool is cleared in that case and ownership of both connections passes
// to session creation. Offering the connection already held is a no-op: a
// connection is never matched with itself.
func (p *WaitingPool) Offer(conn Conn) (Conn, bool) {
	if p.waiting == nil {
		p.waiting = conn
		return nil, false
	}
	if p.waiting.ID() == conn.ID() {
		return nil, false
	}
	opponent := p.waiting
	p.waiting = nil
	return opponent, true
}

// Remove clears the pool if it currently holds this connection; otherwise it
// is a no-op. Called on disconnect.
func (p *WaitingPool) Remove(conn Conn) {
	if p.waiting != nil && p.waiting.ID() == conn.ID() {
		p.waiting = nil
	}
}

// Waiting returns the held connection, or nil when the pool is empty.
func (p *WaitingPool) Waiting() Conn {
	return p.waiting
}
