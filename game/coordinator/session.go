package coordinator

import "github.com/gridduel/gridduel/game/engine"

// Session is one active or just-finished match between exactly two
// connections. Seat 0 is the connection that was waiting when the match
// formed; it holds the "first" symbol and opens every game, rematches
// included. Names are index-aligned with Conns.
type Session struct {
	ID    string
	Conns [2]Conn
	Names [2]string
	Game  *engine.Game
}

// seatOf returns the seat index held by conn within the session.
func (s *Session) seatOf(conn Conn) (int, bool) {
	for i, c := range s.Conns {
		if c.ID() == conn.ID() {
			return i, true
		}
	}
	return 0, false
}
