package coordinator

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/gridduel/gridduel/game/engine"
)

// Coordinator is the single actor owning all matchmaking and session state.
// One mutex guards the registry, the waiting pool, the session table, and the
// live sessions together; every inbound event runs to completion under it.
type Coordinator struct {
	mu       sync.Mutex
	registry *ConnectionRegistry
	pool     *WaitingPool
	table    *SessionTable
	sessions map[string]*Session
	cast     *Broadcaster
	newGame  func() *engine.Game
}

// New creates a coordinator using the default outcome evaluator.
func New() *Coordinator {
	return NewWithEvaluator(nil)
}

// NewWithEvaluator creates a coordinator whose sessions use the provided
// outcome evaluator. A nil evaluator falls back to the default rule set.
func NewWithEvaluator(evaluate engine.Evaluator) *Coordinator {
	registry := NewConnectionRegistry()
	return &Coordinator{
		registry: registry,
		pool:     NewWaitingPool(),
		table:    NewSessionTable(),
		sessions: make(map[string]*Session),
		cast:     NewBroadcaster(registry),
		newGame: func() *engine.Game {
			return engine.NewGameWithEvaluator(evaluate)
		},
	}
}

// Dispatch decodes one inbound frame and routes it to the matching handler.
// Malformed frames and unknown types are dropped without a reply.
func (c *Coordinator) Dispatch(conn Conn, raw []byte) {
	var msg Inbound
	if err := json.Unmarshal(raw, &msg); err != nil {
		log.Printf("Dropping malformed message from %s: %v", conn.ID(), err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	switch msg.Type {
	case TypeJoin:
		c.handleJoin(conn, msg.Name)
	case TypeMove:
		if msg.Index == nil {
			return
		}
		c.handleMove(conn, *msg.Index)
	case TypeRestart:
		c.handleRestart(conn)
	default:
		log.Printf("Dropping message with unknown type %q from %s", msg.Type, conn.ID())
	}
}

// Disconnect tears down everything associated with a closed connection. The
// transport must call it exactly once per connection loss.
func (c *Coordinator) Disconnect(conn Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.handleDisconnect(conn)
}

// handleJoin registers the connection, announces the roster, and either
// parks the connection in the waiting pool or matches it against the one
// already waiting.
func (c *Coordinator) handleJoin(conn Conn, name string) {
	c.registry.Register(conn, name)
	c.broadcastRoster()

	// A joined message from a connection already in a session has no
	// matchmaking effect; the name update above is all that happens.
	if _, ok := c.table.SessionOf(conn); ok {
		return
	}

	opponent, matched := c.pool.Offer(conn)
	if !matched {
		return
	}

	opponentName, ok := c.registry.NameOf(opponent)
	if !ok {
		// The waiting connection vanished without a disconnect event. Treat
		// the joiner as the new waiter rather than pairing with a ghost.
		log.Printf("Waiting connection %s missing from registry, requeueing %s", opponent.ID(), conn.ID())
		c.pool.Offer(conn)
		return
	}

	c.createSession(opponent, opponentName, conn, name)
}

// createSession pairs the longer-waiting connection into seat 0 and the
// joiner into seat 1, then tells both sides the game started.
func (c *Coordinator) createSession(first Conn, firstName string, second Conn, secondName string) {
	sess := &Session{
		ID:    uuid.NewString(),
		Conns: [2]Conn{first, second},
		Names: [2]string{firstName, secondName},
		Game:  c.newGame(),
	}
	c.sessions[sess.ID] = sess
	c.table.Attach(first, sess.ID)
	c.table.Attach(second, sess.ID)

	c.sendStart(sess)

	log.Printf("Session %s started: %q vs %q", sess.ID, firstName, secondName)
}

// sendStart sends each member its personal game_start view. Used for both
// session creation and restart, which are identical on the wire.
func (c *Coordinator) sendStart(sess *Session) {
	current := sess.Names[sess.Game.Turn()]
	for seat, conn := range sess.Conns {
		c.cast.SendTo(conn, GameStart{
			Type:          TypeGameStart,
			Symbol:        engine.SymbolFor(seat),
			Opponent:      sess.Names[1-seat],
			CurrentPlayer: current,
		})
	}
}

// handleMove applies a move for the sender's session, if any, and relays the
// resulting event to both members. Rejected moves produce no reply.
func (c *Coordinator) handleMove(conn Conn, index int) {
	sess, seat, ok := c.memberSession(conn)
	if !ok {
		return
	}

	switch sess.Game.ApplyMove(seat, index) {
	case engine.MoveAdvanced:
		update := GameUpdate{
			Type:          TypeGameUpdate,
			GameState:     sess.Game.Board(),
			CurrentPlayer: sess.Names[sess.Game.Turn()],
		}
		c.cast.SendTo(sess.Conns[0], update)
		c.cast.SendTo(sess.Conns[1], update)

	case engine.MoveWon:
		winner := sess.Names[seat]
		over := GameOver{
			Type:      TypeGameOver,
			GameState: sess.Game.Board(),
			Result:    ResultWin,
			Winner:    &winner,
		}
		c.cast.SendTo(sess.Conns[0], over)
		c.cast.SendTo(sess.Conns[1], over)
		log.Printf("Session %s finished: %q wins", sess.ID, winner)

	case engine.MoveDrawn:
		over := GameOver{
			Type:      TypeGameOver,
			GameState: sess.Game.Board(),
			Result:    ResultDraw,
			Winner:    nil,
		}
		c.cast.SendTo(sess.Conns[0], over)
		c.cast.SendTo(sess.Conns[1], over)
		log.Printf("Session %s finished: draw", sess.ID)
	}
}

// handleRestart resets the sender's session, finished or not, and re-sends
// the start messages. Non-members are ignored.
func (c *Coordinator) handleRestart(conn Conn) {
	sess, _, ok := c.memberSession(conn)
	if !ok {
		return
	}

	sess.Game.Restart()
	c.table.Attach(sess.Conns[0], sess.ID)
	c.table.Attach(sess.Conns[1], sess.ID)
	c.sendStart(sess)

	log.Printf("Session %s restarted", sess.ID)
}

// handleDisconnect purges every reference to the connection: waiting pool
// slot, registry entry, and, when in a session, the whole session, leaving
// the surviving member sessionless with a player_left notice.
func (c *Coordinator) handleDisconnect(conn Conn) {
	c.pool.Remove(conn)

	name, _ := c.registry.NameOf(conn)
	c.registry.Unregister(conn)

	if id, ok := c.table.SessionOf(conn); ok {
		if sess, found := c.sessions[id]; found {
			c.table.Detach(sess.Conns[0])
			c.table.Detach(sess.Conns[1])
			delete(c.sessions, id)

			if seat, member := sess.seatOf(conn); member {
				c.cast.SendTo(sess.Conns[1-seat], PlayerLeft{
					Type:    TypePlayerLeft,
					Player:  name,
					Players: c.registry.Names(),
				})
			}
			log.Printf("Session %s discarded: %q disconnected", id, name)
		} else {
			// A table entry without a backing session should not happen given
			// the handler ordering; drop the stale mapping.
			c.table.Detach(conn)
			log.Printf("Session %s missing for disconnecting %s, detached", id, conn.ID())
		}
	}

	c.broadcastRoster()
}

// memberSession resolves the sender's session and seat. A missing session
// entry for a mapped connection is an internal invariant violation; it is
// logged and the stale session dropped, since there is no sensible recovery.
func (c *Coordinator) memberSession(conn Conn) (*Session, int, bool) {
	id, ok := c.table.SessionOf(conn)
	if !ok {
		return nil, 0, false
	}
	sess, found := c.sessions[id]
	if !found {
		log.Printf("Session %s mapped for %s but not found, dropping entry", id, conn.ID())
		c.table.Detach(conn)
		return nil, 0, false
	}
	seat, member := sess.seatOf(conn)
	if !member {
		log.Printf("Connection %s mapped to session %s without a seat, dropping session", conn.ID(), id)
		c.table.Detach(sess.Conns[0])
		c.table.Detach(sess.Conns[1])
		delete(c.sessions, id)
		return nil, 0, false
	}
	return sess, seat, true
}

// broadcastRoster announces the current roster to every registered
// connection.
func (c *Coordinator) broadcastRoster() {
	c.cast.Broadcast(PlayerJoined{
		Type:    TypePlayerJoined,
		Players: c.registry.Names(),
	})
}

// SessionInfo is a read-only snapshot of one session for the inspection
// surfaces (REST and MCP).
type SessionInfo struct {
	ID            string          `json:"id"`
	Players       []string        `json:"players"`
	Board         []engine.Symbol `json:"board"`
	Active        bool            `json:"active"`
	CurrentPlayer string          `json:"current_player,omitempty"`
}

// Roster returns the display names of all registered connections in
// registration order.
func (c *Coordinator) Roster() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.registry.Names()
}

// Sessions returns snapshots of every live session.
func (c *Coordinator) Sessions() []SessionInfo {
	c.mu.Lock()
	defer c.mu.Unlock()

	infos := make([]SessionInfo, 0, len(c.sessions))
	for _, sess := range c.sessions {
		infos = append(infos, snapshot(sess))
	}
	return infos
}

// Session returns the snapshot of one session by identifier.
func (c *Coordinator) Session(id string) (SessionInfo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, ok := c.sessions[id]
	if !ok {
		return SessionInfo{}, false
	}
	return snapshot(sess), true
}

func snapshot(sess *Session) SessionInfo {
	info := SessionInfo{
		ID:      sess.ID,
		Players: []string{sess.Names[0], sess.Names[1]},
		Board:   sess.Game.Board(),
		Active:  sess.Game.Active(),
	}
	if info.Active {
		info.CurrentPlayer = sess.Names[sess.Game.Turn()]
	}
	return info
}
