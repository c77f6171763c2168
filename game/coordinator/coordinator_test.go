package coordinator

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/gridduel/gridduel/game/engine"
)

// fakeConn is an in-memory Conn capturing everything sent to it.
type fakeConn struct {
	id     string
	inbox  [][]byte
	closed bool
}

func (f *fakeConn) ID() string { return f.id }

func (f *fakeConn) Send(data []byte) {
	if f.closed {
		return
	}
	f.inbox = append(f.inbox, data)
}

func newFakeConn(id string) *fakeConn {
	return &fakeConn{id: id}
}

func join(c *Coordinator, conn Conn, name string) {
	c.Dispatch(conn, []byte(fmt.Sprintf(`{"type":"join","name":%q}`, name)))
}

func move(c *Coordinator, conn Conn, index int) {
	c.Dispatch(conn, []byte(fmt.Sprintf(`{"type":"move","index":%d}`, index)))
}

func restart(c *Coordinator, conn Conn) {
	c.Dispatch(conn, []byte(`{"type":"restart"}`))
}

// decoded unmarshals every captured frame into generic maps.
func decoded(t *testing.T, conn *fakeConn) []map[string]interface{} {
	t.Helper()

	messages := make([]map[string]interface{}, 0, len(conn.inbox))
	for _, raw := range conn.inbox {
		var msg map[string]interface{}
		if err := json.Unmarshal(raw, &msg); err != nil {
			t.Fatalf("Failed to unmarshal captured frame %s: %v", raw, err)
		}
		messages = append(messages, msg)
	}
	return messages
}

// lastOfType returns the most recent message of the given type, or nil.
func lastOfType(t *testing.T, conn *fakeConn, msgType string) map[string]interface{} {
	t.Helper()

	messages := decoded(t, conn)
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i]["type"] == msgType {
			return messages[i]
		}
	}
	return nil
}

func players(msg map[string]interface{}) []string {
	raw, _ := msg["players"].([]interface{})
	names := make([]string, 0, len(raw))
	for _, v := range raw {
		names = append(names, v.(string))
	}
	return names
}

func gameState(msg map[string]interface{}) []string {
	raw, _ := msg["gameState"].([]interface{})
	cells := make([]string, 0, len(raw))
	for _, v := range raw {
		cells = append(cells, v.(string))
	}
	return cells
}

// matched pairs two fresh connections into a session and returns them.
func matched(t *testing.T, c *Coordinator) (*fakeConn, *fakeConn) {
	t.Helper()

	alice := newFakeConn("conn-alice")
	bob := newFakeConn("conn-bob")
	join(c, alice, "Alice")
	join(c, bob, "Bob")

	if lastOfType(t, alice, TypeGameStart) == nil || lastOfType(t, bob, TypeGameStart) == nil {
		t.Fatal("Expected both connections to receive game_start")
	}
	return alice, bob
}

func TestJoinWithNoOpponentWaits(t *testing.T) {
	c := New()
	alice := newFakeConn("conn-alice")

	join(c, alice, "Alice")

	if c.pool.Waiting() == nil || c.pool.Waiting().ID() != alice.ID() {
		t.Error("Expected Alice to be held in the waiting pool")
	}
	if _, ok := c.table.SessionOf(alice); ok {
		t.Error("Expected no session for a waiting connection")
	}

	roster := lastOfType(t, alice, TypePlayerJoined)
	if roster == nil {
		t.Fatal("Expected a roster broadcast after join")
	}
	got := players(roster)
	if len(got) != 1 || got[0] != "Alice" {
		t.Errorf("Expected roster [Alice], got %v", got)
	}
}

func TestSecondJoinCreatesSession(t *testing.T) {
	c := New()
	alice := newFakeConn("conn-alice")
	bob := newFakeConn("conn-bob")

	join(c, alice, "Alice")
	join(c, bob, "Bob")

	if c.pool.Waiting() != nil {
		t.Error("Expected the waiting pool to be cleared after the match")
	}

	aliceStart := lastOfType(t, alice, TypeGameStart)
	if aliceStart == nil {
		t.Fatal("Expected Alice to receive game_start")
	}
	if aliceStart["symbol"] != "first" {
		t.Errorf("Expected Alice's symbol to be first, got %v", aliceStart["symbol"])
	}
	if aliceStart["opponent"] != "Bob" {
		t.Errorf("Expected Alice's opponent to be Bob, got %v", aliceStart["opponent"])
	}
	if aliceStart["currentPlayer"] != "Alice" {
		t.Errorf("Expected Alice to open, got %v", aliceStart["currentPlayer"])
	}

	bobStart := lastOfType(t, bob, TypeGameStart)
	if bobStart == nil {
		t.Fatal("Expected Bob to receive game_start")
	}
	if bobStart["symbol"] != "second" {
		t.Errorf("Expected Bob's symbol to be second, got %v", bobStart["symbol"])
	}
	if bobStart["opponent"] != "Alice" {
		t.Errorf("Expected Bob's opponent to be Alice, got %v", bobStart["opponent"])
	}
	if bobStart["currentPlayer"] != "Alice" {
		t.Errorf("Expected Alice to open from Bob's view too, got %v", bobStart["currentPlayer"])
	}

	aliceSession, ok := c.table.SessionOf(alice)
	if !ok {
		t.Fatal("Expected Alice to be mapped to a session")
	}
	bobSession, ok := c.table.SessionOf(bob)
	if !ok {
		t.Fatal("Expected Bob to be mapped to a session")
	}
	if aliceSession != bobSession {
		t.Errorf("Expected both members to map to the same session, got %s and %s", aliceSession, bobSession)
	}
}

func TestDoubleJoinNeverSelfMatches(t *testing.T) {
	c := New()
	alice := newFakeConn("conn-alice")

	join(c, alice, "Alice")
	join(c, alice, "Alice")

	if lastOfType(t, alice, TypeGameStart) != nil {
		t.Error("A connection must never be matched with itself")
	}
	if c.pool.Waiting() == nil || c.pool.Waiting().ID() != alice.ID() {
		t.Error("Expected Alice to still be waiting after a double join")
	}
}

func TestWaitingPoolHoldsAtMostOne(t *testing.T) {
	c := New()

	// Joins in sequence: every even join matches, every odd join waits.
	for i := 0; i < 5; i++ {
		conn := newFakeConn(fmt.Sprintf("conn-%d", i))
		join(c, conn, fmt.Sprintf("Player%d", i))

		if i%2 == 0 {
			if c.pool.Waiting() == nil {
				t.Errorf("Expected a waiter after join %d", i)
			}
		} else if c.pool.Waiting() != nil {
			t.Errorf("Expected an empty pool after join %d matched", i)
		}
	}

	if len(c.Sessions()) != 2 {
		t.Errorf("Expected 2 sessions from 5 joins, got %d", len(c.Sessions()))
	}
}

func TestAcceptedMoveBroadcastsUpdate(t *testing.T) {
	c := New()
	alice, bob := matched(t, c)

	move(c, alice, 4)

	for _, conn := range []*fakeConn{alice, bob} {
		update := lastOfType(t, conn, TypeGameUpdate)
		if update == nil {
			t.Fatalf("Expected %s to receive game_update", conn.ID())
		}
		cells := gameState(update)
		if cells[4] != "first" {
			t.Errorf("Expected cell 4 to hold first, got %q", cells[4])
		}
		if update["currentPlayer"] != "Bob" {
			t.Errorf("Expected Bob to be next, got %v", update["currentPlayer"])
		}
	}
}

func TestMoveOnOccupiedCellIsSilentlyIgnored(t *testing.T) {
	c := New()
	alice, bob := matched(t, c)

	move(c, alice, 4)
	aliceFrames := len(alice.inbox)
	bobFrames := len(bob.inbox)

	move(c, bob, 4)

	if len(alice.inbox) != aliceFrames || len(bob.inbox) != bobFrames {
		t.Error("A move on an occupied cell must produce no messages")
	}

	info, _ := c.Session(mustSessionOf(t, c, alice))
	if info.Board[4] != engine.SymbolFirst {
		t.Errorf("Expected cell 4 unchanged, got %q", info.Board[4])
	}
	if info.CurrentPlayer != "Bob" {
		t.Errorf("Expected turn unchanged, got %q", info.CurrentPlayer)
	}
}

func TestMoveOutOfTurnNeverChangesBoard(t *testing.T) {
	c := New()
	alice, bob := matched(t, c)

	move(c, bob, 0)

	if lastOfType(t, alice, TypeGameUpdate) != nil || lastOfType(t, bob, TypeGameUpdate) != nil {
		t.Error("An out-of-turn move must produce no update")
	}

	info, _ := c.Session(mustSessionOf(t, c, alice))
	for i, cell := range info.Board {
		if cell != engine.SymbolNone {
			t.Errorf("Expected cell %d empty after rejected move, got %q", i, cell)
		}
	}
}

func TestMoveWithoutSessionIsIgnored(t *testing.T) {
	c := New()
	loner := newFakeConn("conn-loner")

	join(c, loner, "Loner")
	move(c, loner, 0)

	if lastOfType(t, loner, TypeGameUpdate) != nil {
		t.Error("A move from a sessionless connection must be ignored")
	}

	// Same for a connection that never joined at all.
	stranger := newFakeConn("conn-stranger")
	move(c, stranger, 0)
	if len(stranger.inbox) != 0 {
		t.Error("A move from an unknown connection must be ignored")
	}
}

func TestMoveWithoutIndexIsIgnored(t *testing.T) {
	c := New()
	alice, bob := matched(t, c)

	frames := len(alice.inbox) + len(bob.inbox)
	c.Dispatch(alice, []byte(`{"type":"move"}`))

	if len(alice.inbox)+len(bob.inbox) != frames {
		t.Error("A move without an index must be ignored")
	}
}

func TestWinBroadcastsGameOverAndFreezesSession(t *testing.T) {
	c := New()
	alice, bob := matched(t, c)

	// Alice takes the top row.
	move(c, alice, 0)
	move(c, bob, 3)
	move(c, alice, 1)
	move(c, bob, 4)
	move(c, alice, 2)

	for _, conn := range []*fakeConn{alice, bob} {
		over := lastOfType(t, conn, TypeGameOver)
		if over == nil {
			t.Fatalf("Expected %s to receive game_over", conn.ID())
		}
		if over["result"] != ResultWin {
			t.Errorf("Expected result win, got %v", over["result"])
		}
		if over["winner"] != "Alice" {
			t.Errorf("Expected winner Alice, got %v", over["winner"])
		}
	}

	// The finished session ignores further moves from either side.
	frames := len(alice.inbox) + len(bob.inbox)
	move(c, bob, 8)
	move(c, alice, 8)
	if len(alice.inbox)+len(bob.inbox) != frames {
		t.Error("Moves after a terminal outcome must be ignored until restart")
	}
}

func TestDrawBroadcastsNullWinner(t *testing.T) {
	c := New()
	alice, bob := matched(t, c)

	// Alternating fill with no three-in-a-row.
	for _, m := range []struct {
		conn *fakeConn
		cell int
	}{
		{alice, 0}, {bob, 1}, {alice, 2}, {bob, 4}, {alice, 3},
		{bob, 5}, {alice, 7}, {bob, 6}, {alice, 8},
	} {
		move(c, m.conn, m.cell)
	}

	over := lastOfType(t, bob, TypeGameOver)
	if over == nil {
		t.Fatal("Expected game_over after the board filled")
	}
	if over["result"] != ResultDraw {
		t.Errorf("Expected result draw, got %v", over["result"])
	}
	winner, present := over["winner"]
	if !present {
		t.Error("Expected the winner field to be present on a draw")
	}
	if winner != nil {
		t.Errorf("Expected winner null on a draw, got %v", winner)
	}
}

func TestRestartResendsStartWithFixedOpening(t *testing.T) {
	c := New()
	alice, bob := matched(t, c)

	// Finish a game, then the losing side asks for a rematch.
	move(c, alice, 0)
	move(c, bob, 3)
	move(c, alice, 1)
	move(c, bob, 4)
	move(c, alice, 2)

	restart(c, bob)

	for _, tc := range []struct {
		conn   *fakeConn
		symbol string
	}{
		{alice, "first"},
		{bob, "second"},
	} {
		start := lastOfType(t, tc.conn, TypeGameStart)
		if start == nil {
			t.Fatalf("Expected %s to receive a fresh game_start", tc.conn.ID())
		}
		if start["symbol"] != tc.symbol {
			t.Errorf("Expected symbol %q to be kept across restarts, got %v", tc.symbol, start["symbol"])
		}
		if start["currentPlayer"] != "Alice" {
			t.Errorf("Expected the original first player to open the rematch, got %v", start["currentPlayer"])
		}
	}

	// Seat 0 opens: Bob's opening attempt is ignored, Alice's is accepted.
	frames := len(alice.inbox)
	move(c, bob, 0)
	if len(alice.inbox) != frames {
		t.Error("Expected seat 1 opening attempt to be ignored after restart")
	}
	move(c, alice, 0)
	if lastOfType(t, bob, TypeGameUpdate) == nil {
		t.Error("Expected seat 0 opening move to be accepted after restart")
	}
}

func TestRestartWithoutSessionIsIgnored(t *testing.T) {
	c := New()
	loner := newFakeConn("conn-loner")
	join(c, loner, "Loner")

	frames := len(loner.inbox)
	restart(c, loner)
	if len(loner.inbox) != frames {
		t.Error("A restart from a sessionless connection must be ignored")
	}
}

func TestDisconnectMidSessionNotifiesSurvivor(t *testing.T) {
	c := New()
	alice, bob := matched(t, c)

	move(c, alice, 4)
	alice.closed = true
	c.Disconnect(alice)

	left := lastOfType(t, bob, TypePlayerLeft)
	if left == nil {
		t.Fatal("Expected Bob to receive player_left")
	}
	if left["player"] != "Alice" {
		t.Errorf("Expected the departing player to be Alice, got %v", left["player"])
	}
	roster := players(left)
	if len(roster) != 1 || roster[0] != "Bob" {
		t.Errorf("Expected the player_left roster to exclude Alice, got %v", roster)
	}

	if _, ok := c.table.SessionOf(bob); ok {
		t.Error("Expected the survivor's session mapping to be cleared")
	}
	if len(c.Sessions()) != 0 {
		t.Error("Expected the session to be discarded")
	}

	// The survivor is not re-queued and has no session: moves are ignored.
	frames := len(bob.inbox)
	move(c, bob, 0)
	if len(bob.inbox) != frames {
		t.Error("Expected a move from the sessionless survivor to be ignored")
	}
	if c.pool.Waiting() != nil {
		t.Error("Expected the survivor not to be auto-requeued")
	}
}

func TestDisconnectOfWaitingConnectionClearsPool(t *testing.T) {
	c := New()
	alice := newFakeConn("conn-alice")
	bob := newFakeConn("conn-bob")

	join(c, alice, "Alice")
	alice.closed = true
	c.Disconnect(alice)

	if c.pool.Waiting() != nil {
		t.Error("Expected the pool to be cleared when the waiter disconnects")
	}

	// The next joiner waits instead of matching a gone connection.
	join(c, bob, "Bob")
	if lastOfType(t, bob, TypeGameStart) != nil {
		t.Error("Expected Bob to wait, not match a disconnected player")
	}
	if c.pool.Waiting() == nil || c.pool.Waiting().ID() != bob.ID() {
		t.Error("Expected Bob to be the new waiter")
	}
}

func TestDisconnectBroadcastsRosterToRemaining(t *testing.T) {
	c := New()
	alice, bob := matched(t, c)
	carol := newFakeConn("conn-carol")
	join(c, carol, "Carol")

	alice.closed = true
	c.Disconnect(alice)

	for _, conn := range []*fakeConn{bob, carol} {
		roster := lastOfType(t, conn, TypePlayerJoined)
		if roster == nil {
			t.Fatalf("Expected %s to receive the post-disconnect roster", conn.ID())
		}
		got := players(roster)
		for _, name := range got {
			if name == "Alice" {
				t.Errorf("Expected Alice to be absent from the roster, got %v", got)
			}
		}
		if len(got) != 2 {
			t.Errorf("Expected 2 remaining players, got %v", got)
		}
	}
}

func TestDoubleDisconnectIsHarmless(t *testing.T) {
	c := New()
	alice, _ := matched(t, c)

	alice.closed = true
	c.Disconnect(alice)
	c.Disconnect(alice)

	if len(c.Roster()) != 1 {
		t.Errorf("Expected a single remaining player, got %v", c.Roster())
	}
}

func TestMalformedAndUnknownMessagesAreDropped(t *testing.T) {
	c := New()
	alice, bob := matched(t, c)

	frames := len(alice.inbox) + len(bob.inbox)
	c.Dispatch(alice, []byte(`not json`))
	c.Dispatch(alice, []byte(`{"type":"chat","text":"hi"}`))
	c.Dispatch(alice, []byte(`{}`))

	if len(alice.inbox)+len(bob.inbox) != frames {
		t.Error("Malformed and unknown messages must produce no replies")
	}
}

func TestSessionSnapshots(t *testing.T) {
	c := New()
	alice, _ := matched(t, c)
	move(c, alice, 4)

	sessions := c.Sessions()
	if len(sessions) != 1 {
		t.Fatalf("Expected 1 session snapshot, got %d", len(sessions))
	}

	info := sessions[0]
	if info.Players[0] != "Alice" || info.Players[1] != "Bob" {
		t.Errorf("Expected players [Alice Bob], got %v", info.Players)
	}
	if !info.Active {
		t.Error("Expected the session to be active")
	}
	if info.CurrentPlayer != "Bob" {
		t.Errorf("Expected Bob to be current, got %q", info.CurrentPlayer)
	}
	if info.Board[4] != engine.SymbolFirst {
		t.Errorf("Expected cell 4 to hold first, got %q", info.Board[4])
	}

	byID, ok := c.Session(info.ID)
	if !ok {
		t.Fatalf("Expected Session(%q) to resolve", info.ID)
	}
	if byID.ID != info.ID {
		t.Errorf("Expected matching snapshot IDs, got %q and %q", byID.ID, info.ID)
	}

	if _, ok := c.Session("missing"); ok {
		t.Error("Expected Session lookup of an unknown ID to fail")
	}
}

func mustSessionOf(t *testing.T, c *Coordinator, conn Conn) string {
	t.Helper()

	id, ok := c.table.SessionOf(conn)
	if !ok {
		t.Fatalf("Expected %s to be in a session", conn.ID())
	}
	return id
}
