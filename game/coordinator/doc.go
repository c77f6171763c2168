// Package coordinator pairs connected players into sessions and routes every
// gameplay message for gridduel.
//
// The coordinator package implements:
//   - Connection registration and the ordered roster of display names
//   - A single-slot waiting pool for matchmaking
//   - Session creation, restart, and disconnect-triggered teardown
//   - Dispatch of the join/move/restart wire messages
//   - Broadcasting to one or all registered connections
//
// Core Types:
//
// Coordinator is the process-wide actor owning all mutable matchmaking state:
// the ConnectionRegistry, the WaitingPool, the SessionTable, and the live
// sessions. Conn is the coordinator's handle to one client channel; the
// websocket transport provides the production implementation.
//
// Message Protocol:
//
// Inbound (client to server):
//   - {type: "join", name: "Alice"}
//   - {type: "move", index: 4}
//   - {type: "restart"}
//
// Outbound (server to client):
//   - {type: "player_joined", players: [...]}
//   - {type: "game_start", symbol: "first"|"second", opponent: ..., currentPlayer: ...}
//   - {type: "game_update", gameState: [...], currentPlayer: ...}
//   - {type: "game_over", gameState: [...], result: "win"|"draw", winner: name|null}
//   - {type: "player_left", player: ..., players: [...]}
//
// Invalid requests (a move out of turn, on an occupied or out-of-range cell,
// or from a connection with no session) are ignored without a reply. Clients
// rely on that silence meaning "no-op", so no error responses are introduced.
//
// Concurrency:
//
// One mutex guards all four state structures. Every inbound event (message or
// disconnect) is handled start-to-finish under that lock, so no event can
// observe another event's partial effects: two joins cannot both claim the
// same waiting player, and a move cannot race a disconnect tearing its
// session down. Outbound delivery is a non-blocking handoff to the transport,
// keeping I/O out of the critical section.
//
// Usage:
//
//	coord := coordinator.New()
//
//	// from the transport, per inbound frame:
//	coord.Dispatch(conn, frame)
//
//	// from the transport, exactly once per closed connection:
//	coord.Disconnect(conn)
package coordinator
