// Package engine provides the core turn-based game logic for gridduel.
//
// The engine package implements the per-session state machine:
//   - A fixed 3x3 board whose cells are empty or hold one of two symbols
//   - Strict turn alternation between seat 0 ("first") and seat 1 ("second")
//   - A single authoritative ApplyMove transition with four outcomes
//     (rejected, advanced, won, drawn)
//   - Terminal-state detection through a pluggable outcome evaluator
//   - Restart back to a fresh board with seat 0 to move
//
// Core Types:
//
// Game is the state machine for one session. Its phase is an explicit tagged
// state, Active(turn) or Finished(outcome), rather than loose boolean flags,
// so a cell write and the matching turn flip can never be observed apart.
// Evaluator is the pluggable terminal-outcome function; EvaluateLines is the
// default three-in-a-row rule set.
//
// Usage:
//
//	game := engine.NewGame()
//
//	switch game.ApplyMove(0, 4) {
//	case engine.MoveAdvanced:
//		// board changed, seat 1 to move
//	case engine.MoveWon:
//		// seat 0 just won
//	case engine.MoveDrawn:
//		// board full, no winner
//	case engine.MoveRejected:
//		// out of turn, occupied or out-of-range cell: state unchanged
//	}
//
// Rejection is silent by design: an out-of-turn or invalid move returns
// MoveRejected and leaves the game untouched, with no error to surface.
//
// Concurrency:
//
// Game performs no locking. Callers must serialize access; the coordinator
// package drives every Game from a single mutex-guarded event handler.
package engine
