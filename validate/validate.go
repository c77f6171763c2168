// Command validate checks recorded game transcript JSON files. It replays
// each transcript through the engine and reports:
//   - JSON structure and required fields
//   - Moves rejected by the rules (out of turn, occupied cell, out of range)
//   - Moves made after the game already finished
//   - Whether the recorded result matches the replayed outcome
//
// A transcript looks like:
//
//	{
//	  "players": ["Alice", "Bob"],
//	  "moves": [{"seat": 0, "cell": 4}, {"seat": 1, "cell": 0}],
//	  "result": "win",
//	  "winner": "Alice"
//	}
//
// The "result" and "winner" fields are optional; when present they are
// checked against the replay.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gridduel/gridduel/game/engine"
)

// Transcript mirrors the JSON schema for a recorded game.
type Transcript struct {
	Players []string `json:"players"`
	Moves   []Move   `json:"moves"`
	Result  string   `json:"result,omitempty"`
	Winner  string   `json:"winner,omitempty"`
}

// Move is a single placement: seat 0 always opens.
type Move struct {
	Seat int `json:"seat"`
	Cell int `json:"cell"`
}

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateTranscript loads and validates a single transcript JSON file.
// It performs structural checks, then replays every move through the engine.
func validateTranscript(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("read file: %v", err))
		return result
	}

	var transcript Transcript
	if err := json.Unmarshal(data, &transcript); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("parse JSON: %v", err))
		return result
	}

	if len(transcript.Players) != 2 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("expected 2 players, got %d", len(transcript.Players)))
		return result
	}
	if transcript.Players[0] == transcript.Players[1] {
		result.Valid = false
		result.Errors = append(result.Errors, "players must have distinct names")
	}
	if len(transcript.Moves) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "transcript has no moves")
		return result
	}

	game := engine.NewGame()
	finished := false

	for i, move := range transcript.Moves {
		if finished {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("move %d: made after the game finished", i))
			continue
		}

		switch game.ApplyMove(move.Seat, move.Cell) {
		case engine.MoveRejected:
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("move %d: seat %d to cell %d rejected (%s)", i, move.Seat, move.Cell, rejectionReason(game, move)))
		case engine.MoveWon, engine.MoveDrawn:
			finished = true
		}
	}

	checkRecordedResult(&result, &transcript, game, finished)
	return result
}

// rejectionReason explains why the engine refused a move, for diagnostics.
func rejectionReason(game *engine.Game, move Move) string {
	if move.Cell < 0 || move.Cell >= engine.BoardSize {
		return "cell out of range"
	}
	if move.Seat != 0 && move.Seat != 1 {
		return "unknown seat"
	}
	if move.Seat != game.Turn() {
		return "out of turn"
	}
	if game.Board()[move.Cell] != engine.SymbolNone {
		return "cell occupied"
	}
	return "game not active"
}

// checkRecordedResult compares the transcript's claimed result against the
// replayed game state.
func checkRecordedResult(result *ValidationResult, transcript *Transcript, game *engine.Game, finished bool) {
	if transcript.Result == "" {
		if finished {
			result.Errors = append(result.Errors, "note: game finished but transcript records no result")
		}
		return
	}

	if !finished {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("recorded result %q but the replay never finished", transcript.Result))
		return
	}

	switch transcript.Result {
	case "win":
		seat, won := game.Winner()
		if !won {
			result.Valid = false
			result.Errors = append(result.Errors, "recorded result \"win\" but the replay ended in a draw")
			return
		}
		if transcript.Winner != transcript.Players[seat] {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("recorded winner %q but the replay was won by %q", transcript.Winner, transcript.Players[seat]))
		}
	case "draw":
		if _, won := game.Winner(); won {
			result.Valid = false
			result.Errors = append(result.Errors, "recorded result \"draw\" but the replay produced a winner")
		}
	default:
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("unknown result %q (want \"win\" or \"draw\")", transcript.Result))
	}
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Usage: %s TRANSCRIPT.json [TRANSCRIPT.json...]\n", os.Args[0])
		os.Exit(1)
	}

	failed := 0
	for _, path := range args {
		result := validateTranscript(path)
		if result.Valid {
			fmt.Printf("OK   %s\n", result.File)
		} else {
			failed++
			fmt.Printf("FAIL %s\n", result.File)
		}
		for _, msg := range result.Errors {
			fmt.Printf("     %s\n", msg)
		}
	}

	if failed > 0 {
		fmt.Printf("\n%d of %d transcript(s) failed validation\n", failed, len(args))
		os.Exit(1)
	}
	fmt.Printf("\nAll %d transcript(s) valid\n", len(args))
}
