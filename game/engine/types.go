package engine

// Symbol identifies the side that owns a board cell or a session seat.
// The zero value marks an empty cell.
type Symbol string

const (
	SymbolNone   Symbol = ""
	SymbolFirst  Symbol = "first"
	SymbolSecond Symbol = "second"
)

const (
	// BoardDim is the width and height of the square board.
	BoardDim = 3
	// BoardSize is the total number of board cells.
	BoardSize = BoardDim * BoardDim
)

// Outcome is the evaluator's verdict over a board. A win is attributed to
// the seat that made the most recent move.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeDraw
)

// Evaluator inspects a board and reports whether it is terminal.
type Evaluator func(board []Symbol) Outcome

// Phase names the two states of the session machine.
type Phase int

const (
	PhaseActive Phase = iota
	PhaseFinished
)

// MoveResult is the tagged outcome of one ApplyMove transition.
type MoveResult int

const (
	// MoveRejected means the move was invalid and the game is unchanged.
	MoveRejected MoveResult = iota
	// MoveAdvanced means the cell was written and the turn passed over.
	MoveAdvanced
	// MoveWon means the cell was written and the mover won.
	MoveWon
	// MoveDrawn means the cell was written and the board is full with no winner.
	MoveDrawn
)

// SymbolFor returns the symbol assigned to a seat index. Seat 0 is always
// "first" and seat 1 "second"; any other index yields SymbolNone.
func SymbolFor(seat int) Symbol {
	switch seat {
	case 0:
		return SymbolFirst
	case 1:
		return SymbolSecond
	}
	return SymbolNone
}
