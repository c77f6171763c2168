package engine

// Game is the turn-based state machine for one session.
//
// The state is an explicit tagged pair: while phase is PhaseActive, turn names
// the seat that may move; once phase is PhaseFinished, outcome (and winner,
// for wins) are fixed and every further move is rejected until Restart.
type Game struct {
	board    []Symbol
	turn     int
	phase    Phase
	outcome  Outcome
	winner   int
	evaluate Evaluator
}

// NewGame creates a game with an empty board, seat 0 to move, and the
// default three-in-a-row evaluator.
func NewGame() *Game {
	return NewGameWithEvaluator(nil)
}

// NewGameWithEvaluator creates a game using the provided outcome evaluator.
// A nil evaluator falls back to EvaluateLines.
func NewGameWithEvaluator(evaluate Evaluator) *Game {
	if evaluate == nil {
		evaluate = EvaluateLines
	}
	return &Game{
		board:    make([]Symbol, BoardSize),
		evaluate: evaluate,
	}
}

// ApplyMove attempts to place the seat's symbol on the given cell.
//
// This is the single transition function of the machine. The move is rejected
// (no state change) unless the game is active, the seat holds the turn, and
// the cell is in range and empty. An accepted move writes the cell, consults
// the evaluator, and either passes the turn or finishes the game, all in one
// step.
func (g *Game) ApplyMove(seat, cell int) MoveResult {
	if g.phase != PhaseActive {
		return MoveRejected
	}
	if seat != g.turn {
		return MoveRejected
	}
	if cell < 0 || cell >= len(g.board) {
		return MoveRejected
	}
	if g.board[cell] != SymbolNone {
		return MoveRejected
	}

	g.board[cell] = SymbolFor(seat)

	switch g.evaluate(g.board) {
	case OutcomeWin:
		g.phase = PhaseFinished
		g.outcome = OutcomeWin
		g.winner = seat
		return MoveWon
	case OutcomeDraw:
		g.phase = PhaseFinished
		g.outcome = OutcomeDraw
		return MoveDrawn
	}

	g.turn = 1 - g.turn
	return MoveAdvanced
}

// Restart clears the board and returns the game to Active with seat 0 to
// move. Seat 0 keeps the "first" symbol on every rematch; the opening turn is
// never renegotiated.
func (g *Game) Restart() {
	g.board = make([]Symbol, BoardSize)
	g.turn = 0
	g.phase = PhaseActive
	g.outcome = OutcomeNone
	g.winner = 0
}

// Board returns a copy of the current board.
func (g *Game) Board() []Symbol {
	board := make([]Symbol, len(g.board))
	copy(board, g.board)
	return board
}

// Turn returns the seat index that may currently move. Only meaningful while
// the game is active.
func (g *Game) Turn() int {
	return g.turn
}

// Active reports whether the game still accepts moves.
func (g *Game) Active() bool {
	return g.phase == PhaseActive
}

// Outcome returns the terminal outcome, or OutcomeNone while active.
func (g *Game) Outcome() Outcome {
	return g.outcome
}

// Winner returns the winning seat index. The second return is false unless
// the game finished with a win.
func (g *Game) Winner() (int, bool) {
	if g.phase == PhaseFinished && g.outcome == OutcomeWin {
		return g.winner, true
	}
	return 0, false
}
