package engine

// winningLines enumerates every row, column, and diagonal of the 3x3 board
// by cell index.
var winningLines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// EvaluateLines is the default outcome evaluator: three matching symbols on
// any line is a win, a full board with no line is a draw, anything else is
// not terminal.
func EvaluateLines(board []Symbol) Outcome {
	for _, line := range winningLines {
		a, b, c := board[line[0]], board[line[1]], board[line[2]]
		if a != SymbolNone && a == b && b == c {
			return OutcomeWin
		}
	}

	for _, cell := range board {
		if cell == SymbolNone {
			return OutcomeNone
		}
	}
	return OutcomeDraw
}
