// Command analyze prints quick, human-readable heuristics about board
// positions given on the command line. A position is a 9-character sketch in
// row-major order using F (first player), S (second player), and . (empty),
// for example "F.S.F...S". It reports the position's outcome, whose turn it
// is, and any immediate winning cells for either side.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/gridduel/gridduel/game/engine"
)

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Usage: %s POSITION [POSITION...]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "POSITION is 9 characters of F, S, or . in row-major order, e.g. FS..F...S\n")
		os.Exit(1)
	}

	for _, sketch := range args {
		fmt.Printf("\n=== Analyzing %s ===\n", sketch)
		analyzePosition(sketch)
	}
}

// parseSketch converts a 9-character sketch into a board. Whitespace and
// row separators are tolerated.
func parseSketch(sketch string) ([]engine.Symbol, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '/', '|':
			return -1
		}
		return r
	}, sketch)

	if len(cleaned) != engine.BoardSize {
		return nil, fmt.Errorf("expected %d cells, got %d", engine.BoardSize, len(cleaned))
	}

	board := make([]engine.Symbol, engine.BoardSize)
	for i, c := range cleaned {
		switch c {
		case 'F', 'f':
			board[i] = engine.SymbolFirst
		case 'S', 's':
			board[i] = engine.SymbolSecond
		case '.', '_':
			board[i] = engine.SymbolNone
		default:
			return nil, fmt.Errorf("cell %d: unknown character %q (want F, S, or .)", i, c)
		}
	}
	return board, nil
}

func analyzePosition(sketch string) {
	board, err := parseSketch(sketch)
	if err != nil {
		fmt.Printf("Error parsing position: %v\n", err)
		return
	}

	printBoard(board)

	first, second := countSymbols(board)
	fmt.Printf("Placed: %d first, %d second\n", first, second)

	if second > first || first > second+1 {
		fmt.Printf("WARNING: unreachable position (first always opens, so first's count stays equal to or one above second's)\n")
	}

	outcome := engine.EvaluateLines(board)
	switch outcome {
	case engine.OutcomeWin:
		fmt.Printf("Outcome: won by %s\n", winnerOf(board))
		return
	case engine.OutcomeDraw:
		fmt.Printf("Outcome: draw\n")
		return
	}

	toMove := engine.SymbolFirst
	if first > second {
		toMove = engine.SymbolSecond
	}
	fmt.Printf("Outcome: in progress, %s to move\n", toMove)

	for _, symbol := range []engine.Symbol{engine.SymbolFirst, engine.SymbolSecond} {
		cells := winningCells(board, symbol)
		if len(cells) > 0 {
			fmt.Printf("Immediate wins for %s: %v\n", symbol, cells)
		}
	}
}

// winningCells returns the empty cells where placing symbol completes a line.
// The caller guarantees the position has no completed line yet, so any win
// found in a probe belongs to the placed symbol.
func winningCells(board []engine.Symbol, symbol engine.Symbol) []int {
	var cells []int
	for i, cell := range board {
		if cell != engine.SymbolNone {
			continue
		}
		probe := make([]engine.Symbol, len(board))
		copy(probe, board)
		probe[i] = symbol
		if engine.EvaluateLines(probe) == engine.OutcomeWin {
			cells = append(cells, i)
		}
	}
	return cells
}

// winnerOf returns the symbol holding a completed line, or SymbolNone.
// It evaluates each side's cells in isolation so the opponent's symbols
// cannot mask the line.
func winnerOf(board []engine.Symbol) engine.Symbol {
	for _, symbol := range []engine.Symbol{engine.SymbolFirst, engine.SymbolSecond} {
		only := make([]engine.Symbol, len(board))
		for i, cell := range board {
			if cell == symbol {
				only[i] = cell
			}
		}
		if engine.EvaluateLines(only) == engine.OutcomeWin {
			return symbol
		}
	}
	return engine.SymbolNone
}

func countSymbols(board []engine.Symbol) (first, second int) {
	for _, cell := range board {
		switch cell {
		case engine.SymbolFirst:
			first++
		case engine.SymbolSecond:
			second++
		}
	}
	return first, second
}

func printBoard(board []engine.Symbol) {
	for row := 0; row < engine.BoardDim; row++ {
		for col := 0; col < engine.BoardDim; col++ {
			switch board[row*engine.BoardDim+col] {
			case engine.SymbolFirst:
				fmt.Print("F")
			case engine.SymbolSecond:
				fmt.Print("S")
			default:
				fmt.Print(".")
			}
		}
		fmt.Println()
	}
}
