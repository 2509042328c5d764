package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-local/internal/entity"
)

// WinCombos lists the winning lines in scan order: rows top to bottom,
// columns left to right, then the two diagonals.
var WinCombos = [8]entity.Line{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// InitialState returns an empty board with X to move.
func InitialState() entity.GameState {
	return entity.GameState{
		ActiveMark: entity.PlayerX,
	}
}

// Reset discards the current game, whatever its outcome.
func Reset() entity.GameState {
	return InitialState()
}

// Evaluate classifies the board. The first matching line in WinCombos order wins.
func Evaluate(board entity.Board) entity.Outcome {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return entity.Outcome{Kind: entity.Win, Winner: a, Line: combo}
		}
	}

	if board.IsFull() {
		return entity.Outcome{Kind: entity.Draw}
	}

	return entity.Outcome{Kind: entity.InProgress}
}

// CanMove reports whether ApplyMove would change the state.
func CanMove(state entity.GameState, index int) bool {
	if !state.Board.IsEmptyAt(index) {
		return false
	}

	return !Evaluate(state.Board).IsDecided()
}

// ApplyMove places the active mark on the cell and passes the turn.
// Occupied or out-of-range cells and decided games leave the state untouched.
func ApplyMove(state entity.GameState, index int) entity.GameState {
	if !CanMove(state, index) {
		return state
	}

	state.Board[index] = state.ActiveMark
	state.ActiveMark = state.ActiveMark.Opponent()

	return state
}

func StatusText(state entity.GameState) string {
	switch outcome := Evaluate(state.Board); outcome.Kind {
	case entity.Win:
		return fmt.Sprintf("Player %s wins!", outcome.Winner)
	case entity.Draw:
		return "It's a draw!"
	default:
		return fmt.Sprintf("Turn: Player %s", state.ActiveMark)
	}
}
