package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-local/internal/entity"
)

const (
	x = entity.PlayerX
	o = entity.PlayerO
	e = entity.EmptyCell
)

func TestInitialState(t *testing.T) {
	// When: creating the initial state
	state := InitialState()

	// Then: the board is empty and X moves first
	expected := entity.GameState{
		Board:      entity.Board{e, e, e, e, e, e, e, e, e},
		ActiveMark: x,
	}

	require.Equal(t, expected, state)
}

func TestReset(t *testing.T) {
	t.Run("Reset after a won game", func(t *testing.T) {
		// Given: X has won on the top row
		state := play(InitialState(), 0, 3, 1, 4, 2)
		require.Equal(t, entity.Win, Evaluate(state.Board).Kind)

		// When: resetting
		state = Reset()

		// Then: the state is the initial one
		require.Equal(t, InitialState(), state)
	})

	t.Run("Reset in the middle of a game", func(t *testing.T) {
		state := play(InitialState(), 4, 0)
		require.NotEqual(t, InitialState(), state)

		assert.Equal(t, InitialState(), Reset())
	})
}

func TestEvaluate(t *testing.T) {
	t.Run("Winner X on the top row", func(t *testing.T) {
		// Given: X holds the top row
		board := entity.Board{x, x, x, o, o, e, e, e, e}

		// When: evaluating the board
		outcome := Evaluate(board)

		// Then: X wins with line 0-1-2
		require.Equal(t, entity.Outcome{Kind: entity.Win, Winner: x, Line: entity.Line{0, 1, 2}}, outcome)
	})

	t.Run("Winner O on a column", func(t *testing.T) {
		board := entity.Board{x, o, x, e, o, x, e, o, e}

		outcome := Evaluate(board)

		require.Equal(t, entity.Outcome{Kind: entity.Win, Winner: o, Line: entity.Line{1, 4, 7}}, outcome)
	})

	t.Run("Winner on the anti-diagonal", func(t *testing.T) {
		board := entity.Board{o, o, x, e, x, e, x, e, e}

		outcome := Evaluate(board)

		require.Equal(t, entity.Outcome{Kind: entity.Win, Winner: x, Line: entity.Line{2, 4, 6}}, outcome)
	})

	t.Run("Draw on a full board", func(t *testing.T) {
		// Given: a full board without three in a row
		board := entity.Board{x, o, x, o, x, o, o, x, o}

		// When: evaluating the board
		outcome := Evaluate(board)

		// Then: it is a draw
		require.Equal(t, entity.Outcome{Kind: entity.Draw}, outcome)
	})

	t.Run("Win on the last cell is not a draw", func(t *testing.T) {
		// Given: a full board whose last move completed a diagonal
		board := entity.Board{x, o, x, o, x, o, o, x, x}

		outcome := Evaluate(board)

		assert.Equal(t, entity.Win, outcome.Kind)
		assert.Equal(t, entity.Line{0, 4, 8}, outcome.Line)
	})

	t.Run("Game in progress", func(t *testing.T) {
		board := entity.Board{x, o, x, e, o, e, x, e, e}

		outcome := Evaluate(board)

		require.Equal(t, entity.Outcome{Kind: entity.InProgress}, outcome)
	})

	t.Run("Two winning lines resolve to the first in scan order", func(t *testing.T) {
		// Given: a board that cannot arise in play, with a row and a column both complete
		board := entity.Board{o, o, o, x, x, x, e, e, e}

		// When: evaluating it repeatedly
		first := Evaluate(board)
		second := Evaluate(board)

		// Then: the top row wins, deterministically
		assert.Equal(t, entity.Outcome{Kind: entity.Win, Winner: o, Line: entity.Line{0, 1, 2}}, first)
		assert.Equal(t, first, second)
	})

	t.Run("Every fixed line wins", func(t *testing.T) {
		for _, combo := range WinCombos {
			var board entity.Board
			for _, index := range combo {
				board[index] = o
			}

			outcome := Evaluate(board)

			assert.Equal(t, entity.Outcome{Kind: entity.Win, Winner: o, Line: combo}, outcome)
		}
	})
}

func TestApplyMove(t *testing.T) {
	t.Run("ApplyMove", func(t *testing.T) {
		// Given: a new game
		state := InitialState()

		// When: X plays the center
		next := ApplyMove(state, 4)

		// Then: the board has X in the center and O moves next
		expected := entity.GameState{
			Board:      entity.Board{e, e, e, e, x, e, e, e, e},
			ActiveMark: o,
		}
		require.Equal(t, expected, next)

		// Then: the input state was not modified
		require.Equal(t, InitialState(), state)
	})

	t.Run("Occupied cell is ignored", func(t *testing.T) {
		// Given: X has played cell 0
		state := ApplyMove(InitialState(), 0)

		// When: O clicks the same cell
		next := ApplyMove(state, 0)

		// Then: nothing changes
		require.Equal(t, state, next)
		assert.Equal(t, o, next.ActiveMark)
	})

	t.Run("Out of range cells are ignored", func(t *testing.T) {
		state := InitialState()

		for _, index := range []int{-1, 9, 20} {
			assert.Equal(t, state, ApplyMove(state, index))
		}
	})

	t.Run("Marks alternate until the game ends", func(t *testing.T) {
		// Given: a sequence that ends with O winning on the middle column
		moves := []int{0, 1, 2, 4, 3, 7}
		state := InitialState()

		for i, cell := range moves {
			expectedMark := x
			if i%2 == 1 {
				expectedMark = o
			}

			// Then: each accepted move writes the expected mark
			require.Equal(t, expectedMark, state.ActiveMark)
			state = ApplyMove(state, cell)
			require.Equal(t, expectedMark, state.Board[cell])
		}

		require.Equal(t, entity.Win, Evaluate(state.Board).Kind)
		require.Equal(t, o, Evaluate(state.Board).Winner)
	})

	t.Run("Decided games are frozen", func(t *testing.T) {
		won := play(InitialState(), 0, 3, 1, 4, 2)
		drawn := entity.GameState{Board: entity.Board{x, o, x, o, x, o, o, x, o}, ActiveMark: x}

		for _, state := range []entity.GameState{won, drawn} {
			for index := range entity.BoardSize {
				assert.Equal(t, state, ApplyMove(state, index), "cell %d", index)
			}
		}
	})
}

func TestCanMove(t *testing.T) {
	state := ApplyMove(InitialState(), 0)

	assert.False(t, CanMove(state, 0))
	assert.True(t, CanMove(state, 1))
	assert.False(t, CanMove(state, 9))

	won := play(InitialState(), 0, 3, 1, 4, 2)
	assert.False(t, CanMove(won, 8))
}

func TestStatusText(t *testing.T) {
	t.Run("Fresh game", func(t *testing.T) {
		assert.Equal(t, "Turn: Player X", StatusText(InitialState()))
	})

	t.Run("After one move", func(t *testing.T) {
		assert.Equal(t, "Turn: Player O", StatusText(ApplyMove(InitialState(), 0)))
	})

	t.Run("X wins on the top row", func(t *testing.T) {
		state := play(InitialState(), 0, 3, 1, 4, 2)

		assert.Equal(t, "Player X wins!", StatusText(state))
	})

	t.Run("O wins", func(t *testing.T) {
		state := play(InitialState(), 0, 3, 1, 4, 8, 5)

		assert.Equal(t, "Player O wins!", StatusText(state))
	})

	t.Run("Draw", func(t *testing.T) {
		state := entity.GameState{Board: entity.Board{x, o, x, o, x, o, o, x, o}, ActiveMark: x}

		assert.Equal(t, "It's a draw!", StatusText(state))
	})
}

// TestReachableStates walks every position reachable from the initial state
// and checks the game invariants on each of them.
func TestReachableStates(t *testing.T) {
	seen := make(map[entity.GameState]struct{})

	var walk func(state entity.GameState, moves int)
	walk = func(state entity.GameState, moves int) {
		if _, ok := seen[state]; ok {
			return
		}
		seen[state] = struct{}{}

		outcome := Evaluate(state.Board)
		filled := countFilled(state.Board)

		require.Equal(t, moves, filled)
		if outcome.Kind == entity.Draw {
			require.True(t, state.Board.IsFull())
		}
		if outcome.Kind == entity.InProgress {
			require.False(t, state.Board.IsFull())
			require.Equal(t, expectedMark(moves), state.ActiveMark)
		}

		for index := range entity.BoardSize {
			require.NotPanics(t, func() { _ = ApplyMove(state, index) })

			next := ApplyMove(state, index)
			if outcome.IsDecided() || state.Board[index] != entity.EmptyCell {
				require.Equal(t, state, next)
				continue
			}

			require.Equal(t, state.ActiveMark, next.Board[index])
			require.Equal(t, state.ActiveMark.Opponent(), next.ActiveMark)
			walk(next, moves+1)
		}
	}

	walk(InitialState(), 0)

	// 5478 distinct positions are reachable in tic-tac-toe.
	assert.Len(t, seen, 5478)
}

func play(state entity.GameState, cells ...int) entity.GameState {
	for _, cell := range cells {
		state = ApplyMove(state, cell)
	}
	return state
}

func countFilled(board entity.Board) int {
	filled := 0
	for _, cell := range board {
		if cell != entity.EmptyCell {
			filled++
		}
	}
	return filled
}

func expectedMark(moves int) entity.Mark {
	if moves%2 == 0 {
		return x
	}
	return o
}
