package entity

import (
	"errors"
	"fmt"
)

// Mark is the content of a board cell: empty or one of the two player symbols.
type Mark string

const (
	EmptyCell Mark = ""
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
)

const BoardSize = 9

var ErrInvalidMark = errors.New("invalid mark")

// Opponent returns the mark that moves after this one.
func (that Mark) Opponent() Mark {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

func (that Mark) Validate() error {
	if that == EmptyCell || that.IsPlayer() {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidMark, string(that))
}

// Board is the 3x3 grid stored row-major: index = row*3 + col.
type Board [BoardSize]Mark

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}
	return true
}

func (that Board) IsEmptyAt(index int) bool {
	return index >= 0 && index < BoardSize && that[index] == EmptyCell
}

// GameState is the whole mutable state of a game. Outcome and status text are
// always derived from it and never stored next to it.
type GameState struct {
	Board      Board `json:"board"`
	ActiveMark Mark  `json:"active_mark"`
}

// Validate reports whether the state only holds known marks.
func (that GameState) Validate() error {
	for i, cell := range that.Board {
		if err := cell.Validate(); err != nil {
			return fmt.Errorf("cell %d: %w", i, err)
		}
	}

	if !that.ActiveMark.IsPlayer() {
		return fmt.Errorf("active mark: %w: %q", ErrInvalidMark, string(that.ActiveMark))
	}

	return nil
}

// Line is one of the eight index triples that wins when uniformly marked.
type Line [3]int

type OutcomeKind int

const (
	InProgress OutcomeKind = iota
	Win
	Draw
)

func (that OutcomeKind) String() string {
	switch that {
	case InProgress:
		return "in_progress"
	case Win:
		return "win"
	case Draw:
		return "draw"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", int(that))
	}
}

// Outcome classifies a board. Winner and Line are only meaningful for Win.
type Outcome struct {
	Kind   OutcomeKind
	Winner Mark
	Line   Line
}

func (that Outcome) IsDecided() bool {
	return that.Kind != InProgress
}
