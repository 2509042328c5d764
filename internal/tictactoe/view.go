package tictactoe

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/rocketscienceinc/tictactoe-local/internal/entity"
)

// View is everything a presentation layer needs to draw one frame of the game.
type View struct {
	Board      entity.Board `json:"board"`
	ActiveMark entity.Mark  `json:"active_mark"`
	Status     string       `json:"status"`
	Outcome    string       `json:"outcome"`
	Winner     entity.Mark  `json:"winner"`
	WinLine    []int        `json:"win_line"`
	Finished   bool         `json:"finished"`
	Cells      []CellView   `json:"cells"`
}

type CellView struct {
	Index    int         `json:"index"`
	Mark     entity.Mark `json:"mark"`
	Label    string      `json:"label"`
	Disabled bool        `json:"disabled"`
	Winning  bool        `json:"winning"`
}

// Render projects the state into a View. It is recomputed on every call.
func Render(state entity.GameState) View {
	outcome := Evaluate(state.Board)

	winLine := []int{}
	if outcome.Kind == entity.Win {
		winLine = outcome.Line[:]
	}

	cells := lo.Map(state.Board[:], func(mark entity.Mark, index int) CellView {
		return CellView{
			Index:    index,
			Mark:     mark,
			Label:    cellLabel(index, mark),
			Disabled: mark != entity.EmptyCell || outcome.IsDecided(),
			Winning:  lo.Contains(winLine, index),
		}
	})

	return View{
		Board:      state.Board,
		ActiveMark: state.ActiveMark,
		Status:     StatusText(state),
		Outcome:    outcome.Kind.String(),
		Winner:     outcome.Winner,
		WinLine:    winLine,
		Finished:   outcome.IsDecided(),
		Cells:      cells,
	}
}

func cellLabel(index int, mark entity.Mark) string {
	if mark == entity.EmptyCell {
		return fmt.Sprintf("Cell %d, empty", index+1)
	}
	return fmt.Sprintf("Cell %d, %s", index+1, mark)
}
