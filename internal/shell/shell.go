package shell

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/rocketscienceinc/tictactoe-local/internal/entity"
	"github.com/rocketscienceinc/tictactoe-local/internal/tictactoe"
)

const helpText = `Commands:
  1..9   place the active mark on that cell (1 is top-left, 9 is bottom-right)
  board  show the board
  reset  start a new game
  help   show this help
  exit   leave the shell (also: bye)`

var errExit = errors.New("exit")

// Controller runs a local two-player game in the terminal.
type Controller struct {
	logger *slog.Logger
	l      *readline.Instance
	out    io.Writer

	state entity.GameState
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func NewController(logger *slog.Logger) (*Controller, error) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32mtictactoe>\033[0m ",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init readline: %w", err)
	}

	controller := newController(logger, l.Stdout())
	controller.l = l

	return controller, nil
}

func newController(logger *slog.Logger, out io.Writer) *Controller {
	return &Controller{
		logger: logger.With("component", "shell"),
		out:    out,
		state:  tictactoe.InitialState(),
	}
}

// Loop reads commands until exit, EOF or an interrupt on an empty line.
func (that *Controller) Loop() {
	defer that.l.Close()

	that.show()

	for {
		line, err := that.l.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return
			}
			continue
		}

		if errors.Is(err, io.EOF) {
			return
		}

		if err = that.execute(line); errors.Is(err, errExit) {
			return
		}
	}
}

func (that *Controller) execute(line string) error {
	line = strings.ToLower(strings.TrimSpace(line))

	switch line {
	case "":
		return nil
	case "exit", "bye":
		that.println("bye")
		return errExit
	case "help":
		that.println(helpText)
	case "board":
		that.show()
	case "reset":
		that.state = tictactoe.Reset()
		that.show()
	default:
		cell, err := strconv.Atoi(line)
		if err != nil || cell < 1 || cell > entity.BoardSize {
			that.println(fmt.Sprintf("unknown command %q, type help", line))
			return nil
		}

		that.move(cell - 1)
	}

	return nil
}

func (that *Controller) move(index int) {
	if !tictactoe.CanMove(that.state, index) {
		that.logger.Debug("move ignored", "cell", index)
		that.show()
		return
	}

	that.state = tictactoe.ApplyMove(that.state, index)
	that.show()
}

func (that *Controller) show() {
	that.println(renderBoard(that.state.Board))
	that.println(tictactoe.StatusText(that.state))
}

func (that *Controller) println(msg string) {
	_, _ = io.WriteString(that.out, msg+"\n")
}

// renderBoard draws empty cells with their 1-based number so they can be typed.
func renderBoard(board entity.Board) string {
	rows := make([]string, 0, 3)

	for row := range 3 {
		cells := make([]string, 0, 3)

		for col := range 3 {
			index := row*3 + col
			if board[index] == entity.EmptyCell {
				cells = append(cells, strconv.Itoa(index+1))
				continue
			}
			cells = append(cells, string(board[index]))
		}

		rows = append(rows, " "+strings.Join(cells, " | "))
	}

	return strings.Join(rows, "\n---+---+---\n")
}
