package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/rocketscienceinc/tictactoe-local/internal/shell"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	controller, err := shell.NewController(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not start shell: %v\n", err)
		os.Exit(1)
	}

	controller.Loop()
}
