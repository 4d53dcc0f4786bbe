package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/stationer/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	runner := NewRunner(RunnerOpts{Logger: logger})
	app := rootCommand(runner)

	if err := app.Run(context.Background(), os.Args); err != nil {
		switch {
		case errors.Is(err, errQuit):
			return
		case errors.Is(err, shared.ErrUnknownCommand):
			os.Exit(1)
		default:
			logger.Error("application error", "err", err)
			os.Exit(1)
		}
	}
}
