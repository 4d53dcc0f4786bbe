package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/desertthunder/stationer/internal/shared"
	"github.com/desertthunder/stationer/internal/ui"
	"github.com/urfave/cli/v3"
)

const prompt = "Command: "

// Root runs the interactive loop when no command was given.
func (r *Runner) Root(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Present() {
		return r.Unknown(ctx, cmd)
	}
	return r.Shell(ctx, r.input)
}

// Unknown reports a token that names no command.
func (r *Runner) Unknown(ctx context.Context, cmd *cli.Command) error {
	token := cmd.Args().First()
	if token == "" {
		return nil
	}
	r.writePlainln("-- unknown: %s", token)
	return fmt.Errorf("%w: %s", shared.ErrUnknownCommand, token)
}

// Exit leaves the command loop.
func (r *Runner) Exit(ctx context.Context, cmd *cli.Command) error {
	return errQuit
}

// Shell reads commands line by line until exit, quit or end of input.
//
// Lines have no length limit. A failing or panicking command is reported and the loop continues.
func (r *Runner) Shell(ctx context.Context, in io.Reader) error {
	reader := bufio.NewReader(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		r.writePlain(prompt)
		line, readErr := reader.ReadString('\n')
		if line == "" && readErr != nil {
			r.writePlain("\n")
			if errors.Is(readErr, io.EOF) {
				return nil
			}
			return readErr
		}

		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}

		err := r.dispatch(ctx, args)
		switch {
		case err == nil, errors.Is(err, shared.ErrUnknownCommand):
		case errors.Is(err, errQuit):
			return nil
		default:
			r.logger.Error("command failed", "command", args[0], "err", err)
			r.writePlainln("%s", ui.Err("Error: "+err.Error()))
		}
	}
}

// dispatch runs one line through a fresh command tree.
func (r *Runner) dispatch(ctx context.Context, args []string) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("command %q panicked: %v", args[0], rec)
		}
	}()

	return lineCommand(r).Run(ctx, append([]string{appName}, args...))
}
