// submodule cmd contains command definitions
package main

import (
	"github.com/urfave/cli/v3"
)

const appName = "stationer"

// rootCommand is the process entry point: global flags, dependency setup, then one command or the interactive loop.
func rootCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    appName,
		Usage:   "Reconcile a radio station catalog with the Wikipedia station list",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
				Sources: cli.EnvVars("STATIONER_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "wiki-url",
				Usage:   "Reference page URL (overrides source.url)",
				Sources: cli.EnvVars("STATIONER_WIKI_URL"),
			},
			&cli.StringFlag{
				Name:    "db",
				Usage:   "Path to the radio SQLite database (overrides database.path)",
				Sources: cli.EnvVars("STATIONER_DB"),
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging and print fetch progress",
			},
		},
		Before:    r.Init,
		After:     r.After,
		Action:    r.Root,
		Commands:  r.register(),
		Writer:    r.output,
		ErrWriter: r.output,
	}
}

// lineCommand is the tree used to dispatch one line of the interactive loop.
//
// It is rebuilt for every line since a parsed [cli.Command] keeps its flag state.
func lineCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      appName,
		Action:    r.Unknown,
		Commands:  r.register(),
		Writer:    r.output,
		ErrWriter: r.output,
	}
}

func infoCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "info",
		Usage:  "Print the pending insert, delete and update sets",
		Action: r.Info,
	}
}

func syncCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Apply updates, then deletes, then inserts",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "metrics-file",
				Usage: "Write a Prometheus textfile after the run (overrides metrics.textfile)",
			},
		},
		Action: r.Sync,
	}
}

func updateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "update",
		Usage:  "Rename stations whose reference name changed",
		Action: r.Update,
	}
}

func insertCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "insert",
		Usage:  "Add reference stations missing locally",
		Action: r.Insert,
	}
}

func deleteCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "delete",
		Usage:  "Remove local stations missing from the reference",
		Action: r.Delete,
	}
}

func listCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     "List local stations, or reference stations with 'wiki'",
		ArgsUsage: "[wiki]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "wiki",
				Usage: "List the reference snapshot",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, csv, markdown, json, yaml or xlsx",
				Value:   "text",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write to a file instead of the terminal",
			},
		},
		Action: r.List,
	}
}

func favCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "fav",
		Usage:  "Mark every station favourite",
		Action: r.Fav,
	}
}

func unfavCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "unfav",
		Usage:  "Unmark every favourite station",
		Action: r.Unfav,
	}
}

func reloadCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "reload",
		Usage:  "Drop the cached local snapshot",
		Action: r.Reload,
	}
}

// setupCommand creates the station table in an empty database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create the station table if it does not exist",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "drop",
				Usage: "Drop the station table first",
			},
			&cli.BoolFlag{
				Name:  "init-config",
				Usage: "Write the default config file if it does not exist",
			},
		},
		Action: r.Setup,
	}
}

func exitCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "exit",
		Aliases: []string{"quit"},
		Usage:   "Leave the command loop",
		Action:  r.Exit,
	}
}
