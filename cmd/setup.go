package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/stationer/internal/shared"
	"github.com/desertthunder/stationer/internal/ui"
	"github.com/urfave/cli/v3"
)

// Setup creates the station table in the configured database.
//
// With --init-config the default config file is written first; with --drop the table is dropped before it is created.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("init-config") {
		path := r.configPath
		if path == "" {
			path = "config.toml"
		}
		if _, err := os.Stat(path); err == nil {
			r.logger.Warn("config file already exists, leaving it untouched", "path", path)
		} else {
			r.logger.Info("config file not found, creating from template", "path", path)
			if err := shared.CreateConfigFile(path); err != nil {
				return err
			}
			r.writePlainln("%s", ui.OK("Config written to "+path))
		}
	}

	if r.db == nil {
		return fmt.Errorf("%w: no database connection", shared.ErrStoreFailed)
	}

	if cmd.Bool("drop") {
		r.logger.Warn("dropping station table", "path", r.config.Database.Path)
		if err := shared.DropSchema(r.db); err != nil {
			return err
		}
	}

	r.logger.Info("applying station schema", "path", r.config.Database.Path)
	applied, err := shared.ApplySchema(r.db)
	if err != nil {
		return err
	}

	if r.engine != nil {
		r.engine.Invalidate()
	}
	r.logger.Infof("setup complete for database: %v", r.config.Database.Path)
	return r.writePlainln("%s", ui.OK(fmt.Sprintf("Schema ready (%d versions applied)", applied)))
}
