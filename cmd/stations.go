package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/desertthunder/stationer/internal/formatter"
	"github.com/desertthunder/stationer/internal/metrics"
	"github.com/desertthunder/stationer/internal/models"
	"github.com/desertthunder/stationer/internal/shared"
	"github.com/desertthunder/stationer/internal/tasks"
	"github.com/desertthunder/stationer/internal/ui"
	"github.com/urfave/cli/v3"
)

// Info prints the insert, delete and update sets. Empty sets print nothing.
func (r *Runner) Info(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.reconciler()
	if err != nil {
		return err
	}

	plan, err := engine.Plan(ctx)
	if err != nil {
		return err
	}

	sections := []struct {
		title    string
		stations []models.Station
	}{
		{"Insert", plan.Insert},
		{"Delete", plan.Delete},
		{"Update", plan.Update},
	}
	for _, s := range sections {
		if len(s.stations) == 0 {
			continue
		}
		if err := r.writePlainln("%s", ui.Title(formatter.SectionTitle(s.title, len(s.stations)))); err != nil {
			return err
		}
		if err := formatter.WriteStations(r.output, s.stations); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// Sync applies the full plan and prints a summary.
func (r *Runner) Sync(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.reconciler()
	if err != nil {
		return err
	}

	printer := ui.NewProgressPrinter(r.output, r.verbose)
	start := time.Now()
	result, err := engine.Sync(ctx, printer.Updates())
	printer.Close()

	if path := r.metricsPath(cmd); path != "" {
		r.exportMetrics(path, result, time.Since(start), err)
	}
	if err != nil {
		return err
	}

	if result.Total() == 0 {
		return r.writePlainln("%s", ui.OK("Nothing to sync"))
	}
	return r.writePlainln("%s", ui.OK(fmt.Sprintf("Sync complete: %d updated, %d deleted, %d inserted",
		result.Updated, result.Deleted, result.Inserted)))
}

func (r *Runner) metricsPath(cmd *cli.Command) string {
	if path := cmd.String("metrics-file"); path != "" {
		return path
	}
	return r.config.Metrics.Textfile
}

// exportMetrics writes the run outcome to a textfile. A failed export is logged and does not fail the sync.
//
// Snapshot sizes come from the result only; a run that failed before planning leaves them unset.
func (r *Runner) exportMetrics(path string, result *tasks.SyncResult, elapsed time.Duration, syncErr error) {
	recorder := metrics.NewRecorder()
	recorder.ObserveSync(result, elapsed, syncErr, time.Now())
	if result != nil && result.Planned {
		recorder.ObserveSnapshots(result.Reference, result.Local)
	}

	if err := recorder.WriteTextfile(path); err != nil {
		r.logger.Warn("metrics export failed", "path", path, "err", err)
		return
	}
	r.logger.Debug("metrics exported", "path", path)
}

// Update renames stations whose reference name changed.
func (r *Runner) Update(ctx context.Context, cmd *cli.Command) error {
	return r.apply(ctx, "Updated", (*tasks.Reconciler).Update)
}

// Insert adds reference stations missing locally.
func (r *Runner) Insert(ctx context.Context, cmd *cli.Command) error {
	return r.apply(ctx, "Inserted", (*tasks.Reconciler).Insert)
}

// Delete removes local stations missing from the reference.
func (r *Runner) Delete(ctx context.Context, cmd *cli.Command) error {
	return r.apply(ctx, "Deleted", (*tasks.Reconciler).Delete)
}

type applyFunc func(*tasks.Reconciler, context.Context, chan<- tasks.ProgressUpdate) (int, error)

func (r *Runner) apply(ctx context.Context, verb string, fn applyFunc) error {
	engine, err := r.reconciler()
	if err != nil {
		return err
	}

	printer := ui.NewProgressPrinter(r.output, r.verbose)
	n, err := fn(engine, ctx, printer.Updates())
	printer.Close()
	if err != nil {
		return err
	}

	return r.writePlainln("%s", ui.OK(fmt.Sprintf("%s %s", verb, stationCount(n))))
}

// List prints the local snapshot, or the reference snapshot when asked for "wiki".
func (r *Runner) List(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.reconciler()
	if err != nil {
		return err
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrInvalidArgument, err)
	}

	path := cmd.String("output")
	if format.Binary() && path == "" {
		return fmt.Errorf("%w: --format %s needs --output", shared.ErrInvalidArgument, format)
	}

	wiki := cmd.Bool("wiki") || cmd.Args().First() == "wiki"

	var stations []models.Station
	title := "Local stations"
	if wiki {
		title = "Reference stations"
		stations, err = engine.Reference(ctx)
	} else {
		stations, err = engine.Local(ctx)
	}
	if err != nil {
		return err
	}

	var data []byte
	if format == formatter.FormatText {
		data, err = formatter.ExportToText("", stations)
	} else {
		data, err = formatter.Export(format, title, stations)
	}
	if err != nil {
		return fmt.Errorf("failed to render stations: %w", err)
	}

	if path != "" {
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		r.logger.Info("stations exported", "path", path, "format", format, "count", len(stations))
		return r.writePlainln("%s", ui.OK(fmt.Sprintf("Wrote %s to %s", stationCount(len(stations)), path)))
	}

	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// Fav marks every station favourite.
func (r *Runner) Fav(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.reconciler()
	if err != nil {
		return err
	}

	n, err := engine.MarkAllFavourite(ctx, nil)
	if err != nil {
		return err
	}
	return r.writePlainln("%s", ui.OK(fmt.Sprintf("Marked %s favourite", stationCount(int(n)))))
}

// Unfav moves every favourite station back to the normal category.
func (r *Runner) Unfav(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.reconciler()
	if err != nil {
		return err
	}

	n, err := engine.UnmarkAllFavourite(ctx, nil)
	if err != nil {
		return err
	}
	return r.writePlainln("%s", ui.OK(fmt.Sprintf("Unmarked %s", stationCount(int(n)))))
}

// Reload drops the cached local snapshot.
func (r *Runner) Reload(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.reconciler()
	if err != nil {
		return err
	}

	engine.Invalidate()
	return r.writePlainln("%s", ui.Help("Local snapshot dropped"))
}

func stationCount(n int) string {
	if n == 1 {
		return "1 station"
	}
	return fmt.Sprintf("%d stations", n)
}
