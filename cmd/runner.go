package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/stationer/internal/repositories"
	"github.com/desertthunder/stationer/internal/services"
	"github.com/desertthunder/stationer/internal/shared"
	"github.com/desertthunder/stationer/internal/tasks"
	"github.com/urfave/cli/v3"
)

// errQuit ends the command loop.
var errQuit = fmt.Errorf("quit")

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	logger     *log.Logger
	output     io.Writer
	input      io.Reader
	db         *sql.DB
	store      tasks.Store
	engine     *tasks.Reconciler
	verbose    bool
}

// RunnerOpts contains configuration options for creating a Runner.
//
// When both Source and Store are set the engine is built immediately and [Runner.Init] does not connect.
type RunnerOpts struct {
	Config  *shared.Config
	Logger  *log.Logger
	Output  io.Writer
	Input   io.Reader
	Source  services.Source
	Store   tasks.Store
	DB      *sql.DB
	Verbose bool
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}

	r := &Runner{
		config:  opts.Config,
		logger:  opts.Logger,
		output:  opts.Output,
		input:   opts.Input,
		db:      opts.DB,
		store:   opts.Store,
		verbose: opts.Verbose,
	}
	if opts.Source != nil && opts.Store != nil {
		r.engine = tasks.NewReconciler(opts.Source, opts.Store, opts.Logger)
	}
	return r
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		infoCommand, syncCommand, updateCommand, insertCommand, deleteCommand, listCommand,
		favCommand, unfavCommand, reloadCommand, setupCommand, exitCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Init loads configuration, applies flag overrides and opens the database and reference source.
func (r *Runner) Init(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	r.configPath = cmd.String("config")

	config, err := shared.LoadConfig(r.configPath)
	switch {
	case errors.Is(err, shared.ErrMissingConfig):
		r.logger.Debug("config file not found, using defaults", "path", r.configPath)
		config = shared.DefaultConfig()
	case err != nil:
		return ctx, err
	}

	if url := cmd.String("wiki-url"); url != "" {
		config.Source.URL = url
	}
	if path := cmd.String("db"); path != "" {
		config.Database.Path = path
	}
	if err := config.Validate(); err != nil {
		return ctx, err
	}
	r.config = config

	r.verbose = r.verbose || cmd.Bool("verbose")
	if r.verbose {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	} else {
		shared.SetLogLevel(r.logger, config.LogLevel())
	}

	if r.engine != nil {
		return ctx, nil
	}
	return ctx, r.connect()
}

func (r *Runner) connect() error {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return err
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	source, err := services.NewWikiSource(services.WikiOpts{
		URL:          r.config.Source.URL,
		Charset:      r.config.Source.Charset,
		NameCodepage: r.config.Source.NameCodepage,
		Timeout:      r.config.SourceTimeout(),
	})
	if err != nil {
		db.Close()
		return err
	}

	repo := repositories.NewStationRepository(db, r.config.Database.UpdateStmt)
	r.db, r.store = db, repo
	r.engine = tasks.NewReconciler(source, repo, r.logger)

	r.logger.Debug("runner initialized", "db", r.config.Database.Path, "source", r.config.Source.URL)
	return nil
}

// After releases prepared statements and the database connection.
func (r *Runner) After(ctx context.Context, cmd *cli.Command) error {
	return r.Close()
}

// Close releases the store and database held by the runner.
func (r *Runner) Close() error {
	var errs []error
	if c, ok := r.store.(io.Closer); ok {
		errs = append(errs, c.Close())
	}
	if r.db != nil {
		errs = append(errs, r.db.Close())
		r.db = nil
	}
	return errors.Join(errs...)
}

func (r *Runner) reconciler() (*tasks.Reconciler, error) {
	if r.engine == nil {
		return nil, fmt.Errorf("%w: runner is not initialized", shared.ErrInvalidConfig)
	}
	return r.engine, nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	return r.writePlain(format+"\n", args...)
}
