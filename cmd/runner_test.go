package main

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/stationer/internal/models"
	"github.com/desertthunder/stationer/internal/repositories"
	"github.com/desertthunder/stationer/internal/shared"
	tu "github.com/desertthunder/stationer/internal/testing"
)

// newTestRunner builds a runner over an in-memory station table and a mock reference source.
func newTestRunner(t *testing.T, source *tu.MockSource, local ...models.Station) (*Runner, *bytes.Buffer, *sql.DB) {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	shared.ConfigureDatabase(db, 1, 1)
	if _, err := shared.ApplySchema(db); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	repo := repositories.NewStationRepository(db, "")
	for _, s := range local {
		if err := repo.Insert(context.Background(), s); err != nil {
			t.Fatalf("failed to seed station: %v", err)
		}
	}

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Logger: shared.NewLogger(io.Discard),
		Output: output,
		Source: source,
		Store:  repo,
		DB:     db,
	})
	t.Cleanup(func() { runner.Close() })

	return runner, output, db
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			input := strings.NewReader("")

			runner := NewRunner(RunnerOpts{
				Config: config,
				Logger: logger,
				Output: output,
				Input:  input,
				Source: &tu.MockSource{},
				Store:  repositories.NewStationRepository(nil, ""),
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.input != input {
				t.Error("expected input to be set")
			}
			if runner.engine == nil {
				t.Error("expected engine to be built from source and store")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("without a source the engine waits for Init", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.engine != nil {
				t.Error("expected no engine before Init")
			}
			if _, err := runner.reconciler(); !errors.Is(err, shared.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlain("hello %s", "world"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "hello world" {
				t.Errorf("expected 'hello world', got %q", output.String())
			}
		})

		t.Run("writePlainln appends a newline", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlainln("simple text"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "simple text\n" {
				t.Errorf("expected 'simple text\\n', got %q", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writePlain("test")
			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		names := map[string]bool{}
		for i, cmd := range commands {
			if cmd == nil {
				t.Fatalf("command at index %d is nil", i)
			}
			names[cmd.Name] = true
			for _, alias := range cmd.Aliases {
				names[alias] = true
			}
		}

		for _, want := range []string{"info", "sync", "update", "insert", "delete", "list", "fav", "unfav", "reload", "setup", "exit", "quit"} {
			if !names[want] {
				t.Errorf("expected command %q to be registered", want)
			}
		}
	})
}

func TestRootCommand(t *testing.T) {
	t.Run("setup creates the station table from flags", func(t *testing.T) {
		dir := t.TempDir()
		dbPath := filepath.Join(dir, "radio.db")
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(io.Discard), Output: output})

		args := []string{appName, "--config", filepath.Join(dir, "missing.toml"), "--db", dbPath, "setup"}
		if err := rootCommand(runner).Run(context.Background(), args); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if runner.config.Database.Path != dbPath {
			t.Errorf("expected --db to override the path, got %s", runner.config.Database.Path)
		}
		if !strings.Contains(output.String(), "Schema ready") {
			t.Errorf("expected setup summary, got %q", output.String())
		}

		db, err := shared.NewDatabase(dbPath)
		if err != nil {
			t.Fatalf("failed to reopen database: %v", err)
		}
		defer db.Close()

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM StationList").Scan(&count); err != nil {
			t.Errorf("expected StationList to exist: %v", err)
		}
	})

	t.Run("setup --init-config writes the template", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "config.toml")
		runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(io.Discard), Output: &bytes.Buffer{}})

		args := []string{appName, "--config", configPath, "--db", filepath.Join(dir, "radio.db"), "setup", "--init-config"}
		if err := rootCommand(runner).Run(context.Background(), args); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		config, err := shared.LoadConfig(configPath)
		if err != nil {
			t.Fatalf("expected a loadable config, got %v", err)
		}
		if err := config.Validate(); err != nil {
			t.Errorf("expected a valid config, got %v", err)
		}
	})

	t.Run("invalid config is rejected before any command runs", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "config.toml")
		if err := os.WriteFile(configPath, []byte("[database]\nupdate_stmt = \"UPDATE StationList SET column_station_name = ?\"\n"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(io.Discard), Output: &bytes.Buffer{}})

		err := rootCommand(runner).Run(context.Background(), []string{appName, "--config", configPath, "setup"})
		if !errors.Is(err, shared.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("unknown token in single-shot mode", func(t *testing.T) {
		runner, output, _ := newTestRunner(t, &tu.MockSource{})

		err := rootCommand(runner).Run(context.Background(), []string{appName, "--config", filepath.Join(t.TempDir(), "none.toml"), "bogus"})
		if !errors.Is(err, shared.ErrUnknownCommand) {
			t.Errorf("expected ErrUnknownCommand, got %v", err)
		}
		if !strings.Contains(output.String(), "-- unknown: bogus") {
			t.Errorf("expected unknown diagnostic, got %q", output.String())
		}
	})

	t.Run("no command starts the loop", func(t *testing.T) {
		runner, output, _ := newTestRunner(t, &tu.MockSource{})
		runner.input = strings.NewReader("quit\n")

		if err := rootCommand(runner).Run(context.Background(), []string{appName, "--config", filepath.Join(t.TempDir(), "none.toml")}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(output.String(), prompt) {
			t.Errorf("expected the prompt, got %q", output.String())
		}
	})
}
