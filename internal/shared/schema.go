package shared

import (
	"database/sql"
	"embed"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"
)

//go:embed sql/*.sql
var schemaFiles embed.FS

// SchemaVersion is one bootstrap step with its create and drop SQL.
type SchemaVersion struct {
	Version int
	Up      string
	Down    string
}

// loadSchema reads the embedded SQL files and returns them sorted by version.
//
// File names follow "NNNN_description_up.sql" / "NNNN_description_down.sql".
func loadSchema() ([]SchemaVersion, error) {
	entries, err := schemaFiles.ReadDir("sql")
	if err != nil {
		return nil, fmt.Errorf("failed to read schema directory: %w", err)
	}

	versions := make(map[int]*SchemaVersion)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}

		prefix, _, ok := strings.Cut(name, "_")
		if !ok {
			continue
		}
		version, err := strconv.Atoi(prefix)
		if err != nil {
			continue
		}

		content, err := schemaFiles.ReadFile(path.Join("sql", name))
		if err != nil {
			return nil, fmt.Errorf("failed to read schema file %s: %w", name, err)
		}

		if versions[version] == nil {
			versions[version] = &SchemaVersion{Version: version}
		}
		switch {
		case strings.HasSuffix(name, "_up.sql"):
			versions[version].Up = string(content)
		case strings.HasSuffix(name, "_down.sql"):
			versions[version].Down = string(content)
		}
	}

	var result []SchemaVersion
	for _, v := range versions {
		if v.Up == "" || v.Down == "" {
			return nil, fmt.Errorf("incomplete schema version %d", v.Version)
		}
		result = append(result, *v)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Version < result[j].Version
	})

	return result, nil
}

// ApplySchema creates the station tables in a database that does not have them yet.
//
// Every statement uses IF NOT EXISTS, so an existing radio database is left untouched apart from the
// schema_versions bookkeeping table. Returns the number of versions applied.
func ApplySchema(db *sql.DB) (int, error) {
	versions, err := loadSchema()
	if err != nil {
		return 0, err
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_versions (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return 0, fmt.Errorf("%w: failed to create schema_versions table: %w", ErrStoreFailed, err)
	}

	applied := 0
	for _, v := range versions {
		var exists bool
		err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM schema_versions WHERE version = ?)", v.Version).Scan(&exists)
		if err != nil {
			return applied, fmt.Errorf("%w: failed to check schema version: %w", ErrStoreFailed, err)
		}
		if exists {
			continue
		}

		if err := execScript(db, v.Up, "INSERT INTO schema_versions (version) VALUES (?)", v.Version); err != nil {
			return applied, fmt.Errorf("%w: failed to apply schema version %d: %w", ErrStoreFailed, v.Version, err)
		}
		applied++
	}

	return applied, nil
}

// DropSchema reverts every applied schema version, newest first.
func DropSchema(db *sql.DB) error {
	versions, err := loadSchema()
	if err != nil {
		return err
	}

	for i := len(versions) - 1; i >= 0; i-- {
		v := versions[i]
		if err := execScript(db, v.Down, "DELETE FROM schema_versions WHERE version = ?", v.Version); err != nil {
			return fmt.Errorf("%w: failed to drop schema version %d: %w", ErrStoreFailed, v.Version, err)
		}
	}
	return nil
}

// execScript runs each statement of script and the bookkeeping statement in one transaction.
func execScript(db *sql.DB, script, bookkeeping string, version int) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range strings.Split(script, ";") {
		stmt = strings.TrimSpace(removeComments(stmt))
		if stmt == "" {
			continue
		}
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute statement: %w\nStatement: %s", err, stmt)
		}
	}

	if _, err := tx.Exec(bookkeeping, version); err != nil {
		return err
	}

	return tx.Commit()
}

// removeComments removes SQL comments from a statement.
func removeComments(sql string) string {
	lines := strings.Split(sql, "\n")
	var result []string
	for _, line := range lines {
		if idx := strings.Index(line, "--"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line != "" {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n")
}
