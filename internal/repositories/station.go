package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/stationer/internal/models"
	"github.com/desertthunder/stationer/internal/shared"
)

const (
	listStationsQuery = `
		SELECT column_station_freq, column_station_name
		FROM StationList
		WHERE column_station_type IN (2, 3)
		ORDER BY column_station_freq
	`
	insertStationQuery       = "INSERT INTO StationList(column_station_name, column_station_freq, column_station_type) VALUES(?, ?, 3)"
	deleteStationQuery       = "DELETE FROM StationList WHERE column_station_freq = ?"
	recategorizeStationQuery = "UPDATE StationList SET column_station_type = ? WHERE column_station_type = ?"

	// DefaultUpdateQuery renames the station stored at a frequency. Parameters: (name, tenths).
	DefaultUpdateQuery = "UPDATE StationList SET column_station_name = ? WHERE column_station_freq = ?"
)

// StationRepository implements the local station store on top of the StationList table.
type StationRepository struct {
	db           *sql.DB
	insert       *lazyStmt
	update       *lazyStmt
	delete       *lazyStmt
	recategorize *lazyStmt
}

// NewStationRepository creates a new StationRepository with the given database connection.
//
// updateQuery is the statement used to rename a station, taking (name, tenths); empty uses [DefaultUpdateQuery].
func NewStationRepository(db *sql.DB, updateQuery string) *StationRepository {
	if updateQuery == "" {
		updateQuery = DefaultUpdateQuery
	}

	return &StationRepository{
		db:           db,
		insert:       newLazyStmt(insertStationQuery),
		update:       newLazyStmt(updateQuery),
		delete:       newLazyStmt(deleteStationQuery),
		recategorize: newLazyStmt(recategorizeStationQuery),
	}
}

// List retrieves every favourite or normal station ordered by frequency.
func (r *StationRepository) List(ctx context.Context) ([]models.Station, error) {
	rows, err := r.db.QueryContext(ctx, listStationsQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query stations: %w", shared.ErrStoreFailed, err)
	}
	defer rows.Close()

	var stations []models.Station
	for rows.Next() {
		var (
			tenths int
			name   sql.NullString
		)
		if err := rows.Scan(&tenths, &name); err != nil {
			return nil, fmt.Errorf("%w: failed to scan station: %w", shared.ErrStoreFailed, err)
		}
		stations = append(stations, models.Station{
			Frequency: models.FrequencyFromTenths(tenths),
			Name:      name.String,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: row iteration error: %w", shared.ErrStoreFailed, err)
	}

	return stations, nil
}

// Insert adds a station in the normal category.
func (r *StationRepository) Insert(ctx context.Context, station models.Station) error {
	_, err := r.exec(ctx, r.insert, station.StoredName(), station.Frequency.Tenths())
	if err != nil {
		return fmt.Errorf("failed to insert station %s: %w", station.Frequency, err)
	}
	return nil
}

// Update renames the station stored at the station's frequency.
func (r *StationRepository) Update(ctx context.Context, station models.Station) error {
	_, err := r.exec(ctx, r.update, station.StoredName(), station.Frequency.Tenths())
	if err != nil {
		return fmt.Errorf("failed to update station %s: %w", station.Frequency, err)
	}
	return nil
}

// Delete removes every row stored at the given frequency.
func (r *StationRepository) Delete(ctx context.Context, frequency models.Frequency) error {
	_, err := r.exec(ctx, r.delete, frequency.Tenths())
	if err != nil {
		return fmt.Errorf("failed to delete station %s: %w", frequency, err)
	}
	return nil
}

// Recategorize moves every station of category from into category to and returns the number of rows moved.
func (r *StationRepository) Recategorize(ctx context.Context, to, from int) (int64, error) {
	result, err := r.exec(ctx, r.recategorize, to, from)
	if err != nil {
		return 0, fmt.Errorf("failed to move stations from category %d to %d: %w", from, to, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: failed to get affected rows: %w", shared.ErrStoreFailed, err)
	}
	return rows, nil
}

// Close releases every prepared statement.
func (r *StationRepository) Close() error {
	var errs []error
	for _, stmt := range []*lazyStmt{r.insert, r.update, r.delete, r.recategorize} {
		if err := stmt.close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *StationRepository) exec(ctx context.Context, l *lazyStmt, args ...any) (sql.Result, error) {
	stmt, err := l.get(ctx, r.db)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrStoreFailed, err)
	}

	result, err := stmt.ExecContext(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrStoreFailed, err)
	}
	return result, nil
}
