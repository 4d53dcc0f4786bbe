// package repositories provides persistence layer implementations for the station catalog.
package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// lazyStmt prepares a statement on first use and reuses it afterwards.
// A failed prepare is attempted again on the next call.
type lazyStmt struct {
	query string
	mu    sync.Mutex
	stmt  *sql.Stmt
}

func newLazyStmt(query string) *lazyStmt {
	return &lazyStmt{query: query}
}

func (l *lazyStmt) get(ctx context.Context, db *sql.DB) (*sql.Stmt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.stmt != nil {
		return l.stmt, nil
	}

	stmt, err := db.PrepareContext(ctx, l.query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement %q: %w", l.query, err)
	}
	l.stmt = stmt
	return stmt, nil
}

func (l *lazyStmt) close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.stmt == nil {
		return nil
	}
	err := l.stmt.Close()
	l.stmt = nil
	return err
}
