package bindings

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteStore implements Store using SQLite for persistence.
// It is suitable for single-instance deployments where bindings must
// survive restarts without running an external KV service.
//
// The database is opened in WAL mode with a busy timeout so that reads on
// the data plane are not blocked by control-plane writes.
type SQLiteStore struct {
	db *sql.DB

	getStmt    *sql.Stmt
	putStmt    *sql.Stmt
	deleteStmt *sql.Stmt
}

// SQLiteStoreConfig configures the SQLite backend.
type SQLiteStoreConfig struct {
	// Path is the database file path.
	Path string

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// NewSQLiteStore opens (and if needed initializes) a SQLite binding store.
func NewSQLiteStore(cfg SQLiteStoreConfig) (*SQLiteStore, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite store: path cannot be empty")
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("sqlite store: open database: %w", err)
	}

	// SQLite only supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &SQLiteStore{db: db}

	if err := s.configure(cfg.BusyTimeout); err != nil {
		db.Close()
		return nil, err
	}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite store: initialize schema: %w", err)
	}
	if err := s.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite store: prepare statements: %w", err)
	}

	return s, nil
}

// configure enables WAL mode and the busy timeout. DSN parameters are not
// used here: the driver does not recognize the _journal_mode family, so the
// pragmas must be executed on the open connection.
func (s *SQLiteStore) configure(busyTimeout time.Duration) error {
	if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return fmt.Errorf("sqlite store: enable WAL mode: %w", err)
	}
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeout.Milliseconds())); err != nil {
		return fmt.Errorf("sqlite store: set busy timeout: %w", err)
	}
	if _, err := s.db.Exec("PRAGMA synchronous=NORMAL;"); err != nil {
		return fmt.Errorf("sqlite store: set synchronous mode: %w", err)
	}
	return nil
}

// initSchema creates the bindings table if it doesn't exist.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tenant_bindings (
		tenant_id  TEXT PRIMARY KEY,
		env        TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);`

	_, err := s.db.Exec(schema)
	return err
}

// prepareStatements pre-compiles the three statements used per request.
func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.getStmt, err = s.db.Prepare(
		`SELECT env FROM tenant_bindings WHERE tenant_id = ?`)
	if err != nil {
		return fmt.Errorf("prepare get: %w", err)
	}

	s.putStmt, err = s.db.Prepare(
		`INSERT INTO tenant_bindings (tenant_id, env, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(tenant_id) DO UPDATE SET env = excluded.env, updated_at = excluded.updated_at`)
	if err != nil {
		return fmt.Errorf("prepare put: %w", err)
	}

	s.deleteStmt, err = s.db.Prepare(
		`DELETE FROM tenant_bindings WHERE tenant_id = ?`)
	if err != nil {
		return fmt.Errorf("prepare delete: %w", err)
	}

	return nil
}

// Get returns the bound environment for a tenant, if any.
func (s *SQLiteStore) Get(ctx context.Context, tenantID string) (Environment, bool, error) {
	var raw string
	err := s.getStmt.QueryRowContext(ctx, tenantID).Scan(&raw)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("sqlite store: get %q: %w", tenantID, err)
	}

	env := Environment(raw)
	if !env.Valid() {
		return "", false, fmt.Errorf("sqlite store: corrupt binding for %q: %q", tenantID, raw)
	}
	return env, true, nil
}

// Put creates or overwrites the binding for a tenant.
func (s *SQLiteStore) Put(ctx context.Context, tenantID string, env Environment) error {
	_, err := s.putStmt.ExecContext(ctx, tenantID, string(env), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("sqlite store: put %q: %w", tenantID, err)
	}
	return nil
}

// Delete removes the binding for a tenant. Idempotent.
func (s *SQLiteStore) Delete(ctx context.Context, tenantID string) error {
	_, err := s.deleteStmt.ExecContext(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("sqlite store: delete %q: %w", tenantID, err)
	}
	return nil
}

// Close closes the prepared statements and the database.
func (s *SQLiteStore) Close() error {
	for _, stmt := range []*sql.Stmt{s.getStmt, s.putStmt, s.deleteStmt} {
		if stmt != nil {
			stmt.Close()
		}
	}
	return s.db.Close()
}
