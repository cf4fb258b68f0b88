// Package sqlite stores task list slots as rows of a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"time"

	"task-list/internal/errors"
	"task-list/internal/storage"
	"task-list/internal/storage/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Slot is a storage slot persisted as one row of the slots table.
type Slot struct {
	db   *sql.DB
	name string
	now  func() time.Time
}

// Open opens (creating if needed) the database at dbPath, applies pending
// migrations and returns the slot called name.
func Open(ctx context.Context, dbPath string, name string) (*Slot, error) {
	if name == "" {
		name = storage.DefaultSlotName
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, HandleDatabaseError("open database", name, err)
	}

	if err := migrations.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, HandleDatabaseError("run migrations", name, err)
	}

	return &Slot{db: db, name: name, now: time.Now}, nil
}

// Name returns the slot name.
func (s *Slot) Name() string {
	return s.name
}

// Read returns the slot data, or nil when no row exists for the slot.
func (s *Slot) Read(ctx context.Context) ([]byte, error) {
	row, err := s.Get(ctx)
	if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.Data, nil
}

// Get returns the full row for the slot.
func (s *Slot) Get(ctx context.Context) (*SlotRow, error) {
	query := `
	SELECT name, data, updated_at
	FROM slots
	WHERE name = ?`

	return QuerySingle(ctx, s.db, query, ScanSlotRow, s.name, s.name)
}

// Write replaces the slot data in a single statement.
func (s *Slot) Write(ctx context.Context, data []byte) error {
	query := `
	INSERT INTO slots (name, data, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`

	if data == nil {
		data = []byte{}
	}
	return ExecuteWithRowsAffected(ctx, s.db, query, s.name, s.name, data, FormatTimeForDB(s.now()))
}

// List returns every slot stored in the database ordered by name.
func (s *Slot) List(ctx context.Context) ([]storage.SlotInfo, error) {
	query := `
	SELECT name, data, updated_at
	FROM slots
	ORDER BY name ASC`

	rows, err := QueryMultiple(ctx, s.db, query, ScanSlotRows)
	if err != nil {
		return nil, err
	}

	infos := make([]storage.SlotInfo, 0, len(rows))
	for _, row := range rows {
		infos = append(infos, storage.SlotInfo{
			Name:      row.Name,
			Size:      int64(len(row.Data)),
			UpdatedAt: row.UpdatedAt,
		})
	}
	return infos, nil
}

// Close closes the database connection
func (s *Slot) Close() error {
	return s.db.Close()
}
