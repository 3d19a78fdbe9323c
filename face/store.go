package face

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const storeSchema = `
CREATE TABLE IF NOT EXISTS faces (
	id                TEXT NOT NULL PRIMARY KEY,
	family            TEXT NOT NULL,
	src               TEXT NOT NULL DEFAULT '',
	style             TEXT NOT NULL DEFAULT '',
	weight            TEXT NOT NULL DEFAULT '',
	stretch           TEXT NOT NULL DEFAULT '',
	ascent_override   TEXT NOT NULL DEFAULT '',
	descent_override  TEXT NOT NULL DEFAULT '',
	feature_settings  TEXT NOT NULL DEFAULT '',
	line_gap_override TEXT NOT NULL DEFAULT '',
	unicode_range     TEXT NOT NULL DEFAULT '',
	status            TEXT NOT NULL DEFAULT 'unloaded'
);`

// Store is a Set persisted in a SQLite database, so a registered face set
// survives between program runs. Registration order is preserved via rowid.
type Store struct {
	mu   sync.Mutex
	conn *sqlite.Conn
}

// OpenStore opens (creating if necessary) the face database at path.
// Pass ":memory:" for a throwaway store.
func OpenStore(path string) (*Store, error) {
	flags := sqlite.OpenReadWrite | sqlite.OpenCreate
	if path == ":memory:" {
		flags |= sqlite.OpenMemory
	}
	conn, err := sqlite.OpenConn(path, flags)
	if err != nil {
		return nil, fmt.Errorf("unable to open face store '%s': %w", path, err)
	}
	if err := sqlitex.ExecuteTransient(conn, storeSchema, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to prepare face store schema: %w", err)
	}
	return &Store{conn: conn}, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.Close()
}

// Snapshot returns all registered faces in registration order.
func (s *Store) Snapshot(ctx context.Context) ([]Face, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var faces []Face
	err := sqlitex.ExecuteTransient(s.conn, `SELECT id, family, src, style, weight, stretch,
		ascent_override, descent_override, feature_settings, line_gap_override, unicode_range, status
		FROM faces ORDER BY rowid`,
		&sqlitex.ExecOptions{ResultFunc: func(stmt *sqlite.Stmt) error {
			id, err := uuid.Parse(stmt.ColumnText(0))
			if err != nil {
				return fmt.Errorf("corrupt face id %q: %w", stmt.ColumnText(0), err)
			}
			st, err := ParseStatus(stmt.ColumnText(11))
			if err != nil {
				return err
			}
			faces = append(faces, Face{
				ID:              id,
				Family:          stmt.ColumnText(1),
				Source:          stmt.ColumnText(2),
				Style:           stmt.ColumnText(3),
				Weight:          stmt.ColumnText(4),
				Stretch:         stmt.ColumnText(5),
				AscentOverride:  stmt.ColumnText(6),
				DescentOverride: stmt.ColumnText(7),
				FeatureSettings: stmt.ColumnText(8),
				LineGapOverride: stmt.ColumnText(9),
				UnicodeRange:    stmt.ColumnText(10),
				Status:          st,
			})
			return nil
		}})
	if err != nil {
		return nil, fmt.Errorf("unable to read face store: %w", err)
	}
	return faces, nil
}

// Add registers a face, assigning it an ID if it has none.
func (s *Store) Add(ctx context.Context, f Face) (Face, error) {
	if err := ctx.Err(); err != nil {
		return Face{}, err
	}
	if f.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return Face{}, fmt.Errorf("unable to assign face id: %w", err)
		}
		f.ID = id
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	err := sqlitex.ExecuteTransient(s.conn, `INSERT INTO faces (id, family, src, style, weight, stretch,
		ascent_override, descent_override, feature_settings, line_gap_override, unicode_range, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		&sqlitex.ExecOptions{Args: []any{
			f.ID.String(), f.Family, f.Source, f.Style, f.Weight, f.Stretch,
			f.AscentOverride, f.DescentOverride, f.FeatureSettings, f.LineGapOverride, f.UnicodeRange,
			f.Status.String(),
		}})
	if err != nil {
		return Face{}, fmt.Errorf("unable to register face %q: %w", f.Family, err)
	}
	return f, nil
}

// SetStatus updates the load status of a registered face.
func (s *Store) SetStatus(ctx context.Context, id uuid.UUID, st Status) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	err := sqlitex.ExecuteTransient(s.conn, `UPDATE faces SET status = ? WHERE id = ?`,
		&sqlitex.ExecOptions{Args: []any{st.String(), id.String()}})
	if err != nil {
		return fmt.Errorf("unable to update face %s: %w", id, err)
	}
	if s.conn.Changes() == 0 {
		return fmt.Errorf("face %s not registered", id)
	}
	return nil
}
