package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/alnah/go-narrate/internal/content"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// ErrStoreOpen indicates the database could not be opened or initialized.
var ErrStoreOpen = errors.New("failed to open document store")

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id               TEXT PRIMARY KEY,
	title            TEXT NOT NULL DEFAULT '',
	content          TEXT NOT NULL DEFAULT '',
	excerpt          TEXT NOT NULL DEFAULT '',
	status           TEXT NOT NULL DEFAULT 'draft',
	summary_voice_id INTEGER
);`

// SQLiteStore is a Resolver backed by a single SQLite connection.
// Access to the connection is serialized.
type SQLiteStore struct {
	mu   sync.Mutex
	conn *sqlite.Conn
}

// OpenSQLite opens (creating if needed) the database at path and ensures the
// documents table exists. Use MemoryPath for a throwaway database.
func OpenSQLite(path string) (*SQLiteStore, error) {
	flags := sqlite.OpenReadWrite | sqlite.OpenCreate
	if path == MemoryPath {
		flags |= sqlite.OpenMemory
	} else {
		flags |= sqlite.OpenWAL
	}

	conn, err := sqlite.OpenConn(path, flags)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrStoreOpen, path, err)
	}

	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: creating schema: %v", ErrStoreOpen, err)
	}

	return &SQLiteStore{conn: conn}, nil
}

// Put inserts or replaces doc.
func (s *SQLiteStore) Put(ctx context.Context, doc content.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.interruptOn(ctx)()

	var voice any
	if doc.SummaryVoiceID != nil {
		voice = *doc.SummaryVoiceID
	}

	err := sqlitex.Execute(s.conn,
		`INSERT OR REPLACE INTO documents (id, title, content, excerpt, status, summary_voice_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		&sqlitex.ExecOptions{
			Args: []any{doc.ID, doc.Title, doc.Content, doc.Excerpt, string(doc.Status), voice},
		})
	if err != nil {
		return fmt.Errorf("storing document %s: %w", doc.ID, err)
	}
	return nil
}

// Document implements Resolver.
func (s *SQLiteStore) Document(ctx context.Context, id string) (content.Document, error) {
	if err := ctx.Err(); err != nil {
		return content.Document{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.interruptOn(ctx)()

	var (
		doc   content.Document
		found bool
	)
	err := sqlitex.Execute(s.conn,
		`SELECT id, title, content, excerpt, status, summary_voice_id FROM documents WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{id},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				found = true
				doc = content.Document{
					ID:      stmt.ColumnText(0),
					Title:   stmt.ColumnText(1),
					Content: stmt.ColumnText(2),
					Excerpt: stmt.ColumnText(3),
					Status:  content.ParseStatus(stmt.ColumnText(4)),
				}
				if stmt.ColumnType(5) != sqlite.TypeNull {
					doc.SummaryVoiceID = content.IntPtr(stmt.ColumnInt(5))
				}
				return nil
			},
		})
	if err != nil {
		return content.Document{}, fmt.Errorf("loading document %s: %w", id, err)
	}
	if !found {
		return content.Document{}, ErrNotFound
	}
	return doc, nil
}

// IDs returns every stored identifier in sorted order.
func (s *SQLiteStore) IDs(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.interruptOn(ctx)()

	var ids []string
	err := sqlitex.Execute(s.conn, `SELECT id FROM documents ORDER BY id`,
		&sqlitex.ExecOptions{ResultFunc: func(stmt *sqlite.Stmt) error {
			ids = append(ids, stmt.ColumnText(0))
			return nil
		}})
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	return ids, nil
}

// Close closes the underlying connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.Close()
}

// interruptOn makes ctx cancellation interrupt the running statement and
// returns a func that detaches it. Callers must hold s.mu.
func (s *SQLiteStore) interruptOn(ctx context.Context) func() {
	prev := s.conn.SetInterrupt(ctx.Done())
	return func() { s.conn.SetInterrupt(prev) }
}
