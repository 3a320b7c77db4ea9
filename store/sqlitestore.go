package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"shopdash/models"
)

// SQLite is the embedded TreeStore used when no remote store is configured
// (development, tests). Subtrees are stored as JSON documents in a single
// nodes table.
//
// Invariant: no stored row's path is an ancestor of another row's path. A
// write below an existing document merges into it; a write above existing
// rows replaces them.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the store database at path.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store database: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin schema transaction: %w", err)
	}
	_, err = tx.Exec(`
		CREATE TABLE IF NOT EXISTS nodes (
			path TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("create nodes table: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit schema transaction: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error { return s.db.Close() }

func cleanPath(p string) string { return strings.Trim(p, "/") }

func pathSegments(p string) []string { return strings.Split(cleanPath(p), "/") }

// ancestors lists the proper ancestor paths of p, nearest first.
func ancestors(p string) []string {
	segs := pathSegments(p)
	out := make([]string, 0, len(segs)-1)
	for i := len(segs) - 1; i > 0; i-- {
		out = append(out, strings.Join(segs[:i], "/"))
	}
	return out
}

// descend walks a decoded JSON tree along segs.
func descend(node any, segs []string) (any, bool) {
	for _, seg := range segs {
		m, ok := node.(map[string]any)
		if !ok {
			return nil, false
		}
		node, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return node, true
}

// setIn writes v at segs inside tree, creating intermediate maps.
func setIn(tree map[string]any, segs []string, v any) {
	for _, seg := range segs[:len(segs)-1] {
		child, ok := tree[seg].(map[string]any)
		if !ok {
			child = make(map[string]any)
			tree[seg] = child
		}
		tree = child
	}
	tree[segs[len(segs)-1]] = v
}

// toTree round-trips v through JSON so stored documents are plain maps.
func toTree(v any) (any, error) {
	buf, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(buf, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLite) Get(ctx context.Context, path string, out any) error {
	val, err := s.lookup(ctx, cleanPath(path))
	if err != nil {
		return err
	}
	buf, err := json.Marshal(val)
	if err != nil {
		return err
	}
	return json.Unmarshal(buf, out)
}

func (s *SQLite) lookup(ctx context.Context, path string) (any, error) {
	// Exact document.
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM nodes WHERE path = ?`, path).Scan(&raw)
	switch {
	case err == nil:
		var val any
		if err := json.Unmarshal([]byte(raw), &val); err != nil {
			return nil, err
		}
		return val, nil
	case !errors.Is(err, sql.ErrNoRows):
		return nil, err
	}

	// Inside an ancestor document.
	segs := pathSegments(path)
	for _, anc := range ancestors(path) {
		err := s.db.QueryRowContext(ctx, `SELECT value FROM nodes WHERE path = ?`, anc).Scan(&raw)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, err
		}
		var tree any
		if err := json.Unmarshal([]byte(raw), &tree); err != nil {
			return nil, err
		}
		rest := segs[len(pathSegments(anc)):]
		val, ok := descend(tree, rest)
		if !ok {
			return nil, models.ErrNotFound
		}
		return val, nil
	}

	// Assembled from descendant documents.
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, value FROM nodes WHERE path LIKE ? || '/%'`, path)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tree := make(map[string]any)
	found := false
	for rows.Next() {
		var p, v string
		if err := rows.Scan(&p, &v); err != nil {
			return nil, err
		}
		var val any
		if err := json.Unmarshal([]byte(v), &val); err != nil {
			return nil, err
		}
		setIn(tree, pathSegments(p)[len(pathSegments(path)):], val)
		found = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if !found {
		return nil, models.ErrNotFound
	}
	return tree, nil
}

func (s *SQLite) setTx(tx *sql.Tx, path string, v any) error {
	val, err := toTree(v)
	if err != nil {
		return err
	}

	// A write below an existing document merges into it.
	segs := pathSegments(path)
	for _, anc := range ancestors(path) {
		var raw string
		err := tx.QueryRow(`SELECT value FROM nodes WHERE path = ?`, anc).Scan(&raw)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return err
		}
		tree := make(map[string]any)
		if err := json.Unmarshal([]byte(raw), &tree); err != nil {
			return err
		}
		setIn(tree, segs[len(pathSegments(anc)):], val)
		buf, err := json.Marshal(tree)
		if err != nil {
			return err
		}
		_, err = tx.Exec(`UPDATE nodes SET value = ? WHERE path = ?`, string(buf), anc)
		return err
	}

	// Otherwise the write replaces the path and anything below it.
	if _, err := tx.Exec(`DELETE FROM nodes WHERE path = ? OR path LIKE ? || '/%'`, path, path); err != nil {
		return err
	}
	buf, err := json.Marshal(val)
	if err != nil {
		return err
	}
	_, err = tx.Exec(`INSERT INTO nodes (path, value) VALUES (?, ?)`, path, string(buf))
	return err
}

func (s *SQLite) deleteTx(tx *sql.Tx, path string) error {
	res, err := tx.Exec(`DELETE FROM nodes WHERE path = ? OR path LIKE ? || '/%'`, path, path)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	// The path may live inside an ancestor document.
	segs := pathSegments(path)
	for _, anc := range ancestors(path) {
		var raw string
		err := tx.QueryRow(`SELECT value FROM nodes WHERE path = ?`, anc).Scan(&raw)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return err
		}
		tree := make(map[string]any)
		if err := json.Unmarshal([]byte(raw), &tree); err != nil {
			return err
		}
		rest := segs[len(pathSegments(anc)):]
		parent, ok := descend(tree, rest[:len(rest)-1])
		if !ok {
			return nil
		}
		if m, ok := parent.(map[string]any); ok {
			delete(m, rest[len(rest)-1])
		}
		buf, err := json.Marshal(tree)
		if err != nil {
			return err
		}
		_, err = tx.Exec(`UPDATE nodes SET value = ? WHERE path = ?`, string(buf), anc)
		return err
	}
	return nil
}

func (s *SQLite) inTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *SQLite) Set(ctx context.Context, path string, v any) error {
	return s.inTx(func(tx *sql.Tx) error {
		return s.setTx(tx, cleanPath(path), v)
	})
}

func (s *SQLite) Push(ctx context.Context, path string, v any) (string, error) {
	key := uuid.New().String()
	if err := s.Set(ctx, cleanPath(path)+"/"+key, v); err != nil {
		return "", err
	}
	return key, nil
}

// Update applies every entry in one transaction, mirroring the remote
// store's atomic multi-path write.
func (s *SQLite) Update(ctx context.Context, updates map[string]any) error {
	return s.inTx(func(tx *sql.Tx) error {
		for p, v := range updates {
			if v == nil {
				if err := s.deleteTx(tx, cleanPath(p)); err != nil {
					return err
				}
				continue
			}
			if err := s.setTx(tx, cleanPath(p), v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLite) Delete(ctx context.Context, path string) error {
	return s.inTx(func(tx *sql.Tx) error {
		return s.deleteTx(tx, cleanPath(path))
	})
}
