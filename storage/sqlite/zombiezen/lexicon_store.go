package zombiezen

import (
	"context"
	"fmt"

	"github.com/revelaction/binrel/storage"
	"github.com/revelaction/binrel/typing"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// LexiconStore keeps the hypernym paths and the light verb collocations.
type LexiconStore struct {
	pool *sqlitex.Pool
}

var _ storage.LexiconReader = (*LexiconStore)(nil)
var _ storage.LexiconWriter = (*LexiconStore)(nil)
var _ storage.VerbMapReader = (*LexiconStore)(nil)
var _ storage.VerbMapWriter = (*LexiconStore)(nil)
var _ typing.Hierarchy = (*LexiconStore)(nil)

func NewLexiconStore(pool *sqlitex.Pool) *LexiconStore {
	return &LexiconStore{pool: pool}
}

func (h *LexiconStore) HypernymPaths(lemma string) (string, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return "", err
	}
	defer h.pool.Put(conn)

	var paths string
	found := false
	err = sqlitex.Execute(conn, "SELECT paths FROM hypernyms WHERE lemma = ?", &sqlitex.ExecOptions{
		Args: []interface{}{lemma},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			paths = stmt.ColumnText(0)
			return nil
		},
	})
	if err != nil {
		return "", err
	}
	if !found {
		return "", typing.ErrNotFound
	}
	return paths, nil
}

// WriteHypernyms inserts or replaces the paths of each lemma.
func (h *LexiconStore) WriteHypernyms(entries map[string]string) (err error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	defer sqlitex.Save(conn)(&err)

	for lemma, paths := range entries {
		err = sqlitex.Execute(conn, "INSERT OR REPLACE INTO hypernyms (lemma, paths) VALUES (?, ?)", &sqlitex.ExecOptions{
			Args: []interface{}{lemma, paths},
		})
		if err != nil {
			return fmt.Errorf("failed to insert hypernyms of %s: %w", lemma, err)
		}
	}
	return nil
}

func (h *LexiconStore) VerbMap() (map[string][]string, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	m := map[string][]string{}
	err = sqlitex.Execute(conn, "SELECT verb, collocation FROM verb_map ORDER BY verb, rowid", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			verb := stmt.ColumnText(0)
			m[verb] = append(m[verb], stmt.ColumnText(1))
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (h *LexiconStore) WriteVerbMap(m map[string][]string) (err error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	defer sqlitex.Save(conn)(&err)

	for verb, collocations := range m {
		for _, col := range collocations {
			err = sqlitex.Execute(conn, "INSERT OR IGNORE INTO verb_map (verb, collocation) VALUES (?, ?)", &sqlitex.ExecOptions{
				Args: []interface{}{verb, col},
			})
			if err != nil {
				return fmt.Errorf("failed to insert collocation %s %s: %w", verb, col, err)
			}
		}
	}
	return nil
}
