package zombiezen

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/revelaction/binrel/extract"
	"github.com/revelaction/binrel/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// RelationStore persists relations. Every store stamps its rows with its
// own run id.
type RelationStore struct {
	pool *sqlitex.Pool
	run  string
}

var _ storage.RelationWriter = (*RelationStore)(nil)
var _ storage.RelationReader = (*RelationStore)(nil)

func NewRelationStore(pool *sqlitex.Pool) *RelationStore {
	return &RelationStore{pool: pool, run: uuid.NewString()}
}

// Run returns the run id of the rows written by this store.
func (h *RelationStore) Run() string {
	return h.run
}

func (h *RelationStore) WriteRelations(ctx context.Context, docId int, results []extract.Result) (err error) {
	conn, err := h.pool.Take(ctx)
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	// Start Transaction
	defer sqlitex.Save(conn)(&err)

	err = sqlitex.Execute(conn, "INSERT OR IGNORE INTO runs (id, created_at) VALUES (?, ?)", &sqlitex.ExecOptions{
		Args: []interface{}{h.run, time.Now().UTC().Format(time.RFC3339)},
	})
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	const q = `INSERT INTO relations
		(run_id, doc_id, sentence_id, sentence, predicate, subject, object, subject_type, object_type, negated, passive, line, record)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	for _, res := range results {
		for _, r := range storage.Stored(h.run, docId, res) {
			err = sqlitex.Execute(conn, q, &sqlitex.ExecOptions{
				Args: []interface{}{
					r.Run, r.DocId, r.SentenceId, r.Sentence, r.Predicate,
					r.Subject, r.Object, r.SubjectType, r.ObjectType,
					boolInt(r.Negated), boolInt(r.Passive), r.Line, r.Record,
				},
			})
			if err != nil {
				return fmt.Errorf("failed to insert relation: %w", err)
			}
		}
	}

	return nil
}

func (h *RelationStore) FindByPredicate(ctx context.Context, pattern string, limit int) ([]storage.StoredRelation, error) {
	conn, err := h.pool.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	const q = `SELECT run_id, doc_id, sentence_id, sentence, predicate, subject, object,
		subject_type, object_type, negated, passive, line, record
		FROM relations WHERE predicate LIKE ? ORDER BY id LIMIT ?`

	var out []storage.StoredRelation
	err = sqlitex.Execute(conn, q, &sqlitex.ExecOptions{
		Args: []interface{}{pattern, limit},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			out = append(out, storage.StoredRelation{
				Run:         stmt.ColumnText(0),
				DocId:       stmt.ColumnInt(1),
				SentenceId:  stmt.ColumnInt(2),
				Sentence:    stmt.ColumnText(3),
				Predicate:   stmt.ColumnText(4),
				Subject:     stmt.ColumnText(5),
				Object:      stmt.ColumnText(6),
				SubjectType: stmt.ColumnText(7),
				ObjectType:  stmt.ColumnText(8),
				Negated:     stmt.ColumnInt(9) != 0,
				Passive:     stmt.ColumnInt(10) != 0,
				Line:        stmt.ColumnText(11),
				Record:      stmt.ColumnText(12),
			})
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (h *RelationStore) Predicates(ctx context.Context, prefix string) ([]string, error) {
	conn, err := h.pool.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var preds []string
	err = sqlitex.Execute(conn, "SELECT DISTINCT predicate FROM relations WHERE predicate LIKE ? ORDER BY predicate", &sqlitex.ExecOptions{
		Args: []interface{}{prefix + "%"},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			preds = append(preds, stmt.ColumnText(0))
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return preds, nil
}
