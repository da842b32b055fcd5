// Package graph exports relations to a Neo4j compatible graph database
// (Neo4j, Memgraph) as (:Entity)-[:RELATION]->(:Entity) edges.
package graph

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/revelaction/binrel/extract"
	"github.com/revelaction/binrel/storage"
)

// Querier runs one Cypher query.
type Querier interface {
	ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error)
	Close(ctx context.Context) error
}

type Driver struct {
	Driver   neo4j.DriverWithContext
	Database string
}

var _ Querier = (*Driver)(nil)

func NewDriver(ctx context.Context, uri, username, password, database string) (*Driver, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, err
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, err
	}

	return &Driver{Driver: driver, Database: database}, nil
}

func (d *Driver) Close(ctx context.Context) error {
	return d.Driver.Close(ctx)
}

func (d *Driver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	var opts []neo4j.ExecuteQueryConfigurationOption
	if d.Database != "" {
		opts = append(opts, neo4j.ExecuteQueryWithDatabase(d.Database))
	}

	result, err := neo4j.ExecuteQuery(ctx, d.Driver, query, params, neo4j.EagerResultTransformer, opts...)
	if err != nil {
		return neo4j.EagerResult{}, fmt.Errorf("failed to execute query: %w", err)
	}
	return *result, nil
}

const indexQuery = "CREATE INDEX entity_name IF NOT EXISTS FOR (e:Entity) ON (e.name)"

const relationsQuery = `UNWIND $rows AS row
MERGE (s:Entity {name: row.subject})
  ON CREATE SET s.type = row.subject_type
MERGE (o:Entity {name: row.object})
  ON CREATE SET o.type = row.object_type
CREATE (s)-[:RELATION {
  predicate: row.predicate,
  negated: row.negated,
  passive: row.passive,
  sentence: row.sentence,
  doc: row.doc,
  sentence_id: row.sentence_id,
  run: row.run
}]->(o)`

// Writer writes the relations of a run.
type Writer struct {
	q      Querier
	run    string
	logger *slog.Logger
}

var _ storage.RelationWriter = (*Writer)(nil)

func NewWriter(q Querier, run string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{q: q, run: run, logger: logger}
}

// BuildIndices creates the entity name index. Failures are logged, the index
// may already exist under another name.
func (w *Writer) BuildIndices(ctx context.Context) {
	if _, err := w.q.ExecuteQuery(ctx, indexQuery, nil); err != nil {
		w.logger.Warn("graph: index creation failed", "error", err)
	}
}

func (w *Writer) WriteRelations(ctx context.Context, docId int, results []extract.Result) error {
	var rows []map[string]interface{}
	for _, res := range results {
		for _, r := range storage.Stored(w.run, docId, res) {
			rows = append(rows, map[string]interface{}{
				"subject":      r.Subject,
				"subject_type": r.SubjectType,
				"object":       r.Object,
				"object_type":  r.ObjectType,
				"predicate":    r.Predicate,
				"negated":      r.Negated,
				"passive":      r.Passive,
				"sentence":     r.Sentence,
				"doc":          r.DocId,
				"sentence_id":  r.SentenceId,
				"run":          r.Run,
			})
		}
	}

	if len(rows) == 0 {
		return nil
	}

	if _, err := w.q.ExecuteQuery(ctx, relationsQuery, map[string]interface{}{"rows": rows}); err != nil {
		return fmt.Errorf("graph: doc %d: %w", docId, err)
	}

	w.logger.Debug("graph: relations written", "doc", docId, "relations", len(rows))
	return nil
}
