package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"pushgraph/pkg/rdf"
)

// Dialect captures the SQL differences between the supported databases.
type Dialect struct {
	Name        string
	placeholder func(n int) string
	schema      []string
	insert      func(ctx context.Context, tx *sql.Tx, g rdf.IRI, triples []rdf.Triple) error
}

func (d Dialect) Placeholder(n int) string {
	return d.placeholder(n)
}

// Postgres stores triples in PostgreSQL. Bulk inserts go through unnest so a
// write costs one round trip regardless of size.
var Postgres = Dialect{
	Name:        "postgres",
	placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
	schema: []string{
		`CREATE TABLE IF NOT EXISTS triples (
			id          BIGSERIAL PRIMARY KEY,
			graph       TEXT NOT NULL,
			subject     TEXT NOT NULL,
			predicate   TEXT NOT NULL,
			object      TEXT NOT NULL,
			object_kind TEXT NOT NULL CHECK (object_kind IN ('uri', 'literal'))
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS triples_gspo ON triples (graph, subject, predicate, object, object_kind)`,
		`CREATE INDEX IF NOT EXISTS triples_gpo ON triples (graph, predicate, object)`,
	},
	insert: insertPostgres,
}

// SQLite stores triples in an embedded SQLite database (modernc.org/sqlite).
var SQLite = Dialect{
	Name:        "sqlite",
	placeholder: func(n int) string { return fmt.Sprintf("?%d", n) },
	schema: []string{
		`CREATE TABLE IF NOT EXISTS triples (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			graph       TEXT NOT NULL,
			subject     TEXT NOT NULL,
			predicate   TEXT NOT NULL,
			object      TEXT NOT NULL,
			object_kind TEXT NOT NULL CHECK (object_kind IN ('uri', 'literal'))
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS triples_gspo ON triples (graph, subject, predicate, object, object_kind)`,
		`CREATE INDEX IF NOT EXISTS triples_gpo ON triples (graph, predicate, object)`,
	},
	insert: insertSQLite,
}

func insertPostgres(ctx context.Context, tx *sql.Tx, g rdf.IRI, triples []rdf.Triple) error {
	subjects := make([]string, len(triples))
	predicates := make([]string, len(triples))
	objects := make([]string, len(triples))
	kinds := make([]string, len(triples))
	for i, t := range triples {
		subjects[i] = string(t.Subject)
		predicates[i] = string(t.Predicate)
		objects[i] = t.Object.Value
		kinds[i] = string(t.Object.Kind)
	}
	query := `
		INSERT INTO triples (graph, subject, predicate, object, object_kind)
		SELECT $1, s, p, o, k
		FROM unnest($2::text[], $3::text[], $4::text[], $5::text[]) WITH ORDINALITY AS t(s, p, o, k, ord)
		ORDER BY ord
		ON CONFLICT (graph, subject, predicate, object, object_kind) DO NOTHING
	`
	_, err := tx.ExecContext(ctx, query, string(g),
		pq.Array(subjects), pq.Array(predicates), pq.Array(objects), pq.Array(kinds))
	if err != nil {
		return fmt.Errorf("insert triples batch: %w", err)
	}
	return nil
}

func insertSQLite(ctx context.Context, tx *sql.Tx, g rdf.IRI, triples []rdf.Triple) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO triples (graph, subject, predicate, object, object_kind) VALUES (?1, ?2, ?3, ?4, ?5)`)
	if err != nil {
		return fmt.Errorf("prepare triple insert: %w", err)
	}
	defer stmt.Close()
	for _, t := range triples {
		if _, err := stmt.ExecContext(ctx, string(g), string(t.Subject), string(t.Predicate), t.Object.Value, string(t.Object.Kind)); err != nil {
			return fmt.Errorf("insert triple: %w", err)
		}
	}
	return nil
}
