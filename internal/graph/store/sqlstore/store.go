// Package sqlstore implements the graph store on a relational database. Each
// triple is one row of the triples table; basic graph patterns are evaluated
// as self-joins with every constant passed as a bind parameter.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"pushgraph/internal/graph"
	"pushgraph/pkg/rdf"
)

// Store is a SQL-backed graph store.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// New constructs a Store over db using dialect.
func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// EnsureSchema creates the triples table and its indexes when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range s.dialect.schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure %s schema: %w", s.dialect.Name, err)
		}
	}
	return nil
}

func (s *Store) Select(ctx context.Context, g rdf.IRI, q graph.Query) ([]graph.Binding, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	query, args, vars, err := selectSQL(s.dialect, g, q)
	if err != nil {
		return nil, fmt.Errorf("translate query: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select triples: %w", err)
	}
	defer rows.Close()

	var out []graph.Binding
	values := make([]string, len(vars)*2)
	dest := make([]any, len(values))
	for i := range values {
		dest[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan binding: %w", err)
		}
		b := make(graph.Binding, len(vars))
		for i, v := range vars {
			b[v] = rdf.Term{Value: values[2*i], Kind: rdf.TermKind(values[2*i+1])}
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bindings: %w", err)
	}
	return out, nil
}

func (s *Store) Ask(ctx context.Context, g rdf.IRI, q graph.Query) (graph.Answer, error) {
	if err := q.Validate(); err != nil {
		return graph.Answer{}, err
	}
	query, args, err := askSQL(s.dialect, g, q)
	if err != nil {
		return graph.Answer{}, fmt.Errorf("translate query: %w", err)
	}
	var exists bool
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return graph.Answer{}, fmt.Errorf("ask triples: %w", err)
	}
	return graph.BooleanAnswer(exists), nil
}

// Write inserts all statements in one transaction. Existing triples are kept
// as they are.
func (s *Store) Write(ctx context.Context, g rdf.IRI, statements rdf.Statements) (err error) {
	triples := statements.Triples()
	if len(triples) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin write: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if err = s.dialect.insert(ctx, tx, g, triples); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit write: %w", err)
	}
	return nil
}
