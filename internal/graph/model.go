package graph

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"pushgraph/pkg/rdf"
)

// Store is implemented by the triple store backends.
type Store interface {
	Select(ctx context.Context, graph rdf.IRI, q Query) ([]Binding, error)
	Ask(ctx context.Context, graph rdf.IRI, q Query) (Answer, error)
	// Write adds all statements atomically: either every triple is stored or
	// none is. Triples already present are ignored.
	Write(ctx context.Context, graph rdf.IRI, statements rdf.Statements) error
}

// Model binds a Store to the application's named graph.
type Model struct {
	store  Store
	graph  rdf.IRI
	tracer trace.Tracer
}

// NewModel returns a Model writing to and reading from graph.
func NewModel(store Store, graph rdf.IRI) (*Model, error) {
	if store == nil {
		return nil, fmt.Errorf("graph store is required")
	}
	if graph.IsZero() {
		return nil, fmt.Errorf("graph iri is required")
	}
	return &Model{
		store:  store,
		graph:  graph,
		tracer: otel.Tracer("pushgraph/internal/graph"),
	}, nil
}

// Graph returns the model's graph IRI.
func (m *Model) Graph() rdf.IRI {
	return m.graph
}

func (m *Model) Select(ctx context.Context, q Query) ([]Binding, error) {
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}
	ctx, span := m.tracer.Start(ctx, "graph.Select", trace.WithAttributes(
		attribute.Int("graph.patterns", len(q.Patterns)),
	))
	defer span.End()

	rows, err := m.store.Select(ctx, m.graph, q)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	span.SetAttributes(attribute.Int("graph.rows", len(rows)))
	return rows, nil
}

func (m *Model) Ask(ctx context.Context, q Query) (Answer, error) {
	if err := q.Validate(); err != nil {
		return Answer{}, fmt.Errorf("invalid query: %w", err)
	}
	ctx, span := m.tracer.Start(ctx, "graph.Ask")
	defer span.End()

	answer, err := m.store.Ask(ctx, m.graph, q)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "ask failed")
		return Answer{}, err
	}
	return answer, nil
}

func (m *Model) Write(ctx context.Context, statements rdf.Statements) error {
	if statements.Len() == 0 {
		return nil
	}
	ctx, span := m.tracer.Start(ctx, "graph.Write", trace.WithAttributes(
		attribute.Int("graph.triples", statements.Len()),
	))
	defer span.End()

	if err := m.store.Write(ctx, m.graph, statements); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "write failed")
		return err
	}
	return nil
}

// AddStatement writes a single triple.
func (m *Model) AddStatement(ctx context.Context, subject, predicate rdf.IRI, object rdf.Term) error {
	return m.Write(ctx, rdf.Statements{}.Add(subject, predicate, object))
}
