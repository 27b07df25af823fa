package memory

import (
	"context"
	"sync"

	"pushgraph/internal/graph"
	"pushgraph/pkg/rdf"
)

type key struct {
	subject   rdf.IRI
	predicate rdf.IRI
	object    rdf.Term
}

type namedGraph struct {
	triples []rdf.Triple
	index   map[key]struct{}
}

// InMemoryStore keeps triples per named graph in insertion order. Suitable for
// tests and single-process development.
type InMemoryStore struct {
	mu     sync.RWMutex
	graphs map[rdf.IRI]*namedGraph
}

// New constructs an empty in-memory triple store.
func New() *InMemoryStore {
	return &InMemoryStore{graphs: make(map[rdf.IRI]*namedGraph)}
}

func (s *InMemoryStore) Select(_ context.Context, g rdf.IRI, q graph.Query) ([]graph.Binding, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return project(evaluate(s.graphs[g], q.Patterns), q), nil
}

func (s *InMemoryStore) Ask(_ context.Context, g rdf.IRI, q graph.Query) (graph.Answer, error) {
	if err := q.Validate(); err != nil {
		return graph.Answer{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return graph.BooleanAnswer(len(evaluate(s.graphs[g], q.Patterns)) > 0), nil
}

func (s *InMemoryStore) Write(_ context.Context, g rdf.IRI, statements rdf.Statements) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ng, ok := s.graphs[g]
	if !ok {
		ng = &namedGraph{index: make(map[key]struct{})}
		s.graphs[g] = ng
	}
	for _, t := range statements.Triples() {
		k := key{subject: t.Subject, predicate: t.Predicate, object: t.Object}
		if _, dup := ng.index[k]; dup {
			continue
		}
		ng.index[k] = struct{}{}
		ng.triples = append(ng.triples, t)
	}
	return nil
}

// Len returns the number of triples in g.
func (s *InMemoryStore) Len(g rdf.IRI) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if ng, ok := s.graphs[g]; ok {
		return len(ng.triples)
	}
	return 0
}

// evaluate joins patterns left to right. Row order follows the insertion
// order of the matched triples, pattern by pattern.
func evaluate(ng *namedGraph, patterns []graph.Pattern) []graph.Binding {
	if ng == nil {
		return nil
	}
	rows := []graph.Binding{{}}
	for _, p := range patterns {
		var next []graph.Binding
		for _, row := range rows {
			for _, t := range ng.triples {
				if extended, ok := match(row, p, t); ok {
					next = append(next, extended)
				}
			}
		}
		rows = next
		if len(rows) == 0 {
			return nil
		}
	}
	return rows
}

func match(row graph.Binding, p graph.Pattern, t rdf.Triple) (graph.Binding, bool) {
	var added map[string]rdf.Term
	bind := func(n graph.Node, value rdf.Term) bool {
		if !n.IsVar() {
			return n.Term == value
		}
		if existing, ok := row[n.Var]; ok {
			return existing == value
		}
		if existing, ok := added[n.Var]; ok {
			return existing == value
		}
		if added == nil {
			added = make(map[string]rdf.Term, 3)
		}
		added[n.Var] = value
		return true
	}
	if !bind(p.Subject, rdf.URI(t.Subject)) ||
		!bind(p.Predicate, rdf.URI(t.Predicate)) ||
		!bind(p.Object, t.Object) {
		return nil, false
	}
	out := make(graph.Binding, len(row)+len(added))
	for k, v := range row {
		out[k] = v
	}
	for k, v := range added {
		out[k] = v
	}
	return out, true
}

func project(rows []graph.Binding, q graph.Query) []graph.Binding {
	vars := q.Projection()
	out := make([]graph.Binding, 0, len(rows))
	seen := make(map[string]struct{})
	for _, row := range rows {
		projected := make(graph.Binding, len(vars))
		for _, v := range vars {
			if t, ok := row[v]; ok {
				projected[v] = t
			}
		}
		if q.Distinct {
			k := rowKey(projected, vars)
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
		}
		out = append(out, projected)
		if q.Limit > 0 && len(out) >= q.Limit {
			break
		}
	}
	return out
}

func rowKey(b graph.Binding, vars []string) string {
	k := ""
	for _, v := range vars {
		t := b[v]
		k += string(t.Kind) + "\x00" + t.Value + "\x01"
	}
	return k
}
