// Package graph is the adapter between services and the triple store.
//
// Queries are basic graph patterns built from typed nodes, never from string
// concatenation: caller supplied IRIs and literals always travel as bound
// parameters to the backend. Backends evaluate a Query against one named
// graph and return rows in insertion order of the matched triples.
package graph

import (
	"fmt"

	"pushgraph/pkg/rdf"
)

// Node is a pattern position: either a variable or a concrete term.
type Node struct {
	Var  string
	Term rdf.Term
}

// V is a variable node.
func V(name string) Node {
	return Node{Var: name}
}

// U is an IRI node.
func U(iri rdf.IRI) Node {
	return Node{Term: rdf.URI(iri)}
}

// L is a literal node.
func L(value string) Node {
	return Node{Term: rdf.Literal(value)}
}

func (n Node) IsVar() bool {
	return n.Var != ""
}

func (n Node) String() string {
	if n.IsVar() {
		return "?" + n.Var
	}
	if n.Term.IsURI() {
		return "<" + n.Term.Value + ">"
	}
	return fmt.Sprintf("%q", n.Term.Value)
}

// Pattern is one triple pattern.
type Pattern struct {
	Subject   Node
	Predicate Node
	Object    Node
}

func (p Pattern) String() string {
	return p.Subject.String() + " " + p.Predicate.String() + " " + p.Object.String() + " ."
}

// Query is a conjunctive basic graph pattern with a projection.
type Query struct {
	Vars     []string
	Patterns []Pattern
	Distinct bool
	Limit    int
}

// Select starts a query projecting vars. No vars projects every variable in
// order of first appearance.
func Select(vars ...string) Query {
	return Query{Vars: vars}
}

// Ask starts an existence query.
func Ask() Query {
	return Query{}
}

// Where appends a triple pattern.
func (q Query) Where(subject, predicate, object Node) Query {
	patterns := make([]Pattern, len(q.Patterns), len(q.Patterns)+1)
	copy(patterns, q.Patterns)
	q.Patterns = append(patterns, Pattern{Subject: subject, Predicate: predicate, Object: object})
	return q
}

// WithDistinct removes duplicate projected rows, keeping first occurrences.
func (q Query) WithDistinct() Query {
	q.Distinct = true
	return q
}

// WithLimit caps the number of rows. Zero means unlimited.
func (q Query) WithLimit(n int) Query {
	q.Limit = n
	return q
}

// Projection returns the projected variables.
func (q Query) Projection() []string {
	if len(q.Vars) > 0 {
		return q.Vars
	}
	var vars []string
	seen := make(map[string]struct{})
	for _, p := range q.Patterns {
		for _, n := range []Node{p.Subject, p.Predicate, p.Object} {
			if !n.IsVar() {
				continue
			}
			if _, ok := seen[n.Var]; ok {
				continue
			}
			seen[n.Var] = struct{}{}
			vars = append(vars, n.Var)
		}
	}
	return vars
}

// Validate checks the structural rules every backend relies on.
func (q Query) Validate() error {
	if len(q.Patterns) == 0 {
		return fmt.Errorf("query has no patterns")
	}
	if q.Limit < 0 {
		return fmt.Errorf("query limit must not be negative")
	}
	bound := make(map[string]struct{})
	for i, p := range q.Patterns {
		if !p.Subject.IsVar() && !p.Subject.Term.IsURI() {
			return fmt.Errorf("pattern %d: subject must be a variable or IRI", i)
		}
		if !p.Predicate.IsVar() && !p.Predicate.Term.IsURI() {
			return fmt.Errorf("pattern %d: predicate must be a variable or IRI", i)
		}
		for _, n := range []Node{p.Subject, p.Predicate, p.Object} {
			if n.IsVar() {
				bound[n.Var] = struct{}{}
				continue
			}
			if n.Term.Value == "" && n.Term.IsURI() {
				return fmt.Errorf("pattern %d: empty IRI", i)
			}
		}
	}
	for _, v := range q.Vars {
		if _, ok := bound[v]; !ok {
			return fmt.Errorf("projected variable ?%s does not appear in any pattern", v)
		}
	}
	return nil
}

func (q Query) String() string {
	s := "SELECT"
	if q.Distinct {
		s += " DISTINCT"
	}
	for _, v := range q.Projection() {
		s += " ?" + v
	}
	s += " WHERE {"
	for _, p := range q.Patterns {
		s += " " + p.String()
	}
	s += " }"
	if q.Limit > 0 {
		s += fmt.Sprintf(" LIMIT %d", q.Limit)
	}
	return s
}

// Binding is one result row.
type Binding map[string]rdf.Term

// Value returns the bound value of name.
func (b Binding) Value(name string) (string, bool) {
	t, ok := b[name]
	if !ok {
		return "", false
	}
	return t.Value, true
}

// IRI returns name as an IRI when it is bound to one.
func (b Binding) IRI(name string) (rdf.IRI, bool) {
	t, ok := b[name]
	if !ok || !t.IsURI() {
		return "", false
	}
	return t.IRI(), true
}
