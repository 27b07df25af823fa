// Package rdf holds the identifier types shared by the graph store and the
// services: IRIs, terms, nested statement sets and the fixed vocabularies.
package rdf

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// IRI is an absolute resource identifier.
type IRI string

func (i IRI) String() string {
	return string(i)
}

// IsZero reports whether the IRI is empty.
func (i IRI) IsZero() bool {
	return i == ""
}

// ParseIRI validates an absolute IRI supplied by a caller. Values travel into
// store queries as parameters, but rejecting non-absolute or whitespace
// bearing input keeps garbage out of the graph.
func ParseIRI(raw string) (IRI, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("iri is empty")
	}
	if strings.ContainsAny(raw, " \t\r\n<>\"{}|\\^`\x00") {
		return "", fmt.Errorf("iri %q contains forbidden characters", raw)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse iri: %w", err)
	}
	if u.Scheme == "" {
		return "", fmt.Errorf("iri %q is not absolute", raw)
	}
	return IRI(raw), nil
}

// TermKind tells IRIs and literals apart in object position.
type TermKind string

const (
	KindURI     TermKind = "uri"
	KindLiteral TermKind = "literal"
)

// Term is a concrete node: an IRI or a plain literal.
type Term struct {
	Kind  TermKind `json:"type"`
	Value string   `json:"value"`
}

// URI builds an IRI term.
func URI(iri IRI) Term {
	return Term{Kind: KindURI, Value: string(iri)}
}

// Literal builds a literal term.
func Literal(value string) Term {
	return Term{Kind: KindLiteral, Value: value}
}

func (t Term) IsURI() bool {
	return t.Kind == KindURI
}

// IRI returns the term as an IRI. Literals yield the zero IRI.
func (t Term) IRI() IRI {
	if t.Kind != KindURI {
		return ""
	}
	return IRI(t.Value)
}

// Triple is one subject/predicate/object statement.
type Triple struct {
	Subject   IRI
	Predicate IRI
	Object    Term
}

// Statements is the nested subject -> predicate -> objects form used for bulk
// writes.
type Statements map[IRI]map[IRI][]Term

// Add appends one statement.
func (s Statements) Add(subject, predicate IRI, object Term) Statements {
	preds, ok := s[subject]
	if !ok {
		preds = make(map[IRI][]Term)
		s[subject] = preds
	}
	preds[predicate] = append(preds[predicate], object)
	return s
}

// Merge copies all statements of other into s.
func (s Statements) Merge(other Statements) Statements {
	for subj, preds := range other {
		for pred, objs := range preds {
			for _, obj := range objs {
				s.Add(subj, pred, obj)
			}
		}
	}
	return s
}

// Triples flattens the statements in a deterministic order (subject,
// predicate, then insertion order of objects).
func (s Statements) Triples() []Triple {
	subjects := make([]IRI, 0, len(s))
	for subj := range s {
		subjects = append(subjects, subj)
	}
	sort.Slice(subjects, func(i, j int) bool { return subjects[i] < subjects[j] })

	var out []Triple
	for _, subj := range subjects {
		preds := s[subj]
		predicates := make([]IRI, 0, len(preds))
		for pred := range preds {
			predicates = append(predicates, pred)
		}
		sort.Slice(predicates, func(i, j int) bool { return predicates[i] < predicates[j] })
		for _, pred := range predicates {
			for _, obj := range preds[pred] {
				out = append(out, Triple{Subject: subj, Predicate: pred, Object: obj})
			}
		}
	}
	return out
}

// Len is the number of triples.
func (s Statements) Len() int {
	n := 0
	for _, preds := range s {
		for _, objs := range preds {
			n += len(objs)
		}
	}
	return n
}
