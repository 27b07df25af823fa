package sqlstore

import (
	"fmt"
	"strings"

	"pushgraph/internal/graph"
	"pushgraph/pkg/rdf"
)

// column is where a variable was first bound. Subject and predicate positions
// always hold IRIs, so only object positions carry a kind column.
type column struct {
	value string
	kind  string
}

type translation struct {
	from    string
	where   []string
	order   []string
	args    []any
	vars    map[string]column
	dialect Dialect
}

func (t *translation) param(v any) string {
	t.args = append(t.args, v)
	return t.dialect.Placeholder(len(t.args))
}

// translate turns the patterns into a FROM/WHERE over self-joined triples.
// All constants become bind parameters.
func translate(d Dialect, g rdf.IRI, patterns []graph.Pattern) (*translation, error) {
	t := &translation{vars: make(map[string]column), dialect: d}
	graphParam := t.param(string(g))

	aliases := make([]string, len(patterns))
	for i, p := range patterns {
		alias := fmt.Sprintf("t%d", i)
		aliases[i] = "triples " + alias
		t.order = append(t.order, alias+".id")
		t.where = append(t.where, alias+".graph = "+graphParam)

		if err := t.iriPosition(p.Subject, alias+".subject"); err != nil {
			return nil, fmt.Errorf("pattern %d subject: %w", i, err)
		}
		if err := t.iriPosition(p.Predicate, alias+".predicate"); err != nil {
			return nil, fmt.Errorf("pattern %d predicate: %w", i, err)
		}
		t.objectPosition(p.Object, column{value: alias + ".object", kind: alias + ".object_kind"})
	}
	t.from = strings.Join(aliases, " CROSS JOIN ")
	return t, nil
}

func (t *translation) iriPosition(n graph.Node, col string) error {
	if !n.IsVar() {
		if !n.Term.IsURI() {
			return fmt.Errorf("literal not allowed here")
		}
		t.where = append(t.where, col+" = "+t.param(n.Term.Value))
		return nil
	}
	prev, ok := t.vars[n.Var]
	if !ok {
		t.vars[n.Var] = column{value: col}
		return nil
	}
	t.where = append(t.where, col+" = "+prev.value)
	if prev.kind != "" {
		t.where = append(t.where, prev.kind+" = 'uri'")
	}
	return nil
}

func (t *translation) objectPosition(n graph.Node, col column) {
	if !n.IsVar() {
		t.where = append(t.where,
			col.value+" = "+t.param(n.Term.Value),
			col.kind+" = "+t.param(string(n.Term.Kind)),
		)
		return
	}
	prev, ok := t.vars[n.Var]
	if !ok {
		t.vars[n.Var] = col
		return
	}
	t.where = append(t.where, col.value+" = "+prev.value)
	if prev.kind != "" {
		t.where = append(t.where, col.kind+" = "+prev.kind)
	} else {
		t.where = append(t.where, col.kind+" = 'uri'")
	}
}

// selectSQL renders the projection. DISTINCT is expressed as GROUP BY so the
// result can still be ordered by first occurrence.
func selectSQL(d Dialect, g rdf.IRI, q graph.Query) (string, []any, []string, error) {
	t, err := translate(d, g, q.Patterns)
	if err != nil {
		return "", nil, nil, err
	}
	vars := q.Projection()
	if len(vars) == 0 {
		return "", nil, nil, fmt.Errorf("select without variables")
	}
	var cols, groupCols []string
	for _, v := range vars {
		c := t.vars[v]
		groupCols = append(groupCols, c.value)
		kind := c.kind
		if kind == "" {
			kind = "'uri'"
		} else {
			groupCols = append(groupCols, kind)
		}
		cols = append(cols, c.value, kind)
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(cols, ", "))
	b.WriteString(" FROM ")
	b.WriteString(t.from)
	b.WriteString(" WHERE ")
	b.WriteString(strings.Join(t.where, " AND "))
	if q.Distinct {
		b.WriteString(" GROUP BY ")
		b.WriteString(strings.Join(groupCols, ", "))
		b.WriteString(" ORDER BY MIN(")
		b.WriteString(t.order[0])
		b.WriteString(")")
	} else {
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(t.order, ", "))
	}
	if q.Limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", q.Limit)
	}
	return b.String(), t.args, vars, nil
}

func askSQL(d Dialect, g rdf.IRI, q graph.Query) (string, []any, error) {
	t, err := translate(d, g, q.Patterns)
	if err != nil {
		return "", nil, err
	}
	query := "SELECT EXISTS (SELECT 1 FROM " + t.from + " WHERE " + strings.Join(t.where, " AND ") + ")"
	return query, t.args, nil
}
