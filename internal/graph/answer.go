package graph

import (
	"errors"
	"fmt"
)

// ErrAmbiguousAnswer is returned when an existence query answer is neither a
// clean boolean nor a result set. Callers must not read it as "false".
var ErrAmbiguousAnswer = errors.New("ambiguous existence answer")

// Answer is the raw reply to an existence query. Backends answer with a
// boolean, or (for engines that evaluate ASK as SELECT) with a result set.
type Answer struct {
	Boolean *bool
	Rows    []Binding
	HasRows bool
}

// BooleanAnswer is a clean boolean reply.
func BooleanAnswer(v bool) Answer {
	return Answer{Boolean: &v}
}

// RowsAnswer is a result-set reply; an empty set means false.
func RowsAnswer(rows []Binding) Answer {
	return Answer{Rows: rows, HasRows: true}
}

// Truth interprets the answer strictly.
func (a Answer) Truth() (bool, error) {
	switch {
	case a.Boolean != nil && a.HasRows:
		return false, fmt.Errorf("%w: both boolean and result set present", ErrAmbiguousAnswer)
	case a.Boolean != nil:
		return *a.Boolean, nil
	case a.HasRows:
		return len(a.Rows) > 0, nil
	default:
		return false, fmt.Errorf("%w: empty reply", ErrAmbiguousAnswer)
	}
}
