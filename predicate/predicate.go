/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package predicate

import (
	"fmt"
	"strings"

	"github.com/suparena/querycache/errors"
)

// LookupSep separates the field name from the lookup term, e.g. "score__gte".
const LookupSep = "__"

// Constraint is a single field comparison. Constraints in a predicate combine
// conjunctively; a negated constraint keeps records that do NOT match.
type Constraint struct {
	Field   string
	Lookup  Lookup
	Value   any
	Negated bool
}

// Predicate is an ordered conjunction of field constraints. The zero value
// matches every record. Term parse errors are deferred and surfaced when the
// predicate is consumed, so construction stays chainable.
type Predicate struct {
	constraints []Constraint
	err         error
}

// Where starts a predicate from a single term. Terms are either a plain field
// name ("status") or a field name plus lookup ("score__gte").
func Where(term string, value any) Predicate {
	return Predicate{}.Where(term, value)
}

// Where appends a constraint, returning a new predicate. The receiver is not
// modified.
func (p Predicate) Where(term string, value any) Predicate {
	c, err := parseTerm(term, value)
	next := Predicate{
		constraints: append(append([]Constraint(nil), p.constraints...), c),
		err:         p.err,
	}
	if next.err == nil {
		next.err = err
	}
	return next
}

// Not returns a copy of the predicate with every constraint negated.
func (p Predicate) Not() Predicate {
	neg := make([]Constraint, len(p.constraints))
	for i, c := range p.constraints {
		c.Negated = !c.Negated
		neg[i] = c
	}
	return Predicate{constraints: neg, err: p.err}
}

// And returns the conjunction of two predicates.
func (p Predicate) And(q Predicate) Predicate {
	err := p.err
	if err == nil {
		err = q.err
	}
	return Predicate{
		constraints: append(append([]Constraint(nil), p.constraints...), q.constraints...),
		err:         err,
	}
}

// Constraints returns the constraints in application order.
func (p Predicate) Constraints() []Constraint {
	return p.constraints
}

// Empty reports whether the predicate restricts nothing.
func (p Predicate) Empty() bool {
	return len(p.constraints) == 0
}

// Err returns the first term parse error, if any.
func (p Predicate) Err() error {
	return p.err
}

// String renders the predicate for logs and error messages.
func (p Predicate) String() string {
	parts := make([]string, 0, len(p.constraints))
	for _, c := range p.constraints {
		s := fmt.Sprintf("%s__%s=%v", c.Field, c.Lookup, c.Value)
		if c.Negated {
			s = "not(" + s + ")"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " AND ")
}

// Match evaluates the constraint against a record field value.
func (c Constraint) Match(fieldValue any) (bool, error) {
	fn, ok := resolver[c.Lookup]
	if !ok {
		return false, errors.NewUnsupportedLookupError(string(c.Lookup), "in-memory evaluation")
	}
	matched, err := fn(normalize(fieldValue), normalize(c.Value))
	if err != nil {
		return false, errors.NewValidationError(c.Field, err.Error())
	}
	if c.Negated {
		matched = !matched
	}
	return matched, nil
}

// parseTerm splits "field" or "field__lookup" into a constraint. Terms that
// span relationships ("owner__club__name") are rejected: in-memory records are
// flat, so callers must filter on a local field.
func parseTerm(term string, value any) (Constraint, error) {
	if term == "" {
		return Constraint{}, errors.NewValidationError("", "empty predicate term")
	}
	parts := strings.Split(term, LookupSep)
	switch len(parts) {
	case 1:
		return Constraint{Field: parts[0], Lookup: Exact, Value: value}, nil
	case 2:
		if !KnownLookup(parts[1]) {
			return Constraint{}, errors.NewValidationError(term,
				fmt.Sprintf("unknown lookup %q; if %q names a related record, terms spanning relationships are not supported", parts[1], parts[1]))
		}
		return Constraint{Field: parts[0], Lookup: Lookup(parts[1]), Value: value}, nil
	default:
		return Constraint{}, errors.NewValidationError(term,
			"terms spanning relationships are not supported")
	}
}
