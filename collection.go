/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package querycache

import (
	"context"
	"sort"
	"strings"

	"github.com/suparena/querycache/datastore"
	"github.com/suparena/querycache/errors"
	"github.com/suparena/querycache/predicate"
	"github.com/suparena/querycache/registry"
)

// Collection is a queryable handle over a backing datastore with an optional
// in-memory snapshot. A cold handle delegates every operation to the store; a
// handle populated by LoadCache answers Filter, Get and All from its snapshot
// by linear scan, issuing no further store calls. Handles derived by Filter,
// Exclude and OrderBy share the populated state but never the snapshot slice.
//
// A Collection is not safe for concurrent use. Construct one handle per
// request and share nothing, or synchronize externally.
type Collection[T any] struct {
	store  datastore.DataStore[T]
	fields registry.FieldMap[T]
	keyFn  func(T) string

	scope predicate.Predicate
	order []string

	rows      []T
	populated bool
}

// New constructs a cold collection handle over the given datastore. Field
// accessors and the key extractor come from the registry for T.
func New[T any](store datastore.DataStore[T]) *Collection[T] {
	keyFn, _ := registry.KeyFuncFor[T]()
	return &Collection[T]{
		store:  store,
		fields: registry.FieldMapFor[T](),
		keyFn:  keyFn,
	}
}

// derive copies the handle's wiring and scope without the snapshot.
func (c *Collection[T]) derive() *Collection[T] {
	return &Collection[T]{
		store:  c.store,
		fields: c.fields,
		keyFn:  c.keyFn,
		scope:  c.scope,
		order:  c.order,
	}
}

// LoadCache materializes the collection's full scope into an in-memory
// snapshot, in retrieval order. The cost of the bulk retrieval is amortized
// across every subsequent filter and lookup on this handle and its derived
// views. Store failures propagate unchanged and leave the handle cold.
func (c *Collection[T]) LoadCache(ctx context.Context) error {
	rows, err := c.store.Select(ctx, c.scope)
	if err != nil {
		return err
	}
	if len(c.order) > 0 {
		if err := sortRows(rows, c.order, c.fields); err != nil {
			return err
		}
	}
	c.rows = rows
	c.populated = true
	return nil
}

// Populated reports whether the handle holds a snapshot.
func (c *Collection[T]) Populated() bool {
	return c.populated
}

// Invalidate drops the snapshot, returning the handle to cold behavior.
func (c *Collection[T]) Invalidate() {
	c.rows = nil
	c.populated = false
}

// Filter restricts the collection to records matching every constraint.
// On a populated handle the snapshot is filtered in memory and the result is
// itself populated; on a cold handle the predicate is appended to the scope
// and evaluation stays lazy, exactly as the uncached baseline. Unknown field
// names fail immediately on both paths.
func (c *Collection[T]) Filter(pred predicate.Predicate) (*Collection[T], error) {
	return c.restrict(pred)
}

// Exclude restricts the collection to records matching none of the
// constraints.
func (c *Collection[T]) Exclude(pred predicate.Predicate) (*Collection[T], error) {
	if err := pred.Err(); err != nil {
		return nil, err
	}
	return c.restrict(pred.Not())
}

func (c *Collection[T]) restrict(pred predicate.Predicate) (*Collection[T], error) {
	if err := pred.Err(); err != nil {
		return nil, err
	}
	if err := c.checkFields(pred); err != nil {
		return nil, err
	}

	next := c.derive()
	next.scope = c.scope.And(pred)
	if !c.populated {
		return next, nil
	}

	matched := make([]T, 0, len(c.rows))
	for _, r := range c.rows {
		ok, err := c.matches(r, pred)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, r)
		}
	}
	next.rows = matched
	next.populated = true
	return next, nil
}

// OrderBy sorts the collection by the given fields, "-field" for descending.
// A populated handle sorts a copy of its snapshot immediately; a cold handle
// records the ordering and applies it after retrieval, since the generic
// store surface offers no server-side ordering.
func (c *Collection[T]) OrderBy(fieldNames ...string) (*Collection[T], error) {
	for _, name := range fieldNames {
		if _, ok := c.fields[strings.TrimPrefix(name, "-")]; !ok {
			return nil, errors.NewUnknownFieldError(registry.TypeName[T](), strings.TrimPrefix(name, "-"))
		}
	}

	next := c.derive()
	next.order = append(append([]string(nil), c.order...), fieldNames...)
	if !c.populated {
		return next, nil
	}

	rows := append([]T(nil), c.rows...)
	if err := sortRows(rows, fieldNames, c.fields); err != nil {
		return nil, err
	}
	next.rows = rows
	next.populated = true
	return next, nil
}

// Get returns the single record with the given primary key: by linear scan of
// the snapshot when populated, delegated to the store otherwise. A record
// outside the handle's scope is not found on either path.
func (c *Collection[T]) Get(ctx context.Context, key string) (*T, error) {
	if !c.populated {
		record, err := c.store.GetOne(ctx, key)
		if err != nil {
			return nil, err
		}
		if !c.scope.Empty() {
			ok, err := c.matches(*record, c.scope)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, errors.NewNotFoundError(registry.TypeName[T](), key)
			}
		}
		return record, nil
	}
	if c.keyFn == nil {
		return nil, errors.NewValidationError("key", "no key extractor registered for record type")
	}
	for _, r := range c.rows {
		if c.keyFn(r) == key {
			record := r
			return &record, nil
		}
	}
	return nil, errors.NewNotFoundError(registry.TypeName[T](), key)
}

// GetBy returns the single record matching the predicate, warm or cold.
// No match and more than one match are both errors.
func (c *Collection[T]) GetBy(ctx context.Context, pred predicate.Predicate) (*T, error) {
	view, err := c.Filter(pred)
	if err != nil {
		return nil, err
	}
	rows, err := view.All(ctx)
	if err != nil {
		return nil, err
	}
	switch len(rows) {
	case 0:
		return nil, errors.NewNotFoundError(registry.TypeName[T](), pred.String())
	case 1:
		record := rows[0]
		return &record, nil
	default:
		return nil, errors.NewMultipleRecordsError(registry.TypeName[T](), len(rows))
	}
}

// All returns the collection's records. A populated handle returns a copy of
// its snapshot; a cold handle issues the store's native query for the
// accumulated scope, then applies any recorded ordering.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	if c.populated {
		return append([]T(nil), c.rows...), nil
	}
	if err := c.scope.Err(); err != nil {
		return nil, err
	}
	rows, err := c.store.Select(ctx, c.scope)
	if err != nil {
		return nil, err
	}
	if len(c.order) > 0 {
		if err := sortRows(rows, c.order, c.fields); err != nil {
			return nil, err
		}
	}
	return rows, nil
}

// Count returns the number of records in the collection.
func (c *Collection[T]) Count(ctx context.Context) (int, error) {
	if c.populated {
		return len(c.rows), nil
	}
	rows, err := c.All(ctx)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

func (c *Collection[T]) checkFields(pred predicate.Predicate) error {
	for _, constraint := range pred.Constraints() {
		if _, ok := c.fields[constraint.Field]; !ok {
			return errors.NewUnknownFieldError(registry.TypeName[T](), constraint.Field)
		}
	}
	return nil
}

func (c *Collection[T]) matches(record T, pred predicate.Predicate) (bool, error) {
	for _, constraint := range pred.Constraints() {
		ok, err := constraint.Match(c.fields[constraint.Field](record))
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// sortRows stable-sorts rows by the named fields, later fields applied first
// so earlier fields dominate.
func sortRows[T any](rows []T, fieldNames []string, fields registry.FieldMap[T]) error {
	var sortErr error
	for i := len(fieldNames) - 1; i >= 0; i-- {
		name := fieldNames[i]
		desc := strings.HasPrefix(name, "-")
		getter, ok := fields[strings.TrimPrefix(name, "-")]
		if !ok {
			return errors.NewUnknownFieldError(registry.TypeName[T](), strings.TrimPrefix(name, "-"))
		}
		sort.SliceStable(rows, func(a, b int) bool {
			cmp, err := predicate.Compare(getter(rows[a]), getter(rows[b]))
			if err != nil && sortErr == nil {
				sortErr = errors.NewValidationError(name, err.Error())
			}
			if desc {
				return cmp > 0
			}
			return cmp < 0
		})
		if sortErr != nil {
			return sortErr
		}
	}
	return nil
}
