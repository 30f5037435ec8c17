/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory implementation of the DataStore
// interface for testing. Records keep insertion order and every operation is
// counted, so tests can assert how often the cache reached the backing store.
package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/suparena/querycache/errors"
	"github.com/suparena/querycache/predicate"
	"github.com/suparena/querycache/registry"
)

// DataStore is a mock implementation of datastore.DataStore[T] for testing.
type DataStore[T any] struct {
	mu    sync.RWMutex
	rows  []T
	keyFn func(T) string

	putError    error
	deleteError error
	selectError error
	getError    error

	selectCalls int
	getCalls    int
}

// New creates a new mock DataStore. The key extractor defaults to the one
// registered (or derived) for T.
func New[T any]() *DataStore[T] {
	fn, _ := registry.KeyFuncFor[T]()
	return &DataStore[T]{keyFn: fn}
}

// WithKeyFunc sets a custom function to extract keys from records.
func (m *DataStore[T]) WithKeyFunc(f func(T) string) *DataStore[T] {
	m.keyFn = f
	return m
}

// WithPutError makes Put operations return an error.
func (m *DataStore[T]) WithPutError(err error) *DataStore[T] {
	m.putError = err
	return m
}

// WithDeleteError makes Delete operations return an error.
func (m *DataStore[T]) WithDeleteError(err error) *DataStore[T] {
	m.deleteError = err
	return m
}

// WithSelectError makes Select operations return an error.
func (m *DataStore[T]) WithSelectError(err error) *DataStore[T] {
	m.selectError = err
	return m
}

// WithGetError makes GetOne operations return an error.
func (m *DataStore[T]) WithGetError(err error) *DataStore[T] {
	m.getError = err
	return m
}

// Seed stores records without going through Put error injection.
func (m *DataStore[T]) Seed(records ...T) *DataStore[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range records {
		m.upsert(r)
	}
	return m
}

// GetOne retrieves a record by key.
func (m *DataStore[T]) GetOne(ctx context.Context, key string) (*T, error) {
	m.mu.Lock()
	m.getCalls++
	m.mu.Unlock()

	if m.getError != nil {
		return nil, m.getError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.keyFn == nil {
		return nil, errors.NewValidationError("key", "no key extractor for record type")
	}
	for _, r := range m.rows {
		if m.keyFn(r) == key {
			record := r
			return &record, nil
		}
	}
	var zero T
	return nil, errors.NewNotFoundError(fmt.Sprintf("%T", zero), key)
}

// Put stores a record, replacing any record with the same key.
func (m *DataStore[T]) Put(ctx context.Context, record T) error {
	if m.putError != nil {
		return m.putError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.keyFn == nil {
		return errors.NewValidationError("key", "no key extractor for record type")
	}
	m.upsert(record)
	return nil
}

func (m *DataStore[T]) upsert(record T) {
	if m.keyFn != nil {
		key := m.keyFn(record)
		for i, r := range m.rows {
			if m.keyFn(r) == key {
				m.rows[i] = record
				return
			}
		}
	}
	m.rows = append(m.rows, record)
}

// Select returns records matching the predicate in insertion order.
func (m *DataStore[T]) Select(ctx context.Context, pred predicate.Predicate) ([]T, error) {
	m.mu.Lock()
	m.selectCalls++
	m.mu.Unlock()

	if m.selectError != nil {
		return nil, m.selectError
	}
	if err := pred.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	fields := registry.FieldMapFor[T]()
	results := make([]T, 0, len(m.rows))
	for _, r := range m.rows {
		matched := true
		for _, c := range pred.Constraints() {
			getter, ok := fields[c.Field]
			if !ok {
				return nil, errors.NewUnknownFieldError(registry.TypeName[T](), c.Field)
			}
			ok, err := c.Match(getter(r))
			if err != nil {
				return nil, err
			}
			if !ok {
				matched = false
				break
			}
		}
		if matched {
			results = append(results, r)
		}
	}
	return results, nil
}

// Delete removes a record by key.
func (m *DataStore[T]) Delete(ctx context.Context, key string) error {
	if m.deleteError != nil {
		return m.deleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.keyFn == nil {
		return errors.NewValidationError("key", "no key extractor for record type")
	}
	for i, r := range m.rows {
		if m.keyFn(r) == key {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	var zero T
	return errors.NewNotFoundError(fmt.Sprintf("%T", zero), key)
}

// SelectCalls reports how many times Select was invoked.
func (m *DataStore[T]) SelectCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.selectCalls
}

// GetCalls reports how many times GetOne was invoked.
func (m *DataStore[T]) GetCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.getCalls
}

// Len reports the number of stored records.
func (m *DataStore[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rows)
}
