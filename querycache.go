/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package querycache

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/suparena/querycache/datastore"
	"github.com/suparena/querycache/errors"
	"github.com/suparena/querycache/registry"
)

// TypedSources manages the registered backing stores for a specific type T.
type TypedSources[T any] struct {
	mu      sync.RWMutex
	sources map[string]datastore.DataStore[T]
}

// NewTypedSources creates a new TypedSources for type T.
func NewTypedSources[T any]() *TypedSources[T] {
	return &TypedSources[T]{
		sources: make(map[string]datastore.DataStore[T]),
	}
}

// Register adds a datastore under the given key.
func (ts *TypedSources[T]) Register(key string, ds datastore.DataStore[T]) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if _, exists := ts.sources[key]; exists {
		return fmt.Errorf("%w: datastore %q already registered for %s",
			errors.ErrInvalidInput, key, registry.TypeName[T]())
	}

	ts.sources[key] = ds
	return nil
}

// Get retrieves a datastore by key.
func (ts *TypedSources[T]) Get(key string) (datastore.DataStore[T], error) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	ds, exists := ts.sources[key]
	if !exists {
		return nil, errors.NewNotFoundError(registry.TypeName[T](), key)
	}

	return ds, nil
}

// Remove deletes a datastore by key.
func (ts *TypedSources[T]) Remove(key string) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if _, exists := ts.sources[key]; !exists {
		return errors.NewNotFoundError(registry.TypeName[T](), key)
	}

	delete(ts.sources, key)
	return nil
}

// List returns all registered datastore keys.
func (ts *TypedSources[T]) List() []string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	keys := make([]string, 0, len(ts.sources))
	for k := range ts.sources {
		keys = append(keys, k)
	}
	return keys
}

// Sources manages TypedSources instances for different types. Stores are
// registered once at startup; collection handles are constructed fresh per
// caller, so no cached state is shared between requests.
type Sources struct {
	mu     sync.RWMutex
	byType map[reflect.Type]interface{}
}

// NewSources creates a new Sources manager.
func NewSources() *Sources {
	return &Sources{
		byType: make(map[reflect.Type]interface{}),
	}
}

// SourcesFor returns the TypedSources for the specified type, creating it if
// necessary.
func SourcesFor[T any](s *Sources) *TypedSources[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	typ := reflect.TypeOf((*T)(nil)).Elem()

	if existing, exists := s.byType[typ]; exists {
		return existing.(*TypedSources[T])
	}

	created := NewTypedSources[T]()
	s.byType[typ] = created
	return created
}

// RegisterSource registers a datastore for type T under the given key.
func RegisterSource[T any](s *Sources, key string, ds datastore.DataStore[T]) error {
	return SourcesFor[T](s).Register(key, ds)
}

// GetSource retrieves the datastore registered for type T under the given key.
func GetSource[T any](s *Sources, key string) (datastore.DataStore[T], error) {
	return SourcesFor[T](s).Get(key)
}

// GetCollection returns a fresh, cold collection handle over the datastore
// registered under the given key. Each call constructs a new handle, so a
// LoadCache on one request's handle never leaks into another.
func GetCollection[T any](s *Sources, key string) (*Collection[T], error) {
	ds, err := GetSource[T](s, key)
	if err != nil {
		return nil, err
	}
	return New(ds), nil
}
