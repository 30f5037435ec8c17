/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// FieldMap holds one typed getter per filterable field of T. Getters are
// established once per record type, so predicate evaluation never resolves
// field names reflectively per record.
type FieldMap[T any] map[string]func(T) any

var (
	fieldMu       sync.RWMutex
	fieldRegistry = make(map[reflect.Type]any)
	keyFuncMu     sync.RWMutex
	keyFuncs      = make(map[reflect.Type]any)
)

// RegisterFieldMap installs an explicit field map for type T, overriding the
// derived one.
func RegisterFieldMap[T any](fields FieldMap[T]) {
	t := typeOf[T]()

	fieldMu.Lock()
	defer fieldMu.Unlock()
	fieldRegistry[t] = fields
}

// FieldMapFor returns the field map for type T. If none was registered, one is
// derived from T's exported struct fields (by Go name and json tag name) and
// cached for subsequent calls.
func FieldMapFor[T any]() FieldMap[T] {
	t := typeOf[T]()

	fieldMu.RLock()
	cached, ok := fieldRegistry[t]
	fieldMu.RUnlock()
	if ok {
		return cached.(FieldMap[T])
	}

	derived := deriveFieldMap[T](t)

	fieldMu.Lock()
	defer fieldMu.Unlock()
	if again, ok := fieldRegistry[t]; ok {
		return again.(FieldMap[T])
	}
	fieldRegistry[t] = derived
	return derived
}

// deriveFieldMap walks T's struct definition once, building an index-based
// getter per exported field. Pointer-typed fields yield nil when unset.
func deriveFieldMap[T any](t reflect.Type) FieldMap[T] {
	fields := make(FieldMap[T])
	if t.Kind() != reflect.Struct {
		return fields
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		getter := getterForIndex[T](f.Index)
		fields[f.Name] = getter
		if tag := jsonName(f); tag != "" && tag != f.Name {
			fields[tag] = getter
		}
	}
	return fields
}

func getterForIndex[T any](index []int) func(T) any {
	return func(v T) any {
		rv := reflect.ValueOf(v)
		for rv.Kind() == reflect.Pointer {
			if rv.IsNil() {
				return nil
			}
			rv = rv.Elem()
		}
		fv := rv.FieldByIndex(index)
		if fv.Kind() == reflect.Pointer && fv.IsNil() {
			return nil
		}
		return fv.Interface()
	}
}

func jsonName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return ""
	}
	if idx := strings.Index(tag, ","); idx >= 0 {
		tag = tag[:idx]
	}
	return tag
}

// RegisterKeyFunc installs the primary-key extractor for type T, used by warm
// cache lookups and the mock datastore.
func RegisterKeyFunc[T any](fn func(T) string) {
	t := typeOf[T]()

	keyFuncMu.Lock()
	defer keyFuncMu.Unlock()
	keyFuncs[t] = fn
}

// KeyFuncFor returns the key extractor for type T. Without a registration it
// falls back to an exported "ID" (or "Id") field rendered as a string; ok is
// false when no extractor can be derived.
func KeyFuncFor[T any]() (func(T) string, bool) {
	t := typeOf[T]()

	keyFuncMu.RLock()
	fn, ok := keyFuncs[t]
	keyFuncMu.RUnlock()
	if ok {
		return fn.(func(T) string), true
	}

	fields := FieldMapFor[T]()
	for _, name := range []string{"ID", "Id", "id"} {
		getter, ok := fields[name]
		if !ok {
			continue
		}
		derived := func(v T) string {
			val := getter(v)
			if val == nil {
				return ""
			}
			rv := reflect.ValueOf(val)
			for rv.Kind() == reflect.Pointer {
				if rv.IsNil() {
					return ""
				}
				rv = rv.Elem()
			}
			return fmt.Sprintf("%v", rv.Interface())
		}

		keyFuncMu.Lock()
		keyFuncs[t] = derived
		keyFuncMu.Unlock()
		return derived, true
	}
	return nil, false
}
