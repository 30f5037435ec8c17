/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"reflect"
	"sync"
)

// Key maps associate a record type with the macro templates used to build its
// backing-store keys (PK, SK, etc.), e.g. {"PK": "PLAYER#{ID}", "SK": "PLAYER#{ID}"}.

var (
	keyMapMu       sync.RWMutex
	keyMapRegistry = make(map[reflect.Type]map[string]string)
)

// RegisterKeyMap associates type T with its backing-store key templates.
func RegisterKeyMap[T any](keyMap map[string]string) {
	t := typeOf[T]()

	keyMapMu.Lock()
	defer keyMapMu.Unlock()
	keyMapRegistry[t] = keyMap
}

// GetKeyMap retrieves the key map for type T, if any.
func GetKeyMap[T any]() (map[string]string, bool) {
	t := typeOf[T]()

	keyMapMu.RLock()
	defer keyMapMu.RUnlock()
	m, ok := keyMapRegistry[t]
	return m, ok
}

// typeOf resolves the reflect.Type of T, following pointers to the element type.
func typeOf[T any]() reflect.Type {
	t := reflect.TypeOf((*T)(nil)).Elem()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// TypeName returns the bare type name of T, used as the EntityType attribute
// on persisted items and in error messages.
func TypeName[T any]() string {
	return typeOf[T]().Name()
}
