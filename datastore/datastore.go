/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/querycache/predicate"
)

// DataStore is the backing-store surface the caching collection sits on.
// Select with an empty predicate is the bulk "fetch everything in scope"
// retrieval; with constraints it is the store's native filtering path.
// Implementations must return records in a stable order so cached snapshots
// preserve it.
type DataStore[T any] interface {
	GetOne(ctx context.Context, key string) (*T, error)

	Put(ctx context.Context, record T) error

	Select(ctx context.Context, pred predicate.Predicate) ([]T, error)

	Delete(ctx context.Context, key string) error
}
