/*
Package datastore defines the backing-store interface QueryCache collections
are layered over.

The main interface is DataStore[T], which provides the operations the cache
delegates to when cold and the bulk retrieval it snapshots from:

	type DataStore[T any] interface {
	    GetOne(ctx context.Context, key string) (*T, error)
	    Put(ctx context.Context, record T) error
	    Select(ctx context.Context, pred predicate.Predicate) ([]T, error)
	    Delete(ctx context.Context, key string) error
	}

Implementations:
  - ddb: DynamoDB implementation translating predicates to filter expressions
  - mock: in-memory, insertion-ordered implementation for testing

The package uses Go generics to ensure type safety at compile time while
keeping the cache independent of any particular storage backend.
*/
package datastore
