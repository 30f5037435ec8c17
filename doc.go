/*
Package querycache provides an in-memory caching collection layered over a
generic backing datastore, for code paths that traverse many records from the
same table and would otherwise issue one query per record.

A Collection[T] starts cold: Filter, Get and All delegate to the backing
DataStore[T] exactly as the uncached baseline would. After an explicit
LoadCache, the handle holds a complete, static snapshot of its scope and
answers those same operations by linear scan in memory, issuing zero further
store calls. Filtered views are themselves populated, so chains of filters
never touch the store.

Basic Usage:

	// Register the backing store once at startup
	srcs := querycache.NewSources()
	store, _ := ddb.NewDynamodbDataStore[Player](key, secret, region, table)
	querycache.RegisterSource(srcs, "players", store)

	// Per request: fresh handle, one bulk load, filter freely
	players, _ := querycache.GetCollection[Player](srcs, "players")
	if err := players.LoadCache(ctx); err != nil {
	    return err
	}
	active, _ := players.Filter(predicate.Where("Status", "active"))
	strong, _ := active.Filter(predicate.Where("Rating__gte", 1800))
	records, _ := strong.All(ctx)

The snapshot is never refreshed on backing-store writes; discard the handle
and load a new one when staleness matters. Collections are intended for
modestly sized tables that fit in memory and are scanned repeatedly.

Key Features:
  - Transparent fallback: a cold handle behaves exactly like the baseline
  - Typed field accessors established once per record type (see registry)
  - The predicate language is shared by the in-memory and store paths
  - DynamoDB backing store with predicate-to-filter-expression translation
  - In-memory mock datastore with operation counters for testing
*/
package querycache
