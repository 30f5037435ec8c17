/*
Package ddb provides a DynamoDB implementation of the DataStore interface.

The DynamodbDataStore supports:
  - Single-table design with macro-based key expansion (e.g. "PLAYER#{ID}")
  - Automatic EntityType injection so scans stay restricted to one record type
  - Predicate translation to filter expressions for the uncached query path

Key Features:

Macro Expansion:
Keys can use macros that are replaced with record field values:

	keyMap := map[string]string{
	    "PK": "PLAYER#{ID}",   // Becomes "PLAYER#123"
	    "SK": "PROFILE",       // Static value
	}

Predicate Translation:
Select renders a predicate conjunction into a filter expression over a
paginated Scan:

	records, err := store.Select(ctx, predicate.
	    Where("Status", "active").
	    Where("Score__gte", 1800))

Lookups DynamoDB's expression language can express translate directly
(=, comparisons, begins_with, contains, IN, BETWEEN, attribute_exists);
case-insensitive and date-component lookups return an UnsupportedLookupError
and are only available on a populated cache.
*/
package ddb
