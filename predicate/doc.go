/*
Package predicate defines the filter language shared by the in-memory cache
and the backing datastores.

A predicate is an ordered conjunction of field constraints built from terms:

	p := predicate.Where("Status", "active").
	    Where("Score__gte", 1800).
	    Where("Name__istartswith", "an")

Terms are a field name optionally followed by a lookup, separated by "__".
Supported lookups: exact (default), iexact, gt, gte, lt, lte, contains,
icontains, in, startswith, istartswith, endswith, iendswith, range, year,
month, day, isnull.

Parse errors do not interrupt chaining; they are carried on the predicate and
surfaced by whichever operation consumes it.

In-memory evaluation normalizes pointers, named types, numeric widths,
time.Time and strfmt.DateTime before comparison, so a *int32 field matches an
int constraint value. Backing stores translate the subset of lookups their
query language can express and reject the rest with an UnsupportedLookupError.
*/
package predicate
