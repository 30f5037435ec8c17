/*
Package registry holds the per-type wiring QueryCache needs at runtime: key
maps, key extractors and field accessor maps, all keyed by reflect.Type.

Key maps describe how a record's backing-store keys are built from its fields
using macro templates:

	registry.RegisterKeyMap[Player](map[string]string{
	    "PK": "PLAYER#{ID}",
	    "SK": "PLAYER#{ID}",
	})

Field maps provide one typed getter per filterable field, established once per
record type. A map is derived automatically from exported struct fields (and
their json tag names), or registered explicitly when a type needs computed
fields:

	registry.RegisterFieldMap[Player](registry.FieldMap[Player]{
	    "FullName": func(p Player) any { return p.First + " " + p.Last },
	})

Key extractors return a record's primary key as a string; the default is
derived from an exported ID field:

	registry.RegisterKeyFunc[Player](func(p Player) string { return p.ID })

Registration typically happens in init() functions, either hand-written or
generated by cmd/keymap from a YAML manifest. All registries are safe for
concurrent use.
*/
package registry
