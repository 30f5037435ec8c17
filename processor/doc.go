/*
Package processor generates registry wiring from a YAML model manifest.

The manifest names each record type, its backing-store key templates and
optionally the field used as its primary key:

	package: models
	models:
	  - name: Player
	    keymap:
	      PK: "PLAYER#{Id}"
	      SK: "PLAYER#{Id}"
	    key: ID

Generated Code:
The processor generates an init() function registering each model:

	func init() {
	    registry.RegisterKeyMap[Player](map[string]string{
	        "PK": "PLAYER#{Id}",
	        "SK": "PLAYER#{Id}",
	    })
	    registry.RegisterKeyFunc[Player](func(m Player) string {
	        return fmt.Sprintf("%v", m.ID)
	    })
	}

This automation reduces boilerplate and keeps key layouts consistent between
services sharing a table. The cmd/keymap binary wraps this package.
*/
package processor
