// Package harness loads item fixtures, builds them into handles, and
// renders the handles through the boundary for golden comparison.
//
// # Fixture Format
//
// Fixtures are YAML or CUE files with the following structure:
//
//	name: fixture_name
//	description: "What this fixture exercises"
//	items:
//	  - name: by_key
//	    key: x
//	    obj: "1@0f"
//	    value: { type: int, value: "42" }
//	  - name: by_pos
//	    pos: 0
//	    obj: _root
//	    value: { type: str, value: "a" }
//	  - name: void
//
// Scalar payloads are always strings and are parsed according to type:
// decimal for integers, strconv float syntax for f64, hex for bytes,
// actor ids and change hashes.
//
// # Item Shapes
//
// Which fields are present selects the item constructor:
//
//   - key or pos with obj: indexed item (value optional)
//   - obj with value: exact item
//   - obj alone: object reference
//   - value alone: bare value
//   - nothing: void item
//
// key and pos are mutually exclusive, and an index requires obj.
package harness
