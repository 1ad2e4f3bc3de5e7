package style

import _ "embed"

// schemaJSON is the JSON Schema for formatting option overrides,
// embedded at build time.
//
//go:embed style-schema.json
var schemaJSON []byte

// SchemaJSON returns the embedded override schema document.
func SchemaJSON() []byte {
	out := make([]byte, len(schemaJSON))
	copy(out, schemaJSON)

	return out
}
