package store

import (
	"encoding/json"

	"github.com/lib/pq"
)

// pqStringArray adapts a Go string slice to a Postgres text[] for ANY(...) queries.
func pqStringArray(values []string) any {
	return pq.Array(values)
}

// jsonbPath adapts a single JSONB key into the text[] path argument jsonb_set expects.
func jsonbPath(key string) any {
	return pq.Array([]string{key})
}

// normalizedJSONLiteral marshals a nullable float64 into the JSON literal
// jsonb_set needs as its replacement value.
func normalizedJSONLiteral(v *float64) string {
	encoded, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(encoded)
}
