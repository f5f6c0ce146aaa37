package repository

import "encoding/json"

// decodeRef decodes a JSON_OBJECT column produced by a join query into its
// typed nested struct. A NULL column or malformed payload decodes to the
// zero value rather than failing the whole row; rows with a broken
// sub-object still carry their flat columns.
func decodeRef[T any](raw []byte) T {
	var v T
	if len(raw) == 0 {
		return v
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		var zero T
		return zero
	}
	return v
}
