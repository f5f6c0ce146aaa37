package model

// Street represents a row in the `streets` table.
type Street struct {
	ID         uint64 `json:"id"`          // streets.id
	Name       string `json:"name"`        // streets.name
	PostcodeID uint64 `json:"postcode_id"` // streets.postcode_id -> postcodes.id
}
