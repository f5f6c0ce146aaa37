package model

// Address represents a row in the `addresses` table. An address is owned
// exclusively by one housing company and is removed together with it.
type Address struct {
	ID       uint64 `json:"id"`        // addresses.id
	Number   string `json:"number"`    // addresses.number (house number, may carry a stair letter)
	StreetID uint64 `json:"street_id"` // addresses.street_id -> streets.id
}
