package model

// Postcode represents a row in the `postcodes` table.
type Postcode struct {
	ID     uint64 `json:"id"`      // postcodes.id
	Code   string `json:"code"`    // postcodes.code (e.g. "00100")
	Name   string `json:"name"`    // postcodes.name (district name)
	CityID uint64 `json:"city_id"` // postcodes.city_id -> cities.id
}
