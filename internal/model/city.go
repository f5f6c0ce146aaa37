package model

// City represents a row in the `cities` table. Cities anchor the address
// chain: postcodes reference a city, streets a postcode, addresses a street.
type City struct {
	ID   uint64 `json:"id"`   // cities.id
	Name string `json:"name"` // cities.name
}
