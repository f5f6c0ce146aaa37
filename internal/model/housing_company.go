package model

// HousingCompany represents a row in the `housing_companies` table together
// with the nested objects reconstructed from the join against users,
// addresses, streets, postcodes and cities. The flat foreign keys are kept
// alongside the nested refs because clients use both forms.
type HousingCompany struct {
	ID             uint64      `json:"id"`              // housing_companies.id
	Name           string      `json:"name"`            // housing_companies.name
	ApartmentCount int         `json:"apartment_count"` // housing_companies.apartment_count
	AddressID      uint64      `json:"address_id"`      // housing_companies.address_id
	UserID         uint64      `json:"user_id"`         // housing_companies.user_id (owner)
	User           UserRef     `json:"user"`
	Address        AddressRef  `json:"address"`
	Postcode       PostcodeRef `json:"postcode"`
	City           CityRef     `json:"city"`
}
