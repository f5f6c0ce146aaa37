// Package model defines the domain records persisted in the database and the
// nested reference objects embedded into query results. Related rows are
// selected as JSON_OBJECT columns and decoded into the Ref types below, so
// joined payloads stay typed instead of ending up as generic maps.
package model

// UserRef is the slim user object embedded in joined query results.
type UserRef struct {
	UserID   uint64 `json:"user_id"`
	UserName string `json:"user_name"`
}

// AddressRef carries the street name alongside the address row so a housing
// company payload is readable without further lookups.
type AddressRef struct {
	AddressID uint64 `json:"address_id"`
	Street    string `json:"street"`
	Number    string `json:"number"`
}

// PostcodeRef is the postcode object embedded in housing company payloads.
type PostcodeRef struct {
	PostcodeID uint64 `json:"postcode_id"`
	Code       string `json:"code"`
	Name       string `json:"name"`
}

// CityRef is the city object embedded in housing company payloads.
type CityRef struct {
	CityID uint64 `json:"city_id"`
	Name   string `json:"name"`
}

// HousingCompanyRef is the slim company object embedded in survey payloads.
type HousingCompanyRef struct {
	HousingCompanyID uint64 `json:"housing_company_id"`
	Name             string `json:"name"`
}

// SurveyRef mirrors a full survey row when embedded under answers or results.
type SurveyRef struct {
	SurveyID         uint64  `json:"survey_id"`
	StartDate        *string `json:"start_date"`
	EndDate          *string `json:"end_date"`
	MinResponses     *int    `json:"min_responses"`
	MaxResponses     int     `json:"max_responses"`
	SurveyStatus     string  `json:"survey_status"`
	UserID           uint64  `json:"user_id"`
	SurveyKey        string  `json:"survey_key"`
	HousingCompanyID uint64  `json:"housing_company_id"`
}

// QuestionRef is the slim question object embedded in answer listings.
type QuestionRef struct {
	Question string `json:"question"`
	Weight   int    `json:"weight"`
}

// ResultCompanyRef is the company object embedded in result payloads; it
// flattens the whole address chain (street, number, postcode, city) into one
// object for report listings.
type ResultCompanyRef struct {
	HousingCompanyID uint64 `json:"housing_company_id"`
	Name             string `json:"name"`
	Street           string `json:"street"`
	StreetNumber     string `json:"street_number"`
	Postcode         string `json:"postcode"`
	City             string `json:"city"`
}
