package model

// Survey statuses. New surveys open by default and are closed manually or
// when enough responses have arrived.
const (
	SurveyStatusOpen   = "open"
	SurveyStatusClosed = "closed"
)

// Survey represents a row in the `surveys` table with its joined owner and
// housing company. SurveyKey is the public, unguessable token respondents
// use to reach the survey without logging in; it is unique across all
// surveys. MaxResponses is copied from the housing company's apartment
// count when the survey is created.
type Survey struct {
	ID               uint64            `json:"id"`            // surveys.id
	StartDate        *string           `json:"start_date"`    // surveys.start_date (nullable)
	EndDate          *string           `json:"end_date"`      // surveys.end_date (nullable)
	MinResponses     *int              `json:"min_responses"` // surveys.min_responses (nullable)
	MaxResponses     int               `json:"max_responses"` // surveys.max_responses
	SurveyStatus     string            `json:"survey_status"` // "open" | "closed"
	UserID           uint64            `json:"user_id"`       // surveys.user_id (owner)
	SurveyKey        string            `json:"survey_key"`    // unique public token
	HousingCompanyID uint64            `json:"housing_company_id"`
	User             UserRef           `json:"user"`
	HousingCompany   HousingCompanyRef `json:"housing_company"`
}
