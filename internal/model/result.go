package model

// Result is an uploaded report document attached to a survey. Filename is
// the name of the stored file as produced by the upload handler; the
// repository treats it as an opaque string.
type Result struct {
	ID             uint64           `json:"id"`        // results.id
	DateTime       string           `json:"date_time"` // results.date_time
	Filename       string           `json:"filename"`  // results.filename
	SurveyID       uint64           `json:"survey_id"` // results.survey_id
	Survey         SurveyRef        `json:"survey"`
	HousingCompany ResultCompanyRef `json:"housing_company"`
}
