package model

// Answer is a single anonymous respondent answer tied to a survey and a
// question. The answer value is the numeric choice value that was picked.
type Answer struct {
	ID         uint64 `json:"id"`          // answers.id
	Answer     int    `json:"answer"`      // numeric choice value
	QuestionID uint64 `json:"question_id"` // answers.question_id
	SurveyID   uint64 `json:"survey_id"`   // answers.survey_id
}

// AnswerDetail is an answer with the joined question, survey, owner and
// housing company objects, as returned by the per-survey listing.
type AnswerDetail struct {
	Answer
	Question       QuestionRef       `json:"question"`
	Survey         SurveyRef         `json:"survey"`
	User           UserRef           `json:"user"`
	HousingCompany HousingCompanyRef `json:"housing_company"`
}
