// Package queue defines message payloads exchanged over the message broker.
package queue

// SurveyCreatedEvent is published when a survey is successfully created.
// It carries enough information for downstream consumers to log or notify
// without querying the primary database.
type SurveyCreatedEvent struct {
	SurveyID         uint64 `json:"survey_id"`
	SurveyKey        string `json:"survey_key"`
	HousingCompanyID uint64 `json:"housing_company_id"`
	UserID           uint64 `json:"user_id"`
	MaxResponses     int    `json:"max_responses"`
	CreatedAt        string `json:"created_at"`
}

// AnswersSubmittedEvent is published after a respondent's submission has
// been committed, one event per batch.
type AnswersSubmittedEvent struct {
	SurveyID    uint64 `json:"survey_id"`
	Count       int    `json:"count"`
	SubmittedAt string `json:"submitted_at"`
}
