package model

// Choice represents a row in the `choices` table. ChoiceValue is the
// numeric score stored on answers, in the range 1..3.
type Choice struct {
	ID          uint64 `json:"id"`           // choices.id
	ChoiceText  string `json:"choice_text"`  // choices.choice_text
	ChoiceValue int    `json:"choice_value"` // choices.choice_value (1..3)
}

// QuestionChoice links a question to one of its choices.
type QuestionChoice struct {
	ID         uint64 `json:"id"`          // questions_choices.id
	QuestionID uint64 `json:"question_id"` // questions_choices.question_id
	ChoiceID   uint64 `json:"choice_id"`   // questions_choices.choice_id
}
