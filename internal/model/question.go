package model

// Question represents a row in the `questions` table. Questions belong to a
// section and carry a weight used when results are scored. Inactive
// questions stay in the database for old surveys but are hidden from the
// public listing.
type Question struct {
	ID            uint64 `json:"id"`             // questions.id
	QuestionOrder int    `json:"question_order"` // position on the form
	Question      string `json:"question"`       // questions.question
	Weight        int    `json:"weight"`         // questions.weight
	Active        bool   `json:"active"`         // questions.active
	SectionID     uint64 `json:"section_id"`     // questions.section_id -> sections.id
}

// QuestionWithChoices is a question together with the choices linked to it
// through the questions_choices join table.
type QuestionWithChoices struct {
	Question Question `json:"question"`
	Choices  []Choice `json:"choices"`
}
