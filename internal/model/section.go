package model

// Section groups questions on the survey form.
type Section struct {
	ID          uint64 `json:"id"`           // sections.id
	SectionText string `json:"section_text"` // sections.section_text
	Active      bool   `json:"active"`       // sections.active
}
