package dto

// QuestionDTO is the requester-facing view of one question with its
// ordered choices (no tallies; those live in the results view).
type QuestionDTO struct {
	ID         uint        `json:"id"`
	Index      int         `json:"index"`
	Stem       string      `json:"stem"`
	AnswerType string      `json:"answer_type"`
	Choices    []ChoiceDTO `json:"choices"`
}

type ChoiceDTO struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// QuestionEditDTO is the admin payload for adding or replacing a
// question. Choices is the full 0..9 slot list as submitted by the
// form; the service validates the contiguity rules before anything is
// persisted.
type QuestionEditDTO struct {
	Stem       string   `json:"stem"`
	AnswerType string   `json:"answer_type" binding:"required"`
	Choices    []string `json:"choices" binding:"max=10"`
}
