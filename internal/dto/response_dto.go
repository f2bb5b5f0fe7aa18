package dto

// AnswerSelectionDTO is one question's selected choice indices within a
// submission. Multiple indices on a single-choice question are accepted
// as-is; the answer type constrains the client widget, not the tally.
type AnswerSelectionDTO struct {
	QuestionID    uint  `json:"question_id" binding:"required"`
	ChoiceIndexes []int `json:"choice_indexes" binding:"required"`
}

// SubmitAnswersDTO is a user's complete response to a survey.
type SubmitAnswersDTO struct {
	Selections []AnswerSelectionDTO `json:"selections" binding:"required,min=1,dive"`
}

// SubmitReceiptDTO confirms a counted submission.
type SubmitReceiptDTO struct {
	SurveyID     uint `json:"survey_id"`
	CountedVotes int  `json:"counted_votes"`
	Answered     bool `json:"answered"`
}

// ChoiceResultDTO is one choice's tally in the results view.
type ChoiceResultDTO struct {
	Index     int    `json:"index"`
	Text      string `json:"text"`
	VoteCount uint   `json:"vote_count"`
}

type QuestionResultDTO struct {
	ID         uint              `json:"id"`
	Index      int               `json:"index"`
	Stem       string            `json:"stem"`
	AnswerType string            `json:"answer_type"`
	Choices    []ChoiceResultDTO `json:"choices"`
}

// SurveyResultsDTO is the aggregated outcome of a survey: per-choice
// tallies plus how many users responded overall.
type SurveyResultsDTO struct {
	SurveyID     uint                `json:"survey_id"`
	Title        string              `json:"title"`
	TotalAnswers int64               `json:"total_answers"`
	Questions    []QuestionResultDTO `json:"questions"`
}
