package model

import (
	"time"

	"gorm.io/gorm"
)

// AnswerType is informational for the client widget; the aggregator
// counts whatever valid selections arrive either way.
type AnswerType string

const (
	SingleChoice   AnswerType = "single_choice"
	MultipleChoice AnswerType = "multiple_choice"
)

func (t AnswerType) Valid() bool {
	return t == SingleChoice || t == MultipleChoice
}

// MaxChoicesPerQuestion bounds the editable choice slots per question.
const MaxChoicesPerQuestion = 10

type Question struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	SurveyID   uint           `json:"survey_id" gorm:"not null;index"`
	Index      int            `json:"index" gorm:"column:idx;not null"` // contiguous 0..N-1 per survey
	Stem       string         `json:"stem" gorm:"type:text;not null"`
	AnswerType AnswerType     `json:"answer_type" gorm:"not null"`
	Choices    []Choice       `json:"choices,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// Choice indices form a contiguous prefix 0..k per question; VoteCount
// only ever grows except through a full survey reset.
type Choice struct {
	QuestionID uint   `json:"question_id" gorm:"primarykey;autoIncrement:false"`
	Index      int    `json:"index" gorm:"column:idx;primarykey;autoIncrement:false"`
	Text       string `json:"text" gorm:"not null"`
	VoteCount  uint   `json:"vote_count" gorm:"not null;default:0"`
}
