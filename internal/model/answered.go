package model

import "time"

// AnsweredRecord is the permanent proof that a user has responded to a
// survey. The composite primary key is the uniqueness boundary that
// keeps concurrent duplicate submissions from both succeeding.
type AnsweredRecord struct {
	SurveyID  uint      `json:"survey_id" gorm:"primarykey;autoIncrement:false"`
	UserID    uint      `json:"user_id" gorm:"primarykey;autoIncrement:false"`
	CreatedAt time.Time `json:"created_at"`
}
