package repository

import (
	"errors"
	"fmt"

	"github.com/hqanh/campoll/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrDuplicateAnswer reports that the answered-record insert hit the
// (survey_id, user_id) uniqueness boundary: someone else's submission
// for the same pair already committed.
var ErrDuplicateAnswer = errors.New("answered record already exists")

// ChoiceVote identifies one choice a submission selected.
type ChoiceVote struct {
	QuestionID  uint
	ChoiceIndex int
}

type ResponseRepository interface {
	HasAnswered(surveyID, userID uint) (bool, error)
	SubmitAnswers(surveyID, userID uint, votes []ChoiceVote) error
}

type responseRepository struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) ResponseRepository {
	return &responseRepository{db: db}
}

func (r *responseRepository) HasAnswered(surveyID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.AnsweredRecord{}).
		Where("survey_id = ? AND user_id = ?", surveyID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check answered record: %w", err)
	}
	return count > 0, nil
}

// SubmitAnswers applies every vote increment and the answered-record
// insert as one transaction. Increments are column math executed by the
// store, never a read-then-write in process, so concurrent submissions
// to the same choice cannot lose updates. A conflicting answered insert
// rolls the whole transaction back and surfaces ErrDuplicateAnswer.
func (r *responseRepository) SubmitAnswers(surveyID, userID uint, votes []ChoiceVote) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, v := range votes {
			res := tx.Model(&model.Choice{}).
				Where("question_id = ? AND idx = ?", v.QuestionID, v.ChoiceIndex).
				UpdateColumn("vote_count", gorm.Expr("vote_count + 1"))
			if res.Error != nil {
				return fmt.Errorf("failed to count vote for question %d choice %d: %w",
					v.QuestionID, v.ChoiceIndex, res.Error)
			}
			// RowsAffected 0 means a stray index slipped past the
			// service filter; the tally must not be corrupted by it.
		}

		res := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.AnsweredRecord{SurveyID: surveyID, UserID: userID})
		if res.Error != nil {
			return fmt.Errorf("failed to insert answered record: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrDuplicateAnswer
		}
		return nil
	})
}
