package repository

import (
	"fmt"

	"github.com/hqanh/campoll/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuestionRepository interface {
	FindByID(id uint) (*model.Question, error)
	NextIndex(surveyID uint) (int, error)
	CreateWithChoices(question *model.Question) error
	UpdateWithChoices(question *model.Question, choices []model.Choice) error
	Remove(question *model.Question) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	err := r.db.Preload("Choices", func(db *gorm.DB) *gorm.DB {
		return db.Order("choices.idx ASC")
	}).First(&question, id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// NextIndex returns the next contiguous question index for a survey:
// max(idx)+1, or 0 when the survey has no questions yet.
func (r *questionRepository) NextIndex(surveyID uint) (int, error) {
	var max *int
	err := r.db.Model(&model.Question{}).
		Where("survey_id = ?", surveyID).
		Select("MAX(idx)").
		Scan(&max).Error
	if err != nil {
		return 0, fmt.Errorf("failed to compute next question index: %w", err)
	}
	if max == nil {
		return 0, nil
	}
	return *max + 1, nil
}

func (r *questionRepository) CreateWithChoices(question *model.Question) error {
	// Create with associations persists the choice rows in one go.
	return r.db.Create(question).Error
}

// UpdateWithChoices replaces a question's stem, answer type and choice
// set. Choice reconciliation is an upsert of the submitted (contiguous)
// prefix plus deletion of every higher slot, so vote counts on kept
// choices survive the edit and no index gap can appear.
func (r *questionRepository) UpdateWithChoices(question *model.Question, choices []model.Choice) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.Question{}).
			Where("id = ?", question.ID).
			Updates(map[string]interface{}{
				"stem":        question.Stem,
				"answer_type": question.AnswerType,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to update question %d: %w", question.ID, err)
		}

		for i := range choices {
			choices[i].QuestionID = question.ID
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "question_id"}, {Name: "idx"}},
				DoUpdates: clause.AssignmentColumns([]string{"text"}),
			}).Create(&choices[i]).Error
			if err != nil {
				return fmt.Errorf("failed to upsert choice %d of question %d: %w", choices[i].Index, question.ID, err)
			}
		}

		err = tx.Where("question_id = ? AND idx >= ?", question.ID, len(choices)).
			Delete(&model.Choice{}).Error
		if err != nil {
			return fmt.Errorf("failed to delete removed choices of question %d: %w", question.ID, err)
		}
		return nil
	})
}

// Remove deletes a question with its choices and closes the index gap
// by shifting every higher-indexed question of the survey down by one.
// Deletion and compaction share one transaction so no reader ever sees
// duplicate or skipped indices.
func (r *questionRepository) Remove(question *model.Question) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", question.ID).Delete(&model.Choice{}).Error; err != nil {
			return fmt.Errorf("failed to delete choices of question %d: %w", question.ID, err)
		}
		if err := tx.Delete(&model.Question{}, question.ID).Error; err != nil {
			return fmt.Errorf("failed to delete question %d: %w", question.ID, err)
		}
		err := tx.Model(&model.Question{}).
			Where("survey_id = ? AND idx > ?", question.SurveyID, question.Index).
			UpdateColumn("idx", gorm.Expr("idx - 1")).Error
		if err != nil {
			return fmt.Errorf("failed to compact question indices for survey %d: %w", question.SurveyID, err)
		}
		return nil
	})
}
