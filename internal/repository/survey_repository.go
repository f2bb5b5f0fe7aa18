package repository

import (
	"fmt"

	"github.com/hqanh/campoll/internal/model"
	"gorm.io/gorm"
)

// ScopeFilter is one disjunct of a survey listing query, produced from
// the resolver's output: one reachable level, the node selected there,
// and whether hidden surveys at that level are visible to the requester.
type ScopeFilter struct {
	Level         model.ScopeLevel
	NodeID        uint // ignored at system scope
	IncludeHidden bool
}

type SurveyWithCount struct {
	model.Survey
	QuestionCount int
}

type SurveyRepository interface {
	Create(survey *model.Survey) error
	FindByID(id uint) (*model.Survey, error)
	FindByIDWithQuestions(id uint) (*model.Survey, error)
	ListForScopes(filters []ScopeFilter) ([]SurveyWithCount, error)
	CountAnswered(surveyID uint) (int64, error)
	Update(survey *model.Survey) error
	ReplaceGroups(surveyID uint, groupIDs []uint) error
	Delete(id uint) error
	Reset(id uint) error
}

type surveyRepository struct {
	db *gorm.DB
}

func NewSurveyRepository(db *gorm.DB) SurveyRepository {
	return &surveyRepository{db: db}
}

func (r *surveyRepository) Create(survey *model.Survey) error {
	// Create with associations persists the group restriction rows too.
	return r.db.Create(survey).Error
}

func (r *surveyRepository) FindByID(id uint) (*model.Survey, error) {
	var survey model.Survey
	if err := r.db.Preload("Groups").First(&survey, id).Error; err != nil {
		return nil, err
	}
	return &survey, nil
}

func (r *surveyRepository) FindByIDWithQuestions(id uint) (*model.Survey, error) {
	var survey model.Survey
	err := r.db.
		Preload("Groups").
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.idx ASC")
		}).
		Preload("Questions.Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("choices.idx ASC")
		}).
		First(&survey, id).Error
	if err != nil {
		return nil, err
	}
	return &survey, nil
}

func (r *surveyRepository) ListForScopes(filters []ScopeFilter) ([]SurveyWithCount, error) {
	if len(filters) == 0 {
		return nil, nil
	}

	scopeCond := r.db.Session(&gorm.Session{NewDB: true})
	for i, f := range filters {
		sub := r.db.Session(&gorm.Session{NewDB: true}).Where("surveys.scope = ?", f.Level)
		if f.Level != model.ScopeSystem {
			sub = sub.Where("surveys.node_id = ?", f.NodeID)
		}
		if !f.IncludeHidden {
			sub = sub.Where("surveys.hidden = ?", false)
		}
		if i == 0 {
			scopeCond = scopeCond.Where(sub)
		} else {
			scopeCond = scopeCond.Or(sub)
		}
	}

	var results []SurveyWithCount
	err := r.db.Model(&model.Survey{}).
		Select("surveys.*, (SELECT COUNT(*) FROM questions WHERE questions.survey_id = surveys.id AND questions.deleted_at IS NULL) AS question_count").
		Where(scopeCond).
		Order("surveys.opens_at DESC").
		Preload("Groups").
		Find(&results).Error
	return results, err
}

func (r *surveyRepository) CountAnswered(surveyID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.AnsweredRecord{}).Where("survey_id = ?", surveyID).Count(&count).Error
	return count, err
}

func (r *surveyRepository) Update(survey *model.Survey) error {
	return r.db.Omit("Questions", "Groups").Save(survey).Error
}

func (r *surveyRepository) ReplaceGroups(surveyID uint, groupIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("survey_id = ?", surveyID).Delete(&model.SurveyGroup{}).Error; err != nil {
			return fmt.Errorf("failed to clear group restriction: %w", err)
		}
		for _, gid := range groupIDs {
			if err := tx.Create(&model.SurveyGroup{SurveyID: surveyID, GroupID: gid}).Error; err != nil {
				return fmt.Errorf("failed to add group %d: %w", gid, err)
			}
		}
		return nil
	})
}

// Delete cascades the survey's questions, choices, group restriction
// and answered records in one transaction.
func (r *surveyRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		questionIDs, err := surveyQuestionIDs(tx, id)
		if err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.Choice{}).Error; err != nil {
				return fmt.Errorf("failed to delete choices: %w", err)
			}
		}
		if err := tx.Where("survey_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return fmt.Errorf("failed to delete questions: %w", err)
		}
		if err := tx.Where("survey_id = ?", id).Delete(&model.SurveyGroup{}).Error; err != nil {
			return fmt.Errorf("failed to delete group restriction: %w", err)
		}
		if err := tx.Where("survey_id = ?", id).Delete(&model.AnsweredRecord{}).Error; err != nil {
			return fmt.Errorf("failed to delete answered records: %w", err)
		}
		if err := tx.Delete(&model.Survey{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete survey: %w", err)
		}
		return nil
	})
}

// Reset zeroes every vote count and forgets who answered, leaving the
// survey, its questions and its choices in place.
func (r *surveyRepository) Reset(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		questionIDs, err := surveyQuestionIDs(tx, id)
		if err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Model(&model.Choice{}).
				Where("question_id IN ?", questionIDs).
				UpdateColumn("vote_count", 0).Error; err != nil {
				return fmt.Errorf("failed to zero vote counts: %w", err)
			}
		}
		if err := tx.Where("survey_id = ?", id).Delete(&model.AnsweredRecord{}).Error; err != nil {
			return fmt.Errorf("failed to clear answered records: %w", err)
		}
		return nil
	})
}

func surveyQuestionIDs(tx *gorm.DB, surveyID uint) ([]uint, error) {
	var ids []uint
	if err := tx.Model(&model.Question{}).Where("survey_id = ?", surveyID).Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list question ids for survey %d: %w", surveyID, err)
	}
	return ids, nil
}
