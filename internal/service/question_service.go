package service

import (
	"errors"
	"fmt"

	"github.com/hqanh/campoll/internal/access"
	"github.com/hqanh/campoll/internal/dto"
	"github.com/hqanh/campoll/internal/model"
	"github.com/hqanh/campoll/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type QuestionService interface {
	// AddOrUpdateQuestion appends a new question (questionID 0) or
	// replaces an existing one in place.
	AddOrUpdateQuestion(surveyID, questionID uint, req access.Requester, payload dto.QuestionEditDTO) (*dto.QuestionDTO, error)
	RemoveQuestion(surveyID, questionID uint, req access.Requester) error
}

type questionService struct {
	surveyRepo   repository.SurveyRepository
	questionRepo repository.QuestionRepository
	responseRepo repository.ResponseRepository
	engine       *access.Engine
}

func NewQuestionService(
	surveyRepo repository.SurveyRepository,
	questionRepo repository.QuestionRepository,
	responseRepo repository.ResponseRepository,
	engine *access.Engine,
) QuestionService {
	return &questionService{
		surveyRepo:   surveyRepo,
		questionRepo: questionRepo,
		responseRepo: responseRepo,
		engine:       engine,
	}
}

func (s *questionService) AddOrUpdateQuestion(surveyID, questionID uint, req access.Requester, payload dto.QuestionEditDTO) (*dto.QuestionDTO, error) {
	if err := s.requireEditable(surveyID, req); err != nil {
		return nil, err
	}

	answerType := model.AnswerType(payload.AnswerType)
	if !answerType.Valid() {
		return nil, validationErr(RuleBadAnswerType, "answer type %q is not single_choice or multiple_choice", payload.AnswerType)
	}
	choiceTexts, err := validateChoiceSlots(payload.Stem, payload.Choices)
	if err != nil {
		return nil, err
	}

	var question *model.Question
	if questionID == 0 {
		question, err = s.appendQuestion(surveyID, payload.Stem, answerType, choiceTexts)
	} else {
		question, err = s.replaceQuestion(surveyID, questionID, payload.Stem, answerType, choiceTexts)
	}
	if err != nil {
		return nil, err
	}

	var resp dto.QuestionDTO
	if err := copier.Copy(&resp, question); err != nil {
		log.Error().Err(err).Uint("questionID", question.ID).Msg("Failed to copy question into DTO")
		return nil, fmt.Errorf("error preparing question response: %w", err)
	}
	return &resp, nil
}

func (s *questionService) appendQuestion(surveyID uint, stem string, answerType model.AnswerType, choiceTexts []string) (*model.Question, error) {
	index, err := s.questionRepo.NextIndex(surveyID)
	if err != nil {
		log.Error().Err(err).Uint("surveyID", surveyID).Msg("AddOrUpdateQuestion: next index lookup failed")
		return nil, fmt.Errorf("error computing question index: %w", err)
	}
	question := &model.Question{
		SurveyID:   surveyID,
		Index:      index,
		Stem:       stem,
		AnswerType: answerType,
		Choices:    buildChoices(choiceTexts),
	}
	if err := s.questionRepo.CreateWithChoices(question); err != nil {
		log.Error().Err(err).Uint("surveyID", surveyID).Msg("AddOrUpdateQuestion: create failed")
		return nil, fmt.Errorf("database error creating question: %w", err)
	}
	return question, nil
}

func (s *questionService) replaceQuestion(surveyID, questionID uint, stem string, answerType model.AnswerType, choiceTexts []string) (*model.Question, error) {
	question, err := s.findQuestion(surveyID, questionID)
	if err != nil {
		return nil, err
	}
	question.Stem = stem
	question.AnswerType = answerType

	choices := buildChoices(choiceTexts)
	if err := s.questionRepo.UpdateWithChoices(question, choices); err != nil {
		log.Error().Err(err).Uint("questionID", questionID).Msg("AddOrUpdateQuestion: update failed")
		return nil, fmt.Errorf("database error updating question %d: %w", questionID, err)
	}
	question.Choices = choices
	return question, nil
}

func (s *questionService) RemoveQuestion(surveyID, questionID uint, req access.Requester) error {
	if err := s.requireEditable(surveyID, req); err != nil {
		return err
	}
	question, err := s.findQuestion(surveyID, questionID)
	if err != nil {
		return err
	}
	if err := s.questionRepo.Remove(question); err != nil {
		log.Error().Err(err).Uint("questionID", questionID).Msg("RemoveQuestion: delete failed")
		return fmt.Errorf("database error removing question %d: %w", questionID, err)
	}
	log.Info().Uint("surveyID", surveyID).Uint("questionID", questionID).Int("index", question.Index).
		Msg("Question removed, higher indices compacted")
	return nil
}

func (s *questionService) requireEditable(surveyID uint, req access.Requester) error {
	survey, err := s.surveyRepo.FindByID(surveyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("survey %d: %w", surveyID, ErrNotFound)
		}
		log.Error().Err(err).Uint("surveyID", surveyID).Msg("Failed to load survey for edit check")
		return fmt.Errorf("error loading survey %d: %w", surveyID, err)
	}
	status, err := s.engine.Evaluate(access.StatusInput{Survey: survey, Requester: req})
	if err != nil {
		return fmt.Errorf("error deriving survey status: %w", err)
	}
	if !status.CanEdit {
		return fmt.Errorf("role %s may not edit questions of survey %d: %w", req.Role, surveyID, ErrPermissionDenied)
	}
	return nil
}

func (s *questionService) findQuestion(surveyID, questionID uint) (*model.Question, error) {
	question, err := s.questionRepo.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("question %d: %w", questionID, ErrNotFound)
		}
		log.Error().Err(err).Uint("questionID", questionID).Msg("Failed to load question")
		return nil, fmt.Errorf("error loading question %d: %w", questionID, err)
	}
	if question.SurveyID != surveyID {
		return nil, fmt.Errorf("question %d does not belong to survey %d: %w", questionID, surveyID, ErrNotFound)
	}
	return question, nil
}

// validateChoiceSlots runs the structural rules over the submitted
// choice slots, in order, failing fast with a distinct rule each:
// non-empty stem, non-empty first choice, no gap inside the slot list,
// at least two choices. It returns the contiguous non-empty prefix.
func validateChoiceSlots(stem string, slots []string) ([]string, error) {
	if stem == "" {
		return nil, validationErr(RuleEmptyStem, "question stem must not be empty")
	}
	if len(slots) == 0 || slots[0] == "" {
		return nil, validationErr(RuleEmptyFirstChoice, "first choice must not be empty")
	}
	if len(slots) > model.MaxChoicesPerQuestion {
		return nil, validationErr(RuleChoiceGap, "at most %d choice slots are accepted", model.MaxChoicesPerQuestion)
	}

	highest := 0
	seenEmpty := false
	for i, text := range slots {
		if text == "" {
			seenEmpty = true
			continue
		}
		if seenEmpty {
			return nil, validationErr(RuleChoiceGap,
				"choice %d is non-empty after an empty slot; choices must be contiguous", i)
		}
		highest = i
	}
	if highest < 1 {
		return nil, validationErr(RuleTooFewChoices, "a question needs at least two choices")
	}
	return slots[:highest+1], nil
}

func buildChoices(texts []string) []model.Choice {
	choices := make([]model.Choice, 0, len(texts))
	for i, text := range texts {
		choices = append(choices, model.Choice{Index: i, Text: text})
	}
	return choices
}
