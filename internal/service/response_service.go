package service

import (
	"errors"
	"fmt"

	"github.com/hqanh/campoll/internal/access"
	"github.com/hqanh/campoll/internal/dto"
	"github.com/hqanh/campoll/internal/model"
	"github.com/hqanh/campoll/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ResponseService interface {
	SubmitAnswers(surveyID uint, req access.Requester, payload dto.SubmitAnswersDTO) (*dto.SubmitReceiptDTO, error)
}

type responseService struct {
	surveyRepo   repository.SurveyRepository
	responseRepo repository.ResponseRepository
	engine       *access.Engine
}

func NewResponseService(
	surveyRepo repository.SurveyRepository,
	responseRepo repository.ResponseRepository,
	engine *access.Engine,
) ResponseService {
	return &responseService{surveyRepo: surveyRepo, responseRepo: responseRepo, engine: engine}
}

// SubmitAnswers gates a submission through the status engine, filters
// the selections against the survey's actual questions and choices, and
// hands the surviving votes to the atomic aggregation transaction.
func (s *responseService) SubmitAnswers(surveyID uint, req access.Requester, payload dto.SubmitAnswersDTO) (*dto.SubmitReceiptDTO, error) {
	survey, err := s.surveyRepo.FindByIDWithQuestions(surveyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("survey %d: %w", surveyID, ErrNotFound)
		}
		log.Error().Err(err).Uint("surveyID", surveyID).Msg("SubmitAnswers: failed to load survey")
		return nil, fmt.Errorf("error loading survey %d: %w", surveyID, err)
	}

	hasAnswered, err := s.responseRepo.HasAnswered(surveyID, req.UserID)
	if err != nil {
		log.Error().Err(err).Uint("surveyID", surveyID).Uint("userID", req.UserID).
			Msg("SubmitAnswers: answered lookup failed")
		return nil, fmt.Errorf("error checking answered state: %w", err)
	}

	status, err := s.engine.Evaluate(access.StatusInput{
		Survey:        survey,
		QuestionCount: len(survey.Questions),
		Requester:     req,
		HasAnswered:   hasAnswered,
	})
	if err != nil {
		return nil, fmt.Errorf("error deriving survey status: %w", err)
	}
	if status.HasAnswered {
		return nil, fmt.Errorf("survey %d, user %d: %w", surveyID, req.UserID, ErrAlreadyAnswered)
	}
	if !status.CanAnswer {
		return nil, fmt.Errorf("survey %d is not answerable by this requester: %w", surveyID, ErrPermissionDenied)
	}

	votes := s.collectVotes(survey, payload.Selections)

	if err := s.responseRepo.SubmitAnswers(surveyID, req.UserID, votes); err != nil {
		if errors.Is(err, repository.ErrDuplicateAnswer) {
			// Lost a race against a concurrent submission from the same
			// user; the store's uniqueness boundary kept the tally sane.
			log.Info().Uint("surveyID", surveyID).Uint("userID", req.UserID).
				Msg("SubmitAnswers: duplicate submission rejected by store")
			return nil, fmt.Errorf("survey %d, user %d: %w", surveyID, req.UserID, ErrAlreadyAnswered)
		}
		log.Error().Err(err).Uint("surveyID", surveyID).Uint("userID", req.UserID).
			Msg("SubmitAnswers: aggregation transaction failed")
		return nil, fmt.Errorf("error recording answers for survey %d: %w", surveyID, err)
	}

	log.Info().Uint("surveyID", surveyID).Uint("userID", req.UserID).Int("votes", len(votes)).
		Msg("Answers recorded")
	return &dto.SubmitReceiptDTO{SurveyID: surveyID, CountedVotes: len(votes), Answered: true}, nil
}

// collectVotes keeps only selections matching an existing question and
// choice of this survey. Stray ids and indices are dropped without
// failing the submission; duplicate indices are counted once.
func (s *responseService) collectVotes(survey *model.Survey, selections []dto.AnswerSelectionDTO) []repository.ChoiceVote {
	questions := make(map[uint]*model.Question, len(survey.Questions))
	for i := range survey.Questions {
		questions[survey.Questions[i].ID] = &survey.Questions[i]
	}

	var votes []repository.ChoiceVote
	for _, sel := range selections {
		question, ok := questions[sel.QuestionID]
		if !ok {
			log.Warn().Uint("surveyID", survey.ID).Uint("questionID", sel.QuestionID).
				Msg("SubmitAnswers: selection references a question not in this survey, skipping")
			continue
		}
		valid := make(map[int]struct{}, len(question.Choices))
		for _, c := range question.Choices {
			valid[c.Index] = struct{}{}
		}
		seen := make(map[int]struct{}, len(sel.ChoiceIndexes))
		for _, idx := range sel.ChoiceIndexes {
			if _, ok := valid[idx]; !ok {
				log.Warn().Uint("questionID", question.ID).Int("choiceIndex", idx).
					Msg("SubmitAnswers: selection references a missing choice, skipping")
				continue
			}
			if _, dup := seen[idx]; dup {
				continue
			}
			seen[idx] = struct{}{}
			votes = append(votes, repository.ChoiceVote{QuestionID: question.ID, ChoiceIndex: idx})
		}
	}
	return votes
}
