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

type SurveyService interface {
	ListEligibleSurveys(req access.Requester) ([]dto.SurveySummaryDTO, error)
	GetSurvey(surveyID uint, req access.Requester) (*dto.SurveyDetailDTO, error)
	CreateSurvey(req access.Requester, payload dto.SurveyCreateDTO) (*dto.SurveyDetailDTO, error)
	UpdateSurvey(surveyID uint, req access.Requester, payload dto.SurveyUpdateDTO) (*dto.SurveyDetailDTO, error)
	DeleteSurvey(surveyID uint, req access.Requester) error
	ResetSurvey(surveyID uint, req access.Requester) error
	GetResults(surveyID uint, req access.Requester) (*dto.SurveyResultsDTO, error)
}

type surveyService struct {
	surveyRepo   repository.SurveyRepository
	responseRepo repository.ResponseRepository
	engine       *access.Engine
}

func NewSurveyService(
	surveyRepo repository.SurveyRepository,
	responseRepo repository.ResponseRepository,
	engine *access.Engine,
) SurveyService {
	return &surveyService{surveyRepo: surveyRepo, responseRepo: responseRepo, engine: engine}
}

// ListEligibleSurveys resolves the requester's reachable scopes, turns
// them into listing filters and attaches the derived status flags to
// every returned survey.
func (s *surveyService) ListEligibleSurveys(req access.Requester) ([]dto.SurveySummaryDTO, error) {
	scopes, err := s.engine.Resolve(req)
	if err != nil {
		log.Error().Err(err).Uint("userID", req.UserID).Msg("ListEligibleSurveys: scope resolution failed")
		return nil, fmt.Errorf("error resolving scopes: %w", err)
	}

	var filters []repository.ScopeFilter
	for _, level := range scopes.Allowed.Levels() {
		node := req.Context.NodeAt(level)
		if level != model.ScopeSystem && node == 0 {
			// Reachable through the admin's implicit home selection but
			// with no concrete node in context; nothing to query by.
			continue
		}
		filters = append(filters, repository.ScopeFilter{
			Level:         level,
			NodeID:        node,
			IncludeHidden: scopes.HiddenVisible.Has(level),
		})
	}

	rows, err := s.surveyRepo.ListForScopes(filters)
	if err != nil {
		log.Error().Err(err).Uint("userID", req.UserID).Msg("ListEligibleSurveys: repository query failed")
		return nil, fmt.Errorf("error fetching surveys: %w", err)
	}

	summaries := make([]dto.SurveySummaryDTO, 0, len(rows))
	for i := range rows {
		survey := rows[i].Survey
		status, err := s.statusFor(&survey, rows[i].QuestionCount, req)
		if err != nil {
			return nil, err
		}
		if !status.Visible {
			continue
		}
		summaries = append(summaries, dto.SurveySummaryDTO{
			ID:            survey.ID,
			Scope:         survey.Scope.String(),
			NodeID:        survey.NodeID,
			Title:         survey.Title,
			OpensAt:       survey.OpensAt,
			EndsAt:        survey.EndsAt,
			Hidden:        survey.Hidden,
			QuestionCount: rows[i].QuestionCount,
			Status:        status,
		})
	}
	return summaries, nil
}

func (s *surveyService) GetSurvey(surveyID uint, req access.Requester) (*dto.SurveyDetailDTO, error) {
	survey, err := s.findWithQuestions(surveyID)
	if err != nil {
		return nil, err
	}
	status, err := s.statusFor(survey, len(survey.Questions), req)
	if err != nil {
		return nil, err
	}
	if !status.Visible {
		return nil, fmt.Errorf("survey %d is not visible to this requester: %w", surveyID, ErrPermissionDenied)
	}
	return s.toDetailDTO(survey, status)
}

func (s *surveyService) CreateSurvey(req access.Requester, payload dto.SurveyCreateDTO) (*dto.SurveyDetailDTO, error) {
	survey, err := surveyFromPayload(payload)
	if err != nil {
		return nil, err
	}
	survey.CreatorID = req.UserID

	status, err := s.statusFor(survey, 0, req)
	if err != nil {
		return nil, err
	}
	if !status.CanEdit {
		return nil, fmt.Errorf("role %s may not create surveys at %s scope: %w",
			req.Role, survey.Scope, ErrPermissionDenied)
	}

	if err := s.surveyRepo.Create(survey); err != nil {
		log.Error().Err(err).Msg("CreateSurvey: failed to persist survey")
		return nil, fmt.Errorf("database error creating survey: %w", err)
	}
	return s.toDetailDTO(survey, status)
}

func (s *surveyService) UpdateSurvey(surveyID uint, req access.Requester, payload dto.SurveyUpdateDTO) (*dto.SurveyDetailDTO, error) {
	survey, err := s.requireEditable(surveyID, req)
	if err != nil {
		return nil, err
	}

	updated, err := surveyFromPayload(payload)
	if err != nil {
		return nil, err
	}
	survey.Scope = updated.Scope
	survey.NodeID = updated.NodeID
	survey.Title = updated.Title
	survey.Body = updated.Body
	survey.OpensAt = updated.OpensAt
	survey.EndsAt = updated.EndsAt
	survey.Hidden = updated.Hidden
	survey.AllowedRoleMask = updated.AllowedRoleMask

	// Re-gate against the new placement so an edit cannot move a survey
	// somewhere its editor has no authority over.
	status, err := s.statusFor(survey, len(survey.Questions), req)
	if err != nil {
		return nil, err
	}
	if !status.CanEdit {
		return nil, fmt.Errorf("role %s may not move survey %d to %s scope: %w",
			req.Role, surveyID, survey.Scope, ErrPermissionDenied)
	}

	if err := s.surveyRepo.Update(survey); err != nil {
		log.Error().Err(err).Uint("surveyID", surveyID).Msg("UpdateSurvey: failed to persist survey")
		return nil, fmt.Errorf("database error updating survey %d: %w", surveyID, err)
	}
	groupIDs := make([]uint, 0, len(updated.Groups))
	for _, g := range updated.Groups {
		groupIDs = append(groupIDs, g.GroupID)
	}
	if err := s.surveyRepo.ReplaceGroups(surveyID, groupIDs); err != nil {
		log.Error().Err(err).Uint("surveyID", surveyID).Msg("UpdateSurvey: failed to replace group restriction")
		return nil, fmt.Errorf("database error updating groups of survey %d: %w", surveyID, err)
	}

	fresh, err := s.findWithQuestions(surveyID)
	if err != nil {
		return nil, err
	}
	return s.toDetailDTO(fresh, status)
}

func (s *surveyService) DeleteSurvey(surveyID uint, req access.Requester) error {
	if _, err := s.requireEditable(surveyID, req); err != nil {
		return err
	}
	if err := s.surveyRepo.Delete(surveyID); err != nil {
		log.Error().Err(err).Uint("surveyID", surveyID).Msg("DeleteSurvey: cascade delete failed")
		return fmt.Errorf("database error deleting survey %d: %w", surveyID, err)
	}
	log.Info().Uint("surveyID", surveyID).Uint("userID", req.UserID).Msg("Survey deleted")
	return nil
}

func (s *surveyService) ResetSurvey(surveyID uint, req access.Requester) error {
	if _, err := s.requireEditable(surveyID, req); err != nil {
		return err
	}
	if err := s.surveyRepo.Reset(surveyID); err != nil {
		log.Error().Err(err).Uint("surveyID", surveyID).Msg("ResetSurvey: reset failed")
		return fmt.Errorf("database error resetting survey %d: %w", surveyID, err)
	}
	log.Info().Uint("surveyID", surveyID).Uint("userID", req.UserID).Msg("Survey reset: votes zeroed, answered records cleared")
	return nil
}

func (s *surveyService) GetResults(surveyID uint, req access.Requester) (*dto.SurveyResultsDTO, error) {
	survey, err := s.findWithQuestions(surveyID)
	if err != nil {
		return nil, err
	}
	status, err := s.statusFor(survey, len(survey.Questions), req)
	if err != nil {
		return nil, err
	}
	if !status.CanViewResults {
		return nil, fmt.Errorf("results of survey %d are not viewable by this requester: %w",
			surveyID, ErrPermissionDenied)
	}

	total, err := s.surveyRepo.CountAnswered(surveyID)
	if err != nil {
		log.Error().Err(err).Uint("surveyID", surveyID).Msg("GetResults: failed to count answered records")
		return nil, fmt.Errorf("error counting answers for survey %d: %w", surveyID, err)
	}

	results := &dto.SurveyResultsDTO{
		SurveyID:     survey.ID,
		Title:        survey.Title,
		TotalAnswers: total,
	}
	for _, q := range survey.Questions {
		qr := dto.QuestionResultDTO{
			ID:         q.ID,
			Index:      q.Index,
			Stem:       q.Stem,
			AnswerType: string(q.AnswerType),
		}
		for _, c := range q.Choices {
			qr.Choices = append(qr.Choices, dto.ChoiceResultDTO{
				Index:     c.Index,
				Text:      c.Text,
				VoteCount: c.VoteCount,
			})
		}
		results.Questions = append(results.Questions, qr)
	}
	return results, nil
}

// statusFor evaluates the full flag set for one survey and requester,
// including the answered lookup for logged-in users.
func (s *surveyService) statusFor(survey *model.Survey, questionCount int, req access.Requester) (access.Status, error) {
	hasAnswered := false
	if survey.ID != 0 && req.Role.LoggedIn() {
		var err error
		hasAnswered, err = s.responseRepo.HasAnswered(survey.ID, req.UserID)
		if err != nil {
			log.Error().Err(err).Uint("surveyID", survey.ID).Uint("userID", req.UserID).
				Msg("Failed to look up answered record")
			return access.Status{}, fmt.Errorf("error checking answered state: %w", err)
		}
	}
	status, err := s.engine.Evaluate(access.StatusInput{
		Survey:        survey,
		QuestionCount: questionCount,
		Requester:     req,
		HasAnswered:   hasAnswered,
	})
	if err != nil {
		return access.Status{}, fmt.Errorf("error deriving survey status: %w", err)
	}
	return status, nil
}

func (s *surveyService) requireEditable(surveyID uint, req access.Requester) (*model.Survey, error) {
	survey, err := s.findWithQuestions(surveyID)
	if err != nil {
		return nil, err
	}
	status, err := s.statusFor(survey, len(survey.Questions), req)
	if err != nil {
		return nil, err
	}
	if !status.CanEdit {
		return nil, fmt.Errorf("role %s may not edit survey %d: %w", req.Role, surveyID, ErrPermissionDenied)
	}
	return survey, nil
}

func (s *surveyService) findWithQuestions(surveyID uint) (*model.Survey, error) {
	survey, err := s.surveyRepo.FindByIDWithQuestions(surveyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("survey %d: %w", surveyID, ErrNotFound)
		}
		log.Error().Err(err).Uint("surveyID", surveyID).Msg("Failed to load survey")
		return nil, fmt.Errorf("error loading survey %d: %w", surveyID, err)
	}
	return survey, nil
}

func (s *surveyService) toDetailDTO(survey *model.Survey, status access.Status) (*dto.SurveyDetailDTO, error) {
	detail := &dto.SurveyDetailDTO{
		ID:           survey.ID,
		Scope:        survey.Scope.String(),
		NodeID:       survey.NodeID,
		Title:        survey.Title,
		Body:         survey.Body,
		CreatorID:    survey.CreatorID,
		OpensAt:      survey.OpensAt,
		EndsAt:       survey.EndsAt,
		Hidden:       survey.Hidden,
		AllowedRoles: dto.MaskToRoles(survey.AllowedRoleMask),
		GroupIDs:     survey.GroupIDs(),
		Questions:    []dto.QuestionDTO{},
		Status:       status,
		CreatedAt:    survey.CreatedAt,
	}
	if err := copier.Copy(&detail.Questions, &survey.Questions); err != nil {
		log.Error().Err(err).Uint("surveyID", survey.ID).Msg("Failed to copy questions into DTO")
		return nil, fmt.Errorf("error preparing survey response: %w", err)
	}
	return detail, nil
}

// surveyFromPayload converts a create/update payload into a model and
// runs the structural survey invariants.
func surveyFromPayload(payload dto.SurveyCreateDTO) (*model.Survey, error) {
	scope, err := model.ParseScopeLevel(payload.Scope)
	if err != nil {
		return nil, validationErr(RuleBadSurveyShape, "%s", err)
	}
	mask, err := dto.RolesToMask(payload.AllowedRoles)
	if err != nil {
		return nil, validationErr(RuleBadSurveyShape, "%s", err)
	}
	survey := &model.Survey{
		Scope:           scope,
		NodeID:          payload.NodeID,
		Title:           payload.Title,
		Body:            payload.Body,
		OpensAt:         payload.OpensAt,
		EndsAt:          payload.EndsAt,
		Hidden:          payload.Hidden,
		AllowedRoleMask: mask,
	}
	for _, gid := range payload.GroupIDs {
		survey.Groups = append(survey.Groups, model.SurveyGroup{GroupID: gid})
	}
	if err := survey.Validate(); err != nil {
		return nil, validationErr(RuleBadSurveyShape, "%s", err)
	}
	return survey, nil
}
