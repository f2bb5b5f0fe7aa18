package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hqanh/campoll/internal/controller"
	"github.com/hqanh/campoll/internal/dto"
	"github.com/hqanh/campoll/internal/service"
	"github.com/rs/zerolog/log"
)

type SurveyAdminController struct {
	surveyService   service.SurveyService
	questionService service.QuestionService
}

func NewSurveyAdminController(surveyService service.SurveyService, questionService service.QuestionService) *SurveyAdminController {
	return &SurveyAdminController{surveyService: surveyService, questionService: questionService}
}

// CreateSurvey godoc
// @Summary (Admin) Create a survey
// @Description Creates a survey at one hierarchy scope. The requester's role must hold editing authority at that scope.
// @Tags Admin - Surveys
// @Accept json
// @Produce json
// @Param user_id query int true "Requester user ID"
// @Param role query string true "Requester role"
// @Param survey body dto.SurveyCreateDTO true "Survey data"
// @Success 201 {object} dto.SurveyDetailDTO
// @Failure 403 {object} dto.ErrorResponse "No editing authority at this scope"
// @Failure 422 {object} dto.ErrorResponse "Structural validation failed"
// @Router /admin/surveys [post]
func (c *SurveyAdminController) CreateSurvey(ctx *gin.Context) {
	req, err := controller.RequesterFromQuery(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	var payload dto.SurveyCreateDTO
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		log.Warn().Err(err).Msg("Admin CreateSurvey: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	detail, err := c.surveyService.CreateSurvey(req, payload)
	if err != nil {
		log.Error().Err(err).Msg("Admin CreateSurvey: service error")
		controller.RespondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, detail)
}

// UpdateSurvey godoc
// @Summary (Admin) Update a survey's metadata and group restriction
// @Tags Admin - Surveys
// @Accept json
// @Produce json
// @Param survey_id path int true "Survey ID"
// @Param user_id query int true "Requester user ID"
// @Param role query string true "Requester role"
// @Param survey body dto.SurveyUpdateDTO true "Replacement survey data"
// @Success 200 {object} dto.SurveyDetailDTO
// @Failure 403 {object} dto.ErrorResponse "Requester may not edit this survey"
// @Failure 404 {object} dto.ErrorResponse "Survey not found"
// @Router /admin/surveys/{survey_id} [put]
func (c *SurveyAdminController) UpdateSurvey(ctx *gin.Context) {
	surveyID, ok := controller.ParseIDParam(ctx, "survey_id")
	if !ok {
		return
	}
	req, err := controller.RequesterFromQuery(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	var payload dto.SurveyUpdateDTO
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		log.Warn().Err(err).Msg("Admin UpdateSurvey: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	detail, err := c.surveyService.UpdateSurvey(surveyID, req, payload)
	if err != nil {
		log.Error().Err(err).Uint("surveyID", surveyID).Msg("Admin UpdateSurvey: service error")
		controller.RespondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

// DeleteSurvey godoc
// @Summary (Admin) Delete a survey and everything it owns
// @Tags Admin - Surveys
// @Produce json
// @Param survey_id path int true "Survey ID"
// @Param user_id query int true "Requester user ID"
// @Param role query string true "Requester role"
// @Success 204 "Survey deleted"
// @Failure 403 {object} dto.ErrorResponse "Requester may not edit this survey"
// @Failure 404 {object} dto.ErrorResponse "Survey not found"
// @Router /admin/surveys/{survey_id} [delete]
func (c *SurveyAdminController) DeleteSurvey(ctx *gin.Context) {
	surveyID, ok := controller.ParseIDParam(ctx, "survey_id")
	if !ok {
		return
	}
	req, err := controller.RequesterFromQuery(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	if err := c.surveyService.DeleteSurvey(surveyID, req); err != nil {
		log.Error().Err(err).Uint("surveyID", surveyID).Msg("Admin DeleteSurvey: service error")
		controller.RespondServiceError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// ResetSurvey godoc
// @Summary (Admin) Reset a survey's votes and answered records
// @Description Zeroes every choice tally and forgets who answered; questions and choices stay.
// @Tags Admin - Surveys
// @Produce json
// @Param survey_id path int true "Survey ID"
// @Param user_id query int true "Requester user ID"
// @Param role query string true "Requester role"
// @Success 204 "Survey reset"
// @Failure 403 {object} dto.ErrorResponse "Requester may not edit this survey"
// @Router /admin/surveys/{survey_id}/reset [post]
func (c *SurveyAdminController) ResetSurvey(ctx *gin.Context) {
	surveyID, ok := controller.ParseIDParam(ctx, "survey_id")
	if !ok {
		return
	}
	req, err := controller.RequesterFromQuery(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	if err := c.surveyService.ResetSurvey(surveyID, req); err != nil {
		log.Error().Err(err).Uint("surveyID", surveyID).Msg("Admin ResetSurvey: service error")
		controller.RespondServiceError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// AddQuestion godoc
// @Summary (Admin) Append a question to a survey
// @Description Validates the stem and choice slots, then appends with the next contiguous index.
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Param survey_id path int true "Survey ID"
// @Param user_id query int true "Requester user ID"
// @Param role query string true "Requester role"
// @Param question body dto.QuestionEditDTO true "Question data"
// @Success 201 {object} dto.QuestionDTO
// @Failure 422 {object} dto.ErrorResponse "Structural validation failed"
// @Router /admin/surveys/{survey_id}/questions [post]
func (c *SurveyAdminController) AddQuestion(ctx *gin.Context) {
	c.upsertQuestion(ctx, 0)
}

// UpdateQuestion godoc
// @Summary (Admin) Replace an existing question in place
// @Description Keeps the question's index; replaces stem, answer type and choices. Kept choices retain their vote counts.
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Param survey_id path int true "Survey ID"
// @Param question_id path int true "Question ID"
// @Param user_id query int true "Requester user ID"
// @Param role query string true "Requester role"
// @Param question body dto.QuestionEditDTO true "Replacement question data"
// @Success 200 {object} dto.QuestionDTO
// @Failure 404 {object} dto.ErrorResponse "Question not found in this survey"
// @Failure 422 {object} dto.ErrorResponse "Structural validation failed"
// @Router /admin/surveys/{survey_id}/questions/{question_id} [put]
func (c *SurveyAdminController) UpdateQuestion(ctx *gin.Context) {
	questionID, ok := controller.ParseIDParam(ctx, "question_id")
	if !ok {
		return
	}
	c.upsertQuestion(ctx, questionID)
}

func (c *SurveyAdminController) upsertQuestion(ctx *gin.Context, questionID uint) {
	surveyID, ok := controller.ParseIDParam(ctx, "survey_id")
	if !ok {
		return
	}
	req, err := controller.RequesterFromQuery(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	var payload dto.QuestionEditDTO
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		log.Warn().Err(err).Msg("Admin upsertQuestion: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	question, err := c.questionService.AddOrUpdateQuestion(surveyID, questionID, req, payload)
	if err != nil {
		log.Error().Err(err).Uint("surveyID", surveyID).Uint("questionID", questionID).
			Msg("Admin upsertQuestion: service error")
		controller.RespondServiceError(ctx, err)
		return
	}
	if questionID == 0 {
		ctx.JSON(http.StatusCreated, question)
		return
	}
	ctx.JSON(http.StatusOK, question)
}

// RemoveQuestion godoc
// @Summary (Admin) Remove a question and compact indices
// @Description Deletes the question with its choices and shifts every higher-indexed question down by one.
// @Tags Admin - Questions
// @Produce json
// @Param survey_id path int true "Survey ID"
// @Param question_id path int true "Question ID"
// @Param user_id query int true "Requester user ID"
// @Param role query string true "Requester role"
// @Success 204 "Question removed"
// @Failure 404 {object} dto.ErrorResponse "Question not found in this survey"
// @Router /admin/surveys/{survey_id}/questions/{question_id} [delete]
func (c *SurveyAdminController) RemoveQuestion(ctx *gin.Context) {
	surveyID, ok := controller.ParseIDParam(ctx, "survey_id")
	if !ok {
		return
	}
	questionID, ok := controller.ParseIDParam(ctx, "question_id")
	if !ok {
		return
	}
	req, err := controller.RequesterFromQuery(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	if err := c.questionService.RemoveQuestion(surveyID, questionID, req); err != nil {
		log.Error().Err(err).Uint("surveyID", surveyID).Uint("questionID", questionID).
			Msg("Admin RemoveQuestion: service error")
		controller.RespondServiceError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
