package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hqanh/campoll/internal/controller"
	"github.com/hqanh/campoll/internal/dto"
	"github.com/hqanh/campoll/internal/service"
	"github.com/rs/zerolog/log"
)

type SurveyController struct {
	surveyService   service.SurveyService
	responseService service.ResponseService
}

func NewSurveyController(surveyService service.SurveyService, responseService service.ResponseService) *SurveyController {
	return &SurveyController{surveyService: surveyService, responseService: responseService}
}

// ListSurveys godoc
// @Summary List surveys eligible for the requester
// @Description Lists surveys across every hierarchy scope the requester can reach, with per-survey action flags.
// @Tags User - Surveys
// @Produce json
// @Param user_id query int false "Requester user ID"
// @Param role query string false "Requester role (default guest)"
// @Param country_id query int false "Selected country node"
// @Param institution_id query int false "Selected institution node"
// @Param centre_id query int false "Selected centre node"
// @Param degree_id query int false "Selected degree node"
// @Param course_id query int false "Selected course node"
// @Success 200 {array} dto.SurveySummaryDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid requester parameters"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /surveys [get]
func (c *SurveyController) ListSurveys(ctx *gin.Context) {
	req, err := controller.RequesterFromQuery(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	surveys, err := c.surveyService.ListEligibleSurveys(req)
	if err != nil {
		log.Error().Err(err).Msg("ListSurveys: service error")
		controller.RespondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, surveys)
}

// GetSurvey godoc
// @Summary Get one survey with questions and status flags
// @Tags User - Surveys
// @Produce json
// @Param survey_id path int true "Survey ID"
// @Param user_id query int false "Requester user ID"
// @Param role query string false "Requester role"
// @Success 200 {object} dto.SurveyDetailDTO
// @Failure 403 {object} dto.ErrorResponse "Survey not visible to requester"
// @Failure 404 {object} dto.ErrorResponse "Survey not found"
// @Router /surveys/{survey_id} [get]
func (c *SurveyController) GetSurvey(ctx *gin.Context) {
	surveyID, ok := controller.ParseIDParam(ctx, "survey_id")
	if !ok {
		return
	}
	req, err := controller.RequesterFromQuery(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	detail, err := c.surveyService.GetSurvey(surveyID, req)
	if err != nil {
		log.Warn().Err(err).Uint("surveyID", surveyID).Msg("GetSurvey: service error")
		controller.RespondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

// SubmitAnswers godoc
// @Summary Submit a response to a survey
// @Description Counts one vote per selected choice and records the requester as having answered. At most one submission per user and survey.
// @Tags User - Surveys
// @Accept json
// @Produce json
// @Param survey_id path int true "Survey ID"
// @Param user_id query int true "Requester user ID"
// @Param role query string true "Requester role"
// @Param selections body dto.SubmitAnswersDTO true "Selected choice indices per question"
// @Success 200 {object} dto.SubmitReceiptDTO
// @Failure 403 {object} dto.ErrorResponse "Requester may not answer this survey"
// @Failure 409 {object} dto.ErrorResponse "Requester already answered"
// @Router /surveys/{survey_id}/answers [post]
func (c *SurveyController) SubmitAnswers(ctx *gin.Context) {
	surveyID, ok := controller.ParseIDParam(ctx, "survey_id")
	if !ok {
		return
	}
	req, err := controller.RequesterFromQuery(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	var payload dto.SubmitAnswersDTO
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		log.Warn().Err(err).Msg("SubmitAnswers: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	receipt, err := c.responseService.SubmitAnswers(surveyID, req, payload)
	if err != nil {
		log.Warn().Err(err).Uint("surveyID", surveyID).Uint("userID", req.UserID).Msg("SubmitAnswers: service error")
		controller.RespondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, receipt)
}

// GetResults godoc
// @Summary Get aggregated vote tallies of a survey
// @Tags User - Surveys
// @Produce json
// @Param survey_id path int true "Survey ID"
// @Param user_id query int false "Requester user ID"
// @Param role query string false "Requester role"
// @Success 200 {object} dto.SurveyResultsDTO
// @Failure 403 {object} dto.ErrorResponse "Results not viewable by requester"
// @Failure 404 {object} dto.ErrorResponse "Survey not found"
// @Router /surveys/{survey_id}/results [get]
func (c *SurveyController) GetResults(ctx *gin.Context) {
	surveyID, ok := controller.ParseIDParam(ctx, "survey_id")
	if !ok {
		return
	}
	req, err := controller.RequesterFromQuery(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	results, err := c.surveyService.GetResults(surveyID, req)
	if err != nil {
		log.Warn().Err(err).Uint("surveyID", surveyID).Msg("GetResults: service error")
		controller.RespondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, results)
}
