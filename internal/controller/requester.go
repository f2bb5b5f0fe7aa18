package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hqanh/campoll/internal/access"
	"github.com/hqanh/campoll/internal/dto"
	"github.com/hqanh/campoll/internal/model"
	"github.com/hqanh/campoll/internal/service"
)

// contextParams maps the ambient hierarchy context query parameters to
// their levels. System has no node, so it carries no parameter.
var contextParams = map[string]model.ScopeLevel{
	"country_id":     model.ScopeCountry,
	"institution_id": model.ScopeInstitution,
	"centre_id":      model.ScopeCentre,
	"degree_id":      model.ScopeDegree,
	"course_id":      model.ScopeCourse,
}

// RequesterFromQuery builds the explicit requester identity from query
// parameters: user_id, role and the selected node at each level.
func RequesterFromQuery(ctx *gin.Context) (access.Requester, error) {
	var req access.Requester

	role, err := model.ParseRole(ctx.DefaultQuery("role", model.RoleGuest.String()))
	if err != nil {
		return req, err
	}
	req.Role = role

	if userIDStr := ctx.Query("user_id"); userIDStr != "" {
		val, err := strconv.ParseUint(userIDStr, 10, 32)
		if err != nil {
			return req, fmt.Errorf("invalid user_id %q", userIDStr)
		}
		req.UserID = uint(val)
	}
	if req.Role.LoggedIn() && req.UserID == 0 {
		return req, fmt.Errorf("role %s requires a user_id", req.Role)
	}

	for param, level := range contextParams {
		raw := ctx.Query(param)
		if raw == "" {
			continue
		}
		val, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return req, fmt.Errorf("invalid %s %q", param, raw)
		}
		req.Context[level] = uint(val)
	}
	return req, nil
}

// ParseIDParam reads one numeric path parameter.
func ParseIDParam(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: fmt.Sprintf("Invalid %s format", name)})
		return 0, false
	}
	return uint(val), true
}

// RespondServiceError maps the service error kinds onto HTTP statuses.
func RespondServiceError(ctx *gin.Context, err error) {
	var validation *service.ValidationError
	switch {
	case errors.Is(err, service.ErrNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrPermissionDenied):
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrAlreadyAnswered):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
	case errors.As(err, &validation):
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
			Message: "Validation failed",
			Details: []string{validation.Rule, validation.Detail},
		})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error", Details: []string{err.Error()}})
	}
}
