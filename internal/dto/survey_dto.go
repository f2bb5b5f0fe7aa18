package dto

import (
	"fmt"
	"time"

	"github.com/hqanh/campoll/internal/access"
	"github.com/hqanh/campoll/internal/model"
)

// SurveyCreateDTO is the admin payload for creating a survey. Roles and
// the scope travel as names; conversion to the stored mask/level happens
// here so controllers and services share one mapping.
type SurveyCreateDTO struct {
	Scope        string    `json:"scope" binding:"required"`
	NodeID       uint      `json:"node_id"`
	Title        string    `json:"title" binding:"required"`
	Body         string    `json:"body"`
	OpensAt      time.Time `json:"opens_at" binding:"required"`
	EndsAt       time.Time `json:"ends_at" binding:"required"`
	Hidden       bool      `json:"hidden"`
	AllowedRoles []string  `json:"allowed_roles" binding:"required,min=1"`
	GroupIDs     []uint    `json:"group_ids"`
}

// SurveyUpdateDTO carries the same shape for full replacement of a
// survey's metadata.
type SurveyUpdateDTO = SurveyCreateDTO

// SurveySummaryDTO is one row of an eligible-surveys listing, with the
// requester's derived action flags attached.
type SurveySummaryDTO struct {
	ID            uint          `json:"id"`
	Scope         string        `json:"scope"`
	NodeID        uint          `json:"node_id,omitempty"`
	Title         string        `json:"title"`
	OpensAt       time.Time     `json:"opens_at"`
	EndsAt        time.Time     `json:"ends_at"`
	Hidden        bool          `json:"hidden"`
	QuestionCount int           `json:"question_count"`
	Status        access.Status `json:"status"`
}

// SurveyDetailDTO is the full survey view for a requester, questions
// included.
type SurveyDetailDTO struct {
	ID           uint          `json:"id"`
	Scope        string        `json:"scope"`
	NodeID       uint          `json:"node_id,omitempty"`
	Title        string        `json:"title"`
	Body         string        `json:"body,omitempty"`
	CreatorID    uint          `json:"creator_id"`
	OpensAt      time.Time     `json:"opens_at"`
	EndsAt       time.Time     `json:"ends_at"`
	Hidden       bool          `json:"hidden"`
	AllowedRoles []string      `json:"allowed_roles"`
	GroupIDs     []uint        `json:"group_ids,omitempty"`
	Questions    []QuestionDTO `json:"questions"`
	Status       access.Status `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
}

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// RolesToMask converts role names from a payload into the stored bitset.
func RolesToMask(names []string) (model.RoleMask, error) {
	var mask model.RoleMask
	for _, name := range names {
		role, err := model.ParseRole(name)
		if err != nil {
			return 0, fmt.Errorf("allowed_roles: %w", err)
		}
		mask = mask.With(role)
	}
	return mask, nil
}

// MaskToRoles expands a stored mask back into role names.
func MaskToRoles(mask model.RoleMask) []string {
	roles := mask.Roles()
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.String())
	}
	return names
}
