package model

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Survey struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	Scope           ScopeLevel     `json:"scope" gorm:"not null;index"`
	NodeID          uint           `json:"node_id" gorm:"index"` // 0 for system scope
	Title           string         `json:"title" gorm:"not null"`
	Body            string         `json:"body" gorm:"type:text"`
	CreatorID       uint           `json:"creator_id" gorm:"not null;index"`
	OpensAt         time.Time      `json:"opens_at" gorm:"not null"`
	EndsAt          time.Time      `json:"ends_at" gorm:"not null"`
	Hidden          bool           `json:"hidden" gorm:"not null;default:false"`
	AllowedRoleMask RoleMask       `json:"allowed_role_mask" gorm:"not null"`
	NotifCount      uint           `json:"notif_count" gorm:"not null;default:0"`
	Questions       []Question     `json:"questions,omitempty" gorm:"foreignKey:SurveyID"`
	Groups          []SurveyGroup  `json:"groups,omitempty" gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// SurveyGroup narrows a course-scope survey's audience to one group.
// An empty set on a survey means unrestricted.
type SurveyGroup struct {
	SurveyID uint `json:"survey_id" gorm:"primarykey;autoIncrement:false"`
	GroupID  uint `json:"group_id" gorm:"primarykey;autoIncrement:false"`
}

// Validate enforces the structural invariants that hold for every
// persisted survey regardless of who edits it.
func (s *Survey) Validate() error {
	if !s.Scope.Valid() {
		return fmt.Errorf("invalid scope level %d", int(s.Scope))
	}
	if s.Scope == ScopeSystem && s.NodeID != 0 {
		return fmt.Errorf("system-scope survey must not reference a node")
	}
	if s.Scope != ScopeSystem && s.NodeID == 0 {
		return fmt.Errorf("%s-scope survey requires a node id", s.Scope)
	}
	if !s.EndsAt.After(s.OpensAt) {
		return fmt.Errorf("survey close time must be after open time")
	}
	if len(s.Groups) > 0 && s.Scope != ScopeCourse {
		return fmt.Errorf("group restriction is only valid at course scope")
	}
	return nil
}

// GroupIDs returns the restriction set as plain ids.
func (s *Survey) GroupIDs() []uint {
	ids := make([]uint, 0, len(s.Groups))
	for _, g := range s.Groups {
		ids = append(ids, g.GroupID)
	}
	return ids
}
