// Package access computes who may list, answer, edit and inspect
// surveys. Everything in it is a pure function over explicit arguments
// plus the injected directory and clock collaborators; nothing here
// touches storage or carries state between requests.
package access

import (
	"time"

	"github.com/hqanh/campoll/internal/model"
)

// MembershipDirectory answers whether a user belongs to one concrete
// node of the hierarchy. Each level is checked independently; belonging
// to a course implies nothing about its degree.
type MembershipDirectory interface {
	BelongsTo(level model.ScopeLevel, nodeID, userID uint) (bool, error)
}

// GroupDirectory resolves a user's groups inside one course.
type GroupDirectory interface {
	UserGroupsInCourse(courseID, userID uint) ([]uint, error)
}

// Clock is injected so the open-window derivation is testable.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ContextNodes is the ambient hierarchy context of a request: the node
// currently selected at each level, 0 where nothing is selected.
type ContextNodes [model.NumScopeLevels]uint

func (c ContextNodes) NodeAt(level model.ScopeLevel) uint {
	if !level.Valid() {
		return 0
	}
	return c[level]
}

// Requester bundles the identity facts every decision needs.
type Requester struct {
	UserID  uint
	Role    model.Role
	Context ContextNodes
}
