package access

import (
	"fmt"

	"github.com/hqanh/campoll/internal/model"
)

// ScopeSet is a bitset over the six hierarchy levels.
type ScopeSet uint8

func NewScopeSet(levels ...model.ScopeLevel) ScopeSet {
	var s ScopeSet
	for _, l := range levels {
		s = s.With(l)
	}
	return s
}

func (s ScopeSet) With(l model.ScopeLevel) ScopeSet {
	if !l.Valid() {
		return s
	}
	return s | 1<<uint(l)
}

func (s ScopeSet) Has(l model.ScopeLevel) bool {
	return l.Valid() && s&(1<<uint(l)) != 0
}

func (s ScopeSet) Levels() []model.ScopeLevel {
	var levels []model.ScopeLevel
	for l := model.ScopeSystem; l <= model.ScopeCourse; l++ {
		if s.Has(l) {
			levels = append(levels, l)
		}
	}
	return levels
}

func (s ScopeSet) String() string {
	return fmt.Sprintf("%v", s.Levels())
}

// Scopes is the resolver's output: the levels a listing query may touch
// and the subset where hidden surveys are also visible.
type Scopes struct {
	Allowed       ScopeSet
	HiddenVisible ScopeSet
}

// Resolve expands the requester's reach level by level, broadest first.
// A level is reachable only when every broader level already was, so
// Allowed is always prefix-closed from System downward.
func (e *Engine) Resolve(req Requester) (Scopes, error) {
	var s Scopes

	if req.Role == model.RoleUnknown {
		return s, nil
	}
	s.Allowed = s.Allowed.With(model.ScopeSystem)
	if req.Role == model.RoleGuest {
		return s, nil
	}
	if req.Role == model.RoleSystemAdmin {
		s.HiddenVisible = s.HiddenVisible.With(model.ScopeSystem)
	}

	for level := model.ScopeCountry; level <= model.ScopeCourse; level++ {
		reached, err := e.levelReached(req, level)
		if err != nil {
			return Scopes{}, err
		}
		if !reached {
			break
		}
		s.Allowed = s.Allowed.With(level)
		if e.hiddenVisibleAt(req.Role, level) {
			s.HiddenVisible = s.HiddenVisible.With(level)
		}
	}
	return s, nil
}

func (e *Engine) levelReached(req Requester, level model.ScopeLevel) (bool, error) {
	switch req.Role {
	case model.RoleUnaffiliated, model.RoleStudent, model.RoleNonEditingTeacher, model.RoleTeacher:
		node := req.Context.NodeAt(level)
		if node == 0 {
			return false, nil
		}
		ok, err := e.dir.BelongsTo(level, node, req.UserID)
		if err != nil {
			return false, fmt.Errorf("membership lookup at %s: %w", level, err)
		}
		return ok, nil

	case model.RoleDegreeAdmin, model.RoleCentreAdmin, model.RoleInstitutionAdmin:
		home, _ := model.AdminHomeLevel(req.Role)
		if level > home {
			return false, nil
		}
		// The admin's own level always counts as selected: these roles
		// operate with their node implicitly in context.
		return level == home || req.Context.NodeAt(level) != 0, nil

	case model.RoleSystemAdmin:
		return req.Context.NodeAt(level) != 0, nil
	}
	return false, nil
}

func (e *Engine) hiddenVisibleAt(role model.Role, level model.ScopeLevel) bool {
	switch role {
	case model.RoleSystemAdmin:
		return true
	case model.RoleTeacher, model.RoleNonEditingTeacher:
		return level == model.ScopeCourse
	case model.RoleDegreeAdmin, model.RoleCentreAdmin, model.RoleInstitutionAdmin:
		home, _ := model.AdminHomeLevel(role)
		return level == home
	}
	return false
}
