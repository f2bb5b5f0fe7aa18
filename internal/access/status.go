package access

import (
	"fmt"

	"github.com/hqanh/campoll/internal/model"
)

// Engine derives per-request permissions. It holds only its injected
// collaborators and is safe for concurrent use.
type Engine struct {
	dir    MembershipDirectory
	groups GroupDirectory
	clock  Clock
}

func NewEngine(dir MembershipDirectory, groups GroupDirectory, clock Clock) *Engine {
	return &Engine{dir: dir, groups: groups, clock: clock}
}

// StatusInput carries one survey plus the requester facts the
// derivation needs. QuestionCount is explicit because listings obtain
// it from a count subquery without preloading questions.
type StatusInput struct {
	Survey        *model.Survey
	QuestionCount int
	Requester     Requester
	HasAnswered   bool
}

// Status is the full set of derived flags for one (survey, requester)
// pair. All of it is request-time only; none of it is ever persisted.
type Status struct {
	Visible        bool `json:"visible"`
	Open           bool `json:"open"`
	RoleEligible   bool `json:"role_eligible"`
	ScopeMember    bool `json:"scope_member"`
	HasAnswered    bool `json:"has_answered"`
	QuestionCount  int  `json:"question_count"`
	CanAnswer      bool `json:"can_answer"`
	CanEdit        bool `json:"can_edit"`
	CanViewResults bool `json:"can_view_results"`
}

// Evaluate derives every status flag for one survey and requester.
func (e *Engine) Evaluate(in StatusInput) (Status, error) {
	survey := in.Survey
	req := in.Requester

	scopes, err := e.Resolve(req)
	if err != nil {
		return Status{}, err
	}

	member, err := e.scopeMember(survey, req)
	if err != nil {
		return Status{}, err
	}

	now := e.clock.Now()
	st := Status{
		Visible:       !survey.Hidden || scopes.HiddenVisible.Has(survey.Scope),
		Open:          !now.Before(survey.OpensAt) && now.Before(survey.EndsAt),
		RoleEligible:  survey.AllowedRoleMask.Has(req.Role),
		ScopeMember:   member,
		HasAnswered:   in.HasAnswered,
		QuestionCount: in.QuestionCount,
	}

	st.CanAnswer = st.QuestionCount > 0 &&
		st.Visible && st.Open && st.RoleEligible && st.ScopeMember && !st.HasAnswered

	st.CanEdit = e.canEdit(survey, req.Role, member)
	st.CanViewResults = e.canViewResults(survey, req.Role, st)

	return st, nil
}

// scopeMember checks membership of the survey's exact node. Course
// scope additionally applies the survey's group restriction.
func (e *Engine) scopeMember(survey *model.Survey, req Requester) (bool, error) {
	switch survey.Scope {
	case model.ScopeSystem:
		return req.Role.LoggedIn(), nil

	case model.ScopeCountry, model.ScopeInstitution, model.ScopeCentre, model.ScopeDegree:
		ok, err := e.dir.BelongsTo(survey.Scope, survey.NodeID, req.UserID)
		if err != nil {
			return false, fmt.Errorf("membership lookup at %s: %w", survey.Scope, err)
		}
		return ok, nil

	case model.ScopeCourse:
		ok, err := e.dir.BelongsTo(model.ScopeCourse, survey.NodeID, req.UserID)
		if err != nil {
			return false, fmt.Errorf("membership lookup at course: %w", err)
		}
		if !ok {
			return false, nil
		}
		if len(survey.Groups) == 0 {
			return true, nil
		}
		userGroups, err := e.groups.UserGroupsInCourse(survey.NodeID, req.UserID)
		if err != nil {
			return false, fmt.Errorf("group lookup in course %d: %w", survey.NodeID, err)
		}
		restricted := make(map[uint]struct{}, len(survey.Groups))
		for _, g := range survey.Groups {
			restricted[g.GroupID] = struct{}{}
		}
		for _, g := range userGroups {
			if _, hit := restricted[g]; hit {
				return true, nil
			}
		}
		return false, nil
	}
	return false, nil
}

// canEdit: rank must allow editing at the survey's level, and the
// requester must belong to that exact node. Scope admins implicitly
// administer their home node; SystemAdmin edits anywhere.
func (e *Engine) canEdit(survey *model.Survey, role model.Role, member bool) bool {
	if !model.RoleRankAllowsEditingAt(role, survey.Scope) {
		return false
	}
	if role == model.RoleTeacher {
		return member
	}
	return true
}

// resultScopeViewable bounds the span each role may inspect: a scope
// admin sees results at its home level and every broader one.
func resultScopeViewable(role model.Role, scope model.ScopeLevel) bool {
	switch role {
	case model.RoleDegreeAdmin, model.RoleCentreAdmin, model.RoleInstitutionAdmin:
		home, _ := model.AdminHomeLevel(role)
		return scope <= home
	case model.RoleStudent, model.RoleNonEditingTeacher, model.RoleTeacher, model.RoleSystemAdmin:
		return true
	}
	return false
}

func (e *Engine) canViewResults(survey *model.Survey, role model.Role, st Status) bool {
	if st.QuestionCount == 0 || !resultScopeViewable(role, survey.Scope) {
		return false
	}
	switch role {
	case model.RoleStudent:
		// Same gate as answering, with the answered flag inverted: a
		// student sees results only after responding.
		return st.Visible && st.Open && st.RoleEligible && st.ScopeMember && st.HasAnswered
	case model.RoleNonEditingTeacher, model.RoleTeacher,
		model.RoleDegreeAdmin, model.RoleCentreAdmin, model.RoleInstitutionAdmin:
		return !st.CanAnswer
	case model.RoleSystemAdmin:
		return true
	}
	return false
}
