package access

import (
	"testing"
	"time"

	"github.com/hqanh/campoll/internal/model"
)

var statusNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func openCourseSurvey(mask model.RoleMask) *model.Survey {
	return &model.Survey{
		ID:              1,
		Scope:           model.ScopeCourse,
		NodeID:          1,
		OpensAt:         statusNow.Add(-time.Hour),
		EndsAt:          statusNow.Add(time.Hour),
		AllowedRoleMask: mask,
	}
}

func evaluate(t *testing.T, e *Engine, in StatusInput) Status {
	t.Helper()
	st, err := e.Evaluate(in)
	if err != nil {
		t.Fatal(err)
	}
	return st
}

func TestVisibleForEveryRoleWhenNotHidden(t *testing.T) {
	e := newTestEngine(nil, statusNow)
	survey := openCourseSurvey(model.NewRoleMask(model.RoleStudent))

	for role := model.RoleUnknown; role < model.NumRoles; role++ {
		st := evaluate(t, e, StatusInput{Survey: survey, QuestionCount: 1,
			Requester: Requester{UserID: 7, Role: role}})
		if !st.Visible {
			t.Errorf("role %s: non-hidden survey must be visible", role)
		}
	}
}

func TestHiddenSurveyVisibility(t *testing.T) {
	dir := &stubDirectory{members: fullChain(3)}
	e := newTestEngine(dir, statusNow)

	survey := openCourseSurvey(model.NewRoleMask(model.RoleStudent))
	survey.Hidden = true

	st := evaluate(t, e, StatusInput{Survey: survey, QuestionCount: 1,
		Requester: Requester{UserID: 3, Role: model.RoleStudent, Context: fullContext()}})
	if st.Visible {
		t.Error("hidden course survey must not be visible to a student")
	}

	st = evaluate(t, e, StatusInput{Survey: survey, QuestionCount: 1,
		Requester: Requester{UserID: 3, Role: model.RoleTeacher, Context: fullContext()}})
	if !st.Visible {
		t.Error("hidden course survey should be visible to a teacher of the course")
	}
}

func TestOpenWindow(t *testing.T) {
	dir := &stubDirectory{members: fullChain(7)}
	survey := openCourseSurvey(model.NewRoleMask(model.RoleStudent))
	req := Requester{UserID: 7, Role: model.RoleStudent, Context: fullContext()}

	cases := []struct {
		name string
		now  time.Time
		open bool
	}{
		{"before opening", survey.OpensAt.Add(-time.Second), false},
		{"at opening", survey.OpensAt, true},
		{"inside window", statusNow, true},
		{"at closing", survey.EndsAt, false},
		{"after closing", survey.EndsAt.Add(time.Second), false},
	}
	for _, tc := range cases {
		e := newTestEngine(dir, tc.now)
		st := evaluate(t, e, StatusInput{Survey: survey, QuestionCount: 1, Requester: req})
		if st.Open != tc.open {
			t.Errorf("%s: open=%v, want %v", tc.name, st.Open, tc.open)
		}
		if st.CanAnswer != tc.open {
			t.Errorf("%s: canAnswer=%v, want %v", tc.name, st.CanAnswer, tc.open)
		}
	}
}

func TestNoQuestionsNothingToAnswerOrView(t *testing.T) {
	dir := &stubDirectory{members: fullChain(7)}
	e := newTestEngine(dir, statusNow)
	survey := openCourseSurvey(model.NewRoleMask(model.RoleStudent, model.RoleSystemAdmin))

	for _, role := range []model.Role{model.RoleStudent, model.RoleTeacher, model.RoleSystemAdmin} {
		st := evaluate(t, e, StatusInput{Survey: survey, QuestionCount: 0,
			Requester: Requester{UserID: 7, Role: role, Context: fullContext()}, HasAnswered: true})
		if st.CanAnswer {
			t.Errorf("role %s: empty survey must not be answerable", role)
		}
		if st.CanViewResults {
			t.Errorf("role %s: empty survey must not expose results", role)
		}
	}
}

func TestRoleEligibility(t *testing.T) {
	dir := &stubDirectory{members: fullChain(7)}
	e := newTestEngine(dir, statusNow)
	survey := openCourseSurvey(model.NewRoleMask(model.RoleStudent))

	st := evaluate(t, e, StatusInput{Survey: survey, QuestionCount: 2,
		Requester: Requester{UserID: 7, Role: model.RoleTeacher, Context: fullContext()}})
	if st.RoleEligible || st.CanAnswer {
		t.Error("teacher is not in the allowed role mask and must not answer")
	}
}

func TestGroupRestriction(t *testing.T) {
	dir := &stubDirectory{
		members: fullChain(7),
		groups:  map[uint][]uint{1: {20}},
	}
	e := newTestEngine(dir, statusNow)

	survey := openCourseSurvey(model.NewRoleMask(model.RoleStudent))
	survey.Groups = []model.SurveyGroup{{SurveyID: 1, GroupID: 10}, {SurveyID: 1, GroupID: 11}}

	req := Requester{UserID: 7, Role: model.RoleStudent, Context: fullContext()}
	st := evaluate(t, e, StatusInput{Survey: survey, QuestionCount: 1, Requester: req})
	if st.ScopeMember || st.CanAnswer {
		t.Error("student outside every restricted group must not be a scope member")
	}

	dir.groups[1] = []uint{11, 20}
	st = evaluate(t, e, StatusInput{Survey: survey, QuestionCount: 1, Requester: req})
	if !st.ScopeMember || !st.CanAnswer {
		t.Error("student in one restricted group should be a scope member")
	}

	survey.Groups = nil
	dir.groups[1] = nil
	st = evaluate(t, e, StatusInput{Survey: survey, QuestionCount: 1, Requester: req})
	if !st.ScopeMember {
		t.Error("unrestricted course survey: course membership should suffice")
	}
}

func TestSystemScopeMembership(t *testing.T) {
	e := newTestEngine(nil, statusNow)
	survey := &model.Survey{
		ID:              2,
		Scope:           model.ScopeSystem,
		OpensAt:         statusNow.Add(-time.Hour),
		EndsAt:          statusNow.Add(time.Hour),
		AllowedRoleMask: model.NewRoleMask(model.RoleStudent, model.RoleGuest),
	}

	st := evaluate(t, e, StatusInput{Survey: survey, QuestionCount: 1,
		Requester: Requester{UserID: 7, Role: model.RoleStudent}})
	if !st.ScopeMember || !st.CanAnswer {
		t.Error("any logged-in user is a member at system scope")
	}

	st = evaluate(t, e, StatusInput{Survey: survey, QuestionCount: 1,
		Requester: Requester{Role: model.RoleGuest}})
	if st.ScopeMember || st.CanAnswer {
		t.Error("guests are not members at system scope")
	}
}

func TestCanEdit(t *testing.T) {
	dir := &stubDirectory{members: fullChain(3)}
	e := newTestEngine(dir, statusNow)

	courseSurvey := openCourseSurvey(model.NewRoleMask(model.RoleStudent))
	centreSurvey := &model.Survey{
		ID: 3, Scope: model.ScopeCentre, NodeID: 1,
		OpensAt: statusNow.Add(-time.Hour), EndsAt: statusNow.Add(time.Hour),
		AllowedRoleMask: model.NewRoleMask(model.RoleStudent),
	}

	cases := []struct {
		name    string
		survey  *model.Survey
		user    uint
		role    model.Role
		canEdit bool
	}{
		{"teacher of the course", courseSurvey, 3, model.RoleTeacher, true},
		{"teacher of another course", courseSurvey, 99, model.RoleTeacher, false},
		{"non-editing teacher", courseSurvey, 3, model.RoleNonEditingTeacher, false},
		{"student", courseSurvey, 3, model.RoleStudent, false},
		{"centre admin at centre scope", centreSurvey, 9, model.RoleCentreAdmin, true},
		{"centre admin at course scope", courseSurvey, 9, model.RoleCentreAdmin, false},
		{"system admin at course scope", courseSurvey, 9, model.RoleSystemAdmin, true},
		{"system admin at centre scope", centreSurvey, 9, model.RoleSystemAdmin, true},
	}
	for _, tc := range cases {
		st := evaluate(t, e, StatusInput{Survey: tc.survey, QuestionCount: 1,
			Requester: Requester{UserID: tc.user, Role: tc.role, Context: fullContext()}})
		if st.CanEdit != tc.canEdit {
			t.Errorf("%s: canEdit=%v, want %v", tc.name, st.CanEdit, tc.canEdit)
		}
	}
}

func TestStudentResultsRequireAnswering(t *testing.T) {
	dir := &stubDirectory{members: fullChain(7)}
	e := newTestEngine(dir, statusNow)
	survey := openCourseSurvey(model.NewRoleMask(model.RoleStudent))
	req := Requester{UserID: 7, Role: model.RoleStudent, Context: fullContext()}

	st := evaluate(t, e, StatusInput{Survey: survey, QuestionCount: 2, Requester: req})
	if !st.CanAnswer || st.CanViewResults {
		t.Errorf("before answering: canAnswer=%v canViewResults=%v, want true/false", st.CanAnswer, st.CanViewResults)
	}

	st = evaluate(t, e, StatusInput{Survey: survey, QuestionCount: 2, Requester: req, HasAnswered: true})
	if st.CanAnswer || !st.CanViewResults {
		t.Errorf("after answering: canAnswer=%v canViewResults=%v, want false/true", st.CanAnswer, st.CanViewResults)
	}
}

func TestTeacherResultsWhenNotAnswerable(t *testing.T) {
	dir := &stubDirectory{members: fullChain(3)}
	e := newTestEngine(dir, statusNow)

	// Teacher is not in the allowed mask, so CanAnswer is false and
	// results open up.
	survey := openCourseSurvey(model.NewRoleMask(model.RoleStudent))
	st := evaluate(t, e, StatusInput{Survey: survey, QuestionCount: 2,
		Requester: Requester{UserID: 3, Role: model.RoleTeacher, Context: fullContext()}})
	if st.CanAnswer || !st.CanViewResults {
		t.Errorf("teacher: canAnswer=%v canViewResults=%v, want false/true", st.CanAnswer, st.CanViewResults)
	}

	// Teacher eligible to answer an open survey: results stay closed
	// until the survey stops being answerable for them.
	survey = openCourseSurvey(model.NewRoleMask(model.RoleTeacher))
	st = evaluate(t, e, StatusInput{Survey: survey, QuestionCount: 2,
		Requester: Requester{UserID: 3, Role: model.RoleTeacher, Context: fullContext()}})
	if !st.CanAnswer || st.CanViewResults {
		t.Errorf("answerable teacher: canAnswer=%v canViewResults=%v, want true/false", st.CanAnswer, st.CanViewResults)
	}
}

func TestAdminResultScopeSpan(t *testing.T) {
	e := newTestEngine(nil, statusNow)

	scopes := []model.ScopeLevel{
		model.ScopeSystem, model.ScopeCountry, model.ScopeInstitution,
		model.ScopeCentre, model.ScopeDegree, model.ScopeCourse,
	}
	viewable := map[model.Role]model.ScopeLevel{
		model.RoleDegreeAdmin:      model.ScopeDegree,
		model.RoleCentreAdmin:      model.ScopeCentre,
		model.RoleInstitutionAdmin: model.ScopeInstitution,
	}
	for role, broadestNarrow := range viewable {
		for _, scope := range scopes {
			survey := &model.Survey{
				ID: 4, Scope: scope,
				OpensAt: statusNow.Add(-time.Hour), EndsAt: statusNow.Add(time.Hour),
				AllowedRoleMask: model.NewRoleMask(model.RoleStudent),
			}
			if scope != model.ScopeSystem {
				survey.NodeID = 1
			}
			st := evaluate(t, e, StatusInput{Survey: survey, QuestionCount: 1,
				Requester: Requester{UserID: 9, Role: role}})
			want := scope <= broadestNarrow
			if st.CanViewResults != want {
				t.Errorf("%s at %s scope: canViewResults=%v, want %v", role, scope, st.CanViewResults, want)
			}
		}
	}
}

func TestSystemAdminResultsUnconditional(t *testing.T) {
	e := newTestEngine(nil, statusNow)
	survey := openCourseSurvey(model.NewRoleMask(model.RoleSystemAdmin))
	survey.Hidden = true
	survey.EndsAt = statusNow.Add(-time.Minute) // closed

	st := evaluate(t, e, StatusInput{Survey: survey, QuestionCount: 1,
		Requester: Requester{UserID: 1, Role: model.RoleSystemAdmin}})
	if !st.CanViewResults {
		t.Error("system admin sees results of any survey with questions")
	}
}

func TestAnonymousRolesHaveNoActions(t *testing.T) {
	e := newTestEngine(nil, statusNow)
	survey := openCourseSurvey(model.NewRoleMask(model.RoleGuest, model.RoleUnaffiliated))

	for _, role := range []model.Role{model.RoleUnknown, model.RoleGuest, model.RoleUnaffiliated} {
		st := evaluate(t, e, StatusInput{Survey: survey, QuestionCount: 1,
			Requester: Requester{UserID: 7, Role: role}})
		if st.CanEdit || st.CanViewResults {
			t.Errorf("role %s: canEdit=%v canViewResults=%v, want false/false", role, st.CanEdit, st.CanViewResults)
		}
	}
}
