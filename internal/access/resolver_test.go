package access

import (
	"testing"
	"time"

	"github.com/hqanh/campoll/internal/model"
)

type memberKey struct {
	level model.ScopeLevel
	node  uint
	user  uint
}

type stubDirectory struct {
	members map[memberKey]bool
	groups  map[uint][]uint // courseID -> groups of the single test user
}

func (d *stubDirectory) BelongsTo(level model.ScopeLevel, nodeID, userID uint) (bool, error) {
	return d.members[memberKey{level, nodeID, userID}], nil
}

func (d *stubDirectory) UserGroupsInCourse(courseID, userID uint) ([]uint, error) {
	return d.groups[courseID], nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func newTestEngine(dir *stubDirectory, now time.Time) *Engine {
	if dir == nil {
		dir = &stubDirectory{}
	}
	if dir.members == nil {
		dir.members = map[memberKey]bool{}
	}
	if dir.groups == nil {
		dir.groups = map[uint][]uint{}
	}
	return NewEngine(dir, dir, fixedClock{now})
}

// fullContext selects node 1 at every non-system level.
func fullContext() ContextNodes {
	var ctx ContextNodes
	for l := model.ScopeCountry; l <= model.ScopeCourse; l++ {
		ctx[l] = 1
	}
	return ctx
}

// fullChain makes user belong to node 1 at every non-system level.
func fullChain(user uint) map[memberKey]bool {
	members := map[memberKey]bool{}
	for l := model.ScopeCountry; l <= model.ScopeCourse; l++ {
		members[memberKey{l, 1, user}] = true
	}
	return members
}

func TestResolveUnknownAndGuest(t *testing.T) {
	e := newTestEngine(nil, time.Now())

	s, err := e.Resolve(Requester{Role: model.RoleUnknown, Context: fullContext()})
	if err != nil {
		t.Fatal(err)
	}
	if s.Allowed != 0 || s.HiddenVisible != 0 {
		t.Errorf("unknown role: want no scopes, got allowed=%v hidden=%v", s.Allowed, s.HiddenVisible)
	}

	s, err = e.Resolve(Requester{Role: model.RoleGuest, Context: fullContext()})
	if err != nil {
		t.Fatal(err)
	}
	if !s.Allowed.Has(model.ScopeSystem) || len(s.Allowed.Levels()) != 1 {
		t.Errorf("guest: want allowed={system}, got %v", s.Allowed)
	}
	if s.HiddenVisible != 0 {
		t.Errorf("guest: want no hidden visibility, got %v", s.HiddenVisible)
	}
}

func TestResolveStudentFullChain(t *testing.T) {
	dir := &stubDirectory{members: fullChain(7)}
	e := newTestEngine(dir, time.Now())

	s, err := e.Resolve(Requester{UserID: 7, Role: model.RoleStudent, Context: fullContext()})
	if err != nil {
		t.Fatal(err)
	}
	for l := model.ScopeSystem; l <= model.ScopeCourse; l++ {
		if !s.Allowed.Has(l) {
			t.Errorf("student with full chain: level %s missing from allowed", l)
		}
	}
	if s.HiddenVisible != 0 {
		t.Errorf("student: want no hidden visibility, got %v", s.HiddenVisible)
	}
}

func TestResolveStudentChainGating(t *testing.T) {
	// Belongs to the course node but not to its country: the chain
	// breaks at country, so nothing below system is reachable.
	dir := &stubDirectory{members: map[memberKey]bool{
		{model.ScopeCourse, 1, 7}: true,
	}}
	e := newTestEngine(dir, time.Now())

	s, err := e.Resolve(Requester{UserID: 7, Role: model.RoleStudent, Context: fullContext()})
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Allowed.Levels()) != 1 || !s.Allowed.Has(model.ScopeSystem) {
		t.Errorf("broken chain: want allowed={system}, got %v", s.Allowed)
	}
}

func TestResolveStudentDegreeButNotCourse(t *testing.T) {
	members := fullChain(7)
	delete(members, memberKey{model.ScopeCourse, 1, 7})
	e := newTestEngine(&stubDirectory{members: members}, time.Now())

	s, err := e.Resolve(Requester{UserID: 7, Role: model.RoleStudent, Context: fullContext()})
	if err != nil {
		t.Fatal(err)
	}
	if !s.Allowed.Has(model.ScopeDegree) {
		t.Error("degree should be reachable")
	}
	if s.Allowed.Has(model.ScopeCourse) {
		t.Error("course must not be reachable through the parent degree alone")
	}
}

func TestResolveTeacherHiddenAtCourse(t *testing.T) {
	e := newTestEngine(&stubDirectory{members: fullChain(3)}, time.Now())

	s, err := e.Resolve(Requester{UserID: 3, Role: model.RoleTeacher, Context: fullContext()})
	if err != nil {
		t.Fatal(err)
	}
	if !s.Allowed.Has(model.ScopeCourse) {
		t.Fatal("teacher with full chain should reach course")
	}
	if !s.HiddenVisible.Has(model.ScopeCourse) {
		t.Error("teacher at course should see hidden surveys there")
	}
	for l := model.ScopeSystem; l < model.ScopeCourse; l++ {
		if s.HiddenVisible.Has(l) {
			t.Errorf("teacher should not see hidden surveys at %s", l)
		}
	}
}

func TestResolveCentreAdmin(t *testing.T) {
	// No membership rows at all: admins traverse by ambient context,
	// and their own level counts as implicitly selected.
	e := newTestEngine(nil, time.Now())

	ctx := ContextNodes{}
	ctx[model.ScopeCountry] = 4
	ctx[model.ScopeInstitution] = 5

	s, err := e.Resolve(Requester{UserID: 9, Role: model.RoleCentreAdmin, Context: ctx})
	if err != nil {
		t.Fatal(err)
	}
	want := NewScopeSet(model.ScopeSystem, model.ScopeCountry, model.ScopeInstitution, model.ScopeCentre)
	if s.Allowed != want {
		t.Errorf("centre admin: want allowed=%v, got %v", want, s.Allowed)
	}
	if s.HiddenVisible != NewScopeSet(model.ScopeCentre) {
		t.Errorf("centre admin: want hidden={centre}, got %v", s.HiddenVisible)
	}
}

func TestResolveCentreAdminCannotPassHome(t *testing.T) {
	e := newTestEngine(nil, time.Now())

	s, err := e.Resolve(Requester{UserID: 9, Role: model.RoleCentreAdmin, Context: fullContext()})
	if err != nil {
		t.Fatal(err)
	}
	if s.Allowed.Has(model.ScopeDegree) || s.Allowed.Has(model.ScopeCourse) {
		t.Errorf("centre admin must stop at centre, got %v", s.Allowed)
	}
}

func TestResolveSystemAdmin(t *testing.T) {
	e := newTestEngine(nil, time.Now())

	s, err := e.Resolve(Requester{UserID: 1, Role: model.RoleSystemAdmin, Context: fullContext()})
	if err != nil {
		t.Fatal(err)
	}
	for l := model.ScopeSystem; l <= model.ScopeCourse; l++ {
		if !s.Allowed.Has(l) || !s.HiddenVisible.Has(l) {
			t.Errorf("system admin with full context should reach %s with hidden visibility", l)
		}
	}

	s, err = e.Resolve(Requester{UserID: 1, Role: model.RoleSystemAdmin})
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Allowed.Levels()) != 1 {
		t.Errorf("system admin without context: want allowed={system}, got %v", s.Allowed)
	}
	if !s.HiddenVisible.Has(model.ScopeSystem) {
		t.Error("system admin should see hidden system surveys")
	}
}

// Hidden visibility is a subset of allowed, and allowed is prefix-closed
// from System downward, for every role under varied contexts.
func TestResolveStructuralProperties(t *testing.T) {
	contexts := []ContextNodes{{}, fullContext()}
	partial := ContextNodes{}
	partial[model.ScopeCountry] = 1
	partial[model.ScopeInstitution] = 1
	contexts = append(contexts, partial)

	dir := &stubDirectory{members: fullChain(7)}
	e := newTestEngine(dir, time.Now())

	for role := model.RoleUnknown; role < model.NumRoles; role++ {
		for _, ctx := range contexts {
			s, err := e.Resolve(Requester{UserID: 7, Role: role, Context: ctx})
			if err != nil {
				t.Fatal(err)
			}
			if s.HiddenVisible&^s.Allowed != 0 {
				t.Errorf("role %s: hidden %v not a subset of allowed %v", role, s.HiddenVisible, s.Allowed)
			}
			for l := model.ScopeCountry; l <= model.ScopeCourse; l++ {
				if s.Allowed.Has(l) && !s.Allowed.Has(l-1) {
					t.Errorf("role %s: allowed %v not prefix-closed at %s", role, s.Allowed, l)
				}
			}
		}
	}
}

func TestScopeSet(t *testing.T) {
	s := NewScopeSet(model.ScopeSystem, model.ScopeDegree)
	if !s.Has(model.ScopeSystem) || !s.Has(model.ScopeDegree) || s.Has(model.ScopeCourse) {
		t.Errorf("unexpected set contents: %v", s)
	}
	levels := s.Levels()
	if len(levels) != 2 || levels[0] != model.ScopeSystem || levels[1] != model.ScopeDegree {
		t.Errorf("levels not ordered broadest-first: %v", levels)
	}
}
