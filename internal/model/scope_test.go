package model

import "testing"

func TestScopeLevelNamesRoundTrip(t *testing.T) {
	for l := ScopeSystem; l <= ScopeCourse; l++ {
		parsed, err := ParseScopeLevel(l.String())
		if err != nil {
			t.Fatalf("%s: %v", l, err)
		}
		if parsed != l {
			t.Errorf("round trip of %s gave %s", l, parsed)
		}
	}
	if _, err := ParseScopeLevel("faculty"); err == nil {
		t.Error("expected an error for an unknown scope name")
	}
}

func TestRoleNamesRoundTrip(t *testing.T) {
	for r := RoleUnknown; r < NumRoles; r++ {
		parsed, err := ParseRole(r.String())
		if err != nil {
			t.Fatalf("%s: %v", r, err)
		}
		if parsed != r {
			t.Errorf("round trip of %s gave %s", r, parsed)
		}
	}
	if _, err := ParseRole("dean"); err == nil {
		t.Error("expected an error for an unknown role name")
	}
}

func TestRoleMask(t *testing.T) {
	m := NewRoleMask(RoleStudent, RoleTeacher)
	if !m.Has(RoleStudent) || !m.Has(RoleTeacher) {
		t.Error("mask should contain the roles it was built from")
	}
	if m.Has(RoleGuest) || m.Has(RoleSystemAdmin) {
		t.Error("mask contains roles it was not built from")
	}
	roles := m.Roles()
	if len(roles) != 2 || roles[0] != RoleStudent || roles[1] != RoleTeacher {
		t.Errorf("unexpected expansion: %v", roles)
	}
	if NewRoleMask() != 0 {
		t.Error("empty mask should be zero")
	}
}

func TestAdminHomeLevel(t *testing.T) {
	cases := []struct {
		role Role
		home ScopeLevel
		ok   bool
	}{
		{RoleTeacher, ScopeCourse, true},
		{RoleDegreeAdmin, ScopeDegree, true},
		{RoleCentreAdmin, ScopeCentre, true},
		{RoleInstitutionAdmin, ScopeInstitution, true},
		{RoleSystemAdmin, ScopeSystem, true},
		{RoleStudent, 0, false},
		{RoleNonEditingTeacher, 0, false},
		{RoleGuest, 0, false},
	}
	for _, tc := range cases {
		home, ok := AdminHomeLevel(tc.role)
		if ok != tc.ok || (ok && home != tc.home) {
			t.Errorf("AdminHomeLevel(%s) = %v,%v, want %v,%v", tc.role, home, ok, tc.home, tc.ok)
		}
	}
}

func TestRoleRankAllowsEditingAt(t *testing.T) {
	for l := ScopeSystem; l <= ScopeCourse; l++ {
		if !RoleRankAllowsEditingAt(RoleSystemAdmin, l) {
			t.Errorf("system admin should edit at %s", l)
		}
		if RoleRankAllowsEditingAt(RoleStudent, l) || RoleRankAllowsEditingAt(RoleNonEditingTeacher, l) {
			t.Errorf("non-editor roles must not edit at %s", l)
		}
	}
	if !RoleRankAllowsEditingAt(RoleTeacher, ScopeCourse) {
		t.Error("teacher edits at course")
	}
	if RoleRankAllowsEditingAt(RoleTeacher, ScopeDegree) {
		t.Error("teacher must not edit above course")
	}
	if !RoleRankAllowsEditingAt(RoleCentreAdmin, ScopeCentre) {
		t.Error("centre admin edits at centre")
	}
	if RoleRankAllowsEditingAt(RoleCentreAdmin, ScopeInstitution) ||
		RoleRankAllowsEditingAt(RoleCentreAdmin, ScopeDegree) {
		t.Error("centre admin edits only at exactly centre")
	}
}

func TestSurveyValidate(t *testing.T) {
	base := Survey{Scope: ScopeCourse, NodeID: 1}
	base.OpensAt = base.OpensAt.AddDate(0, 0, 0)
	base.EndsAt = base.OpensAt.AddDate(0, 0, 7)

	if err := base.Validate(); err != nil {
		t.Errorf("valid course survey rejected: %v", err)
	}

	s := base
	s.NodeID = 0
	if err := s.Validate(); err == nil {
		t.Error("course survey without a node must be rejected")
	}

	s = base
	s.Scope = ScopeSystem
	if err := s.Validate(); err == nil {
		t.Error("system survey with a node must be rejected")
	}
	s.NodeID = 0
	if err := s.Validate(); err != nil {
		t.Errorf("valid system survey rejected: %v", err)
	}

	s = base
	s.EndsAt = s.OpensAt
	if err := s.Validate(); err == nil {
		t.Error("empty open window must be rejected")
	}

	s = base
	s.Scope = ScopeDegree
	s.Groups = []SurveyGroup{{GroupID: 4}}
	if err := s.Validate(); err == nil {
		t.Error("group restriction outside course scope must be rejected")
	}
}
