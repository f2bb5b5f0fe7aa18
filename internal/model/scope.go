package model

import "fmt"

// ScopeLevel identifies one level of the organizational hierarchy,
// ordered from broadest (System) to narrowest (Course).
type ScopeLevel int

const (
	ScopeSystem ScopeLevel = iota
	ScopeCountry
	ScopeInstitution
	ScopeCentre
	ScopeDegree
	ScopeCourse

	NumScopeLevels = 6
)

var scopeLevelNames = [NumScopeLevels]string{
	"system", "country", "institution", "centre", "degree", "course",
}

func (l ScopeLevel) Valid() bool {
	return l >= ScopeSystem && l <= ScopeCourse
}

func (l ScopeLevel) String() string {
	if !l.Valid() {
		return fmt.Sprintf("scope(%d)", int(l))
	}
	return scopeLevelNames[l]
}

// ParseScopeLevel maps a wire name back to its level.
func ParseScopeLevel(s string) (ScopeLevel, error) {
	for i, name := range scopeLevelNames {
		if name == s {
			return ScopeLevel(i), nil
		}
	}
	return 0, fmt.Errorf("unknown scope level %q", s)
}

// Role is the requester's position in the role taxonomy.
type Role int

const (
	RoleUnknown Role = iota
	RoleGuest
	RoleUnaffiliated
	RoleStudent
	RoleNonEditingTeacher
	RoleTeacher
	RoleDegreeAdmin
	RoleCentreAdmin
	RoleInstitutionAdmin
	RoleSystemAdmin

	NumRoles = 10
)

var roleNames = [NumRoles]string{
	"unknown", "guest", "unaffiliated", "student", "non_editing_teacher",
	"teacher", "degree_admin", "centre_admin", "institution_admin", "system_admin",
}

func (r Role) Valid() bool {
	return r >= RoleUnknown && r < NumRoles
}

func (r Role) String() string {
	if !r.Valid() {
		return fmt.Sprintf("role(%d)", int(r))
	}
	return roleNames[r]
}

func ParseRole(s string) (Role, error) {
	for i, name := range roleNames {
		if name == s {
			return Role(i), nil
		}
	}
	return RoleUnknown, fmt.Errorf("unknown role %q", s)
}

// LoggedIn reports whether the role corresponds to an authenticated user.
func (r Role) LoggedIn() bool {
	return r != RoleUnknown && r != RoleGuest
}

// RoleMask is a bitset over roles, stored as surveys.allowed_role_mask.
type RoleMask uint32

func NewRoleMask(roles ...Role) RoleMask {
	var m RoleMask
	for _, r := range roles {
		m = m.With(r)
	}
	return m
}

func (m RoleMask) With(r Role) RoleMask {
	if !r.Valid() {
		return m
	}
	return m | 1<<uint(r)
}

func (m RoleMask) Has(r Role) bool {
	return r.Valid() && m&(1<<uint(r)) != 0
}

// Roles expands the mask back into the roles it contains.
func (m RoleMask) Roles() []Role {
	var roles []Role
	for r := RoleUnknown; r < NumRoles; r++ {
		if m.Has(r) {
			roles = append(roles, r)
		}
	}
	return roles
}

// adminHomes maps each role with administrative authority to the single
// hierarchy level it administers. Teacher's home is Course.
var adminHomes = map[Role]ScopeLevel{
	RoleTeacher:          ScopeCourse,
	RoleDegreeAdmin:      ScopeDegree,
	RoleCentreAdmin:      ScopeCentre,
	RoleInstitutionAdmin: ScopeInstitution,
	RoleSystemAdmin:      ScopeSystem,
}

// AdminHomeLevel returns the home level of an admin-class role.
// ok is false for roles with no administrative home.
func AdminHomeLevel(r Role) (ScopeLevel, bool) {
	level, ok := adminHomes[r]
	return level, ok
}

// RoleRankAllowsEditingAt reports whether the role's rank permits editing
// surveys at the given level: SystemAdmin anywhere, any other admin role
// only at exactly its home level, Teacher only at Course.
func RoleRankAllowsEditingAt(r Role, level ScopeLevel) bool {
	if r == RoleSystemAdmin {
		return true
	}
	home, ok := AdminHomeLevel(r)
	return ok && home == level
}
