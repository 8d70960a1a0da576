package domain

import "strings"

// Role is a club position as written in the roster (e.g. "Presidenta").
type Role string

// RoleMember is assigned to members whose roster row has no position.
const RoleMember Role = "Miembro"

// DefaultPrivilegedRoles may create events unless overridden by configuration.
var DefaultPrivilegedRoles = []string{"Presidenta", "Vicepresidente"}

// NormalizeRole trims surrounding whitespace and falls back to RoleMember when blank.
func NormalizeRole(s string) Role {
	s = strings.TrimSpace(s)
	if s == "" {
		return RoleMember
	}
	return Role(s)
}

func (r Role) key() string {
	return strings.TrimSpace(string(r))
}

// RoleSet is an allow-list of roles. Matching is exact after trimming
// surrounding whitespace, so "presidenta" does not match "Presidenta".
// An empty set means any authenticated identity.
type RoleSet struct {
	roles map[string]Role
}

// NewRoleSet builds a RoleSet from role names; blank names are ignored.
func NewRoleSet(roles ...string) RoleSet {
	set := RoleSet{roles: make(map[string]Role, len(roles))}
	for _, r := range roles {
		role := Role(strings.TrimSpace(r))
		if role == "" {
			continue
		}
		set.roles[role.key()] = role
	}
	return set
}

// AnyRole is the empty RoleSet: authentication only.
func AnyRole() RoleSet {
	return RoleSet{}
}

// Empty reports whether the set has no roles.
func (s RoleSet) Empty() bool {
	return len(s.roles) == 0
}

// Contains reports whether role is in the set.
func (s RoleSet) Contains(role Role) bool {
	_, ok := s.roles[role.key()]
	return ok
}

// Allows reports whether role passes the set: always true for an empty set.
func (s RoleSet) Allows(role Role) bool {
	return s.Empty() || s.Contains(role)
}

// Roles returns the roles in the set, in no particular order.
func (s RoleSet) Roles() []Role {
	out := make([]Role, 0, len(s.roles))
	for _, r := range s.roles {
		out = append(out, r)
	}
	return out
}
