package domain

import (
	"fmt"
	"strings"
)

// Role is a user's organisation-wide role. Roles are totally ordered by rank.
type Role string

const (
	RoleTeamMember Role = "team_member"
	RoleManager    Role = "manager"
	RoleExecutive  Role = "executive"
)

// orderedRoles lists every role from lowest to highest rank. Rank is the slice index.
var orderedRoles = []Role{RoleTeamMember, RoleManager, RoleExecutive}

// Rank returns the numeric rank of the role. Unknown roles rank as team_member.
func (r Role) Rank() int {
	for i, role := range orderedRoles {
		if role == r {
			return i
		}
	}
	return 0
}

// AtLeast reports whether r ranks at or above other.
func (r Role) AtLeast(other Role) bool {
	return r.Rank() >= other.Rank()
}

// IsElevated reports whether the role is manager or above.
func (r Role) IsElevated() bool {
	return r.AtLeast(RoleManager)
}

func (r Role) IsValid() bool {
	for _, role := range orderedRoles {
		if role == r {
			return true
		}
	}
	return false
}

// ParseRole normalises and validates a role name.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// RolesVisibleTo returns every role whose rank does not exceed r's, lowest first.
// A category requiring any of the returned roles is visible to a holder of r.
func RolesVisibleTo(r Role) []Role {
	rank := r.Rank()
	out := make([]Role, 0, rank+1)
	for _, role := range orderedRoles[:rank+1] {
		out = append(out, role)
	}
	return out
}
