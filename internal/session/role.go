package session

import "fmt"

// Role is the closed set of capability levels the LMS assigns at
// registration time. The portal never re-derives it; the wire string
// the server sent is the truth for the session's lifetime.
type Role string

const (
	RoleStudent    Role = "ROLE_STUDENT"
	RoleInstructor Role = "ROLE_INSTRUCTOR"
	RoleAdmin      Role = "ROLE_ADMIN"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Satisfies reports whether a user holding r can enter a route gated
// on required. Admins satisfy instructor-gated routes; everything else
// is an exact match.
func (r Role) Satisfies(required Role) bool {
	if r == required {
		return true
	}
	return r == RoleAdmin && required == RoleInstructor
}

// Elevated roles land on the server-side dashboard rather than the
// in-app catalog after login.
func (r Role) Elevated() bool {
	return r == RoleInstructor || r == RoleAdmin
}
