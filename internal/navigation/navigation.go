// Package navigation computes where the browser goes after a session
// transition. Elevated roles leave the portal entirely: the server
// mints its own session cookie from the token on /auth/redirect, which
// needs a full page transition rather than in-app routing.
package navigation

import (
	"net/url"

	"github.com/starter-squad/lms-portal/internal/session"
)

const (
	LoginPath        = "/login"
	AccessDeniedPath = "/access-denied"
	CoursesPath      = "/courses"

	loggedOutQuery      = "logout=true"
	sessionExpiredQuery = "session_expired=true"
)

// Target is a navigation destination. External targets are
// fully-qualified URLs outside the portal.
type Target struct {
	URL      string
	External bool
}

type Policy struct {
	// Base URL of the LMS server hosting the elevated-role dashboards.
	ServerBaseURL string
}

// AfterLogin returns the landing target for a fresh session. Students
// stay in-app on the course catalog; instructors and admins are handed
// to the server with the issued token so it can establish its own
// session.
func (p Policy) AfterLogin(role session.Role, token string) Target {
	if !role.Elevated() {
		return Target{URL: CoursesPath}
	}

	q := url.Values{}
	q.Set("token", token)
	q.Set("role", string(role))

	return Target{
		URL:      p.ServerBaseURL + "/auth/redirect?" + q.Encode(),
		External: true,
	}
}

// AfterLogout always lands on the login entry point, whatever role the
// session had.
func (p Policy) AfterLogout() Target {
	return Target{URL: LoginPath + "?" + loggedOutQuery}
}

// SessionExpired is the landing target when a stored session turns out
// to be invalid.
func (p Policy) SessionExpired() Target {
	return Target{URL: LoginPath + "?" + sessionExpiredQuery}
}
