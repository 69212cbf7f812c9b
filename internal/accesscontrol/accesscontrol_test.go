package accesscontrol

import (
	"testing"

	"github.com/starter-squad/lms-portal/internal/navigation"
	"github.com/starter-squad/lms-portal/internal/session"
)

func anon() session.Snapshot {
	return session.Snapshot{Status: session.StatusAnonymous}
}

func authed(role session.Role) session.Snapshot {
	return session.Snapshot{
		Status: session.StatusAuthenticated,
		User:   &session.User{ID: "1", Name: "J", Email: "j@e.c", Role: role},
		Token:  "tok",
	}
}

func TestVerifyingDefersEverything(t *testing.T) {
	verifying := session.Snapshot{Status: session.StatusVerifying}

	caps := []Capability{
		None(),
		Authenticated(),
		RequireRole(session.RoleStudent),
		RequireRole(session.RoleInstructor),
		RequireRole(session.RoleAdmin),
	}

	for _, required := range caps {
		if d := CanEnter(verifying, required); d.Kind != Deferred {
			t.Errorf("capability %+v during verifying: got kind %v, want Deferred", required, d.Kind)
		}
	}
}

func TestUninitializedDefersToo(t *testing.T) {
	snap := session.Snapshot{Status: session.StatusUninitialized}
	if d := CanEnter(snap, Authenticated()); d.Kind != Deferred {
		t.Errorf("got kind %v, want Deferred", d.Kind)
	}
}

func TestNoneAllowsAnyone(t *testing.T) {
	if d := CanEnter(anon(), None()); d.Kind != Allow {
		t.Errorf("anonymous + none: got %v, want Allow", d.Kind)
	}
	if d := CanEnter(authed(session.RoleStudent), None()); d.Kind != Allow {
		t.Errorf("authenticated + none: got %v, want Allow", d.Kind)
	}
}

func TestAuthenticatedRequired(t *testing.T) {
	d := CanEnter(anon(), Authenticated())
	if d.Kind != Redirect || d.Target != navigation.LoginPath {
		t.Errorf("anonymous should redirect to login, got %+v", d)
	}

	if d := CanEnter(authed(session.RoleStudent), Authenticated()); d.Kind != Allow {
		t.Errorf("authenticated user should be allowed, got %+v", d)
	}
}

func TestRoleGate(t *testing.T) {
	// Not logged in at all: login, not access-denied
	d := CanEnter(anon(), RequireRole(session.RoleAdmin))
	if d.Kind != Redirect || d.Target != navigation.LoginPath {
		t.Errorf("anonymous at role gate should redirect to login, got %+v", d)
	}

	// Logged in with the wrong role
	d = CanEnter(authed(session.RoleStudent), RequireRole(session.RoleAdmin))
	if d.Kind != Redirect || d.Target != navigation.AccessDeniedPath {
		t.Errorf("wrong role should hit access-denied, got %+v", d)
	}

	// Exact role
	if d := CanEnter(authed(session.RoleAdmin), RequireRole(session.RoleAdmin)); d.Kind != Allow {
		t.Errorf("admin at admin gate should be allowed, got %+v", d)
	}

	// Hierarchy: admin clears an instructor gate, not the reverse
	if d := CanEnter(authed(session.RoleAdmin), RequireRole(session.RoleInstructor)); d.Kind != Allow {
		t.Errorf("admin at instructor gate should be allowed, got %+v", d)
	}
	d = CanEnter(authed(session.RoleInstructor), RequireRole(session.RoleAdmin))
	if d.Kind != Redirect || d.Target != navigation.AccessDeniedPath {
		t.Errorf("instructor at admin gate should be denied, got %+v", d)
	}
}
