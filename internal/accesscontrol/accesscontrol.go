// Package accesscontrol decides whether the current session may enter
// a route. It is purely functional: no I/O, no clock, no config. Role
// strings never appear here or at call sites; routes declare a
// Capability and the check happens in exactly one place.
package accesscontrol

import (
	"github.com/starter-squad/lms-portal/internal/navigation"
	"github.com/starter-squad/lms-portal/internal/session"
)

type CapabilityKind int

const (
	KindNone CapabilityKind = iota
	KindAuthenticated
	KindRole
)

// Capability is what a route demands of the session before rendering.
type Capability struct {
	Kind CapabilityKind
	Role session.Role
}

func None() Capability {
	return Capability{Kind: KindNone}
}

func Authenticated() Capability {
	return Capability{Kind: KindAuthenticated}
}

func RequireRole(r session.Role) Capability {
	return Capability{Kind: KindRole, Role: r}
}

type DecisionKind int

const (
	Allow DecisionKind = iota
	// Deferred means the session is still being verified: render a
	// blocking loading indicator and re-evaluate, neither allowing nor
	// redirecting yet.
	Deferred
	Redirect
)

type Decision struct {
	Kind   DecisionKind
	Target string
}

// CanEnter evaluates a capability against a session snapshot. Callers
// must re-run it whenever the session changes; a cached decision is a
// defect.
func CanEnter(snap session.Snapshot, required Capability) Decision {
	// Until startup verification resolves, every decision is deferred,
	// whatever the route demands.
	if snap.Status == session.StatusUninitialized || snap.Status == session.StatusVerifying {
		return Decision{Kind: Deferred}
	}

	switch required.Kind {
	case KindNone:
		return Decision{Kind: Allow}

	case KindAuthenticated:
		if snap.Status != session.StatusAuthenticated {
			return Decision{Kind: Redirect, Target: navigation.LoginPath}
		}
		return Decision{Kind: Allow}

	case KindRole:
		if snap.Status != session.StatusAuthenticated || snap.User == nil {
			return Decision{Kind: Redirect, Target: navigation.LoginPath}
		}
		if !snap.User.Role.Satisfies(required.Role) {
			return Decision{Kind: Redirect, Target: navigation.AccessDeniedPath}
		}
		return Decision{Kind: Allow}
	}

	// Unknown capability kinds fail closed
	return Decision{Kind: Redirect, Target: navigation.LoginPath}
}
