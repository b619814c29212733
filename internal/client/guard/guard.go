// Package guard decides whether a requested screen may render given the
// current session state and the user's role. It performs no I/O; callers
// feed it a session snapshot and act on the decision.
package guard

import (
	"github.com/avdeyev/shelfkeeper/internal/client/models"
	"github.com/avdeyev/shelfkeeper/internal/client/session"
)

// LoginRoute is where unauthenticated navigation is redirected.
const (
	LoginRoute        = "/login"
	RegisterRoute     = "/register"
	UnauthorizedRoute = "/unauthorized"
)

// Route declares a screen's access requirements.
//
// Public screens render without a session. PublicOnly screens (login,
// register) additionally redirect an authenticated user to their
// dashboard instead of rendering. AllowedRoles gates authenticated
// access; an empty list means any authenticated role.
type Route struct {
	Path         string
	Public       bool
	PublicOnly   bool
	AllowedRoles []models.Role
}

// Action is what the caller should do with the requested screen.
type Action int

const (
	// ActionRender: show the screen.
	ActionRender Action = iota
	// ActionLoading: session verification is still outstanding; show a
	// placeholder and re-evaluate when the status settles.
	ActionLoading
	// ActionRedirect: navigate to RedirectTo instead.
	ActionRedirect
	// ActionUnauthorized: show the unauthorized screen. Deliberately not
	// a redirect; the user is told rather than silently bounced.
	ActionUnauthorized
)

// Decision is the outcome of evaluating one navigation attempt.
type Decision struct {
	Action     Action
	RedirectTo string
}

// Evaluate applies the single gating algorithm. A nil user or an unknown
// role never panics; it simply matches no allow-list entry.
func Evaluate(route Route, status session.Status, user *models.User) Decision {
	switch status {
	case session.StatusInitializing:
		return Decision{Action: ActionLoading}

	case session.StatusUnauthenticated:
		if route.Public || route.PublicOnly {
			return Decision{Action: ActionRender}
		}
		return Decision{Action: ActionRedirect, RedirectTo: LoginRoute}
	}

	// Authenticated.
	var role models.Role
	if user != nil {
		role = user.Role
	}

	if route.PublicOnly {
		// A signed-in user never sees the login or register form again.
		return Decision{Action: ActionRedirect, RedirectTo: session.DashboardRouteFor(role)}
	}

	if len(route.AllowedRoles) == 0 {
		return Decision{Action: ActionRender}
	}
	for _, allowed := range route.AllowedRoles {
		if role == allowed {
			return Decision{Action: ActionRender}
		}
	}
	return Decision{Action: ActionUnauthorized}
}
