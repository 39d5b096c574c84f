package session

import "strings"

// Well-known routes.
const (
	RouteHome      = "/"
	RouteLogin     = "/login"
	RouteRegister  = "/register"
	RouteDashboard = "/dashboard"
)

// Decision is the guard's verdict for a route transition.
type Decision struct {
	Allow    bool
	Redirect string
}

func allow() Decision { return Decision{Allow: true} }

func redirect(to string) Decision { return Decision{Redirect: to} }

// Guard gates route access on the session manager. It is consulted on
// every transition, not just entry, so a session invalidated elsewhere is
// caught on the next navigation.
type Guard struct {
	mgr *Manager
}

// NewGuard wires a Guard over the manager.
func NewGuard(mgr *Manager) *Guard {
	return &Guard{mgr: mgr}
}

// Check decides whether the transition to route may proceed. Protected
// routes require a valid session; public-only routes bounce authenticated
// users back to the dashboard.
func (g *Guard) Check(route string) Decision {
	authed := g.mgr.IsAuthenticated()

	if isProtected(route) {
		if !authed {
			// Drop any half-persisted state before sending to login.
			g.mgr.Clear()
			return redirect(RouteLogin)
		}
		return allow()
	}

	if authed && isPublicOnly(route) {
		return redirect(RouteDashboard)
	}
	return allow()
}

// OnUnauthorized is the sole recovery path for a revoked or expired token:
// wipe the entire persisted session and force the login view. It is driven
// by the API client's 401 hook, not polled.
func (g *Guard) OnUnauthorized() Decision {
	g.mgr.ClearAll()
	return redirect(RouteLogin)
}

func isProtected(route string) bool {
	return strings.HasPrefix(route, RouteDashboard)
}

func isPublicOnly(route string) bool {
	return route == RouteLogin || route == RouteRegister
}
