package webserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/starter-squad/lms-portal/internal/accesscontrol"
	"github.com/starter-squad/lms-portal/internal/navigation"
)

// guard wraps a route with a capability check against the live session
// state. The decision is re-evaluated on every request, so a session
// transition is always visible before the next navigation renders.
func (w *Webserver) guard(required accesscontrol.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decision := accesscontrol.CanEnter(w.manager.Current(), required)

			switch decision.Kind {
			case accesscontrol.Allow:
				return next(c)

			case accesscontrol.Deferred:
				// Startup verification hasn't resolved; show the
				// blocking loader, which re-requests the page.
				return c.Render(http.StatusOK, "loading", nil)

			default:
				if decision.Target == navigation.LoginPath {
					if w.sessionExpired.CompareAndSwap(true, false) {
						return c.Redirect(http.StatusSeeOther, w.nav.SessionExpired().URL)
					}
					w.flash.add(c, "Please login to continue.")
				}
				return c.Redirect(http.StatusSeeOther, decision.Target)
			}
		}
	}
}
