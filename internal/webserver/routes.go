package webserver

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/starter-squad/lms-portal/internal/gateway"
	"github.com/starter-squad/lms-portal/internal/navigation"
	"github.com/starter-squad/lms-portal/internal/session"
	"github.com/starter-squad/lms-portal/internal/utils"
)

func (w *Webserver) homeHandler(c echo.Context) error {
	return c.Render(http.StatusOK, "home", map[string]any{
		"Snap": w.manager.Current(),
	})
}

func (w *Webserver) loginPageHandler(c echo.Context) error {
	snap := w.manager.Current()
	if snap.Status == session.StatusAuthenticated {
		return c.Redirect(http.StatusSeeOther, navigation.CoursesPath)
	}

	msgs := w.flash.pop(c)
	if c.QueryParam("logout") == "true" {
		msgs = append(msgs, "Logged out successfully.")
	}
	if c.QueryParam("session_expired") == "true" {
		msgs = append(msgs, "Your session has expired. Please login again.")
	}

	return c.Render(http.StatusOK, "login", map[string]any{
		"Messages": msgs,
		"Error":    "",
		"Email":    "",
	})
}

func (w *Webserver) loginSubmitHandler(c echo.Context) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	snap, err := w.manager.Login(c.Request().Context(), email, password)
	if err != nil {
		// Inline failure; the session state is untouched
		return c.Render(http.StatusUnauthorized, "login", map[string]any{
			"Messages": []string(nil),
			"Error":    err.Error(),
			"Email":    email,
		})
	}

	target := w.nav.AfterLogin(snap.User.Role, snap.Token)
	if target.External && !w.redirectAllowed(target.URL) {
		c.Echo().Logger.Warnf("refusing post-login redirect to disallowed host: %s", target.URL)
		target = navigation.Target{URL: navigation.CoursesPath}
	}

	return c.Redirect(http.StatusSeeOther, target.URL)
}

func (w *Webserver) logoutHandler(c echo.Context) error {
	w.manager.Logout(c.Request().Context())
	return c.Redirect(http.StatusSeeOther, w.nav.AfterLogout().URL)
}

func (w *Webserver) registerPageHandler(c echo.Context) error {
	return c.Render(http.StatusOK, "register", map[string]any{
		"Title":  "Register",
		"Action": "/register",
		"Error":  "",
		"Name":   "",
		"Email":  "",
	})
}

func (w *Webserver) registerSubmitHandler(c echo.Context) error {
	return w.handleRegister(c, "/register", "Register", "")
}

func (w *Webserver) instructorRegisterPageHandler(c echo.Context) error {
	return c.Render(http.StatusOK, "register", map[string]any{
		"Title":  "Instructor Register",
		"Action": "/instructor-register",
		"Error":  "",
		"Name":   "",
		"Email":  "",
	})
}

func (w *Webserver) instructorRegisterSubmitHandler(c echo.Context) error {
	return w.handleRegister(c, "/instructor-register", "Instructor Register", session.RoleInstructor)
}

func (w *Webserver) handleRegister(c echo.Context, action, title string, role session.Role) error {
	req := gateway.RegisterRequest{
		Name:     c.FormValue("name"),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
		Role:     string(role),
	}

	res := w.registrar.Register(c.Request().Context(), req)
	if !res.Success {
		return c.Render(http.StatusBadRequest, "register", map[string]any{
			"Title":  title,
			"Action": action,
			"Error":  res.Error,
			"Name":   req.Name,
			"Email":  req.Email,
		})
	}

	msg := res.Message
	if msg == "" {
		msg = "Registration successful. Please login."
	}
	w.flash.add(c, msg)

	return c.Redirect(http.StatusSeeOther, navigation.LoginPath)
}

func (w *Webserver) coursesHandler(c echo.Context) error {
	return c.Render(http.StatusOK, "page", map[string]any{
		"Title": "Courses",
		"Snap":  w.manager.Current(),
	})
}

func (w *Webserver) profileHandler(c echo.Context) error {
	snap := w.manager.Current()

	data := map[string]any{
		"Title": "Profile",
		"Snap":  snap,
	}
	if expiry, ok := session.TokenExpiry(snap.Token); ok {
		data["TokenExpiry"] = expiry
	}

	return c.Render(http.StatusOK, "profile", data)
}

// pageHandler renders a simple titled view; the content pages carry no
// logic of their own.
func (w *Webserver) pageHandler(title string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, "page", map[string]any{
			"Title": title,
			"Snap":  w.manager.Current(),
		})
	}
}

func (w *Webserver) accessDeniedHandler(c echo.Context) error {
	return c.Render(http.StatusForbidden, "denied", nil)
}

// redirectAllowed checks the host of an external target against the
// API host and the configured allowlist.
func (w *Webserver) redirectAllowed(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	host := u.Hostname()
	if host != "" && host == w.conf.APIHost() {
		return true
	}

	return utils.TestStringAgainstSliceMatchers(w.conf.RedirectAllowlist, host)
}
