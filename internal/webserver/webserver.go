package webserver

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/starter-squad/lms-portal/internal/accesscontrol"
	"github.com/starter-squad/lms-portal/internal/config"
	"github.com/starter-squad/lms-portal/internal/gateway"
	"github.com/starter-squad/lms-portal/internal/navigation"
	"github.com/starter-squad/lms-portal/internal/session"
)

// Registrar is the slice of the gateway the register pages need.
// Registration doesn't touch session state, so it bypasses the manager.
type Registrar interface {
	Register(ctx context.Context, r gateway.RegisterRequest) gateway.RegisterResult
}

type Webserver struct {
	conf      *config.Config
	e         *echo.Echo
	manager   *session.Manager
	nav       navigation.Policy
	registrar Registrar
	flash     *flashStore

	// set when startup verification invalidates a stored session, so
	// the next guarded navigation can explain why the user is back at
	// the login page
	sessionExpired atomic.Bool
}

func New(conf *config.Config, manager *session.Manager, nav navigation.Policy, registrar Registrar) *Webserver {
	w := &Webserver{
		conf:      conf,
		e:         echo.New(),
		manager:   manager,
		nav:       nav,
		registrar: registrar,
		flash:     newFlashStore(conf),
	}

	w.e.HideBanner = true
	w.e.Renderer = newRenderer()
	w.e.Use(middleware.Logger())
	w.e.Use(middleware.Recover())

	prev := manager.Current().Status
	manager.Subscribe(func(snap session.Snapshot) {
		w.e.Logger.Infof("session state is now %s", snap.Status)
		if prev == session.StatusVerifying && snap.Status == session.StatusAnonymous {
			w.sessionExpired.Store(true)
		}
		prev = snap.Status
	})

	w.registerRoutes()

	return w
}

func (w *Webserver) registerRoutes() {
	e := w.e

	e.GET("/", w.homeHandler)

	e.GET(navigation.LoginPath, w.loginPageHandler)
	e.POST(navigation.LoginPath, w.loginSubmitHandler)
	e.POST("/logout", w.logoutHandler)

	e.GET("/register", w.registerPageHandler)
	e.POST("/register", w.registerSubmitHandler)
	e.GET("/instructor-register", w.instructorRegisterPageHandler)
	e.POST("/instructor-register", w.instructorRegisterSubmitHandler)

	e.GET(navigation.AccessDeniedPath, w.accessDeniedHandler)

	// The course catalog is browsable anonymously; everything behind a
	// course is not.
	e.GET(navigation.CoursesPath, w.coursesHandler)

	authed := w.guard(accesscontrol.Authenticated())
	e.GET("/course/:id", w.pageHandler("Course"), authed)
	e.GET("/profile", w.profileHandler, authed)
	e.GET("/learnings", w.pageHandler("My Learnings"), authed)
	e.GET("/assessment/:id", w.pageHandler("Assessment"), authed)
	e.GET("/certificate/:courseID", w.pageHandler("Certificate"), authed)
	e.GET("/discussion/:id", w.pageHandler("Discussion"), authed)
	e.GET("/performance", w.pageHandler("Performance"), authed)

	e.GET("/admin", w.pageHandler("Admin Dashboard"), w.guard(accesscontrol.RequireRole(session.RoleAdmin)))
}

// Handler exposes the underlying router, mainly for tests.
func (w *Webserver) Handler() http.Handler {
	return w.e
}

func (w *Webserver) Run() {
	err := w.e.Start(fmt.Sprintf(":%d", w.conf.ListenPort))
	w.e.Logger.Fatal(err)
}
