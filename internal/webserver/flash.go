package webserver

import (
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"

	"github.com/starter-squad/lms-portal/internal/config"
)

// flashStore carries one-shot notices (logged out, session expired,
// login required) across redirects in a signed cookie.
type flashStore struct {
	store *sessions.CookieStore
	name  string
}

func newFlashStore(conf *config.Config) *flashStore {
	store := sessions.NewCookieStore([]byte(conf.Cookie.Secret))
	store.Options.HttpOnly = true
	store.Options.Secure = conf.Cookie.Secure
	store.Options.Path = "/"

	return &flashStore{
		store: store,
		name:  conf.Cookie.Name,
	}
}

func (f *flashStore) add(c echo.Context, msg string) {
	sess, _ := f.store.Get(c.Request(), f.name)
	sess.AddFlash(msg)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		c.Echo().Logger.Warnf("failed to save flash cookie: %v", err)
	}
}

func (f *flashStore) pop(c echo.Context) []string {
	sess, _ := f.store.Get(c.Request(), f.name)

	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}

	msgs := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			msgs = append(msgs, s)
		}
	}

	if err := sess.Save(c.Request(), c.Response()); err != nil {
		c.Echo().Logger.Warnf("failed to clear flash cookie: %v", err)
	}

	return msgs
}
