package web

import (
	"net/http"

	"github.com/antonsk/shoplist/internal/model"
	"github.com/antonsk/shoplist/internal/service"
)

// UserFetcher resolves the authenticated user of a request from the
// session cookie. Resolution failure is never an error: the cookie is
// cleared and the request proceeds anonymously, leaving the access
// decision to the handler.
type UserFetcher struct {
	users service.UserService
}

// NewUserFetcher constructs a UserFetcher.
func NewUserFetcher(users service.UserService) *UserFetcher {
	return &UserFetcher{users: users}
}

// Fetch returns the current user, or nil for anonymous requests. Invalid
// or stale cookies are cleared on the way out.
func (f *UserFetcher) Fetch(w http.ResponseWriter, r *http.Request) *model.User {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		clearSessionCookie(w)
		return nil
	}

	res := f.users.BySessionToken(r.Context(), c.Value)
	if !res.OK() {
		clearSessionCookie(w)
		return nil
	}

	u := res.Value()
	return &u
}
