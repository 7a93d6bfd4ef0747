package web

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonsk/shoplist/internal/failable"
	"github.com/antonsk/shoplist/internal/model"
)

func TestRegister_Created(t *testing.T) {
	f := newFixture()
	f.users.registerFn = func(ctx context.Context, username, email, password string) failable.Failable[model.User] {
		return failable.Ok(model.User{ID: 1, Username: username, Email: email})
	}

	rec := doJSON(t, f.router(), http.MethodPost, "/api/v1/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"password1"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, int64(1), body.ID)
	assert.Equal(t, "alice", body.Username)
}

func TestRegister_MissingFields(t *testing.T) {
	f := newFixture()
	f.users.registerFn = func(ctx context.Context, username, email, password string) failable.Failable[model.User] {
		t.Fatal("service must not be reached")
		return failable.Ok(model.User{})
	}

	rec := doJSON(t, f.router(), http.MethodPost, "/api/v1/auth/register", `{"username":"alice"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "Username, email and password are required", errorMessage(t, rec))
}

func TestRegister_MalformedBody(t *testing.T) {
	f := newFixture()
	rec := doJSON(t, f.router(), http.MethodPost, "/api/v1/auth/register", `{not json`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_ValidationVsInternalStatus(t *testing.T) {
	f := newFixture()

	f.users.registerFn = func(ctx context.Context, username, email, password string) failable.Failable[model.User] {
		return failable.Fail[model.User]("Username already exists")
	}
	rec := doJSON(t, f.router(), http.MethodPost, "/api/v1/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"password1"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Username already exists", errorMessage(t, rec))

	f.users.registerFn = func(ctx context.Context, username, email, password string) failable.Failable[model.User] {
		return failable.FailCause[model.User]("Internal server error", errors.New("db down"))
	}
	rec = doJSON(t, f.router(), http.MethodPost, "/api/v1/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"password1"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", errorMessage(t, rec))
}

func TestLogin_SetsCookieAndReturnsToken(t *testing.T) {
	f := newFixture()
	f.users.authFn = func(ctx context.Context, login, password, ip string) failable.Failable[model.User] {
		assert.NotEmpty(t, ip)
		return failable.Ok(testUser)
	}
	f.sessions.createFn = func(ctx context.Context, userID int64) failable.Failable[model.NewSession] {
		assert.Equal(t, testUser.ID, userID)
		return failable.Ok(model.NewSession{ID: 11, Token: "fresh-token"})
	}

	rec := doJSON(t, f.router(), http.MethodPost, "/api/v1/auth/login",
		`{"usernameOrEmail":"alice","password":"password1"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	c := findCookie(rec, sessionCookieName)
	require.NotNil(t, c)
	assert.Equal(t, "fresh-token", c.Value)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, "/", c.Path)

	var body struct {
		Token string `json:"token"`
		User  struct {
			Username string `json:"username"`
		} `json:"user"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, "fresh-token", body.Token)
	assert.Equal(t, "alice", body.User.Username)
}

func TestLogin_BadCredentials(t *testing.T) {
	f := newFixture()
	f.users.authFn = func(ctx context.Context, login, password, ip string) failable.Failable[model.User] {
		return failable.Fail[model.User]("User, email or password incorrect")
	}

	rec := doJSON(t, f.router(), http.MethodPost, "/api/v1/auth/login",
		`{"usernameOrEmail":"alice","password":"wrong"}`)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "User, email or password incorrect", errorMessage(t, rec))
	assert.Nil(t, findCookie(rec, sessionCookieName))
}

func TestLogin_MissingFields(t *testing.T) {
	f := newFixture()
	rec := doJSON(t, f.router(), http.MethodPost, "/api/v1/auth/login", `{"usernameOrEmail":"alice"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestLogin_InternalFailureIs500(t *testing.T) {
	f := newFixture()
	f.users.authFn = func(ctx context.Context, login, password, ip string) failable.Failable[model.User] {
		return failable.FailCause[model.User]("Internal server error", errors.New("db down"))
	}

	rec := doJSON(t, f.router(), http.MethodPost, "/api/v1/auth/login",
		`{"usernameOrEmail":"alice","password":"password1"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestLogout_ClearsCookie(t *testing.T) {
	f := newFixture()
	rec := doJSON(t, f.router(), http.MethodPost, "/api/v1/auth/logout", "", sessionCookie(testToken))

	require.Equal(t, http.StatusNoContent, rec.Code)
	c := findCookie(rec, sessionCookieName)
	require.NotNil(t, c)
	assert.Empty(t, c.Value)
	assert.Negative(t, c.MaxAge)
}

func TestMe(t *testing.T) {
	f := newFixture()

	rec := doJSON(t, f.router(), http.MethodGet, "/api/v1/me", "", sessionCookie(testToken))
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, testUser.ID, body.ID)
	assert.Equal(t, "alice", body.Username)

	rec = doJSON(t, f.router(), http.MethodGet, "/api/v1/me", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Not authenticated", errorMessage(t, rec))
}
