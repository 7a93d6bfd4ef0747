package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/antonsk/shoplist/internal/failable"
	"github.com/antonsk/shoplist/internal/model"
)

type stubUsers struct {
	registerFn func(ctx context.Context, username, email, password string) failable.Failable[model.User]
	authFn     func(ctx context.Context, login, password, ip string) failable.Failable[model.User]
	byTokenFn  func(ctx context.Context, token string) failable.Failable[model.User]
}

func (s *stubUsers) Register(ctx context.Context, username, email, password string) failable.Failable[model.User] {
	return s.registerFn(ctx, username, email, password)
}

func (s *stubUsers) Authenticate(ctx context.Context, login, password, ip string) failable.Failable[model.User] {
	return s.authFn(ctx, login, password, ip)
}

func (s *stubUsers) BySessionToken(ctx context.Context, token string) failable.Failable[model.User] {
	return s.byTokenFn(ctx, token)
}

type stubSessions struct {
	createFn  func(ctx context.Context, userID int64) failable.Failable[model.NewSession]
	byTokenFn func(ctx context.Context, token string) failable.Failable[model.Session]
}

func (s *stubSessions) Create(ctx context.Context, userID int64) failable.Failable[model.NewSession] {
	return s.createFn(ctx, userID)
}

func (s *stubSessions) ByToken(ctx context.Context, token string) failable.Failable[model.Session] {
	return s.byTokenFn(ctx, token)
}

type stubLists struct {
	createFn   func(ctx context.Context, ownerID int64, name, description string) failable.Failable[model.ShoppingList]
	deleteFn   func(ctx context.Context, publicID string, ownerID int64) failable.Failable[struct{}]
	byPublicFn func(ctx context.Context, publicID string, ownerID *int64) failable.Failable[*model.ShoppingListWithItems]
	forUserFn  func(ctx context.Context, userID int64) failable.Failable[[]model.ShoppingListWithItems]
	addItemFn  func(ctx context.Context, publicID string, ownerID int64, name string) failable.Failable[struct{}]
}

func (s *stubLists) Create(ctx context.Context, ownerID int64, name, description string) failable.Failable[model.ShoppingList] {
	return s.createFn(ctx, ownerID, name, description)
}

func (s *stubLists) Delete(ctx context.Context, publicID string, ownerID int64) failable.Failable[struct{}] {
	return s.deleteFn(ctx, publicID, ownerID)
}

func (s *stubLists) ByPublicID(ctx context.Context, publicID string, ownerID *int64) failable.Failable[*model.ShoppingListWithItems] {
	return s.byPublicFn(ctx, publicID, ownerID)
}

func (s *stubLists) ForUser(ctx context.Context, userID int64) failable.Failable[[]model.ShoppingListWithItems] {
	return s.forUserFn(ctx, userID)
}

func (s *stubLists) AddItem(ctx context.Context, publicID string, ownerID int64, name string) failable.Failable[struct{}] {
	return s.addItemFn(ctx, publicID, ownerID, name)
}

type stubShare struct {
	issueFn  func(publicID string) (string, time.Time, error)
	verifyFn func(token string) (string, error)
}

func (s *stubShare) IssueListToken(publicID string) (string, time.Time, error) {
	return s.issueFn(publicID)
}

func (s *stubShare) VerifyListToken(token string) (string, error) {
	return s.verifyFn(token)
}

const testToken = "valid-session-token"

var testUser = model.User{ID: 7, Username: "alice", Email: "alice@example.com"}

// sessionAwareUsers resolves testToken to testUser and rejects anything else.
func sessionAwareUsers() *stubUsers {
	return &stubUsers{
		byTokenFn: func(ctx context.Context, token string) failable.Failable[model.User] {
			if token == testToken {
				return failable.Ok(testUser)
			}
			return failable.Fail[model.User]("Invalid session token")
		},
	}
}

type fixture struct {
	users    *stubUsers
	sessions *stubSessions
	lists    *stubLists
	share    *stubShare
}

func newFixture() *fixture {
	return &fixture{
		users:    sessionAwareUsers(),
		sessions: &stubSessions{},
		lists:    &stubLists{},
		share:    &stubShare{},
	}
}

func (f *fixture) router() http.Handler {
	return NewRouter(f.users, f.sessions, f.lists, f.share, zap.NewNop(), RouterConfig{
		AuthRateRPS:   100,
		AuthRateBurst: 100,
	})
}

func doJSON(t *testing.T, h http.Handler, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.RemoteAddr = "198.51.100.7:40000"
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(value string) *http.Cookie {
	return &http.Cookie{Name: sessionCookieName, Value: value}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	decodeBody(t, rec, &body)
	return body.Error
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
