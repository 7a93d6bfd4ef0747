package web

import (
	"encoding/json"
	"net/http"

	"github.com/antonsk/shoplist/internal/service"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	users         service.UserService
	sessions      service.SessionService
	fetcher       *UserFetcher
	secureCookies bool
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(users service.UserService, sessions service.SessionService, fetcher *UserFetcher, secureCookies bool) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions, fetcher: fetcher, secureCookies: secureCookies}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

type identityResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// HandleRegister handles POST /api/v1/auth/register.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse("Username, email and password are required"))
		return
	}

	res := h.users.Register(r.Context(), req.Username, req.Email, req.Password)
	if !res.OK() {
		writeJSON(w, failureStatus(res.Cause(), http.StatusBadRequest), errorResponse(res.Message()))
		return
	}

	u := res.Value()
	writeJSON(w, http.StatusCreated, identityResponse{ID: u.ID, Username: u.Username, Email: u.Email})
}

// HandleLogin handles POST /api/v1/auth/login. On success a session is
// created and its raw token delivered both as a cookie and in the body.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.UsernameOrEmail == "" || req.Password == "" {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse("Username/email and password are required"))
		return
	}

	userRes := h.users.Authenticate(r.Context(), req.UsernameOrEmail, req.Password, remoteIP(r))
	if !userRes.OK() {
		writeJSON(w, failureStatus(userRes.Cause(), http.StatusUnauthorized), errorResponse(userRes.Message()))
		return
	}
	u := userRes.Value()

	sessRes := h.sessions.Create(r.Context(), u.ID)
	if !sessRes.OK() {
		writeJSON(w, failureStatus(sessRes.Cause(), http.StatusUnauthorized), errorResponse(sessRes.Message()))
		return
	}

	setSessionCookie(w, sessRes.Value().Token, h.secureCookies)
	writeJSON(w, http.StatusOK, map[string]any{
		"token": sessRes.Value().Token,
		"user":  identityResponse{ID: u.ID, Username: u.Username, Email: u.Email},
	})
}

// HandleLogout handles POST /api/v1/auth/logout. Only the cookie is
// cleared; session rows have no revocation modeled.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandleMe handles GET /api/v1/me.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	u := h.fetcher.Fetch(w, r)
	if u == nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Not authenticated"))
		return
	}
	writeJSON(w, http.StatusOK, identityResponse{ID: u.ID, Username: u.Username, Email: u.Email})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return false
	}
	return true
}

// failureStatus picks the HTTP status for a failed result: failures
// carrying an internal cause are server errors, everything else uses the
// handler-specific status.
func failureStatus(cause error, fallback int) int {
	if cause != nil {
		return http.StatusInternalServerError
	}
	return fallback
}
