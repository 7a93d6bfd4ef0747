package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/antonsk/shoplist/internal/service"
)

// RouterConfig carries the HTTP-layer knobs.
type RouterConfig struct {
	SecureCookies bool
	AuthRateRPS   float64
	AuthRateBurst int
}

// NewRouter wires services into the HTTP API.
func NewRouter(users service.UserService, sessions service.SessionService, lists service.ListService, share service.ShareService, log *zap.Logger, cfg RouterConfig) http.Handler {
	fetcher := NewUserFetcher(users)
	authH := NewAuthHandler(users, sessions, fetcher, cfg.SecureCookies)
	listH := NewListHandler(lists, share, fetcher)

	r := chi.NewRouter()
	r.Use(Recover(log))
	r.Use(RequestLogger(log))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(RateLimit(cfg.AuthRateRPS, cfg.AuthRateBurst))
			r.Post("/auth/register", authH.HandleRegister)
			r.Post("/auth/login", authH.HandleLogin)
		})

		r.Post("/auth/logout", authH.HandleLogout)
		r.Get("/me", authH.HandleMe)

		r.Get("/lists", listH.HandleDashboard)
		r.Post("/lists", listH.HandleCreate)
		r.Get("/lists/{listID}", listH.HandleDetail)
		r.Delete("/lists/{listID}", listH.HandleDelete)
		r.Post("/lists/{listID}/items", listH.HandleAddItem)
		r.Post("/lists/{listID}/share", listH.HandleShare)

		r.Get("/shared/{token}", listH.HandleShared)
	})

	return r
}
