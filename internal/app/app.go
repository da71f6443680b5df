package app

import (
	"fmt"
	"net/http"
	"pwreset/internal/app/deps"
	"pwreset/internal/app/services"
	confirmpasswordreset "pwreset/internal/http/handlers/password_reset/confirm_password_reset"
	sendpasswordresetlink "pwreset/internal/http/handlers/password_reset/send_password_reset_link"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func NewRouter(deps *deps.Deps, s *services.Services) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	if deps.Config.SentryDsn != nil {
		router.Use(sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle)
	}
	router.Use(deps.Metrics.Middleware)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	router.Method(
		http.MethodPost,
		"/password-reset-link",
		sendpasswordresetlink.New(s.SendPasswordResetLink, deps.Config.IsTestMode),
	)
	router.Method(
		http.MethodPost,
		"/password-reset/confirm",
		confirmpasswordreset.New(s.ConfirmPasswordReset),
	)
	router.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())

	return router
}

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	return &http.Server{
		Handler:      NewRouter(deps, s),
		Addr:         fmt.Sprintf("0.0.0.0:%d", deps.Config.Port),
		ReadTimeout:  deps.Config.HttpReadTimeout,
		WriteTimeout: deps.Config.HttpWriteTimeout,
		IdleTimeout:  deps.Config.HttpIdleTimeout,
	}
}
