// Package httpapi exposes the REST API under /api using chi.
package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/guardianeye/guardianeye/internal/logging"
	"github.com/guardianeye/guardianeye/internal/server/config"
	"github.com/guardianeye/guardianeye/internal/server/feeds"
	"github.com/guardianeye/guardianeye/internal/server/metrics"
	"github.com/guardianeye/guardianeye/internal/server/services"
)

// FeedSource returns normalized third-party webcam feeds.
type FeedSource interface {
	Feeds(ctx context.Context) ([]feeds.Feed, error)
}

// Services bundles the business logic the handlers delegate to.
type Services struct {
	Users      *services.UserService
	Cameras    *services.CameraService
	Recordings *services.RecordingService
	Alerts     *services.AlertService
	Feeds      FeedSource
}

type API struct {
	cfg         *config.Config
	users       *services.UserService
	cameras     *services.CameraService
	recordings  *services.RecordingService
	alerts      *services.AlertService
	feeds       FeedSource
	metrics     *metrics.Metrics
	log         logging.Logger
	development bool
}

func New(cfg *config.Config, svc Services, m *metrics.Metrics, log logging.Logger) *API {
	return &API{
		cfg:         cfg,
		users:       svc.Users,
		cameras:     svc.Cameras,
		recordings:  svc.Recordings,
		alerts:      svc.Alerts,
		feeds:       svc.Feeds,
		metrics:     m,
		log:         log.With("module", "http"),
		development: cfg.IsDevelopment(),
	}
}

// Routes builds the router with the full middleware chain.
func (a *API) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(requestContext)
	// forwarded headers are client-controlled unless a proxy rewrites them
	if a.cfg.TrustProxyHeaders {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(a.accessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(a.cors())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, msgNotFound)
	})

	if a.metrics != nil {
		r.Method(http.MethodGet, "/metrics", a.metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/test", a.handleTest)
		r.Get("/camera-feeds", a.handleCameraFeeds)

		r.Route("/auth", func(r chi.Router) {
			r.Use(a.authRateLimit())

			r.Post("/register", a.handleRegister)
			r.Post("/login", a.handleLogin)
			r.Post("/forgot-password", a.handleForgotPassword)
			r.Post("/reset-password/{token}", a.handleResetPassword)
			r.With(a.requireAuth).Post("/logout", a.handleLogout)
		})

		r.Group(func(r chi.Router) {
			r.Use(a.requireAuth)

			r.Get("/cameras", a.handleListCameras)
			r.Post("/cameras", a.handleCreateCamera)
			r.Patch("/cameras/{id}/status", a.handleUpdateCameraStatus)

			r.Get("/recordings", a.handleListRecordings)
			r.Post("/recordings", a.handleCreateRecording)
			r.Get("/recordings/camera/{cameraId}", a.handleListRecordingsByCamera)
			r.Get("/recordings/{id}/download", a.handleRecordingDownload)

			r.Get("/alerts", a.handleListAlerts)
			r.Post("/alerts", a.handleCreateAlert)
			r.Patch("/alerts/{id}/resolve", a.handleResolveAlert)
		})
	})

	return r
}

func (a *API) handleTest(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusOK, msgBackendRunning)
}
