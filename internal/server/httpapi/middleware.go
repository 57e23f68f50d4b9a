package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/guardianeye/guardianeye/internal/common"
	"github.com/guardianeye/guardianeye/internal/logging"
	"github.com/guardianeye/guardianeye/internal/server/auth"
)

type ctxKey int

const claimsKey ctxKey = iota

// ClaimsFromContext returns the claims attached by the auth guard.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*auth.Claims)
	return c, ok
}

// UserIDFromContext returns the authenticated principal id, or "".
func UserIDFromContext(ctx context.Context) string {
	if c, ok := ClaimsFromContext(ctx); ok {
		return c.UserID
	}
	return ""
}

// requestContext copies chi's request id into the logging context and echoes
// it back to the caller.
func requestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chimiddleware.GetReqID(r.Context())
		if id != "" {
			w.Header().Set(chimiddleware.RequestIDHeader, id)
			r = r.WithContext(logging.WithRequestID(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

// accessLog logs each request and records it in the HTTP metrics, labelled by
// route pattern.
func (a *API) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)

		var route string
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			route = rctx.RoutePattern()
		}
		if a.metrics != nil {
			a.metrics.ObserveHTTP(r.Method, route, status, elapsed)
		}

		a.log.Info(r.Context(), "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", elapsed,
			"remote", r.RemoteAddr,
		)
	})
}

func (a *API) cors() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   a.cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", chimiddleware.RequestIDHeader},
		ExposedHeaders:   []string{chimiddleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

// authRateLimit throttles /api/auth per client IP. A non-positive limit
// disables it.
func (a *API) authRateLimit() func(http.Handler) http.Handler {
	if a.cfg.AuthRateLimitRequests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		a.cfg.AuthRateLimitRequests,
		a.cfg.AuthRateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			writeMessage(w, http.StatusTooManyRequests, msgTooManyRequests)
		}),
	)
}

// requireAuth rejects requests without a valid bearer token. A missing or
// malformed header and a bad token get different messages.
func (a *API) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scheme, token, ok := strings.Cut(r.Header.Get(common.AuthorizationHeaderName), " ")
		token = strings.TrimSpace(token)
		if !ok || scheme != common.BearerScheme || token == "" {
			writeMessage(w, http.StatusUnauthorized, msgNoToken)
			return
		}

		claims, err := a.users.Authorize(r.Context(), token)
		if err != nil {
			a.log.Debug(r.Context(), "token rejected", "error", err)
			writeMessage(w, http.StatusUnauthorized, msgNotAuthorized)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
