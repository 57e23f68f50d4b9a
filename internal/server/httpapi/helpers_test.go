package httpapi

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/guardianeye/guardianeye/internal/dbx"
	"github.com/guardianeye/guardianeye/internal/logging"
	"github.com/guardianeye/guardianeye/internal/server/auth"
	"github.com/guardianeye/guardianeye/internal/server/config"
	"github.com/guardianeye/guardianeye/internal/server/feeds"
	"github.com/guardianeye/guardianeye/internal/server/metrics"
	"github.com/guardianeye/guardianeye/internal/server/models"
	"github.com/guardianeye/guardianeye/internal/server/repositories/cameras"
	"github.com/guardianeye/guardianeye/internal/server/repositories/repomanager"
	"github.com/guardianeye/guardianeye/internal/server/services"
	"github.com/stretchr/testify/require"
)

var errDBDown = errors.New("db down")

type sentReset struct {
	email, token, url string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentReset
}

func (n *recordingNotifier) NotifyPasswordReset(_ context.Context, email, rawToken, resetURL string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentReset{email: email, token: rawToken, url: resetURL})
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

func (n *recordingNotifier) last(t *testing.T) sentReset {
	t.Helper()
	n.mu.Lock()
	defer n.mu.Unlock()
	require.NotEmpty(t, n.sent, "no reset notification sent")
	return n.sent[len(n.sent)-1]
}

type stubFeeds struct {
	feeds []feeds.Feed
	err   error
}

func (s stubFeeds) Feeds(context.Context) ([]feeds.Feed, error) { return s.feeds, s.err }

type brokenCameras struct{}

func (brokenCameras) List(context.Context) ([]*models.Camera, error) { return nil, errDBDown }
func (brokenCameras) Create(context.Context, *models.Camera) (*models.Camera, error) {
	return nil, errDBDown
}
func (brokenCameras) UpdateStatus(context.Context, string, models.CameraStatus) (*models.Camera, error) {
	return nil, errDBDown
}

type brokenCamerasManager struct {
	*repomanager.MemoryRepositoryManager
}

func (brokenCamerasManager) Cameras(dbx.DBTX) cameras.Repository { return brokenCameras{} }

type fixture struct {
	cfg      *config.Config
	users    *services.UserService
	notifier *recordingNotifier
	metrics  *metrics.Metrics
	handler  http.Handler
}

type fixtureOption func(*config.Config, *repomanager.RepositoryManager, *FeedSource)

func withConfig(fn func(*config.Config)) fixtureOption {
	return func(c *config.Config, _ *repomanager.RepositoryManager, _ *FeedSource) { fn(c) }
}

func withManager(m repomanager.RepositoryManager) fixtureOption {
	return func(_ *config.Config, rm *repomanager.RepositoryManager, _ *FeedSource) { *rm = m }
}

func withFeeds(f FeedSource) fixtureOption {
	return func(_ *config.Config, _ *repomanager.RepositoryManager, fs *FeedSource) { *fs = f }
}

func newFixture(t *testing.T, opts ...fixtureOption) *fixture {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "test-secret"
	cfg.TokenValidityDuration = time.Hour
	cfg.AuthRateLimitRequests = 0
	cfg.S3Bucket = ""

	var m repomanager.RepositoryManager = repomanager.NewMemoryRepositoryManager()
	var fs FeedSource = stubFeeds{}
	for _, o := range opts {
		o(cfg, &m, &fs)
	}

	log := logging.NewNopLogger()
	notifier := &recordingNotifier{}
	mtr := metrics.New()

	users := services.NewUserService(nil, m, cfg, auth.NewMemoryDenylist(), notifier, log)
	api := New(cfg, Services{
		Users:      users,
		Cameras:    services.NewCameraService(nil, m),
		Recordings: services.NewRecordingService(nil, m, cfg),
		Alerts:     services.NewAlertService(nil, m),
		Feeds:      fs,
	}, mtr, log)

	return &fixture{cfg: cfg, users: users, notifier: notifier, metrics: mtr, handler: api.Routes()}
}

// lastReset waits for background deliveries and returns the latest one.
func (f *fixture) lastReset(t *testing.T) sentReset {
	t.Helper()
	f.users.Drain()
	return f.notifier.last(t)
}

func (f *fixture) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

// register creates a user and returns its id and token.
func (f *fixture) register(t *testing.T, email string) (string, string) {
	t.Helper()
	rec := f.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"name": "Test User", "email": email, "password": "secret123",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var res authResponse
	decode(t, rec, &res)
	return res.ID, res.Token
}

func (f *fixture) createCamera(t *testing.T, token, name string) models.Camera {
	t.Helper()
	rec := f.do(t, http.MethodPost, "/api/cameras", map[string]string{
		"name": name, "location": "Lobby", "streamUrl": "rtsp://cam/" + name, "type": "indoor",
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var cam models.Camera
	decode(t, rec, &cam)
	return cam
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var m messageResponse
	decode(t, rec, &m)
	return m.Message
}

func newRequest(method, path, authorization string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	return req
}

func serve(f *fixture, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}
