package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/guardianeye/guardianeye/internal/server/feeds"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCameraFeeds_Success(t *testing.T) {
	f := newFixture(t, withFeeds(stubFeeds{feeds: []feeds.Feed{{
		ID: "1", Name: "Bridge", VideoURL: "https://live/1", Location: "Oslo, Norway", Status: "online", Recording: true,
	}}}))

	rec := f.do(t, http.MethodGet, "/api/camera-feeds", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success   bool         `json:"success"`
		Data      []feeds.Feed `json:"data"`
		Timestamp string       `json:"timestamp"`
	}
	decode(t, rec, &body)
	assert.True(t, body.Success)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "https://live/1", body.Data[0].VideoURL)
	assert.NotEmpty(t, body.Timestamp)
}

func TestCameraFeeds_FailureMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"auth", &feeds.Error{Kind: feeds.KindUpstreamAuthFailure, Status: 401, Detail: "Invalid or expired API key"}, 401, "upstream_auth_failure"},
		{"missing", &feeds.Error{Kind: feeds.KindUpstreamEndpointMissing, Status: 404}, 404, "upstream_endpoint_missing"},
		{"rate", &feeds.Error{Kind: feeds.KindUpstreamRateLimited, Status: 429}, 429, "upstream_rate_limited"},
		{"malformed", &feeds.Error{Kind: feeds.KindUpstreamMalformedResponse}, 502, "upstream_malformed_response"},
		{"empty", &feeds.Error{Kind: feeds.KindNoCamerasAvailable}, 503, "no_cameras_available"},
		{"unavailable", &feeds.Error{Kind: feeds.KindUpstreamUnavailable, Status: 500, Detail: "boom"}, 500, "upstream_unavailable"},
		{"foreign error", errors.New("surprise"), 500, "upstream_unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, withFeeds(stubFeeds{err: tt.err}))
			rec := f.do(t, http.MethodGet, "/api/camera-feeds", nil, "")
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]any
			decode(t, rec, &body)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.wantCode, body["code"])
			assert.NotEmpty(t, body["error"])
			assert.Contains(t, body, "details")
			assert.Contains(t, body, "timestamp")
		})
	}
}

func TestMisc_TestEndpointMetricsAndRequestID(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/test", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, msgBackendRunning, message(t, rec))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	rec = f.do(t, http.MethodGet, "/api/unknown", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, msgNotFound, message(t, rec))

	rec = f.do(t, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	out := rec.Body.String()
	assert.True(t, strings.Contains(out, `guardianeye_http_requests_total{method="GET",route="/api/test",status="200"} 1`), out)
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	f := newFixture(t)

	req := newRequest(http.MethodOptions, "/api/cameras", "")
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := serve(f, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	req = newRequest(http.MethodOptions, "/api/cameras", "")
	req.Header.Set("Origin", "http://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec = serve(f, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
