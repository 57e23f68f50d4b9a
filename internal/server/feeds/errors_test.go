package feeds

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind_Table(t *testing.T) {
	tests := []struct {
		kind   Kind
		code   string
		status int
	}{
		{KindUpstreamUnavailable, "upstream_unavailable", http.StatusInternalServerError},
		{KindUpstreamAuthFailure, "upstream_auth_failure", http.StatusUnauthorized},
		{KindUpstreamEndpointMissing, "upstream_endpoint_missing", http.StatusNotFound},
		{KindUpstreamRateLimited, "upstream_rate_limited", http.StatusTooManyRequests},
		{KindUpstreamMalformedResponse, "upstream_malformed_response", http.StatusBadGateway},
		{KindNoCamerasAvailable, "no_cameras_available", http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.kind.Code())
			assert.Equal(t, tt.status, tt.kind.HTTPStatus())
			assert.NotEmpty(t, tt.kind.Message())
		})
	}
}

func TestError_DefaultDetailAndUnwrap(t *testing.T) {
	e := newError(KindUpstreamAuthFailure, 401, nil, nil)
	assert.Equal(t, "Invalid or expired API key", e.Detail)
	assert.Equal(t, "upstream_auth_failure: upstream status 401", e.Error())

	cause := errors.New("dial tcp: refused")
	e = newError(KindUpstreamUnavailable, 0, cause.Error(), cause)
	assert.ErrorIs(t, e, cause)
	assert.Equal(t, "dial tcp: refused", e.Detail)
}
