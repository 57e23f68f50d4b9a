package feeds

import (
	"fmt"
	"net/http"
)

// Kind classifies aggregator failures. Each kind maps to its own HTTP status
// and message at the API boundary.
type Kind int

const (
	KindUpstreamUnavailable Kind = iota
	KindUpstreamAuthFailure
	KindUpstreamEndpointMissing
	KindUpstreamRateLimited
	KindUpstreamMalformedResponse
	KindNoCamerasAvailable
)

var kindInfo = map[Kind]struct {
	code    string
	status  int
	message string
	details string
}{
	KindUpstreamUnavailable:       {"upstream_unavailable", http.StatusInternalServerError, "Failed to fetch camera feeds", ""},
	KindUpstreamAuthFailure:       {"upstream_auth_failure", http.StatusUnauthorized, "API authentication failed", "Invalid or expired API key"},
	KindUpstreamEndpointMissing:   {"upstream_endpoint_missing", http.StatusNotFound, "API endpoint not found", "The requested API endpoint does not exist"},
	KindUpstreamRateLimited:       {"upstream_rate_limited", http.StatusTooManyRequests, "Rate limit exceeded", "Too many requests to the webcam API"},
	KindUpstreamMalformedResponse: {"upstream_malformed_response", http.StatusBadGateway, "Invalid response format from webcam API", "Expected a webcams collection in the response"},
	KindNoCamerasAvailable:        {"no_cameras_available", http.StatusServiceUnavailable, "No cameras available", "No valid cameras found in API response"},
}

// Code is the stable machine-readable identifier of the kind.
func (k Kind) Code() string { return kindInfo[k].code }

// HTTPStatus is the status returned to API callers.
func (k Kind) HTTPStatus() int { return kindInfo[k].status }

// Message is the human-readable error text returned to API callers.
func (k Kind) Message() string { return kindInfo[k].message }

func (k Kind) String() string { return k.Code() }

// Error is returned by the aggregator for every failed fetch.
type Error struct {
	Kind Kind
	// Status is the upstream HTTP status, or 0 if no response was received.
	Status int
	// Detail is the upstream body or error text for diagnostics. It is either
	// a string or decoded JSON.
	Detail any
	Err    error
}

func newError(kind Kind, status int, detail any, err error) *Error {
	if detail == nil || detail == "" {
		detail = kindInfo[kind].details
	}
	return &Error{Kind: kind, Status: status, Detail: detail, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind.Code(), e.Err)
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s: upstream status %d", e.Kind.Code(), e.Status)
	}
	return e.Kind.Code()
}

func (e *Error) Unwrap() error { return e.Err }
