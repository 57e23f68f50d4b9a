package feeds

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/guardianeye/guardianeye/internal/common"
	gobreaker "github.com/sony/gobreaker/v2"
)

const (
	maxBodyBytes = 4 << 20

	breakerConsecutiveFailures = 5
	breakerTimeout             = 30 * time.Second

	includeFields = "categories,images,location,player,urls"
)

// Query selects one page of webcams. An empty Category means no filter.
type Query struct {
	Category string
	Limit    int
}

// errCallerGone marks calls abandoned by the caller's context. They say
// nothing about upstream health.
var errCallerGone = errors.New("request abandoned by caller")

// page is one upstream response. Webcams is nil when the key is missing.
// Records stay raw so that one bad record cannot spoil the page.
type page struct {
	Webcams *[]json.RawMessage `json:"webcams"`
}

func (p *page) empty() bool {
	return p == nil || p.Webcams == nil || len(*p.Webcams) == 0
}

// Client talks to the Windy Webcams v3 API. Calls go through a circuit
// breaker that opens after repeated transport or 5xx failures.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[*page]
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}

	c.breaker = gobreaker.NewCircuitBreaker[*page](gobreaker.Settings{
		Name:        "windy-webcams",
		MaxRequests: 1,
		Timeout:     breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerConsecutiveFailures
		},
		// only outages count; answers such as 401 or 429 mean upstream is up
		IsSuccessful: func(err error) bool {
			if errors.Is(err, errCallerGone) {
				return true
			}
			var fe *Error
			if errors.As(err, &fe) {
				return fe.Kind != KindUpstreamUnavailable
			}
			return err == nil
		},
	})

	return c
}

// fetch returns one page. A body that is not a JSON object, or lacks the
// webcams key, yields a page with nil Webcams rather than an error.
func (c *Client) fetch(ctx context.Context, q Query) (*page, error) {
	p, err := c.breaker.Execute(func() (*page, error) {
		return c.do(ctx, q)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, newError(KindUpstreamUnavailable, 0, "circuit breaker open", err)
		}
		return nil, err
	}
	return p, nil
}

func (c *Client) do(ctx context.Context, q Query) (*page, error) {
	params := url.Values{}
	if q.Category != "" {
		params.Set("categories", q.Category)
	}
	params.Set("sortKey", "popularity")
	params.Set("sortDirection", "desc")
	params.Set("limit", strconv.Itoa(q.Limit))
	params.Set("include", includeFields)
	params.Set("lang", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/webcams?"+params.Encode(), nil)
	if err != nil {
		return nil, newError(KindUpstreamUnavailable, 0, err.Error(), err)
	}
	req.Header.Set(common.WindyAPIKeyHeaderName, c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, transportError(ctx, 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, transportError(ctx, resp.StatusCode, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, newError(KindUpstreamAuthFailure, resp.StatusCode, nil, nil)
	case resp.StatusCode == http.StatusNotFound:
		return nil, newError(KindUpstreamEndpointMissing, resp.StatusCode, nil, nil)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, newError(KindUpstreamRateLimited, resp.StatusCode, nil, nil)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, newError(KindUpstreamUnavailable, resp.StatusCode, bodyDetail(body), nil)
	}

	p := &page{}
	if err := json.Unmarshal(body, p); err != nil {
		return &page{}, nil
	}
	return p, nil
}

// transportError reports a failed exchange, tagging it with errCallerGone
// when the caller's context ended first.
func transportError(ctx context.Context, status int, err error) *Error {
	if ctx.Err() != nil {
		return newError(KindUpstreamUnavailable, status, err.Error(), fmt.Errorf("%w: %w", errCallerGone, err))
	}
	return newError(KindUpstreamUnavailable, status, err.Error(), err)
}

// bodyDetail returns decoded JSON when body is JSON and its text otherwise.
func bodyDetail(body []byte) any {
	var v any
	if err := json.Unmarshal(body, &v); err == nil {
		return v
	}
	return string(body)
}
