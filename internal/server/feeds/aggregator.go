// Package feeds proxies a third-party webcam directory and normalizes its
// records into a stable feed shape.
package feeds

import (
	"context"
	"errors"

	"github.com/guardianeye/guardianeye/internal/logging"
)

// Feed is a normalized, playable webcam.
type Feed struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	VideoURL    string `json:"videoUrl"`
	Location    string `json:"location"`
	Status      string `json:"status"`
	Recording   bool   `json:"recording"`
	LastUpdated any    `json:"lastUpdated"`
}

// Observer receives one outcome per upstream call.
type Observer interface {
	ObserveUpstream(outcome string)
}

type Aggregator struct {
	client   *Client
	category string
	pageSize int
	observer Observer
	log      logging.Logger
}

func NewAggregator(client *Client, category string, pageSize int, observer Observer, log logging.Logger) *Aggregator {
	return &Aggregator{
		client:   client,
		category: category,
		pageSize: pageSize,
		observer: observer,
		log:      log.With("component", "feeds"),
	}
}

// Feeds queries the preferred category and, when that yields nothing, the
// unfiltered directory. All failures are *Error.
func (a *Aggregator) Feeds(ctx context.Context) ([]Feed, error) {
	p, err := a.fetch(ctx, Query{Category: a.category, Limit: a.pageSize})
	if err != nil {
		return nil, err
	}

	if p.empty() {
		a.log.Info(ctx, "no webcams in preferred category, falling back", "category", a.category)
		p, err = a.fetch(ctx, Query{Limit: a.pageSize})
		if err != nil {
			return nil, err
		}
	}

	if p.Webcams == nil {
		a.log.Warn(ctx, "webcam response has no webcams collection")
		return nil, newError(KindUpstreamMalformedResponse, 0, nil, nil)
	}

	cams, skipped := decodeWebcams(*p.Webcams)
	if skipped > 0 {
		a.log.Warn(ctx, "skipped undecodable webcam records", "skipped", skipped, "received", len(*p.Webcams))
	}

	result := normalize(cams)
	if len(result) == 0 {
		a.log.Warn(ctx, "no playable webcams in response", "received", len(*p.Webcams))
		return nil, newError(KindNoCamerasAvailable, 0, nil, nil)
	}

	return result, nil
}

func (a *Aggregator) fetch(ctx context.Context, q Query) (*page, error) {
	p, err := a.client.fetch(ctx, q)
	if err != nil {
		var fe *Error
		if errors.As(err, &fe) {
			a.observe(fe.Kind.Code())
			a.log.Warn(ctx, "webcam directory call failed", "code", fe.Kind.Code(), "upstream_status", fe.Status, "error", err)
			return nil, fe
		}
		a.observe(KindUpstreamUnavailable.Code())
		return nil, newError(KindUpstreamUnavailable, 0, err.Error(), err)
	}
	a.observe("ok")
	return p, nil
}

func (a *Aggregator) observe(outcome string) {
	if a.observer != nil {
		a.observer.ObserveUpstream(outcome)
	}
}
