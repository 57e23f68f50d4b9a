package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/guardianeye/guardianeye/internal/server/feeds"
)

type feedsResponse struct {
	Success   bool         `json:"success"`
	Data      []feeds.Feed `json:"data"`
	Timestamp time.Time    `json:"timestamp"`
}

type feedsFailure struct {
	Success   bool      `json:"success"`
	Code      string    `json:"code"`
	Error     string    `json:"error"`
	Details   any       `json:"details"`
	Status    int       `json:"status,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (a *API) handleCameraFeeds(w http.ResponseWriter, r *http.Request) {
	list, err := a.feeds.Feeds(r.Context())
	now := time.Now().UTC()
	if err == nil {
		writeJSON(w, http.StatusOK, feedsResponse{Success: true, Data: list, Timestamp: now})
		return
	}

	var fe *feeds.Error
	if !errors.As(err, &fe) {
		fe = &feeds.Error{Kind: feeds.KindUpstreamUnavailable, Detail: err.Error(), Err: err}
	}

	writeJSON(w, fe.Kind.HTTPStatus(), feedsFailure{
		Success:   false,
		Code:      fe.Kind.Code(),
		Error:     fe.Kind.Message(),
		Details:   fe.Detail,
		Status:    fe.Status,
		Timestamp: now,
	})
}
