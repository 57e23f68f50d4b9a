package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/guardianeye/guardianeye/internal/common"
	"github.com/guardianeye/guardianeye/internal/server/models"
)

type createRecordingRequest struct {
	CameraID  string    `json:"cameraId" validate:"required"`
	StartTime time.Time `json:"startTime" validate:"required"`
	EndTime   time.Time `json:"endTime" validate:"required,gtefield=StartTime"`
	Duration  int64     `json:"duration" validate:"gte=0"`
	FileURL   string    `json:"fileUrl" validate:"required"`
	Type      string    `json:"type" validate:"required,oneof=motion scheduled manual"`
	Size      int64     `json:"size" validate:"gte=0"`
}

func (a *API) handleListRecordings(w http.ResponseWriter, r *http.Request) {
	list, err := a.recordings.List(r.Context())
	if err != nil {
		a.serverError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (a *API) handleListRecordingsByCamera(w http.ResponseWriter, r *http.Request) {
	list, err := a.recordings.ListByCamera(r.Context(), chi.URLParam(r, "cameraId"))
	if err != nil {
		a.serverError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (a *API) handleCreateRecording(w http.ResponseWriter, r *http.Request) {
	var req createRecordingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	rec, err := a.recordings.Create(r.Context(), &models.Recording{
		CameraID:  req.CameraID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Duration:  req.Duration,
		FileURL:   req.FileURL,
		Type:      models.RecordingType(req.Type),
		Size:      req.Size,
	})
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			writeMessage(w, http.StatusBadRequest, msgCameraNotFound)
			return
		}
		a.serverError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

func (a *API) handleRecordingDownload(w http.ResponseWriter, r *http.Request) {
	link, err := a.recordings.DownloadLink(r.Context(), chi.URLParam(r, "id"))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, link)
	case errors.Is(err, common.ErrorNotFound):
		writeMessage(w, http.StatusNotFound, msgRecordingNotFound)
	case errors.Is(err, common.ErrStorageNotConfigured):
		writeMessage(w, http.StatusServiceUnavailable, msgStorageUnavailable)
	default:
		a.serverError(r.Context(), w, err)
	}
}
