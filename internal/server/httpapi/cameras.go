package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/guardianeye/guardianeye/internal/common"
	"github.com/guardianeye/guardianeye/internal/server/models"
)

type createCameraRequest struct {
	Name       string `json:"name" validate:"required"`
	Location   string `json:"location" validate:"required"`
	StreamURL  string `json:"streamUrl" validate:"required"`
	Status     string `json:"status" validate:"omitempty,oneof=online offline maintenance"`
	Type       string `json:"type" validate:"required,oneof=indoor outdoor"`
	Resolution string `json:"resolution"`
}

type updateCameraStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=online offline maintenance"`
}

func (a *API) handleListCameras(w http.ResponseWriter, r *http.Request) {
	list, err := a.cameras.List(r.Context())
	if err != nil {
		a.serverError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (a *API) handleCreateCamera(w http.ResponseWriter, r *http.Request) {
	var req createCameraRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	cam, err := a.cameras.Create(r.Context(), &models.Camera{
		Name:       req.Name,
		Location:   req.Location,
		StreamURL:  req.StreamURL,
		Status:     models.CameraStatus(req.Status),
		Type:       models.CameraType(req.Type),
		Resolution: req.Resolution,
	})
	if err != nil {
		a.serverError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusCreated, cam)
}

func (a *API) handleUpdateCameraStatus(w http.ResponseWriter, r *http.Request) {
	var req updateCameraStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	cam, err := a.cameras.UpdateStatus(r.Context(), chi.URLParam(r, "id"), models.CameraStatus(req.Status))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, cam)
	case errors.Is(err, common.ErrorNotFound):
		writeMessage(w, http.StatusNotFound, msgCameraNotFound)
	case errors.Is(err, common.ErrorValidation):
		writeMessage(w, http.StatusBadRequest, "status must be one of: online offline maintenance")
	default:
		a.serverError(r.Context(), w, err)
	}
}
