package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/guardianeye/guardianeye/internal/common"
	"github.com/guardianeye/guardianeye/internal/server/models"
)

type createAlertRequest struct {
	Type     string `json:"type" validate:"required,oneof=motion offline tampering low_light"`
	CameraID string `json:"cameraId" validate:"required"`
	Severity string `json:"severity" validate:"required,oneof=low medium high critical"`
	Message  string `json:"message" validate:"required"`
}

func (a *API) handleListAlerts(w http.ResponseWriter, r *http.Request) {
	list, err := a.alerts.List(r.Context())
	if err != nil {
		a.serverError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (a *API) handleCreateAlert(w http.ResponseWriter, r *http.Request) {
	var req createAlertRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	alert, err := a.alerts.Create(r.Context(), &models.Alert{
		Type:     models.AlertType(req.Type),
		CameraID: req.CameraID,
		Severity: models.AlertSeverity(req.Severity),
		Message:  req.Message,
	})
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			writeMessage(w, http.StatusBadRequest, msgCameraNotFound)
			return
		}
		a.serverError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusCreated, alert)
}

// handleResolveAlert records the caller as the resolver.
func (a *API) handleResolveAlert(w http.ResponseWriter, r *http.Request) {
	alert, err := a.alerts.Resolve(r.Context(), chi.URLParam(r, "id"), UserIDFromContext(r.Context()))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, alert)
	case errors.Is(err, common.ErrorNotFound):
		writeMessage(w, http.StatusNotFound, msgAlertNotFound)
	case errors.Is(err, common.ErrAlreadyResolved):
		writeMessage(w, http.StatusConflict, msgAlertResolved)
	default:
		a.serverError(r.Context(), w, err)
	}
}
