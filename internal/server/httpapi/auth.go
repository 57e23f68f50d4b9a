package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/guardianeye/guardianeye/internal/common"
	"github.com/guardianeye/guardianeye/internal/server/auth"
	"github.com/guardianeye/guardianeye/internal/server/services"
)

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Password string `json:"password" validate:"required,max=72"`
}

type authResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

func newAuthResponse(res *services.AuthResult) authResponse {
	return authResponse{
		ID:    res.User.ID,
		Name:  res.User.Name,
		Email: res.User.Email,
		Token: res.Token,
	}
}

func (a *API) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := a.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorAlreadyExists):
			writeMessage(w, http.StatusBadRequest, msgUserExists)
		case errors.Is(err, auth.ErrPasswordTooLong):
			writeMessage(w, http.StatusBadRequest, msgPasswordTooLong)
		default:
			a.serverError(r.Context(), w, err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, newAuthResponse(res))
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := a.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeMessage(w, http.StatusUnauthorized, msgInvalidCredentials)
			return
		}
		a.serverError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, newAuthResponse(res))
}

func (a *API) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := a.users.RequestPasswordReset(r.Context(), req.Email); err != nil {
		a.serverError(r.Context(), w, err)
		return
	}

	writeMessage(w, http.StatusOK, msgResetRequested)
}

func (a *API) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	err := a.users.ResetPassword(r.Context(), chi.URLParam(r, "token"), req.Password)
	switch {
	case err == nil:
		writeMessage(w, http.StatusOK, msgResetDone)
	case errors.Is(err, common.ErrInvalidResetToken):
		writeMessage(w, http.StatusBadRequest, msgResetInvalid)
	case errors.Is(err, auth.ErrPasswordTooLong):
		writeMessage(w, http.StatusBadRequest, msgPasswordTooLong)
	case errors.Is(err, common.ErrorValidation):
		writeMessage(w, http.StatusBadRequest, "password is required")
	default:
		a.serverError(r.Context(), w, err)
	}
}

func (a *API) handleLogout(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, msgNotAuthorized)
		return
	}

	if err := a.users.Logout(r.Context(), claims); err != nil {
		a.serverError(r.Context(), w, err)
		return
	}

	writeMessage(w, http.StatusOK, msgLoggedOut)
}
