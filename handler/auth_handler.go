// file: handler/auth_handler.go

package handler

import (
	"encoding/json"
	"errors"
	"go-book-api/common"
	"go-book-api/model"
	"go-book-api/service"
	"net/http"
)

// AuthHandler holds dependencies for the authentication endpoints.
type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(s *service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

// Register godoc
// @Summary      Register a new user
// @Description  Creates a user account and returns an access and refresh token pair.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        register body model.RegisterRequest true "New user credentials"
// @Success      201  {object}  model.AuthResponse
// @Failure      400  {object}  common.AppError "Validation failure"
// @Failure      409  {object}  common.AppError "Email already registered"
// @Router       /register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RegisterRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	resp, err := h.service.Register(req)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateUser) {
			return common.NewAppError(http.StatusConflict, err.Error(), err)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not register user", err)
	}

	writeJSON(w, http.StatusCreated, resp)
	return nil
}

// Authenticate godoc
// @Summary      Authenticate a user
// @Description  Verifies credentials and returns an access and refresh token pair.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login body model.LoginRequest true "User credentials"
// @Success      200  {object}  model.AuthResponse
// @Failure      400  {object}  common.AppError "Validation failure"
// @Failure      401  {object}  common.AppError "Invalid email or password"
// @Router       /authenticate [post]
func (h *AuthHandler) Authenticate(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.LoginRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	resp, err := h.service.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return common.NewAppError(http.StatusUnauthorized, err.Error(), err)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not authenticate user", err)
	}

	writeJSON(w, http.StatusOK, resp)
	return nil
}

// Refresh godoc
// @Summary      Refresh an access token
// @Description  Exchanges a valid refresh token for a new access token. The refresh token is not rotated.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        refresh body model.RefreshRequest true "Refresh token"
// @Success      200  {object}  model.AuthResponse
// @Failure      400  {object}  common.AppError "Validation failure"
// @Failure      401  {object}  common.AppError "Refresh token unknown or expired"
// @Router       /refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RefreshRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	resp, err := h.service.Refresh(req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenExpired):
			return common.NewAppError(http.StatusUnauthorized, "Refresh token expired", err)
		case errors.Is(err, service.ErrTokenNotFound), errors.Is(err, service.ErrUserNotFound):
			return common.NewAppError(http.StatusUnauthorized, "Refresh token not found", err)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not refresh token", err)
		}
	}

	writeJSON(w, http.StatusOK, resp)
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
