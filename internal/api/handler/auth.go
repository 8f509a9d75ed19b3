package handler

import (
	"encoding/json"
	"net/http"
	"net/mail"

	"github.com/neonsnake/neonsnake-backend/internal/api/middleware"
	"github.com/neonsnake/neonsnake-backend/internal/api/request"
	"github.com/neonsnake/neonsnake-backend/internal/api/response"
	"github.com/neonsnake/neonsnake-backend/internal/services/auth"
)

// AuthHandler handles account endpoints
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Signup handles POST /auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req request.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if len(req.Username) < 3 || len(req.Username) > 30 {
		WriteError(w, NewInvalidRequestError("username must be 3-30 characters"))
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		WriteError(w, NewInvalidRequestError("email is not a valid address"))
		return
	}
	if len(req.Password) < 6 {
		WriteError(w, NewInvalidRequestError("password must be at least 6 characters"))
		return
	}

	user, token, err := h.authService.Signup(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AuthResponse{
		User:  response.UserFromModel(user),
		Token: token,
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Email == "" {
		WriteError(w, NewInvalidRequestError("email is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	user, token, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponse{
		User:  response.UserFromModel(user),
		Token: token,
	})
}

// Logout handles POST /auth/logout
// Tokens are stateless, so logout is an acknowledgement only; the client
// discards its token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.MessageResponse{Message: "Logged out successfully"})
}

// GetMe handles GET /auth/me
func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	response.JSON(w, http.StatusOK, response.UserFromModel(user))
}
