package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/neonsnake/neonsnake-backend/internal/api/middleware"
	"github.com/neonsnake/neonsnake-backend/internal/api/request"
	"github.com/neonsnake/neonsnake-backend/internal/api/response"
	"github.com/neonsnake/neonsnake-backend/internal/model"
	"github.com/neonsnake/neonsnake-backend/internal/services/session"
)

// Active session query bounds
const (
	defaultActiveLimit = 10
	maxActiveLimit     = 100
)

// SessionHandler handles game session endpoints
type SessionHandler struct {
	sessionService *session.Service
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService *session.Service) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
	}
}

// ListActive handles GET /sessions/active
func (h *SessionHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", defaultActiveLimit)
	if err != nil || limit < 1 || limit > maxActiveLimit {
		WriteError(w, NewInvalidRequestError("limit must be an integer between 1 and 100"))
		return
	}

	sessions, err := h.sessionService.ListActive(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.NewSessionPage(sessions))
}

// Get handles GET /sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])

	sess, err := h.sessionService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameSessionFromModel(sess))
}

// Start handles POST /sessions/start
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req request.StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Mode == "" {
		WriteError(w, NewInvalidRequestError("mode is required"))
		return
	}

	user := middleware.MustGetUser(r.Context())

	sess, err := h.sessionService.Start(r.Context(), user, req.Mode)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameSessionFromModel(sess))
}

// End handles POST /sessions/{id}/end
func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])

	var req request.EndSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.FinalScore == nil || *req.FinalScore < 0 {
		WriteError(w, NewInvalidRequestError("finalScore must be a non-negative integer"))
		return
	}

	user := middleware.MustGetUser(r.Context())

	sess, err := h.sessionService.End(r.Context(), user, id, *req.FinalScore)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameSessionFromModel(sess))
}

// Update handles PATCH /sessions/{id}/update
func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])

	var req request.UpdateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.CurrentScore != nil && *req.CurrentScore < 0 {
		WriteError(w, NewInvalidRequestError("currentScore must be non-negative"))
		return
	}

	user := middleware.MustGetUser(r.Context())

	patch := model.SessionPatch{
		CurrentScore: req.CurrentScore,
		GameState:    req.GameState,
	}

	sess, err := h.sessionService.Update(r.Context(), user, id, patch)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameSessionFromModel(sess))
}
