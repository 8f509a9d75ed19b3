package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/neonsnake/neonsnake-backend/internal/api/middleware"
	"github.com/neonsnake/neonsnake-backend/internal/api/request"
	"github.com/neonsnake/neonsnake-backend/internal/api/response"
	"github.com/neonsnake/neonsnake-backend/internal/services/leaderboard"
)

// Leaderboard query bounds
const (
	defaultLeaderboardLimit = 100
	maxLeaderboardLimit     = 1000
)

// LeaderboardHandler handles leaderboard endpoints
type LeaderboardHandler struct {
	leaderboardService *leaderboard.Service
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(leaderboardService *leaderboard.Service) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
	}
}

// List handles GET /leaderboard
func (h *LeaderboardHandler) List(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode")

	limit, err := queryInt(r, "limit", defaultLeaderboardLimit)
	if err != nil || limit < 1 || limit > maxLeaderboardLimit {
		WriteError(w, NewInvalidRequestError("limit must be an integer between 1 and 1000"))
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil || offset < 0 {
		WriteError(w, NewInvalidRequestError("offset must be a non-negative integer"))
		return
	}

	entries, total, err := h.leaderboardService.List(r.Context(), mode, limit, offset)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.NewLeaderboardPage(entries, total))
}

// Submit handles POST /leaderboard/submit
func (h *LeaderboardHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Score == nil || *req.Score < 0 {
		WriteError(w, NewInvalidRequestError("score must be a non-negative integer"))
		return
	}
	if req.Mode == "" {
		WriteError(w, NewInvalidRequestError("mode is required"))
		return
	}

	user := middleware.MustGetUser(r.Context())

	entry, err := h.leaderboardService.Submit(r.Context(), user, *req.Score, req.Mode, req.Duration)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.LeaderboardEntryFromModel(entry))
}

// queryInt parses an optional integer query parameter
func queryInt(r *http.Request, name string, defaultVal int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(raw)
}
