package api

import (
	"log/slog"
	"net/http"

	"github.com/Ruggero-R/EzSupply/internal/auth"
	"github.com/Ruggero-R/EzSupply/internal/store"
)

// SessionHandler issues tokens for acting as a household member. There is no
// password: a client picks an existing user and gets a token naming them, so
// item writes can be attributed.
type SessionHandler struct {
	Users     *store.Users
	JWTSecret string
}

type selectUserRequest struct {
	Username string `json:"username"`
}

type selectUserResponse struct {
	Token string `json:"token"`
	ID    string `json:"id"`
}

// Select handles POST /api/session.
func (h *SessionHandler) Select(w http.ResponseWriter, r *http.Request) {
	var req selectUserRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Username == "" {
		jsonError(w, http.StatusBadRequest, "username required")
		return
	}

	user, err := h.Users.GetByUsername(r.Context(), req.Username)
	if err != nil {
		slog.Error("failed to look up user", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to look up user")
		return
	}
	if user == nil {
		jsonError(w, http.StatusNotFound, "user not found")
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, user.ID, user.Username)
	if err != nil {
		slog.Error("failed to generate token", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	slog.Info("user selected", "user", user.Username)
	jsonResponse(w, http.StatusOK, selectUserResponse{Token: token, ID: user.ID})
}
