// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ballotbox/auth"
	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
)

type AuthHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAuthHandler(db *sql.DB, cfg cliparse.Config) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg}
}

// Login handles POST /auth/login
// Verifies a (fullname, access code) pair and issues a bearer token bound
// to the matched voter. Read-only: no stored state changes at login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Fullname == "" || req.AccessCode == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "fullname and accessCode are required")
		return
	}

	rows, err := h.db.Query(`
		SELECT id, fullname, has_voted FROM voter
		WHERE fullname = $1 AND access_code = $2
	`, req.Fullname, req.AccessCode)
	if err != nil {
		slog.Error("failed to query voter", "error", err)
		middleware.ErrorResponse(w, storageStatus(err), "Database error")
		return
	}
	defer rows.Close()

	var matches []models.Voter
	for rows.Next() {
		var v models.Voter
		if err := rows.Scan(&v.ID, &v.Fullname, &v.HasVoted); err != nil {
			slog.Error("failed to scan voter", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		matches = append(matches, v)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read voters", "error", err)
		middleware.ErrorResponse(w, storageStatus(err), "Database error")
		return
	}

	if len(matches) == 0 {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if len(matches) > 1 {
		// Access codes are unique at creation; more than one match means
		// the store is corrupt, not that the login is valid.
		slog.Error("integrity fault: ambiguous login match",
			"fullname", req.Fullname,
			"matches", len(matches),
		)
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	voter := matches[0]
	token := auth.SignVoterToken(voter.ID, h.cfg.TokenSecret, h.cfg.TokenTTL)

	slog.Info("voter logged in", "voter_id", voter.ID, "has_voted", voter.HasVoted)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		Token: token,
		Voter: voter,
	})
}
