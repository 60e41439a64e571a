// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/election"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
)

type ResultsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg}
}

// GetResults handles GET /results
// Public snapshot of every candidate with current counts. Safe to poll
// arbitrarily often and concurrently with commits; read skew across
// positions within one response is acceptable.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	def, err := election.Load(h.db)
	if err != nil {
		slog.Error("failed to load results", "error", err)
		middleware.ErrorResponse(w, storageStatus(err), "Database error")
		return
	}

	candidates := def.Candidates()
	if position := r.URL.Query().Get("position"); position != "" {
		filtered := []models.Candidate{}
		for _, c := range candidates {
			if c.Position == position {
				filtered = append(filtered, c)
			}
		}
		candidates = filtered
	}

	middleware.JSONResponse(w, http.StatusOK, candidates)
}

// GetStats handles GET /stats
// Returns turnout counts: registered voters and voters who have committed
// a ballot.
func (h *ResultsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	var stats models.StatsResponse

	err := h.db.QueryRow(`SELECT COUNT(*) FROM voter`).Scan(&stats.TotalVoters)
	if err != nil {
		slog.Error("failed to count voters", "error", err)
		middleware.ErrorResponse(w, storageStatus(err), "Database error")
		return
	}

	err = h.db.QueryRow(`SELECT COUNT(*) FROM voter WHERE has_voted = TRUE`).Scan(&stats.VotedVoters)
	if err != nil {
		slog.Error("failed to count voted voters", "error", err)
		middleware.ErrorResponse(w, storageStatus(err), "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, stats)
}
