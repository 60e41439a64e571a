// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/election"
	"github.com/danielhkuo/ballotbox/engine"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
)

type VoteHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVoteHandler(db *sql.DB, cfg cliparse.Config) *VoteHandler {
	return &VoteHandler{db: db, cfg: cfg}
}

// storageStatus maps a storage-layer failure to an HTTP status: 503 when
// the store is unreachable or the operation timed out (fail closed, safe
// to retry), 500 otherwise.
func storageStatus(err error) int {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// GetCandidates handles GET /candidates
// Returns the election definition snapshot the ballot UI renders. Requires
// a bearer token.
func (h *VoteHandler) GetCandidates(w http.ResponseWriter, r *http.Request) {
	def, err := election.Load(h.db)
	if err != nil {
		slog.Error("failed to load election definition", "error", err)
		middleware.ErrorResponse(w, storageStatus(err), "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, def.Candidates())
}

// SubmitVote handles POST /vote
// Validates the ballot against the current election definition, then hands
// the normalized selections to the commit engine. Every validation failure
// happens before any mutation; the engine's conditional flag flip is the
// only gate against double voting.
func (h *VoteHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	voterID := middleware.VoterID(r)
	if voterID == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Bearer token required")
		return
	}

	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(req.Votes) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "votes cannot be empty")
		return
	}

	// The token proves identity, not existence or eligibility: resolve the
	// voter record. The has_voted read here only short-circuits obvious
	// re-votes; the engine's conditional update is what closes the race.
	var hasVoted bool
	err := h.db.QueryRow(`
		SELECT has_voted FROM voter WHERE id = $1
	`, voterID).Scan(&hasVoted)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Voter not found")
		return
	}
	if err != nil {
		slog.Error("failed to query voter", "error", err, "voter_id", voterID)
		middleware.ErrorResponse(w, storageStatus(err), "Database error")
		return
	}
	if hasVoted {
		middleware.ErrorResponse(w, http.StatusForbidden, "Already voted")
		return
	}

	def, err := election.Load(h.db)
	if err != nil {
		slog.Error("failed to load election definition", "error", err)
		middleware.ErrorResponse(w, storageStatus(err), "Database error")
		return
	}

	selections, err := def.Normalize(req.Votes)
	if err != nil {
		var malformed *election.MalformedBallotError
		if errors.As(err, &malformed) {
			middleware.ErrorResponse(w, http.StatusBadRequest, malformed.Reason)
			return
		}
		slog.Error("failed to normalize ballot", "error", err, "voter_id", voterID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to validate ballot")
		return
	}

	err = engine.Commit(r.Context(), h.db, voterID, selections)

	var partial *engine.PartialTallyError
	switch {
	case errors.Is(err, engine.ErrAlreadyVoted):
		middleware.ErrorResponse(w, http.StatusForbidden, "Already voted")
		return
	case errors.As(err, &partial):
		// The vote stands - the flag flip committed. Loud log for
		// reconciliation, non-fatal response for the voter.
		slog.Error("partial tally failure",
			"voter_id", partial.VoterID,
			"applied", partial.Applied,
			"failed", partial.Failed,
			"error", partial,
		)
		middleware.JSONResponse(w, http.StatusOK, models.SubmitVoteResponse{
			Message: "Vote recorded; tally reconciliation pending",
		})
		return
	case err != nil:
		slog.Error("failed to commit ballot", "error", err, "voter_id", voterID)
		middleware.ErrorResponse(w, storageStatus(err), "Failed to cast vote")
		return
	}

	slog.Info("vote cast", "voter_id", voterID, "selections", len(selections))

	middleware.JSONResponse(w, http.StatusOK, models.SubmitVoteResponse{
		Message: "Vote cast successfully",
	})
}
