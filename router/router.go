// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/handlers"
	"github.com/danielhkuo/ballotbox/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	voteHandler := handlers.NewVoteHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)

	// Health check pings the store: every operation fails closed when the
	// database is unreachable, so surface that here too
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Database unreachable")
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Login (public)
	mux.HandleFunc("POST /auth/login", middleware.WithLogging(authHandler.Login))

	// Voting operations (bearer token)
	mux.HandleFunc("GET /candidates", middleware.WithLogging(
		middleware.RequireVoter(cfg.TokenSecret, voteHandler.GetCandidates)))
	mux.HandleFunc("POST /vote", middleware.WithLogging(
		middleware.RequireVoter(cfg.TokenSecret, voteHandler.SubmitVote)))

	// Results polling (public)
	mux.HandleFunc("GET /results", middleware.WithLogging(resultsHandler.GetResults))
	mux.HandleFunc("GET /stats", middleware.WithLogging(resultsHandler.GetStats))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ballotbox API v1"))
	})

	return mux
}
