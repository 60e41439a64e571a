// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP routes using Go 1.22+ method routing.

# Routes

	POST /auth/login  login
	GET  /candidates  election definition (bearer token)
	POST /vote        ballot submission (bearer token)
	GET  /results     live tallies (public)
	GET  /stats       turnout counts (public)
	GET  /health      store-aware health check
	GET  /            API banner

All routes except /health and / are wrapped with request logging.
Token-gated routes are wrapped with middleware.RequireVoter.
*/
package router
