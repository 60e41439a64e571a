// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and response helpers.

# Middleware

  - WithLogging: structured request start/complete logging via slog
  - RequireVoter: bearer token verification; resolves the voter identity
    into the request context (read it back with VoterID)
  - CORS: cross-origin headers and preflight handling

RequireVoter distinguishes a missing credential (401) from an invalid or
expired one (403). Token verification is pure - no storage round-trip per
request.

# Helpers

  - JSONResponse / ErrorResponse: JSON encoding with standard error shape
  - ParseJSONBody: request body decoding
  - GetClientIP: client address extraction behind proxies
*/
package middleware
