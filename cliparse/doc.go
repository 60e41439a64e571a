// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration from CLI flags and environment
variables.

# Precedence

CLI flags take precedence over environment variables, which take precedence
over defaults:

	ballotbox -p 5000 -d "postgres://..." -token-secret devsecret

# Settings

Required:

  - DATABASE_URL (-d): connection string
  - TOKEN_SECRET (-token-secret): HMAC secret for voter tokens

Optional:

  - PORT (-p): server port (default: 5000)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - TOKEN_TTL (-token-ttl): voter token lifetime (default: 1h)
  - -seed: seed the default election at startup
  - -seed-voters: voter count for seeding (default: 40)

Secrets should come from the environment in production; the flags exist for
local development only.
*/
package cliparse
