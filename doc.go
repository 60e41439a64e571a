// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Ballot Box API server.

Ballot Box is a small election service: voters authenticate with a name
and access code, cast one ballot across several positions, and a results
page polls live tallies. The vote-casting transaction is the core - a
voter's has_voted flag flips exactly once, and every selection increments
exactly one candidate counter.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... TOKEN_SECRET=... go run main.go

Or with flags:

	go run main.go -p 5000 -d "postgres://..." -token-secret devsecret

Seed the default election (candidate slate plus voter access codes) on
first start:

	go run main.go -d ballotbox.db -token-secret devsecret -seed

# Configuration

Required settings:

  - DATABASE_URL (-d): connection string
  - TOKEN_SECRET (-token-secret): HMAC secret for voter bearer tokens

Optional settings:

  - PORT (-p): server port (default: 5000)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - TOKEN_TTL (-token-ttl): voter token lifetime (default: 1h)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (login, voting, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Auth, CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Voter token signing and verification
  - election: Definition snapshots and ballot validation
  - engine: Atomic ballot commit
  - db: Schema creation and election seeding
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
