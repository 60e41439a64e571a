// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The schema is deliberately portable across postgres and sqlite: no
// server-side defaults that differ between them, timestamps always bound
// from the application.
const schema = `
-- Voters
CREATE TABLE IF NOT EXISTS voter (
    id TEXT PRIMARY KEY,
    fullname TEXT NOT NULL,
    access_code TEXT NOT NULL UNIQUE,
    has_voted BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_voter_login ON voter(fullname, access_code);
CREATE INDEX IF NOT EXISTS idx_voter_has_voted ON voter(has_voted);

-- Candidates
CREATE TABLE IF NOT EXISTS candidate (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    position TEXT NOT NULL,
    approve_count INTEGER NOT NULL DEFAULT 0 CHECK (approve_count >= 0),
    reject_count INTEGER NOT NULL DEFAULT 0 CHECK (reject_count >= 0)
);

CREATE INDEX IF NOT EXISTS idx_candidate_position ON candidate(position);
`
