// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/danielhkuo/ballotbox/auth"
)

// ErrAlreadySeeded is returned when SeedElection finds existing voters or
// candidates. A restart must never reset tallies or re-issue access codes.
var ErrAlreadySeeded = errors.New("election already seeded")

// SeedCandidate is a candidate slate entry before IDs are assigned.
type SeedCandidate struct {
	Name     string
	Position string
}

// VoterCredential is the out-of-band login material produced for one
// seeded voter.
type VoterCredential struct {
	VoterID    string
	Fullname   string
	AccessCode string
}

// DefaultSlate returns the stock candidate slate: one contested presidency
// and a set of unopposed offices.
func DefaultSlate() []SeedCandidate {
	return []SeedCandidate{
		{Name: "Jordan Avery", Position: "President"},
		{Name: "Sam Whitfield", Position: "President"},
		{Name: "Priya Raman", Position: "Vice President"},
		{Name: "Marcus Oduya", Position: "General Secretary"},
		{Name: "Elena Kovac", Position: "Treasurer"},
		{Name: "Tomas Lindqvist", Position: "Financial Secretary"},
		{Name: "Aisha Bello", Position: "Organizer"},
	}
}

// SeedElection bulk-creates the candidate slate and numVoters voter records
// with generated access codes. It refuses to run against a non-empty
// election and returns the credentials for distribution.
func SeedElection(db *sql.DB, slate []SeedCandidate, numVoters int) ([]VoterCredential, error) {
	var existing int
	err := db.QueryRow(`
		SELECT (SELECT COUNT(*) FROM voter) + (SELECT COUNT(*) FROM candidate)
	`).Scan(&existing)
	if err != nil {
		return nil, fmt.Errorf("failed to check election state: %w", err)
	}
	if existing > 0 {
		return nil, ErrAlreadySeeded
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, c := range slate {
		candidateID, err := auth.GenerateID(8)
		if err != nil {
			return nil, err
		}
		_, err = tx.Exec(`
			INSERT INTO candidate (id, name, position, approve_count, reject_count)
			VALUES ($1, $2, $3, 0, 0)
		`, candidateID, c.Name, c.Position)
		if err != nil {
			return nil, fmt.Errorf("failed to insert candidate %q: %w", c.Name, err)
		}
	}

	creds := make([]VoterCredential, 0, numVoters)
	for i := 1; i <= numVoters; i++ {
		cred := VoterCredential{
			VoterID:  uuid.NewString(),
			Fullname: fmt.Sprintf("Voter %d", i),
		}

		// Retry on the (unlikely) access code collision rather than fail
		// the whole seed.
		for attempt := 0; ; attempt++ {
			cred.AccessCode, err = auth.GenerateAccessCode()
			if err != nil {
				return nil, err
			}

			_, err = tx.Exec(`
				INSERT INTO voter (id, fullname, access_code, has_voted, created_at)
				VALUES ($1, $2, $3, FALSE, $4)
			`, cred.VoterID, cred.Fullname, cred.AccessCode, time.Now())
			if err == nil {
				break
			}
			if !IsUniqueViolation(err) || attempt >= 3 {
				return nil, fmt.Errorf("failed to insert voter %q: %w", cred.Fullname, err)
			}
		}

		creds = append(creds, cred)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit seed: %w", err)
	}

	slog.Info("election seeded",
		"candidates", humanize.Comma(int64(len(slate))),
		"voters", humanize.Comma(int64(len(creds))),
	)

	return creds, nil
}

// IsUniqueViolation reports whether err is a unique constraint violation
// from either supported driver.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505" // unique_violation
	}
	// modernc.org/sqlite reports constraint failures by message
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
