// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/danielhkuo/ballotbox/election"
)

// ErrAlreadyVoted is returned when the voter's has_voted flag was already
// set. Exactly one of any number of racing commits for the same voter
// succeeds; the rest observe this error with no tally change.
var ErrAlreadyVoted = errors.New("voter has already voted")

// flipTimeout bounds the flag flip. If the outcome is unknown after this,
// the caller gets an error and may retry: the conditional UPDATE makes a
// retry land on either AlreadyVoted or the original attempt, never a
// second ballot.
const flipTimeout = 5 * time.Second

// PartialTallyError reports a commit where the voter's flag flipped but
// one or more counter increments failed. The vote stands - the flag flip
// is the commit point - and the failed candidate IDs are surfaced for
// operator reconciliation instead of being silently lost.
type PartialTallyError struct {
	VoterID string
	Applied []string
	Failed  []string
	cause   error
}

func (e *PartialTallyError) Error() string {
	return fmt.Sprintf("partial tally for voter %s: %d applied, failed candidates [%s]: %v",
		e.VoterID, len(e.Applied), strings.Join(e.Failed, ", "), e.cause)
}

func (e *PartialTallyError) Unwrap() error {
	return e.cause
}

// Commit applies a normalized ballot as one state transition:
// has_voted false -> true, plus one counter increment per selection.
//
// Step 1 is the single serialization point: a conditional UPDATE that sets
// the flag only if it is currently false. Zero rows affected means another
// request already won and nothing else happens. Step 2 runs only after the
// flip succeeds; each increment is an atomic single-row UPDATE, so
// concurrent commits for different voters need no coordination and
// multiple server processes stay correct against one shared store.
func Commit(ctx context.Context, db *sql.DB, voterID string, selections []election.Selection) error {
	flipCtx, cancel := context.WithTimeout(ctx, flipTimeout)
	defer cancel()

	res, err := db.ExecContext(flipCtx, `
		UPDATE voter SET has_voted = TRUE
		WHERE id = $1 AND has_voted = FALSE
	`, voterID)
	if err != nil {
		return fmt.Errorf("failed to mark voter %s as voted: %w", voterID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read flag flip result: %w", err)
	}
	if affected == 0 {
		return ErrAlreadyVoted
	}

	// The flag is committed. From here on failures degrade to a reported
	// partial tally, never to un-voting the voter or double counting.
	var applied, failed []string
	var cause error
	for _, sel := range selections {
		column := "approve_count"
		if !sel.Approve {
			column = "reject_count"
		}

		res, err := db.ExecContext(ctx, `
			UPDATE candidate SET `+column+` = `+column+` + 1
			WHERE id = $1
		`, sel.CandidateID)
		if err == nil {
			var n int64
			n, err = res.RowsAffected()
			if err == nil && n == 0 {
				err = fmt.Errorf("candidate %s not found", sel.CandidateID)
			}
		}

		if err != nil {
			slog.Error("tally increment failed",
				"voter_id", voterID,
				"candidate_id", sel.CandidateID,
				"error", err,
			)
			failed = append(failed, sel.CandidateID)
			cause = err
			continue
		}
		applied = append(applied, sel.CandidateID)
	}

	if len(failed) > 0 {
		return &PartialTallyError{
			VoterID: voterID,
			Applied: applied,
			Failed:  failed,
			cause:   cause,
		}
	}

	return nil
}
