// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Ballot Box API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - AuthHandler: login and token issuance
  - VoteHandler: election definition retrieval and ballot submission
  - ResultsHandler: public results and turnout stats

Handlers are created via constructor functions that accept *sql.DB and Config:

	voteHandler := handlers.NewVoteHandler(db, cfg)

# Voting Flow

	POST /auth/login  → Login (returns bearer token + voter snapshot)
	GET  /candidates  → GetCandidates (bearer token required)
	POST /vote        → SubmitVote (bearer token required)
	GET  /results     → GetResults (public)
	GET  /stats       → GetStats (public)

# Ballot Submission

SubmitVote validates everything before mutating anything: token, voter
existence and eligibility, then ballot structure via election.Normalize.
The normalized selections go to engine.Commit, whose conditional flag flip
is the single gate against double voting. A PartialTallyError from the
engine is logged for operator reconciliation; the voter still receives a
recorded-vote response because the flag flip is the commit point.

# Error Mapping

	400 malformed ballot or bad JSON (no state change)
	401 missing credential / invalid login
	403 bad or expired token, or voter already voted
	404 token resolves to no voter record
	503 store unreachable or operation timed out (safe to retry)
	500 anything else
*/
package handlers
