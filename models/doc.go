// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the request, response, and domain types shared
across the Ballot Box API.

# Domain Types

  - Voter: a registered voter with a one-way has_voted flag
  - Candidate: a candidate standing for a position, with approve/reject tallies

The voter's access code is never serialized to JSON.

# Wire Shapes

SubmitVoteRequest carries raw (undecoded) selections because the two
position modes use different JSON shapes:

	{"votes": {"President": "<candidateId>",
	           "Secretary": {"candidateId": "...", "type": "yes"}}}

Contested positions take a bare candidate ID; unopposed positions take an
explicit yes/no object. The election package normalizes both into a single
tagged form before any mutation happens.
*/
package models
