package models

import "encoding/json"

// Request types

type LoginRequest struct {
	Fullname   string `json:"fullname"`
	AccessCode string `json:"accessCode"`
}

// SubmitVoteRequest maps position label -> raw selection. A selection is
// either a bare candidate ID string (contested position) or an object
// {"candidateId": "...", "type": "yes"|"no"} (unopposed position). The
// election package resolves the raw shape into a normalized selection.
type SubmitVoteRequest struct {
	Votes map[string]json.RawMessage `json:"votes"`
}

// Response types

type LoginResponse struct {
	Token string `json:"token"`
	Voter Voter  `json:"voter"`
}

type SubmitVoteResponse struct {
	Message string `json:"message"`
}

type StatsResponse struct {
	TotalVoters int `json:"totalVoters"`
	VotedVoters int `json:"votedVoters"`
}

// Domain types

type Voter struct {
	ID         string `json:"id"`
	Fullname   string `json:"fullname"`
	AccessCode string `json:"-"` // Never expose in JSON
	HasVoted   bool   `json:"hasVoted"`
}

type Candidate struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Position     string `json:"position"`
	ApproveCount int    `json:"votes"`
	RejectCount  int    `json:"noVotes"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
