// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"encoding/json"
	"fmt"
)

// Selection is the normalized form of one ballot entry: a candidate and a
// decision. Contested picks carry Approve=true; unopposed entries carry the
// voter's explicit choice.
type Selection struct {
	CandidateID string
	Approve     bool
}

// MalformedBallotError describes a structural validation failure. The
// ballot caused no mutation and the voter remains eligible.
type MalformedBallotError struct {
	Reason string
}

func (e *MalformedBallotError) Error() string {
	return "malformed ballot: " + e.Reason
}

// approveReject is the wire shape for unopposed positions.
type approveReject struct {
	CandidateID string `json:"candidateId"`
	Type        string `json:"type"`
}

// Normalize validates a raw ballot against the definition and resolves it
// into one Selection per position. All checks happen before any mutation:
//
//   - exactly one selection per known position, no unknown positions
//   - the candidate must belong to the position it is filed under
//   - contested positions take a bare candidate ID
//   - unopposed positions take an explicit yes/no - never a default
//
// Selections come back in sorted position order so commits are
// deterministic.
func (d *Definition) Normalize(votes map[string]json.RawMessage) ([]Selection, error) {
	for position := range votes {
		if _, known := d.byPosition[position]; !known {
			return nil, &MalformedBallotError{Reason: fmt.Sprintf("unknown position %q", position)}
		}
	}

	selections := make([]Selection, 0, len(d.byPosition))
	for _, position := range d.Positions() {
		raw, ok := votes[position]
		if !ok {
			return nil, &MalformedBallotError{Reason: fmt.Sprintf("missing selection for position %q", position)}
		}

		if d.Contested(position) {
			var candidateID string
			if err := json.Unmarshal(raw, &candidateID); err != nil || candidateID == "" {
				return nil, &MalformedBallotError{
					Reason: fmt.Sprintf("position %q is contested and takes a bare candidate id", position),
				}
			}
			if !d.candidateIn(position, candidateID) {
				return nil, &MalformedBallotError{
					Reason: fmt.Sprintf("candidate %q does not stand for position %q", candidateID, position),
				}
			}
			selections = append(selections, Selection{CandidateID: candidateID, Approve: true})
			continue
		}

		var choice approveReject
		if err := json.Unmarshal(raw, &choice); err != nil || choice.CandidateID == "" {
			return nil, &MalformedBallotError{
				Reason: fmt.Sprintf("position %q is unopposed and takes {candidateId, type}", position),
			}
		}
		if choice.Type != "yes" && choice.Type != "no" {
			return nil, &MalformedBallotError{
				Reason: fmt.Sprintf("position %q requires an explicit yes or no", position),
			}
		}
		if !d.candidateIn(position, choice.CandidateID) {
			return nil, &MalformedBallotError{
				Reason: fmt.Sprintf("candidate %q does not stand for position %q", choice.CandidateID, position),
			}
		}
		selections = append(selections, Selection{CandidateID: choice.CandidateID, Approve: choice.Type == "yes"})
	}

	return selections, nil
}
