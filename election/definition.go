// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/danielhkuo/ballotbox/models"
)

// Definition is a snapshot of the election: every candidate, grouped by
// position. Positions with two or more candidates are contested (voter
// picks one); positions with exactly one are unopposed (voter approves or
// rejects that candidate).
type Definition struct {
	candidates []models.Candidate
	byPosition map[string][]models.Candidate
}

// NewDefinition builds a definition from a candidate snapshot.
func NewDefinition(candidates []models.Candidate) *Definition {
	d := &Definition{
		candidates: candidates,
		byPosition: make(map[string][]models.Candidate),
	}
	for _, c := range candidates {
		d.byPosition[c.Position] = append(d.byPosition[c.Position], c)
	}
	return d
}

// Load reads the current candidate table into a definition snapshot.
func Load(db *sql.DB) (*Definition, error) {
	rows, err := db.Query(`
		SELECT id, name, position, approve_count, reject_count
		FROM candidate
		ORDER BY position, name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.Name, &c.Position, &c.ApproveCount, &c.RejectCount); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read candidates: %w", err)
	}

	return NewDefinition(candidates), nil
}

// Candidates returns the full candidate snapshot.
func (d *Definition) Candidates() []models.Candidate {
	return d.candidates
}

// Positions returns all known position labels in sorted order.
func (d *Definition) Positions() []string {
	positions := make([]string, 0, len(d.byPosition))
	for p := range d.byPosition {
		positions = append(positions, p)
	}
	sort.Strings(positions)
	return positions
}

// Contested reports whether a position has two or more candidates.
func (d *Definition) Contested(position string) bool {
	return len(d.byPosition[position]) >= 2
}

// candidateIn reports whether candidateID belongs to position.
func (d *Definition) candidateIn(position, candidateID string) bool {
	for _, c := range d.byPosition[position] {
		if c.ID == candidateID {
			return true
		}
	}
	return false
}
