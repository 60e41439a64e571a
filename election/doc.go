// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package election derives the election definition and validates ballots.

# Definition

The definition is not stored separately - it is derived from the candidate
table. Positions are the distinct position labels; a position with two or
more candidates is contested, a position with exactly one is unopposed:

	def, err := election.Load(db)
	def.Contested("President") // true for 2+ candidates

# Ballot Validation

Normalize is the only path from a raw ballot payload to something the
commit engine will accept. It is pure and read-only given a definition
snapshot: it either returns one normalized Selection per position or a
MalformedBallotError, and it never touches storage.

The raw wire shape is dynamic (a bare string for contested positions, an
object for unopposed ones); Normalize collapses both into the single
Selection form so the engine consumes exactly one shape.
*/
package election
