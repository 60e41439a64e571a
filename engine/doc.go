// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package engine commits normalized ballots to the store.

# Commit Protocol

A commit is the per-voter state transition NotVoted -> Voted plus the
counter increments the ballot implies. The protocol, in order:

 1. Flip has_voted with a conditional UPDATE (set TRUE only where FALSE).
    This is the single linearization point for "has this voter voted".
    Zero rows affected means a concurrent or earlier request already won:
    return ErrAlreadyVoted, touch nothing else.
 2. Only after the flip, apply one atomic increment per selection.

There is no transition out of Voted. If an increment fails after the flip,
the voter stays voted and Commit returns a PartialTallyError naming the
applied and failed candidates, so the inconsistency is observable and
reconcilable rather than silent. Voter-level idempotence is deliberately
prioritized over tally atomicity.

# Concurrency

All mutation is expressed as single-row conditional or atomic UPDATEs, so
no in-process lock is involved and any number of server processes can run
against one shared store. Increments across candidates commute; only the
per-voter flag flip carries an ordering guarantee.
*/
package engine
