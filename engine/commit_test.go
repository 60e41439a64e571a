// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/ballotbox/election"
	"github.com/danielhkuo/ballotbox/testutil"
)

func TestCommitAppliesAllEffects(t *testing.T) {
	conn := testutil.SetupTestDB(t)

	voterID, _ := testutil.CreateTestVoter(t, conn, "Voter One", false)
	candA := testutil.CreateTestCandidate(t, conn, "A", "President")
	candB := testutil.CreateTestCandidate(t, conn, "B", "President")
	candC := testutil.CreateTestCandidate(t, conn, "C", "Secretary")

	err := Commit(context.Background(), conn, voterID, []election.Selection{
		{CandidateID: candA, Approve: true},
		{CandidateID: candC, Approve: false},
	})
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	if !testutil.VoterHasVoted(t, conn, voterID) {
		t.Error("voter not marked as voted after commit")
	}

	approve, reject := testutil.CandidateCounts(t, conn, candA)
	if approve != 1 || reject != 0 {
		t.Errorf("candidate A counts = (%d, %d), want (1, 0)", approve, reject)
	}

	approve, reject = testutil.CandidateCounts(t, conn, candC)
	if approve != 0 || reject != 1 {
		t.Errorf("candidate C counts = (%d, %d), want (0, 1)", approve, reject)
	}

	// Untouched candidate stays at zero
	approve, reject = testutil.CandidateCounts(t, conn, candB)
	if approve != 0 || reject != 0 {
		t.Errorf("candidate B counts = (%d, %d), want (0, 0)", approve, reject)
	}
}

func TestCommitAlreadyVoted(t *testing.T) {
	conn := testutil.SetupTestDB(t)

	voterID, _ := testutil.CreateTestVoter(t, conn, "Voter One", true)
	candA := testutil.CreateTestCandidate(t, conn, "A", "President")

	err := Commit(context.Background(), conn, voterID, []election.Selection{
		{CandidateID: candA, Approve: true},
	})
	if !errors.Is(err, ErrAlreadyVoted) {
		t.Fatalf("Commit() error = %v, want ErrAlreadyVoted", err)
	}

	// No tally change on the losing path
	approve, reject := testutil.CandidateCounts(t, conn, candA)
	if approve != 0 || reject != 0 {
		t.Errorf("candidate counts = (%d, %d) after AlreadyVoted, want (0, 0)", approve, reject)
	}
}

func TestCommitSecondAttemptRejected(t *testing.T) {
	conn := testutil.SetupTestDB(t)

	voterID, _ := testutil.CreateTestVoter(t, conn, "Voter One", false)
	candA := testutil.CreateTestCandidate(t, conn, "A", "President")
	candB := testutil.CreateTestCandidate(t, conn, "B", "President")

	first := []election.Selection{{CandidateID: candA, Approve: true}}
	if err := Commit(context.Background(), conn, voterID, first); err != nil {
		t.Fatalf("first Commit() error = %v", err)
	}

	// Retry with a different ballot must not add any increments
	second := []election.Selection{{CandidateID: candB, Approve: true}}
	if err := Commit(context.Background(), conn, voterID, second); !errors.Is(err, ErrAlreadyVoted) {
		t.Fatalf("second Commit() error = %v, want ErrAlreadyVoted", err)
	}

	approve, _ := testutil.CandidateCounts(t, conn, candA)
	if approve != 1 {
		t.Errorf("candidate A approve = %d, want 1", approve)
	}
	approve, _ = testutil.CandidateCounts(t, conn, candB)
	if approve != 0 {
		t.Errorf("candidate B approve = %d, want 0", approve)
	}
}

func TestCommitPartialTally(t *testing.T) {
	conn := testutil.SetupTestDB(t)

	voterID, _ := testutil.CreateTestVoter(t, conn, "Voter One", false)
	candA := testutil.CreateTestCandidate(t, conn, "A", "President")

	err := Commit(context.Background(), conn, voterID, []election.Selection{
		{CandidateID: candA, Approve: true},
		{CandidateID: "vanished-candidate", Approve: true},
	})

	var partial *PartialTallyError
	if !errors.As(err, &partial) {
		t.Fatalf("Commit() error = %v, want PartialTallyError", err)
	}

	if len(partial.Applied) != 1 || partial.Applied[0] != candA {
		t.Errorf("Applied = %v, want [%s]", partial.Applied, candA)
	}
	if len(partial.Failed) != 1 || partial.Failed[0] != "vanished-candidate" {
		t.Errorf("Failed = %v, want [vanished-candidate]", partial.Failed)
	}

	// The flag flip is the commit point: the voter stays voted
	if !testutil.VoterHasVoted(t, conn, voterID) {
		t.Error("voter un-voted after partial tally failure")
	}

	approve, _ := testutil.CandidateCounts(t, conn, candA)
	if approve != 1 {
		t.Errorf("candidate A approve = %d, want 1", approve)
	}
}

// TestCommitConcurrentSameVoter races N commits for one voter: exactly one
// may win the flag flip, and the tallies must reflect only the winner.
func TestCommitConcurrentSameVoter(t *testing.T) {
	conn := testutil.SetupTestDB(t)

	voterID, _ := testutil.CreateTestVoter(t, conn, "Racer", false)
	candA := testutil.CreateTestCandidate(t, conn, "A", "President")
	candB := testutil.CreateTestCandidate(t, conn, "B", "President")

	numAttempts := 8
	var successCount, alreadyCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			// Alternate ballots so a double-apply would be visible
			candidateID := candA
			if idx%2 == 1 {
				candidateID = candB
			}

			err := Commit(context.Background(), conn, voterID, []election.Selection{
				{CandidateID: candidateID, Approve: true},
			})
			switch {
			case err == nil:
				successCount.Add(1)
			case errors.Is(err, ErrAlreadyVoted):
				alreadyCount.Add(1)
			default:
				t.Errorf("Commit() unexpected error = %v", err)
			}
		}(i)
	}

	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("Expected exactly 1 successful commit, got %d", successCount.Load())
	}
	if alreadyCount.Load() != int32(numAttempts-1) {
		t.Errorf("Expected %d AlreadyVoted, got %d", numAttempts-1, alreadyCount.Load())
	}

	approveA, _ := testutil.CandidateCounts(t, conn, candA)
	approveB, _ := testutil.CandidateCounts(t, conn, candB)
	if approveA+approveB != 1 {
		t.Errorf("total increments = %d, want exactly 1 (only the winning ballot)", approveA+approveB)
	}
}

// TestCommitConcurrentDistinctVoters verifies increments from independent
// voters all land: the final count equals the number of committed voters.
func TestCommitConcurrentDistinctVoters(t *testing.T) {
	conn := testutil.SetupTestDB(t)

	candA := testutil.CreateTestCandidate(t, conn, "A", "President")

	numVoters := 12
	voterIDs := make([]string, numVoters)
	for i := 0; i < numVoters; i++ {
		voterIDs[i], _ = testutil.CreateTestVoter(t, conn, "Voter "+string(rune('A'+i)), false)
	}

	var wg sync.WaitGroup
	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			err := Commit(context.Background(), conn, voterIDs[idx], []election.Selection{
				{CandidateID: candA, Approve: true},
			})
			if err != nil {
				t.Errorf("Commit() for voter %d error = %v", idx, err)
			}
		}(i)
	}

	wg.Wait()

	approve, _ := testutil.CandidateCounts(t, conn, candA)
	if approve != numVoters {
		t.Errorf("candidate approve = %d, want %d (no loss, no double count)", approve, numVoters)
	}
}
