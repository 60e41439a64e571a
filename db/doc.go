// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation and election seeding.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The SQL is portable across postgres (lib/pq) and sqlite (modernc.org/sqlite);
timestamps are always bound from the application, never via NOW().

# Tables

  - voter: registered voters with a unique access code and the has_voted flag
  - candidate: candidates per position with approve/reject counters

The has_voted flag is the single serialization point for ballot commits; the
engine package flips it with a conditional UPDATE, never read-then-write.
Counters are CHECK-constrained non-negative and only ever incremented.

# Seeding

SeedElection bulk-creates the candidate slate and voter records with
generated access codes. It refuses to run against a non-empty election so a
process restart can never reset tallies:

	creds, err := db.SeedElection(conn, db.DefaultSlate(), 40)

The returned credentials are distributed to voters out of band.

# Indexes

  - voter.access_code (unique)
  - voter.(fullname, access_code) for login lookup
  - voter.has_voted for turnout counts
  - candidate.position for definition snapshots
*/
package db
