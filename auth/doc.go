// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides ID generation and the voter bearer token scheme.

# Voter Tokens

Tokens are HMAC-SHA256 signed assertions binding exactly one voter identity
with a fixed expiry:

	token := auth.SignVoterToken(voterID, secret, time.Hour)
	voterID, err := auth.VerifyVoterToken(token, secret)

Verification is stateless - a pure signature and expiry check with no
database round-trip. Expired and malformed tokens return ErrExpiredToken
and ErrInvalidToken respectively so callers can map them to distinct HTTP
statuses.

# ID Generation

GenerateID produces random hex IDs for records without natural keys.
GenerateAccessCode produces short uppercase codes that are distributed to
voters out of band at election setup.
*/
package auth
