// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateAccessCode creates a random voter access code.
// Uppercase hex keeps codes easy to read out and type.
func GenerateAccessCode() (string, error) {
	b := make([]byte, 4)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate access code: %w", err)
	}
	return strings.ToUpper(hex.EncodeToString(b)), nil
}

// SignVoterToken issues a bearer token bound to a single voter identity.
// Format: base64url(voterID|expiryUnix) + "." + base64url(hmac-sha256).
// The token carries no other claims and verifies without a storage lookup.
func SignVoterToken(voterID, secret string, ttl time.Duration) string {
	expiry := time.Now().Add(ttl).Unix()
	payload := voterID + "|" + strconv.FormatInt(expiry, 10)
	encoded := base64.RawURLEncoding.EncodeToString([]byte(payload))
	return encoded + "." + sign(encoded, secret)
}

// VerifyVoterToken checks a token's signature and expiry and returns the
// voter identity it is bound to. Pure function of (token, secret, clock);
// no shared state.
func VerifyVoterToken(token, secret string) (string, error) {
	encoded, sig, found := strings.Cut(token, ".")
	if !found {
		return "", ErrInvalidToken
	}

	expected := sign(encoded, secret)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return "", ErrInvalidToken
	}

	payload, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidToken
	}

	voterID, expiryStr, found := strings.Cut(string(payload), "|")
	if !found || voterID == "" {
		return "", ErrInvalidToken
	}

	expiry, err := strconv.ParseInt(expiryStr, 10, 64)
	if err != nil {
		return "", ErrInvalidToken
	}
	if time.Now().Unix() >= expiry {
		return "", ErrExpiredToken
	}

	return voterID, nil
}

func sign(payload, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}
