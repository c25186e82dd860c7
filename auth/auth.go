// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

var (
	ErrMissingOperatorKey = errors.New("missing operator key")
	ErrInvalidOperatorKey = errors.New("invalid operator key")
)

// ValidateOperatorKey checks a presented operator key against the configured
// one. Both sides are hashed first so the comparison does not leak length.
func ValidateOperatorKey(presented, expected string) error {
	if presented == "" {
		return ErrMissingOperatorKey
	}
	p := sha256.Sum256([]byte(presented))
	e := sha256.Sum256([]byte(expected))
	if expected == "" || !hmac.Equal(p[:], e[:]) {
		return ErrInvalidOperatorKey
	}
	return nil
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough for log correlation
	return hex.EncodeToString(sum[:8])
}
