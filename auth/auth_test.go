// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"testing"
)

func TestValidateOperatorKey(t *testing.T) {
	tests := []struct {
		name      string
		presented string
		expected  string
		wantErr   error
	}{
		{"matching key", "s3cret", "s3cret", nil},
		{"wrong key", "guess", "s3cret", ErrInvalidOperatorKey},
		{"prefix of key", "s3c", "s3cret", ErrInvalidOperatorKey},
		{"missing key", "", "s3cret", ErrMissingOperatorKey},
		{"no key configured", "anything", "", ErrInvalidOperatorKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOperatorKey(tt.presented, tt.expected)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateOperatorKey() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestHashIP(t *testing.T) {
	tests := []struct {
		name string
		ip   string
		salt string
	}{
		{"ipv4", "192.168.1.1", "salt"},
		{"ipv6", "2001:db8::1", "salt"},
		{"empty ip", "", "salt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash := HashIP(tt.ip, tt.salt)

			// 8 bytes hex encoded
			if len(hash) != 16 {
				t.Errorf("HashIP() length = %d, want 16", len(hash))
			}

			// Should be deterministic
			if hash != HashIP(tt.ip, tt.salt) {
				t.Error("HashIP() is not deterministic")
			}

			// Different salt should change the hash
			if hash == HashIP(tt.ip, tt.salt+"x") {
				t.Error("HashIP() ignored the salt")
			}
		})
	}
}
