package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// resetTokenBytes is the entropy of password reset tokens.
const resetTokenBytes = 32

// HashResetToken returns the SHA-256 hex digest stored in place of a reset token.
func HashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// NewResetToken returns a fresh reset token and the hash to persist.
func NewResetToken() (token string, hash string, err error) {
	token, err = GenerateSecureRandomString(resetTokenBytes)
	if err != nil {
		return "", "", err
	}
	return token, HashResetToken(token), nil
}
