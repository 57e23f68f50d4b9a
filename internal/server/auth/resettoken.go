package auth

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/guardianeye/guardianeye/internal/common"
)

// resetTokenBytes is the entropy of a raw reset secret before hex encoding.
const resetTokenBytes = 20

// NewResetToken returns a fresh raw reset secret for the user and the digest
// to persist in its place.
func NewResetToken() (raw, digest string, err error) {
	raw, err = common.MakeRandHexString(resetTokenBytes)
	if err != nil {
		return "", "", err
	}
	return raw, HashResetToken(raw), nil
}

// HashResetToken returns the hex SHA-256 digest of a raw reset secret.
func HashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
