// Package commit implements the commit/reveal check used to validate tickets
// at check-in: a digest of a secret is stored when the ticket is minted and
// the preimage is presented later to prove possession.
package commit

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest returns the hex-encoded SHA-256 digest of data.
func Digest(data string) string {
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}

// Verify reports whether revealed is the preimage of commitment.
func Verify(commitment, revealed string) bool {
	return commitment == Digest(revealed)
}
