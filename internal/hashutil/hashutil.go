package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
)

const fingerprintLen = 12

// HashStrings returns a SHA256 hash of the provided strings with newline separators.
func HashStrings(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprint is a short, log-safe digest of free text such as an account history.
func Fingerprint(text string) string {
	return HashStrings(text)[:fingerprintLen]
}
