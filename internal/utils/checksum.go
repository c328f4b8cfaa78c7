package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// Checksum computes a SHA-256 content fingerprint over data and returns
// it hex-encoded. The delta tracker stores these per record to detect
// remote changes without comparing full payloads.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
