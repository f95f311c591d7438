package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"time"
)

// GenerateUniqueHash returns a random hex id for a component instance.
func GenerateUniqueHash() string {
	var input [8 + 16]byte
	binary.LittleEndian.PutUint64(input[:8], uint64(time.Now().UnixNano()))
	if _, err := rand.Read(input[8:]); err != nil {
		panic("random number generator failed")
	}

	hash := sha256.Sum256(input[:])
	return hex.EncodeToString(hash[:])
}
