package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// Fingerprint identifies a table shape so a report can state what it describes
type Fingerprint Hash

func (f Fingerprint) String() string { return Hash(f).String() }

// ComputeFingerprint hashes the column names and row count of a table.
// Column order matters: the same columns in a different order are a
// different table as far as a cleaning report is concerned.
func ComputeFingerprint(columnNames []string, rowCount int) Fingerprint {
	var data strings.Builder
	for _, name := range columnNames {
		data.WriteString(name)
		data.WriteString("\x00")
	}
	data.WriteString(fmt.Sprintf("rows=%d", rowCount))
	return Fingerprint(NewHash([]byte(data.String())))
}
