// Package uuid generates time-ordered identifiers for database keys.
package uuid

import (
	"crypto/rand"
	"encoding/binary"
	"time"

	googleuuid "github.com/google/uuid"
)

// New generates a UUIDv7 string from the current timestamp. Time-ordered
// IDs keep b-tree inserts append-mostly, which matters for the insight
// table that is rewritten on every generation pass.
func New() string {
	var id [16]byte

	ts := uint64(time.Now().UnixMilli())
	binary.BigEndian.PutUint64(id[0:8], ts<<16)

	if _, err := rand.Read(id[6:]); err != nil {
		// Random source failure: fall back to UUIDv4.
		return googleuuid.New().String()
	}

	// version 7, RFC 4122 variant
	id[6] = (id[6] & 0x0f) | 0x70
	id[8] = (id[8] & 0x3f) | 0x80

	return googleuuid.UUID(id).String()
}

// IsValid reports whether s parses as a UUID.
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
