// Package gameid generates sortable hand identifiers.
package gameid

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Generate creates a new ID: a UUIDv7 encoded as a 26-character base32 string.
// IDs generated later sort after IDs generated earlier.
func Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("gameid: failed to generate uuid: " + err.Error())
	}
	return encodeBase32(id)
}

// FromReader creates an ID whose random bits are read from r. Tests use this
// with a seeded reader to get stable suffixes.
func FromReader(r io.Reader) (string, error) {
	id, err := uuid.NewV7FromReader(r)
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return encodeBase32(id), nil
}

// encodeBase32 encodes 128 bits as 26 base32 characters, most significant first.
// The leading character only carries three bits so it is always 0-7.
func encodeBase32(id uuid.UUID) string {
	hi := binary.BigEndian.Uint64(id[:8])
	lo := binary.BigEndian.Uint64(id[8:])

	out := make([]byte, 26)
	for i := 25; i >= 0; i-- {
		out[i] = alphabet[lo&31]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}
	return string(out)
}

// Validate checks if an ID is valid (26 characters, valid base32)
func Validate(id string) error {
	if len(id) != 26 {
		return fmt.Errorf("id must be exactly 26 characters, got %d", len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("id first character must be 0-7, got %c", id[0])
	}
	for i, char := range id {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}
	return nil
}
