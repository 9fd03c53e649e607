// Package playerid produces globally unique player identities.
//
// Identities are UUIDv7 values rendered as 26-character Crockford base32
// strings, so they sort by creation time and stay URL and log friendly.
package playerid

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the number of characters in an encoded identity.
const Length = 26

// Generator creates player identities from a configurable entropy source.
type Generator struct {
	rand io.Reader
}

// NewGenerator creates a generator. A nil reader uses crypto/rand.
func NewGenerator(r io.Reader) *Generator {
	return &Generator{rand: r}
}

// Generate creates a new player identity.
func Generate() string {
	return NewGenerator(nil).Generate()
}

// Generate creates a new identity using the generator's entropy source.
func (g *Generator) Generate() string {
	var (
		id  uuid.UUID
		err error
	)
	if g.rand != nil {
		id, err = uuid.NewV7FromReader(g.rand)
	} else {
		id, err = uuid.NewV7()
	}
	if err != nil {
		// Exhausted test readers fall back to the system source.
		id = uuid.Must(uuid.NewV7())
	}
	return encodeBase32(id)
}

// encodeBase32 encodes a 128-bit UUID as a 26-character base32 string
func encodeBase32(data uuid.UUID) string {
	result := make([]byte, Length)

	// 130 bits of output: two zero bits followed by the 128-bit value.
	for i := 0; i < Length; i++ {
		bitOffset := i*5 - 2
		var value uint8
		for b := 0; b < 5; b++ {
			pos := bitOffset + b
			value <<= 1
			if pos < 0 {
				continue
			}
			if data[pos/8]&(0x80>>(pos%8)) != 0 {
				value |= 1
			}
		}
		result[i] = alphabet[value]
	}

	return string(result)
}

// Validate checks if a player ID is valid (26 characters, valid base32)
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("player ID must be exactly %d characters, got %d", Length, len(id))
	}

	// The leading character only carries three bits.
	if id[0] > '7' {
		return fmt.Errorf("player ID first character must be 0-7, got %c", id[0])
	}

	for i, char := range id {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}

	return nil
}
