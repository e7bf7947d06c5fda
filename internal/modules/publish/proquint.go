package publish

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strings"
)

// Proquint encoding: a 32-bit value rendered as two pronounceable
// five-letter quints ("lusab-babad"). Used for distribution tokens.

const (
	proquintConsonants = "bdfghjklmnprstvz"
	proquintVowels     = "aiou"
)

func encodeQuint(x uint16) string {
	var b [5]byte
	b[0] = proquintConsonants[(x>>12)&0x0f]
	b[1] = proquintVowels[(x>>10)&0x03]
	b[2] = proquintConsonants[(x>>6)&0x0f]
	b[3] = proquintVowels[(x>>4)&0x03]
	b[4] = proquintConsonants[x&0x0f]
	return string(b[:])
}

// EncodeProquint renders x as "quint-quint".
func EncodeProquint(x uint32) string {
	return encodeQuint(uint16(x>>16)) + "-" + encodeQuint(uint16(x))
}

// DecodeProquint inverts EncodeProquint.
func DecodeProquint(token string) (uint32, error) {
	cleaned := strings.ReplaceAll(token, "-", "")
	if len(cleaned) != 10 {
		return 0, fmt.Errorf("malformed proquint %q", token)
	}
	var x uint32
	for i, c := range []byte(cleaned) {
		if i%2 == 0 {
			idx := strings.IndexByte(proquintConsonants, c)
			if idx < 0 {
				return 0, fmt.Errorf("malformed proquint %q", token)
			}
			x = x<<4 | uint32(idx)
		} else {
			idx := strings.IndexByte(proquintVowels, c)
			if idx < 0 {
				return 0, fmt.Errorf("malformed proquint %q", token)
			}
			x = x<<2 | uint32(idx)
		}
	}
	return x, nil
}

// GenerateToken returns a random proquint token.
func GenerateToken() (string, error) {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("could not read randomness for token: %w", err)
	}
	return EncodeProquint(binary.BigEndian.Uint32(buf[:])), nil
}
