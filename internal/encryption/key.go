package encryption

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// GenerateKey returns KeySize fresh random bytes.
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generating key: %w", err)
	}

	return key, nil
}

// KeyFromHex decodes a hex-encoded key.
func KeyFromHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)

	if len(s) != 2*KeySize {
		return nil, fmt.Errorf("%w: hex key must be %d characters, got %d", ErrKeyFormat, 2*KeySize, len(s))
	}

	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyFormat, err)
	}

	return key, nil
}

// ParseKey interprets the contents of a key file.
// Exactly KeySize bytes are taken as a raw key; anything else must be a hex-encoded key,
// optionally surrounded by whitespace.
func ParseKey(data []byte) ([]byte, error) {
	if len(data) == KeySize {
		return bytes.Clone(data), nil
	}

	return KeyFromHex(string(data))
}
