package encryption

import (
	"crypto/cipher"
	"crypto/des" //nolint:gosec // DES is the transform this tool exists to run
	"fmt"

	"github.com/idelchi/godes/internal/block"
)

// KeySize is the length in bytes of a DES key.
const KeySize = block.Size

// Schedule holds the round keys derived from a DES key.
// It has no mutating methods and is safe for concurrent use by multiple workers.
type Schedule struct {
	cipher cipher.Block
}

// NewSchedule derives the key schedule for key.
// The key is copied; later changes to the slice do not affect the schedule.
func NewSchedule(key []byte) (*Schedule, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrKeyFormat, len(key), KeySize)
	}

	c, err := des.NewCipher(key) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	return &Schedule{cipher: c}, nil
}

// Transform encrypts or decrypts src into dst according to mode.
// dst and src may point to the same block.
func (s *Schedule) Transform(dst, src *block.Block, mode Mode) error {
	switch mode {
	case Encrypt:
		s.cipher.Encrypt(dst[:], src[:])
	case Decrypt:
		s.cipher.Decrypt(dst[:], src[:])
	default:
		return fmt.Errorf("%w: %d", ErrUnknownMode, mode)
	}

	return nil
}
