package encryption

import (
	"fmt"

	"github.com/idelchi/godes/internal/block"
)

// Policy selects how the trailing padding of a decrypted stream is validated.
type Policy string

const (
	// PolicyStrict rejects a final block whose padding is not PKCS#5 well-formed.
	PolicyStrict Policy = "strict"
	// PolicyLenient trusts the last byte: values below the block size trim that many bytes,
	// anything else drops the whole final block. Nothing is rejected.
	PolicyLenient Policy = "lenient"
)

// ParsePolicy converts a policy name into a Policy.
func ParsePolicy(name string) (Policy, error) {
	switch p := Policy(name); p {
	case PolicyStrict, PolicyLenient:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}

// PadCount returns the number of padding bytes appended to a stream of length bytes.
// It is always in [1, block.Size].
func PadCount(length int) int {
	return block.Size - length%block.Size
}

// Pad completes the final block of a stream of length bytes.
// The final block holds the length%block.Size trailing bytes of the stream (none when the
// stream ends on a block boundary, in which case the block is entirely padding).
func Pad(final *block.Block, length int) {
	n := PadCount(length)

	for i := block.Size - n; i < block.Size; i++ {
		final[i] = byte(n)
	}
}

// Unpad returns the bytes of the final decrypted block that belong to the stream.
//
//nolint:gosec // padding values are bounded by block.Size
func (p Policy) Unpad(final block.Block) ([]byte, error) {
	n := int(final[block.Size-1])

	if p == PolicyLenient {
		if n < block.Size {
			return final[:block.Size-n], nil
		}

		return nil, nil
	}

	if n == 0 || n > block.Size {
		return nil, fmt.Errorf("%w: padding size %d", ErrPaddingValidation, n)
	}

	for i := block.Size - n; i < block.Size; i++ {
		if final[i] != byte(n) {
			return nil, fmt.Errorf("%w: byte %d is %d, want %d", ErrPaddingValidation, i, final[i], n)
		}
	}

	return final[:block.Size-n], nil
}
