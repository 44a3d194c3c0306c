package encryption

// Mode represents the direction of the transform (Encrypt or Decrypt).
type Mode byte

const (
	// Encrypt transforms plaintext blocks into ciphertext blocks.
	Encrypt Mode = iota
	// Decrypt transforms ciphertext blocks back into plaintext blocks.
	Decrypt
)

func (m Mode) String() string {
	switch m {
	case Encrypt:
		return "encrypt"
	case Decrypt:
		return "decrypt"
	default:
		return "unknown"
	}
}
