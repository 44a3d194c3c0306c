package encryption

import "errors"

var (
	// ErrKeyFormat is returned when key material is not exactly one block long.
	ErrKeyFormat = errors.New("invalid key format")
	// ErrUnknownMode is returned when a transform is requested with an unsupported Mode.
	ErrUnknownMode = errors.New("unknown mode")
	// ErrPaddingValidation is returned when the trailing padding of a decrypted stream is malformed.
	ErrPaddingValidation = errors.New("invalid padding")
	// ErrUnknownPolicy is returned when a padding policy name is not recognized.
	ErrUnknownPolicy = errors.New("unknown padding policy")
)
