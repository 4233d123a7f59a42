package wire

import "errors"

var (
	// ErrShortHeader indicates that a buffer is too small to hold a packed header.
	ErrShortHeader = errors.New("buffer shorter than packed header")

	// ErrInvalidHex indicates that a hex header rendering has the wrong length
	// or contains non-hex characters.
	ErrInvalidHex = errors.New("invalid header hex")

	// ErrInvalidStamp indicates that a message stamp does not carry all four
	// tilde-separated fields.
	ErrInvalidStamp = errors.New("invalid message stamp")
)
