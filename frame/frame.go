// Package frame implements the byte-stuffing codec that delimits command
// frames on a raw byte stream.
//
// A frame on the wire is: [Delimiter][stuffed payload][Delimiter]. Any
// in-payload occurrence of the delimiter or escape byte is replaced by the
// escape byte followed by the corresponding escaped code, so the delimiter
// value never appears inside a frame.
package frame

// Reserved byte values (HDLC-style).
const (
	// Delimiter bounds every frame on the stream.
	Delimiter byte = 0x7E

	// Escape prefixes an in-payload delimiter or escape byte.
	Escape byte = 0x7D

	// EscapedDelimiter is the code emitted after Escape for a payload delimiter byte.
	EscapedDelimiter byte = 0x5E

	// EscapedEscape is the code emitted after Escape for a payload escape byte.
	EscapedEscape byte = 0x5D
)

// Encode byte-stuffs payload into a delimited frame.
func Encode(payload []byte) []byte {
	return AppendEncode(make([]byte, 0, len(payload)+2), payload)
}

// AppendEncode appends the delimited, stuffed frame to dst and returns the
// extended slice.
func AppendEncode(dst, payload []byte) []byte {
	dst = append(dst, Delimiter)
	for _, b := range payload {
		switch b {
		case Delimiter:
			dst = append(dst, Escape, EscapedDelimiter)
		case Escape:
			dst = append(dst, Escape, EscapedEscape)
		default:
			dst = append(dst, b)
		}
	}
	dst = append(dst, Delimiter)

	return dst
}
