package wire

import (
	"fmt"
	"strings"

	"github.com/AltGrid/viatext-core-sub000/internal/util"
)

// MaxIDLen is the widest node identifier a message carries. Longer
// identifiers are truncated silently (see util.BoundedCopy).
const MaxIDLen = 16

// MaxBodyLen is the widest message body a stamp carries.
const MaxBodyLen = 200

// StampSep joins the fields of a message stamp.
const StampSep = "~"

// Message binds a routing header to its sender, recipient, and body text.
//
// A message is built by a handler or an ingress adapter, is immutable once
// built, and is discarded after being turned into a packet. On the wire it
// travels as a compact stamp string:
//
//	<HEADER-HEX>~<from>~<to>~<body>
type Message struct {
	Header Header
	From   string
	To     string
	Body   string
}

// NewMessage creates a message with bounded identifier and body fields.
func NewMessage(h Header, from, to, body string) Message {
	return Message{
		Header: h,
		From:   util.BoundedCopy(from, MaxIDLen),
		To:     util.BoundedCopy(to, MaxIDLen),
		Body:   util.BoundedCopy(body, MaxBodyLen),
	}
}

// Valid reports whether the message carries a non-empty recipient, sender,
// and body.
func (m *Message) Valid() bool {
	return m.To != "" && m.From != "" && m.Body != ""
}

// Stamp renders the message to its tilde-joined wire text.
func (m *Message) Stamp() string {
	var sb strings.Builder
	sb.Grow(HexSize + len(m.From) + len(m.To) + len(m.Body) + 3)
	sb.WriteString(m.Header.Hex())
	sb.WriteString(StampSep)
	sb.WriteString(m.From)
	sb.WriteString(StampSep)
	sb.WriteString(m.To)
	sb.WriteString(StampSep)
	sb.WriteString(m.Body)
	return sb.String()
}

// ParseStamp parses a tilde-joined stamp back into a message. The body is
// the tail segment and may itself contain the separator.
func ParseStamp(stamp string) (Message, error) {
	segs := strings.SplitN(stamp, StampSep, 4)
	if len(segs) != 4 {
		return Message{}, fmt.Errorf("%w: got %d fields, want 4", ErrInvalidStamp, len(segs))
	}

	h, err := HeaderFromHex(segs[0])
	if err != nil {
		return Message{}, err
	}

	return NewMessage(h, segs[1], segs[2], segs[3]), nil
}

// Encrypt applies the placeholder cipher to the body and sets the encrypted
// header flag. Encrypting an already-encrypted message is a no-op.
//
// This is explicitly NOT a security primitive: the transform is a reversible
// XOR keystream kept only to exercise the flag toggle contract. Any
// replacement must preserve Decrypt(Encrypt(m)) == m.
func (m *Message) Encrypt(key []byte) {
	if m.Header.Encrypted() || len(key) == 0 {
		return
	}
	m.Body = xorKeystream(m.Body, key)
	m.Header.SetEncrypted(true)
}

// Decrypt reverses Encrypt with the same key and clears the encrypted header
// flag. Decrypting a non-encrypted message is a no-op.
func (m *Message) Decrypt(key []byte) {
	if !m.Header.Encrypted() || len(key) == 0 {
		return
	}
	m.Body = xorKeystream(m.Body, key)
	m.Header.SetEncrypted(false)
}

func xorKeystream(s string, key []byte) string {
	out := []byte(s)
	for i := range out {
		out[i] ^= key[i%len(key)]
	}
	return string(out)
}
