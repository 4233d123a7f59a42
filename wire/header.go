// Package wire implements the ViaText on-air formats: the packed 5-byte
// routing header, the self-routing text envelope, and the message stamp that
// binds a header to its sender, recipient, and body.
//
// All formats are byte-exact and heap-light so they stay portable to the
// firmware side of the protocol.
package wire

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// HeaderSize is the packed size of a routing header in bytes.
const HeaderSize = 5

// HexSize is the length of the canonical hex rendering of a header.
const HexSize = 10

// MaxHops is the largest hop count the 4-bit hops field can carry.
const MaxHops = 0x0F

// Header flag bits (low nibble of byte 4).
const (
	// FlagRequestAck requests an acknowledgment from the final recipient.
	FlagRequestAck uint8 = 0x01

	// FlagIsAck marks the message as an acknowledgment.
	FlagIsAck uint8 = 0x02

	// FlagEncrypted marks the body as passed through the placeholder cipher.
	FlagEncrypted uint8 = 0x04

	// FlagReserved is unassigned and must stay zero.
	FlagReserved uint8 = 0x08
)

// Header is the packed 5-byte routing header shared by every fragment of a
// message.
//
// Wire layout: [seq_hi, seq_lo, part, total, (hops<<4)|flags].
//
// Sequence identifies the message, Part/Total place a fragment within it,
// Hops counts relay steps (a soft TTL), and Flags carries the request-ack,
// is-ack and encrypted bits. Hops is the only field a relay may mutate.
type Header struct {
	Sequence uint16 // message identity, shared by all fragments
	Part     uint8  // 0-based fragment index
	Total    uint8  // fragment count, >= 1
	hops     uint8  // 4-bit relay counter
	flags    uint8  // 4-bit flag nibble
}

// NewHeader creates a header with the given sequence, a single fragment, zero
// hops and no flags set.
func NewHeader(seq uint16) Header {
	return Header{Sequence: seq, Part: 0, Total: 1}
}

// Hops returns the 4-bit hop count.
func (h *Header) Hops() uint8 { return h.hops }

// SetHops sets the hop count, masked to 4 bits.
func (h *Header) SetHops(v uint8) { h.hops = v & 0x0F }

// IncHops increments the hop count, saturating at MaxHops.
func (h *Header) IncHops() {
	if h.hops < MaxHops {
		h.hops++
	}
}

// Flags returns the 4-bit flag nibble.
func (h *Header) Flags() uint8 { return h.flags }

// SetFlags sets the flag nibble, masked to 4 bits.
func (h *Header) SetFlags(v uint8) { h.flags = v & 0x0F }

// RequestAck returns the request-ack flag (bit 0).
func (h *Header) RequestAck() bool { return h.flags&FlagRequestAck != 0 }

// SetRequestAck sets or clears the request-ack flag.
func (h *Header) SetRequestAck(v bool) { h.setFlag(FlagRequestAck, v) }

// IsAck returns the is-ack flag (bit 1).
func (h *Header) IsAck() bool { return h.flags&FlagIsAck != 0 }

// SetIsAck sets or clears the is-ack flag.
func (h *Header) SetIsAck(v bool) { h.setFlag(FlagIsAck, v) }

// Encrypted returns the encrypted flag (bit 2).
func (h *Header) Encrypted() bool { return h.flags&FlagEncrypted != 0 }

// SetEncrypted sets or clears the encrypted flag.
func (h *Header) SetEncrypted(v bool) { h.setFlag(FlagEncrypted, v) }

func (h *Header) setFlag(bit uint8, v bool) {
	if v {
		h.flags |= bit
	} else {
		h.flags &^= bit
	}
	h.flags &= 0x0F
}

// --- Wire encoding ---

// Pack serializes the header to its 5-byte wire format.
func (h *Header) Pack() [HeaderSize]byte {
	var buf [HeaderSize]byte
	binary.BigEndian.PutUint16(buf[0:2], h.Sequence)
	buf[2] = h.Part
	buf[3] = h.Total
	buf[4] = (h.hops << 4) | (h.flags & 0x0F)
	return buf
}

// AppendBytes appends the packed header to dst and returns the extended slice.
func (h *Header) AppendBytes(dst []byte) []byte {
	packed := h.Pack()
	return append(dst, packed[:]...)
}

// Uint returns the header as a 40-bit big-endian integer.
func (h *Header) Uint() uint64 {
	packed := h.Pack()
	var v uint64
	for _, b := range packed {
		v = v<<8 | uint64(b)
	}
	return v
}

// Hex returns the canonical uppercase 10-character hex rendering.
func (h *Header) Hex() string {
	packed := h.Pack()
	return fmt.Sprintf("%02X%02X%02X%02X%02X", packed[0], packed[1], packed[2], packed[3], packed[4])
}

// --- Wire decoding ---

// Unpack deserializes the header from the first 5 bytes of data.
//
// Unpack performs no semantic validation beyond the length check; callers
// apply policy such as hop limits.
func (h *Header) Unpack(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrShortHeader, len(data), HeaderSize)
	}
	h.Sequence = binary.BigEndian.Uint16(data[0:2])
	h.Part = data[2]
	h.Total = data[3]
	h.hops = data[4] >> 4
	h.flags = data[4] & 0x0F

	return nil
}

// HeaderFromBytes deserializes a header from the first 5 bytes of data.
func HeaderFromBytes(data []byte) (Header, error) {
	var h Header
	err := h.Unpack(data)
	return h, err
}

// HeaderFromUint builds a header from its 40-bit big-endian integer form.
func HeaderFromUint(v uint64) Header {
	var buf [HeaderSize]byte
	for i := HeaderSize - 1; i >= 0; i-- {
		buf[i] = byte(v)
		v >>= 8
	}
	h, _ := HeaderFromBytes(buf[:])
	return h
}

// HeaderFromHex parses a header from a 10-hex-digit string, with an optional
// "0x" prefix. Non-hex characters or insufficient length are reported as an
// error, never silently truncated.
func HeaderFromHex(s string) (Header, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s) != HexSize {
		return Header{}, fmt.Errorf("%w: got %d hex digits, want %d", ErrInvalidHex, len(s), HexSize)
	}

	var buf [HeaderSize]byte
	for i := 0; i < HeaderSize; i++ {
		hi, ok1 := hexNibble(s[2*i])
		lo, ok2 := hexNibble(s[2*i+1])
		if !ok1 || !ok2 {
			return Header{}, fmt.Errorf("%w: non-hex character in %q", ErrInvalidHex, s)
		}
		buf[i] = hi<<4 | lo
	}

	return HeaderFromBytes(buf[:])
}

func hexNibble(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
