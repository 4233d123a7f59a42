package command

import (
	"encoding/binary"
	"fmt"
)

// MaxTLVValueLen is the widest value one TLV record can carry (length byte).
const MaxTLVValueLen = 255

// TLV is one tag-length-value record inside a frame.
type TLV struct {
	Tag   Tag
	Value []byte
}

// Uint interprets a 1, 2 or 4 byte value as a little-endian unsigned
// integer. Other widths return false.
func (t TLV) Uint() (uint32, bool) {
	switch len(t.Value) {
	case 1:
		return uint32(t.Value[0]), true
	case 2:
		return uint32(binary.LittleEndian.Uint16(t.Value)), true
	case 4:
		return binary.LittleEndian.Uint32(t.Value), true
	default:
		return 0, false
	}
}

// String interprets the value as UTF-8 text.
func (t TLV) String() string {
	return string(t.Value)
}

// appendTLV appends one TLV record to dst.
func appendTLV(dst []byte, tag Tag, value []byte) []byte {
	dst = append(dst, byte(tag), byte(len(value)))
	return append(dst, value...)
}

func tlvUint8(dst []byte, tag Tag, v uint8) []byte {
	return appendTLV(dst, tag, []byte{v})
}

func tlvInt8(dst []byte, tag Tag, v int8) []byte {
	return appendTLV(dst, tag, []byte{byte(v)})
}

func tlvUint16(dst []byte, tag Tag, v uint16) []byte {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	return appendTLV(dst, tag, buf[:])
}

func tlvUint32(dst []byte, tag Tag, v uint32) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return appendTLV(dst, tag, buf[:])
}

func tlvString(dst []byte, tag Tag, s string) []byte {
	if len(s) > MaxTLVValueLen {
		s = s[:MaxTLVValueLen]
	}
	return appendTLV(dst, tag, []byte(s))
}

// parseTLVs decodes the TLV records following the verb and sequence bytes.
func parseTLVs(data []byte) ([]TLV, error) {
	var tlvs []TLV
	pos := 0
	for pos < len(data) {
		if pos+2 > len(data) {
			return nil, fmt.Errorf("%w: truncated record header at offset %d", ErrTruncatedTLV, pos)
		}
		tag := Tag(data[pos])
		length := int(data[pos+1])
		pos += 2
		if pos+length > len(data) {
			return nil, fmt.Errorf("%w: need %d value bytes, have %d", ErrTruncatedTLV, length, len(data)-pos)
		}
		tlvs = append(tlvs, TLV{Tag: tag, Value: data[pos : pos+length]})
		pos += length
	}

	return tlvs, nil
}
