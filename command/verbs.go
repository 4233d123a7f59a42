// Package command implements the host-to-node request/response vocabulary:
// one-byte verbs, a category-partitioned TLV tag space, validated request
// builders, a response decoder, and the name resolver that maps human-facing
// parameter names to canonical commands.
//
// A request frame is [verb, seq, TLV...]; a response frame is
// [RespOK|RespErr, seq, TLV...]. A TLV record is a tag byte, a length byte,
// and that many value bytes; integers travel little-endian, strings UTF-8.
package command

// Verb is the one-byte operation code that opens every frame.
type Verb byte

// Wire verbs.
const (
	// VerbGetID requests the node identifier (legacy).
	VerbGetID Verb = 0x01
	// VerbSetID assigns the node identifier (legacy).
	VerbSetID Verb = 0x02
	// VerbPing requests a liveness reply (legacy).
	VerbPing Verb = 0x03

	// VerbGetParam requests a single parameter by tag.
	VerbGetParam Verb = 0x10
	// VerbSetParam assigns a single parameter by tag.
	VerbSetParam Verb = 0x11
	// VerbGetAll requests a parameter snapshot; the replier may split it
	// across multiple response frames.
	VerbGetAll Verb = 0x12

	// VerbRespOK acknowledges a request.
	VerbRespOK Verb = 0x20
	// VerbRespErr rejects a request.
	VerbRespErr Verb = 0x21
)

// String returns string representation of the verb.
func (v Verb) String() string {
	switch v {
	case VerbGetID:
		return "GET_ID"
	case VerbSetID:
		return "SET_ID"
	case VerbPing:
		return "PING"
	case VerbGetParam:
		return "GET_PARAM"
	case VerbSetParam:
		return "SET_PARAM"
	case VerbGetAll:
		return "GET_ALL"
	case VerbRespOK:
		return "RESP_OK"
	case VerbRespErr:
		return "RESP_ERR"
	default:
		return "UNKNOWN"
	}
}

// Tag identifies a parameter inside a TLV record. The tag space is
// partitioned by category in 16-value bands: identity/system 0x0x, radio
// 0x1x, behavior/routing 0x2x, read-only diagnostics 0x3x.
type Tag byte

// Identity / system tags.
const (
	TagNodeID   Tag = 0x01
	TagFirmware Tag = 0x02
)

// Radio parameter tags.
const (
	TagFrequency       Tag = 0x10 // Hz, uint32
	TagSpreadingFactor Tag = 0x11 // 7-12, uint8
	TagBandwidth       Tag = 0x12 // Hz, uint32
	TagCodingRate      Tag = 0x13 // 5-8 (4/5..4/8), uint8
	TagTxPower         Tag = 0x14 // dBm, int8
	TagChannel         Tag = 0x15 // uint8
	TagMode            Tag = 0x16 // uint8
)

// Behavior / routing tags.
const (
	TagHopLimit   Tag = 0x20 // 0-15, uint8
	TagBeaconSec  Tag = 0x21 // seconds, uint16
	TagBufferSize Tag = 0x22 // messages, uint16
	TagAckMode    Tag = 0x23 // 0|1, uint8
)

// Read-only diagnostic tags.
const (
	TagRSSI       Tag = 0x30 // dBm, int8
	TagSNR        Tag = 0x31 // dB*4, int8
	TagBattery    Tag = 0x32 // millivolts, uint16
	TagTemp       Tag = 0x33 // degrees C, int8
	TagFreeMemory Tag = 0x34 // bytes, uint32
	TagFreeFlash  Tag = 0x35 // bytes, uint32
	TagLogCount   Tag = 0x36 // entries, uint16
)

// String returns the short parameter name used in response summaries.
func (t Tag) String() string {
	switch t {
	case TagNodeID:
		return "id"
	case TagFirmware:
		return "fw"
	case TagFrequency:
		return "freq"
	case TagSpreadingFactor:
		return "sf"
	case TagBandwidth:
		return "bw"
	case TagCodingRate:
		return "cr"
	case TagTxPower:
		return "txpower"
	case TagChannel:
		return "channel"
	case TagMode:
		return "mode"
	case TagHopLimit:
		return "hops"
	case TagBeaconSec:
		return "beacon"
	case TagBufferSize:
		return "buffer"
	case TagAckMode:
		return "ack"
	case TagRSSI:
		return "rssi"
	case TagSNR:
		return "snr"
	case TagBattery:
		return "battery"
	case TagTemp:
		return "temp"
	case TagFreeMemory:
		return "mem"
	case TagFreeFlash:
		return "flash"
	case TagLogCount:
		return "logs"
	default:
		return "unknown"
	}
}

// IsDiagnostic reports whether the tag is in the read-only diagnostics band.
func (t Tag) IsDiagnostic() bool {
	return t >= 0x30 && t <= 0x3F
}
