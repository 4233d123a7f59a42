package command

// Validation bounds for settable parameters.
const (
	MinFrequencyHz = 137_000_000
	MaxFrequencyHz = 1_020_000_000

	MinSpreadingFactor = 7
	MaxSpreadingFactor = 12

	MinBandwidthHz = 7_800
	MaxBandwidthHz = 500_000

	MinCodingRate = 5 // 4/5
	MaxCodingRate = 8 // 4/8

	MinTxPowerDBm = -20
	MaxTxPowerDBm = 23

	MinHopLimit = 0
	MaxHopLimit = 15

	MinBufferSize = 1
	MaxBufferSize = 65_535
)

// requestHeader starts a frame with its verb and sequence bytes.
func requestHeader(verb Verb, seq uint8) []byte {
	return []byte{byte(verb), seq}
}

// --- Legacy builders ---

// BuildGetID builds a legacy GET_ID request frame.
func BuildGetID(seq uint8) []byte {
	return requestHeader(VerbGetID, seq)
}

// BuildSetID builds a legacy SET_ID request frame carrying the identifier.
func BuildSetID(seq uint8, id string) []byte {
	return tlvString(requestHeader(VerbSetID, seq), TagNodeID, id)
}

// BuildPing builds a legacy PING request frame.
func BuildPing(seq uint8) []byte {
	return requestHeader(VerbPing, seq)
}

// --- General builders ---

// BuildGet builds a GET_PARAM request for a single tag. The TLV value is
// empty; the replier fills it.
func BuildGet(seq uint8, tag Tag) []byte {
	return appendTLV(requestHeader(VerbGetParam, seq), tag, nil)
}

// BuildGetAll builds a GET_ALL snapshot request. The replier may split the
// snapshot across multiple response frames; callers accumulate TLVs with an
// Accumulator until the terminal frame or their transport's timeout.
func BuildGetAll(seq uint8) []byte {
	return requestHeader(VerbGetAll, seq)
}

// --- Typed SET builders, one per settable tag ---

// BuildSetFrequency builds a SET_PARAM frame for the radio frequency in Hz.
func BuildSetFrequency(seq uint8, hz uint32) ([]byte, error) {
	if hz < MinFrequencyHz || hz > MaxFrequencyHz {
		return nil, badValue("freq", MinFrequencyHz, MaxFrequencyHz)
	}
	return tlvUint32(requestHeader(VerbSetParam, seq), TagFrequency, hz), nil
}

// BuildSetSpreadingFactor builds a SET_PARAM frame for the LoRa spreading factor.
func BuildSetSpreadingFactor(seq uint8, sf uint8) ([]byte, error) {
	if sf < MinSpreadingFactor || sf > MaxSpreadingFactor {
		return nil, badValue("sf", MinSpreadingFactor, MaxSpreadingFactor)
	}
	return tlvUint8(requestHeader(VerbSetParam, seq), TagSpreadingFactor, sf), nil
}

// BuildSetBandwidth builds a SET_PARAM frame for the signal bandwidth in Hz.
func BuildSetBandwidth(seq uint8, hz uint32) ([]byte, error) {
	if hz < MinBandwidthHz || hz > MaxBandwidthHz {
		return nil, badValue("bw", MinBandwidthHz, MaxBandwidthHz)
	}
	return tlvUint32(requestHeader(VerbSetParam, seq), TagBandwidth, hz), nil
}

// BuildSetCodingRate builds a SET_PARAM frame for the coding rate denominator.
func BuildSetCodingRate(seq uint8, cr uint8) ([]byte, error) {
	if cr < MinCodingRate || cr > MaxCodingRate {
		return nil, badValue("cr", MinCodingRate, MaxCodingRate)
	}
	return tlvUint8(requestHeader(VerbSetParam, seq), TagCodingRate, cr), nil
}

// BuildSetTxPower builds a SET_PARAM frame for the transmit power in dBm.
func BuildSetTxPower(seq uint8, dbm int8) ([]byte, error) {
	if dbm < MinTxPowerDBm || dbm > MaxTxPowerDBm {
		return nil, badValue("txpower", MinTxPowerDBm, MaxTxPowerDBm)
	}
	return tlvInt8(requestHeader(VerbSetParam, seq), TagTxPower, dbm), nil
}

// BuildSetChannel builds a SET_PARAM frame for the channel index.
func BuildSetChannel(seq uint8, ch uint8) []byte {
	return tlvUint8(requestHeader(VerbSetParam, seq), TagChannel, ch)
}

// BuildSetMode builds a SET_PARAM frame for the operating mode.
func BuildSetMode(seq uint8, mode uint8) []byte {
	return tlvUint8(requestHeader(VerbSetParam, seq), TagMode, mode)
}

// BuildSetHopLimit builds a SET_PARAM frame for the relay hop limit.
func BuildSetHopLimit(seq uint8, hops uint8) ([]byte, error) {
	if hops > MaxHopLimit {
		return nil, badValue("hops", MinHopLimit, MaxHopLimit)
	}
	return tlvUint8(requestHeader(VerbSetParam, seq), TagHopLimit, hops), nil
}

// BuildSetBeaconSec builds a SET_PARAM frame for the beacon interval in seconds.
func BuildSetBeaconSec(seq uint8, sec uint16) []byte {
	return tlvUint16(requestHeader(VerbSetParam, seq), TagBeaconSec, sec)
}

// BuildSetBufferSize builds a SET_PARAM frame for the message buffer size.
func BuildSetBufferSize(seq uint8, size uint16) ([]byte, error) {
	if size < MinBufferSize {
		return nil, badValue("buffer", MinBufferSize, MaxBufferSize)
	}
	return tlvUint16(requestHeader(VerbSetParam, seq), TagBufferSize, size), nil
}

// BuildSetAckMode builds a SET_PARAM frame for the acknowledgment mode.
func BuildSetAckMode(seq uint8, mode uint8) ([]byte, error) {
	if mode > 1 {
		return nil, badValue("ack", 0, 1)
	}
	return tlvUint8(requestHeader(VerbSetParam, seq), TagAckMode, mode), nil
}
