package command

import (
	"strconv"
	"strings"
)

// Command is the closed set of canonical host commands a parameter name and
// get/set intent can resolve to.
type Command int

const (
	// CmdNone is the zero value; it resolves from nothing and builds nothing.
	CmdNone Command = iota

	// Legacy commands.
	CmdGetID
	CmdSetID
	CmdPing

	// Identity / system.
	CmdGetFirmware

	// Radio parameters.
	CmdGetFrequency
	CmdSetFrequency
	CmdGetSpreadingFactor
	CmdSetSpreadingFactor
	CmdGetBandwidth
	CmdSetBandwidth
	CmdGetCodingRate
	CmdSetCodingRate
	CmdGetTxPower
	CmdSetTxPower
	CmdGetChannel
	CmdSetChannel
	CmdGetMode
	CmdSetMode

	// Behavior / routing.
	CmdGetHopLimit
	CmdSetHopLimit
	CmdGetBeaconSec
	CmdSetBeaconSec
	CmdGetBufferSize
	CmdSetBufferSize
	CmdGetAckMode
	CmdSetAckMode

	// Read-only diagnostics.
	CmdGetRSSI
	CmdGetSNR
	CmdGetBattery
	CmdGetTemp
	CmdGetFreeMemory
	CmdGetFreeFlash
	CmdGetLogCount

	// Snapshot.
	CmdGetAll
)

// Resolve maps a human-facing parameter name plus get/set intent to a
// canonical command.
//
// Names are matched explicitly, not table-driven, to keep every alias
// auditable. Diagnostics are get-only and reject set intent. An unknown name
// fails with unknown_get or unknown_set; there is no default.
func Resolve(name string, set bool) (Command, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	// Identity / system.
	switch name {
	case "id":
		if set {
			return CmdSetID, nil
		}
		return CmdGetID, nil
	case "ping":
		if set {
			return CmdNone, ErrUnknownSet
		}
		return CmdPing, nil
	case "fw", "firmware":
		if set {
			return CmdNone, ErrUnknownSet
		}
		return CmdGetFirmware, nil
	}

	// Radio parameters.
	switch name {
	case "freq", "frequency":
		return pick(set, CmdGetFrequency, CmdSetFrequency), nil
	case "sf", "spreading_factor":
		return pick(set, CmdGetSpreadingFactor, CmdSetSpreadingFactor), nil
	case "bw", "bandwidth":
		return pick(set, CmdGetBandwidth, CmdSetBandwidth), nil
	case "cr", "coding_rate":
		return pick(set, CmdGetCodingRate, CmdSetCodingRate), nil
	case "pwr", "txpower", "tx_power":
		return pick(set, CmdGetTxPower, CmdSetTxPower), nil
	case "channel", "ch":
		return pick(set, CmdGetChannel, CmdSetChannel), nil
	case "mode":
		return pick(set, CmdGetMode, CmdSetMode), nil
	}

	// Behavior / routing.
	switch name {
	case "hops", "hop_limit":
		return pick(set, CmdGetHopLimit, CmdSetHopLimit), nil
	case "beacon", "beacon_sec":
		return pick(set, CmdGetBeaconSec, CmdSetBeaconSec), nil
	case "buffer", "buffer_size":
		return pick(set, CmdGetBufferSize, CmdSetBufferSize), nil
	case "ack", "ack_mode":
		return pick(set, CmdGetAckMode, CmdSetAckMode), nil
	}

	// Read-only diagnostics: reject set intent.
	switch name {
	case "rssi", "snr", "battery", "temp", "mem", "flash", "logs":
		if set {
			return CmdNone, ErrUnknownSet
		}
		switch name {
		case "rssi":
			return CmdGetRSSI, nil
		case "snr":
			return CmdGetSNR, nil
		case "battery":
			return CmdGetBattery, nil
		case "temp":
			return CmdGetTemp, nil
		case "mem":
			return CmdGetFreeMemory, nil
		case "flash":
			return CmdGetFreeFlash, nil
		default:
			return CmdGetLogCount, nil
		}
	}

	// Snapshot.
	if name == "all" {
		if set {
			return CmdNone, ErrUnknownSet
		}
		return CmdGetAll, nil
	}

	if set {
		return CmdNone, ErrUnknownSet
	}

	return CmdNone, ErrUnknownGet
}

func pick(set bool, get, setCmd Command) Command {
	if set {
		return setCmd
	}
	return get
}

// ResolveLegacy enforces the legacy-style invocation contract: exactly one
// of get-id, ping, or set-id.
func ResolveLegacy(getID, ping bool, setID string) (Command, error) {
	selected := 0
	cmd := CmdNone
	if getID {
		selected++
		cmd = CmdGetID
	}
	if ping {
		selected++
		cmd = CmdPing
	}
	if setID != "" {
		selected++
		cmd = CmdSetID
	}

	if selected != 1 {
		return CmdNone, ErrNeedExactlyOneCommand
	}

	return cmd, nil
}

// BuildRequest builds the validated request frame for a resolved command.
//
// For SET commands, value is parsed with the bounded numeric parser for that
// parameter; non-numeric or out-of-range input yields the parameter's stable
// bad_value token. GET commands ignore the value.
func BuildRequest(cmd Command, seq uint8, value string) ([]byte, error) {
	switch cmd {
	case CmdNone:
		return nil, ErrUnhandledCommand

	case CmdGetID:
		return BuildGetID(seq), nil
	case CmdSetID:
		return BuildSetID(seq, value), nil
	case CmdPing:
		return BuildPing(seq), nil

	case CmdGetFirmware:
		return BuildGet(seq, TagFirmware), nil

	case CmdGetFrequency:
		return BuildGet(seq, TagFrequency), nil
	case CmdSetFrequency:
		v, err := parseBounded("freq", value, MinFrequencyHz, MaxFrequencyHz)
		if err != nil {
			return nil, err
		}
		return BuildSetFrequency(seq, uint32(v))
	case CmdGetSpreadingFactor:
		return BuildGet(seq, TagSpreadingFactor), nil
	case CmdSetSpreadingFactor:
		v, err := parseBounded("sf", value, MinSpreadingFactor, MaxSpreadingFactor)
		if err != nil {
			return nil, err
		}
		return BuildSetSpreadingFactor(seq, uint8(v))
	case CmdGetBandwidth:
		return BuildGet(seq, TagBandwidth), nil
	case CmdSetBandwidth:
		v, err := parseBounded("bw", value, MinBandwidthHz, MaxBandwidthHz)
		if err != nil {
			return nil, err
		}
		return BuildSetBandwidth(seq, uint32(v))
	case CmdGetCodingRate:
		return BuildGet(seq, TagCodingRate), nil
	case CmdSetCodingRate:
		v, err := parseBounded("cr", value, MinCodingRate, MaxCodingRate)
		if err != nil {
			return nil, err
		}
		return BuildSetCodingRate(seq, uint8(v))
	case CmdGetTxPower:
		return BuildGet(seq, TagTxPower), nil
	case CmdSetTxPower:
		v, err := parseBounded("txpower", value, MinTxPowerDBm, MaxTxPowerDBm)
		if err != nil {
			return nil, err
		}
		return BuildSetTxPower(seq, int8(v))
	case CmdGetChannel:
		return BuildGet(seq, TagChannel), nil
	case CmdSetChannel:
		v, err := parseBounded("channel", value, 0, 255)
		if err != nil {
			return nil, err
		}
		return BuildSetChannel(seq, uint8(v)), nil
	case CmdGetMode:
		return BuildGet(seq, TagMode), nil
	case CmdSetMode:
		v, err := parseBounded("mode", value, 0, 255)
		if err != nil {
			return nil, err
		}
		return BuildSetMode(seq, uint8(v)), nil

	case CmdGetHopLimit:
		return BuildGet(seq, TagHopLimit), nil
	case CmdSetHopLimit:
		v, err := parseBounded("hops", value, MinHopLimit, MaxHopLimit)
		if err != nil {
			return nil, err
		}
		return BuildSetHopLimit(seq, uint8(v))
	case CmdGetBeaconSec:
		return BuildGet(seq, TagBeaconSec), nil
	case CmdSetBeaconSec:
		v, err := parseBounded("beacon", value, 0, 65535)
		if err != nil {
			return nil, err
		}
		return BuildSetBeaconSec(seq, uint16(v)), nil
	case CmdGetBufferSize:
		return BuildGet(seq, TagBufferSize), nil
	case CmdSetBufferSize:
		v, err := parseBounded("buffer", value, MinBufferSize, MaxBufferSize)
		if err != nil {
			return nil, err
		}
		return BuildSetBufferSize(seq, uint16(v))
	case CmdGetAckMode:
		return BuildGet(seq, TagAckMode), nil
	case CmdSetAckMode:
		v, err := parseBounded("ack", value, 0, 1)
		if err != nil {
			return nil, err
		}
		return BuildSetAckMode(seq, uint8(v))

	case CmdGetRSSI:
		return BuildGet(seq, TagRSSI), nil
	case CmdGetSNR:
		return BuildGet(seq, TagSNR), nil
	case CmdGetBattery:
		return BuildGet(seq, TagBattery), nil
	case CmdGetTemp:
		return BuildGet(seq, TagTemp), nil
	case CmdGetFreeMemory:
		return BuildGet(seq, TagFreeMemory), nil
	case CmdGetFreeFlash:
		return BuildGet(seq, TagFreeFlash), nil
	case CmdGetLogCount:
		return BuildGet(seq, TagLogCount), nil

	case CmdGetAll:
		return BuildGetAll(seq), nil

	default:
		return nil, ErrUnhandledCommand
	}
}

// parseBounded parses a decimal SET value with explicit inclusive bounds.
// Non-numeric input and out-of-range values both yield the parameter's
// stable bad_value token.
func parseBounded(param, s string, lo, hi int64) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, badValue(param, lo, hi)
	}
	if v < lo || v > hi {
		return 0, badValue(param, lo, hi)
	}
	return v, nil
}
