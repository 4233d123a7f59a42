package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLegacy(t *testing.T) {
	assert.Equal(t, []byte{byte(VerbGetID), 5}, BuildGetID(5))
	assert.Equal(t, []byte{byte(VerbPing), 9}, BuildPing(9))

	frame := BuildSetID(3, "N2")
	assert.Equal(t, []byte{byte(VerbSetID), 3, byte(TagNodeID), 2, 'N', '2'}, frame)
}

func TestBuildGet(t *testing.T) {
	frame := BuildGet(7, TagFrequency)
	assert.Equal(t, []byte{byte(VerbGetParam), 7, byte(TagFrequency), 0}, frame)
}

func TestBuildGetAll(t *testing.T) {
	assert.Equal(t, []byte{byte(VerbGetAll), 1}, BuildGetAll(1))
}

func TestBuildSetSpreadingFactor(t *testing.T) {
	frame, err := BuildSetSpreadingFactor(2, 7)
	require.NoError(t, err)
	assert.Equal(t, []byte{byte(VerbSetParam), 2, byte(TagSpreadingFactor), 1, 7}, frame)

	_, err = BuildSetSpreadingFactor(2, 13)
	require.Error(t, err)
	assert.Equal(t, "bad_value:sf(7..12)", err.Error())
	assert.ErrorIs(t, err, ErrBadValue)
}

func TestBuildSetFrequency(t *testing.T) {
	frame, err := BuildSetFrequency(4, 868_000_000)
	require.NoError(t, err)
	// 868000000 = 0x33BCA100, little-endian on the wire.
	assert.Equal(t, []byte{byte(VerbSetParam), 4, byte(TagFrequency), 4, 0x00, 0xA1, 0xBC, 0x33}, frame)

	_, err = BuildSetFrequency(4, 1_000)
	assert.ErrorIs(t, err, ErrBadValue)
}

func TestBuildSetTxPower(t *testing.T) {
	frame, err := BuildSetTxPower(1, -20)
	require.NoError(t, err)
	negTwenty := int8(-20)
	assert.Equal(t, []byte{byte(VerbSetParam), 1, byte(TagTxPower), 1, byte(negTwenty)}, frame)

	frame, err = BuildSetTxPower(1, 23)
	require.NoError(t, err)
	assert.Equal(t, byte(23), frame[4])
}

func TestBuildSetCodingRate(t *testing.T) {
	_, err := BuildSetCodingRate(1, 4)
	assert.Equal(t, "bad_value:cr(5..8)", err.Error())

	frame, err := BuildSetCodingRate(1, 8)
	require.NoError(t, err)
	assert.Equal(t, byte(8), frame[4])
}

func TestBuildSetAckMode(t *testing.T) {
	_, err := BuildSetAckMode(1, 2)
	assert.Equal(t, "bad_value:ack(0..1)", err.Error())

	frame, err := BuildSetAckMode(1, 1)
	require.NoError(t, err)
	assert.Equal(t, []byte{byte(VerbSetParam), 1, byte(TagAckMode), 1, 1}, frame)
}

func TestBuildSetHopLimit(t *testing.T) {
	_, err := BuildSetHopLimit(1, 16)
	assert.Equal(t, "bad_value:hops(0..15)", err.Error())

	frame, err := BuildSetHopLimit(1, 15)
	require.NoError(t, err)
	assert.Equal(t, byte(15), frame[4])
}

func TestBuildSetBeaconSec(t *testing.T) {
	frame := BuildSetBeaconSec(6, 300)
	// 300 = 0x012C, little-endian.
	assert.Equal(t, []byte{byte(VerbSetParam), 6, byte(TagBeaconSec), 2, 0x2C, 0x01}, frame)
}

func TestTagString(t *testing.T) {
	assert.Equal(t, "freq", TagFrequency.String())
	assert.Equal(t, "sf", TagSpreadingFactor.String())
	assert.Equal(t, "rssi", TagRSSI.String())
	assert.Equal(t, "unknown", Tag(0xEE).String())
}

func TestTagIsDiagnostic(t *testing.T) {
	assert.True(t, TagRSSI.IsDiagnostic())
	assert.True(t, TagLogCount.IsDiagnostic())
	assert.False(t, TagFrequency.IsDiagnostic())
	assert.False(t, TagNodeID.IsDiagnostic())
}
