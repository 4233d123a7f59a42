package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AltGrid/viatext-core-sub000/packet"
	"github.com/AltGrid/viatext-core-sub000/wire"
)

// inboundPacket wraps a message stamp under the given intent key.
func inboundPacket(t *testing.T, key string, msg wire.Message) packet.Packet {
	t.Helper()
	var pkt packet.Packet
	require.True(t, pkt.Set(key, msg.Stamp()))
	return pkt
}

func drainOne(t *testing.T, e *Engine) packet.Packet {
	t.Helper()
	var pkt packet.Packet
	require.True(t, e.GetMessage(&pkt), "expected an outbound packet")
	return pkt
}

func TestEngine_DeliverWithAck(t *testing.T) {
	e, err := New("NODE")
	require.NoError(t, err)

	hdr := wire.NewHeader(42)
	hdr.SetRequestAck(true)
	msg := wire.NewMessage(hdr, "SRC", "NODE", "hello mesh")

	require.True(t, e.AddMessage(inboundPacket(t, KeyMessage, msg)))
	e.Tick(0)

	// First the ack, mirroring the original sequence.
	ackPkt := drainOne(t, e)
	require.True(t, ackPkt.Has(KeyAck))
	assert.Equal(t, "ACK", ackPkt.Payload())

	ack, err := wire.ParseStamp(mustGet(t, &ackPkt, KeyAck))
	require.NoError(t, err)
	assert.Equal(t, uint16(42), ack.Header.Sequence)
	assert.Equal(t, "NODE", ack.From)
	assert.Equal(t, "SRC", ack.To)
	assert.Equal(t, "ACK", ack.Body)
	assert.True(t, ack.Header.IsAck())
	assert.False(t, ack.Header.RequestAck(), "request flag cleared on the ack")

	// Then the delivered event carrying the original payload.
	event := drainOne(t, e)
	require.True(t, event.Has(KeyReceived))
	assert.Equal(t, "hello mesh", event.Payload())

	var none packet.Packet
	assert.False(t, e.GetMessage(&none))
}

func TestEngine_DeliverWithoutAckRequest(t *testing.T) {
	e, err := New("NODE")
	require.NoError(t, err)

	msg := wire.NewMessage(wire.NewHeader(1), "SRC", "NODE", "plain")
	require.True(t, e.AddMessage(inboundPacket(t, KeyMessage, msg)))
	e.Tick(0)

	event := drainOne(t, e)
	assert.True(t, event.Has(KeyReceived))
	assert.Equal(t, "plain", event.Payload())

	var none packet.Packet
	assert.False(t, e.GetMessage(&none), "no ack without the request flag")
}

func TestEngine_DeliverOtherDestinationIgnored(t *testing.T) {
	e, err := New("NODE")
	require.NoError(t, err)

	msg := wire.NewMessage(wire.NewHeader(2), "SRC", "ELSEWHERE", "not mine")
	require.True(t, e.AddMessage(inboundPacket(t, KeyMessage, msg)))
	e.Tick(0)

	var none packet.Packet
	assert.False(t, e.GetMessage(&none))
}

func TestEngine_PingPong(t *testing.T) {
	e, err := New("A")
	require.NoError(t, err)

	hdr := wire.NewHeader(7)
	hdr.SetHops(3)
	ping := wire.NewMessage(hdr, "X", "Y", "PING")

	require.True(t, e.AddMessage(inboundPacket(t, KeyPing, ping)))
	e.Tick(0)

	pongPkt := drainOne(t, e)
	require.True(t, pongPkt.Has(KeyPong))
	assert.Equal(t, "PONG", pongPkt.Payload())

	pong, err := wire.ParseStamp(mustGet(t, &pongPkt, KeyPong))
	require.NoError(t, err)
	assert.Equal(t, "A", pong.From)
	assert.Equal(t, "X", pong.To, "addressed back to the sender")
	assert.Equal(t, "PONG", pong.Body)
	assert.Equal(t, uint16(7), pong.Header.Sequence, "sequence reused")
	assert.Equal(t, uint8(3), pong.Header.Hops(), "hop count reused")

	var none packet.Packet
	assert.False(t, e.GetMessage(&none), "exactly one pong")
}

func TestEngine_AckNoticeSurfaced(t *testing.T) {
	e, err := New("NODE")
	require.NoError(t, err)

	hdr := wire.NewHeader(1234)
	hdr.SetIsAck(true)
	ack := wire.NewMessage(hdr, "SRC", "NODE", "ACK")

	require.True(t, e.AddMessage(inboundPacket(t, KeyAck, ack)))
	e.Tick(0)

	event := drainOne(t, e)
	assert.Equal(t, "1234", mustGet(t, &event, KeyAckNotice))
	assert.Equal(t, "ACK_RX~1234", event.Payload())
}

func TestEngine_SetIdentity(t *testing.T) {
	e, err := New("OLD")
	require.NoError(t, err)

	msg := wire.NewMessage(wire.NewHeader(5), "HOST", "OLD", "N2")
	require.True(t, e.AddMessage(inboundPacket(t, KeySetID, msg)))
	e.Tick(0)

	assert.Equal(t, "N2", e.NodeID())

	event := drainOne(t, e)
	assert.Equal(t, "N2", mustGet(t, &event, KeyIDSet))
	assert.Equal(t, "ID_SET~N2", event.Payload())

	var none packet.Packet
	assert.False(t, e.GetMessage(&none))
}

func TestEngine_DedupAcrossTicks(t *testing.T) {
	e, err := New("A")
	require.NoError(t, err)

	ping := wire.NewMessage(wire.NewHeader(99), "X", "Y", "PING")
	require.True(t, e.AddMessage(inboundPacket(t, KeyPing, ping)))
	require.True(t, e.AddMessage(inboundPacket(t, KeyPing, ping)))

	e.Tick(1)
	e.Tick(2)

	var pkt packet.Packet
	assert.True(t, e.GetMessage(&pkt), "first ping answered")
	assert.False(t, e.GetMessage(&pkt), "duplicate sequence dropped")
}

func TestEngine_HopLimitDrops(t *testing.T) {
	e, err := New("A", WithHopLimit(4))
	require.NoError(t, err)

	hdr := wire.NewHeader(8)
	hdr.SetHops(5)
	ping := wire.NewMessage(hdr, "X", "Y", "PING")

	require.True(t, e.AddMessage(inboundPacket(t, KeyPing, ping)))
	e.Tick(0)

	var none packet.Packet
	assert.False(t, e.GetMessage(&none), "over-limit hops never produce outbound")
}

func TestEngine_FragmentGate(t *testing.T) {
	e, err := New("NODE")
	require.NoError(t, err)

	hdr := wire.NewHeader(11)
	hdr.Total = 3
	msg := wire.NewMessage(hdr, "SRC", "NODE", "part")

	require.True(t, e.AddMessage(inboundPacket(t, KeyMessage, msg)), "multi-part accepted without error")
	e.Tick(0)

	var none packet.Packet
	assert.False(t, e.GetMessage(&none), "multi-part never dispatched")
	assert.Equal(t, 1, e.PendingFragments())

	// The parked sequence was not recorded: a later single-part message
	// with the same sequence still dispatches.
	single := wire.NewMessage(wire.NewHeader(11), "SRC", "NODE", "whole")
	require.True(t, e.AddMessage(inboundPacket(t, KeyMessage, single)))
	e.Tick(1)
	assert.True(t, e.GetMessage(&none))
}

func TestEngine_InvalidMessageDropped(t *testing.T) {
	e, err := New("NODE")
	require.NoError(t, err)

	// Empty body fails the validity check.
	msg := wire.NewMessage(wire.NewHeader(3), "SRC", "NODE", "")
	require.True(t, e.AddMessage(inboundPacket(t, KeyMessage, msg)))

	// Unparseable stamp is dropped too.
	var garbled packet.Packet
	garbled.Set(KeyMessage, "not a stamp")
	require.True(t, e.AddMessage(garbled))

	// No intent key at all: ignored.
	var blank packet.Packet
	blank.Set("-unrelated", "x")
	require.True(t, e.AddMessage(blank))

	e.Tick(0)
	e.Tick(1)
	e.Tick(2)

	var none packet.Packet
	assert.False(t, e.GetMessage(&none))
}

func TestEngine_InboundQueueFull(t *testing.T) {
	e, err := New("A", WithQueueSize(2))
	require.NoError(t, err)

	ping := wire.NewMessage(wire.NewHeader(1), "X", "Y", "PING")
	assert.True(t, e.AddMessage(inboundPacket(t, KeyPing, ping)))
	assert.True(t, e.AddMessage(inboundPacket(t, KeyPing, ping)))
	assert.False(t, e.AddMessage(inboundPacket(t, KeyPing, ping)), "full inbound queue reports failure")
}

func TestEngine_TickClock(t *testing.T) {
	e, err := New("A")
	require.NoError(t, err)

	// First tick establishes the baseline with zero elapsed.
	e.Tick(1000)
	assert.Equal(t, int64(0), e.Uptime())
	assert.Equal(t, uint64(1), e.Ticks())

	e.Tick(1250)
	assert.Equal(t, int64(250), e.Uptime())

	// A backwards-moving clock never underflows the uptime.
	e.Tick(900)
	assert.Equal(t, int64(250), e.Uptime())

	e.Tick(1100)
	assert.Equal(t, int64(450), e.Uptime())
	assert.Equal(t, uint64(4), e.Ticks())
}

func TestEngine_ConfigValidation(t *testing.T) {
	_, err := New("")
	assert.Error(t, err, "empty node ID rejected")

	_, err = New("A", WithHopLimit(16))
	assert.Error(t, err)

	_, err = New("A", WithQueueSize(0))
	assert.Error(t, err)

	_, err = New("A", WithDedupWindow(0))
	assert.Error(t, err)

	_, err = New("A", WithLogger(nil))
	assert.Error(t, err)
}

func TestEngine_DispatchPriority(t *testing.T) {
	e, err := New("NODE")
	require.NoError(t, err)

	// A packet carrying both the delivery and ping keys runs exactly one
	// handler: delivery wins.
	msg := wire.NewMessage(wire.NewHeader(21), "SRC", "NODE", "both")
	pkt := inboundPacket(t, KeyMessage, msg)
	require.True(t, pkt.Set(KeyPing, msg.Stamp()))

	require.True(t, e.AddMessage(pkt))
	e.Tick(0)

	event := drainOne(t, e)
	assert.True(t, event.Has(KeyReceived), "delivery handler ran")

	var none packet.Packet
	assert.False(t, e.GetMessage(&none), "ping handler did not also run")
}

func mustGet(t *testing.T, pkt *packet.Packet, key string) string {
	t.Helper()
	v, ok := pkt.Get(key)
	require.True(t, ok, "expected key %q", key)
	return v
}
