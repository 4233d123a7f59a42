package engine

import (
	"strconv"

	"github.com/AltGrid/viatext-core-sub000/internal/util"
	"github.com/AltGrid/viatext-core-sub000/packet"
	"github.com/AltGrid/viatext-core-sub000/wire"
)

// handleDeliver processes a standard message addressed to this node. If the
// header requests an acknowledgment, an ack packet mirroring the original
// sequence goes out first; a received event carrying the original body
// always follows.
func (e *Engine) handleDeliver(msg *wire.Message) {
	if msg.To != e.nodeID {
		return
	}

	if msg.Header.RequestAck() {
		hdr := msg.Header
		hdr.SetIsAck(true)
		hdr.SetRequestAck(false)
		ack := wire.NewMessage(hdr, e.nodeID, msg.From, "ACK")

		var pkt packet.Packet
		pkt.Set(KeyAck, ack.Stamp())
		pkt.SetPayload("ACK")
		e.enqueueOutbound(pkt)
	}

	var event packet.Packet
	event.Set(KeyReceived, msg.Stamp())
	event.SetPayload(msg.Body)
	e.enqueueOutbound(event)

	e.logger.Debug("message delivered", "seq", msg.Header.Sequence, "from", msg.From)
}

// handlePing replies with a fixed PONG body addressed back to the sender,
// reusing the original sequence and hop count.
func (e *Engine) handlePing(msg *wire.Message) {
	hdr := wire.NewHeader(msg.Header.Sequence)
	hdr.SetHops(msg.Header.Hops())
	pong := wire.NewMessage(hdr, e.nodeID, msg.From, "PONG")

	var pkt packet.Packet
	pkt.Set(KeyPong, pong.Stamp())
	pkt.SetPayload("PONG")
	e.enqueueOutbound(pkt)

	e.logger.Debug("ping answered", "seq", msg.Header.Sequence, "from", msg.From)
}

// handleAckNotice surfaces an inbound acknowledgment as an event tagged with
// the original sequence. No retransmission bookkeeping happens yet.
func (e *Engine) handleAckNotice(msg *wire.Message) {
	seq := strconv.FormatUint(uint64(msg.Header.Sequence), 10)

	var pkt packet.Packet
	pkt.Set(KeyAckNotice, seq)
	pkt.SetPayload("ACK_RX" + packet.FieldSep + seq)
	e.enqueueOutbound(pkt)

	e.logger.Debug("ack surfaced", "seq", msg.Header.Sequence, "from", msg.From)
}

// handleSetID adopts the message body as the new node identifier and
// confirms with an event encoding the identifier both in the payload and as
// an argument.
func (e *Engine) handleSetID(msg *wire.Message) {
	if msg.Body == "" {
		return
	}

	e.nodeID = util.BoundedCopy(msg.Body, wire.MaxIDLen)
	e.logger = e.logger.With("node", e.nodeID)

	var pkt packet.Packet
	pkt.Set(KeyIDSet, e.nodeID)
	pkt.SetPayload("ID_SET" + packet.FieldSep + e.nodeID)
	e.enqueueOutbound(pkt)

	e.logger.Info("node identifier changed", "id", e.nodeID)
}
