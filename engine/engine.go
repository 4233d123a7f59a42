// Package engine implements the node-side dispatch engine: bounded inbound
// and outbound packet queues, tick-driven logical time, duplicate rejection,
// hop-limit policy, a multi-part gate, and the four message handlers.
//
// The engine is single-threaded and cooperative. Tick performs bounded,
// synchronous work and returns; nothing inside the engine blocks or spawns.
// One engine instance is exclusively owned by one execution context;
// concurrent access requires external mutual exclusion.
package engine

import (
	"errors"

	"github.com/AltGrid/viatext-core-sub000/internal/queue"
	"github.com/AltGrid/viatext-core-sub000/internal/util"
	"github.com/AltGrid/viatext-core-sub000/logger"
	"github.com/AltGrid/viatext-core-sub000/packet"
	"github.com/AltGrid/viatext-core-sub000/wire"
)

// Intent keys carried in packet arguments. Inbound packets declare what
// their stamp means with one of the dispatch keys; outbound packets are
// tagged with the event keys.
const (
	// KeyMessage marks a standard deliverable message.
	KeyMessage = "-m"
	// KeyPing marks a liveness probe.
	KeyPing = "-ping"
	// KeyAck marks an inbound acknowledgment.
	KeyAck = "-ack"
	// KeySetID marks an identity-change request.
	KeySetID = "--set-id"

	// KeyReceived tags a delivered-message event.
	KeyReceived = "-r"
	// KeyPong tags a ping reply.
	KeyPong = "-pong"
	// KeyAckNotice tags an event surfacing a received acknowledgment.
	KeyAckNotice = "-ack_rx"
	// KeyIDSet tags an identity-change confirmation.
	KeyIDSet = "-id_set"
)

// dispatchKeys is the fixed priority order for intent matching:
// first match wins, exactly one handler runs per message.
var dispatchKeys = [...]string{KeyMessage, KeyPing, KeyAck, KeySetID}

// Engine owns a node's protocol state and advances it one inbound packet per
// tick.
type Engine struct {
	nodeID   string
	ticks    uint64
	uptime   int64
	lastSeen int64
	started  bool

	inbound  *queue.Bounded[packet.Packet]
	outbound *queue.Bounded[packet.Packet]
	dedup    *queue.SeqRing

	hopLimit      uint8
	fragmentSlots int
	fragmentsHeld int

	logger logger.Logger
}

// New creates an engine for the given node identifier. The identifier is
// bounded to wire.MaxIDLen bytes, truncating silently.
func New(nodeID string, opts ...Option) (*Engine, error) {
	if nodeID == "" {
		return nil, errors.New("engine: node ID must not be empty")
	}

	cfg := &config{
		queueSize:     DefaultQueueSize,
		dedupWindow:   DefaultDedupWindow,
		hopLimit:      DefaultHopLimit,
		fragmentSlots: DefaultFragmentSlots,
		logger:        logger.GetLogger(),
	}
	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return nil, err
		}
	}

	return &Engine{
		nodeID:        util.BoundedCopy(nodeID, wire.MaxIDLen),
		inbound:       queue.NewBounded[packet.Packet](cfg.queueSize),
		outbound:      queue.NewBounded[packet.Packet](cfg.queueSize),
		dedup:         queue.NewSeqRing(cfg.dedupWindow),
		hopLimit:      cfg.hopLimit,
		fragmentSlots: cfg.fragmentSlots,
		logger:        cfg.logger.With("node", nodeID),
	}, nil
}

// NodeID returns the current node identifier.
func (e *Engine) NodeID() string { return e.nodeID }

// Ticks returns the number of Tick calls processed.
func (e *Engine) Ticks() uint64 { return e.ticks }

// Uptime returns the accumulated elapsed time across ticks, in the caller's
// clock units.
func (e *Engine) Uptime() int64 { return e.uptime }

// PendingFragments returns the number of multi-part messages parked by the
// fragment gate.
func (e *Engine) PendingFragments() int { return e.fragmentsHeld }

// AddMessage enqueues an inbound packet. It returns false when the inbound
// queue is full; the caller must retry or drop upstream.
func (e *Engine) AddMessage(pkt packet.Packet) bool {
	if !e.inbound.Enqueue(pkt) {
		e.logger.Warn("inbound queue full, packet rejected")
		return false
	}
	return true
}

// GetMessage dequeues the oldest outbound packet into out. It returns false
// when the outbound queue is empty.
func (e *Engine) GetMessage(out *packet.Packet) bool {
	pkt, ok := e.outbound.Dequeue()
	if !ok {
		return false
	}
	*out = pkt
	return true
}

// Tick advances logical time and processes exactly one inbound packet.
//
// The first call establishes the time baseline with zero elapsed. Subsequent
// calls add max(0, now-lastSeen) to the uptime, so a backwards-moving clock
// never underflows it.
func (e *Engine) Tick(now int64) {
	if !e.started {
		e.started = true
	} else if now > e.lastSeen {
		e.uptime += now - e.lastSeen
	}
	e.lastSeen = now
	e.ticks++

	e.processOne()
}

// processOne dequeues and dispatches the oldest inbound packet, applying the
// drop policies in order: invalid message, hop limit, fragment gate,
// duplicate sequence. Policy drops are silent toward the caller; they are
// expected steady-state events, not faults.
func (e *Engine) processOne() {
	pkt, ok := e.inbound.Dequeue()
	if !ok {
		return
	}

	key, msg, ok := e.parse(&pkt)
	if !ok {
		e.logger.Debug("dropping undispatchable packet")
		return
	}
	if !msg.Valid() {
		e.logger.Debug("dropping invalid message", "seq", msg.Header.Sequence)
		return
	}

	if msg.Header.Hops() > e.hopLimit {
		e.logger.Debug("hop limit exceeded", "seq", msg.Header.Sequence, "hops", msg.Header.Hops(), "limit", e.hopLimit)
		return
	}

	if msg.Header.Total > 1 {
		// Multi-part messages are accepted but never dispatched: the
		// reassembly policy is an open question upstream and nothing is
		// guessed here.
		if e.fragmentsHeld < e.fragmentSlots {
			e.fragmentsHeld++
		}
		e.logger.Debug("multi-part message parked", "seq", msg.Header.Sequence, "total", msg.Header.Total)
		return
	}

	if e.dedup.Contains(msg.Header.Sequence) {
		e.logger.Debug("duplicate sequence dropped", "seq", msg.Header.Sequence)
		return
	}
	e.dedup.Insert(msg.Header.Sequence)

	e.dispatch(key, &msg)
}

// parse extracts the message stamp from the first intent key present, in
// dispatch priority order. Packets carrying none of the intent keys are
// undispatchable; their other flags are ignored, not errors.
func (e *Engine) parse(pkt *packet.Packet) (string, wire.Message, bool) {
	for _, key := range dispatchKeys {
		stamp, ok := pkt.Get(key)
		if !ok {
			continue
		}
		msg, err := wire.ParseStamp(stamp)
		if err != nil {
			return "", wire.Message{}, false
		}
		return key, msg, true
	}

	return "", wire.Message{}, false
}

// dispatch routes the message to exactly one handler.
func (e *Engine) dispatch(key string, msg *wire.Message) {
	switch key {
	case KeyMessage:
		e.handleDeliver(msg)
	case KeyPing:
		e.handlePing(msg)
	case KeyAck:
		e.handleAckNotice(msg)
	case KeySetID:
		e.handleSetID(msg)
	}
}

// enqueueOutbound adds a packet to the outbound queue. Overflow is dropped
// silently; there is no backpressure signaling on this path in this version.
func (e *Engine) enqueueOutbound(pkt packet.Packet) {
	if !e.outbound.Enqueue(pkt) {
		e.logger.Warn("outbound queue full, packet dropped")
	}
}
