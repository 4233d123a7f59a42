// Package link defines the transport collaborator boundary the core talks
// through, an in-memory loopback transport for tests and demos, and the
// host-side command client that frames requests and matches responses.
//
// Serial-port configuration, device discovery, and radio drivers live
// outside this module; they implement Transport and nothing else.
package link

import (
	"errors"
	"sync"
)

// DefaultMTU is the negotiated MTU a transport reports unless configured
// otherwise.
const DefaultMTU = 256

var (
	// ErrBusy indicates that the transport cannot accept the buffer right now;
	// the caller decides retry policy.
	ErrBusy = errors.New("link: transport busy")

	// ErrTooLarge indicates a send buffer exceeding the negotiated MTU.
	ErrTooLarge = errors.New("link: buffer exceeds MTU")

	// ErrNotInitialized indicates use of a transport before Init.
	ErrNotInitialized = errors.New("link: transport not initialized")
)

// Config carries the transport configuration. MTU is the only field the core
// requires; concrete transports extend initialization through their own
// constructors.
type Config struct {
	MTU int
}

// Transport is the byte-stream capability the core consumes. All operations
// are non-blocking and best-effort; timeout and retry policy belong to the
// caller.
type Transport interface {
	// Init applies the configuration. It must be called before any other method.
	Init(cfg Config) error

	// Service performs one non-blocking poll/housekeeping step.
	Service()

	// Available returns the number of bytes ready to receive.
	Available() int

	// Receive copies pending bytes into buf, returning the count. A return
	// of (0, nil) means nothing is pending, not an error.
	Receive(buf []byte) (int, error)

	// Send transmits the buffer best-effort. It returns ErrBusy when the
	// transport is saturated.
	Send(data []byte) error

	// Name returns a human-readable transport name.
	Name() string

	// MTU returns the negotiated MTU.
	MTU() int
}

// Loopback returns a connected pair of in-memory transports: bytes sent on
// one side become receivable on the other. Useful for tests and host-side
// dry runs.
func Loopback() (*LoopbackTransport, *LoopbackTransport) {
	shared := &loopbackPipe{}
	a := &LoopbackTransport{pipe: shared, side: 0, name: "loopback-a"}
	b := &LoopbackTransport{pipe: shared, side: 1, name: "loopback-b"}
	return a, b
}

// loopbackPipe holds the two directional byte queues of a loopback pair.
// Unlike the engine, the pipe carries its own lock so the two endpoints may
// live on different goroutines in tests.
type loopbackPipe struct {
	mu   sync.Mutex
	bufs [2][]byte
}

// LoopbackTransport is one endpoint of an in-memory transport pair.
type LoopbackTransport struct {
	pipe *loopbackPipe
	side int
	name string
	mtu  int
	init bool
}

// Init applies the configuration. A zero MTU selects DefaultMTU.
func (t *LoopbackTransport) Init(cfg Config) error {
	if cfg.MTU < 0 {
		return errors.New("link: MTU must be >= 0")
	}
	t.mtu = cfg.MTU
	if t.mtu == 0 {
		t.mtu = DefaultMTU
	}
	t.init = true
	return nil
}

// Service is a no-op; loopback delivery is immediate.
func (t *LoopbackTransport) Service() {}

// Available returns the number of bytes pending on this side.
func (t *LoopbackTransport) Available() int {
	t.pipe.mu.Lock()
	defer t.pipe.mu.Unlock()
	return len(t.pipe.bufs[t.side])
}

// Receive copies pending bytes into buf.
func (t *LoopbackTransport) Receive(buf []byte) (int, error) {
	if !t.init {
		return 0, ErrNotInitialized
	}

	t.pipe.mu.Lock()
	defer t.pipe.mu.Unlock()

	pending := t.pipe.bufs[t.side]
	if len(pending) == 0 {
		return 0, nil
	}
	n := copy(buf, pending)
	t.pipe.bufs[t.side] = pending[n:]

	return n, nil
}

// Send delivers the buffer to the peer side.
func (t *LoopbackTransport) Send(data []byte) error {
	if !t.init {
		return ErrNotInitialized
	}
	if len(data) > t.mtu {
		return ErrTooLarge
	}

	t.pipe.mu.Lock()
	defer t.pipe.mu.Unlock()
	peer := 1 - t.side
	t.pipe.bufs[peer] = append(t.pipe.bufs[peer], data...)

	return nil
}

// Name returns the endpoint name.
func (t *LoopbackTransport) Name() string { return t.name }

// MTU returns the negotiated MTU.
func (t *LoopbackTransport) MTU() int { return t.mtu }
