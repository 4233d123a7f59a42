package link

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/AltGrid/viatext-core-sub000/command"
	"github.com/AltGrid/viatext-core-sub000/frame"
	"github.com/AltGrid/viatext-core-sub000/logger"
)

// pollInterval is the pause between empty transport polls.
const pollInterval = time.Millisecond

// replyChanSize buffers the response frames of one request; snapshot reads
// may deliver several frames before the caller drains them.
const replyChanSize = 8

// Client is the host-side command client. It builds validated request
// frames, byte-stuffs them onto a Transport, and matches response frames
// back to their requests by the echoed sequence number.
type Client struct {
	tr      Transport
	decoder *frame.Decoder
	pending *xsync.MapOf[uint8, chan command.Response]
	seq     atomic.Uint32
	logger  logger.Logger
	rxBuf   []byte
}

// NewClient wraps an initialized transport.
func NewClient(tr Transport) *Client {
	return &Client{
		tr:      tr,
		decoder: frame.NewDecoder(),
		pending: xsync.NewMapOf[uint8, chan command.Response](),
		logger:  logger.GetLogger().With("transport", tr.Name()),
		rxBuf:   make([]byte, tr.MTU()),
	}
}

// NextSeq returns the next request sequence number, wrapping at 255.
func (c *Client) NextSeq() uint8 {
	return uint8(c.seq.Add(1))
}

// Do resolves and sends one command and waits for its response. For SET
// commands the value is validated by the command layer; GET commands ignore
// it. The context bounds the wait.
func (c *Client) Do(ctx context.Context, cmd command.Command, value string) (command.Response, error) {
	seq := c.NextSeq()
	req, err := command.BuildRequest(cmd, seq, value)
	if err != nil {
		return command.Response{}, err
	}

	ch := c.register(seq)
	defer c.pending.Delete(seq)

	if err := c.send(req); err != nil {
		return command.Response{}, err
	}

	return c.wait(ctx, ch)
}

// Snapshot issues a GET_ALL request and accumulates TLVs across response
// frames until the replier's terminal frame or the context deadline.
func (c *Client) Snapshot(ctx context.Context) (command.Response, error) {
	seq := c.NextSeq()
	req, err := command.BuildRequest(command.CmdGetAll, seq, "")
	if err != nil {
		return command.Response{}, err
	}

	ch := c.register(seq)
	defer c.pending.Delete(seq)

	if err := c.send(req); err != nil {
		return command.Response{}, err
	}

	var acc command.Accumulator
	for !acc.Done() {
		resp, err := c.wait(ctx, ch)
		if err != nil {
			return command.Response{}, err
		}
		acc.Add(resp)
	}

	return acc.Response(), nil
}

func (c *Client) register(seq uint8) chan command.Response {
	ch := make(chan command.Response, replyChanSize)
	c.pending.Store(seq, ch)
	return ch
}

func (c *Client) send(payload []byte) error {
	framed := frame.Encode(payload)
	if len(framed) > c.tr.MTU() {
		return fmt.Errorf("%w: frame is %d bytes, MTU %d", ErrTooLarge, len(framed), c.tr.MTU())
	}
	return c.tr.Send(framed)
}

// wait pumps the transport until the channel delivers a response or the
// context expires.
func (c *Client) wait(ctx context.Context, ch chan command.Response) (command.Response, error) {
	for {
		select {
		case resp := <-ch:
			return resp, nil
		case <-ctx.Done():
			return command.Response{}, ctx.Err()
		default:
		}

		if !c.pump() {
			select {
			case <-ctx.Done():
				return command.Response{}, ctx.Err()
			case <-time.After(pollInterval):
			}
		}
	}
}

// pump performs one poll cycle: service the transport, drain pending bytes
// through the frame decoder, and route completed responses. It reports
// whether any bytes arrived.
func (c *Client) pump() bool {
	c.tr.Service()

	n, err := c.tr.Receive(c.rxBuf)
	if err != nil || n == 0 {
		return false
	}

	for _, payload := range c.decoder.FeedAll(c.rxBuf[:n]) {
		resp, err := command.ParseResponse(payload)
		if err != nil {
			c.logger.Warn("undecodable response frame dropped", "error", err)
			continue
		}
		c.route(resp)
	}

	return true
}

func (c *Client) route(resp command.Response) {
	ch, ok := c.pending.Load(resp.Seq)
	if !ok {
		c.logger.Debug("response with no pending request", "seq", resp.Seq)
		return
	}
	select {
	case ch <- resp:
	default:
		c.logger.Warn("reply channel full, response dropped", "seq", resp.Seq)
	}
}
