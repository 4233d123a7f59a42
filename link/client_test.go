package link

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AltGrid/viatext-core-sub000/command"
	"github.com/AltGrid/viatext-core-sub000/frame"
)

func TestLoopback_SendReceive(t *testing.T) {
	a, b := Loopback()
	require.NoError(t, a.Init(Config{}))
	require.NoError(t, b.Init(Config{}))

	assert.Equal(t, DefaultMTU, a.MTU())

	require.NoError(t, a.Send([]byte{1, 2, 3}))
	assert.Equal(t, 3, b.Available())
	assert.Equal(t, 0, a.Available(), "directions are independent")

	buf := make([]byte, 8)
	n, err := b.Receive(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, buf[:n])

	n, err = b.Receive(buf)
	require.NoError(t, err)
	assert.Zero(t, n, "drained side reports nothing pending")
}

func TestLoopback_Errors(t *testing.T) {
	a, _ := Loopback()

	err := a.Send([]byte{1})
	assert.ErrorIs(t, err, ErrNotInitialized)

	_, err = a.Receive(make([]byte, 4))
	assert.ErrorIs(t, err, ErrNotInitialized)

	require.NoError(t, a.Init(Config{MTU: 4}))
	err = a.Send([]byte{1, 2, 3, 4, 5})
	assert.ErrorIs(t, err, ErrTooLarge)
}

// respond runs a device-side loop on tr: it decodes request frames and
// answers each with the frames produced by reply, until stop is closed.
func respond(tr Transport, stop <-chan struct{}, reply func(req []byte) [][]byte) {
	d := frame.NewDecoder()
	buf := make([]byte, tr.MTU())
	for {
		select {
		case <-stop:
			return
		default:
		}

		n, err := tr.Receive(buf)
		if err != nil || n == 0 {
			time.Sleep(100 * time.Microsecond)
			continue
		}
		for _, req := range d.FeedAll(buf[:n]) {
			for _, resp := range reply(req) {
				_ = tr.Send(frame.Encode(resp))
			}
		}
	}
}

func TestClient_Do(t *testing.T) {
	host, device := Loopback()
	require.NoError(t, host.Init(Config{}))
	require.NoError(t, device.Init(Config{}))

	stop := make(chan struct{})
	defer close(stop)
	go respond(device, stop, func(req []byte) [][]byte {
		// Echo the request sequence with a frequency TLV.
		seq := req[1]
		return [][]byte{{
			byte(command.VerbRespOK), seq,
			byte(command.TagFrequency), 4, 0x00, 0xA1, 0xBC, 0x33,
		}}
	})

	c := NewClient(host)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	resp, err := c.Do(ctx, command.CmdGetFrequency, "")
	require.NoError(t, err)
	assert.True(t, resp.OK)
	require.Len(t, resp.TLVs, 1)
	v, ok := resp.TLVs[0].Uint()
	assert.True(t, ok)
	assert.Equal(t, uint32(868_000_000), v)
}

func TestClient_DoRejectsBadValue(t *testing.T) {
	host, _ := Loopback()
	require.NoError(t, host.Init(Config{}))

	c := NewClient(host)
	_, err := c.Do(context.Background(), command.CmdSetSpreadingFactor, "99")
	require.Error(t, err)
	assert.Equal(t, "bad_value:sf(7..12)", err.Error(), "invalid value fails before touching the wire")
}

func TestClient_Snapshot(t *testing.T) {
	host, device := Loopback()
	require.NoError(t, host.Init(Config{}))
	require.NoError(t, device.Init(Config{}))

	stop := make(chan struct{})
	defer close(stop)
	go respond(device, stop, func(req []byte) [][]byte {
		seq := req[1]
		// One TLV per frame, then the terminal empty frame.
		return [][]byte{
			{byte(command.VerbRespOK), seq, byte(command.TagSpreadingFactor), 1, 9},
			{byte(command.VerbRespOK), seq, byte(command.TagNodeID), 4, 'N', 'O', 'D', 'E'},
			{byte(command.VerbRespOK), seq},
		}
	})

	c := NewClient(host)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	resp, err := c.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, resp.OK)
	require.Len(t, resp.TLVs, 2)
	assert.Equal(t, "status=ok seq=1 sf=9 id=NODE", resp.Summary())
}

func TestClient_ContextTimeout(t *testing.T) {
	host, device := Loopback()
	require.NoError(t, host.Init(Config{}))
	require.NoError(t, device.Init(Config{}))

	// No responder: the wait must end with the context error.
	c := NewClient(host)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Do(ctx, command.CmdGetID, "")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_SeqWraps(t *testing.T) {
	host, _ := Loopback()
	require.NoError(t, host.Init(Config{}))

	c := NewClient(host)
	first := c.NextSeq()
	assert.Equal(t, uint8(1), first)
	for i := 0; i < 254; i++ {
		c.NextSeq()
	}
	assert.Equal(t, uint8(0), c.NextSeq(), "sequence wraps at 255")
}
