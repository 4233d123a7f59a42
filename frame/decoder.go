package frame

// decodeState represents the stage of the frame decoder.
type decodeState uint8

const (
	// stateIdle: outside any frame, waiting for a delimiter.
	stateIdle decodeState = iota
	// stateInFrame: inside a frame, buffering payload bytes.
	stateInFrame
	// stateEscaped: inside a frame, the previous byte was the escape byte.
	stateEscaped
)

// String returns string representation of the decoder state.
func (s decodeState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateInFrame:
		return "in-frame"
	case stateEscaped:
		return "escaped"
	default:
		return "unknown"
	}
}

// Decoder is a stateful byte-at-a-time frame decoder.
//
// It tolerates delimiter-adjacent noise: consecutive delimiters are absorbed,
// bytes outside a frame are ignored, and an invalid escape sequence discards
// the partial frame and resets to idle. It never emits a malformed frame.
//
// A Decoder is a pure state machine with no internal locking; it requires
// single-writer access.
type Decoder struct {
	buf    []byte
	state  decodeState
	errors int
}

// NewDecoder creates a frame decoder in the idle state.
func NewDecoder() *Decoder {
	return &Decoder{buf: make([]byte, 0, 64)}
}

// Feed consumes one byte from the stream. When the byte completes a frame,
// Feed returns the unstuffed payload and true; the returned slice is only
// valid until the next Feed call.
func (d *Decoder) Feed(b byte) ([]byte, bool) {
	switch d.state {
	case stateIdle:
		if b == Delimiter {
			d.buf = d.buf[:0]
			d.state = stateInFrame
		}
		// non-delimiter noise between frames is ignored

	case stateInFrame:
		switch b {
		case Delimiter:
			if len(d.buf) > 0 {
				// completed frame; stay out of frame state until the
				// next delimiter opens a new one
				d.state = stateIdle
				return d.buf, true
			}
			// empty buffer: treat as the start of a new frame, which
			// absorbs consecutive delimiters safely
		case Escape:
			d.state = stateEscaped
		default:
			d.buf = append(d.buf, b)
		}

	case stateEscaped:
		switch b {
		case EscapedDelimiter:
			d.buf = append(d.buf, Delimiter)
			d.state = stateInFrame
		case EscapedEscape:
			d.buf = append(d.buf, Escape)
			d.state = stateInFrame
		default:
			// invalid escape sequence: protocol error, discard the
			// partial frame
			d.buf = d.buf[:0]
			d.state = stateIdle
			d.errors++
		}
	}

	return nil, false
}

// FeedAll consumes a chunk of stream bytes and returns copies of every
// completed frame.
func (d *Decoder) FeedAll(data []byte) [][]byte {
	var frames [][]byte
	for _, b := range data {
		if payload, ok := d.Feed(b); ok {
			out := make([]byte, len(payload))
			copy(out, payload)
			frames = append(frames, out)
		}
	}
	return frames
}

// Errors returns the number of invalid escape sequences seen.
func (d *Decoder) Errors() int { return d.errors }

// Reset discards any partial frame and returns the decoder to idle.
func (d *Decoder) Reset() {
	d.buf = d.buf[:0]
	d.state = stateIdle
}
