package command

import (
	"fmt"
	"strings"
)

// Response is a decoded response frame.
type Response struct {
	OK   bool
	Seq  uint8
	TLVs []TLV
}

// ParseResponse decodes a response frame: [RespOK|RespErr, seq, TLV...].
func ParseResponse(data []byte) (Response, error) {
	if len(data) < 2 {
		return Response{}, fmt.Errorf("%w: got %d bytes", ErrShortFrame, len(data))
	}

	verb := Verb(data[0])
	if verb != VerbRespOK && verb != VerbRespErr {
		return Response{}, fmt.Errorf("%w: verb %s", ErrNotResponse, verb)
	}

	tlvs, err := parseTLVs(data[2:])
	if err != nil {
		return Response{}, err
	}

	return Response{OK: verb == VerbRespOK, Seq: data[1], TLVs: tlvs}, nil
}

// Summary flattens the response into a single line of key=value tokens
// prefixed by the status and the echoed sequence:
//
//	status=ok seq=5 freq=868000000 sf=9
//
// Values of width 1, 2, or 4 bytes render as unsigned decimal integers,
// everything else as UTF-8 text. This is explicitly lossy; callers that need
// exact types must decode the TLVs directly.
func (r Response) Summary() string {
	var sb strings.Builder
	if r.OK {
		sb.WriteString("status=ok")
	} else {
		sb.WriteString("status=err")
	}
	fmt.Fprintf(&sb, " seq=%d", r.Seq)

	for _, tlv := range r.TLVs {
		sb.WriteByte(' ')
		sb.WriteString(tlv.Tag.String())
		sb.WriteByte('=')
		if v, ok := tlv.Uint(); ok {
			fmt.Fprintf(&sb, "%d", v)
		} else {
			sb.WriteString(tlv.String())
		}
	}

	return sb.String()
}

// Accumulator merges the TLVs of a multi-frame GET_ALL snapshot.
//
// The replier signals completion with a terminal frame: a response carrying
// zero TLVs, or an error response. Timeout policy belongs to the transport
// collaborator feeding the accumulator.
type Accumulator struct {
	TLVs []TLV
	Seq  uint8
	Err  bool
	done bool
}

// Add folds one response frame in and reports whether the snapshot is
// complete.
func (a *Accumulator) Add(r Response) bool {
	if a.done {
		return true
	}
	a.Seq = r.Seq

	if !r.OK {
		a.Err = true
		a.done = true
		return true
	}
	if len(r.TLVs) == 0 {
		a.done = true
		return true
	}

	a.TLVs = append(a.TLVs, r.TLVs...)

	return false
}

// Done reports whether a terminal frame has been folded in.
func (a *Accumulator) Done() bool { return a.done }

// Response returns the accumulated snapshot as a single synthetic response.
func (a *Accumulator) Response() Response {
	return Response{OK: !a.Err, Seq: a.Seq, TLVs: a.TLVs}
}
