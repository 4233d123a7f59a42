package command

import (
	"errors"
	"fmt"
)

// Stable diagnostic tokens. The Error() string of every command-layer
// failure is the greppable token itself; these sentinels back errors.Is
// matching.
var (
	// ErrUnknownGet indicates a GET for a parameter name no category knows.
	ErrUnknownGet = errors.New("unknown_get")

	// ErrUnknownSet indicates a SET for a parameter name no category knows,
	// including set intent against a read-only diagnostic.
	ErrUnknownSet = errors.New("unknown_set")

	// ErrNeedExactlyOneCommand indicates a legacy invocation that selected
	// zero or more than one of get-id, ping, set-id.
	ErrNeedExactlyOneCommand = errors.New("need_exactly_one_command")

	// ErrUnhandledCommand indicates a resolved command no builder claims.
	ErrUnhandledCommand = errors.New("unhandled_command")

	// ErrBadValue is the category sentinel for out-of-range or non-numeric
	// SET values; concrete failures are BadValueError tokens.
	ErrBadValue = errors.New("bad_value")

	// ErrTruncatedTLV indicates a TLV record extending past the frame end.
	ErrTruncatedTLV = errors.New("truncated TLV record")

	// ErrNotResponse indicates a frame whose verb is not RESP_OK or RESP_ERR.
	ErrNotResponse = errors.New("frame is not a response")

	// ErrShortFrame indicates a frame without the verb and sequence bytes.
	ErrShortFrame = errors.New("frame shorter than verb and sequence")
)

// BadValueError reports an out-of-range or non-numeric SET value with a
// stable, parameter-specific token such as "bad_value:sf(7..12)".
type BadValueError struct {
	Param string
	Lo    int64
	Hi    int64
}

func (e *BadValueError) Error() string {
	return fmt.Sprintf("bad_value:%s(%d..%d)", e.Param, e.Lo, e.Hi)
}

// Is matches the ErrBadValue category sentinel.
func (e *BadValueError) Is(target error) bool {
	return target == ErrBadValue
}

func badValue(param string, lo, hi int64) error {
	return &BadValueError{Param: param, Lo: lo, Hi: hi}
}
