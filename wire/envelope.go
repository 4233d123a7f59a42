package wire

import "strings"

// Envelope is the self-routing text format carrying a message across the
// mesh:
//
//	<id>|<from1:from2:...>|<to1:to2:...>|<message>
//
// From lists the nodes already traversed, To lists the nodes still pending.
// One relay step moves the head of To to the tail of From; an empty To means
// the envelope has been delivered.
type Envelope struct {
	ID      string
	From    []string
	To      []string
	Message string
}

// ParseEnvelope parses the pipe-delimited envelope text. Missing or empty
// segments yield empty strings and lists; malformed input still parses
// defensively, never returning an error.
func ParseEnvelope(raw string) Envelope {
	var env Envelope

	segs := strings.SplitN(raw, "|", 4)
	if len(segs) > 0 {
		env.ID = segs[0]
	}
	if len(segs) > 1 {
		env.From = splitRoute(segs[1])
	}
	if len(segs) > 2 {
		env.To = splitRoute(segs[2])
	}
	if len(segs) > 3 {
		env.Message = segs[3]
	}

	return env
}

func splitRoute(s string) []string {
	if s == "" {
		return nil
	}
	nodes := make([]string, 0, 4)
	for _, n := range strings.Split(s, ":") {
		if n != "" {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// String renders the envelope back to its pipe-delimited text form.
func (e *Envelope) String() string {
	var sb strings.Builder
	sb.WriteString(e.ID)
	sb.WriteByte('|')
	sb.WriteString(strings.Join(e.From, ":"))
	sb.WriteByte('|')
	sb.WriteString(strings.Join(e.To, ":"))
	sb.WriteByte('|')
	sb.WriteString(e.Message)
	return sb.String()
}

// ShiftRoute performs one relay step: if the head of To equals myID it is
// removed from To and appended to From. Otherwise ShiftRoute is a no-op.
func (e *Envelope) ShiftRoute(myID string) {
	if len(e.To) == 0 || e.To[0] != myID {
		return
	}
	e.From = append(e.From, e.To[0])
	e.To = e.To[1:]
}

// IsFinalDestination reports whether myID is the next and only sensible stop:
// true iff To is non-empty and its head equals myID.
func (e *Envelope) IsFinalDestination(myID string) bool {
	return len(e.To) > 0 && e.To[0] == myID
}

// Delivered reports whether the pending route is exhausted.
func (e *Envelope) Delivered() bool {
	return len(e.To) == 0
}
