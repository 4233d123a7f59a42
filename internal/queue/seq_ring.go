package queue

// SeqRing is a bounded recency window of message sequence numbers, used to
// reject duplicates. Insertion on a full ring evicts the oldest entry, so a
// sequence older than the window can be seen again; that approximation is
// accepted by the protocol design.
type SeqRing struct {
	seqs  []uint16
	head  int
	count int
}

// NewSeqRing creates a recency ring holding at most capacity sequence numbers.
// A capacity below 1 is treated as 1.
func NewSeqRing(capacity int) *SeqRing {
	if capacity < 1 {
		capacity = 1
	}
	return &SeqRing{seqs: make([]uint16, capacity)}
}

// Contains reports whether seq is within the current window.
func (r *SeqRing) Contains(seq uint16) bool {
	for i := 0; i < r.count; i++ {
		if r.seqs[(r.head+i)%len(r.seqs)] == seq {
			return true
		}
	}
	return false
}

// Insert records seq, evicting the oldest entry if the ring is full.
func (r *SeqRing) Insert(seq uint16) {
	if r.count < len(r.seqs) {
		r.seqs[(r.head+r.count)%len(r.seqs)] = seq
		r.count++
		return
	}
	r.seqs[r.head] = seq
	r.head = (r.head + 1) % len(r.seqs)
}

// Len returns the number of sequences currently in the window.
func (r *SeqRing) Len() int { return r.count }

// Cap returns the window capacity.
func (r *SeqRing) Cap() int { return len(r.seqs) }
