package packet

// FragmentSize is the byte width of one storage chunk.
const FragmentSize = 32

// FragmentCount is the number of storage chunks a FragmentStore holds.
const FragmentCount = 8

// LoadStatus reports the outcome of loading input into a FragmentStore.
type LoadStatus int

const (
	// LoadOK indicates the input fit the store.
	LoadOK LoadStatus = iota
	// LoadEmpty indicates a zero-length input.
	LoadEmpty
	// LoadOverflow indicates the input exceeded FragmentCount*FragmentSize bytes.
	LoadOverflow
)

// String returns string representation of the load status.
func (s LoadStatus) String() string {
	switch s {
	case LoadOK:
		return "ok"
	case LoadEmpty:
		return "empty"
	case LoadOverflow:
		return "overflow"
	default:
		return "unknown"
	}
}

// FragmentStore splits an input string into fixed-size chunks purely for
// bounded storage. This is storage chunking, not protocol fragmentation;
// protocol fragments are placed by the header's Part/Total fields.
type FragmentStore struct {
	chunks [FragmentCount][FragmentSize]byte
	length int
}

// Load copies the input into the chunk array. It reports LoadEmpty for a
// zero-length input and LoadOverflow when the input exceeds the total
// capacity; on overflow the store is left empty.
func (f *FragmentStore) Load(s string) LoadStatus {
	f.length = 0
	if len(s) == 0 {
		return LoadEmpty
	}
	if len(s) > FragmentCount*FragmentSize {
		return LoadOverflow
	}

	for i := 0; i < len(s); i += FragmentSize {
		end := i + FragmentSize
		if end > len(s) {
			end = len(s)
		}
		copy(f.chunks[i/FragmentSize][:], s[i:end])
	}
	f.length = len(s)

	return LoadOK
}

// Len returns the number of stored bytes.
func (f *FragmentStore) Len() int { return f.length }

// Reader returns a linear character-stream reader that consumes all chunks
// transparently.
func (f *FragmentStore) Reader() *FragmentReader {
	return &FragmentReader{store: f}
}

// FragmentReader reads a FragmentStore byte by byte across chunk boundaries.
type FragmentReader struct {
	store *FragmentStore
	pos   int
}

// Next returns the next byte and true, or zero and false at end of input.
func (r *FragmentReader) Next() (byte, bool) {
	if r.pos >= r.store.length {
		return 0, false
	}
	b := r.store.chunks[r.pos/FragmentSize][r.pos%FragmentSize]
	r.pos++
	return b, true
}

// ReadAll drains the remaining bytes into a string.
func (r *FragmentReader) ReadAll() string {
	out := make([]byte, 0, r.store.length-r.pos)
	for {
		b, ok := r.Next()
		if !ok {
			break
		}
		out = append(out, b)
	}
	return string(out)
}
