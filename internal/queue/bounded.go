// Package queue provides the bounded collections owned by the dispatch
// engine: a capacity-checked FIFO and a fixed-window recency ring for
// sequence numbers.
//
// Both types are single-owner structures. They carry no internal locking;
// concurrent access requires external mutual exclusion.
package queue

// Bounded is a FIFO queue with a hard capacity. Enqueue on a full queue
// fails instead of growing.
type Bounded[T any] struct {
	items []T
	cap   int
}

// NewBounded creates a bounded FIFO with the given capacity.
// A capacity below 1 is treated as 1.
func NewBounded[T any](capacity int) *Bounded[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Bounded[T]{items: make([]T, 0, capacity), cap: capacity}
}

// Enqueue adds an item to the tail of the queue.
// It returns false if the queue is at capacity.
func (q *Bounded[T]) Enqueue(item T) bool {
	if len(q.items) >= q.cap {
		return false
	}
	q.items = append(q.items, item)
	return true
}

// Dequeue removes and returns the item at the head of the queue.
func (q *Bounded[T]) Dequeue() (T, bool) {
	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	item := q.items[0]
	copy(q.items, q.items[1:])
	q.items[len(q.items)-1] = zero
	q.items = q.items[:len(q.items)-1]
	return item, true
}

// Len returns the number of items currently queued.
func (q *Bounded[T]) Len() int { return len(q.items) }

// Cap returns the queue capacity.
func (q *Bounded[T]) Cap() int { return q.cap }

// IsEmpty returns true if the queue holds no items.
func (q *Bounded[T]) IsEmpty() bool { return len(q.items) == 0 }

// IsFull returns true if the queue is at capacity.
func (q *Bounded[T]) IsFull() bool { return len(q.items) >= q.cap }

// Reset discards all queued items, keeping the underlying storage.
func (q *Bounded[T]) Reset() {
	var zero T
	for i := range q.items {
		q.items[i] = zero
	}
	q.items = q.items[:0]
}
