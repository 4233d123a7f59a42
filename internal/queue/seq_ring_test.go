package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeqRing_InsertContains(t *testing.T) {
	r := NewSeqRing(3)
	assert.False(t, r.Contains(1))

	r.Insert(1)
	r.Insert(2)
	assert.True(t, r.Contains(1))
	assert.True(t, r.Contains(2))
	assert.False(t, r.Contains(3))
	assert.Equal(t, 2, r.Len())
}

func TestSeqRing_EvictsOldest(t *testing.T) {
	r := NewSeqRing(3)
	r.Insert(1)
	r.Insert(2)
	r.Insert(3)
	assert.Equal(t, 3, r.Len())

	// Overflow evicts the oldest entry only.
	r.Insert(4)
	assert.False(t, r.Contains(1))
	assert.True(t, r.Contains(2))
	assert.True(t, r.Contains(3))
	assert.True(t, r.Contains(4))
	assert.Equal(t, 3, r.Len())
}

func TestSeqRing_MinCapacity(t *testing.T) {
	r := NewSeqRing(0)
	assert.Equal(t, 1, r.Cap())

	r.Insert(7)
	assert.True(t, r.Contains(7))
	r.Insert(8)
	assert.False(t, r.Contains(7))
	assert.True(t, r.Contains(8))
}
