package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEnvelope(t *testing.T) {
	env := ParseEnvelope("msg-7|A:B|C:D|hello there")
	assert.Equal(t, "msg-7", env.ID)
	assert.Equal(t, []string{"A", "B"}, env.From)
	assert.Equal(t, []string{"C", "D"}, env.To)
	assert.Equal(t, "hello there", env.Message)
}

func TestParseEnvelope_Defensive(t *testing.T) {
	// Missing segments yield empty values, never an error.
	env := ParseEnvelope("only-id")
	assert.Equal(t, "only-id", env.ID)
	assert.Empty(t, env.From)
	assert.Empty(t, env.To)
	assert.Empty(t, env.Message)

	env = ParseEnvelope("")
	assert.Empty(t, env.ID)

	env = ParseEnvelope("id|||")
	assert.Equal(t, "id", env.ID)
	assert.Empty(t, env.From)
	assert.Empty(t, env.To)
	assert.Empty(t, env.Message)

	// Message may contain the list separator.
	env = ParseEnvelope("id|A||x:y|z")
	assert.Equal(t, "x:y|z", env.Message)
}

func TestEnvelope_StringRoundTrip(t *testing.T) {
	env := Envelope{
		ID:      "m1",
		From:    []string{"A"},
		To:      []string{"B", "C"},
		Message: "payload",
	}
	assert.Equal(t, "m1|A|B:C|payload", env.String())

	got := ParseEnvelope(env.String())
	assert.Equal(t, env, got)
}

func TestEnvelope_ShiftRoute(t *testing.T) {
	env := ParseEnvelope("m|A|B:C|x")

	// Not the head of the pending route: no-op.
	env.ShiftRoute("C")
	assert.Equal(t, []string{"A"}, env.From)
	assert.Equal(t, []string{"B", "C"}, env.To)

	env.ShiftRoute("B")
	assert.Equal(t, []string{"A", "B"}, env.From)
	assert.Equal(t, []string{"C"}, env.To)

	env.ShiftRoute("C")
	assert.Equal(t, []string{"A", "B", "C"}, env.From)
	assert.Empty(t, env.To)
	assert.True(t, env.Delivered())

	// Empty pending route: no-op.
	env.ShiftRoute("C")
	assert.Equal(t, []string{"A", "B", "C"}, env.From)
}

func TestEnvelope_IsFinalDestination(t *testing.T) {
	env := ParseEnvelope("m|A|B:C|x")
	assert.True(t, env.IsFinalDestination("B"))
	assert.False(t, env.IsFinalDestination("C"))
	assert.False(t, env.IsFinalDestination("A"))

	empty := ParseEnvelope("m|A||x")
	assert.False(t, empty.IsFinalDestination("B"), "empty pending route has no destination")
}
