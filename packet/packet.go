// Package packet defines the payload+arguments container that crosses the
// core boundary, plus the tokenizer and bounded fragment store that ingress
// adapters use to build one.
//
// Every adapter (CLI, serial, radio) produces a Packet on ingress; the
// dispatch engine consumes inbound packets and produces outbound ones.
// Packets are transient: they are never persisted.
package packet

import "strings"

// MaxPayloadLen bounds the packet payload text.
const MaxPayloadLen = 255

// MaxArgs bounds the number of key/value arguments a packet carries.
const MaxArgs = 16

// FieldSep separates the parts of a multi-field argument value.
const FieldSep = "~"

type arg struct {
	key string
	val string
}

// Packet is a bounded key-value argument list plus a bounded text payload.
//
// Keys are unique and kept verbatim as supplied (leading dashes included)
// after whitespace trim; an empty value denotes a presence flag. Insertion
// order is preserved for enumeration but irrelevant for lookup.
type Packet struct {
	payload string
	args    []arg
}

// SetPayload stores the payload text. It returns false and leaves the packet
// unchanged if the text exceeds MaxPayloadLen.
func (p *Packet) SetPayload(s string) bool {
	if len(s) > MaxPayloadLen {
		return false
	}
	p.payload = s
	return true
}

// Payload returns the payload text.
func (p *Packet) Payload() string { return p.payload }

// Set stores a key/value argument. The key is whitespace-trimmed and kept
// verbatim otherwise. Setting an existing key overwrites its value in place;
// setting a new key on a full argument list returns false instead of growing.
func (p *Packet) Set(key, value string) bool {
	key = strings.TrimSpace(key)
	if key == "" {
		return false
	}

	for i := range p.args {
		if p.args[i].key == key {
			p.args[i].val = value
			return true
		}
	}

	if len(p.args) >= MaxArgs {
		return false
	}
	p.args = append(p.args, arg{key: key, val: value})

	return true
}

// Get returns the value stored under key and whether the key is present.
func (p *Packet) Get(key string) (string, bool) {
	for i := range p.args {
		if p.args[i].key == key {
			return p.args[i].val, true
		}
	}
	return "", false
}

// Has reports whether key is present, value or presence flag alike.
func (p *Packet) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

// Fields splits the value stored under key on the field separator and
// returns the ordered parts. A missing key yields nil.
func (p *Packet) Fields(key string) []string {
	v, ok := p.Get(key)
	if !ok {
		return nil
	}
	return strings.Split(v, FieldSep)
}

// Keys returns the argument keys in first-insertion order.
func (p *Packet) Keys() []string {
	keys := make([]string, len(p.args))
	for i := range p.args {
		keys[i] = p.args[i].key
	}
	return keys
}

// Len returns the number of stored arguments.
func (p *Packet) Len() int { return len(p.args) }

// Reset clears the payload and all arguments.
func (p *Packet) Reset() {
	p.payload = ""
	p.args = p.args[:0]
}
