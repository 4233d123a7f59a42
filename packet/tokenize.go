package packet

import "strings"

// Tokenize scans an arbitrary input string into the packet's argument list.
//
// The input is split on whitespace. A token starting with '-' is a key; if
// the following token does not itself start with '-', it is consumed as the
// key's value, otherwise the key is stored as a presence flag and the next
// token is re-examined as a new key. Tokens with no owning key are discarded.
//
// First-occurrence order is preserved for enumeration; a repeated key
// overwrites the earlier value in place. Arguments beyond the packet's
// capacity are dropped, reported by the false return.
func Tokenize(input string, p *Packet) bool {
	tokens := strings.Fields(input)
	ok := true

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if !isKey(tok) {
			// ownerless token, discard
			continue
		}

		value := ""
		if i+1 < len(tokens) && !isKey(tokens[i+1]) {
			value = tokens[i+1]
			i++
		}

		if !p.Set(tok, value) {
			ok = false
		}
	}

	return ok
}

// isKey reports whether a token names an argument: a dash followed by at
// least one more character. A bare "-" or a negative number is a value.
func isKey(tok string) bool {
	if len(tok) < 2 || tok[0] != '-' {
		return false
	}
	c := tok[1]
	if c >= '0' && c <= '9' {
		return false
	}
	return true
}
