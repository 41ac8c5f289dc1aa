package protocol

import (
	"strings"
)

// Normalize canonicalizes a free-text guess into the answer space the
// verifier agrees on: ASCII lowercase, restricted to [a-z0-9 ], runs of
// spaces collapsed, no leading or trailing space. Non-ASCII characters are
// dropped outright; only ASCII letters are case-folded. The output feeds
// both key derivation and the commit-hash encoding, so it must never drift.
//
// Normalize is total and idempotent; any input (including empty) yields a
// valid, possibly empty, normalized answer.
func Normalize(answer string) string {

	var b strings.Builder
	b.Grow(len(answer))

	pendingSpace := false

	// Byte-wise scan is safe: every byte of a multi-byte UTF-8 sequence is
	// >= 0x80 and gets filtered out.
	for i := 0; i < len(answer); i++ {
		c := answer[i]

		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}

		switch {
		case (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9'):
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteByte(c)

		case c == ' ':
			pendingSpace = true

			// Everything else, tabs and newlines included, is removed rather
			// than treated as a space. Post-filter, spaces are the only
			// whitespace that can remain.
		}
	}

	return b.String()
}
