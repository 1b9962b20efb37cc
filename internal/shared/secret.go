// Package shared holds wire types and helpers used by both the client and
// the server.
package shared

// WipeByteArray zeroes b. Password buffers read from the terminal are wiped
// once they have been sent.
func WipeByteArray(b []byte) {
	clear(b)
}
