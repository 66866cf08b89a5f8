package common

// WipeByteArray overwrites b with zeros. Use it to drop plaintext passwords
// from memory once they are no longer needed. A nil slice is ignored.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
