package domain

// Zero overwrites b with zeros. Used on transient key material and plaintext
// buffers once they are no longer needed.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
