package bitwise

// Bitmap is a little-endian bit set laid over a byte slice: bit k lives in
// byte k/8 at position k%8.
type Bitmap []byte

// BytesFor returns how many bytes are needed to hold n bits.
func BytesFor(n int) int {
	return (n + 7) / 8
}

func (b Bitmap) Set(k int) {
	b[k/8] |= 1 << (k % 8) // OR
}

func (b Bitmap) IsSet(k int) bool {
	return b[k/8]&(1<<(k%8)) > 0
}

// Count returns the number of set bits among the first n bits.
func (b Bitmap) Count(n int) int {
	count := 0
	for k := 0; k < n; k++ {
		if b.IsSet(k) {
			count += 1
		}
	}
	return count
}
