package fsbl

import "bytes"

// Checksum computes the boot ROM payload checksum: the sum of all payload
// bytes, truncated to 32 bits. Overflow wraps silently.
func Checksum(payload []byte) uint32 {
	var sum uint32
	for _, b := range payload {
		sum += uint32(b)
	}
	return sum
}

// HasMagic reports whether data starts with the "STM2" marker.
// Only the first MagicSize bytes are inspected.
func HasMagic(data []byte) bool {
	return bytes.HasPrefix(data, Magic[:])
}
