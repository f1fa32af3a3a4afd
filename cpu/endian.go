package cpu

import (
	"encoding/binary"
	"fmt"
)

// WordSize is the size of a VM word in bytes.
const WordSize = 8

// WordsToBytes converts VM words to a little-endian byte slice.
func WordsToBytes(words []uint64) []byte {
	out := make([]byte, len(words)*WordSize)
	for i, w := range words {
		binary.LittleEndian.PutUint64(out[i*WordSize:], w)
	}
	return out
}

// BytesToWords interprets b as little-endian VM words.
// The length of b must be a multiple of WordSize.
func BytesToWords(b []byte) ([]uint64, error) {
	if len(b)%WordSize != 0 {
		return nil, fmt.Errorf("image length %d is not a multiple of %d", len(b), WordSize)
	}
	out := make([]uint64, len(b)/WordSize)
	for i := range out {
		out[i] = binary.LittleEndian.Uint64(b[i*WordSize:])
	}
	return out, nil
}
