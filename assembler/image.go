package assembler

import (
	"bytes"
	"io"

	"github.com/Urethramancer/tinyvm/cpu"
)

// Image is the VM memory produced by an assembly run: cpu.ImageSize words,
// zero where nothing was placed.
type Image struct {
	words []uint64
}

// NewImage returns a zeroed image.
func NewImage() *Image {
	return &Image{words: make([]uint64, cpu.ImageSize)}
}

// Words returns the image contents indexed by word address. The slice must not be modified.
func (img *Image) Words() []uint64 {
	return img.words
}

// Word returns the word at addr, or 0 beyond the image.
func (img *Image) Word(addr uint64) uint64 {
	if addr >= uint64(len(img.words)) {
		return 0
	}
	return img.words[addr]
}

// Put stores an encoded instruction at [addr, addr+4).
func (img *Image) Put(addr uint64, words [cpu.InstructionWords]uint64) error {
	if addr > uint64(len(img.words))-cpu.InstructionWords {
		return errorf(ErrImageOverflow, Pos{}, "instruction at %d does not fit in %d words", addr, len(img.words))
	}
	copy(img.words[addr:], words[:])
	return nil
}

// Bytes serialises the image as little-endian 64-bit words with no header.
func (img *Image) Bytes() []byte {
	return cpu.WordsToBytes(img.words)
}

// WriteTo writes the serialised image to w.
func (img *Image) WriteTo(w io.Writer) (int64, error) {
	return bytes.NewReader(img.Bytes()).WriteTo(w)
}
