package cpu

import (
	"fmt"
	"math/rand/v2"
)

// ImageSize is the size of the VM memory in 64-bit words.
const ImageSize = 0x10000

// InstructionWords is the number of words every encoded instruction occupies:
// one control word followed by three operand words.
const InstructionWords = 4

// Register numbers.
const (
	// R0 through R15 are general-purpose.
	R0 = iota
	R1
	R2
	R3
	R4
	R5
	R6
	R7
	R8
	R9
	R10
	R11
	R12
	R13
	R14
	R15
	// RIP is the instruction pointer.
	RIP
	// RIC is the instruction counter.
	RIC
	// RSP is the stack pointer.
	RSP
	// RSBP is the stack base pointer.
	RSBP
	// RRMD receives the remainder of DIV.
	RRMD

	// RegisterCount is the number of addressable registers.
	RegisterCount
)

var registerNames = [RegisterCount]string{
	"r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7",
	"r8", "r9", "r10", "r11", "r12", "r13", "r14", "r15",
	"rIP", "rIC", "rSP", "rSBP", "rRMD",
}

var registers = func() map[string]uint64 {
	m := make(map[string]uint64, RegisterCount)
	for i, name := range registerNames {
		m[name] = uint64(i)
	}
	return m
}()

// RegisterIndex returns the index of a register by its source name, e.g. "r3" or "rSP".
// Names are case sensitive after the leading r.
func RegisterIndex(name string) (uint64, bool) {
	idx, ok := registers[name]
	return idx, ok
}

// RegisterName returns the source name of register idx, or "" if there is no such register.
func RegisterName(idx uint64) string {
	if idx >= RegisterCount {
		return ""
	}
	return registerNames[idx]
}

// CPU holds the registers and memory of one TinyVM.
type CPU struct {
	// Registers r0-r15 followed by rIP, rIC, rSP, rSBP and rRMD.
	Registers [RegisterCount]uint64
	// Memory is word addressed.
	Memory [ImageSize]uint64
	// Running is cleared by HALT.
	Running bool
	// Rand supplies RDRAND. Nil means the package-level source.
	Rand *rand.Rand
}

// DefaultStackBase is where the stack starts unless the caller moves it: the
// last word of memory, growing down towards the program.
const DefaultStackBase = ImageSize - 1

// New creates a CPU with cleared memory, rIP at 0 and an empty stack at
// DefaultStackBase.
func New() *CPU {
	c := &CPU{}
	c.Reset()
	return c
}

// Reset clears memory and registers and sets up an empty stack.
func (c *CPU) Reset() {
	c.Memory = [ImageSize]uint64{}
	c.Registers = [RegisterCount]uint64{}
	c.Registers[RSBP] = DefaultStackBase
	c.Running = false
}

// Load copies words to memory starting at addr and points rIP at addr.
func (c *CPU) Load(addr uint64, words []uint64) error {
	if addr > ImageSize || uint64(len(words)) > ImageSize-addr {
		return fmt.Errorf("%w: %d words at %d", ErrBadAddress, len(words), addr)
	}
	copy(c.Memory[addr:], words)
	c.Registers[RIP] = addr
	return nil
}

// LoadImage loads a raw little-endian image at address 0.
func (c *CPU) LoadImage(image []byte) error {
	words, err := BytesToWords(image)
	if err != nil {
		return err
	}
	return c.Load(0, words)
}
