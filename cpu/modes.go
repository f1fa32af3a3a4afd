package cpu

import (
	"fmt"
	"strings"
)

// Mode is the addressing-mode byte of one operand. It is a set of flags:
// exactly one of Literal, Memory or Register, optionally combined with Indirect.
type Mode uint8

// Addressing mode flags.
const (
	// Indirect: the operand target holds the location of the value in memory.
	Indirect Mode = 1
	// Literal: the operand value is an immediate.
	Literal Mode = 2
	// Memory: the operand value is a memory word address.
	Memory Mode = 4
	// Register: the operand value is a register index.
	Register Mode = 8
)

// ModeNone marks an unused operand slot.
const ModeNone Mode = 0

// Kind returns the mode with the Indirect flag cleared.
func (m Mode) Kind() Mode {
	return m &^ Indirect
}

// IsIndirect reports whether the Indirect flag is set.
func (m Mode) IsIndirect() bool {
	return m&Indirect != 0
}

// String renders the flags joined by '|', e.g. "indirect|register".
func (m Mode) String() string {
	if m == ModeNone {
		return "none"
	}
	var parts []string
	if m&Indirect != 0 {
		parts = append(parts, "indirect")
	}
	if m&Literal != 0 {
		parts = append(parts, "literal")
	}
	if m&Memory != 0 {
		parts = append(parts, "memory")
	}
	if m&Register != 0 {
		parts = append(parts, "register")
	}
	if rest := m &^ (Indirect | Literal | Memory | Register); rest != 0 {
		parts = append(parts, fmt.Sprintf("%#02x", uint8(rest)))
	}
	return strings.Join(parts, "|")
}

