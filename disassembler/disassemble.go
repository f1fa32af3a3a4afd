package disassembler

import (
	"fmt"
	"strings"

	"github.com/Urethramancer/tinyvm/cpu"
)

// LabelType defines the context of a label.
type LabelType int

const (
	// JumpTarget is for a jump (JMP, JEQ, JNE, JNZ).
	JumpTarget LabelType = iota
	// SubroutineEntry is for a CALL target.
	SubroutineEntry
)

// Instruction is one decoded four-word block at a word address.
type Instruction struct {
	Address uint64
	Words   [cpu.InstructionWords]uint64
	cpu.Instruction
	// Err is set when the block does not hold a valid instruction.
	Err error
}

// Disassemble decodes a raw little-endian image and returns source that
// assembles back to the same image. Blocks that do not hold a valid
// instruction, including ones with flags or reserved bits set, are written as
// comments carrying their raw words.
func Disassemble(image []byte) (string, error) {
	if len(image) > cpu.ImageSize*cpu.WordSize {
		return "", fmt.Errorf("image is %d bytes, larger than %d", len(image), cpu.ImageSize*cpu.WordSize)
	}
	words, err := cpu.BytesToWords(image)
	if err != nil {
		return "", err
	}
	return DisassembleWords(words), nil
}

// Decode sweeps the words in four-word steps from address 0. All-zero blocks
// are unused memory and are skipped, as is a trailing partial block.
func Decode(words []uint64) []Instruction {
	var out []Instruction
	for addr := 0; addr+cpu.InstructionWords <= len(words); addr += cpu.InstructionWords {
		var block [cpu.InstructionWords]uint64
		copy(block[:], words[addr:])
		if block == ([cpu.InstructionWords]uint64{}) {
			continue
		}
		in := cpu.Decode(block)
		out = append(out, Instruction{
			Address:     uint64(addr),
			Words:       block,
			Instruction: in,
			Err:         in.Validate(),
		})
	}
	return out
}

// DisassembleWords renders decoded words as source.
func DisassembleWords(words []uint64) string {
	instructions := Decode(words)

	// Collect jump targets that land on a decoded instruction.
	at := make(map[uint64]bool, len(instructions))
	for _, in := range instructions {
		if in.Err == nil {
			at[in.Address] = true
		}
	}
	labelTargets := make(map[uint64]LabelType)
	for _, in := range instructions {
		if in.Err != nil || !in.Opcode.IsJump() {
			continue
		}
		target := in.Operands[0]
		if target.Mode != cpu.Literal || !at[target.Value] {
			continue
		}
		if in.Opcode == cpu.OpCall {
			labelTargets[target.Value] = SubroutineEntry
		} else if _, exists := labelTargets[target.Value]; !exists {
			labelTargets[target.Value] = JumpTarget
		}
	}

	var out strings.Builder
	var cursor uint64
	for _, in := range instructions {
		if in.Err != nil {
			fmt.Fprintf(&out, "; %d: %v: %s\n", in.Address, in.Err, formatWords(in.Words[:]))
			continue
		}
		if in.Address != cursor {
			fmt.Fprintf(&out, ".base %d\n", in.Address)
		}
		cursor = in.Address + cpu.InstructionWords

		if labelType, exists := labelTargets[in.Address]; exists {
			fmt.Fprintf(&out, "%s:\n", labelName(in.Address, labelType))
		}

		operands := formatOperands(in.Instruction, labelTargets)
		if operands != "" {
			fmt.Fprintf(&out, "    %-8s %s\n", in.Opcode, operands)
		} else {
			fmt.Fprintf(&out, "    %s\n", in.Opcode)
		}
	}
	return out.String()
}

