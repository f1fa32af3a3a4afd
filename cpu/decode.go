package cpu

import (
	"fmt"
)

// Operand is one resolved instruction operand.
type Operand struct {
	Mode  Mode
	Value uint64
}

// Instruction is the decoded form of the four words of one instruction.
// Unused trailing operands are zero. Reserved holds control word bits 40-63,
// which no valid instruction sets.
type Instruction struct {
	Opcode   Opcode
	Flags    Flags
	Operands [3]Operand
	Reserved uint32
}

// Control word layout.
const (
	opcodeShift = 32
	flagsShift  = 24
	mode0Shift  = 16
	mode1Shift  = 8
	mode2Shift  = 0

	reservedShift = 40
	reservedMask  = 1<<24 - 1
)

var modeShifts = [3]uint{mode0Shift, mode1Shift, mode2Shift}

// ControlWord packs the opcode, flags and the three addressing-mode bytes.
func (in Instruction) ControlWord() uint64 {
	w := uint64(in.Reserved&reservedMask)<<reservedShift |
		uint64(in.Opcode)<<opcodeShift | uint64(in.Flags)<<flagsShift
	for i, op := range in.Operands {
		w |= uint64(op.Mode) << modeShifts[i]
	}
	return w
}

// Encode returns the control word followed by the three operand values.
func (in Instruction) Encode() [InstructionWords]uint64 {
	return [InstructionWords]uint64{
		in.ControlWord(),
		in.Operands[0].Value,
		in.Operands[1].Value,
		in.Operands[2].Value,
	}
}

// Decode unpacks four words produced by Encode.
func Decode(words [InstructionWords]uint64) Instruction {
	control := words[0]
	in := Instruction{
		Opcode:   Opcode(control >> opcodeShift),
		Flags:    Flags(control >> flagsShift),
		Reserved: uint32(control >> reservedShift),
	}
	for i := range in.Operands {
		in.Operands[i] = Operand{
			Mode:  Mode(control >> modeShifts[i]),
			Value: words[i+1],
		}
	}
	return in
}

// Validate checks that the opcode exists, that the flags and reserved bits are
// clear, that every operand the opcode uses selects exactly one of Literal,
// Memory or Register, and that unused slots are empty.
func (in Instruction) Validate() error {
	if in.Opcode >= OpcodeCount {
		return fmt.Errorf("invalid opcode %d", in.Opcode)
	}
	if in.Reserved != 0 {
		return fmt.Errorf("%s: reserved control bits set (%#x)", in.Opcode, in.Reserved)
	}
	if in.Flags != FlagNormal {
		return fmt.Errorf("%s: unsupported flags %#02x", in.Opcode, in.Flags)
	}
	used := in.Opcode.Info().Operands
	for i, op := range in.Operands {
		if i >= used {
			if op.Mode != ModeNone || op.Value != 0 {
				return fmt.Errorf("%s: unused operand %d is not empty", in.Opcode, i)
			}
			continue
		}
		switch op.Mode.Kind() {
		case Literal, Memory, Register:
		default:
			return fmt.Errorf("%s: invalid addressing mode %s for operand %d", in.Opcode, op.Mode, i)
		}
		if op.Mode.Kind() == Register && op.Value >= RegisterCount {
			return fmt.Errorf("%s: invalid register %d for operand %d", in.Opcode, op.Value, i)
		}
	}
	return nil
}
