package assembler

import (
	"github.com/Urethramancer/tinyvm/cpu"
)

// EncodeInstruction resolves the operands of line against labels and returns its four words.
// The mnemonic and operand count are checked before any operand is resolved.
func EncodeInstruction(line *InstructionLine, labels LabelTable) ([cpu.InstructionWords]uint64, error) {
	in, err := buildInstruction(line, labels)
	if err != nil {
		return [cpu.InstructionWords]uint64{}, err
	}
	return in.Encode(), nil
}

func buildInstruction(line *InstructionLine, labels LabelTable) (cpu.Instruction, error) {
	var in cpu.Instruction
	info, ok := cpu.Lookup(line.Mnemonic)
	if !ok {
		return in, errorf(ErrUnknownMnemonic, line.Pos, "%q", line.Mnemonic)
	}
	if len(line.Operands) != info.Operands {
		return in, errorf(ErrOperandCount, line.Pos, "%s takes %d operand(s), got %d",
			info.Mnemonic, info.Operands, len(line.Operands))
	}

	in.Opcode = info.Opcode
	in.Flags = cpu.FlagNormal
	for i, group := range line.Operands {
		op, err := Resolve(group, labels)
		if err != nil {
			return in, err
		}
		in.Operands[i] = op
	}
	return in, nil
}
