package disassembler

import (
	"fmt"
	"strings"

	"github.com/Urethramancer/tinyvm/cpu"
)

// formatOperands renders the used operands of in, space separated.
// A literal jump target with a label is written as a label reference.
func formatOperands(in cpu.Instruction, labels map[uint64]LabelType) string {
	n := in.Opcode.Info().Operands
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		op := in.Operands[i]
		if i == 0 && in.Opcode.IsJump() && op.Mode == cpu.Literal {
			if labelType, ok := labels[op.Value]; ok {
				parts = append(parts, ":"+labelName(op.Value, labelType))
				continue
			}
		}
		parts = append(parts, FormatOperand(op))
	}
	return strings.Join(parts, " ")
}

// FormatOperand renders one operand in source syntax: r3, #5, 100, [r3].
func FormatOperand(op cpu.Operand) string {
	var s string
	switch op.Mode.Kind() {
	case cpu.Register:
		s = cpu.RegisterName(op.Value)
	case cpu.Literal:
		s = fmt.Sprintf("#%d", op.Value)
	case cpu.Memory:
		s = fmt.Sprintf("%d", op.Value)
	default:
		s = fmt.Sprintf("?%d", op.Value)
	}
	if op.Mode.IsIndirect() {
		return "[" + s + "]"
	}
	return s
}

func formatWords(words []uint64) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = fmt.Sprintf("%016x", w)
	}
	return strings.Join(parts, " ")
}

func labelName(addr uint64, labelType LabelType) string {
	prefix := "loc_"
	switch labelType {
	case SubroutineEntry:
		prefix = "sub_"
	}
	return fmt.Sprintf("%s%04X", prefix, addr)
}
