package assembler

import (
	"strconv"

	"github.com/Urethramancer/tinyvm/cpu"
)

// LabelTable maps label names to absolute word addresses.
type LabelTable map[string]uint64

// Resolve converts an operand group to its addressing mode and value.
func Resolve(group OperandGroup, labels LabelTable) (cpu.Operand, error) {
	var op cpu.Operand
	var indirect bool
	switch group.(type) {
	case DirectOperand:
	case IndirectOperand:
		indirect = true
	default:
		return op, errorf(ErrInvalidOperand, group.Operand().Pos, "unsupported operand group %T", group)
	}

	t := group.Operand()
	switch t.Kind {
	case TokenRegister:
		idx, ok := cpu.RegisterIndex(t.Text)
		if !ok {
			return op, errorf(ErrInvalidOperand, t.Pos, "unknown register %q", t.Raw)
		}
		op = cpu.Operand{Mode: cpu.Register, Value: idx}

	case TokenLiteral:
		v, err := parseWord(t)
		if err != nil {
			return op, err
		}
		op = cpu.Operand{Mode: cpu.Literal, Value: v}

	case TokenNumber:
		v, err := parseWord(t)
		if err != nil {
			return op, err
		}
		op = cpu.Operand{Mode: cpu.Memory, Value: v}

	case TokenLabelRef:
		addr, ok := labels[t.Text]
		if !ok {
			return op, errorf(ErrUndefinedLabel, t.Pos, "%q", t.Text)
		}
		op = cpu.Operand{Mode: cpu.Literal, Value: addr}

	default:
		return op, errorf(ErrInvalidOperand, t.Pos, "%s %q cannot be used as an operand", t.Kind, t.Raw)
	}

	if indirect {
		op.Mode |= cpu.Indirect
	}
	return op, nil
}

// parseWord parses the decimal value of a literal or number token.
func parseWord(t Token) (uint64, error) {
	v, err := strconv.ParseUint(t.Text, 10, 64)
	if err != nil {
		return 0, errorf(ErrInvalidOperand, t.Pos, "value %q does not fit in a word", t.Raw)
	}
	return v, nil
}
