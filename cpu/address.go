package cpu

import "fmt"

func (c *CPU) read(addr uint64) (uint64, error) {
	if addr >= ImageSize {
		return 0, fmt.Errorf("%w: read at %d", ErrBadAddress, addr)
	}
	return c.Memory[addr], nil
}

func (c *CPU) write(addr, v uint64) error {
	if addr >= ImageSize {
		return fmt.Errorf("%w: write at %d", ErrBadAddress, addr)
	}
	c.Memory[addr] = v
	return nil
}

// GetOperand returns the value an operand designates. A literal is its own
// value, memory and register operands read the word they name, and the
// Indirect flag reads memory once more at that value.
func (c *CPU) GetOperand(op Operand) (uint64, error) {
	var v uint64
	switch op.Mode.Kind() {
	case Literal:
		v = op.Value
	case Memory:
		w, err := c.read(op.Value)
		if err != nil {
			return 0, err
		}
		v = w
	case Register:
		if op.Value >= RegisterCount {
			return 0, fmt.Errorf("invalid register %d", op.Value)
		}
		v = c.Registers[op.Value]
	default:
		return 0, fmt.Errorf("invalid addressing mode %s", op.Mode)
	}
	if op.Mode.IsIndirect() {
		return c.read(v)
	}
	return v, nil
}

// PutOperand stores v where an operand designates. A plain literal is not a
// location; an indirect literal names the memory word at its value.
func (c *CPU) PutOperand(op Operand, v uint64) error {
	var target *uint64
	switch op.Mode.Kind() {
	case Literal:
		if !op.Mode.IsIndirect() {
			return ErrLiteralTarget
		}
		return c.write(op.Value, v)
	case Memory:
		if op.Value >= ImageSize {
			return fmt.Errorf("%w: write at %d", ErrBadAddress, op.Value)
		}
		target = &c.Memory[op.Value]
	case Register:
		if op.Value >= RegisterCount {
			return fmt.Errorf("invalid register %d", op.Value)
		}
		target = &c.Registers[op.Value]
	default:
		return fmt.Errorf("invalid addressing mode %s", op.Mode)
	}
	if op.Mode.IsIndirect() {
		return c.write(*target, v)
	}
	*target = v
	return nil
}

// The stack grows down from rSBP. rSP counts the words on it, so the top is
// at rSBP - rSP + 1 and an empty stack has rSP = 0.

// Push stores v on the stack.
func (c *CPU) Push(v uint64) error {
	sp, base := c.Registers[RSP], c.Registers[RSBP]
	if sp > base {
		return ErrStackOverflow
	}
	if err := c.write(base-sp, v); err != nil {
		return err
	}
	c.Registers[RSP] = sp + 1
	return nil
}

// Pop removes and returns the top of the stack.
func (c *CPU) Pop() (uint64, error) {
	sp, base := c.Registers[RSP], c.Registers[RSBP]
	if sp == 0 {
		return 0, ErrStackUnderflow
	}
	v, err := c.read(base - (sp - 1))
	if err != nil {
		return 0, err
	}
	c.Registers[RSP] = sp - 1
	return v, nil
}

// sources fetches operands 1 and 2.
func (c *CPU) sources(inst *Instruction) (uint64, uint64, error) {
	b, err := c.GetOperand(inst.Operands[1])
	if err != nil {
		return 0, 0, fmt.Errorf("operand 1: %w", err)
	}
	v, err := c.GetOperand(inst.Operands[2])
	if err != nil {
		return 0, 0, fmt.Errorf("operand 2: %w", err)
	}
	return b, v, nil
}
