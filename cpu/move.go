package cpu

import "math/rand/v2"

func (c *CPU) opMov(inst *Instruction) error {
	v, err := c.GetOperand(inst.Operands[1])
	if err != nil {
		return err
	}
	return c.PutOperand(inst.Operands[0], v)
}

func (c *CPU) opPush(inst *Instruction) error {
	v, err := c.GetOperand(inst.Operands[0])
	if err != nil {
		return err
	}
	return c.Push(v)
}

func (c *CPU) opPop(inst *Instruction) error {
	v, err := c.Pop()
	if err != nil {
		return err
	}
	return c.PutOperand(inst.Operands[0], v)
}

// opRdrand stores a random value in [b, c). Both bounds zero means any value.
func (c *CPU) opRdrand(inst *Instruction) error {
	lo, hi, err := c.sources(inst)
	if err != nil {
		return err
	}
	var v uint64
	switch {
	case lo == 0 && hi == 0:
		v = c.random().Uint64()
	case hi <= lo:
		return ErrEmptyRange
	default:
		v = lo + c.random().Uint64N(hi-lo)
	}
	return c.PutOperand(inst.Operands[0], v)
}

type source interface {
	Uint64() uint64
	Uint64N(uint64) uint64
}

type globalSource struct{}

func (globalSource) Uint64() uint64 { return rand.Uint64() }
func (globalSource) Uint64N(n uint64) uint64 { return rand.Uint64N(n) }

func (c *CPU) random() source {
	if c.Rand != nil {
		return c.Rand
	}
	return globalSource{}
}
