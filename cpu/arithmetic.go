package cpu

// Arithmetic is unsigned and wraps at 64 bits.

func (c *CPU) opAdd(inst *Instruction) error {
	b, v, err := c.sources(inst)
	if err != nil {
		return err
	}
	return c.PutOperand(inst.Operands[0], b+v)
}

func (c *CPU) opSub(inst *Instruction) error {
	b, v, err := c.sources(inst)
	if err != nil {
		return err
	}
	return c.PutOperand(inst.Operands[0], b-v)
}

func (c *CPU) opMul(inst *Instruction) error {
	b, v, err := c.sources(inst)
	if err != nil {
		return err
	}
	return c.PutOperand(inst.Operands[0], b*v)
}

// opDiv stores the quotient in operand 0 and the remainder in rRMD.
func (c *CPU) opDiv(inst *Instruction) error {
	b, v, err := c.sources(inst)
	if err != nil {
		return err
	}
	if v == 0 {
		return ErrDivideByZero
	}
	if err := c.PutOperand(inst.Operands[0], b/v); err != nil {
		return err
	}
	c.Registers[RRMD] = b % v
	return nil
}

func (c *CPU) opMod(inst *Instruction) error {
	b, v, err := c.sources(inst)
	if err != nil {
		return err
	}
	if v == 0 {
		return ErrDivideByZero
	}
	return c.PutOperand(inst.Operands[0], b%v)
}

// Shifts of 64 or more give zero.
func (c *CPU) opShl(inst *Instruction) error {
	b, v, err := c.sources(inst)
	if err != nil {
		return err
	}
	return c.PutOperand(inst.Operands[0], b<<v)
}

func (c *CPU) opShr(inst *Instruction) error {
	b, v, err := c.sources(inst)
	if err != nil {
		return err
	}
	return c.PutOperand(inst.Operands[0], b>>v)
}

// update applies f to operand 0 in place.
func (c *CPU) update(inst *Instruction, f func(uint64) uint64) error {
	a, err := c.GetOperand(inst.Operands[0])
	if err != nil {
		return err
	}
	return c.PutOperand(inst.Operands[0], f(a))
}

func (c *CPU) opInc(inst *Instruction) error {
	return c.update(inst, func(a uint64) uint64 { return a + 1 })
}

func (c *CPU) opDec(inst *Instruction) error {
	return c.update(inst, func(a uint64) uint64 { return a - 1 })
}

func (c *CPU) opNot(inst *Instruction) error {
	return c.update(inst, func(a uint64) uint64 { return ^a })
}

// opCmp stores -1 if c < b, 1 if c > b and 0 if they are equal.
func (c *CPU) opCmp(inst *Instruction) error {
	b, v, err := c.sources(inst)
	if err != nil {
		return err
	}
	var result uint64
	switch {
	case v < b:
		result = ^uint64(0)
	case v > b:
		result = 1
	}
	return c.PutOperand(inst.Operands[0], result)
}
