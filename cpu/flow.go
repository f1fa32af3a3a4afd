package cpu

func (c *CPU) opNop(*Instruction) error { return nil }

func (c *CPU) opHalt(*Instruction) error {
	c.Running = false
	return nil
}

// opCall pushes the address of the next instruction and jumps to operand 0.
func (c *CPU) opCall(inst *Instruction) error {
	target, err := c.GetOperand(inst.Operands[0])
	if err != nil {
		return err
	}
	if err := c.Push(c.Registers[RIP]); err != nil {
		return err
	}
	c.Registers[RIP] = target
	return nil
}

// opRet pops the return address pushed by CALL.
func (c *CPU) opRet(*Instruction) error {
	ip, err := c.Pop()
	if err != nil {
		return err
	}
	c.Registers[RIP] = ip
	return nil
}

func (c *CPU) opJmp(inst *Instruction) error {
	return c.jumpIf(inst, true)
}

func (c *CPU) opJeq(inst *Instruction) error {
	b, v, err := c.sources(inst)
	if err != nil {
		return err
	}
	return c.jumpIf(inst, b == v)
}

func (c *CPU) opJne(inst *Instruction) error {
	b, v, err := c.sources(inst)
	if err != nil {
		return err
	}
	return c.jumpIf(inst, b != v)
}

func (c *CPU) opJnz(inst *Instruction) error {
	b, err := c.GetOperand(inst.Operands[1])
	if err != nil {
		return err
	}
	return c.jumpIf(inst, b != 0)
}

func (c *CPU) jumpIf(inst *Instruction, cond bool) error {
	if !cond {
		return nil
	}
	target, err := c.GetOperand(inst.Operands[0])
	if err != nil {
		return err
	}
	c.Registers[RIP] = target
	return nil
}
