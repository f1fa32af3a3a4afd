package cpu

import (
	"fmt"

	"github.com/golang/glog"
)

type handler func(*CPU, *Instruction) error

var handlers = [OpcodeCount]handler{
	OpNop:    (*CPU).opNop,
	OpHalt:   (*CPU).opHalt,
	OpPush:   (*CPU).opPush,
	OpPop:    (*CPU).opPop,
	OpAdd:    (*CPU).opAdd,
	OpSub:    (*CPU).opSub,
	OpMul:    (*CPU).opMul,
	OpDiv:    (*CPU).opDiv,
	OpShl:    (*CPU).opShl,
	OpShr:    (*CPU).opShr,
	OpMod:    (*CPU).opMod,
	OpInc:    (*CPU).opInc,
	OpDec:    (*CPU).opDec,
	OpNot:    (*CPU).opNot,
	OpCmp:    (*CPU).opCmp,
	OpMov:    (*CPU).opMov,
	OpCall:   (*CPU).opCall,
	OpRet:    (*CPU).opRet,
	OpJmp:    (*CPU).opJmp,
	OpJeq:    (*CPU).opJeq,
	OpJne:    (*CPU).opJne,
	OpJnz:    (*CPU).opJnz,
	OpRdrand: (*CPU).opRdrand,
}

// Step fetches, decodes, and executes a single instruction.
// rIP moves past the instruction and rIC counts it before the handler runs,
// so jumps overwrite the advanced rIP.
func (c *CPU) Step() error {
	if !c.Running {
		return nil
	}

	// Fetch
	ip := c.Registers[RIP]
	if ip > ImageSize-InstructionWords {
		return fmt.Errorf("fetch at %d: %w", ip, ErrBadAddress)
	}
	var words [InstructionWords]uint64
	copy(words[:], c.Memory[ip:])

	// Decode
	inst := Decode(words)
	if err := inst.Validate(); err != nil {
		return fmt.Errorf("%w at %d: %w", ErrIllegalInstruction, ip, err)
	}
	c.Registers[RIP] = ip + InstructionWords
	c.Registers[RIC]++

	if glog.V(3) {
		glog.Infof("%5d: %s %v", ip, inst.Opcode, inst.Operands[:inst.Opcode.Info().Operands])
	}

	// Execute
	if err := handlers[inst.Opcode](c, &inst); err != nil {
		return fmt.Errorf("execution failed at %d (%s): %w", ip, inst.Opcode, err)
	}
	return nil
}

// Run executes from rIP until HALT or a fault. A non-zero limit stops the
// run with ErrStepLimit after that many instructions.
func (c *CPU) Run(limit uint64) error {
	c.Running = true
	for n := uint64(0); c.Running; n++ {
		if limit > 0 && n == limit {
			c.Running = false
			return ErrStepLimit
		}
		if err := c.Step(); err != nil {
			c.Running = false
			return err
		}
	}
	glog.V(1).Infof("halted after %d instructions", c.Registers[RIC])
	return nil
}
