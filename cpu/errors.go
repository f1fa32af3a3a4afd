package cpu

import "errors"

// Runtime faults. Step wraps them with the address of the failing instruction.
var (
	ErrIllegalInstruction = errors.New("illegal instruction")
	ErrBadAddress         = errors.New("address out of range")
	ErrLiteralTarget      = errors.New("cannot store to a literal")
	ErrDivideByZero       = errors.New("division by zero")
	ErrStackOverflow      = errors.New("stack overflow")
	ErrStackUnderflow     = errors.New("stack underflow")
	ErrEmptyRange         = errors.New("empty random range")
	ErrStepLimit          = errors.New("step limit reached")
)
