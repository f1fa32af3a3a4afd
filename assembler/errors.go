package assembler

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the assembler wraps exactly one of these,
// so callers can test with errors.Is.
var (
	// ErrSyntax is an unmatched or unexpected token.
	ErrSyntax = errors.New("syntax error")
	// ErrUnknownMnemonic is an instruction name that is not in the opcode table.
	ErrUnknownMnemonic = errors.New("unknown mnemonic")
	// ErrOperandCount is an instruction with the wrong number of operands.
	ErrOperandCount = errors.New("operand count mismatch")
	// ErrInvalidOperand is a token that cannot be used as an operand.
	ErrInvalidOperand = errors.New("invalid operand")
	// ErrUndefinedLabel is a reference to a label that is never declared.
	ErrUndefinedLabel = errors.New("undefined label")
	// ErrImageOverflow is an instruction placed beyond the end of the image.
	ErrImageOverflow = errors.New("image overflow")
)

// Error carries the kind of an assembly failure and where in the source it happened.
type Error struct {
	Kind error
	Pos  Pos
	Msg  string
}

func (e *Error) Error() string {
	if e.Pos.Line > 0 {
		return fmt.Sprintf("line %s: %v: %s", e.Pos, e.Kind, e.Msg)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Msg)
}

// Unwrap returns the error kind.
func (e *Error) Unwrap() error {
	return e.Kind
}

func errorf(kind error, pos Pos, format string, args ...any) error {
	return &Error{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
