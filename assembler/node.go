package assembler

// Line is one parsed source line: a *LabelLine, *SpecifierLine or *InstructionLine.
type Line interface {
	Position() Pos
	isLine()
}

// LabelLine declares that Name refers to the address of the next instruction.
type LabelLine struct {
	Name string
	Pos  Pos
}

// SpecifierLine is a directive that changes assembly state, such as ".base 100".
type SpecifierLine struct {
	Name string
	Args []Token
	Pos  Pos
}

// InstructionLine is an instruction with its operands not yet resolved.
type InstructionLine struct {
	Mnemonic string
	Operands []OperandGroup
	Pos      Pos
}

func (l *LabelLine) Position() Pos { return l.Pos }
func (l *SpecifierLine) Position() Pos { return l.Pos }
func (l *InstructionLine) Position() Pos { return l.Pos }

func (*LabelLine) isLine() {}
func (*SpecifierLine) isLine() {}
func (*InstructionLine) isLine() {}

// OperandGroup is the token run of one operand: a DirectOperand or an IndirectOperand.
type OperandGroup interface {
	// Operand returns the token carrying the operand value.
	Operand() Token
	isOperandGroup()
}

// DirectOperand is a single token used as-is.
type DirectOperand struct {
	Tok Token
}

// IndirectOperand is a bracketed token, "[" Tok "]".
type IndirectOperand struct {
	Tok Token
}

func (o DirectOperand) Operand() Token { return o.Tok }
func (o IndirectOperand) Operand() Token { return o.Tok }

func (DirectOperand) isOperandGroup() {}
func (IndirectOperand) isOperandGroup() {}
