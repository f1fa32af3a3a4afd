package cpu

import "strconv"

// Opcode selects the operation an instruction performs.
type Opcode uint8

// Opcodes. Operand legend: a, b, c are the values of operands 0, 1 and 2.
const (
	OpNop    Opcode = iota // NOP          do nothing
	OpHalt                 // HALT         stop execution
	OpPush                 // PUSH a       push a onto the stack
	OpPop                  // POP a        pop the top of the stack into a
	OpAdd                  // ADD a b c    a = b + c
	OpSub                  // SUB a b c    a = b - c
	OpMul                  // MUL a b c    a = b * c
	OpDiv                  // DIV a b c    a = b / c, remainder in rRMD
	OpShl                  // SHL a b c    a = b << c
	OpShr                  // SHR a b c    a = b >> c
	OpMod                  // MOD a b c    a = b mod c
	OpInc                  // INC a        a = a + 1
	OpDec                  // DEC a        a = a - 1
	OpNot                  // NOT a        bitwise complement of a
	OpCmp                  // CMP a b c    a = -1, 0 or 1 comparing c to b
	OpMov                  // MOV a b      a = b
	OpCall                 // CALL a       jump to a, saving IP
	OpRet                  // RET          return from CALL
	OpJmp                  // JMP a        jump to a
	OpJeq                  // JEQ a b c    jump to a if b == c
	OpJne                  // JNE a b c    jump to a if b != c
	OpJnz                  // JNZ a b      jump to a if b != 0
	OpRdrand               // RDRAND a b c a = random value in [b, c)

	// OpcodeCount is the number of defined opcodes.
	OpcodeCount
)

// Flags modify the behaviour of an opcode.
type Flags uint8

// FlagNormal means no special behaviour.
const FlagNormal Flags = 0

// Info describes one instruction of the table.
type Info struct {
	Mnemonic string
	Opcode   Opcode
	Operands int
}

var instructionTable = [OpcodeCount]Info{
	{"nop", OpNop, 0},
	{"halt", OpHalt, 0},
	{"push", OpPush, 1},
	{"pop", OpPop, 1},
	{"add", OpAdd, 3},
	{"sub", OpSub, 3},
	{"mul", OpMul, 3},
	{"div", OpDiv, 3},
	{"shl", OpShl, 3},
	{"shr", OpShr, 3},
	{"mod", OpMod, 3},
	{"inc", OpInc, 1},
	{"dec", OpDec, 1},
	{"not", OpNot, 1},
	{"cmp", OpCmp, 3},
	{"mov", OpMov, 2},
	{"call", OpCall, 1},
	{"ret", OpRet, 0},
	{"jmp", OpJmp, 1},
	{"jeq", OpJeq, 3},
	{"jne", OpJne, 3},
	{"jnz", OpJnz, 2},
	{"rdrand", OpRdrand, 3},
}

var mnemonics = func() map[string]Info {
	m := make(map[string]Info, len(instructionTable))
	for _, info := range instructionTable {
		m[info.Mnemonic] = info
	}
	return m
}()

// Lookup finds an instruction by mnemonic. Mnemonics are lowercase.
func Lookup(mnemonic string) (Info, bool) {
	info, ok := mnemonics[mnemonic]
	return info, ok
}

// Info returns the table entry for op. The zero Info is returned for undefined opcodes.
func (op Opcode) Info() Info {
	if op >= OpcodeCount {
		return Info{}
	}
	return instructionTable[op]
}

// String returns the mnemonic, or "op(N)" for undefined opcodes.
func (op Opcode) String() string {
	if op >= OpcodeCount {
		return "op(" + strconv.Itoa(int(op)) + ")"
	}
	return instructionTable[op].Mnemonic
}

// IsJump reports whether operand 0 of op is a code address.
func (op Opcode) IsJump() bool {
	switch op {
	case OpCall, OpJmp, OpJeq, OpJne, OpJnz:
		return true
	}
	return false
}

