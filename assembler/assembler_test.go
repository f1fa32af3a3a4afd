package assembler_test

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/Urethramancer/tinyvm/assembler"
	"github.com/Urethramancer/tinyvm/cpu"
)

// Assembles source and checks the words starting at addr.
func assembleAndMatchWords(t *testing.T, name, src string, addr uint64, want []uint64, opts ...assembler.Option) *assembler.Image {
	t.Helper()

	img, err := assembler.Assemble(src, opts...)
	if err != nil {
		t.Fatalf("[%s] failed to assemble:\n%s\nerror: %v", name, src, err)
	}
	got := img.Words()[addr : addr+uint64(len(want))]
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%s] mismatch at word %d\nexpected: %#x\ngot:      %#x", name, addr+uint64(i), want, got)
			break
		}
	}
	return img
}

func assembleAndExpectError(t *testing.T, name, src string, kind error, opts ...assembler.Option) {
	t.Helper()

	img, err := assembler.Assemble(src, opts...)
	if err == nil {
		t.Fatalf("[%s] expected %v, assembled without error", name, kind)
	}
	if !errors.Is(err, kind) {
		t.Fatalf("[%s] expected %v, got %v", name, kind, err)
	}
	if img != nil {
		t.Errorf("[%s] image returned alongside error", name)
	}
	var e *assembler.Error
	if !errors.As(err, &e) {
		t.Errorf("[%s] error %v is not an *assembler.Error", name, err)
	}
}

func TestWorkedExamples(t *testing.T) {
	tests := []struct {
		name string
		src  string
		addr uint64
		want []uint64
	}{
		{"AddHalt", "add r0 r1 r2\nhalt\n", 0, []uint64{
			4<<32 | 8<<16 | 8<<8 | 8, 0, 1, 2,
			1 << 32, 0, 0, 0,
		}},
		{"PushLiteral", "push #5\n", 0, []uint64{2<<32 | 2<<16, 5, 0, 0}},
		{"LabelBeforeJump", "foo: halt\njmp :foo\n", 0, []uint64{
			1 << 32, 0, 0, 0,
			18<<32 | 2<<16, 0, 0, 0,
		}},
		{"Base", ".base 100\nhalt\n", 100, []uint64{1 << 32, 0, 0, 0}},
	}
	for _, tc := range tests {
		assembleAndMatchWords(t, tc.name, tc.src, tc.addr, tc.want)
	}
}

func TestBaseLeavesLowMemoryEmpty(t *testing.T) {
	img := assembleAndMatchWords(t, "Base", ".base 100\nhalt\n", 100, []uint64{1 << 32})
	for addr, w := range img.Words()[:100] {
		if w != 0 {
			t.Fatalf("word %d = %#x, want 0", addr, w)
		}
	}
}

// Addressing modes
func TestAddressingModes_Encodings(t *testing.T) {
	tests := []struct {
		name, src string
		want      []uint64
	}{
		{"Register", "push r7", []uint64{2<<32 | 8<<16, 7, 0, 0}},
		{"Literal", "push #42", []uint64{2<<32 | 2<<16, 42, 0, 0}},
		{"Memory", "pop 100", []uint64{3<<32 | 4<<16, 100, 0, 0}},
		{"IndirectRegister", "pop [r3]", []uint64{3<<32 | 9<<16, 3, 0, 0}},
		{"IndirectMemory", "inc [200]", []uint64{11<<32 | 5<<16, 200, 0, 0}},
		{"IndirectLiteral", "dec [#8]", []uint64{12<<32 | 3<<16, 8, 0, 0}},
		{"IndirectLabel", "mov [r1] [:x]\nx: halt", []uint64{15<<32 | 9<<16 | 3<<8, 1, 4, 0}},
		{"MixedThree", "cmp r0 #1 2", []uint64{14<<32 | 8<<16 | 2<<8 | 4, 0, 1, 2}},
		{"BigLiteral", "push #18446744073709551615", []uint64{2<<32 | 2<<16, 1<<64 - 1, 0, 0}},
	}
	for _, tc := range tests {
		assembleAndMatchWords(t, tc.name, tc.src, 0, tc.want)
	}
}

func TestSpecialRegisters(t *testing.T) {
	tests := []struct {
		name string
		idx  uint64
	}{
		{"r0", 0}, {"r9", 9}, {"r10", 10}, {"r15", 15},
		{"rIP", 16}, {"rIC", 17}, {"rSP", 18}, {"rSBP", 19}, {"rRMD", 20},
	}
	for _, tc := range tests {
		assembleAndMatchWords(t, tc.name, "push "+tc.name, 0, []uint64{2<<32 | 8<<16, tc.idx})
	}
}

func TestOpcodeTable(t *testing.T) {
	tests := []struct {
		src    string
		opcode uint64
	}{
		{"nop", 0}, {"halt", 1}, {"push r0", 2}, {"pop r0", 3},
		{"add r0 r0 r0", 4}, {"sub r0 r0 r0", 5}, {"mul r0 r0 r0", 6}, {"div r0 r0 r0", 7},
		{"shl r0 r0 r0", 8}, {"shr r0 r0 r0", 9}, {"mod r0 r0 r0", 10},
		{"inc r0", 11}, {"dec r0", 12}, {"not r0", 13}, {"cmp r0 r0 r0", 14},
		{"mov r0 r0", 15}, {"call #0", 16}, {"ret", 17}, {"jmp #0", 18},
		{"jeq #0 r0 r0", 19}, {"jne #0 r0 r0", 20}, {"jnz #0 r0", 21}, {"rdrand r0 #0 #10", 22},
	}
	for _, tc := range tests {
		img, err := assembler.Assemble(tc.src)
		if err != nil {
			t.Fatalf("%q: %v", tc.src, err)
		}
		if got := img.Word(0) >> 32; got != tc.opcode {
			t.Errorf("%q: opcode %d, want %d", tc.src, got, tc.opcode)
		}
	}
}

func TestMnemonicsAreCaseInsensitive(t *testing.T) {
	assembleAndMatchWords(t, "UpperHalt", "HALT\nPush #1", 0, []uint64{1 << 32, 0, 0, 0, 2<<32 | 2<<16, 1})
}

func TestCommentsAndLineEndings(t *testing.T) {
	tests := []struct {
		name, src string
	}{
		{"CRLF", "; header\r\n  halt ; stop here\r\n\r\n"},
		{"NoTrailingNewline", "halt"},
		{"Tabs", "\t\thalt\t"},
		{"BlankLines", "\n\n\nhalt\n\n"},
	}
	for _, tc := range tests {
		assembleAndMatchWords(t, tc.name, tc.src, 0, []uint64{1 << 32, 0, 0, 0})
	}
}

func TestImageLength(t *testing.T) {
	for _, src := range []string{"", "halt", ".base 65532\nhalt", "add r0 r1 r2\nhalt\n"} {
		img, err := assembler.Assemble(src)
		if err != nil {
			t.Fatalf("%q: %v", src, err)
		}
		if n := len(img.Bytes()); n != cpu.ImageSize*8 {
			t.Errorf("%q: image is %d bytes, want %d", src, n, cpu.ImageSize*8)
		}
		var buf bytes.Buffer
		n, err := img.WriteTo(&buf)
		if err != nil {
			t.Fatal(err)
		}
		if n != cpu.ImageSize*8 || buf.Len() != cpu.ImageSize*8 {
			t.Errorf("%q: WriteTo wrote %d bytes", src, n)
		}
	}
}

func TestImageIsLittleEndian(t *testing.T) {
	img, err := assembler.Assemble("push #258")
	if err != nil {
		t.Fatal(err)
	}
	want, _ := hex.DecodeString(strings.Join(strings.Fields(`
00 00 02 00 02 00 00 00
02 01 00 00 00 00 00 00
`), ""))
	if got := img.Bytes()[:16]; !bytes.Equal(got, want) {
		t.Errorf("expected: % X\ngot:      % X", want, got)
	}
}

// Label resolution and the address cursor
func TestLabelAddresses(t *testing.T) {
	src := `
start:
    push #1        ; one operand
    add r0 r1 r2   ; three operands
    halt
after_three:
.base 40
there:
    ret
end:
`
	asm := assembler.New()
	if _, err := asm.Assemble(src); err != nil {
		t.Fatal(err)
	}
	want := assembler.LabelTable{"start": 0, "after_three": 12, "there": 40, "end": 44}
	got := asm.Labels()
	if len(got) != len(want) {
		t.Fatalf("labels %v, want %v", got, want)
	}
	for name, addr := range want {
		if got[name] != addr {
			t.Errorf("label %s = %d, want %d", name, got[name], addr)
		}
	}
}

func TestForwardReference(t *testing.T) {
	src := "jmp :later\nnop\nlater: halt"
	assembleAndMatchWords(t, "Forward", src, 0, []uint64{18<<32 | 2<<16, 8})
}

func TestInstructionSpacing(t *testing.T) {
	src := "nop\npush #1\nmov r0 r1\n.base 20\nhalt\nret"
	img, err := assembler.Assemble(src)
	if err != nil {
		t.Fatal(err)
	}
	expect := map[uint64]uint64{
		4:  2<<32 | 2<<16,
		8:  15<<32 | 8<<16 | 8<<8,
		20: 1 << 32,
		24: 17 << 32,
	}
	for addr, w := range expect {
		if got := img.Word(addr); got != w {
			t.Errorf("word %d = %#x, want %#x", addr, got, w)
		}
	}
	// Nothing is placed between the mov and the base address.
	for addr := uint64(12); addr < 20; addr++ {
		if img.Word(addr) != 0 {
			t.Errorf("word %d = %#x, want 0", addr, img.Word(addr))
		}
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name, src string
		kind      error
	}{
		{"PushNoOperand", "push\n", assembler.ErrOperandCount},
		{"PushTwoOperands", "push #1 #2\n", assembler.ErrOperandCount},
		{"HaltWithOperand", "halt r0", assembler.ErrOperandCount},
		{"UnknownMnemonic", "frob r0", assembler.ErrUnknownMnemonic},
		{"UndefinedLabel", "jmp :undefined\n", assembler.ErrUndefinedLabel},
		{"IdentifierOperand", "push abc", assembler.ErrInvalidOperand},
		{"RegisterOutOfRange", "push r16", assembler.ErrInvalidOperand},
		{"RegisterWithSuffix", "push r1x", assembler.ErrInvalidOperand},
		{"SpecifierOperand", "push .x", assembler.ErrInvalidOperand},
		{"LiteralTooBig", "push #18446744073709551616", assembler.ErrInvalidOperand},
		{"UnknownCharacter", "push $5", assembler.ErrSyntax},
		{"UnknownAtStart", "@ halt", assembler.ErrSyntax},
		{"LiteralAtStart", "#5 push", assembler.ErrSyntax},
		{"RegisterAtStart", "r0 halt", assembler.ErrSyntax},
		{"Unterminated", "push [r0", assembler.ErrSyntax},
		{"StrayClose", "push r0]", assembler.ErrSyntax},
		{"EmptyBrackets", "push []", assembler.ErrSyntax},
		{"NestedBrackets", "push [[r0]]", assembler.ErrSyntax},
		{"TwoInBrackets", "push [r0 r1]", assembler.ErrSyntax},
		{"BaseNoArgument", ".base\nhalt", assembler.ErrSyntax},
		{"BaseRegister", ".base r0\nhalt", assembler.ErrSyntax},
		{"BaseTwoArguments", ".base 4 8\nhalt", assembler.ErrSyntax},
		{"Overflow", ".base 65536\nhalt", assembler.ErrImageOverflow},
		{"OverflowStraddle", ".base 65533\nhalt", assembler.ErrImageOverflow},
		{"OverflowAfterLast", ".base 65532\nhalt\nhalt", assembler.ErrImageOverflow},
	}
	for _, tc := range tests {
		assembleAndExpectError(t, tc.name, tc.src, tc.kind)
	}
}

func TestErrorLocation(t *testing.T) {
	_, err := assembler.Assemble("halt\n\n  jmp :missing\n")
	var e *assembler.Error
	if !errors.As(err, &e) {
		t.Fatalf("got %v, want *assembler.Error", err)
	}
	if e.Pos.Line != 3 || e.Pos.Col != 7 {
		t.Errorf("error at %s, want 3:7", e.Pos)
	}
	if !strings.Contains(err.Error(), "missing") {
		t.Errorf("error %q does not name the label", err)
	}
}

func TestAssemblerResetsBetweenRuns(t *testing.T) {
	asm := assembler.New()
	if _, err := asm.Assemble("a: halt"); err != nil {
		t.Fatal(err)
	}
	if _, err := asm.Assemble("jmp :a"); !errors.Is(err, assembler.ErrUndefinedLabel) {
		t.Fatalf("got %v, want undefined label", err)
	}
	if len(asm.Labels()) != 0 {
		t.Errorf("labels from the first run survived: %v", asm.Labels())
	}
}

// Dialect options
func TestInlineLabels(t *testing.T) {
	src := "foo: halt\njmp :foo\n"
	assembleAndMatchWords(t, "Default", src, 4, []uint64{18<<32 | 2<<16, 0})
	assembleAndExpectError(t, "Strict", src, assembler.ErrSyntax, assembler.WithStrict())
	assembleAndExpectError(t, "Disabled", src, assembler.ErrSyntax, assembler.WithInlineLabels(false))

	// Alone on its line the label is accepted in both dialects.
	alone := "foo:\nhalt\njmp :foo\n"
	assembleAndMatchWords(t, "StrictAlone", alone, 4, []uint64{18<<32 | 2<<16, 0}, assembler.WithStrict())
}

func TestLabelRedefinition(t *testing.T) {
	src := "a:\nhalt\na:\nhalt\njmp :a"
	// The later declaration wins.
	assembleAndMatchWords(t, "Default", src, 8, []uint64{18<<32 | 2<<16, 4})
	assembleAndExpectError(t, "Strict", src, assembler.ErrSyntax, assembler.WithStrict())
	assembleAndExpectError(t, "Disabled", src, assembler.ErrSyntax, assembler.WithRedefine(false))
}

func TestBaseAlignment(t *testing.T) {
	src := ".base 5\nhalt"
	assembleAndMatchWords(t, "Default", src, 5, []uint64{1 << 32})
	assembleAndExpectError(t, "Strict", src, assembler.ErrSyntax, assembler.WithStrict())
	assembleAndExpectError(t, "Aligned", src, assembler.ErrSyntax, assembler.WithAlignedBase(true))
	assembleAndMatchWords(t, "StrictAligned", ".base 8\nhalt", 8, []uint64{1 << 32}, assembler.WithStrict())
}

func TestUnknownSpecifierIsInert(t *testing.T) {
	assembleAndMatchWords(t, "Inert", ".align 16\nhalt", 0, []uint64{1 << 32})
}
