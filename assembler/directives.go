package assembler

import (
	"github.com/golang/glog"

	"github.com/Urethramancer/tinyvm/cpu"
)

// Specifier names.
const (
	// SpecBase sets the address of the next instruction.
	SpecBase = "base"
)

// applySpecifier returns the address cursor after s.
// Only base changes the cursor; other specifiers are accepted and ignored.
func applySpecifier(s *SpecifierLine, cursor uint64, opts Options) (uint64, error) {
	switch s.Name {
	case SpecBase:
		return baseAddress(s, opts)
	default:
		if glog.V(1) {
			glog.Infof("line %s: ignoring specifier .%s", s.Pos, s.Name)
		}
		return cursor, nil
	}
}

// baseAddress validates the argument of a base specifier.
func baseAddress(s *SpecifierLine, opts Options) (uint64, error) {
	if len(s.Args) != 1 || s.Args[0].Kind != TokenNumber {
		return 0, errorf(ErrSyntax, s.Pos, ".%s requires a single address argument", s.Name)
	}
	addr, err := parseWord(s.Args[0])
	if err != nil {
		return 0, err
	}
	if opts.AlignedBase && addr%cpu.InstructionWords != 0 {
		return 0, errorf(ErrSyntax, s.Args[0].Pos, ".%s %d is not a multiple of %d", s.Name, addr, cpu.InstructionWords)
	}
	return addr, nil
}
