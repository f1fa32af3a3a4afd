package assembler

import (
	"errors"
	"fmt"
	"maps"

	"github.com/golang/glog"

	"github.com/Urethramancer/tinyvm/cpu"
)

// Assembler holds the state for the assembly process.
type Assembler struct {
	opts   Options
	lines  []Line
	labels LabelTable
}

// New creates a new Assembler with DefaultOptions modified by opts.
func New(opts ...Option) *Assembler {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return &Assembler{opts: o}
}

// Assemble runs the full pipeline on src and returns the memory image.
func Assemble(src string, opts ...Option) (*Image, error) {
	return New(opts...).Assemble(src)
}

// Assemble takes TinyVM assembly source and returns the memory image.
// Nothing is returned on error; the first error aborts the run.
func (asm *Assembler) Assemble(src string) (*Image, error) {
	asm.lines = nil
	asm.labels = nil

	lines, err := Parse(Tokenize(src), asm.opts)
	if err != nil {
		return nil, fmt.Errorf("parsing: %w", err)
	}
	asm.lines = lines
	glog.V(1).Infof("parsed %d lines", len(lines))

	labels, err := BuildLabelTable(lines, asm.opts)
	if err != nil {
		return nil, fmt.Errorf("resolving labels: %w", err)
	}
	asm.labels = labels
	glog.V(1).Infof("resolved %d labels", len(labels))

	img, err := Emit(lines, labels, asm.opts)
	if err != nil {
		return nil, fmt.Errorf("generating code: %w", err)
	}
	return img, nil
}

// Lines returns the parsed lines of the last run.
func (asm *Assembler) Lines() []Line {
	return asm.lines
}

// Labels returns a copy of the label table of the last run.
func (asm *Assembler) Labels() LabelTable {
	return maps.Clone(asm.labels)
}

// BuildLabelTable walks the lines with an address cursor starting at 0 and
// binds every label to the cursor value where it appears. Instructions advance
// the cursor by 4 whatever their operand count; base sets it.
func BuildLabelTable(lines []Line, opts Options) (LabelTable, error) {
	labels := make(LabelTable)
	var cursor uint64
	for _, l := range lines {
		switch n := l.(type) {
		case *LabelLine:
			if prev, ok := labels[n.Name]; ok {
				if !opts.AllowRedefine {
					return nil, errorf(ErrSyntax, n.Pos, "label %q already defined at address %d", n.Name, prev)
				}
				glog.Warningf("line %s: label %q redefined (was %d, now %d)", n.Pos, n.Name, prev, cursor)
			}
			labels[n.Name] = cursor
			if glog.V(2) {
				glog.Infof("label %s = %d", n.Name, cursor)
			}
		case *SpecifierLine:
			next, err := applySpecifier(n, cursor, opts)
			if err != nil {
				return nil, err
			}
			cursor = next
		case *InstructionLine:
			cursor += cpu.InstructionWords
		default:
			return nil, fmt.Errorf("unexpected line type %T", l)
		}
	}
	return labels, nil
}

// Emit encodes every instruction and places it in a fresh image at the
// address the cursor reaches, computed the same way as BuildLabelTable.
func Emit(lines []Line, labels LabelTable, opts Options) (*Image, error) {
	img := NewImage()
	var cursor uint64
	for _, l := range lines {
		switch n := l.(type) {
		case *LabelLine:
			// Labels do not emit code.
		case *SpecifierLine:
			next, err := applySpecifier(n, cursor, opts)
			if err != nil {
				return nil, err
			}
			cursor = next
		case *InstructionLine:
			words, err := EncodeInstruction(n, labels)
			if err != nil {
				return nil, err
			}
			if err := img.Put(cursor, words); err != nil {
				var e *Error
				if errors.As(err, &e) {
					e.Pos = n.Pos
				}
				return nil, err
			}
			cursor += cpu.InstructionWords
		default:
			return nil, fmt.Errorf("unexpected line type %T", l)
		}
	}
	return img, nil
}
