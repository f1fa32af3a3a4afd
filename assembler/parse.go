package assembler

import (
	"iter"
	"strings"
)

// Parse groups tokens into lines and classifies each one.
// Whitespace and comments are dropped, blank lines are skipped and the final
// line does not need a trailing newline. Parsing stops at the first error.
func Parse(tokens iter.Seq[Token], opts Options) ([]Line, error) {
	var lines []Line
	var current []Token
	var err error

	flush := func() bool {
		if len(current) == 0 {
			return true
		}
		var parsed []Line
		parsed, err = parseLine(current, opts)
		lines = append(lines, parsed...)
		current = current[:0]
		return err == nil
	}

	for tok := range tokens {
		switch tok.Kind {
		case TokenWhitespace, TokenComment:
			continue
		case TokenNewline:
			if !flush() {
				return nil, err
			}
			continue
		}
		current = append(current, tok)
	}
	if !flush() {
		return nil, err
	}
	return lines, nil
}

// parseLine classifies a non-empty token line. A label may be followed by
// the rest of the line when inline labels are enabled, which yields more than one Line.
func parseLine(tokens []Token, opts Options) ([]Line, error) {
	for _, t := range tokens {
		if t.Kind == TokenUnknown {
			return nil, errorf(ErrSyntax, t.Pos, "unrecognised input %q at bytes %d-%d", t.Raw, t.Start, t.End)
		}
	}

	first, rest := tokens[0], tokens[1:]
	switch first.Kind {
	case TokenLabel:
		label := &LabelLine{Name: first.Text, Pos: first.Pos}
		if len(rest) == 0 {
			return []Line{label}, nil
		}
		if !opts.InlineLabels {
			return nil, errorf(ErrSyntax, rest[0].Pos, "label %q must be alone on its line", first.Text)
		}
		more, err := parseLine(rest, opts)
		if err != nil {
			return nil, err
		}
		return append([]Line{label}, more...), nil

	case TokenSpecifier:
		args := make([]Token, len(rest))
		copy(args, rest)
		return []Line{&SpecifierLine{Name: first.Text, Args: args, Pos: first.Pos}}, nil

	case TokenIdentifier:
		operands, err := splitOperands(rest)
		if err != nil {
			return nil, err
		}
		return []Line{&InstructionLine{
			Mnemonic: strings.ToLower(first.Text),
			Operands: operands,
			Pos:      first.Pos,
		}}, nil
	}

	return nil, errorf(ErrSyntax, first.Pos, "unexpected %s %q at start of line", first.Kind, first.Raw)
}

// splitOperands segments the tokens after a mnemonic into operands: a single
// token is direct, "[" token "]" is indirect.
func splitOperands(tokens []Token) ([]OperandGroup, error) {
	var groups []OperandGroup
	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		switch t.Kind {
		case TokenBracketClose:
			return nil, errorf(ErrSyntax, t.Pos, "unexpected ']'")
		case TokenBracketOpen:
			if i+1 >= len(tokens) {
				return nil, errorf(ErrSyntax, t.Pos, "unterminated '['")
			}
			inner := tokens[i+1]
			if inner.Kind == TokenBracketClose {
				return nil, errorf(ErrSyntax, inner.Pos, "empty brackets")
			}
			if inner.Kind == TokenBracketOpen {
				return nil, errorf(ErrSyntax, inner.Pos, "nested '['")
			}
			if i+2 >= len(tokens) || tokens[i+2].Kind != TokenBracketClose {
				return nil, errorf(ErrSyntax, inner.Pos, "expected ']' after %q", inner.Raw)
			}
			groups = append(groups, IndirectOperand{Tok: inner})
			i += 2
		default:
			groups = append(groups, DirectOperand{Tok: t})
		}
	}
	return groups, nil
}
