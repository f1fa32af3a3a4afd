package assembler

import (
	"fmt"
	"iter"
	"regexp"
	"unicode/utf8"
)

// TokenKind identifies the lexical class of a token.
type TokenKind int

const (
	TokenNewline TokenKind = iota
	TokenWhitespace
	TokenComment
	TokenLabel
	TokenLabelRef
	TokenSpecifier
	TokenLiteral
	TokenBracketOpen
	TokenBracketClose
	TokenNumber
	TokenRegister
	TokenIdentifier
	// TokenUnknown is input no rule matched. The parser rejects it.
	TokenUnknown
)

var tokenKindNames = [...]string{
	TokenNewline:      "newline",
	TokenWhitespace:   "whitespace",
	TokenComment:      "comment",
	TokenLabel:        "label",
	TokenLabelRef:     "label_ref",
	TokenSpecifier:    "specifier",
	TokenLiteral:      "literal",
	TokenBracketOpen:  "bracket_open",
	TokenBracketClose: "bracket_close",
	TokenNumber:       "number",
	TokenRegister:     "register",
	TokenIdentifier:   "identifier",
	TokenUnknown:      "unknown",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
	return tokenKindNames[k]
}

// Pos is a 1-based line and column in the source. Columns count bytes.
type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Token is one lexical unit. Text is the processed value: sigils are stripped
// from labels, label references, specifiers and literals, and newlines carry no text.
// Raw is the matched source text and [Start, End) its byte span.
type Token struct {
	Kind  TokenKind
	Text  string
	Raw   string
	Start int
	End   int
	Pos   Pos
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Raw, t.Pos)
}

type rule struct {
	kind TokenKind
	re   *regexp.Regexp
}

// Rules are tried in order at the current position and the first match wins.
var rules = []rule{
	{TokenNewline, regexp.MustCompile(`^\r?\n`)},
	{TokenWhitespace, regexp.MustCompile(`^[ \t]+`)},
	{TokenComment, regexp.MustCompile(`^;[^\n]*`)},
	{TokenLabel, regexp.MustCompile(`^\w+:`)},
	{TokenLabelRef, regexp.MustCompile(`^:\w+`)},
	{TokenSpecifier, regexp.MustCompile(`^\.\w+`)},
	{TokenLiteral, regexp.MustCompile(`^#\d+`)},
	{TokenNumber, regexp.MustCompile(`^\d+`)},
	{TokenRegister, regexp.MustCompile(`^r(1[0-5]|[0-9]|IP|IC|SP|SBP|RMD)\b`)},
	{TokenIdentifier, regexp.MustCompile(`^\w+`)},
	{TokenBracketOpen, regexp.MustCompile(`^\[`)},
	{TokenBracketClose, regexp.MustCompile(`^\]`)},
}

// Lexer produces tokens from source text on demand.
// It never fails: input no rule matches is returned as TokenUnknown.
type Lexer struct {
	src     string
	pos     int // scan position
	lastEnd int // end of the last emitted token
	pending *Token

	// position tracking
	line      int
	lineStart int
	counted   int
}

// NewLexer returns a lexer positioned at the start of src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1}
}

// Next returns the next token, or false once the input is exhausted.
func (l *Lexer) Next() (Token, bool) {
	if l.pending != nil {
		t := *l.pending
		l.pending = nil
		return t, true
	}

	for l.pos < len(l.src) {
		kind, n, ok := match(l.src[l.pos:])
		if !ok {
			_, size := utf8.DecodeRuneInString(l.src[l.pos:])
			l.pos += size
			continue
		}

		start := l.pos
		var unknown *Token
		if start > l.lastEnd {
			t := l.token(TokenUnknown, l.lastEnd, start)
			unknown = &t
		}
		t := l.token(kind, start, start+n)
		l.pos = start + n
		l.lastEnd = l.pos
		if unknown != nil {
			l.pending = &t
			return *unknown, true
		}
		return t, true
	}

	if l.lastEnd < len(l.src) {
		t := l.token(TokenUnknown, l.lastEnd, len(l.src))
		l.lastEnd = len(l.src)
		return t, true
	}
	return Token{}, false
}

// match tries every rule against the start of s.
func match(s string) (TokenKind, int, bool) {
	for _, r := range rules {
		if loc := r.re.FindStringIndex(s); loc != nil && loc[1] > 0 {
			return r.kind, loc[1], true
		}
	}
	return 0, 0, false
}

func (l *Lexer) token(kind TokenKind, start, end int) Token {
	raw := l.src[start:end]
	return Token{
		Kind:  kind,
		Text:  tokenText(kind, raw),
		Raw:   raw,
		Start: start,
		End:   end,
		Pos:   l.posAt(start),
	}
}

// posAt converts a byte offset to a line and column. Offsets must not decrease between calls.
func (l *Lexer) posAt(offset int) Pos {
	for ; l.counted < offset; l.counted++ {
		if l.src[l.counted] == '\n' {
			l.line++
			l.lineStart = l.counted + 1
		}
	}
	return Pos{Line: l.line, Col: offset - l.lineStart + 1}
}

func tokenText(kind TokenKind, raw string) string {
	switch kind {
	case TokenNewline:
		return ""
	case TokenLabel:
		return raw[:len(raw)-1]
	case TokenLabelRef, TokenSpecifier, TokenLiteral:
		return raw[1:]
	}
	return raw
}

// Tokenize returns the tokens of src as a single-use sequence.
func Tokenize(src string) iter.Seq[Token] {
	l := NewLexer(src)
	return func(yield func(Token) bool) {
		for {
			t, ok := l.Next()
			if !ok || !yield(t) {
				return
			}
		}
	}
}
