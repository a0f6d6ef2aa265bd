// Package lexer implements the HQL reader's tokenizer: a rune-based scanner
// that turns UTF-8 source text into a flat token sequence. Column positions
// are rune counts, not byte offsets or display widths, matching the
// teacher's lexer convention so diagnostics stay stable across Unicode
// input.
package lexer

import (
	"strconv"
	"strings"

	"github.com/hqlc/hql/internal/token"
)

// Lexer scans HQL source text into tokens one at a time.
type Lexer struct {
	input        []rune
	position     int // index of ch
	readPosition int // index after ch
	ch           rune
	line         int
	column       int
	tracing      bool
}

// Option configures a Lexer at construction time.
type Option func(*Lexer)

// WithTracing enables debug tracing of scanner state transitions.
func WithTracing(trace bool) Option {
	return func(l *Lexer) { l.tracing = trace }
}

// New creates a Lexer over src, ready to produce its first token.
func New(src string, opts ...Option) *Lexer {
	l := &Lexer{input: []rune(src), line: 1, column: 0}
	for _, opt := range opts {
		opt(l)
	}
	l.readChar()
	return l
}

// State is a saved scanner position, usable to backtrack via Restore.
type State struct {
	position     int
	readPosition int
	line         int
	column       int
	ch           rune
}

// Save captures the lexer's current position.
func (l *Lexer) Save() State {
	return State{l.position, l.readPosition, l.line, l.column, l.ch}
}

// Restore rewinds the lexer to a previously saved State.
func (l *Lexer) Restore(s State) {
	l.position, l.readPosition, l.line, l.column, l.ch = s.position, s.readPosition, s.line, s.column, s.ch
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	if l.ch == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}
	l.position = l.readPosition
	l.readPosition++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) pos() token.Position {
	return token.Position{Line: l.line, Column: l.column, Offset: l.position}
}

func isDigit(ch rune) bool { return ch >= '0' && ch <= '9' }

func isSymbolStart(ch rune) bool {
	switch ch {
	case 0, '(', ')', '[', ']', '{', '}', '\'', '`', '~', '"', ';', ',':
		return false
	}
	return ch > ' '
}

func isSymbolCont(ch rune) bool {
	return isSymbolStart(ch)
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
			l.readChar()
		}
		if l.ch == ';' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}
		break
	}
}

// All scans the entire input, returning every token (including a trailing
// EOF token) or the first *Error encountered.
func (l *Lexer) All() ([]token.Token, error) {
	var toks []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, nil
		}
	}
}

// Next scans and returns the next token, or an *Error.
func (l *Lexer) Next() (token.Token, error) {
	l.skipWhitespaceAndComments()
	pos := l.pos()

	switch {
	case l.ch == 0:
		return token.Token{Kind: token.EOF, Pos: pos}, nil
	case l.ch == '(':
		l.readChar()
		return token.Token{Kind: token.LParen, Text: "(", Pos: pos}, nil
	case l.ch == ')':
		l.readChar()
		return token.Token{Kind: token.RParen, Text: ")", Pos: pos}, nil
	case l.ch == '[':
		l.readChar()
		return token.Token{Kind: token.LBracket, Text: "[", Pos: pos}, nil
	case l.ch == ']':
		l.readChar()
		return token.Token{Kind: token.RBracket, Text: "]", Pos: pos}, nil
	case l.ch == '{':
		l.readChar()
		return token.Token{Kind: token.LBrace, Text: "{", Pos: pos}, nil
	case l.ch == '}':
		l.readChar()
		return token.Token{Kind: token.RBrace, Text: "}", Pos: pos}, nil
	case l.ch == '#' && l.peekChar() == '[':
		l.readChar()
		l.readChar()
		return token.Token{Kind: token.HashBracket, Text: "#[", Pos: pos}, nil
	case l.ch == '\'':
		l.readChar()
		return token.Token{Kind: token.Quote, Text: "'", Pos: pos}, nil
	case l.ch == '`':
		l.readChar()
		return token.Token{Kind: token.Backtick, Text: "`", Pos: pos}, nil
	case l.ch == '~' && l.peekChar() == '@':
		l.readChar()
		l.readChar()
		return token.Token{Kind: token.TildeAt, Text: "~@", Pos: pos}, nil
	case l.ch == '~':
		l.readChar()
		return token.Token{Kind: token.Tilde, Text: "~", Pos: pos}, nil
	case l.ch == ':' && !isSymbolCont(l.peekChar()):
		// A ':' not immediately followed by more symbol characters is the
		// map key/value separator. A ':' that IS so followed (e.g. :else)
		// is the start of an ordinary symbol and falls through to
		// readSymbol below, so `:else` lexes as one token.
		l.readChar()
		return token.Token{Kind: token.Colon, Text: ":", Pos: pos}, nil
	case l.ch == ',':
		// A comma is whitespace everywhere in HQL source: insignificant
		// inside (...) and [...], and insignificant on its own outside any
		// container. The reader is responsible for discarding it; the lexer
		// still reports it as a distinct token so `{k: v, k2: v2}` map
		// literals can use it as a readable (but optional) separator.
		l.readChar()
		return token.Token{Kind: token.Comma, Text: ",", Pos: pos}, nil
	case l.ch == '"':
		return l.readString(pos)
	case l.ch == '-' && isDigit(l.peekChar()):
		return l.readNumber(pos)
	case isDigit(l.ch):
		return l.readNumber(pos)
	default:
		return l.readSymbol(pos)
	}
}

func (l *Lexer) readString(pos token.Position) (token.Token, error) {
	l.readChar() // consume opening quote
	var sb strings.Builder
	var spans []token.InterpolationSpan
	for {
		if l.ch == 0 {
			return token.Token{}, &Error{Kind: UnclosedString, Pos: pos}
		}
		if l.ch == '"' {
			l.readChar()
			break
		}
		if l.ch == '\\' {
			escPos := l.pos()
			l.readChar()
			switch l.ch {
			case 'n':
				sb.WriteRune('\n')
				l.readChar()
			case 't':
				sb.WriteRune('\t')
				l.readChar()
			case 'r':
				sb.WriteRune('\r')
				l.readChar()
			case '"':
				sb.WriteRune('"')
				l.readChar()
			case '\\':
				sb.WriteRune('\\')
				l.readChar()
			case '(':
				// HQL interpolation marker: \(ident) parses as the literal
				// characters "(ident)"; the interpolation is re-recognized
				// later when the string is emitted as a template.
				start := sb.Len()
				sb.WriteRune('(')
				l.readChar()
				for l.ch != ')' && l.ch != 0 && l.ch != '"' {
					sb.WriteRune(l.ch)
					l.readChar()
				}
				if l.ch != ')' {
					return token.Token{}, &Error{Kind: UnclosedString, Pos: pos}
				}
				sb.WriteRune(')')
				l.readChar()
				spans = append(spans, token.InterpolationSpan{Start: start, End: sb.Len()})
			default:
				return token.Token{}, &Error{Kind: InvalidEscape, Pos: escPos, Msg: "\\" + string(l.ch)}
			}
			continue
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	return token.Token{Kind: token.String, Text: sb.String(), Pos: pos, StringValue: sb.String(), InterpolationSpans: spans}, nil
}

func (l *Lexer) readNumber(pos token.Position) (token.Token, error) {
	var sb strings.Builder
	if l.ch == '-' {
		sb.WriteRune(l.ch)
		l.readChar()
	}
	for isDigit(l.ch) {
		sb.WriteRune(l.ch)
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		sb.WriteRune(l.ch)
		l.readChar()
		for isDigit(l.ch) {
			sb.WriteRune(l.ch)
			l.readChar()
		}
	}
	v, err := strconv.ParseFloat(sb.String(), 64)
	if err != nil {
		// Unreachable given the scan above, but fail safe rather than panic.
		return token.Token{}, &Error{Kind: InvalidEscape, Pos: pos, Msg: "malformed number: " + sb.String()}
	}
	return token.Token{Kind: token.Number, Text: sb.String(), Pos: pos, NumberValue: v}, nil
}

func (l *Lexer) readSymbol(pos token.Position) (token.Token, error) {
	if !isSymbolStart(l.ch) {
		return token.Token{}, &Error{Kind: UnexpectedClose, Pos: pos, Ch: l.ch}
	}
	var sb strings.Builder
	for isSymbolCont(l.ch) {
		sb.WriteRune(l.ch)
		l.readChar()
	}
	text := sb.String()
	switch text {
	case "true":
		return token.Token{Kind: token.Boolean, Text: text, Pos: pos, BoolValue: true}, nil
	case "false":
		return token.Token{Kind: token.Boolean, Text: text, Pos: pos, BoolValue: false}, nil
	case "nil", "null":
		return token.Token{Kind: token.Nil, Text: text, Pos: pos}, nil
	case "->":
		return token.Token{Kind: token.Arrow, Text: text, Pos: pos}, nil
	default:
		return token.Token{Kind: token.Symbol, Text: text, Pos: pos}, nil
	}
}
