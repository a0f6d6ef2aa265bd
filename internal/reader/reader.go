// Package reader parses a token stream into the surface AST defined by
// package ast. It implements every parsing rule in spec.md §4.A: balanced
// delimiter matching, array/map/set literal desugaring, and the quote /
// quasiquote / unquote / unquote-splicing sigil forms.
//
// The reader aborts on the first error (no recovery), matching the
// teacher's single-error-per-phase fail-fast discipline.
package reader

import (
	"github.com/hqlc/hql/internal/ast"
	"github.com/hqlc/hql/internal/lexer"
	"github.com/hqlc/hql/internal/token"
)

// Error is an alias so callers only need to import this package to catch
// reader failures, even though the lexer is what constructs most of them.
type Error = lexer.Error

// Read scans and parses src in full, returning the ordered sequence of
// top-level surface AST nodes.
func Read(src string) ([]ast.Node, error) {
	toks, err := lexer.New(src).All()
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	var nodes []ast.Node
	for !p.atEnd() {
		p.skipCommas()
		if p.atEnd() {
			break
		}
		n, err := p.readForm()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

type parser struct {
	toks []token.Token
	pos  int
}

func (p *parser) atEnd() bool {
	return p.cur().Kind == token.EOF
}

func (p *parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[p.pos]
}

func (p *parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *parser) skipCommas() {
	for p.cur().Kind == token.Comma {
		p.advance()
	}
}

// readForm reads one surface AST node starting at the current token.
func (p *parser) readForm() (ast.Node, error) {
	tok := p.cur()
	switch tok.Kind {
	case token.EOF:
		return nil, &lexer.Error{Kind: lexer.UnclosedParen, Pos: tok.Pos}
	case token.LParen:
		return p.readList(token.RParen, lexer.UnclosedParen, false, false, false)
	case token.LBracket:
		return p.readList(token.RBracket, lexer.UnclosedBracket, true, false, false)
	case token.LBrace:
		return p.readMap(tok.Pos)
	case token.HashBracket:
		return p.readList(token.RBracket, lexer.UnclosedBracket, false, false, true)
	case token.RParen, token.RBracket, token.RBrace:
		return nil, &lexer.Error{Kind: lexer.UnexpectedClose, Pos: tok.Pos, Ch: closeRune(tok.Kind)}
	case token.Quote:
		return p.readSigil(tok.Pos, "quote")
	case token.Backtick:
		return p.readSigil(tok.Pos, "quasiquote")
	case token.TildeAt:
		return p.readSigil(tok.Pos, "unquote-splicing")
	case token.Tilde:
		return p.readSigil(tok.Pos, "unquote")
	case token.Number:
		p.advance()
		return ast.NewNumberLiteral(tok.Pos, tok.NumberValue), nil
	case token.String:
		p.advance()
		return ast.NewStringLiteral(tok.Pos, tok.StringValue, tok.InterpolationSpans), nil
	case token.Boolean:
		p.advance()
		return ast.NewBoolLiteral(tok.Pos, tok.BoolValue), nil
	case token.Nil:
		p.advance()
		return ast.NewNilLiteral(tok.Pos), nil
	case token.Symbol, token.Arrow:
		p.advance()
		return ast.NewSymbol(tok.Pos, tok.Text), nil
	case token.Colon:
		// A bare ':' never starts a form; surface it as an unexpected token.
		return nil, &lexer.Error{Kind: lexer.UnexpectedClose, Pos: tok.Pos, Ch: ':'}
	default:
		return nil, &lexer.Error{Kind: lexer.UnexpectedClose, Pos: tok.Pos}
	}
}

func closeRune(k token.Kind) rune {
	switch k {
	case token.RParen:
		return ')'
	case token.RBracket:
		return ']'
	case token.RBrace:
		return '}'
	}
	return 0
}

// readList reads a `(`/`[`/`#[`-delimited sequence up to the matching close
// token, whose Kind is given by closeKind. Commas between elements are
// insignificant, equivalent to whitespace.
func (p *parser) readList(closeKind token.Kind, unclosedKind lexer.ErrorKind, isArray, isMap, isSet bool) (ast.Node, error) {
	startPos := p.cur().Pos
	p.advance() // consume opener
	var elems []ast.Node
	for {
		p.skipCommas()
		if p.cur().Kind == closeKind {
			p.advance()
			break
		}
		if p.atEnd() {
			return nil, &lexer.Error{Kind: unclosedKind, Pos: startPos}
		}
		n, err := p.readForm()
		if err != nil {
			return nil, err
		}
		elems = append(elems, n)
	}
	l := ast.NewList(startPos, elems)
	l.IsArrayLiteral = isArray
	l.IsMapLiteral = isMap
	l.IsSetLiteral = isSet
	return l, nil
}

// readMap reads a `{ key : value, ... }` form, desugaring it per spec.md
// §4.A into List{IsMapLiteral: true, Elements: [k0, v0, k1, v1, ...]}.
func (p *parser) readMap(startPos token.Position) (ast.Node, error) {
	p.advance() // consume '{'
	var elems []ast.Node
	for {
		p.skipCommas()
		if p.cur().Kind == token.RBrace {
			p.advance()
			break
		}
		if p.atEnd() {
			return nil, &lexer.Error{Kind: lexer.UnclosedBrace, Pos: startPos}
		}
		key, err := p.readMapKey()
		if err != nil {
			return nil, err
		}
		if sym, ok := key.(*ast.Symbol); ok && sym.IsNamedParam() {
			// `b: v` lexes its key and colon together as the symbol "b:".
			key = ast.NewSymbol(sym.Pos(), sym.Name[:len(sym.Name)-1])
		} else {
			if p.cur().Kind != token.Colon {
				return nil, &lexer.Error{Kind: lexer.UnexpectedClose, Pos: p.cur().Pos}
			}
			p.advance() // consume ':'
		}
		val, err := p.readForm()
		if err != nil {
			return nil, err
		}
		elems = append(elems, key, val)
	}
	l := ast.NewList(startPos, elems)
	l.IsMapLiteral = true
	return l, nil
}

// readMapKey reads a map key, which must be a string literal or a symbol.
func (p *parser) readMapKey() (ast.Node, error) {
	tok := p.cur()
	switch tok.Kind {
	case token.String:
		p.advance()
		return ast.NewStringLiteral(tok.Pos, tok.StringValue, tok.InterpolationSpans), nil
	case token.Symbol:
		p.advance()
		return ast.NewSymbol(tok.Pos, tok.Text), nil
	default:
		return nil, &lexer.Error{Kind: lexer.UnexpectedClose, Pos: tok.Pos}
	}
}

// readSigil reads the single following form and wraps it as (head form),
// per spec.md §4.A's quote/quasiquote/unquote/unquote-splicing desugaring.
func (p *parser) readSigil(pos token.Position, head string) (ast.Node, error) {
	p.advance() // consume sigil
	inner, err := p.readForm()
	if err != nil {
		return nil, err
	}
	return ast.NewList(pos, []ast.Node{ast.NewSymbol(pos, head), inner}), nil
}
