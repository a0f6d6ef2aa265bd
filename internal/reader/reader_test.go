package reader

import (
	"testing"

	"github.com/hqlc/hql/internal/ast"
	"github.com/hqlc/hql/internal/lexer"
)

func TestReadEmptyInput(t *testing.T) {
	nodes, err := Read("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 0 {
		t.Errorf("Read(\"\") = %v, want empty", nodes)
	}
}

func TestReadList(t *testing.T) {
	nodes, err := Read("(def x 10)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("expected one top-level form, got %d", len(nodes))
	}
	list, ok := nodes[0].(*ast.List)
	if !ok {
		t.Fatalf("expected *ast.List, got %T", nodes[0])
	}
	if list.IsArrayLiteral || list.IsMapLiteral || list.IsSetLiteral {
		t.Errorf("plain list should carry no literal flags: %+v", list)
	}
	if len(list.Elements) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(list.Elements))
	}
	if list.HeadSymbolName() != "def" {
		t.Errorf("HeadSymbolName() = %q, want def", list.HeadSymbolName())
	}
}

func TestReadArrayLiteral(t *testing.T) {
	nodes, err := Read("[1, 2 3]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list := nodes[0].(*ast.List)
	if !list.IsArrayLiteral {
		t.Errorf("expected array literal")
	}
	if len(list.Elements) != 3 {
		t.Fatalf("expected 3 elements (comma is whitespace), got %d", len(list.Elements))
	}
}

func TestReadSetLiteral(t *testing.T) {
	nodes, err := Read("#[1 2]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list := nodes[0].(*ast.List)
	if !list.IsSetLiteral {
		t.Errorf("expected set literal")
	}
}

func TestReadMapLiteralDesugarsToAlternatingElements(t *testing.T) {
	nodes, err := Read(`{"a": 1, b: 2}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list := nodes[0].(*ast.List)
	if !list.IsMapLiteral {
		t.Fatalf("expected map literal")
	}
	if len(list.Elements) != 4 {
		t.Fatalf("expected [k0,v0,k1,v1], got %d elements", len(list.Elements))
	}
	if k, ok := list.Elements[0].(*ast.Literal); !ok || k.Str != "a" {
		t.Errorf("first key = %+v, want string literal \"a\"", list.Elements[0])
	}
	if k, ok := list.Elements[2].(*ast.Symbol); !ok || k.Name != "b" {
		t.Errorf("second key = %+v, want symbol b", list.Elements[2])
	}
}

func TestReadQuoteSigils(t *testing.T) {
	tests := []struct {
		src  string
		head string
	}{
		{"'x", "quote"},
		{"`x", "quasiquote"},
		{"~x", "unquote"},
		{"~@x", "unquote-splicing"},
	}
	for _, tt := range tests {
		t.Run(tt.head, func(t *testing.T) {
			nodes, err := Read(tt.src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			list := nodes[0].(*ast.List)
			if list.HeadSymbolName() != tt.head {
				t.Errorf("HeadSymbolName() = %q, want %q", list.HeadSymbolName(), tt.head)
			}
			if len(list.Elements) != 2 {
				t.Fatalf("expected 2 elements, got %d", len(list.Elements))
			}
		})
	}
}

func TestUnclosedParenIsError(t *testing.T) {
	_, err := Read("(def x")
	if err == nil {
		t.Fatal("expected error")
	}
	lexErr, ok := err.(*lexer.Error)
	if !ok || lexErr.Kind != lexer.UnclosedParen {
		t.Errorf("err = %v, want UnclosedParen", err)
	}
}

func TestUnclosedBracketIsError(t *testing.T) {
	_, err := Read("[1 2")
	if err == nil {
		t.Fatal("expected error")
	}
	lexErr, ok := err.(*lexer.Error)
	if !ok || lexErr.Kind != lexer.UnclosedBracket {
		t.Errorf("err = %v, want UnclosedBracket", err)
	}
}

func TestUnexpectedCloseIsError(t *testing.T) {
	_, err := Read(")")
	if err == nil {
		t.Fatal("expected error")
	}
	lexErr, ok := err.(*lexer.Error)
	if !ok || lexErr.Kind != lexer.UnexpectedClose {
		t.Errorf("err = %v, want UnexpectedClose", err)
	}
}

func TestMultipleTopLevelForms(t *testing.T) {
	nodes, err := Read("(def x 1) (def y 2)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("expected 2 top-level forms, got %d", len(nodes))
	}
}
