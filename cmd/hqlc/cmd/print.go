package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/hqlc/hql/internal/ast"
)

// readSource returns the -e flag's source (named "<eval>") when it is set,
// otherwise loads file, mirroring the teacher's lex/compile subcommands' input handling.
func readSource(file, eval string) (source, filename string, err error) {
	if eval != "" {
		return eval, "<eval>", nil
	}
	if file == "" {
		return "", "", fmt.Errorf("either provide a file path or use -e for inline code")
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return "", "", fmt.Errorf("failed to read file %s: %w", file, err)
	}
	return string(data), file, nil
}

// printForms renders each top-level surface-AST node as an indented
// s-expression, close enough to HQL's own syntax to read back visually
// without round-tripping through the code generator.
func printForms(nodes []ast.Node) {
	for _, n := range nodes {
		printNode(n, 0)
	}
}

func printNode(n ast.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch v := n.(type) {
	case *ast.Literal:
		fmt.Printf("%s%s\n", indent, literalText(v))
	case *ast.Symbol:
		fmt.Printf("%s%s\n", indent, v.Name)
	case *ast.List:
		open, close := "(", ")"
		switch {
		case v.IsArrayLiteral:
			open, close = "[", "]"
		case v.IsMapLiteral, v.IsSetLiteral:
			open, close = "{", "}"
		}
		fmt.Printf("%s%s\n", indent, open)
		for _, elem := range v.Elements {
			printNode(elem, depth+1)
		}
		fmt.Printf("%s%s\n", indent, close)
	default:
		fmt.Printf("%s<unknown node %T>\n", indent, n)
	}
}

func literalText(l *ast.Literal) string {
	switch l.Kind {
	case ast.NumberLiteral:
		return fmt.Sprintf("%g", l.Number)
	case ast.StringLiteral:
		return fmt.Sprintf("%q", l.Str)
	case ast.BoolLiteral:
		if l.Bool {
			return "true"
		}
		return "false"
	default:
		return "nil"
	}
}
