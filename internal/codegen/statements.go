package codegen

import "github.com/hqlc/hql/internal/ir"

func (p *printer) writeProgram(prog *ir.Program) error {
	for _, n := range prog.Body {
		if err := p.writeStatement(n); err != nil {
			return err
		}
	}
	return nil
}

// writeBlock emits `{ ... }` around stmts, one per line, at one deeper
// indent level than the caller is currently at.
func (p *printer) writeBlock(block *ir.Block) error {
	p.print("{\n")
	p.indentLevel++
	for _, n := range block.Body {
		if err := p.writeStatement(n); err != nil {
			return err
		}
	}
	p.indentLevel--
	p.printIndent()
	p.print("}")
	return nil
}

// writeStatement emits n in statement position: declarations keep their
// natural multi-line shape, bare expressions are wrapped with a trailing
// `;` and no `return` (spec.md §4.D).
func (p *printer) writeStatement(n ir.Node) error {
	switch v := n.(type) {
	case *ir.VariableDeclaration:
		return p.writeVariableDeclaration(v)
	case *ir.FunctionDeclaration:
		return p.writeFunctionDeclarationStatement(v)
	case *ir.ForStatement:
		return p.writeForStatement(v)
	case *ir.ReturnStatement:
		return p.writeReturnStatement(v)
	case *ir.EnumDeclaration:
		return p.writeEnumDeclaration(v)
	case *ir.ImportDeclaration:
		return p.writeImportDeclaration(v)
	case *ir.ExportDeclaration:
		return p.writeExportDeclaration(v)
	case *ir.ExpressionStatement:
		return p.writeExpressionStatement(v)
	default:
		return &Error{Msg: "unrecognized statement node"}
	}
}

func (p *printer) writeExpressionStatement(s *ir.ExpressionStatement) error {
	p.printIndent()
	if err := p.writeExpr(s.Expression); err != nil {
		return err
	}
	p.print(";\n")
	return nil
}

func (p *printer) writeReturnStatement(r *ir.ReturnStatement) error {
	p.printIndent()
	if r.Argument == nil {
		p.print("return;\n")
		return nil
	}
	p.print("return ")
	if err := p.writeExpr(r.Argument); err != nil {
		return err
	}
	p.print(";\n")
	return nil
}
