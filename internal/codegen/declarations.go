package codegen

import "github.com/hqlc/hql/internal/ir"

func (p *printer) writeVariableDeclaration(v *ir.VariableDeclaration) error {
	p.printIndent()
	if v.Kind == ir.Let {
		p.print("let ")
	} else {
		p.print("const ")
	}
	p.print(v.ID.Name)
	if v.Init != nil {
		p.print(" = ")
		if err := p.writeExpr(v.Init); err != nil {
			return err
		}
	}
	p.print(";\n")
	return nil
}

// writeFunctionDeclarationStatement emits a named `FunctionDeclaration` in
// statement position: `function name(...) { ... }` (spec.md §4.D).
func (p *printer) writeFunctionDeclarationStatement(fn *ir.FunctionDeclaration) error {
	p.printIndent()
	p.print("function ")
	if fn.ID != nil {
		p.print(fn.ID.Name)
	}
	p.print("(")
	if err := p.writeParamList(fn); err != nil {
		return err
	}
	p.print(") ")
	if err := p.writeFunctionBodyWithPreamble(fn); err != nil {
		return err
	}
	p.print("\n")
	return nil
}

func (p *printer) writeParamList(fn *ir.FunctionDeclaration) error {
	for i, param := range fn.Params {
		if i > 0 {
			p.print(", ")
		}
		if param.IsRest {
			p.print("...")
		}
		p.print(param.Name)
	}
	return nil
}

// writeFunctionBodyWithPreamble emits fn's body block, prefixing a
// destructuring binding for named-argument functions: `const { a, b, ... }
// = params;` with default values inline (spec.md §4.D).
func (p *printer) writeFunctionBodyWithPreamble(fn *ir.FunctionDeclaration) error {
	if !fn.IsNamedArgs {
		return p.writeBlock(fn.Body)
	}
	p.print("{\n")
	p.indentLevel++
	p.printIndent()
	p.print("const { ")
	for i, np := range fn.NamedParams {
		if i > 0 {
			p.print(", ")
		}
		p.print(np.Name)
		if np.DefaultValue != nil {
			p.print(" = ")
			if err := p.writeExpr(np.DefaultValue); err != nil {
				return err
			}
		}
	}
	p.print(" } = params;\n")
	for _, n := range fn.Body.Body {
		if err := p.writeStatement(n); err != nil {
			return err
		}
	}
	p.indentLevel--
	p.printIndent()
	p.print("}")
	return nil
}

// writeForStatement emits a ForStatement as `for (...) { ... }` (classical
// or range, since both share Init/Test/Update) or `for (const x of xs) {
// ... }` (forEach, via Each).
func (p *printer) writeForStatement(f *ir.ForStatement) error {
	p.printIndent()
	if f.Each != nil {
		p.print("for (const " + f.Each.Binding.Name + " of ")
		if err := p.writeExpr(f.Each.Iterable); err != nil {
			return err
		}
		p.print(") ")
		if err := p.writeBlock(f.Body); err != nil {
			return err
		}
		p.print("\n")
		return nil
	}

	p.print("for (")
	if err := p.writeForClause(f.Init); err != nil {
		return err
	}
	p.print("; ")
	if err := p.writeExpr(f.Test); err != nil {
		return err
	}
	p.print("; ")
	if err := p.writeForClause(f.Update); err != nil {
		return err
	}
	p.print(") ")
	if err := p.writeBlock(f.Body); err != nil {
		return err
	}
	p.print("\n")
	return nil
}

// writeForClause emits a for-loop's init/update slot without its own
// trailing `;` or indentation, since writeForStatement supplies both.
func (p *printer) writeForClause(n ir.Node) error {
	if decl, ok := n.(*ir.VariableDeclaration); ok {
		if decl.Kind == ir.Let {
			p.print("let ")
		} else {
			p.print("const ")
		}
		p.print(decl.ID.Name)
		if decl.Init != nil {
			p.print(" = ")
			return p.writeExpr(decl.Init)
		}
		return nil
	}
	return p.writeExpr(n)
}

// writeEnumDeclaration emits `(defenum Name M0 M1 ...)` as a frozen
// mapping (spec.md §4.B example output): `const Name = { M0: "M0", ... };`.
func (p *printer) writeEnumDeclaration(e *ir.EnumDeclaration) error {
	p.printIndent()
	p.print("const " + e.Name.Name + " = { ")
	for i, m := range e.Members {
		if i > 0 {
			p.print(", ")
		}
		p.print(m.Name + ": " + quoteString(m.Name))
	}
	p.print(" };\n")
	return nil
}

// writeImportDeclaration emits a namespace import plus a default-fallback
// alias in one deterministic shape (spec.md §4.D).
func (p *printer) writeImportDeclaration(i *ir.ImportDeclaration) error {
	p.printIndent()
	p.print("import * as " + i.Binding.Name + "$ns from " + quoteString(i.Specifier) + ";\n")
	p.printIndent()
	p.print("const " + i.Binding.Name + " = " + i.Binding.Name + "$ns.default ?? " + i.Binding.Name + "$ns;\n")
	return nil
}

// writeExportDeclaration emits `export { local as exported };` per pair
// (spec.md §4.D).
func (p *printer) writeExportDeclaration(e *ir.ExportDeclaration) error {
	for _, spec := range e.Exports {
		p.printIndent()
		p.print("export { " + spec.Local + " as " + spec.Exported + " };\n")
	}
	return nil
}
