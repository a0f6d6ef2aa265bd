package codegen

import "github.com/hqlc/hql/internal/ir"

// writeExpr emits n wherever it appears as a value: a statement's bare
// expression, a return argument, an operand, an array/object element, or
// a call argument.
func (p *printer) writeExpr(n ir.Node) error {
	switch v := n.(type) {
	case *ir.Identifier:
		p.print(v.Name)
		return nil
	case *ir.NumericLiteral:
		p.print(formatNumber(v.Value))
		return nil
	case *ir.StringLiteralNode:
		p.print(quoteString(v.Value))
		return nil
	case *ir.BooleanLiteral:
		if v.Value {
			p.print("true")
		} else {
			p.print("false")
		}
		return nil
	case *ir.NullLiteral:
		p.print("null")
		return nil
	case *ir.TemplateLiteral:
		return p.writeTemplateLiteral(v)
	case *ir.ArrayLiteral:
		return p.writeArrayLiteral(v)
	case *ir.ObjectLiteral:
		return p.writeObjectLiteral(v)
	case *ir.BinaryExpression:
		return p.writeBinaryExpression(v)
	case *ir.UnaryExpression:
		return p.writeUnaryExpression(v)
	case *ir.AssignmentExpression:
		return p.writeAssignmentExpression(v)
	case *ir.CallExpression:
		return p.writeCallExpression(v)
	case *ir.NewExpression:
		return p.writeNewExpression(v)
	case *ir.MemberAccess:
		return p.writeMemberAccess(v)
	case *ir.ConditionalExpression:
		return p.writeConditionalExpression(v)
	case *ir.FunctionDeclaration:
		return p.writeFunctionExpression(v)
	default:
		return &Error{Msg: "unrecognized expression node"}
	}
}

// writeBinaryExpression always parenthesizes its result, per spec.md §4.D:
// "All binary operator output is parenthesized to preserve source
// precedence without relying on language defaults."
func (p *printer) writeBinaryExpression(b *ir.BinaryExpression) error {
	p.print("(")
	if err := p.writeExpr(b.Left); err != nil {
		return err
	}
	p.print(" " + b.Op + " ")
	if err := p.writeExpr(b.Right); err != nil {
		return err
	}
	p.print(")")
	return nil
}

func (p *printer) writeUnaryExpression(u *ir.UnaryExpression) error {
	if u.Prefix {
		p.print(u.Op)
		if err := p.writeExpr(u.Argument); err != nil {
			return err
		}
		return nil
	}
	if err := p.writeExpr(u.Argument); err != nil {
		return err
	}
	p.print(u.Op)
	return nil
}

func (p *printer) writeAssignmentExpression(a *ir.AssignmentExpression) error {
	if err := p.writeExpr(a.Left); err != nil {
		return err
	}
	p.print(" " + a.Op + " ")
	return p.writeExpr(a.Right)
}

// writeConditionalExpression emits `(if t c a)` as a ternary. The IR's
// branch slots always hold expressions (never multi-statement blocks), so
// a ternary is valid in every position a ConditionalExpression can reach
// — including a bare top-level `cond`/`if` wrapped by ExpressionStatement,
// per spec.md §8's literal scenario ("a right-nested ternary"). See
// DESIGN.md for the statement-vs-expression-position note.
func (p *printer) writeConditionalExpression(c *ir.ConditionalExpression) error {
	p.print("(")
	if err := p.writeExpr(c.Test); err != nil {
		return err
	}
	p.print(" ? ")
	if err := p.writeExpr(c.Consequent); err != nil {
		return err
	}
	p.print(" : ")
	if err := p.writeExpr(c.Alternate); err != nil {
		return err
	}
	p.print(")")
	return nil
}

func (p *printer) writeCallExpression(c *ir.CallExpression) error {
	if id, ok := c.Callee.(*ir.Identifier); ok && helperNames[id.Name] {
		p.usesHelpers = true
	}
	if err := p.writeExpr(c.Callee); err != nil {
		return err
	}
	p.print("(")
	for i, a := range c.Arguments {
		if i > 0 {
			p.print(", ")
		}
		if err := p.writeExpr(a); err != nil {
			return err
		}
	}
	p.print(")")
	return nil
}

func (p *printer) writeNewExpression(ne *ir.NewExpression) error {
	p.print("new ")
	if err := p.writeExpr(ne.Callee); err != nil {
		return err
	}
	p.print("(")
	for i, a := range ne.Arguments {
		if i > 0 {
			p.print(", ")
		}
		if err := p.writeExpr(a); err != nil {
			return err
		}
	}
	p.print(")")
	return nil
}

// writeMemberAccess emits `obj.prop` for dot access, `obj["prop"]` /
// `obj[expr]` for computed access (spec.md §4.D).
func (p *printer) writeMemberAccess(m *ir.MemberAccess) error {
	if err := p.writeExpr(m.Object); err != nil {
		return err
	}
	if !m.Computed {
		id, ok := m.Property.(*ir.Identifier)
		if !ok {
			return &Error{Msg: "dot member access property must be an identifier"}
		}
		p.print("." + id.Name)
		return nil
	}
	p.print("[")
	if err := p.writeExpr(m.Property); err != nil {
		return err
	}
	p.print("]")
	return nil
}

// writeFunctionExpression emits an anonymous `FunctionDeclaration` in
// expression position: `function(...) { ... }` (spec.md §4.D).
func (p *printer) writeFunctionExpression(fn *ir.FunctionDeclaration) error {
	p.print("function(")
	if err := p.writeParamList(fn); err != nil {
		return err
	}
	p.print(") ")
	return p.writeFunctionBodyWithPreamble(fn)
}
