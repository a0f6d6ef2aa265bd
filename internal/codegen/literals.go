package codegen

import (
	"strconv"
	"strings"

	"github.com/hqlc/hql/internal/ir"
)

func (p *printer) writeArrayLiteral(a *ir.ArrayLiteral) error {
	p.print("[")
	for i, el := range a.Elements {
		if i > 0 {
			p.print(", ")
		}
		if err := p.writeExpr(el); err != nil {
			return err
		}
	}
	p.print("]")
	return nil
}

// writeObjectLiteral emits properties in authored order, never map
// iteration order (spec.md §4.D determinism requirement; ObjectLiteral's
// Properties is already a slice, so this is automatic).
func (p *printer) writeObjectLiteral(o *ir.ObjectLiteral) error {
	if len(o.Properties) == 0 {
		p.print("{}")
		return nil
	}
	p.print("{ ")
	for i, prop := range o.Properties {
		if i > 0 {
			p.print(", ")
		}
		p.print(objectKey(prop.Key) + ": ")
		if err := p.writeExpr(prop.Value); err != nil {
			return err
		}
	}
	p.print(" }")
	return nil
}

// objectKey quotes a property key only when it isn't a bare valid
// identifier, matching the unquoted-key style of the testable scenarios
// (`{ red: "red", ... }`, `{ x: 10, y: 5 }`).
func objectKey(key string) string {
	if isValidIdentifierKey(key) {
		return key
	}
	return quoteString(key)
}

func isValidIdentifierKey(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// writeTemplateLiteral emits a backtick-quoted string with `${...}`
// interpolations (spec.md §4.D).
func (p *printer) writeTemplateLiteral(t *ir.TemplateLiteral) error {
	p.print("`")
	for i, quasi := range t.Quasis {
		p.print(escapeTemplateText(quasi))
		if i < len(t.Expressions) {
			p.print("${")
			if err := p.writeExpr(t.Expressions[i]); err != nil {
				return err
			}
			p.print("}")
		}
	}
	p.print("`")
	return nil
}

func escapeTemplateText(s string) string {
	r := strings.NewReplacer("\\", "\\\\", "`", "\\`", "$", "\\$")
	return r.Replace(s)
}

// quoteString renders s as a double-quoted JavaScript string literal.
func quoteString(s string) string {
	return strconv.Quote(s)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
