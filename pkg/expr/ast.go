package expr

import (
	"fmt"
	"strconv"
)

// Matcher is a primitive predicate over the project tree or environment.
type Matcher interface {
	fmt.Stringer
	matcher()
}

// Exists matches when a regular file whose root-relative path matches the
// glob Pattern exists under the project root.
type Exists struct {
	Pattern string
}

// EnvExists matches when the variable Name is set to a non-empty value.
type EnvExists struct {
	Name string
}

// EnvEquals matches when the variable Name is set and equals Value exactly.
type EnvEquals struct {
	Name  string
	Value string
}

// Lang matches when a regular file with one of the language's extensions
// exists under the project root.
type Lang struct {
	Name string
}

func (Exists) matcher()    {}
func (EnvExists) matcher() {}
func (EnvEquals) matcher() {}
func (Lang) matcher()      {}

func (m Exists) String() string    { return "exists(" + strconv.Quote(m.Pattern) + ")" }
func (m EnvExists) String() string { return "env(" + m.Name + ")" }
func (m EnvEquals) String() string { return "env(" + m.Name + "=" + strconv.Quote(m.Value) + ")" }
func (m Lang) String() string      { return "lang(" + strconv.Quote(m.Name) + ")" }

// Expr is a node of a parsed guard expression. Trees are immutable once
// built and each composite node owns its operands.
type Expr interface {
	fmt.Stringer
	expr()
}

// MatcherExpr is a leaf wrapping a single Matcher.
type MatcherExpr struct {
	Matcher Matcher
}

// AndExpr is true when both operands are true.
type AndExpr struct {
	Left  Expr
	Right Expr
}

// OrExpr is true when either operand is true.
type OrExpr struct {
	Left  Expr
	Right Expr
}

// NotExpr negates its operand.
type NotExpr struct {
	Inner Expr
}

func (*MatcherExpr) expr() {}
func (*AndExpr) expr()     {}
func (*OrExpr) expr()      {}
func (*NotExpr) expr()     {}

func (e *MatcherExpr) String() string { return e.Matcher.String() }
func (e *AndExpr) String() string     { return "(" + e.Left.String() + " && " + e.Right.String() + ")" }
func (e *OrExpr) String() string      { return "(" + e.Left.String() + " || " + e.Right.String() + ")" }
func (e *NotExpr) String() string     { return "!" + e.Inner.String() }

// Match wraps a Matcher into an expression leaf.
func Match(m Matcher) Expr {
	return &MatcherExpr{Matcher: m}
}

// And builds left && right.
func And(left, right Expr) Expr {
	return &AndExpr{Left: left, Right: right}
}

// Or builds left || right.
func Or(left, right Expr) Expr {
	return &OrExpr{Left: left, Right: right}
}

// Not builds !inner.
func Not(inner Expr) Expr {
	return &NotExpr{Inner: inner}
}

// Matchers returns the matchers of e in evaluation order, left to right.
func Matchers(e Expr) []Matcher {
	var out []Matcher
	var visit func(Expr)
	visit = func(e Expr) {
		switch n := e.(type) {
		case *MatcherExpr:
			out = append(out, n.Matcher)
		case *AndExpr:
			visit(n.Left)
			visit(n.Right)
		case *OrExpr:
			visit(n.Left)
			visit(n.Right)
		case *NotExpr:
			visit(n.Inner)
		}
	}
	visit(e)
	return out
}
