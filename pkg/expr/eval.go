package expr

import (
	"fmt"
)

// Evaluator answers a single primitive matcher.
type Evaluator interface {
	Match(m Matcher) (bool, error)
}

// EvaluatorFunc adapts a function to the Evaluator interface.
type EvaluatorFunc func(m Matcher) (bool, error)

// Match calls f(m).
func (f EvaluatorFunc) Match(m Matcher) (bool, error) {
	return f(m)
}

// Eval evaluates e, asking ev for each matcher it reaches. The left operand
// of && and || is always evaluated first and the right operand is skipped
// once the result is known, so an error in a skipped operand never surfaces.
// Nothing is cached: a matcher appearing twice is asked twice.
func Eval(e Expr, ev Evaluator) (bool, error) {
	switch n := e.(type) {
	case *MatcherExpr:
		return ev.Match(n.Matcher)
	case *AndExpr:
		ok, err := Eval(n.Left, ev)
		if err != nil || !ok {
			return false, err
		}
		return Eval(n.Right, ev)
	case *OrExpr:
		ok, err := Eval(n.Left, ev)
		if err != nil || ok {
			return ok, err
		}
		return Eval(n.Right, ev)
	case *NotExpr:
		ok, err := Eval(n.Inner, ev)
		if err != nil {
			return false, err
		}
		return !ok, nil
	default:
		panic(fmt.Sprintf("expr: unexpected node %T", e))
	}
}
