package ast

import "github.com/tisane-lang/tisane/lib/token"

// UnaryOperator is a sign prefix on a primary expression.
type UnaryOperator string

const (
	Positive UnaryOperator = "+"
	Negative UnaryOperator = "-"
)

// UnaryOperatorFromToken returns the operator for tok, or false when tok
// does not start a unary expression.
func UnaryOperatorFromToken(tok token.Token) (UnaryOperator, bool) {
	switch tok.Kind {
	case token.Plus:
		return Positive, true
	case token.Minus:
		return Negative, true
	default:
		return "", false
	}
}

// ArithmeticOperator is the operator of a BinaryExpression.
type ArithmeticOperator string

const (
	Add      ArithmeticOperator = "+"
	Subtract ArithmeticOperator = "-"
	Multiply ArithmeticOperator = "*"
	Divide   ArithmeticOperator = "/"
	Modulo   ArithmeticOperator = "%"
)

// AdditiveOperatorFromToken matches tokens accepted by the additive tier.
func AdditiveOperatorFromToken(tok token.Token) (ArithmeticOperator, bool) {
	switch tok.Kind {
	case token.Plus:
		return Add, true
	case token.Minus:
		return Subtract, true
	default:
		return "", false
	}
}

// MultiplicativeOperatorFromToken matches tokens accepted by the
// multiplicative tier.
func MultiplicativeOperatorFromToken(tok token.Token) (ArithmeticOperator, bool) {
	switch tok.Kind {
	case token.Multiplication:
		return Multiply, true
	case token.Division:
		return Divide, true
	default:
		return "", false
	}
}

// ComparisonOperator is the operator of a Comparison.
type ComparisonOperator string

const (
	Equal        ComparisonOperator = "=="
	NotEqual     ComparisonOperator = "!="
	Less         ComparisonOperator = "<"
	LessEqual    ComparisonOperator = "<="
	Greater      ComparisonOperator = ">"
	GreaterEqual ComparisonOperator = ">="
)

func ComparisonOperatorFromToken(tok token.Token) (ComparisonOperator, bool) {
	switch tok.Kind {
	case token.Equal:
		return Equal, true
	case token.NotEqual:
		return NotEqual, true
	case token.Less:
		return Less, true
	case token.LessEqual:
		return LessEqual, true
	case token.Greater:
		return Greater, true
	case token.GreaterEqual:
		return GreaterEqual, true
	default:
		return "", false
	}
}
