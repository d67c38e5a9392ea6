package parser

import "github.com/Lukide0/Koolang-old/internal/token"

// Binary operator precedence tiers, lowest to highest: eleven tiers, with
// unary and postfix operators (parsed outside this table) binding tighter
// than all of them. Assignment is right-associative and lowest;
// multiplicative is the tightest binary tier.
const (
	precAssignment     = 1 // = += -= *= /= %= &= |= ^=
	precNullCoalesce   = 2 // ??
	precLogicalOr      = 3 // ||
	precLogicalAnd     = 4 // &&
	precEquality       = 5 // == !=
	precComparison     = 6 // < <= > >= (spec has no <=/>= tokens; Lt/Gt only)
	precBitwiseOr      = 7 // |
	precBitwiseXor     = 8 // ^
	precBitwiseAnd     = 9 // &
	precAdditive       = 10 // + -
	precMultiplicative = 11 // * / %
)

// isAssignOp reports whether kind is one of the assignment-family
// operators, which are right-associative and produce an AssignExpr
// rather than a BinExpr.
func isAssignOp(k token.Kind) bool {
	switch k {
	case token.Eq, token.PlusEq, token.MinusEq, token.StarEq, token.SlashEq,
		token.ModEq, token.AmpEq, token.PipeEq, token.CaretEq:
		return true
	default:
		return false
	}
}

// getBinaryOperatorPrec returns the precedence tier of kind as a binary
// operator, and whether it is right-associative.
func (p *Parser) getBinaryOperatorPrec(k token.Kind) (int, bool) {
	if isAssignOp(k) {
		return precAssignment, true
	}
	switch k {
	case token.QuestionQuestion:
		return precNullCoalesce, false
	case token.PipePipe:
		return precLogicalOr, false
	case token.AmpAmp:
		return precLogicalAnd, false
	case token.EqEq, token.NotEq:
		return precEquality, false
	case token.Lt, token.Gt:
		return precComparison, false
	case token.Pipe:
		return precBitwiseOr, false
	case token.Caret:
		return precBitwiseXor, false
	case token.Amp:
		return precBitwiseAnd, false
	case token.Plus, token.Minus:
		return precAdditive, false
	case token.Star, token.Slash, token.Mod:
		return precMultiplicative, false
	default:
		return 0, false
	}
}

// isUnaryOp reports whether kind can prefix an expression as a unary
// operator (spec §4.2 disallows stacking: `--x` and `!!x` are rejected
// by the caller via a "multiple unary operators" check, not by the
// grammar itself).
func isUnaryOp(k token.Kind) bool {
	switch k {
	case token.Minus, token.Bang, token.Tilde, token.Amp, token.Star:
		return true
	default:
		return false
	}
}
