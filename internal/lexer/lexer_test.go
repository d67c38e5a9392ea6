package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lukide0/Koolang-old/internal/diag"
	"github.com/Lukide0/Koolang-old/internal/lexer"
	"github.com/Lukide0/Koolang-old/internal/source"
	"github.com/Lukide0/Koolang-old/internal/token"
)

func tokenize(t *testing.T, src string) (*token.List, *source.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Add("test.k", []byte(src))
	bag := diag.NewBag(64)
	list := lexer.New(f, bag).Tokenize()
	return list, f, bag
}

func TestTokenizeKeywordsAndIdents(t *testing.T) {
	list, f, bag := tokenize(t, "const pub x1 _ fn")
	require.Equal(t, 0, bag.Len())

	kinds := []token.Kind{token.KwConst, token.KwPub, token.Ident, token.Underscore, token.KwFn, token.EOF}
	require.Equal(t, len(kinds)+1, list.Len()) // +1 for the StartOfFile sentinel
	for i, k := range kinds {
		assert.Equal(t, k, list.Kind(token.Index(i+1)), "token %d", i)
	}
	assert.Equal(t, "x1", list.Text(3, f))
}

func TestTokenizeNumbers(t *testing.T) {
	list, _, bag := tokenize(t, "0 10 0x1F 0b101 0o17 1_000 3.14")
	require.Equal(t, 0, bag.Len())

	want := []token.Kind{
		token.NumberLit, token.NumberLit, token.NumberLit, token.NumberLit,
		token.NumberLit, token.NumberLit, token.FloatLit, token.EOF,
	}
	for i, k := range want {
		assert.Equal(t, k, list.Kind(token.Index(i+1)))
	}
}

func TestTokenizeStrings(t *testing.T) {
	list, f, bag := tokenize(t, `"hello \"world\"" 'c' ` + "`multi\nline`")
	require.Equal(t, 0, bag.Len())
	assert.Equal(t, token.StringLit, list.Kind(1))
	assert.Equal(t, token.CharLit, list.Kind(2))
	assert.Equal(t, token.StringLit, list.Kind(3))
	assert.Equal(t, "`multi\nline`", list.Text(3, f))
}

func TestTokenizeUnterminatedStringIsInvalid(t *testing.T) {
	list, _, bag := tokenize(t, `"unterminated`)
	assert.Equal(t, token.Invalid, list.Kind(1))
	require.Equal(t, 1, bag.Len())
	assert.Equal(t, diag.CodeUnterminatedLiteral, bag.Items()[0].Code)
}

func TestTokenizeUnknownByteIsInvalid(t *testing.T) {
	list, _, bag := tokenize(t, "x @ y")
	assert.Equal(t, token.Ident, list.Kind(1))
	assert.Equal(t, token.Invalid, list.Kind(2))
	assert.Equal(t, token.Ident, list.Kind(3))
	require.Equal(t, 1, bag.Len())
}

func TestTokenizeEndsWithEOF(t *testing.T) {
	list, _, _ := tokenize(t, "")
	assert.Equal(t, token.EOF, list.Kind(token.Index(list.Len()-1)))
}

func TestTokenizeDocCommentCaptured(t *testing.T) {
	list, f, bag := tokenize(t, "/** doc */ fn")
	require.Equal(t, 0, bag.Len())
	assert.Equal(t, token.DocComment, list.Kind(1))
	assert.Equal(t, "/** doc */", list.Text(1, f))
	assert.Equal(t, token.KwFn, list.Kind(2))
}

func TestTokenizeLineCommentIsTrivia(t *testing.T) {
	list, _, bag := tokenize(t, "fn // trailing\nvar")
	require.Equal(t, 0, bag.Len())
	assert.Equal(t, token.KwFn, list.Kind(1))
	assert.Equal(t, token.KwVar, list.Kind(2))
}

// Totality: every byte of the source belongs to exactly one token span,
// or lies within a gap bracketed by adjacent tokens (whitespace/trivia).
func TestTokenizeTotality(t *testing.T) {
	src := "const A : u32 = 4 + 5; // comment\nfn f() { return A; }"
	list, _, _ := tokenize(t, src)

	var prevEnd uint32
	for i := 1; i < list.Len(); i++ {
		span := list.Span(token.Index(i))
		if span.Start < prevEnd {
			t.Fatalf("token %d overlaps previous end (start=%d prevEnd=%d)", i, span.Start, prevEnd)
		}
		prevEnd = span.End
	}
	assert.LessOrEqual(t, int(prevEnd), len(src))
}

func TestTwoCharOperators(t *testing.T) {
	list, _, bag := tokenize(t, "-> :: ?? && || == != += -= *= /= %= &= |= ^=")
	require.Equal(t, 0, bag.Len())
	want := []token.Kind{
		token.Arrow, token.ColonColon, token.QuestionQuestion, token.AmpAmp, token.PipePipe,
		token.EqEq, token.NotEq, token.PlusEq, token.MinusEq, token.StarEq, token.SlashEq,
		token.ModEq, token.AmpEq, token.PipeEq, token.CaretEq, token.EOF,
	}
	for i, k := range want {
		assert.Equal(t, k, list.Kind(token.Index(i+1)))
	}
}
