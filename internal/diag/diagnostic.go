package diag

import "github.com/Lukide0/Koolang-old/internal/source"

// Code is a stable numeric identifier for a diagnostic, consumed by
// external tooling that wants to filter or explain specific errors.
type Code uint16

// Error taxonomy from spec.md §7, grouped by phase.
const (
	_ Code = iota

	// Lex errors.
	CodeUnterminatedLiteral
	CodeUnknownByte
	CodeEmptyBlockComment

	// Parse errors.
	CodeExpectedToken
	CodeExpectedExpression
	CodeMultipleUnaryOps
	CodeMissingSemicolon

	// KIR errors.
	CodeDuplicateSymbol
	CodeDuplicateLabel
	CodeKeywordAsName
	CodeUnknownImportPath
	CodeSelfImport
	CodeDiscardConst

	// Sema errors.
	CodeMismatchedTypes
	CodeCannotFitInt
	CodeCannotCastInt
	CodeDivisionByZero
	CodeCircularDependency
	CodeUnknownSymbol
	CodeConstOverflow
)

// Label highlights a byte range within the diagnostic's file with a short
// piece of text. Color is advisory; the renderer (out of scope) decides
// how to use it.
type Label struct {
	Span source.Span
	Text string
}

// Note is an auxiliary label attached to a diagnostic, e.g. pointing at
// the first definition of a symbol a duplicate collides with. Kept as a
// list (rather than spec §6's single label) per spec §9's design note
// that the shape should grow multi-label without a breaking change.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one reported event: a severity, a stable code, a primary
// message, a label pointing at the offending span, and optional notes.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Label    Label
	Notes    []Note
}

// WithNote appends a note and returns the diagnostic for chaining.
func (d *Diagnostic) WithNote(span source.Span, msg string) *Diagnostic {
	d.Notes = append(d.Notes, Note{Span: span, Msg: msg})
	return d
}
