package token

// keywords maps a keyword's spelling to its Kind. Looked up only after an
// identifier has been fully scanned, exactly as spec §4.1 describes
// ("keywords ... looked up from a compile-time perfect map after
// identifier lex").
var keywords = map[string]Kind{
	"import":   KwImport,
	"cast":     KwCast,
	"while":    KwWhile,
	"for":      KwFor,
	"if":       KwIf,
	"else":     KwElse,
	"const":    KwConst,
	"pub":      KwPub,
	"mut":      KwMut,
	"dyn":      KwDyn,
	"static":   KwStatic,
	"new":      KwNew,
	"break":    KwBreak,
	"continue": KwContinue,
	"return":   KwReturn,
	"struct":   KwStruct,
	"trait":    KwTrait,
	"enum":     KwEnum,
	"variant":  KwVariant,
	"fn":       KwFn,
	"impl":     KwImpl,
	"var":      KwVar,
	"in":       KwIn,
}

// LookupKeyword returns the keyword Kind for text, or (Ident, false) if
// text is not a keyword.
func LookupKeyword(text string) (Kind, bool) {
	k, ok := keywords[text]
	if !ok {
		return Ident, false
	}
	return k, true
}

// primitiveTypes names recognized by the KIR generator (spec §6).
var primitiveTypes = map[string]bool{
	"void": true, "bool": true,
	"u8": true, "i8": true, "u16": true, "i16": true,
	"u32": true, "i32": true, "u64": true, "i64": true,
	"usize": true, "isize": true,
	"f16": true, "f32": true, "f64": true,
	"str": true, "char": true,
}

// IsPrimitiveTypeName reports whether name spells a built-in type.
func IsPrimitiveTypeName(name string) bool { return primitiveTypes[name] }

// primitiveValues names recognized as predefined compile-time values.
var primitiveValues = map[string]bool{"null": true, "true": true, "false": true}

// IsPrimitiveValueName reports whether name spells null/true/false.
func IsPrimitiveValueName(name string) bool { return primitiveValues[name] }
