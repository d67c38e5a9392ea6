package source

// File is a single loaded source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
}

// Slice returns the bytes covered by span, which must belong to f.
func (f *File) Slice(span Span) []byte {
	return f.Content[span.Start:span.End]
}

// Text is a convenience wrapper around Slice returning a string.
func (f *File) Text(span Span) string {
	return string(f.Slice(span))
}
