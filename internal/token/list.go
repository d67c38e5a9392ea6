package token

import "github.com/Lukide0/Koolang-old/internal/source"

// Index identifies a token within a List. Index 0 is the reserved
// StartOfFile sentinel, so NULL_INDEX (0) never collides with a real
// token per spec §3.
type Index uint32

// NoIndex is the null token index.
const NoIndex Index = 0

// Loc is a token's byte offset and length within its file, stored
// separately from Kind for cache density (spec §3: "Tokens are stored as
// two parallel vectors... for cache density").
type Loc struct {
	Start uint32
	Len   uint32
}

// List is the tokenizer's output: parallel Tags/Locs vectors plus the
// owning file, rather than an array of Token structs.
type List struct {
	File FileID
	Tags []Kind
	Locs []Loc
}

// FileID is a re-export so callers of token.List don't need to import
// source directly just to name the file a list belongs to.
type FileID = source.FileID

// New creates a List with the reserved sentinel at index 0 already
// present.
func New(file FileID) *List {
	return &List{
		File: file,
		Tags: []Kind{StartOfFile},
		Locs: []Loc{{}},
	}
}

// Push appends a token and returns its Index.
func (l *List) Push(tag Kind, start, length uint32) Index {
	l.Tags = append(l.Tags, tag)
	l.Locs = append(l.Locs, Loc{Start: start, Len: length})
	return Index(len(l.Tags) - 1)
}

// Len returns the number of tokens, including the sentinel.
func (l *List) Len() int { return len(l.Tags) }

// Kind returns the tag at i.
func (l *List) Kind(i Index) Kind { return l.Tags[i] }

// Span returns the source span covered by the token at i.
func (l *List) Span(i Index) source.Span {
	loc := l.Locs[i]
	return source.Span{File: l.File, Start: loc.Start, End: loc.Start + loc.Len}
}

// Text returns the token's source text given the owning file.
func (l *List) Text(i Index, f *source.File) string {
	return f.Text(l.Span(i))
}
