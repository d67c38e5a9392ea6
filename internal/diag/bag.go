package diag

import (
	"sort"

	"fortio.org/safecast"

	"github.com/Lukide0/Koolang-old/internal/source"
)

// Bag collects diagnostics for a single file up to a capacity limit, after
// which further reports are silently dropped (the module is already
// failed; piling on more noise does not help the user).
type Bag struct {
	items []*Diagnostic
	max   uint16
}

// NewBag creates a Bag that accepts at most max diagnostics.
func NewBag(max int) *Bag {
	limit, err := safecast.Conv[uint16](max)
	if err != nil {
		panic(err)
	}
	return &Bag{items: make([]*Diagnostic, 0, limit), max: limit}
}

// Add appends d, returning false if the bag is already at capacity.
func (b *Bag) Add(d *Diagnostic) bool {
	if d == nil || len(b.items) >= int(b.max) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Report is a convenience constructor-and-add in one call.
func (b *Bag) Report(sev Severity, code Code, span source.Span, msg string) *Diagnostic {
	d := &Diagnostic{Severity: sev, Code: code, Message: msg, Label: Label{Span: span, Text: msg}}
	b.Add(d)
	return d
}

// Items returns the collected diagnostics in report order.
func (b *Bag) Items() []*Diagnostic { return b.items }

// Len returns the number of collected diagnostics.
func (b *Bag) Len() int { return len(b.items) }

// HasErrors reports whether any diagnostic has Severity >= Err.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity >= Err {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any diagnostic has Severity >= Warn.
func (b *Bag) HasWarnings() bool {
	for _, d := range b.items {
		if d.Severity >= Warn {
			return true
		}
	}
	return false
}

// SortedBySeverity returns a copy of Items ordered Err, then Warn, then
// Info, per spec §6's print order. Stable within a severity so report
// order is preserved.
func (b *Bag) SortedBySeverity() []*Diagnostic {
	out := make([]*Diagnostic, len(b.items))
	copy(out, b.items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Severity > out[j].Severity
	})
	return out
}
