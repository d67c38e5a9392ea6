package kir

import "github.com/Lukide0/Koolang-old/internal/source"

// label associates a loop's name with the instruction (the Loop
// instruction itself) that `break #name` / `continue #name` should
// target.
type label struct {
	Name source.StringID
	Inst Index
}

// labelStack is a simple push/pop stack scoped to the lifetime of the
// enclosing loop generation call.
type labelStack struct {
	labels []label
}

// push records a new label scope. It returns false if name already
// names an enclosing loop (a duplicate-label error, per spec's KIR
// error taxonomy) and true otherwise; the label is pushed regardless so
// lookups still resolve to the innermost (shadowing) loop.
func (s *labelStack) push(name source.StringID, inst Index) bool {
	dup := false
	if name != source.NoStringID {
		for _, l := range s.labels {
			if l.Name == name {
				dup = true
				break
			}
		}
	}
	s.labels = append(s.labels, label{Name: name, Inst: inst})
	return !dup
}

func (s *labelStack) pop() {
	s.labels = s.labels[:len(s.labels)-1]
}

// find returns the innermost loop, or - if name is NoStringID - the
// innermost loop of any name (a bare unlabeled `break`/`continue`).
func (s *labelStack) find(name source.StringID) (Index, bool) {
	if name == source.NoStringID {
		if len(s.labels) == 0 {
			return NoIndex, false
		}
		return s.labels[len(s.labels)-1].Inst, true
	}
	for i := len(s.labels) - 1; i >= 0; i-- {
		if s.labels[i].Name == name {
			return s.labels[i].Inst, true
		}
	}
	return NoIndex, false
}
