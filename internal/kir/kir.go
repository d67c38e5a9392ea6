package kir

// Kir is the flat instruction store produced by Generate: parallel
// `Tag`/`Data` vectors (spec §3/§9's cache-density mandate applied here
// just as it is to the token stream), plus a side-table `Extra` vector
// for variable-arity payloads.
type Kir struct {
	Tag  []Tag
	Data []Data

	// Extra holds serialized variable-arity payloads referenced by
	// Data.NodePl.Extra offsets - child instruction lists for blocks,
	// argument lists for calls, and similar.
	Extra []uint32
}

// New creates an empty Kir with the sentinel instruction at index 0.
func New() *Kir {
	return &Kir{
		Tag:   []Tag{Invalid},
		Data:  []Data{{}},
		Extra: []uint32{0},
	}
}

// prepareInst reserves a slot for an instruction whose Data will be
// filled in later (needed for self-referencing forms like a block,
// whose own index must be known before its children are generated).
func (k *Kir) prepareInst() Index {
	k.Tag = append(k.Tag, Invalid)
	k.Data = append(k.Data, Data{})
	return Index(len(k.Tag) - 1)
}

func (k *Kir) setInst(i Index, tag Tag, data Data) {
	k.Tag[i] = tag
	k.Data[i] = data
}

// createInst appends a fully-formed instruction and returns its index.
func (k *Kir) createInst(tag Tag, data Data) Index {
	k.Tag = append(k.Tag, tag)
	k.Data = append(k.Data, data)
	return Index(len(k.Tag) - 1)
}

// pushExtra appends values to Extra and returns their start offset.
func (k *Kir) pushExtra(values ...uint32) uint32 {
	start := uint32(len(k.Extra))
	k.Extra = append(k.Extra, values...)
	return start
}
