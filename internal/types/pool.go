package types

// reservedKeys is the fixed, compile-time-ordered prefix of the pool:
// primitive types followed by primitive values. Index 0 (NONE) through
// len(reservedKeys)-1 always name these entries, regardless of what a
// particular compilation interns afterward — other code (Sema's
// constant folding, the KIR generator's Ref encoding) depends on this
// exact order, ported verbatim from pool::keys::ALL_KEYS in the
// original implementation.
var reservedKeys = []Key{
	{Tag: TagNone},
	KeySimpleType(SimpleVoid),
	KeySimpleType(SimpleBool),
	KeySimpleType(SimpleStr),
	KeySimpleType(SimpleChar),

	KeySimpleType(SimpleU8),
	KeySimpleType(SimpleU16),
	KeySimpleType(SimpleU32),
	KeySimpleType(SimpleU64),
	KeySimpleType(SimpleUsize),

	KeySimpleType(SimpleI8),
	KeySimpleType(SimpleI16),
	KeySimpleType(SimpleI32),
	KeySimpleType(SimpleI64),
	KeySimpleType(SimpleIsize),

	KeySimpleType(SimpleComptimeInt),

	KeySimpleType(SimpleF16),
	KeySimpleType(SimpleF32),
	KeySimpleType(SimpleF64),
	KeySimpleType(SimpleComptimeFloat),

	KeySimpleValue(ValueZero),
	KeySimpleValue(ValueOne),
	KeySimpleValue(ValueNullPtr),
	KeySimpleValue(ValueTrue),
	KeySimpleValue(ValueFalse),
}

// Reserved indices into the pool, matching the constants derived from
// pool::keys::getKeyIndex in the original.
const (
	NoneIndex Index = iota
	VoidIndex
	BoolIndex
	StrIndex
	CharIndex

	U8Index
	U16Index
	U32Index
	U64Index
	UsizeIndex

	I8Index
	I16Index
	I32Index
	I64Index
	IsizeIndex

	ComptimeIntIndex

	F16Index
	F32Index
	F64Index
	ComptimeFloatIndex

	ZeroIndex
	OneIndex
	NullPtrIndex
	TrueIndex
	FalseIndex

	firstDynamicIndex
)

// Pool is the content-addressed intern table for types and compile-time
// values. The first len(reservedKeys) entries are always the primitive
// prefix above; everything interned afterward (array types,
// integer/byte constants) is deduplicated via the cache.
type Pool struct {
	keys []Key
	tags []KeyTag

	// extra holds serialized struct-shaped payloads (TypeValue/ArrType/
	// Bytes/Int), two uint32 words each, indexed by data[i].
	extra []Index
	data  []Index

	cache map[Key]Index

	Bytes   []byte
	Values  []uint64
	Strings []string
}

// NewPool creates a Pool pre-seeded with the fixed primitive prefix.
func NewPool() *Pool {
	p := &Pool{
		keys:  make([]Key, 0, len(reservedKeys)+64),
		tags:  make([]KeyTag, 0, len(reservedKeys)+64),
		data:  make([]Index, 0, len(reservedKeys)+64),
		cache: make(map[Key]Index, 64),
	}
	for _, k := range reservedKeys {
		p.internReserved(k)
	}
	return p
}

func (p *Pool) internReserved(k Key) Index {
	idx := Index(len(p.keys))
	p.keys = append(p.keys, k)
	p.tags = append(p.tags, k.Tag)
	p.data = append(p.data, 0)
	p.cache[k] = idx
	return idx
}

// IsKnownKey reports whether idx falls within the fixed primitive prefix.
func (p *Pool) IsKnownKey(idx Index) bool { return idx < Index(len(reservedKeys)) }

// Get returns the index of key if already interned, or NoIndex.
func (p *Pool) Get(key Key) (Index, bool) {
	idx, ok := p.cache[key]
	return idx, ok
}

// Put unconditionally interns key as a new entry, even if an identical
// key already exists (callers that need dedup should use GetOrPut).
func (p *Pool) Put(key Key) Index {
	idx := Index(len(p.keys))
	p.keys = append(p.keys, key)
	p.tags = append(p.tags, key.Tag)

	switch key.Tag {
	case TagTypeValue:
		p.data = append(p.data, p.pushExtra(Index(key.Ty), Index(key.Val)))
	case TagArrType:
		p.data = append(p.data, p.pushExtra(Index(key.Ty), Index(key.Len)))
	case TagBytes:
		p.data = append(p.data, p.pushExtra(Index(key.Ty), Index(key.ByteIndex)))
	case TagInt:
		p.data = append(p.data, p.pushExtra(Index(key.Ty), Index(key.Val)))
	default:
		p.data = append(p.data, 0)
	}

	p.cache[key] = idx
	return idx
}

func (p *Pool) pushExtra(a, b Index) Index {
	start := Index(len(p.extra))
	p.extra = append(p.extra, a, b)
	return start
}

// GetOrPut returns key's existing index, interning it if absent.
func (p *Pool) GetOrPut(key Key) Index {
	if idx, ok := p.cache[key]; ok {
		return idx
	}
	return p.Put(key)
}

// KeyAt returns the Key stored at idx.
func (p *Pool) KeyAt(idx Index) Key { return p.keys[idx] }

// TagAt returns the KeyTag stored at idx.
func (p *Pool) TagAt(idx Index) KeyTag { return p.tags[idx] }

// TypeOf returns the type an entry at idx carries, for the tags that
// name a type (TYPE_VALUE/ARR_TYPE/BYTES/INT); for a bare SIMPLE_TYPE
// entry, idx is already its own type.
func (p *Pool) TypeOf(idx Index) Index {
	switch p.tags[idx] {
	case TagSimpleType:
		return idx
	case TagTypeValue, TagArrType, TagBytes, TagInt:
		start := p.data[idx]
		return Index(p.extra[start])
	default:
		return NoIndex
	}
}

// TypeValueOf returns the (type, value) pair at idx. For an entry that
// names a bare type, Val is NoIndex (per the original's GetTypeValue
// contract).
func (p *Pool) TypeValueOf(idx Index) TypeValue {
	switch p.tags[idx] {
	case TagTypeValue, TagInt, TagBytes:
		start := p.data[idx]
		return TypeValue{Ty: Index(p.extra[start]), Val: Index(p.extra[start+1])}
	case TagArrType:
		start := p.data[idx]
		return TypeValue{Ty: Index(p.extra[start]), Val: NoIndex}
	default:
		return TypeValue{Ty: idx, Val: NoIndex}
	}
}

// AddByte appends a byte to the shared byte buffer (used for string and
// blob constants) and returns nothing; the caller records the starting
// offset itself via len(Bytes) before calling, mirroring Pool::AddByte.
func (p *Pool) AddByte(b byte) { p.Bytes = append(p.Bytes, b) }

// AddValue appends a 64-bit value (an integer constant's bit pattern, or
// a float's bit pattern) and returns its index.
func (p *Pool) AddValue(v uint64) Index {
	p.Values = append(p.Values, v)
	return Index(len(p.Values) - 1)
}

// AddString interns a string, returning its index in Strings (no dedup:
// string literals are positionally distinct compile-time values, unlike
// type/value keys).
func (p *Pool) AddString(s string) Index {
	p.Strings = append(p.Strings, s)
	return Index(len(p.Strings) - 1)
}
