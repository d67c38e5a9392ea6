// Package types implements the content-addressed intern pool ("the Pool")
// that backs every type and compile-time value in the typed IR: primitive
// types/values occupy a fixed, compile-time-known prefix of indices, and
// everything else (array types, integer/byte constants) is
// deduplicated behind a Key->Index cache.
package types

// Index identifies an entry in the Pool. Index 0 is reserved for the NONE
// key, matching the arena convention used throughout this module.
type Index uint32

// NoIndex marks the absence of a pool entry.
const NoIndex Index = 0

// SimpleType enumerates the primitive types, in the exact ordinal spelling
// the original C++ `SimpleType` enum uses (values start at 1, matching the
// source's explicit `VOID = 1`).
type SimpleType uint32

const (
	SimpleNone SimpleType = iota
	SimpleVoid
	SimpleBool
	SimpleU8
	SimpleI8
	SimpleU16
	SimpleI16
	SimpleU32
	SimpleI32
	SimpleU64
	SimpleI64
	SimpleUsize
	SimpleIsize
	SimpleF16
	SimpleF32
	SimpleF64
	SimpleComptimeInt
	SimpleComptimeFloat
	SimpleChar
	SimpleStr
)

// SimpleValue enumerates the primitive compile-time constants.
type SimpleValue uint32

const (
	ValueNone SimpleValue = iota
	ValueZero
	ValueOne
	ValueNullPtr
	ValueTrue
	ValueFalse
)

// KeyTag discriminates the shape of a Key's payload.
type KeyTag uint8

const (
	TagNone KeyTag = iota
	TagSimpleType
	TagSimpleValue
	TagBytes
	TagTypeValue
	TagArrType
	TagInt
)

// Key is the content-addressed lookup key for a Pool entry: a tagged
// union mirroring PoolKey in the original implementation. Only the
// fields relevant to Tag are meaningful.
type Key struct {
	Tag KeyTag

	SimpleTy  SimpleType
	SimpleVal SimpleValue

	// Bytes: Ty = element type, ByteIndex = start offset into Pool.Bytes.
	Ty        Index
	ByteIndex Index

	// TypeValue: Ty, Val.
	Val Index

	// ArrType: Ty, Len. (Int uses Ty and Val, like TypeValue.)
	Len Index
}

func KeySimpleType(t SimpleType) Key  { return Key{Tag: TagSimpleType, SimpleTy: t} }
func KeySimpleValue(v SimpleValue) Key { return Key{Tag: TagSimpleValue, SimpleVal: v} }
func KeyTypeValue(ty, val Index) Key  { return Key{Tag: TagTypeValue, Ty: ty, Val: val} }
func KeyBytes(ty, start Index) Key    { return Key{Tag: TagBytes, Ty: ty, ByteIndex: start} }
func KeyArrType(ty, length Index) Key { return Key{Tag: TagArrType, Ty: ty, Len: length} }
func KeyInt(ty, valueIndex Index) Key { return Key{Tag: TagInt, Ty: ty, Val: valueIndex} }

// TypeValue is the (type, value) pair returned for a fully-resolved
// constant: Val is NoIndex when poolIndex itself names a bare type.
type TypeValue struct {
	Ty  Index
	Val Index
}
