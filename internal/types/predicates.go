package types

var unsignedIntIndices = map[Index]bool{U8Index: true, U16Index: true, U32Index: true, U64Index: true, UsizeIndex: true}
var signedIntIndices = map[Index]bool{I8Index: true, I16Index: true, I32Index: true, I64Index: true, IsizeIndex: true}
var floatIndices = map[Index]bool{F16Index: true, F32Index: true, F64Index: true, ComptimeFloatIndex: true}

// IsComptimeInt reports whether idx names the untyped integer-literal type.
func IsComptimeInt(idx Index) bool { return idx == ComptimeIntIndex }

// IsUnsignedInt reports whether idx names a fixed-width unsigned integer
// type (usize included, comptime_int excluded).
func IsUnsignedInt(idx Index) bool { return unsignedIntIndices[idx] }

// IsSignedInt reports whether idx names a fixed-width signed integer
// type (isize included, comptime_int excluded).
func IsSignedInt(idx Index) bool { return signedIntIndices[idx] }

// IsIntType reports whether idx names any integer type, including the
// untyped comptime_int.
func IsIntType(idx Index) bool { return IsUnsignedInt(idx) || IsSignedInt(idx) || IsComptimeInt(idx) }

// IsFloat reports whether idx names any floating-point type, including
// the untyped comptime_float.
func IsFloat(idx Index) bool { return floatIndices[idx] }

// IsNumeric reports whether idx names any integer or float type.
func IsNumeric(idx Index) bool { return IsIntType(idx) || IsFloat(idx) }

// IsPrimitive reports whether idx falls in the fixed primitive prefix.
func IsPrimitive(idx Index) bool { return idx < Index(len(reservedKeys)) }

// AreSame reports whether two pool indices name the same key.
func (p *Pool) AreSame(a, b Index) bool {
	if a == b {
		return true
	}
	return p.keys[a] == p.keys[b]
}

// CanCastInt reports whether an implicit (automatic) integer widening
// from `from` to `to` is allowed, per the original's canCastInt: a
// strictly-widening chain by bit width, never crossing between a fixed
// 64-bit type and anything else, and comptime_int casts to everything.
func CanCastInt(from, to Index) bool {
	if from == to || IsComptimeInt(from) {
		return true
	}
	switch from {
	case U8Index, I8Index:
		return isAnyOf(to, I16Index, U16Index, I32Index, U32Index, I64Index, U64Index)
	case U16Index, I16Index:
		return isAnyOf(to, I32Index, U32Index, I64Index, U64Index)
	case U32Index, I32Index:
		return isAnyOf(to, I64Index, U64Index)
	default:
		// u64, i64, usize, isize cannot be widened further automatically.
		return false
	}
}

func isAnyOf(v Index, opts ...Index) bool {
	for _, o := range opts {
		if v == o {
			return true
		}
	}
	return false
}
