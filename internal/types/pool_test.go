package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lukide0/Koolang-old/internal/types"
)

func TestReservedPrefixOrder(t *testing.T) {
	p := types.NewPool()
	assert.Equal(t, types.SimpleVoid, p.KeyAt(types.VoidIndex).SimpleTy)
	assert.Equal(t, types.SimpleBool, p.KeyAt(types.BoolIndex).SimpleTy)
	assert.Equal(t, types.SimpleStr, p.KeyAt(types.StrIndex).SimpleTy)
	assert.Equal(t, types.SimpleChar, p.KeyAt(types.CharIndex).SimpleTy)
	assert.Equal(t, types.SimpleU8, p.KeyAt(types.U8Index).SimpleTy)
	assert.Equal(t, types.SimpleIsize, p.KeyAt(types.IsizeIndex).SimpleTy)
	assert.Equal(t, types.SimpleComptimeInt, p.KeyAt(types.ComptimeIntIndex).SimpleTy)
	assert.Equal(t, types.SimpleComptimeFloat, p.KeyAt(types.ComptimeFloatIndex).SimpleTy)
	assert.Equal(t, types.ValueZero, p.KeyAt(types.ZeroIndex).SimpleVal)
	assert.Equal(t, types.ValueFalse, p.KeyAt(types.FalseIndex).SimpleVal)
}

func TestGetOrPutDedups(t *testing.T) {
	p := types.NewPool()
	k := types.KeyArrType(types.U8Index, 4)
	a := p.GetOrPut(k)
	b := p.GetOrPut(k)
	assert.Equal(t, a, b)

	other := p.GetOrPut(types.KeyArrType(types.U8Index, 8))
	assert.NotEqual(t, a, other)
}

func TestTypeValueOfArrType(t *testing.T) {
	p := types.NewPool()
	idx := p.GetOrPut(types.KeyArrType(types.U32Index, 10))
	assert.Equal(t, types.U32Index, p.TypeOf(idx))
	tv := p.TypeValueOf(idx)
	assert.Equal(t, types.U32Index, tv.Ty)
	assert.Equal(t, types.NoIndex, tv.Val)
}

func TestCanCastIntWidening(t *testing.T) {
	assert.True(t, types.CanCastInt(types.U8Index, types.U32Index))
	assert.True(t, types.CanCastInt(types.ComptimeIntIndex, types.I8Index))
	assert.False(t, types.CanCastInt(types.U32Index, types.U8Index))
	assert.False(t, types.CanCastInt(types.U64Index, types.I64Index))
}

func TestCanFitInt(t *testing.T) {
	assert.True(t, types.CanFitInt(types.U8Index, 255))
	assert.False(t, types.CanFitInt(types.U8Index, 256))
	assert.True(t, types.CanFitInt(types.I8Index, uint64(int64(-128))))
	assert.False(t, types.CanFitInt(types.I8Index, uint64(int64(-129))))
}

func TestAddSignedOverflow(t *testing.T) {
	maxI64 := uint64(1<<63 - 1)
	r := types.AddSigned(maxI64, 1)
	require.Equal(t, types.Overflow, r.State)

	r2 := types.AddSigned(2, 3)
	require.Equal(t, types.Ok, r2.State)
	assert.Equal(t, uint64(5), r2.Value)
}

func TestAddUnsignedOverflow(t *testing.T) {
	r := types.AddUnsigned(^uint64(0), 1)
	assert.Equal(t, types.Overflow, r.State)
}

func TestDivModSigned(t *testing.T) {
	r := types.DivSigned(uint64(int64(-7)), uint64(int64(2)))
	assert.Equal(t, int64(-3), int64(r.Value))
	m := types.ModSigned(uint64(int64(-7)), uint64(int64(2)))
	assert.Equal(t, int64(-1), int64(m.Value))
}
