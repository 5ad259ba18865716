package sendprop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hlparse/sendprop/bitstream"
)

// bitWriter is a tiny test-only helper building a bit stream field by field,
// matching bitstream.LittleEndianReader's bit-assembly order: each field's
// bits are supplied least-significant-bit first via bits(v, n).
type bitWriter struct {
	seq []byte
}

func newBitWriter() *bitWriter { return &bitWriter{} }

func (w *bitWriter) bits(v uint64, n int) *bitWriter {
	for i := 0; i < n; i++ {
		w.seq = append(w.seq, byte((v>>uint(i))&1))
	}

	return w
}

func (w *bitWriter) reader() *bitstream.LittleEndianReader {
	numBytes := (len(w.seq) + 7) / 8
	data := make([]byte, numBytes)
	for i, b := range w.seq {
		if b != 0 {
			data[i/8] |= 1 << uint(i%8)
		}
	}

	return bitstream.NewLittleEndianReader(data)
}

func TestParseValueUnsignedInt(t *testing.T) {
	// spec.md §8 scenario 1: UnsignedInt{bit_count: 8}, bits 01010101 -> Integer(85).
	w := newBitWriter().bits(0b01010101, 8)
	def := ParseDefinition{Kind: KindUnsignedInt, BitCount: 8}

	v, err := ParseValue(w.reader(), &def)
	require.NoError(t, err)
	assert.Equal(t, IntegerValue(85), v)
}

func TestParseValueArrayOfUnsignedInt(t *testing.T) {
	// spec.md §8 scenario 5: Array{count_bit_count: 2, inner: UnsignedInt{8}},
	// bits 11, 00000001, 00000010, 00000011 -> Array([1, 2, 3]).
	w := newBitWriter().
		bits(3, 2).
		bits(1, 8).
		bits(2, 8).
		bits(3, 8)

	inner := ParseDefinition{Kind: KindUnsignedInt, BitCount: 8}
	def := ParseDefinition{Kind: KindArray, CountBitCount: 2, Inner: &inner}

	v, err := ParseValue(w.reader(), &def)
	require.NoError(t, err)
	assert.Equal(t, ValueArray, v.Kind)
	require.Len(t, v.Array, 3)
	assert.True(t, v.Equal(ArrayValue([]Value{IntegerValue(1), IntegerValue(2), IntegerValue(3)})))
}

func TestParseValueInt(t *testing.T) {
	minusFive := int32(-5)
	w := newBitWriter().bits(uint64(uint32(minusFive))&0x7F, 7)
	def := ParseDefinition{Kind: KindInt, BitCount: 7}

	v, err := ParseValue(w.reader(), &def)
	require.NoError(t, err)
	assert.Equal(t, IntegerValue(-5), v)
}

func TestParseValueNormalVarInt(t *testing.T) {
	// a varint-encoded small unsigned value: 5 fits in one byte with
	// continuation bit 0 and no zig-zag step, so the raw byte is just 5.
	w := newBitWriter().bits(5, 8)
	def := ParseDefinition{Kind: KindNormalVarInt, Unsigned: true}

	v, err := ParseValue(w.reader(), &def)
	require.NoError(t, err)
	assert.Equal(t, IntegerValue(5), v)
}

func TestParseValueFloatNoScale(t *testing.T) {
	w := newBitWriter().bits(0x3F800000, 32) // 1.0
	def := ParseDefinition{Kind: KindFloat, Float: FloatDefinition{Kind: FloatNoScale}}

	v, err := ParseValue(w.reader(), &def)
	require.NoError(t, err)
	assert.Equal(t, ValueFloat, v.Kind)
	assert.InDelta(t, float32(1), v.Float, 1e-6)
}

func TestParseValueFloatScaled(t *testing.T) {
	// 8-bit scaled field, raw 255 (max) over range [-1, 1] -> 1.0.
	w := newBitWriter().bits(255, 8)
	def := ParseDefinition{
		Kind: KindFloat,
		Float: FloatDefinition{
			Kind:           FloatScaled,
			ScaledBitCount: 8,
			ScaledLow:      -1,
			ScaledHigh:     1,
		},
	}

	v, err := ParseValue(w.reader(), &def)
	require.NoError(t, err)
	assert.InDelta(t, float32(1), v.Float, 1e-4)
}

func TestParseValueVector(t *testing.T) {
	w := newBitWriter().
		bits(0x3F800000, 32). // x = 1.0
		bits(0x40000000, 32). // y = 2.0
		bits(0x40400000, 32)  // z = 3.0
	def := ParseDefinition{Kind: KindVector, Float: FloatDefinition{Kind: FloatNoScale}}

	v, err := ParseValue(w.reader(), &def)
	require.NoError(t, err)
	assert.Equal(t, ValueVector, v.Kind)
	assert.InDelta(t, float32(1), v.X, 1e-6)
	assert.InDelta(t, float32(2), v.Y, 1e-6)
	assert.InDelta(t, float32(3), v.Z, 1e-6)
}

func TestParseValueVectorXY(t *testing.T) {
	w := newBitWriter().
		bits(0x3F800000, 32). // x = 1.0
		bits(0x40000000, 32)  // y = 2.0
	def := ParseDefinition{Kind: KindVectorXY, Float: FloatDefinition{Kind: FloatNoScale}}

	v, err := ParseValue(w.reader(), &def)
	require.NoError(t, err)
	assert.Equal(t, ValueVectorXY, v.Kind)
	assert.InDelta(t, float32(1), v.X, 1e-6)
	assert.InDelta(t, float32(2), v.Y, 1e-6)
}

func TestParseValueString(t *testing.T) {
	w := newBitWriter().
		bits(2, 9). // length prefix: 2 bytes
		bits('h', 8).
		bits('i', 8)
	def := ParseDefinition{Kind: KindString}

	v, err := ParseValue(w.reader(), &def)
	require.NoError(t, err)
	assert.Equal(t, StringValue("hi"), v)
}

func TestParseValueArrayPreallocateClampDoesNotAffectLength(t *testing.T) {
	w := newBitWriter().bits(3, 2).bits(1, 8).bits(2, 8).bits(3, 8)

	inner := ParseDefinition{Kind: KindUnsignedInt, BitCount: 8}
	def := ParseDefinition{Kind: KindArray, CountBitCount: 2, Inner: &inner}

	v, err := ParseValue(w.reader(), &def, WithMaxArrayPreallocate(1))
	require.NoError(t, err)
	assert.Len(t, v.Array, 3)
}

func TestValueEqualSameVariant(t *testing.T) {
	assert.True(t, IntegerValue(5).Equal(IntegerValue(5)))
	assert.False(t, IntegerValue(5).Equal(IntegerValue(6)))
	assert.True(t, StringValue("a").Equal(StringValue("a")))
	assert.True(t, VectorValue(1, 2, 3).Equal(VectorValue(1, 2, 3)))
	assert.True(t, VectorXYValue(1, 2).Equal(VectorXYValue(1, 2)))
}

func TestValueEqualIntegerFloatCrossVariantIsSymmetric(t *testing.T) {
	a := IntegerValue(5)
	b := FloatValue(5)

	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
}

func TestValueEqualVectorVectorXYCrossVariantIsSymmetric(t *testing.T) {
	vec := VectorValue(1, 2, 0)
	xy := VectorXYValue(1, 2)

	assert.True(t, vec.Equal(xy))
	assert.True(t, xy.Equal(vec))

	nonZero := VectorValue(1, 2, 3)
	assert.False(t, nonZero.Equal(xy))
	assert.False(t, xy.Equal(nonZero))
}

func TestValueEqualVectorArrayCrossVariantIsSymmetric(t *testing.T) {
	vec := VectorValue(1, 2, 3)
	arr := ArrayValue([]Value{FloatValue(1), FloatValue(2), FloatValue(3)})

	assert.True(t, vec.Equal(arr))
	assert.True(t, arr.Equal(vec))
}

func TestValueEqualVectorXYArrayCrossVariantIsSymmetric(t *testing.T) {
	xy := VectorXYValue(1, 2)
	arr := ArrayValue([]Value{FloatValue(1), FloatValue(2)})

	assert.True(t, xy.Equal(arr))
	assert.True(t, arr.Equal(xy))
}

func TestValueEqualIsNotTransitive(t *testing.T) {
	// spec.md §9: the one-sided float tolerance in Equal (a - b < 0.001) is
	// not transitive across a chain. a - b and b - c are each about 0.0009,
	// so a.Equal(b) and b.Equal(c) hold, but a - c is about 0.0018, so
	// a.Equal(c) is false despite a.Equal(b) && b.Equal(c).
	a := FloatValue(1.0018)
	b := FloatValue(1.0009)
	c := FloatValue(1.0)

	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(c))
	assert.False(t, a.Equal(c))
}

func TestValueStringDisplay(t *testing.T) {
	assert.Equal(t, "5", IntegerValue(5).String())
	assert.Equal(t, "hi", StringValue("hi").String())
	assert.Equal(t, "[123]", ArrayValue([]Value{IntegerValue(1), IntegerValue(2), IntegerValue(3)}).String())
}
