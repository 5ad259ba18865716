package sendprop

import (
	"fmt"
	"strings"

	"github.com/hlparse/sendprop/bitstream"
	"github.com/hlparse/sendprop/wire"
)

// ValueKind discriminates the six SendPropValue variants of spec.md §3.
type ValueKind uint8

const (
	ValueInteger ValueKind = iota
	ValueFloat
	ValueString
	ValueVector
	ValueVectorXY
	ValueArray
)

// Value is a decoded property payload (spec.md §3 "SendPropValue"). Only the
// fields relevant to Kind are meaningful: Integer for ValueInteger, Float for
// ValueFloat, X/Y/Z for the vector kinds, Str for ValueString, Array for
// ValueArray.
type Value struct {
	Kind    ValueKind
	Integer int64
	Float   float32
	Str     string
	X, Y, Z float32
	Array   []Value
}

// IntegerValue constructs a ValueInteger.
func IntegerValue(v int64) Value { return Value{Kind: ValueInteger, Integer: v} }

// FloatValue constructs a ValueFloat.
func FloatValue(v float32) Value { return Value{Kind: ValueFloat, Float: v} }

// StringValue constructs a ValueString.
func StringValue(v string) Value { return Value{Kind: ValueString, Str: v} }

// VectorValue constructs a ValueVector.
func VectorValue(x, y, z float32) Value { return Value{Kind: ValueVector, X: x, Y: y, Z: z} }

// VectorXYValue constructs a ValueVectorXY.
func VectorXYValue(x, y float32) Value { return Value{Kind: ValueVectorXY, X: x, Y: y} }

// ArrayValue constructs a ValueArray.
func ArrayValue(v []Value) Value { return Value{Kind: ValueArray, Array: v} }

// ParseValue decodes one Value from r according to def (spec.md §4.4). Every
// read failure is wrapped in a *ParseError.
func ParseValue(r bitstream.Reader, def *ParseDefinition, opts ...Option) (Value, error) {
	cfg := newParseConfig(opts)

	switch def.Kind {
	case KindNormalVarInt:
		v, err := wire.ReadVarInt(r, !def.Unsigned)
		if err != nil {
			return Value{}, parseErr(err)
		}

		return IntegerValue(int64(v)), nil

	case KindUnsignedInt:
		raw, err := r.ReadBits(int(def.BitCount))
		if err != nil {
			return Value{}, parseErr(err)
		}

		return IntegerValue(int64(uint32(raw))), nil //nolint:gosec

	case KindInt:
		v, err := r.ReadSignedBits(int(def.BitCount))
		if err != nil {
			return Value{}, parseErr(err)
		}

		return IntegerValue(int64(v)), nil

	case KindFloat:
		f, err := readFloat(r, def.Float)
		if err != nil {
			return Value{}, err
		}

		return FloatValue(f), nil

	case KindString:
		length, err := r.ReadBits(9)
		if err != nil {
			return Value{}, parseErr(err)
		}

		text, err := r.ReadString(int(length))
		if err != nil {
			return Value{}, parseErr(err)
		}

		return StringValue(text), nil

	case KindVector:
		x, err := readFloat(r, def.Float)
		if err != nil {
			return Value{}, err
		}
		y, err := readFloat(r, def.Float)
		if err != nil {
			return Value{}, err
		}
		z, err := readFloat(r, def.Float)
		if err != nil {
			return Value{}, err
		}

		return VectorValue(x, y, z), nil

	case KindVectorXY:
		x, err := readFloat(r, def.Float)
		if err != nil {
			return Value{}, err
		}
		y, err := readFloat(r, def.Float)
		if err != nil {
			return Value{}, err
		}

		return VectorXYValue(x, y), nil

	case KindArray:
		count, err := r.ReadBits(int(def.CountBitCount))
		if err != nil {
			return Value{}, parseErr(err)
		}

		capacity := int(count)
		if capacity > cfg.maxArrayPreallocate {
			capacity = cfg.maxArrayPreallocate
		}

		values := make([]Value, 0, capacity)
		for i := uint64(0); i < count; i++ {
			v, err := ParseValue(r, def.Inner, opts...)
			if err != nil {
				return Value{}, err
			}

			values = append(values, v)
		}

		return ArrayValue(values), nil

	default:
		return Value{}, fmt.Errorf("sendprop: unknown definition kind %d", def.Kind)
	}
}

// readFloat dispatches to the wire package's float codec matching def.Kind.
func readFloat(r bitstream.Reader, def FloatDefinition) (float32, error) {
	switch def.Kind {
	case FloatCoord:
		v, err := wire.ReadBitCoord(r)
		return v, parseErr(err)
	case FloatCoordMP:
		v, err := wire.ReadBitCoordMP(r, false, false)
		return v, parseErr(err)
	case FloatCoordMPLowPrecision:
		v, err := wire.ReadBitCoordMP(r, false, true)
		return v, parseErr(err)
	case FloatCoordMPIntegral:
		v, err := wire.ReadBitCoordMP(r, true, false)
		return v, parseErr(err)
	case FloatNoScale:
		v, err := r.ReadFloat32()
		return v, parseErr(err)
	case FloatNormalVarFloat:
		v, err := wire.ReadBitNormal(r)
		return v, parseErr(err)
	case FloatScaled:
		raw, err := r.ReadBits(int(def.ScaledBitCount))
		if err != nil {
			return 0, parseErr(err)
		}

		denom := float32(uint64(1)<<def.ScaledBitCount) - 1
		percentage := float32(raw) / denom

		return def.ScaledLow + (def.ScaledHigh-def.ScaledLow)*percentage, nil
	default:
		return 0, fmt.Errorf("sendprop: unknown float kind %d", def.Kind)
	}
}

// String renders v the way the reference parser's Display derive does: a
// vector/scalar/string is rendered plainly, an array is its children
// concatenated with no separator inside brackets (spec.md §6 Display list).
func (v Value) String() string {
	switch v.Kind {
	case ValueInteger:
		return fmt.Sprintf("%d", v.Integer)
	case ValueFloat:
		return fmt.Sprintf("%g", v.Float)
	case ValueString:
		return v.Str
	case ValueVector:
		return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
	case ValueVectorXY:
		return fmt.Sprintf("(%g, %g)", v.X, v.Y)
	case ValueArray:
		var b strings.Builder
		b.WriteByte('[')
		for _, child := range v.Array {
			b.WriteString(child.String())
		}
		b.WriteByte(']')

		return b.String()
	default:
		return "<invalid>"
	}
}

// Equal implements the lenient, intentionally asymmetric equality relation
// of spec.md §4.5. It is used by tests and tooling, never by the decoder
// itself. Two Float values compare with the one-sided tolerance
// v.Float-other.Float < 0.001 preserved from the reference implementation
// (spec.md §9), so Float-vs-Float equality is neither symmetric nor
// transitive; every other pairing is checked the same way in both orders.
func (v Value) Equal(other Value) bool {
	switch {
	case v.Kind == ValueVector && other.Kind == ValueVector:
		return v.X == other.X && v.Y == other.Y && v.Z == other.Z
	case v.Kind == ValueVectorXY && other.Kind == ValueVectorXY:
		return v.X == other.X && v.Y == other.Y
	case v.Kind == ValueInteger && other.Kind == ValueInteger:
		return v.Integer == other.Integer
	case v.Kind == ValueFloat && other.Kind == ValueFloat:
		return v.Float-other.Float < 0.001
	case v.Kind == ValueString && other.Kind == ValueString:
		return v.Str == other.Str
	case v.Kind == ValueArray && other.Kind == ValueArray:
		return equalArrays(v.Array, other.Array)

	case v.Kind == ValueInteger && other.Kind == ValueFloat:
		return float64(v.Integer) == float64(other.Float)
	case v.Kind == ValueFloat && other.Kind == ValueInteger:
		return float64(v.Float) == float64(other.Integer)

	case v.Kind == ValueVector && other.Kind == ValueVectorXY:
		return v.X == other.X && v.Y == other.Y && v.Z == 0
	case v.Kind == ValueVectorXY && other.Kind == ValueVector:
		return v.X == other.X && v.Y == other.Y && other.Z == 0

	case v.Kind == ValueVector && other.Kind == ValueArray && len(other.Array) == 3:
		return FloatValue(v.X).Equal(other.Array[0]) &&
			FloatValue(v.Y).Equal(other.Array[1]) &&
			FloatValue(v.Z).Equal(other.Array[2])
	case v.Kind == ValueArray && other.Kind == ValueVector && len(v.Array) == 3:
		return FloatValue(other.X).Equal(v.Array[0]) &&
			FloatValue(other.Y).Equal(v.Array[1]) &&
			FloatValue(other.Z).Equal(v.Array[2])

	case v.Kind == ValueVectorXY && other.Kind == ValueArray && len(other.Array) == 2:
		return FloatValue(v.X).Equal(other.Array[0]) && FloatValue(v.Y).Equal(other.Array[1])
	case v.Kind == ValueArray && other.Kind == ValueVectorXY && len(v.Array) == 2:
		return FloatValue(other.X).Equal(v.Array[0]) && FloatValue(other.Y).Equal(v.Array[1])

	default:
		return false
	}
}

func equalArrays(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}

	return true
}
