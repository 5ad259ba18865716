// Package sendprop implements the fourth and final layer of the subsystem:
// refining a sendtable.RawSendPropDefinition into a self-sufficient decode
// recipe, and executing that recipe against a bit stream to produce a typed
// SendPropValue.
//
// The dispatch-on-tagged-union style here mirrors mebo's blob.NumericDecoder
// — a struct that inspects a resolved header field and branches to one of
// several fixed decode paths, each returning a concrete numeric type.
package sendprop

import (
	"math/bits"

	"github.com/hlparse/sendprop/errs"
	"github.com/hlparse/sendprop/format"
	"github.com/hlparse/sendprop/sendtable"
)

// DefinitionKind discriminates the eight ParseDefinition variants of
// spec.md §3 "SendPropParseDefinition".
type DefinitionKind uint8

const (
	KindNormalVarInt DefinitionKind = iota
	KindUnsignedInt
	KindInt
	KindFloat
	KindString
	KindVector
	KindVectorXY
	KindArray
)

// ParseDefinition is the refined, self-sufficient decode recipe derived from
// a RawSendPropDefinition (spec.md §3). Only the fields relevant to Kind are
// meaningful; this flat-struct-plus-discriminant shape mirrors
// sendtable.RawSendPropDefinition rather than a Go interface, since every
// variant here is a plain data bag with no per-variant behavior beyond
// decode dispatch.
type ParseDefinition struct {
	Kind         DefinitionKind
	changesOften bool

	// NormalVarInt
	Unsigned bool

	// UnsignedInt, Int
	BitCount uint8

	// Float, Vector, VectorXY
	Float FloatDefinition

	// Array
	Inner         *ParseDefinition
	CountBitCount uint16
}

// ChangesOften reports whether the originating raw definition carried the
// ChangesOften flag.
func (d ParseDefinition) ChangesOften() bool {
	return d.changesOften
}

// NewParseDefinition refines raw into a ParseDefinition following the
// mapping of spec.md §4.3. It fails with a *MalformedDefinitionError wrapping
// one of errs.ErrUnsizedFloat, errs.ErrUnsizedArray, errs.ErrUntypedArray, or
// errs.ErrInvalidPropType when raw cannot produce a decodable recipe.
func NewParseDefinition(raw *sendtable.RawSendPropDefinition) (ParseDefinition, error) {
	changesOften := raw.Flags.Has(format.ChangesOften)

	if raw.Flags.Has(format.Exclude) {
		return ParseDefinition{}, malformed(raw.OwnerTable, raw.Name, errs.ErrInvalidPropType)
	}

	switch raw.PropType {
	case format.Int:
		switch {
		case raw.Flags.Has(format.NormalVarInt):
			return ParseDefinition{
				Kind:         KindNormalVarInt,
				changesOften: changesOften,
				Unsigned:     raw.Flags.Has(format.Unsigned),
			}, nil
		case raw.Flags.Has(format.Unsigned):
			return ParseDefinition{
				Kind:         KindUnsignedInt,
				changesOften: changesOften,
				BitCount:     bitCountOrDefault(raw.BitCount, 32),
			}, nil
		default:
			return ParseDefinition{
				Kind:         KindInt,
				changesOften: changesOften,
				BitCount:     bitCountOrDefault(raw.BitCount, 32),
			}, nil
		}

	case format.Float, format.Vector, format.VectorXY:
		floatDef, err := NewFloatDefinition(raw.Flags, raw.BitCount, raw.HighValue, raw.LowValue)
		if err != nil {
			return ParseDefinition{}, malformed(raw.OwnerTable, raw.Name, err)
		}

		kind := KindFloat
		if raw.PropType == format.Vector {
			kind = KindVector
		} else if raw.PropType == format.VectorXY {
			kind = KindVectorXY
		}

		return ParseDefinition{Kind: kind, changesOften: changesOften, Float: floatDef}, nil

	case format.String:
		return ParseDefinition{Kind: KindString, changesOften: changesOften}, nil

	case format.Array:
		if raw.ElementCount == nil {
			return ParseDefinition{}, malformed(raw.OwnerTable, raw.Name, errs.ErrUnsizedArray)
		}
		if raw.ArrayProperty == nil {
			return ParseDefinition{}, malformed(raw.OwnerTable, raw.Name, errs.ErrUntypedArray)
		}

		inner, err := NewParseDefinition(raw.ArrayProperty)
		if err != nil {
			return ParseDefinition{}, err
		}

		return ParseDefinition{
			Kind:          KindArray,
			changesOften:  changesOften,
			Inner:         &inner,
			CountBitCount: countBitCount(*raw.ElementCount),
		}, nil

	default:
		return ParseDefinition{}, malformed(raw.OwnerTable, raw.Name, errs.ErrInvalidPropType)
	}
}

func bitCountOrDefault(bitCount *uint32, def uint8) uint8 {
	if bitCount == nil {
		return def
	}

	return uint8(*bitCount) //nolint:gosec
}

// countBitCount computes floor(log2(elementCount)) + 1, the bit width needed
// to encode a run-time count up to elementCount (spec.md §4.3, §8 invariant).
// An elementCount of 0 still needs one bit to encode the only possible count.
func countBitCount(elementCount uint16) uint16 {
	if elementCount == 0 {
		return 1
	}

	return uint16(bits.Len16(elementCount)) //nolint:gosec
}
