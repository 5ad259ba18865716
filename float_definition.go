package sendprop

import (
	"fmt"

	"github.com/hlparse/sendprop/errs"
	"github.com/hlparse/sendprop/format"
	"github.com/hlparse/sendprop/sendtable"
)

// FloatKind discriminates the seven float quantization schemes spec.md §4.3
// selects between.
type FloatKind uint8

const (
	FloatCoord FloatKind = iota
	FloatCoordMP
	FloatCoordMPLowPrecision
	FloatCoordMPIntegral
	FloatNoScale
	FloatNormalVarFloat
	FloatScaled
)

// FloatDefinition is the resolved float codec for a Float, Vector, or
// VectorXY property (spec.md §3 "FloatDefinition"). ScaledBitCount,
// ScaledHigh, and ScaledLow are only meaningful when Kind is FloatScaled.
type FloatDefinition struct {
	Kind           FloatKind
	ScaledBitCount uint8
	ScaledHigh     float32
	ScaledLow      float32
}

// NewFloatDefinition selects a FloatDefinition by the first-match precedence
// order of spec.md §4.3: Coord, CoordMP, CoordMPLowPrecision, CoordMPIntegral,
// NoScale, NormalVarInt, Scaled. The first six are flag-driven and ignore the
// numeric fields entirely; Scaled requires all three of bitCount, high, and
// low, failing with errs.ErrUnsizedFloat if any is absent.
func NewFloatDefinition(flags sendtable.SendPropFlags, bitCount *uint32, high, low *float32) (FloatDefinition, error) {
	switch {
	case flags.Has(format.Coord):
		return FloatDefinition{Kind: FloatCoord}, nil
	case flags.Has(format.CoordMP):
		return FloatDefinition{Kind: FloatCoordMP}, nil
	case flags.Has(format.CoordMPLowPrecision):
		return FloatDefinition{Kind: FloatCoordMPLowPrecision}, nil
	case flags.Has(format.CoordMPIntegral):
		return FloatDefinition{Kind: FloatCoordMPIntegral}, nil
	case flags.Has(format.NoScale):
		return FloatDefinition{Kind: FloatNoScale}, nil
	case flags.Has(format.NormalVarInt):
		return FloatDefinition{Kind: FloatNormalVarFloat}, nil
	case bitCount != nil && high != nil && low != nil:
		return FloatDefinition{
			Kind:           FloatScaled,
			ScaledBitCount: uint8(*bitCount), //nolint:gosec
			ScaledHigh:     *high,
			ScaledLow:      *low,
		}, nil
	default:
		return FloatDefinition{}, errs.ErrUnsizedFloat
	}
}

// String renders the scheme name, using "Scaled(bits, low, high)" for the
// numeric variant since it has no fixed shape to name alone.
func (d FloatDefinition) String() string {
	switch d.Kind {
	case FloatCoord:
		return "Coord"
	case FloatCoordMP:
		return "CoordMP"
	case FloatCoordMPLowPrecision:
		return "CoordMPLowPrecision"
	case FloatCoordMPIntegral:
		return "CoordMPIntegral"
	case FloatNoScale:
		return "FloatNoScale"
	case FloatNormalVarFloat:
		return "NormalVarFloat"
	case FloatScaled:
		return fmt.Sprintf("Scaled(bits: %d, low: %g, high: %g)", d.ScaledBitCount, d.ScaledLow, d.ScaledHigh)
	default:
		return "Unknown"
	}
}
