package sendprop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hlparse/sendprop/errs"
	"github.com/hlparse/sendprop/format"
	"github.com/hlparse/sendprop/sendtable"
)

func TestNewFloatDefinitionPrecedence(t *testing.T) {
	bc := uint32(8)
	high := float32(1)
	low := float32(-1)

	tests := []struct {
		name  string
		flags format.SendPropFlag
		want  FloatKind
	}{
		{"coord wins over everything", format.Coord | format.CoordMP | format.NoScale, FloatCoord},
		{"coordMP wins over lower-precedence flags", format.CoordMP | format.CoordMPLowPrecision | format.NoScale, FloatCoordMP},
		{"coordMP low precision", format.CoordMPLowPrecision | format.CoordMPIntegral | format.NoScale, FloatCoordMPLowPrecision},
		{"coordMP integral", format.CoordMPIntegral | format.NoScale, FloatCoordMPIntegral},
		{"no scale", format.NoScale | format.NormalVarInt, FloatNoScale},
		{"normal var int (float context)", format.NormalVarInt, FloatNormalVarFloat},
		{"scaled, no flags", 0, FloatScaled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := NewFloatDefinition(sendtable.NewSendPropFlags(uint16(tt.flags)), &bc, &high, &low)
			require.NoError(t, err)
			assert.Equal(t, tt.want, def.Kind)
		})
	}
}

func TestNewFloatDefinitionScaledRequiresAllThreeFields(t *testing.T) {
	bc := uint32(8)
	high := float32(1)
	low := float32(-1)

	tests := []struct {
		name      string
		bitCount  *uint32
		high, low *float32
	}{
		{"missing bit_count", nil, &high, &low},
		{"missing high", &bc, nil, &low},
		{"missing low", &bc, &high, nil},
		{"missing all three", nil, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFloatDefinition(sendtable.NewSendPropFlags(0), tt.bitCount, tt.high, tt.low)
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrUnsizedFloat)
		})
	}
}

func TestNewFloatDefinitionScaledCapturesFields(t *testing.T) {
	bc := uint32(8)
	high := float32(1)
	low := float32(-1)

	def, err := NewFloatDefinition(sendtable.NewSendPropFlags(0), &bc, &high, &low)
	require.NoError(t, err)
	assert.Equal(t, FloatScaled, def.Kind)
	assert.Equal(t, uint8(8), def.ScaledBitCount)
	assert.InDelta(t, float32(1), def.ScaledHigh, 1e-6)
	assert.InDelta(t, float32(-1), def.ScaledLow, 1e-6)
}
