// Package sendtable implements the third layer of the subsystem: raw
// property metadata records as read from a send-table's bit stream, their
// identifier hashing, and the table-catalog contract used to resolve
// DataTable references.
//
// This mirrors mebo's section package — a flag-packed header struct read
// field-by-field from a buffer — generalized from mebo's fixed binary layout
// to the conditional, flag-dependent field sequence spec.md §4.2 describes.
package sendtable

import (
	"fmt"

	"github.com/hlparse/sendprop/bitstream"
	"github.com/hlparse/sendprop/errs"
	"github.com/hlparse/sendprop/format"
	"github.com/hlparse/sendprop/internal/hash"
)

// SendPropIdentifier is the 64-bit FNV-1a hash of a property's owner table
// name and its own name (spec.md §4.1), used as a stable key for indexing
// decoded values in a delta stream.
type SendPropIdentifier uint64

// RawSendPropDefinition is one property's metadata exactly as read from a
// send table's wire format, before refinement into a ParseDefinition
// (spec.md §3 "RawSendPropDefinition"). Every field beyond the mandatory
// four is optional and populated conditionally per §4.2; a nil pointer means
// "not present on the wire", not a zero value.
type RawSendPropDefinition struct {
	PropType   format.SendPropType
	Name       string
	OwnerTable string
	Flags      SendPropFlags

	TableName    *string
	LowValue     *float32
	HighValue    *float32
	BitCount     *uint32
	ElementCount *uint16

	// ArrayProperty is the element-type record for an Array prop, bound in a
	// second pass over the table's records (spec.md §4.2 "Binding the
	// array_property"). Nil until WithArrayProperty is called.
	ArrayProperty *RawSendPropDefinition
}

// Read parses one RawSendPropDefinition from r, following the bit-exact
// sequence of spec.md §4.2: a 5-bit prop_type, a null-terminated name, a
// 16-bit flags field, then a conditional tail chosen by prop_type and flags,
// followed by the NoScale bit-count promotion.
func Read(r bitstream.Reader, ownerTable string, opts ...Option) (RawSendPropDefinition, error) {
	cfg := newReadConfig(opts)

	rawType, err := r.ReadBits(5)
	if err != nil {
		return RawSendPropDefinition{}, err
	}

	propType := format.SendPropType(rawType)
	if !propType.Valid() {
		return RawSendPropDefinition{}, fmt.Errorf("%w: %d", errs.ErrInvalidSendPropType, rawType)
	}

	name, err := r.ReadCString()
	if err != nil {
		return RawSendPropDefinition{}, err
	}

	rawFlags, err := r.ReadBits(16)
	if err != nil {
		return RawSendPropDefinition{}, err
	}
	if cfg.strictFlags && rawExceedsRecognized(uint16(rawFlags)) { //nolint:gosec
		return RawSendPropDefinition{}, fmt.Errorf("%w: %#04x", errs.ErrUnrecognizedFlags, rawFlags)
	}
	flags := NewSendPropFlags(uint16(rawFlags)) //nolint:gosec

	def := RawSendPropDefinition{
		PropType:   propType,
		Name:       name,
		OwnerTable: ownerTable,
		Flags:      flags,
	}

	switch {
	case flags.Has(format.Exclude) || propType == format.DataTable:
		tableName, err := r.ReadCString()
		if err != nil {
			return RawSendPropDefinition{}, err
		}
		def.TableName = &tableName

	case propType == format.Array:
		count, err := r.ReadBits(10)
		if err != nil {
			return RawSendPropDefinition{}, err
		}
		elementCount := uint16(count) //nolint:gosec
		def.ElementCount = &elementCount

	default:
		low, err := r.ReadFloat32()
		if err != nil {
			return RawSendPropDefinition{}, err
		}
		def.LowValue = &low

		high, err := r.ReadFloat32()
		if err != nil {
			return RawSendPropDefinition{}, err
		}
		def.HighValue = &high

		bits, err := r.ReadBits(7)
		if err != nil {
			return RawSendPropDefinition{}, err
		}
		bitCount := uint32(bits)
		def.BitCount = &bitCount
	}

	if flags.Has(format.NoScale) {
		switch {
		case propType == format.Float:
			bitCount := uint32(32)
			def.BitCount = &bitCount
		case propType == format.Vector && !flags.Has(format.NormalVarInt):
			bitCount := uint32(32 * 3)
			def.BitCount = &bitCount
		}
	}

	return def, nil
}

// WithArrayProperty returns a copy of def with its ArrayProperty bound to
// inner, the "previous sibling" binding pass of spec.md §4.2.
func (def RawSendPropDefinition) WithArrayProperty(inner RawSendPropDefinition) RawSendPropDefinition {
	def.ArrayProperty = &inner

	return def
}

// Identifier returns the FNV-1a hash of def's owner table and name.
func (def RawSendPropDefinition) Identifier() SendPropIdentifier {
	return SendPropIdentifier(hash.ID(def.OwnerTable, def.Name))
}

// IsExclude reports whether def is an exclude record rather than a value
// property.
func (def RawSendPropDefinition) IsExclude() bool {
	return def.Flags.Has(format.Exclude)
}

// GetExcludeTable returns the table named by an exclude record, if def is
// one.
func (def RawSendPropDefinition) GetExcludeTable() (string, bool) {
	if !def.IsExclude() || def.TableName == nil {
		return "", false
	}

	return *def.TableName, true
}

// GetDataTable resolves def's DataTable reference against catalog. It
// returns false for any prop_type other than DataTable, matching the
// reference behavior of returning None outside that case regardless of
// whether TableName happens to be set.
func (def RawSendPropDefinition) GetDataTable(catalog SendTableCatalog) (RawSendTable, bool) {
	if def.PropType != format.DataTable || def.TableName == nil {
		return RawSendTable{}, false
	}

	return catalog.DataTable(*def.TableName)
}

// String renders def the way the reference parser's Display derive does
// (spec.md §8 "Display property").
func (def RawSendPropDefinition) String() string {
	switch def.PropType {
	case format.Vector, format.VectorXY:
		bits := uint32(96)
		if def.BitCount != nil {
			bits = *def.BitCount
		}

		return fmt.Sprintf("%s::%s(%s)(flags: %s, low: %s, high: %s, bits: %d)",
			def.OwnerTable, def.Name, def.PropType, def.Flags,
			formatOptionalFloat(def.LowValue), formatOptionalFloat(def.HighValue), bits/3)

	case format.Float:
		bits := uint32(32)
		if def.BitCount != nil {
			bits = *def.BitCount
		}

		return fmt.Sprintf("%s::%s(%s)(flags: %s, low: %s, high: %s, bits: %d)",
			def.OwnerTable, def.Name, def.PropType, def.Flags,
			formatOptionalFloat(def.LowValue), formatOptionalFloat(def.HighValue), bits)

	case format.Int:
		bits := uint32(32)
		if def.BitCount != nil {
			bits = *def.BitCount
		}

		return fmt.Sprintf("%s::%s(%s)(flags: %s, bits: %d)",
			def.OwnerTable, def.Name, def.PropType, def.Flags, bits)

	case format.String:
		return fmt.Sprintf("%s::%s(%s)", def.OwnerTable, def.Name, def.PropType)

	case format.Array:
		if def.ArrayProperty == nil {
			return fmt.Sprintf("%s(Malformed array)", def.Name)
		}

		var count uint16
		if def.ElementCount != nil {
			count = *def.ElementCount
		}

		return fmt.Sprintf("%s::%s([%s(%s)] * %d)",
			def.OwnerTable, def.Name, def.ArrayProperty.PropType, def.ArrayProperty.Flags, count)

	case format.DataTable:
		if def.TableName == nil {
			return fmt.Sprintf("%s(Malformed DataTable)", def.Name)
		}

		return fmt.Sprintf("%s::%s(DataTable = %s)", def.OwnerTable, def.Name, *def.TableName)

	default:
		return fmt.Sprintf("%s::%s(%s)", def.OwnerTable, def.Name, def.PropType)
	}
}

func formatOptionalFloat(v *float32) string {
	if v == nil {
		return "0"
	}

	return fmt.Sprintf("%g", *v)
}
