package sendtable

import "github.com/hlparse/sendprop/format"

// BindArrayProperties walks props in wire order and binds each Array record
// to the immediately preceding record as its element definition — the
// "previous sibling in the same table" policy of spec.md §4.2. Records are
// returned in the same order and count; an Array record with no preceding
// sibling is left unbound (ArrayProperty stays nil), which NewParseDefinition
// later reports as errs.ErrUntypedArray.
func BindArrayProperties(props []RawSendPropDefinition) []RawSendPropDefinition {
	bound := make([]RawSendPropDefinition, len(props))
	copy(bound, props)

	for i := 1; i < len(bound); i++ {
		if bound[i].PropType == format.Array {
			bound[i] = bound[i].WithArrayProperty(bound[i-1])
		}
	}

	return bound
}
