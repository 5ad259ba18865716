package sendprop

import (
	"fmt"

	"github.com/hlparse/sendprop/bitstream"
	"github.com/hlparse/sendprop/sendtable"
)

// SendProp pairs a property's identifier with its decoded value (spec.md
// §3.1 "SendProp — the index/value pair"), the unit a caller stores per
// updated property in a delta.
type SendProp struct {
	Identifier sendtable.SendPropIdentifier
	Value      Value
}

// String renders "<identifier> = <value>".
func (p SendProp) String() string {
	return fmt.Sprintf("%d = %s", p.Identifier, p.Value)
}

// Parse refines raw into a ParseDefinition and decodes one value from r in a
// single call, for callers that don't need to cache the refined definition
// across repeated decodes of the same property (spec.md §0, the module-root
// convenience wrapper).
func Parse(r bitstream.Reader, raw *sendtable.RawSendPropDefinition, opts ...Option) (SendProp, error) {
	def, err := NewParseDefinition(raw)
	if err != nil {
		return SendProp{}, err
	}

	value, err := ParseValue(r, &def, opts...)
	if err != nil {
		return SendProp{}, err
	}

	return SendProp{Identifier: raw.Identifier(), Value: value}, nil
}
