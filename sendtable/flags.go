package sendtable

import (
	"strings"

	"github.com/hlparse/sendprop/format"
)

// SendPropFlags is an opaque 16-bit mask of recognized format.SendPropFlag bits
// (spec.md §3, §9 "Flag storage"). The raw integer is never exposed; callers
// test membership with Has and combine flags with With.
type SendPropFlags struct {
	mask format.SendPropFlag
}

// NewSendPropFlags builds a SendPropFlags from a raw 16-bit wire value,
// silently dropping any bit not in format.RecognizedFlagsMask (spec.md §3,
// forward compatibility).
func NewSendPropFlags(raw uint16) SendPropFlags {
	return SendPropFlags{mask: format.SendPropFlag(raw) & format.RecognizedFlagsMask}
}

// Has reports whether flag is set.
func (f SendPropFlags) Has(flag format.SendPropFlag) bool {
	return f.mask&flag != 0
}

// With returns a copy of f with flag set.
func (f SendPropFlags) With(flag format.SendPropFlag) SendPropFlags {
	return SendPropFlags{mask: f.mask | flag}
}

// rawExceedsRecognized reports whether raw carried any bit
// outside the recognized set, used by WithStrictFlags to reject such records
// instead of silently masking them.
func rawExceedsRecognized(raw uint16) bool {
	return format.SendPropFlag(raw)&^format.RecognizedFlagsMask != 0
}

// String renders the set flags as "[FlagA | FlagB]" in declaration order
// (spec.md §9 "Display of flags"), or "[]" when no recognized flag is set.
func (f SendPropFlags) String() string {
	var names []string
	for _, entry := range format.AllFlags {
		if f.Has(entry.Flag) {
			names = append(names, entry.Name)
		}
	}

	return "[" + strings.Join(names, " | ") + "]"
}
