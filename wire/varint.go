// Package wire implements the bit-exact numeric codecs layered on top of
// bitstream.Reader: the zig-zag/plain varint scheme and the three Source-engine
// float quantization schemes (bit-coord, bit-coord-mp, bit-normal).
//
// These are grounded in the reference parser's free functions of the same name
// (read_var_int, read_bit_coord, read_bit_coord_mp, read_bit_normal) and in the
// chunked bit-extraction style of mebo's internal Gorilla bitReader.
package wire

import "github.com/hlparse/sendprop/bitstream"

// ReadVarInt reads a variable-length integer: up to five groups of 7 payload bits
// (bit positions 0, 7, 14, 21, 28), each group's continuation flagged by the
// group byte's high bit. The accumulator is a 32-bit signed integer, so the fifth
// byte's bits beyond position 31 are silently discarded — this matches the
// reference implementation's i32 accumulator and is preserved intentionally
// (spec.md §9 open question).
//
// When signed is true the accumulated value is zig-zag decoded
// ((result >> 1) ^ -(result & 1)); otherwise it is returned as-is.
func ReadVarInt(r bitstream.Reader, signed bool) (int32, error) {
	var result int32

	for shift := uint(0); shift < 35; shift += 7 {
		b, err := r.ReadBits(8)
		if err != nil {
			return 0, err
		}

		result |= int32(b&0x7F) << shift //nolint:gosec

		if b&0x80 == 0 {
			break
		}
	}

	if signed {
		return (result >> 1) ^ -(result & 1), nil
	}

	return result, nil
}
