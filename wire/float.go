package wire

import "github.com/hlparse/sendprop/bitstream"

// fracFactor returns 1 / 2^bits as a float32, the scale factor applied to a
// fixed-point fractional numerator in every float scheme below.
func fracFactor(bits int) float32 {
	return 1.0 / float32(uint32(1)<<uint(bits))
}

// ReadBitCoord reads the Source-engine "bit coord" float scheme (spec.md §4.4.2):
// two presence bits (has_int, has_frac), an optional sign bit, a 14-bit integer
// part (stored as value-1) when has_int is set, and a 5-bit fractional numerator
// when has_frac is set. Absent both presence bits, the value is 0.0.
func ReadBitCoord(r bitstream.Reader) (float32, error) {
	hasInt, err := r.ReadBool()
	if err != nil {
		return 0, err
	}

	hasFrac, err := r.ReadBool()
	if err != nil {
		return 0, err
	}

	if !hasInt && !hasFrac {
		return 0, nil
	}

	negative, err := r.ReadBool()
	if err != nil {
		return 0, err
	}

	var intVal float32
	if hasInt {
		v, err := r.ReadBits(14)
		if err != nil {
			return 0, err
		}
		intVal = float32(v) + 1
	}

	var fracVal float32
	if hasFrac {
		v, err := r.ReadBits(5)
		if err != nil {
			return 0, err
		}
		fracVal = float32(v) * fracFactor(5)
	}

	value := intVal + fracVal
	if negative {
		value = -value
	}

	return value, nil
}

// ReadBitCoordMP reads the multiplayer coord variant. When isIntegral is true the
// value carries no fractional component and the integer field is only read when
// has_int is set; otherwise the sign bit is read unconditionally and a fractional
// numerator (3 bits when lowPrecision, else 5 bits) always follows.
func ReadBitCoordMP(r bitstream.Reader, isIntegral, lowPrecision bool) (float32, error) {
	inBounds, err := r.ReadBool()
	if err != nil {
		return 0, err
	}

	hasInt, err := r.ReadBool()
	if err != nil {
		return 0, err
	}

	intBits := 14
	if inBounds {
		intBits = 11
	}

	var value float32
	var negative bool

	if isIntegral {
		if hasInt {
			negative, err = r.ReadBool()
			if err != nil {
				return 0, err
			}

			v, err := r.ReadBits(intBits)
			if err != nil {
				return 0, err
			}
			value = float32(v) + 1
		}
	} else {
		negative, err = r.ReadBool()
		if err != nil {
			return 0, err
		}

		if hasInt {
			v, err := r.ReadBits(intBits)
			if err != nil {
				return 0, err
			}
			value = float32(v) + 1
		}

		fracBits := 5
		if lowPrecision {
			fracBits = 3
		}

		fv, err := r.ReadBits(fracBits)
		if err != nil {
			return 0, err
		}
		value += float32(fv) * fracFactor(fracBits)
	}

	if negative {
		value = -value
	}

	return value, nil
}

// ReadBitNormal reads an 11-bit fractional numerator plus sign bit, used for
// NormalVarFloat (spec.md §4.4.2).
func ReadBitNormal(r bitstream.Reader) (float32, error) {
	negative, err := r.ReadBool()
	if err != nil {
		return 0, err
	}

	frac, err := r.ReadBits(11)
	if err != nil {
		return 0, err
	}

	value := float32(frac) * fracFactor(11)
	if negative {
		value = -value
	}

	return value, nil
}
