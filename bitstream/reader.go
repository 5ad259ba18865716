// Package bitstream defines the bit-level reader contract consumed by the
// sendtable and sendprop packages, plus one concrete implementation.
//
// The rest of this subsystem is written against the Reader interface only — the
// demo-file container parser (out of scope here, per spec.md §1) is free to hand in
// any implementation backed by its own buffering strategy. LittleEndianReader is
// provided so the subsystem is independently usable and testable, mirroring how
// mebo's endian.EndianEngine is an interface satisfied by a concrete stdlib type
// rather than a struct its callers must construct directly.
package bitstream

import (
	"fmt"
	"math"

	"github.com/hlparse/sendprop/errs"
)

// Reader is the bit-level cursor contract every decode path in this subsystem is
// written against. All reads are little-endian at the bit level: within a byte, bit
// 0 is the least significant bit and is consumed first.
//
// Implementations must advance their internal cursor by exactly the number of bits
// requested on success, and must leave the cursor unmoved on error so a caller that
// chooses to abort and resynchronize elsewhere is not left in a partially-consumed
// field.
type Reader interface {
	// ReadBits reads n (0-64) bits and returns them right-aligned in a uint64.
	ReadBits(n int) (uint64, error)
	// ReadSignedBits reads n (1-32) bits and sign-extends the result from bit n-1,
	// returning a 32-bit two's-complement value.
	ReadSignedBits(n int) (int32, error)
	// ReadFloat32 reads 32 bits and reinterprets them as an IEEE-754 single.
	ReadFloat32() (float32, error)
	// ReadCString reads a null-terminated string of arbitrary length.
	ReadCString() (string, error)
	// ReadString reads n bytes (8*n bits) and returns them as a string verbatim;
	// the bytes are treated as opaque text, not validated as UTF-8.
	ReadString(n int) (string, error)
	// ReadBool reads a single bit as a boolean (1 = true).
	ReadBool() (bool, error)
}

// maxCStringLength bounds ReadCString against a stream that never supplies a
// terminating null byte. It does not appear in spec.md directly, but follows the
// same "every decode path consumes a bounded number of bits or fails" resource
// policy spec.md §5 states for array decoding.
const maxCStringLength = 1 << 16

// LittleEndianReader is a Reader backed by an in-memory byte slice.
//
// It maintains an absolute bit cursor over the slice; bit 0 of byte 0 is the first
// bit read. Reads that would run past the end of the slice fail with
// errs.ErrTruncatedRead and leave the cursor unchanged.
type LittleEndianReader struct {
	data   []byte
	bitPos int
}

var _ Reader = (*LittleEndianReader)(nil)

// NewLittleEndianReader creates a reader positioned at the start of data.
func NewLittleEndianReader(data []byte) *LittleEndianReader {
	return &LittleEndianReader{data: data}
}

// BitPosition returns the current absolute bit offset from the start of the
// underlying buffer. Useful for tests that assert a decode consumed exactly the
// expected number of bits (spec.md §5 ordering guarantee).
func (r *LittleEndianReader) BitPosition() int {
	return r.bitPos
}

func (r *LittleEndianReader) remainingBits() int {
	return len(r.data)*8 - r.bitPos
}

// ReadBits implements Reader.
func (r *LittleEndianReader) ReadBits(n int) (uint64, error) {
	if n < 0 || n > 64 {
		return 0, fmt.Errorf("%w: invalid bit width %d", errs.ErrOversizedField, n)
	}
	if n == 0 {
		return 0, nil
	}
	if r.remainingBits() < n {
		return 0, fmt.Errorf("%w: need %d bits, have %d", errs.ErrTruncatedRead, n, r.remainingBits())
	}

	var result uint64
	bitsRead := 0
	pos := r.bitPos
	for bitsRead < n {
		byteIdx := pos >> 3
		bitOffset := pos & 7
		avail := 8 - bitOffset
		take := n - bitsRead
		if take > avail {
			take = avail
		}

		mask := byte((1 << take) - 1)
		chunk := (r.data[byteIdx] >> bitOffset) & mask
		result |= uint64(chunk) << bitsRead

		bitsRead += take
		pos += take
	}

	r.bitPos = pos

	return result, nil
}

// ReadSignedBits implements Reader.
func (r *LittleEndianReader) ReadSignedBits(n int) (int32, error) {
	if n < 1 || n > 32 {
		return 0, fmt.Errorf("%w: invalid signed bit width %d", errs.ErrOversizedField, n)
	}

	raw, err := r.ReadBits(n)
	if err != nil {
		return 0, err
	}

	v := uint32(raw) //nolint:gosec
	if n < 32 && v&(1<<(n-1)) != 0 {
		v |= ^uint32(0) << n
	}

	return int32(v), nil //nolint:gosec
}

// ReadFloat32 implements Reader.
func (r *LittleEndianReader) ReadFloat32() (float32, error) {
	raw, err := r.ReadBits(32)
	if err != nil {
		return 0, err
	}

	return math.Float32frombits(uint32(raw)), nil
}

// ReadBool implements Reader.
func (r *LittleEndianReader) ReadBool() (bool, error) {
	bit, err := r.ReadBits(1)
	if err != nil {
		return false, err
	}

	return bit != 0, nil
}

// ReadString implements Reader.
func (r *LittleEndianReader) ReadString(n int) (string, error) {
	if n < 0 {
		return "", fmt.Errorf("%w: negative string length %d", errs.ErrOversizedField, n)
	}
	if n == 0 {
		return "", nil
	}
	if r.remainingBits() < n*8 {
		return "", fmt.Errorf("%w: need %d bytes, have %d", errs.ErrTruncatedRead, n, r.remainingBits()/8)
	}

	buf := make([]byte, n)
	for i := range buf {
		b, err := r.ReadBits(8)
		if err != nil {
			return "", err
		}
		buf[i] = byte(b)
	}

	return string(buf), nil
}

// ReadCString implements Reader.
func (r *LittleEndianReader) ReadCString() (string, error) {
	start := r.bitPos
	var buf []byte

	for len(buf) < maxCStringLength {
		b, err := r.ReadBits(8)
		if err != nil {
			r.bitPos = start
			return "", err
		}
		if b == 0 {
			return string(buf), nil
		}

		buf = append(buf, byte(b))
	}

	r.bitPos = start
	return "", fmt.Errorf("%w: null-terminated string exceeds %d bytes", errs.ErrOversizedField, maxCStringLength)
}
