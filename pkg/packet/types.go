package packet

// Type tags a field with its wire representation. The set is closed: six
// fixed-width scalar encodings plus Bytes for raw regions. The zero value is
// deliberately invalid so that a Field that was never given a real type can
// not be decoded by accident; the codec panics on it instead of returning a
// silent zero.
type Type uint8

const (
	typeUnbound Type = iota // zero value, never a legal field type

	U8  // unsigned 8-bit
	I8  // signed 8-bit (two's complement)
	U16 // unsigned 16-bit
	I16 // signed 16-bit
	U32 // unsigned 32-bit
	I32 // signed 32-bit

	// Bytes is a raw byte region of explicit length, accessed by pointer
	// semantics (alias or copy), never decoded as an integer. Sub-regions
	// attach to Bytes fields only.
	Bytes
)

// Width returns the intrinsic width in bytes of a scalar type, or 0 for
// Bytes whose length is always supplied by the caller.
func (t Type) Width() int {
	switch t {
	case U8, I8:
		return 1
	case U16, I16:
		return 2
	case U32, I32:
		return 4
	case Bytes:
		return 0
	default:
		panic("packet: use of unbound field type")
	}
}

// Scalar reports whether the type decodes to an integer.
func (t Type) Scalar() bool {
	switch t {
	case U8, I8, U16, I16, U32, I32:
		return true
	case Bytes:
		return false
	default:
		panic("packet: use of unbound field type")
	}
}

// Signed reports whether scalar values of this type carry a sign. Signed
// types share the unsigned codec (the raw two's complement bit pattern moves
// through uint32); the tag drives display and caller-side casting.
func (t Type) Signed() bool {
	switch t {
	case I8, I16, I32:
		return true
	case U8, U16, U32, Bytes:
		return false
	default:
		panic("packet: use of unbound field type")
	}
}

// String returns the tag name used in dumps and snapshots.
func (t Type) String() string {
	switch t {
	case U8:
		return "u8"
	case I8:
		return "i8"
	case U16:
		return "u16"
	case I16:
		return "i16"
	case U32:
		return "u32"
	case I32:
		return "i32"
	case Bytes:
		return "bytes"
	default:
		return "unbound"
	}
}

// read decodes the scalar at off from buf according to the type width.
// Callers have already ruled out Bytes via Scalar().
func (t Type) read(buf *Buffer, off int) uint32 {
	switch t.Width() {
	case 1:
		return uint32(buf.Uint8(off))
	case 2:
		return uint32(buf.Uint16(off))
	case 4:
		return buf.Uint32(off)
	default:
		panic("packet: scalar read on non-scalar type")
	}
}

// write encodes v at off into buf, truncating to the type width.
func (t Type) write(buf *Buffer, off int, v uint32) {
	switch t.Width() {
	case 1:
		buf.PutUint8(off, uint8(v))
	case 2:
		buf.PutUint16(off, uint16(v))
	case 4:
		buf.PutUint32(off, v)
	default:
		panic("packet: scalar write on non-scalar type")
	}
}

// signExtend widens the width-byte value v to a signed 64-bit integer. Used by
// the formatter to display I8/I16/I32 fields as negative numbers.
func signExtend(v uint32, width int) int64 {
	shift := uint(64 - 8*width)
	return int64(uint64(v)<<shift) >> shift
}
