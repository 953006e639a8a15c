package packet

import (
	"encoding/binary"
	"fmt"
)

// Buffer is a view over a caller-owned byte region together with the byte
// order used to encode multi-byte scalars. The package never allocates,
// frees or grows the region; the caller keeps ownership and the bytes in it
// are exactly the wire representation.
//
// Accessors do not bounds-check beyond what the underlying slice enforces:
// the caller guarantees offset+width <= Cap(). A violated guarantee panics,
// it is a programming error rather than a recoverable condition.
type Buffer struct {
	data  []byte
	order binary.ByteOrder
}

// NewBuffer wraps data with the given byte order.
func NewBuffer(data []byte, order binary.ByteOrder) (*Buffer, error) {
	b := &Buffer{}
	if err := b.Rebind(data, order); err != nil {
		return nil, err
	}
	return b, nil
}

// Rebind points the view at a new region. The previous region is untouched.
func (b *Buffer) Rebind(data []byte, order binary.ByteOrder) error {
	if len(data) == 0 {
		return fmt.Errorf("packet: rebind with nil or empty buffer: %w", ErrBadParameter)
	}
	if order == nil {
		return fmt.Errorf("packet: rebind with nil byte order: %w", ErrBadParameter)
	}
	b.data = data
	b.order = order
	return nil
}

// Cap returns the capacity of the region in bytes.
func (b *Buffer) Cap() int { return len(b.data) }

// Order returns the byte order used for 2- and 4-byte scalars.
func (b *Buffer) Order() binary.ByteOrder { return b.order }

// SetOrder switches the byte order. Affects the scalar codec only; the
// bytes already in the region are reinterpreted, not rewritten.
func (b *Buffer) SetOrder(order binary.ByteOrder) {
	if order != nil {
		b.order = order
	}
}

// Uint8 reads the byte at off.
func (b *Buffer) Uint8(off int) uint8 { return b.data[off] }

// Uint16 reads two bytes at off in the buffer's byte order.
func (b *Buffer) Uint16(off int) uint16 { return b.order.Uint16(b.data[off:]) }

// Uint32 reads four bytes at off in the buffer's byte order.
func (b *Buffer) Uint32(off int) uint32 { return b.order.Uint32(b.data[off:]) }

// PutUint8 stores a single byte at off.
func (b *Buffer) PutUint8(off int, v uint8) { b.data[off] = v }

// PutUint16 stores two bytes at off in the buffer's byte order.
func (b *Buffer) PutUint16(off int, v uint16) { b.order.PutUint16(b.data[off:], v) }

// PutUint32 stores four bytes at off in the buffer's byte order.
func (b *Buffer) PutUint32(off int, v uint32) { b.order.PutUint32(b.data[off:], v) }

// Bytes returns the n bytes starting at off without copying. Writes through
// the returned slice are writes into the region.
func (b *Buffer) Bytes(off, n int) []byte { return b.data[off : off+n : off+n] }

// shrink caps the region at n bytes. Grow-back is not possible; layouts only
// ever reduce their view, typically after sizing a sub-region to content.
func (b *Buffer) shrink(n int) {
	if n >= 0 && n < len(b.data) {
		b.data = b.data[:n]
	}
}
