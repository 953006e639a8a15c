// Package packet overlays named, typed fields on a raw byte buffer.
//
// The buffer carries no schema: a Packet is only a parsing/building template
// held next to the bytes, so the encoded region stays byte-identical to the
// target protocol. Fields are appended in declaration order and packed, each
// one starting where the previous ended.
//
// Example (GPS Initialise Data Source, packet id 128, sent over serial):
//
//	Offset  Size  Field
//	------  ----  -----
//	0       1     Packet ID
//	1       4     ECEF X
//	5       4     ECEF Y
//	9       4     ECEF Z
//	13      4     Clock Offset
//	17      4     Time of Week
//	21      2     Week Number
//	23      1     Channels
//	24      1     Reset Config
//
//	buf := make([]byte, 25)
//	p, _ := packet.New(buf, binary.BigEndian)
//	p.AddField("Packet ID", packet.U8)
//	p.AddField("ECEF X", packet.U32)
//	// ...
//	p.SetUint("Time of Week", 0xFFEB3FE3)
//
// Fields are addressable by name (map lookup) or by id, the 0-based position
// of the field in declaration order (direct indexing). A Bytes field may
// host an independent child Packet over its byte range, see Sub.
//
// A Packet is not safe for concurrent use; it assumes one logical owner at a
// time, like the wire buffers it describes.
package packet

import (
	"encoding/binary"
	"fmt"
)

// Packet is an ordered, growable field table over one Buffer. The zero value
// is not usable; construct with New.
type Packet struct {
	name string
	buf  *Buffer

	fields []Field        // by id, append-only
	index  map[string]int // name -> id
	length int            // committed bytes, sum of field lengths

	subs map[string]*Packet // lazily created children of Bytes fields
}

// New creates an empty layout over data. Multi-byte scalars use order;
// sub-regions inherit it unless reconfigured. The region stays caller-owned.
func New(data []byte, order binary.ByteOrder) (*Packet, error) {
	buf, err := NewBuffer(data, order)
	if err != nil {
		return nil, err
	}
	return &Packet{
		buf:   buf,
		index: make(map[string]int),
	}, nil
}

// newSub builds a child layout over an aliasing buffer. Children start with
// the parent's byte order.
func newSub(name string, buf *Buffer) *Packet {
	return &Packet{
		name:  name,
		buf:   buf,
		index: make(map[string]int),
	}
}

// Name returns the display name used by the formatter.
func (p *Packet) Name() string { return p.name }

// SetName sets the display name. Purely cosmetic; never written to the wire.
func (p *Packet) SetName(name string) { p.name = name }

// Buffer returns the underlying view, e.g. to hand the raw region to I/O.
func (p *Packet) Buffer() *Buffer { return p.buf }

// Rebind points the layout at a different region. Only legal while no field
// has been added; an established field table is tied to the geometry of the
// region it was built against.
func (p *Packet) Rebind(data []byte, order binary.ByteOrder) error {
	if len(p.fields) > 0 {
		return fmt.Errorf("packet: rebind after fields were added: %w", ErrBadParameter)
	}
	return p.buf.Rebind(data, order)
}

// SetByteOrder changes the scalar byte order of this layout only; children
// and parents keep theirs.
func (p *Packet) SetByteOrder(order binary.ByteOrder) { p.buf.SetOrder(order) }

// ByteOrder returns the scalar byte order of this layout.
func (p *Packet) ByteOrder() binary.ByteOrder { return p.buf.Order() }

// AddField appends a field at the current cursor and returns its id, which
// equals the number of fields before the call. Scalar types take their
// intrinsic width when length is omitted or 0; Bytes requires an explicit
// length > 0. A failed append leaves the layout exactly as it was.
func (p *Packet) AddField(name string, typ Type, length ...int) (int, error) {
	if name == "" {
		return 0, fmt.Errorf("packet: add field with empty name: %w", ErrBadParameter)
	}

	n := 0
	if len(length) > 0 {
		n = length[0]
	}
	if n < 0 {
		return 0, fmt.Errorf("packet: field %q: negative length %d: %w", name, n, ErrBadParameter)
	}
	if typ.Scalar() {
		if n == 0 {
			n = typ.Width()
		} else if n < typ.Width() {
			// A padded slot may be wider than the scalar, never narrower:
			// the codec always moves Width() bytes at the field offset.
			return 0, fmt.Errorf("packet: field %q: length %d below %v width %d: %w",
				name, n, typ, typ.Width(), ErrBadParameter)
		}
	} else if n == 0 {
		return 0, fmt.Errorf("packet: field %q: length required for bytes field: %w", name, ErrBadParameter)
	}

	if _, dup := p.index[name]; dup {
		return 0, fmt.Errorf("packet: field %q already exists: %w", name, ErrDuplicateField)
	}
	if p.length+n > p.buf.Cap() {
		return 0, fmt.Errorf("packet: no room for field %q (%d bytes, %d left): %w",
			name, n, p.Remaining(), ErrCapacity)
	}

	id := len(p.fields)
	p.fields = append(p.fields, Field{
		Name:   name,
		ID:     id,
		Offset: p.length,
		Length: n,
		Type:   typ,
	})
	p.index[name] = id
	p.length += n
	return id, nil
}

// FieldID resolves a name to its id. The second result is false when the
// name is unknown; there is no reserved "not found" id value.
func (p *Packet) FieldID(name string) (int, bool) {
	id, ok := p.index[name]
	return id, ok
}

// Has reports whether a field with the given name exists. Never fails.
func (p *Packet) Has(name string) bool {
	_, ok := p.index[name]
	return ok
}

// Offset returns the byte offset of the named field from the region start.
func (p *Packet) Offset(name string) (int, error) {
	f, err := p.byName(name)
	if err != nil {
		return 0, err
	}
	return f.Offset, nil
}

// FieldByID returns a copy of the field descriptor for id.
func (p *Packet) FieldByID(id int) (Field, bool) {
	if id < 0 || id >= len(p.fields) {
		return Field{}, false
	}
	return p.fields[id], true
}

// FieldByName returns a copy of the field descriptor for name.
func (p *Packet) FieldByName(name string) (Field, bool) {
	id, ok := p.index[name]
	if !ok {
		return Field{}, false
	}
	return p.fields[id], true
}

// NumFields returns the number of fields added so far.
func (p *Packet) NumFields() int { return len(p.fields) }

// Len returns the committed length: the sum of all field lengths.
func (p *Packet) Len() int { return p.length }

// Cap returns the capacity of the region the layout may still grow into.
func (p *Packet) Cap() int { return p.buf.Cap() }

// Remaining returns Cap()-Len(), the bytes still available for AddField.
func (p *Packet) Remaining() int { return p.buf.Cap() - p.length }

// Shrink reduces the capacity to n. A no-op when n >= Cap() or when n would
// cut into committed fields; capacity never grows back.
func (p *Packet) Shrink(n int) {
	if n < p.length {
		n = p.length
	}
	p.buf.shrink(n)
}

// ShrinkToFit reduces the capacity to the committed length, typically after
// sizing a sub-region down to its actual content.
func (p *Packet) ShrinkToFit() { p.buf.shrink(p.length) }

// Uint reads the named scalar field. The value is the raw bit pattern
// truncated to the field width; signed types are returned un-extended and
// cast by the caller.
func (p *Packet) Uint(name string) (uint32, error) {
	f, err := p.byName(name)
	if err != nil {
		return 0, err
	}
	return p.readScalar(f)
}

// UintByID is Uint addressed by field id.
func (p *Packet) UintByID(id int) (uint32, error) {
	f, err := p.byID(id)
	if err != nil {
		return 0, err
	}
	return p.readScalar(f)
}

// SetUint writes the named scalar field, truncating v to the field width.
func (p *Packet) SetUint(name string, v uint32) error {
	f, err := p.byName(name)
	if err != nil {
		return err
	}
	return p.writeScalar(f, v)
}

// SetUintByID is SetUint addressed by field id.
func (p *Packet) SetUintByID(id int, v uint32) error {
	f, err := p.byID(id)
	if err != nil {
		return err
	}
	return p.writeScalar(f, v)
}

// Raw returns the named Bytes field as an alias into the region: no copy,
// and writes through the slice are writes into the buffer.
func (p *Packet) Raw(name string) ([]byte, error) {
	f, err := p.byName(name)
	if err != nil {
		return nil, err
	}
	return p.rawAlias(f)
}

// RawByID is Raw addressed by field id.
func (p *Packet) RawByID(id int) ([]byte, error) {
	f, err := p.byID(id)
	if err != nil {
		return nil, err
	}
	return p.rawAlias(f)
}

// ReadRaw copies the named Bytes field into dst, exactly Length bytes, and
// returns the count. dst must hold at least Length bytes.
func (p *Packet) ReadRaw(name string, dst []byte) (int, error) {
	f, err := p.byName(name)
	if err != nil {
		return 0, err
	}
	return p.rawCopy(f, dst)
}

// ReadRawByID is ReadRaw addressed by field id.
func (p *Packet) ReadRawByID(id int, dst []byte) (int, error) {
	f, err := p.byID(id)
	if err != nil {
		return 0, err
	}
	return p.rawCopy(f, dst)
}

// SetRaw fills the named Bytes field from src. A nil src zero-fills the
// region; a short src is copied and the remainder zero-filled; a long src is
// truncated. The field always ends up with exactly Length defined bytes.
func (p *Packet) SetRaw(name string, src []byte) error {
	f, err := p.byName(name)
	if err != nil {
		return err
	}
	return p.rawFill(f, src)
}

// SetRawByID is SetRaw addressed by field id.
func (p *Packet) SetRawByID(id int, src []byte) error {
	f, err := p.byID(id)
	if err != nil {
		return err
	}
	return p.rawFill(f, src)
}

// Rename moves the field under old to new, keeping id, offset and length.
// All-or-nothing: on any failure the field stays reachable under old only.
func (p *Packet) Rename(old, new string) error {
	if new == "" {
		return fmt.Errorf("packet: rename to empty name: %w", ErrBadParameter)
	}
	id, ok := p.index[old]
	if !ok {
		return fmt.Errorf("packet: field %q: %w", old, ErrFieldNotFound)
	}
	if _, taken := p.index[new]; taken {
		return fmt.Errorf("packet: field %q already exists: %w", new, ErrDuplicateField)
	}
	delete(p.index, old)
	p.index[new] = id
	p.fields[id].Name = new
	if sub, ok := p.subs[old]; ok {
		delete(p.subs, old)
		p.subs[new] = sub
		sub.name = new
	}
	return nil
}

// CopyFieldsFrom appends a copy of every field of src, in src's id order,
// re-running the AddField checks per field. On the first failing field it
// stops and returns the error; fields appended earlier in the same call are
// kept, consistent with appends being monotonic. Values in the region are
// not copied, only the layout.
func (p *Packet) CopyFieldsFrom(src *Packet) error {
	if src == nil {
		return fmt.Errorf("packet: copy fields from nil packet: %w", ErrBadParameter)
	}
	for _, f := range src.fields {
		if _, err := p.AddField(f.Name, f.Type, f.Length); err != nil {
			return err
		}
	}
	return nil
}

// byName resolves name to a descriptor or ErrFieldNotFound.
func (p *Packet) byName(name string) (Field, error) {
	id, ok := p.index[name]
	if !ok {
		return Field{}, fmt.Errorf("packet: field %q: %w", name, ErrFieldNotFound)
	}
	return p.fields[id], nil
}

// byID resolves id to a descriptor or ErrFieldNotFound.
func (p *Packet) byID(id int) (Field, error) {
	if id < 0 || id >= len(p.fields) {
		return Field{}, fmt.Errorf("packet: field id %d: %w", id, ErrFieldNotFound)
	}
	return p.fields[id], nil
}

func (p *Packet) readScalar(f Field) (uint32, error) {
	if !f.Scalar() {
		return 0, fmt.Errorf("packet: scalar read of bytes field %q: %w", f.Name, ErrTypeMismatch)
	}
	return f.Type.read(p.buf, f.Offset), nil
}

func (p *Packet) writeScalar(f Field, v uint32) error {
	if !f.Scalar() {
		return fmt.Errorf("packet: scalar write of bytes field %q: %w", f.Name, ErrTypeMismatch)
	}
	f.Type.write(p.buf, f.Offset, v)
	return nil
}

func (p *Packet) rawAlias(f Field) ([]byte, error) {
	if f.Scalar() {
		return nil, fmt.Errorf("packet: raw access to scalar field %q: %w", f.Name, ErrTypeMismatch)
	}
	return p.buf.Bytes(f.Offset, f.Length), nil
}

func (p *Packet) rawCopy(f Field, dst []byte) (int, error) {
	src, err := p.rawAlias(f)
	if err != nil {
		return 0, err
	}
	if len(dst) < f.Length {
		return 0, fmt.Errorf("packet: field %q needs %d bytes, destination has %d: %w",
			f.Name, f.Length, len(dst), ErrBadParameter)
	}
	return copy(dst, src), nil
}

func (p *Packet) rawFill(f Field, src []byte) error {
	dst, err := p.rawAlias(f)
	if err != nil {
		return err
	}
	n := copy(dst, src)
	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}
	return nil
}
