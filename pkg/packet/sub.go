package packet

import "fmt"

// Sub returns the child layout overlaid on the named Bytes field, creating
// it on first use and caching it for later calls. The child aliases the
// parent's bytes at [offset, offset+length): writes through either side are
// immediately visible through the other, there is one physical region.
//
// The child is independent in every other way: its own field table, cursor,
// byte order (inherited at creation) and, recursively, its own sub-regions.
// Calls chain naturally:
//
//	car.Sub("engine").Sub("params")  // with errors checked in real code
func (p *Packet) Sub(name string) (*Packet, error) {
	if sub, ok := p.subs[name]; ok {
		return sub, nil
	}
	f, err := p.byName(name)
	if err != nil {
		return nil, err
	}
	if f.Scalar() {
		return nil, fmt.Errorf("packet: sub-region on scalar field %q: %w", f.Name, ErrTypeMismatch)
	}

	buf, err := NewBuffer(p.buf.Bytes(f.Offset, f.Length), p.buf.Order())
	if err != nil {
		return nil, err
	}
	sub := newSub(name, buf)
	if p.subs == nil {
		p.subs = make(map[string]*Packet)
	}
	p.subs[name] = sub
	return sub, nil
}

// HasSub reports whether a child layout already exists for name. It never
// creates one, so read-only traversal (the formatter in particular) can
// probe without mutating the layout.
func (p *Packet) HasSub(name string) bool {
	_, ok := p.subs[name]
	return ok
}

// existingSub is the non-creating counterpart of Sub.
func (p *Packet) existingSub(name string) *Packet {
	return p.subs[name]
}
