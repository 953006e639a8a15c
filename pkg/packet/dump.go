package packet

import (
	"fmt"
	"io"
	"strings"
)

// dumpBytesPerLine is the number of raw bytes rendered per dump line.
const dumpBytesPerLine = 16

// Dump writes a human-readable rendering of the layout tree to w: one line
// per field in id order, scalars as hex, Bytes fields as hex pairs with a
// printable-ASCII gutter, and materialized sub-regions recursed into with
// two extra spaces of indent per level. Dump is read-only: it only descends
// into children that already exist and never creates one.
func (p *Packet) Dump(w io.Writer) error {
	name := p.name
	if name == "" {
		name = "packet"
	}
	if _, err := fmt.Fprintf(w, "%s, total size: %#x :\n\n", name, p.length); err != nil {
		return err
	}
	return p.dump(w, 0)
}

// String renders the layout tree as Dump does. Handy with %v in logs.
func (p *Packet) String() string {
	var sb strings.Builder
	if err := p.Dump(&sb); err != nil {
		return fmt.Sprintf("packet %q: %v", p.name, err)
	}
	return sb.String()
}

func (p *Packet) dump(w io.Writer, depth int) error {
	indent := strings.Repeat("  ", depth)

	wide := 0
	for _, f := range p.fields {
		if len(f.Name) > wide {
			wide = len(f.Name)
		}
	}

	for _, f := range p.fields {
		if _, err := fmt.Fprintf(w, "%s%-*s : ", indent, wide, f.Name); err != nil {
			return err
		}
		var err error
		switch {
		case f.Scalar():
			err = p.dumpScalar(w, f)
		case p.HasSub(f.Name):
			if _, err = fmt.Fprintf(w, "(size %#x):\n", f.Length); err == nil {
				err = p.existingSub(f.Name).dump(w, depth+1)
			}
		default:
			err = p.dumpBytes(w, f, indent, wide)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *Packet) dumpScalar(w io.Writer, f Field) error {
	v := f.Type.read(p.buf, f.Offset)
	if f.Type.Signed() {
		if s := signExtend(v, f.Type.Width()); s < 0 {
			_, err := fmt.Fprintf(w, "%d (%#x)\n", s, v)
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%#x\n", v)
	return err
}

// dumpBytes renders a raw field as "(size 0xN): hh hh ...  ascii", wrapping
// long fields at dumpBytesPerLine with continuation lines aligned under the
// first byte column.
func (p *Packet) dumpBytes(w io.Writer, f Field, indent string, wide int) error {
	data := p.buf.Bytes(f.Offset, f.Length)
	head := fmt.Sprintf("(size %#x): ", f.Length)
	cont := indent + strings.Repeat(" ", wide+3+len(head))

	if _, err := io.WriteString(w, head); err != nil {
		return err
	}
	for line := 0; line*dumpBytesPerLine < len(data); line++ {
		chunk := data[line*dumpBytesPerLine:]
		if len(chunk) > dumpBytesPerLine {
			chunk = chunk[:dumpBytesPerLine]
		}
		if line > 0 {
			if _, err := io.WriteString(w, cont); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%-*s  %s\n",
			3*dumpBytesPerLine-1, hexPairs(chunk), asciiGutter(chunk)); err != nil {
			return err
		}
	}
	if len(data) == 0 {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}

func hexPairs(b []byte) string {
	var sb strings.Builder
	for i, c := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02x", c)
	}
	return sb.String()
}

// asciiGutter maps printable bytes to themselves and everything else to '.'.
func asciiGutter(b []byte) string {
	out := make([]byte, len(b))
	for i, c := range b {
		if c >= 0x20 && c < 0x7f {
			out[i] = c
		} else {
			out[i] = '.'
		}
	}
	return string(out)
}

// FieldValue is one node of a machine-readable layout snapshot, shaped for
// direct yaml/json marshalling by tools.
type FieldValue struct {
	Name   string       `yaml:"name" json:"name"`
	Type   string       `yaml:"type" json:"type"`
	Offset int          `yaml:"offset" json:"offset"`
	Length int          `yaml:"length" json:"length"`
	Value  *int64       `yaml:"value,omitempty" json:"value,omitempty"`
	Bytes  string       `yaml:"bytes,omitempty" json:"bytes,omitempty"`
	Sub    []FieldValue `yaml:"sub,omitempty" json:"sub,omitempty"`
}

// Snapshot captures the layout tree with decoded values, in id order.
// Signed scalars are sign-extended; raw fields carry their bytes as spaced
// hex pairs unless a sub-region exists, in which case the child snapshot is
// attached instead. Like Dump, Snapshot never creates sub-regions.
func (p *Packet) Snapshot() []FieldValue {
	out := make([]FieldValue, 0, len(p.fields))
	for _, f := range p.fields {
		fv := FieldValue{
			Name:   f.Name,
			Type:   f.Type.String(),
			Offset: f.Offset,
			Length: f.Length,
		}
		switch {
		case f.Scalar():
			v := int64(f.Type.read(p.buf, f.Offset))
			if f.Type.Signed() {
				v = signExtend(uint32(v), f.Type.Width())
			}
			fv.Value = &v
		case p.HasSub(f.Name):
			fv.Sub = p.existingSub(f.Name).Snapshot()
		default:
			fv.Bytes = hexPairs(p.buf.Bytes(f.Offset, f.Length))
		}
		out = append(out, fv)
	}
	return out
}
