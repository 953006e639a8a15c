package packet

// Field describes one named region of a layout: where it starts, how many
// bytes it covers and how those bytes are interpreted. Fields are immutable
// once appended except for the name, which Rename may move; id, offset and
// length never change for the life of the layout.
type Field struct {
	Name   string
	ID     int
	Offset int
	Length int
	Type   Type
}

// Scalar reports whether the field decodes to an integer value.
func (f Field) Scalar() bool { return f.Type.Scalar() }

// end returns the first offset past the field.
func (f Field) end() int { return f.Offset + f.Length }
