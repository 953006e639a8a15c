package packet

import "errors"

// Error kinds reported by the package. Every error returned by a Packet or
// Buffer operation wraps exactly one of these, so callers can classify with
// errors.Is while still getting field names and sizes in the message.
var (
	// ErrBadParameter covers nil/empty buffers, empty field names, missing
	// lengths for Bytes fields and undersized destination slices.
	ErrBadParameter = errors.New("bad parameter")

	// ErrDuplicateField is returned when a field name is already taken in
	// the layout, on AddField as well as Rename.
	ErrDuplicateField = errors.New("duplicate field")

	// ErrCapacity is returned when appending a field would exceed the
	// region capacity.
	ErrCapacity = errors.New("insufficient capacity")

	// ErrFieldNotFound is returned for unknown field names and ids.
	ErrFieldNotFound = errors.New("field not found")

	// ErrTypeMismatch is returned for a scalar operation on a Bytes field
	// or a raw-bytes operation on a scalar field.
	ErrTypeMismatch = errors.New("field type mismatch")
)
