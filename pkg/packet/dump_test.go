package packet

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildCar(t *testing.T) (*Packet, []byte) {
	t.Helper()
	buf := make([]byte, 64)
	car, err := New(buf, binary.LittleEndian)
	require.NoError(t, err)
	car.SetName("CAR")

	_, err = car.AddField("make", Bytes, 10)
	require.NoError(t, err)
	_, err = car.AddField("prod_year", U16)
	require.NoError(t, err)
	_, err = car.AddField("engine", Bytes, 12)
	require.NoError(t, err)

	require.NoError(t, car.SetRaw("make", []byte("Porsche")))
	require.NoError(t, car.SetUint("prod_year", 2008))

	engine, err := car.Sub("engine")
	require.NoError(t, err)
	_, err = engine.AddField("type", Bytes, 8)
	require.NoError(t, err)
	_, err = engine.AddField("cylinders", U16)
	require.NoError(t, err)
	require.NoError(t, engine.SetRaw("type", []byte("flat-6")))
	require.NoError(t, engine.SetUint("cylinders", 6))

	return car, buf
}

func TestDump_Tree(t *testing.T) {
	car, _ := buildCar(t)

	var sb strings.Builder
	require.NoError(t, car.Dump(&sb))
	out := sb.String()

	assert.Contains(t, out, "CAR, total size: 0x18 :")
	assert.Contains(t, out, "prod_year : 0x7d8")
	assert.Contains(t, out, "(size 0xa): ")
	assert.Contains(t, out, "50 6f 72 73 63 68 65 00 00 00", "hex pairs of the make field")
	assert.Contains(t, out, "Porsche...", "printable gutter with dots for NULs")

	// The materialized sub-region is recursed into with indentation.
	assert.Contains(t, out, "engine    : (size 0xc):\n")
	assert.Contains(t, out, "\n  type      : ")
	assert.Contains(t, out, "flat-6..")
	assert.Contains(t, out, "  cylinders : 0x6")
}

func TestDump_DoesNotCreateSubRegions(t *testing.T) {
	p, err := New(make([]byte, 16), binary.BigEndian)
	require.NoError(t, err)
	_, err = p.AddField("body", Bytes, 8)
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, p.Dump(&sb))
	assert.False(t, p.HasSub("body"), "formatting is read-only")
	assert.Contains(t, sb.String(), "00 00 00 00 00 00 00 00")

	_ = p.String()
	assert.False(t, p.HasSub("body"))
}

func TestDump_UnnamedAndSigned(t *testing.T) {
	p, err := New(make([]byte, 8), binary.BigEndian)
	require.NoError(t, err)
	_, err = p.AddField("temp", I16)
	require.NoError(t, err)
	require.NoError(t, p.SetUint("temp", 0xFFF6)) // -10

	out := p.String()
	assert.True(t, strings.HasPrefix(out, "packet, total size:"), "fallback display name")
	assert.Contains(t, out, "temp : -10 (0xfff6)")
}

func TestDump_LongBytesWrap(t *testing.T) {
	p, err := New(make([]byte, 40), binary.BigEndian)
	require.NoError(t, err)
	_, err = p.AddField("payload", Bytes, 40)
	require.NoError(t, err)
	require.NoError(t, p.SetRaw("payload", []byte("0123456789abcdef0123456789abcdef01234567")))

	out := p.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// Header, blank, then three byte lines (16+16+8).
	require.Len(t, lines, 5)
	assert.Contains(t, lines[2], "30 31 32 33")
	assert.True(t, strings.HasSuffix(lines[2], "0123456789abcdef"))
	assert.True(t, strings.HasSuffix(lines[4], "01234567"))
}

func TestSnapshot(t *testing.T) {
	car, _ := buildCar(t)

	snap := car.Snapshot()
	require.Len(t, snap, 3)

	assert.Equal(t, "make", snap[0].Name)
	assert.Equal(t, "bytes", snap[0].Type)
	assert.Equal(t, "50 6f 72 73 63 68 65 00 00 00", snap[0].Bytes)
	assert.Nil(t, snap[0].Value)

	require.NotNil(t, snap[1].Value)
	assert.Equal(t, int64(2008), *snap[1].Value)
	assert.Equal(t, 10, snap[1].Offset)
	assert.Equal(t, 2, snap[1].Length)

	require.Len(t, snap[2].Sub, 2)
	assert.Equal(t, "type", snap[2].Sub[0].Name)
	assert.Empty(t, snap[2].Bytes, "sub-region replaces the hex rendering")
	require.NotNil(t, snap[2].Sub[1].Value)
	assert.Equal(t, int64(6), *snap[2].Sub[1].Value)
}

func TestSnapshot_SignExtendsSignedScalars(t *testing.T) {
	p, err := New(make([]byte, 8), binary.LittleEndian)
	require.NoError(t, err)
	_, err = p.AddField("delta", I8)
	require.NoError(t, err)
	require.NoError(t, p.SetUint("delta", 0xFE)) // -2

	snap := p.Snapshot()
	require.Len(t, snap, 1)
	require.NotNil(t, snap[0].Value)
	assert.Equal(t, int64(-2), *snap[0].Value)
}
