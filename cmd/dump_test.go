package cmd

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firestige.xyz/fieldpack/internal/config"
	"firestige.xyz/fieldpack/pkg/packet"
)

func TestDecodeHexString(t *testing.T) {
	data, err := decodeHexString("ff eb3f\te3")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xEB, 0x3F, 0xE3}, data)

	_, err = decodeHexString("zz")
	assert.Error(t, err)

	_, err = decodeHexString("  ")
	assert.Error(t, err)
}

func TestApplyAssignment(t *testing.T) {
	p, err := packet.New(make([]byte, 16), binary.BigEndian)
	require.NoError(t, err)
	_, err = p.AddField("count", packet.U16)
	require.NoError(t, err)
	_, err = p.AddField("tag", packet.Bytes, 6)
	require.NoError(t, err)

	require.NoError(t, applyAssignment(p, "count=0xBEEF"))
	v, err := p.Uint("count")
	require.NoError(t, err)
	assert.Equal(t, uint32(0xBEEF), v)

	require.NoError(t, applyAssignment(p, "tag=abc"))
	raw, err := p.Raw("tag")
	require.NoError(t, err)
	assert.Equal(t, []byte{'a', 'b', 'c', 0, 0, 0}, raw)

	assert.Error(t, applyAssignment(p, "count"))
	assert.Error(t, applyAssignment(p, "ghost=1"))
	assert.Error(t, applyAssignment(p, "count=notanumber"))
}

func TestWritePacket_Yaml(t *testing.T) {
	cfg = config.Default()
	dumpFormat = "yaml"
	defer func() { dumpFormat = "" }()

	p, err := packet.New(make([]byte, 8), binary.BigEndian)
	require.NoError(t, err)
	_, err = p.AddField("word", packet.U32)
	require.NoError(t, err)
	require.NoError(t, p.SetUint("word", 7))

	var buf bytes.Buffer
	require.NoError(t, writePacket(&buf, p))
	out := buf.String()
	assert.Contains(t, out, "name: word")
	assert.Contains(t, out, "value: 7")
	assert.Contains(t, out, "type: u32")
}

func TestDumpCommand_EndToEnd(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{
		"dump", "--layout", "gps128",
		"--set", "Time of Week=0xffeb3fe3",
		"--format", "text",
	})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	out := buf.String()
	assert.Contains(t, out, "GPS 128, total size: 0x19 :")
	assert.Contains(t, out, "Time of Week : 0xffeb3fe3")

	// Flag state is package-global; reset for other tests.
	dumpSets = nil
	dumpFormat = ""
}
