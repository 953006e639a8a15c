package layouts

import (
	"encoding/binary"
	"fmt"

	"firestige.xyz/fieldpack/pkg/packet"
)

// HEPv3 frame geometry (Homer Encapsulation Protocol).
const (
	hepHeaderLen      = 6 // magic + total length
	hepChunkHeaderLen = 6 // vendor + type + length
)

func init() {
	Register("hep3", buildHEP)
}

// buildHEP overlays a HEPv3 capture frame:
//
//	Offset  Size  Field
//	------  ----  -----
//	0       4     magic      "HEP3"
//	4       2     length     total frame length incl. these 6 bytes
//	6       …     chunks
//
// The chunks region gets a sub-region exposing the header of the first
// chunk (vendor, type, length, value), which is how the tool shows frame
// structure without walking every chunk. Big-endian per the protocol.
func buildHEP(data []byte, opts Options) (*packet.Packet, error) {
	if len(data) < hepHeaderLen+hepChunkHeaderLen {
		return nil, fmt.Errorf("layouts: hep3 needs at least %d bytes, have %d",
			hepHeaderLen+hepChunkHeaderLen, len(data))
	}

	p, err := packet.New(data, opts.order(binary.BigEndian))
	if err != nil {
		return nil, err
	}
	p.SetName("HEP3")

	if _, err := p.AddField("magic", packet.Bytes, 4); err != nil {
		return nil, err
	}
	if _, err := p.AddField("length", packet.U16); err != nil {
		return nil, err
	}
	if _, err := p.AddField("chunks", packet.Bytes, p.Remaining()); err != nil {
		return nil, err
	}

	chunks, err := p.Sub("chunks")
	if err != nil {
		return nil, err
	}
	chunks.SetName("chunk[0]")
	for _, f := range []struct {
		name string
		typ  packet.Type
	}{
		{"vendor", packet.U16},
		{"type", packet.U16},
		{"chunk_length", packet.U16},
	} {
		if _, err := chunks.AddField(f.name, f.typ); err != nil {
			return nil, err
		}
	}

	// Size the first chunk's value from its own header when it fits.
	clen, err := chunks.Uint("chunk_length")
	if err != nil {
		return nil, err
	}
	if n := int(clen) - hepChunkHeaderLen; n > 0 && n <= chunks.Remaining() {
		if _, err := chunks.AddField("value", packet.Bytes, n); err != nil {
			return nil, err
		}
		chunks.ShrinkToFit()
	}
	return p, nil
}
