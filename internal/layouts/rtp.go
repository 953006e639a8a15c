package layouts

import (
	"encoding/binary"
	"fmt"

	"firestige.xyz/fieldpack/pkg/packet"
)

// rtpHeaderLen is the fixed RTP header size (RFC 3550 §5.1).
const rtpHeaderLen = 12

// rtpOptions tunes the RTP overlay for streams that carry CSRC entries.
type rtpOptions struct {
	// CSRCCount adds a 4*n byte "csrc" region after the fixed header,
	// matching the CC nibble of the first byte. 0..15.
	CSRCCount int `mapstructure:"csrc_count"`
}

func init() {
	Register("rtp", buildRTP)
}

// buildRTP overlays the RTP fixed header on a datagram payload:
//
//	Offset  Size  Field
//	------  ----  -----
//	0       1     v_p_x_cc   V(2) P(1) X(1) CC(4)
//	1       1     m_pt       M(1) PT(7)
//	2       2     sequence
//	4       4     timestamp
//	8       4     ssrc
//	12      4*n   csrc       (optional, per csrc_count)
//	…       rest  payload
//
// Network byte order throughout.
func buildRTP(data []byte, opts Options) (*packet.Packet, error) {
	var ro rtpOptions
	if err := opts.Decode(&ro); err != nil {
		return nil, err
	}
	if ro.CSRCCount < 0 || ro.CSRCCount > 15 {
		return nil, fmt.Errorf("layouts: rtp csrc_count %d out of range 0..15", ro.CSRCCount)
	}
	headerLen := rtpHeaderLen + 4*ro.CSRCCount
	if len(data) < headerLen {
		return nil, fmt.Errorf("layouts: rtp needs %d bytes, have %d", headerLen, len(data))
	}

	p, err := packet.New(data, opts.order(binary.BigEndian))
	if err != nil {
		return nil, err
	}
	p.SetName("RTP")

	for _, f := range []struct {
		name string
		typ  packet.Type
	}{
		{"v_p_x_cc", packet.U8},
		{"m_pt", packet.U8},
		{"sequence", packet.U16},
		{"timestamp", packet.U32},
		{"ssrc", packet.U32},
	} {
		if _, err := p.AddField(f.name, f.typ); err != nil {
			return nil, err
		}
	}
	if ro.CSRCCount > 0 {
		if _, err := p.AddField("csrc", packet.Bytes, 4*ro.CSRCCount); err != nil {
			return nil, err
		}
	}
	if rest := p.Remaining(); rest > 0 {
		if _, err := p.AddField("payload", packet.Bytes, rest); err != nil {
			return nil, err
		}
	}
	return p, nil
}
