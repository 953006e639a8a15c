package layouts

import (
	"encoding/binary"

	"firestige.xyz/fieldpack/pkg/packet"
)

// gpsSize is the fixed frame size of the Initialise Data Source message.
const gpsSize = 25

func init() {
	Register("gps128", buildGPS)
}

// buildGPS overlays the GPS "Initialise Data Source" serial message
// (packet id 128), the canonical fixed-format example:
//
//	Offset  Size  Field          Units
//	------  ----  -----          -----
//	0       1     Packet ID
//	1       4     ECEF X         meters
//	5       4     ECEF Y         meters
//	9       4     ECEF Z         meters
//	13      4     Clock Offset   Hz
//	17      4     Time of Week   seconds
//	21      2     Week Number
//	23      1     Channels
//	24      1     Reset Config
//
// Big-endian on the wire.
func buildGPS(data []byte, opts Options) (*packet.Packet, error) {
	if len(data) > gpsSize {
		data = data[:gpsSize]
	}
	p, err := packet.New(data, opts.order(binary.BigEndian))
	if err != nil {
		return nil, err
	}
	p.SetName("GPS 128")

	fields := []struct {
		name string
		typ  packet.Type
	}{
		{"Packet ID", packet.U8},
		{"ECEF X", packet.U32},
		{"ECEF Y", packet.U32},
		{"ECEF Z", packet.U32},
		{"Clock Offset", packet.U32},
		{"Time of Week", packet.U32},
		{"Week Number", packet.U16},
		{"Channels", packet.U8},
		{"Reset Config", packet.U8},
	}
	for _, f := range fields {
		if _, err := p.AddField(f.name, f.typ); err != nil {
			return nil, err
		}
	}
	return p, nil
}
