package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	pcapFile   string
	pcapLayout string
	pcapMax    int
)

var pcapCmd = &cobra.Command{
	Use:   "pcap",
	Short: "Overlay a layout on UDP payloads from a pcap file",
	Long: `Read packets from a pcap capture, decode L2-L4, and overlay the given
layout on each UDP payload:

  fieldpack pcap --file media.pcap --layout rtp --max 5`,
	RunE: runPcap,
}

func init() {
	pcapCmd.Flags().StringVarP(&pcapFile, "file", "f", "", "pcap file path (required)")
	pcapCmd.Flags().StringVarP(&pcapLayout, "layout", "l", "", "layout name (required)")
	pcapCmd.Flags().IntVar(&pcapMax, "max", 10, "stop after this many overlaid packets (0 = all)")
	_ = pcapCmd.MarkFlagRequired("file")
	_ = pcapCmd.MarkFlagRequired("layout")
}

func runPcap(cmd *cobra.Command, args []string) error {
	f, err := os.Open(pcapFile)
	if err != nil {
		return fmt.Errorf("failed to open pcap file %s: %w", pcapFile, err)
	}
	defer f.Close()

	r, err := pcapgo.NewReader(f)
	if err != nil {
		return fmt.Errorf("failed to read pcap file %s: %w", pcapFile, err)
	}

	out := cmd.OutOrStdout()
	shown := 0
	for seq := 0; pcapMax == 0 || shown < pcapMax; seq++ {
		data, ci, err := r.ReadPacketData()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read packet: %w", err)
		}

		payload := udpPayload(data, r.LinkType())
		if payload == nil {
			logrus.WithField("seq", seq).Debug("skipping non-UDP packet")
			continue
		}

		p, err := buildLayout(pcapLayout, payload)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"seq":   seq,
				"error": err,
			}).Warn("payload does not fit layout")
			continue
		}

		fmt.Fprintf(out, "# packet %d, captured %s, %d payload bytes\n",
			seq, ci.Timestamp.Format("15:04:05.000000"), len(payload))
		if err := writePacket(out, p); err != nil {
			return err
		}
		fmt.Fprintln(out)
		shown++
	}

	logrus.WithField("shown", shown).Info("pcap dump complete")
	return nil
}

// udpPayload decodes one captured frame down to the UDP payload, or nil when
// the frame carries no UDP datagram.
func udpPayload(data []byte, link layers.LinkType) []byte {
	pkt := gopacket.NewPacket(data, link, gopacket.Default)
	udp, ok := pkt.TransportLayer().(*layers.UDP)
	if !ok || udp == nil {
		return nil
	}
	if len(udp.Payload) == 0 {
		return nil
	}
	return udp.Payload
}
