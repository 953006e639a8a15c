package cmd

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"firestige.xyz/fieldpack/internal/layouts"
	"firestige.xyz/fieldpack/pkg/packet"
)

var (
	dumpLayout string
	dumpHex    string
	dumpFile   string
	dumpSize   int
	dumpOrder  string
	dumpFormat string
	dumpSets   []string
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Overlay a layout on bytes and print the decoded fields",
	Long: `Overlay a built-in layout on input bytes and print every field.

Input comes from --hex, from --file, or from a zeroed buffer of --size bytes.
Fields can be written before printing with repeated --set flags, so the
command doubles as a packet builder:

  fieldpack dump --layout gps128 --set "Time of Week=0xffeb3fe3" --set "Channels=2"`,
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().StringVarP(&dumpLayout, "layout", "l", "", "layout name (required)")
	dumpCmd.Flags().StringVar(&dumpHex, "hex", "", "input bytes as hex pairs, spaces allowed")
	dumpCmd.Flags().StringVarP(&dumpFile, "file", "f", "", "input bytes from a file")
	dumpCmd.Flags().IntVar(&dumpSize, "size", 64, "zeroed buffer size when no input is given")
	dumpCmd.Flags().StringVar(&dumpOrder, "endian", "", "byte order override (big|little)")
	dumpCmd.Flags().StringVarP(&dumpFormat, "format", "o", "", "output format (text|yaml)")
	dumpCmd.Flags().StringArrayVar(&dumpSets, "set", nil, "write a field before printing, name=value")
	_ = dumpCmd.MarkFlagRequired("layout")
	dumpCmd.MarkFlagsMutuallyExclusive("hex", "file")
}

func runDump(cmd *cobra.Command, args []string) error {
	data, err := inputBytes()
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"layout": dumpLayout,
		"bytes":  len(data),
	}).Debug("building overlay")

	p, err := buildLayout(dumpLayout, data)
	if err != nil {
		return err
	}
	for _, assign := range dumpSets {
		if err := applyAssignment(p, assign); err != nil {
			return err
		}
	}
	return writePacket(cmd.OutOrStdout(), p)
}

// inputBytes resolves the dump input source.
func inputBytes() ([]byte, error) {
	switch {
	case dumpHex != "":
		return decodeHexString(dumpHex)
	case dumpFile != "":
		data, err := os.ReadFile(dumpFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read input file: %w", err)
		}
		return data, nil
	default:
		if dumpSize <= 0 {
			return nil, fmt.Errorf("--size must be positive, got %d", dumpSize)
		}
		return make([]byte, dumpSize), nil
	}
}

// buildLayout wires flag and config values into the layout registry.
func buildLayout(name string, data []byte) (*packet.Packet, error) {
	opts := layouts.Options{Params: cfg.LayoutOptions(name)}

	orderName := cfg.Dump.ByteOrder
	if dumpOrder != "" {
		orderName = dumpOrder
	}
	order, err := byteOrderFor(orderName)
	if err != nil {
		return nil, err
	}
	opts.ByteOrder = order

	return layouts.Build(name, data, opts)
}

// writePacket renders p in the selected output format.
func writePacket(w io.Writer, p *packet.Packet) error {
	format := cfg.Dump.Format
	if dumpFormat != "" {
		format = dumpFormat
	}
	switch format {
	case "text":
		return p.Dump(w)
	case "yaml":
		out, err := yaml.Marshal(p.Snapshot())
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	default:
		return fmt.Errorf("unknown output format %q (text or yaml)", format)
	}
}

// decodeHexString turns "ff eb3f" style input into bytes.
func decodeHexString(s string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\n' {
			return -1
		}
		return r
	}, s)
	data, err := hex.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("bad --hex input: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("bad --hex input: no bytes")
	}
	return data, nil
}

// applyAssignment writes one name=value pair into the layout. Scalar fields
// take integers (0x prefix welcome); bytes fields take the literal string.
func applyAssignment(p *packet.Packet, assign string) error {
	name, value, ok := strings.Cut(assign, "=")
	if !ok {
		return fmt.Errorf("bad --set %q: want name=value", assign)
	}
	f, found := p.FieldByName(name)
	if !found {
		return fmt.Errorf("bad --set %q: no field %q in layout", assign, name)
	}
	if !f.Scalar() {
		return p.SetRaw(name, []byte(value))
	}
	v, err := strconv.ParseUint(value, 0, 32)
	if err != nil {
		return fmt.Errorf("bad --set %q: %w", assign, err)
	}
	return p.SetUint(name, uint32(v))
}
