// Package cmd implements CLI commands using cobra framework.
package cmd

import (
	"encoding/binary"
	"fmt"

	"github.com/spf13/cobra"

	"firestige.xyz/fieldpack/internal/config"
	"firestige.xyz/fieldpack/internal/log"
)

var (
	// Global flags
	configFile string
	logLevel   string

	// cfg is loaded by the persistent pre-run and read by subcommands.
	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fieldpack",
	Short: "fieldpack - overlay named, typed field layouts on raw packet bytes",
	Long: `fieldpack overlays schema-less field layouts on raw byte buffers and
reads, writes and pretty-prints fields by name, including nested sub-regions.
The bytes stay exactly the protocol encoding; the layout lives only in the tool.

Built-in layouts cover fixed-format frames such as the GPS Initialise Data
Source message (gps128), the RTP fixed header (rtp) and HEPv3 capture
frames (hep3).`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if configFile != "" {
			cfg, err = config.Load(configFile)
		} else {
			cfg = config.Default()
		}
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.Log.Level = logLevel
		}
		return log.Init(cfg.Log)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "",
		"config file path (default: built-in defaults)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level override (debug|info|warn|error)")

	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(pcapCmd)
}

// byteOrderFor resolves the endianness flag/config value.
func byteOrderFor(name string) (binary.ByteOrder, error) {
	switch name {
	case "big":
		return binary.BigEndian, nil
	case "little":
		return binary.LittleEndian, nil
	default:
		return nil, fmt.Errorf("unknown byte order %q (big or little)", name)
	}
}
