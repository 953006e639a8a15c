// Package layouts holds the built-in packet layouts the CLI can overlay on
// raw bytes, behind a name-indexed registry. Layouts register themselves in
// init, the same way capture sources and sinks do in the agent factory, and
// take an option map that each builder decodes into its own typed struct.
package layouts

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/mitchellh/mapstructure"

	"firestige.xyz/fieldpack/pkg/packet"
)

// Options carries cross-layout settings plus a free-form parameter map for
// the specific builder.
type Options struct {
	// ByteOrder overrides the layout's default scalar byte order when set.
	ByteOrder binary.ByteOrder

	// Params is decoded by the builder into its own option struct; unknown
	// keys are rejected so typos in config or --opt flags surface early.
	Params map[string]any
}

// Decode fills out (a pointer to a builder option struct) from Params.
func (o Options) Decode(out any) error {
	cfg := &mapstructure.DecoderConfig{
		Result:      out,
		ErrorUnused: true,
	}
	dec, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}
	if err := dec.Decode(o.Params); err != nil {
		return fmt.Errorf("layouts: bad options: %w", err)
	}
	return nil
}

// order returns the configured byte order, or def when none was given.
func (o Options) order(def binary.ByteOrder) binary.ByteOrder {
	if o.ByteOrder != nil {
		return o.ByteOrder
	}
	return def
}

// BuildFunc overlays a named layout on data and returns the root packet.
type BuildFunc func(data []byte, opts Options) (*packet.Packet, error)

var registry = make(map[string]BuildFunc)

// Register adds a layout builder under name. Later registrations win, which
// keeps tests free to stub a builder.
func Register(name string, fn BuildFunc) {
	registry[name] = fn
}

// Build overlays the named layout on data.
func Build(name string, data []byte, opts Options) (*packet.Packet, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("layouts: unknown layout %q (have %v)", name, Names())
	}
	return fn(data, opts)
}

// Names lists the registered layouts, sorted for stable help output.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
