package svcconfig

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/sectrean/svcrepo/internal/errors"
)

// Format is the encoding of a service table.
type Format int

const (
	FormatTOML Format = iota + 1
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// FormatFromPath returns the format matching the extension of path.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, errors.Errorf("unsupported file extension %q", ext)
	}
}

// table is the decoded form of a service table file.
type table struct {
	Services []entry `toml:"service" yaml:"service"`
}

type entry struct {
	Name           string `toml:"name" yaml:"name"`
	Capability     string `toml:"capability" yaml:"capability"`
	Implementation string `toml:"implementation" yaml:"implementation"`
	Singleton      bool   `toml:"singleton" yaml:"singleton"`
	Args           []any  `toml:"args" yaml:"args"`
}

func decode(data []byte, f Format) (table, error) {
	var t table

	switch f {
	case FormatTOML:
		md, err := toml.Decode(string(data), &t)
		if err != nil {
			return t, errors.Wrap(err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return t, errors.Errorf("decode toml: unknown key %q", undecoded[0].String())
		}

	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&t); err != nil && !errors.Is(err, io.EOF) {
			return t, errors.Wrap(err, "decode yaml")
		}

	default:
		return t, errors.Errorf("unsupported format %d", f)
	}

	return t, nil
}
