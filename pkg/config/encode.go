package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// File formats understood by Encode.
const (
	EncodingYAML = "yaml"
	EncodingJSON = "json"
)

const yamlIndent = 2

// Encode renders the persisted fields of cfg as a configuration file. YAML
// output starts with header, one comment line per entry; JSON has no
// comments, so the header is dropped.
func Encode(cfg *Config, encoding string, header ...string) ([]byte, error) {
	var buf bytes.Buffer

	switch encoding {
	case EncodingJSON:
		out, err := json.MarshalIndent(cfg, "", strings.Repeat(" ", yamlIndent))
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		buf.Write(out)
		buf.WriteByte('\n')

	case EncodingYAML, "":
		for _, line := range header {
			buf.WriteString(strings.TrimRight("# "+line, " "))
			buf.WriteByte('\n')
		}
		if len(header) > 0 {
			buf.WriteByte('\n')
		}
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(yamlIndent)
		if err := enc.Encode(cfg); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}

	default:
		return nil, fmt.Errorf("unknown encoding %q: must be %s or %s", encoding, EncodingYAML, EncodingJSON)
	}

	return buf.Bytes(), nil
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Include = slices.Clone(c.Include)
	clone.Exclude = slices.Clone(c.Exclude)
	clone.Ignore = slices.Clone(c.Ignore)
	return &clone
}
