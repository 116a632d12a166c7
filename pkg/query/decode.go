package query

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Decode reads a JSON query description. Numeric literals are kept as
// json.Number so they are never rounded through float64.
func Decode(r io.Reader) (*Query, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var q Query
	if err := dec.Decode(&q); err != nil {
		return nil, fmt.Errorf("decode query: %w", err)
	}
	return &q, nil
}

// DecodeYAML reads a YAML query description using the JSON field names.
func DecodeYAML(r io.Reader) (*Query, error) {
	var q Query
	if err := yaml.NewDecoder(r).Decode(&q); err != nil {
		return nil, fmt.Errorf("decode query yaml: %w", err)
	}
	return &q, nil
}

// DecodeTOML reads a TOML query description. Keys match the JSON field
// names case-insensitively.
func DecodeTOML(r io.Reader) (*Query, error) {
	var q Query
	if _, err := toml.NewDecoder(r).Decode(&q); err != nil {
		return nil, fmt.Errorf("decode query toml: %w", err)
	}
	return &q, nil
}

// DecodeBytes picks the decoder from a file extension (".json", ".yaml",
// ".yml", ".toml"); anything else is decoded as JSON.
func DecodeBytes(ext string, data []byte) (*Query, error) {
	r := bytes.NewReader(data)
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return DecodeYAML(r)
	case ".toml":
		return DecodeTOML(r)
	default:
		return Decode(r)
	}
}

// DecodeFile reads and decodes a query description file.
func DecodeFile(path string) (*Query, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read query file: %w", err)
	}
	return DecodeBytes(filepath.Ext(path), data)
}
