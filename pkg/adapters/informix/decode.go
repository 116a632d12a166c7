package informix

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// informixCodesets maps Informix locale codeset names and numbers to encodings.
var informixCodesets = map[string]encoding.Encoding{
	"819":     charmap.ISO8859_1,
	"8859-1":  charmap.ISO8859_1,
	"8859-2":  charmap.ISO8859_2,
	"8859-15": charmap.ISO8859_15,
	"1252":    charmap.Windows1252,
	"cp1252":  charmap.Windows1252,
	"1250":    charmap.Windows1250,
	"cp1250":  charmap.Windows1250,
	"437":     charmap.CodePage437,
	"850":     charmap.CodePage850,
	"utf8":    unicode.UTF8,
	"57372":   unicode.UTF8,
}

// Decoder turns byte values into strings. Bytes that are not valid in the
// codeset are replaced with U+FFFD rather than failing the row.
type Decoder struct {
	enc encoding.Encoding
}

// NewDecoder returns a decoder for an Informix codeset name, an IANA
// charset name, or UTF-8 when codeset is empty.
func NewDecoder(codeset string) (*Decoder, error) {
	name := strings.ToLower(strings.TrimSpace(codeset))
	if name == "" {
		return utf8Decoder(), nil
	}
	if enc, ok := informixCodesets[name]; ok {
		return &Decoder{enc: enc}, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unsupported codeset %q", codeset)
	}
	return &Decoder{enc: enc}, nil
}

func utf8Decoder() *Decoder {
	return &Decoder{enc: unicode.UTF8}
}

// DecodeValue decodes []byte values; other values are returned unchanged.
func (d *Decoder) DecodeValue(v any) any {
	b, ok := v.([]byte)
	if !ok {
		return v
	}
	s, err := d.enc.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "�")
	}
	return string(s)
}
