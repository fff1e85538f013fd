package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// Format is an output encoding of a View.
type Format uint8

const (
	FormatJSON Format = iota
	FormatYAML
	FormatCBOR
)

// DefaultIndent is the JSON/YAML indent width, matching the original
// dbc2json tool.
const DefaultIndent = 4

// ErrUnknownFormat is returned for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown format")

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatCBOR:
		return "cbor"
	default:
		return "unknown"
	}
}

// ParseFormat parses a format name. The empty string selects JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "cbor":
		return FormatCBOR, nil
	default:
		return 0, fmt.Errorf("%w: %s (supported: json, yaml, cbor)", ErrUnknownFormat, s)
	}
}

// encMode is the CBOR encoder mode for views. Map keys are sorted so the
// same document always produces the same bytes.
var encMode cbor.EncMode

// decMode is the CBOR decoder mode for views.
var decMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	}
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyQuiet,
		IndefLength: cbor.IndefLengthAllowed,
	}
	decMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR decoder mode: %v", err))
	}
}

// Encode writes v to w in the given format with the default indent.
func Encode(w io.Writer, v any, format Format) error {
	return EncodeIndent(w, v, format, DefaultIndent)
}

// EncodeIndent writes v to w in the given format. indent applies to JSON
// and YAML; CBOR ignores it.
func EncodeIndent(w io.Writer, v any, format Format, indent int) error {
	if indent <= 0 {
		indent = DefaultIndent
	}
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", strings.Repeat(" ", indent))
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(indent)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case FormatCBOR:
		if err := encMode.NewEncoder(w).Encode(v); err != nil {
			return fmt.Errorf("encoding cbor: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnknownFormat, format)
	}
}

// Marshal encodes v to bytes in the given format.
func Marshal(v any, format Format) ([]byte, error) {
	var b strings.Builder
	if err := Encode(&b, v, format); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

// Decode reads a View from r in the given format.
func Decode(r io.Reader, format Format) (*View, error) {
	var v View
	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&v)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&v)
	case FormatCBOR:
		err = decMode.NewDecoder(r).Decode(&v)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s view: %w", format, err)
	}
	return &v, nil
}
