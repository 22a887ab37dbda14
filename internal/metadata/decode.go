package metadata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/distcheck/internal/errors"
)

// Format identifies the serialization of a metadata document.
type Format string

// Supported document formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks a format from the file extension. Anything that is
// not recognizably YAML or TOML is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// DecodeError reports input that could not be parsed at all.
type DecodeError struct {
	Format Format
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("parsing %s: %v", strings.ToUpper(string(e.Format)), e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decode parses data into a generic document value. JSON numbers are kept
// as json.Number. The result is not checked to be an object; Validate does
// that.
func Decode(data []byte, format Format) (any, error) {
	var (
		doc any
		err error
	)

	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatTOML:
		var table map[string]any
		err = toml.Unmarshal(data, &table)
		doc = table
	case FormatJSON, "":
		format = FormatJSON
		doc, err = decodeJSON(data)
	default:
		return nil, errors.Newf("unsupported document format %q", format)
	}

	if err != nil {
		return nil, &DecodeError{Format: format, Err: err}
	}
	return doc, nil
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty document")
		}
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}
	return doc, nil
}
