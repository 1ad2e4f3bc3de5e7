// Package report serializes pipeline results into machine-readable
// formats. Terminal and plot rendering live in internal/render; this
// package covers JSON, YAML, and the compressed binary envelope.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects a report serialization.
type Format string

// Supported output formats. Text and plot are rendered, not
// serialized, and are dispatched by the commands that own a terminal.
const (
	FormatText   Format = "text"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatBinary Format = "binary"
	FormatPlot   Format = "plot"
)

// ErrUnknownFormat indicates a format name outside the supported set.
var ErrUnknownFormat = errors.New("unknown report format")

// ParseFormat maps a flag value to a Format, case-insensitively.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	case FormatBinary:
		return FormatBinary, nil
	case FormatPlot:
		return FormatPlot, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Write serializes value to w in the named machine format.
func Write(value any, format Format, w io.Writer) error {
	switch format {
	case FormatJSON:
		return WriteJSON(value, w)
	case FormatYAML:
		return WriteYAML(value, w)
	case FormatBinary:
		return EncodeEnvelope(value, w)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
	}
}

// WriteJSON writes value as two-space indented JSON.
func WriteJSON(value any, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(value)
	if err != nil {
		return fmt.Errorf("encode json report: %w", err)
	}

	return nil
}

// WriteYAML writes value as a YAML document.
func WriteYAML(value any, w io.Writer) error {
	data, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal yaml report: %w", err)
	}

	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("write yaml report: %w", err)
	}

	return nil
}
