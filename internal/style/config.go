// Package style normalizes generated source text through an external
// formatting engine, with dialect detection, schema-validated option
// overrides, and lexical repair candidates when the engine rejects input.
package style

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Trailing comma modes accepted by the formatting engine.
const (
	TrailingCommaNone = "none"
	TrailingCommaES5  = "es5"
	TrailingCommaAll  = "all"
)

// Line ending modes accepted by the formatting engine.
const (
	LineEndingLF   = "lf"
	LineEndingCRLF = "crlf"
	LineEndingAuto = "auto"
)

// Default formatting option values, matching the engine's own defaults
// except for quoting, where generated components standardize on single quotes.
const (
	defaultIndentWidth = 2
	defaultPrintWidth  = 80
)

// Config holds the formatting options passed to the engine. JSON tags match
// the override key names accepted from callers and the settings store.
type Config struct {
	IndentWidth    int    `json:"indentWidth"`
	UseTabs        bool   `json:"useTabs"`
	SingleQuote    bool   `json:"singleQuote"`
	TrailingComma  string `json:"trailingComma"`
	BracketSpacing bool   `json:"bracketSpacing"`
	PrintWidth     int    `json:"printWidth"`
	LineEnding     string `json:"lineEnding"`
}

// DefaultConfig returns the formatting options used when no config file,
// settings store entry, or per-request override applies.
func DefaultConfig() Config {
	return Config{
		IndentWidth:    defaultIndentWidth,
		UseTabs:        false,
		SingleQuote:    true,
		TrailingComma:  TrailingCommaES5,
		BracketSpacing: true,
		PrintWidth:     defaultPrintWidth,
		LineEnding:     LineEndingLF,
	}
}

// ErrInvalidOverrides indicates an override document failed schema validation.
var ErrInvalidOverrides = errors.New("style: invalid option overrides")

// ValidateOverrides checks an override document against the embedded
// option schema. Unknown keys are permitted (Merge skips them); mistyped
// values and out-of-range numbers fail validation.
func ValidateOverrides(overrides map[string]any) error {
	if len(overrides) == 0 {
		return nil
	}

	schemaLoader := gojsonschema.NewBytesLoader(schemaJSON)
	docLoader := gojsonschema.NewGoLoader(overrides)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("validate overrides: %w", err)
	}

	if result.Valid() {
		return nil
	}

	descriptions := make([]string, 0, len(result.Errors()))
	for _, resultErr := range result.Errors() {
		descriptions = append(descriptions, resultErr.String())
	}

	return fmt.Errorf("%w: %s", ErrInvalidOverrides, strings.Join(descriptions, "; "))
}

// Merge returns a copy of c with recognized override keys applied.
// Unknown keys and mistyped values are skipped; Merge never fails.
// Callers wanting strict behavior run ValidateOverrides first.
func (c Config) Merge(overrides map[string]any) Config {
	for key, raw := range overrides {
		switch key {
		case "indentWidth":
			if v, ok := toInt(raw); ok && v > 0 {
				c.IndentWidth = v
			}
		case "useTabs":
			if v, ok := raw.(bool); ok {
				c.UseTabs = v
			}
		case "singleQuote":
			if v, ok := raw.(bool); ok {
				c.SingleQuote = v
			}
		case "trailingComma":
			if v, ok := raw.(string); ok && isTrailingCommaMode(v) {
				c.TrailingComma = v
			}
		case "bracketSpacing":
			if v, ok := raw.(bool); ok {
				c.BracketSpacing = v
			}
		case "printWidth":
			if v, ok := toInt(raw); ok && v > 0 {
				c.PrintWidth = v
			}
		case "lineEnding":
			if v, ok := raw.(string); ok && isLineEndingMode(v) {
				c.LineEnding = v
			}
		}
	}

	return c
}

func isTrailingCommaMode(v string) bool {
	return v == TrailingCommaNone || v == TrailingCommaES5 || v == TrailingCommaAll
}

func isLineEndingMode(v string) bool {
	return v == LineEndingLF || v == LineEndingCRLF || v == LineEndingAuto
}

// toInt normalizes the numeric types produced by JSON decoding, YAML
// decoding, and direct construction.
func toInt(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v == float64(int(v)) {
			return int(v), true
		}

		return 0, false
	default:
		return 0, false
	}
}
