package config

import "errors"

// Config is the top-level configuration struct for codegraft.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Framework FrameworkConfig `mapstructure:"framework"`
	Style     StyleConfig     `mapstructure:"style"`
	Engine    EngineConfig    `mapstructure:"engine"`
	Quality   QualityConfig   `mapstructure:"quality"`
	Settings  SettingsConfig  `mapstructure:"settings"`
}

// FrameworkConfig identifies the UI framework whose imports receive
// top-of-file placement and whose primitives drive import inference.
type FrameworkConfig struct {
	Package string `mapstructure:"package"`
}

// StyleConfig holds the default formatting options passed to the engine.
// A settings store or per-request override may replace individual fields.
type StyleConfig struct {
	IndentWidth    int    `mapstructure:"indent_width"`
	UseTabs        bool   `mapstructure:"use_tabs"`
	SingleQuote    bool   `mapstructure:"single_quote"`
	TrailingComma  string `mapstructure:"trailing_comma"`
	BracketSpacing bool   `mapstructure:"bracket_spacing"`
	PrintWidth     int    `mapstructure:"print_width"`
	LineEnding     string `mapstructure:"line_ending"`
}

// EngineConfig holds formatting engine acquisition knobs.
type EngineConfig struct {
	PinnedVersion     string `mapstructure:"pinned_version"`
	AllowRemote       bool   `mapstructure:"allow_remote"`
	AcquireTimeoutSec int    `mapstructure:"acquire_timeout_sec"`
	FormatTimeoutSec  int    `mapstructure:"format_timeout_sec"`
}

// QualityConfig holds the penalty weights applied per finding when
// computing the accessibility and performance scores.
type QualityConfig struct {
	AccessibilityErrorPenalty   int `mapstructure:"accessibility_error_penalty"`
	AccessibilityWarningPenalty int `mapstructure:"accessibility_warning_penalty"`
	AccessibilityInfoPenalty    int `mapstructure:"accessibility_info_penalty"`
	PerformanceHighPenalty      int `mapstructure:"performance_high_penalty"`
	PerformanceMediumPenalty    int `mapstructure:"performance_medium_penalty"`
	PerformanceLowPenalty       int `mapstructure:"performance_low_penalty"`
}

// SettingsConfig holds the persisted settings store location.
type SettingsConfig struct {
	Path string `mapstructure:"path"`
}

// Valid trailing comma modes accepted by the formatting engine.
const (
	TrailingCommaNone = "none"
	TrailingCommaES5  = "es5"
	TrailingCommaAll  = "all"
)

// Valid line ending modes accepted by the formatting engine.
const (
	LineEndingLF   = "lf"
	LineEndingCRLF = "crlf"
	LineEndingAuto = "auto"
)

// Sentinel errors for configuration validation.
var (
	// ErrEmptyFrameworkPackage indicates the framework package name is empty.
	ErrEmptyFrameworkPackage = errors.New("framework.package must be non-empty")
	// ErrInvalidIndentWidth indicates the indent width is not positive.
	ErrInvalidIndentWidth = errors.New("style.indent_width must be positive")
	// ErrInvalidPrintWidth indicates the print width is not positive.
	ErrInvalidPrintWidth = errors.New("style.print_width must be positive")
	// ErrInvalidTrailingComma indicates an unknown trailing comma mode.
	ErrInvalidTrailingComma = errors.New("style.trailing_comma must be one of none, es5, all")
	// ErrInvalidLineEnding indicates an unknown line ending mode.
	ErrInvalidLineEnding = errors.New("style.line_ending must be one of lf, crlf, auto")
	// ErrInvalidAcquireTimeout indicates the acquire timeout is not positive.
	ErrInvalidAcquireTimeout = errors.New("engine.acquire_timeout_sec must be positive")
	// ErrInvalidFormatTimeout indicates the format timeout is not positive.
	ErrInvalidFormatTimeout = errors.New("engine.format_timeout_sec must be positive")
	// ErrNegativePenalty indicates a penalty weight is negative.
	ErrNegativePenalty = errors.New("quality penalty weights must be non-negative")
)

// Validate checks Config invariants and returns the first error found.
func (c *Config) Validate() error {
	if c.Framework.Package == "" {
		return ErrEmptyFrameworkPackage
	}

	styleErr := c.validateStyle()
	if styleErr != nil {
		return styleErr
	}

	engineErr := c.validateEngine()
	if engineErr != nil {
		return engineErr
	}

	return c.validateQuality()
}

func (c *Config) validateStyle() error {
	if c.Style.IndentWidth <= 0 {
		return ErrInvalidIndentWidth
	}

	if c.Style.PrintWidth <= 0 {
		return ErrInvalidPrintWidth
	}

	switch c.Style.TrailingComma {
	case TrailingCommaNone, TrailingCommaES5, TrailingCommaAll:
	default:
		return ErrInvalidTrailingComma
	}

	switch c.Style.LineEnding {
	case LineEndingLF, LineEndingCRLF, LineEndingAuto:
	default:
		return ErrInvalidLineEnding
	}

	return nil
}

func (c *Config) validateEngine() error {
	if c.Engine.AcquireTimeoutSec <= 0 {
		return ErrInvalidAcquireTimeout
	}

	if c.Engine.FormatTimeoutSec <= 0 {
		return ErrInvalidFormatTimeout
	}

	return nil
}

func (c *Config) validateQuality() error {
	penalties := []int{
		c.Quality.AccessibilityErrorPenalty,
		c.Quality.AccessibilityWarningPenalty,
		c.Quality.AccessibilityInfoPenalty,
		c.Quality.PerformanceHighPenalty,
		c.Quality.PerformanceMediumPenalty,
		c.Quality.PerformanceLowPenalty,
	}

	for _, p := range penalties {
		if p < 0 {
			return ErrNegativePenalty
		}
	}

	return nil
}
