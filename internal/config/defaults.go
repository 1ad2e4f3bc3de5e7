package config

// Framework defaults.
const (
	DefaultFrameworkPackage = "react"
)

// Style defaults. These mirror the formatting engine's own defaults so an
// empty config produces the same output as a bare engine invocation.
const (
	DefaultStyleIndentWidth    = 2
	DefaultStyleUseTabs        = false
	DefaultStyleSingleQuote    = true
	DefaultStyleTrailingComma  = "es5"
	DefaultStyleBracketSpacing = true
	DefaultStylePrintWidth     = 80
	DefaultStyleLineEnding     = "lf"
)

// Engine acquisition defaults.
const (
	DefaultEnginePinnedVersion     = "3.3.3"
	DefaultEngineAllowRemote       = true
	DefaultEngineAcquireTimeoutSec = 10
	DefaultEngineFormatTimeoutSec  = 30
)

// Quality penalty defaults. Accessibility findings weigh by severity,
// performance findings by impact.
const (
	DefaultAccessibilityErrorPenalty   = 10
	DefaultAccessibilityWarningPenalty = 5
	DefaultAccessibilityInfoPenalty    = 2
	DefaultPerformanceHighPenalty      = 15
	DefaultPerformanceMediumPenalty    = 10
	DefaultPerformanceLowPenalty       = 5
)

// Settings store defaults.
const (
	// DefaultSettingsPath is empty, meaning the per-user config directory.
	DefaultSettingsPath = ""
)
