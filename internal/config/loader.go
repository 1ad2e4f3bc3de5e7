package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = ".codegraft"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for codegraft settings.
const envPrefix = "CODEGRAFT"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// LoadConfig loads configuration from file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("framework.package", DefaultFrameworkPackage)

	viperCfg.SetDefault("style.indent_width", DefaultStyleIndentWidth)
	viperCfg.SetDefault("style.use_tabs", DefaultStyleUseTabs)
	viperCfg.SetDefault("style.single_quote", DefaultStyleSingleQuote)
	viperCfg.SetDefault("style.trailing_comma", DefaultStyleTrailingComma)
	viperCfg.SetDefault("style.bracket_spacing", DefaultStyleBracketSpacing)
	viperCfg.SetDefault("style.print_width", DefaultStylePrintWidth)
	viperCfg.SetDefault("style.line_ending", DefaultStyleLineEnding)

	viperCfg.SetDefault("engine.pinned_version", DefaultEnginePinnedVersion)
	viperCfg.SetDefault("engine.allow_remote", DefaultEngineAllowRemote)
	viperCfg.SetDefault("engine.acquire_timeout_sec", DefaultEngineAcquireTimeoutSec)
	viperCfg.SetDefault("engine.format_timeout_sec", DefaultEngineFormatTimeoutSec)

	viperCfg.SetDefault("quality.accessibility_error_penalty", DefaultAccessibilityErrorPenalty)
	viperCfg.SetDefault("quality.accessibility_warning_penalty", DefaultAccessibilityWarningPenalty)
	viperCfg.SetDefault("quality.accessibility_info_penalty", DefaultAccessibilityInfoPenalty)
	viperCfg.SetDefault("quality.performance_high_penalty", DefaultPerformanceHighPenalty)
	viperCfg.SetDefault("quality.performance_medium_penalty", DefaultPerformanceMediumPenalty)
	viperCfg.SetDefault("quality.performance_low_penalty", DefaultPerformanceLowPenalty)

	viperCfg.SetDefault("settings.path", DefaultSettingsPath)
}
