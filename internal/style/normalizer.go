package style

import (
	"context"
	"log/slog"
)

// Outcome is the result of one normalization request. A failed request
// still carries a best-effort repaired candidate and remediation
// suggestions; callers decide whether to use, display, or discard them.
type Outcome struct {
	// Success reports whether the engine produced formatted text.
	Success bool `json:"success"`

	// FormattedText is the engine output on success. On failure it holds
	// the repaired candidate when Repaired is true, and is empty otherwise.
	FormattedText string `json:"formattedText,omitempty"`

	// Error is the flattened failure message. Empty on success.
	Error string `json:"error,omitempty"`

	// Suggestions are remediation hints derived from the error message.
	Suggestions []string `json:"suggestions,omitempty"`

	// Repaired reports whether FormattedText is a lexical repair candidate
	// rather than engine output.
	Repaired bool `json:"repaired,omitempty"`

	// Engine identifies the engine that handled (or failed) the request.
	Engine EngineInfo `json:"engine"`

	// Dialect is the resolved source dialect.
	Dialect Dialect `json:"dialect"`
}

// Normalizer formats source text through a lazily acquired engine.
// It never returns an error: every failure mode is folded into the
// Outcome so upstream pipelines always complete.
type Normalizer struct {
	provider EngineProvider
	defaults Config
	logger   *slog.Logger
}

// NewNormalizer creates a Normalizer with the given engine provider and
// default options. A nil logger discards log output.
func NewNormalizer(provider EngineProvider, defaults Config, logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Normalizer{provider: provider, defaults: defaults, logger: logger}
}

// Format normalizes source. The fileNameHint drives dialect resolution
// and is forwarded to the engine; overrides adjust the default options
// after schema validation. Invalid override documents are ignored whole.
func (n *Normalizer) Format(ctx context.Context, source, fileNameHint string, overrides map[string]any) Outcome {
	dialect := DetectDialect(fileNameHint, source)

	cfg := n.defaults

	if validateErr := ValidateOverrides(overrides); validateErr != nil {
		n.logger.WarnContext(ctx, "ignoring style overrides", "error", validateErr)
	} else {
		cfg = cfg.Merge(overrides)
	}

	eng, acquireErr := n.provider.Engine(ctx)
	if acquireErr != nil {
		n.logger.WarnContext(ctx, "formatting engine unavailable", "error", acquireErr)

		return n.failure(source, dialect, EngineInfo{}, acquireErr)
	}

	formatted, formatErr := eng.Format(ctx, FormatRequest{
		Source:   source,
		FileName: fileNameHint,
		Parser:   dialect.Parser,
		Config:   cfg,
	})
	if formatErr != nil {
		n.logger.DebugContext(ctx, "format rejected",
			"parser", dialect.Parser, "error", formatErr)

		return n.failure(source, dialect, eng.Info(), formatErr)
	}

	return Outcome{
		Success:       true,
		FormattedText: formatted,
		Engine:        eng.Info(),
		Dialect:       dialect,
	}
}

func (n *Normalizer) failure(source string, dialect Dialect, info EngineInfo, cause error) Outcome {
	out := Outcome{
		Success:     false,
		Error:       cause.Error(),
		Suggestions: SuggestionsForError(cause.Error()),
		Engine:      info,
		Dialect:     dialect,
	}

	candidate, changed := RepairCandidate(source)
	if changed {
		out.FormattedText = candidate
		out.Repaired = true
	}

	return out
}
