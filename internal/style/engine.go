package style

import (
	"context"
	"errors"
)

// EngineSource identifies how a formatting engine was acquired.
type EngineSource string

const (
	// EngineSourceLocal is a project-local or PATH-resolved binary.
	EngineSourceLocal EngineSource = "local"
	// EngineSourceRemote is an engine fetched through the package runner.
	EngineSourceRemote EngineSource = "remote"
)

// Sentinel errors for engine acquisition and formatting.
var (
	// ErrEngineUnavailable indicates no formatting engine could be acquired
	// through either the local or the remote path. It is stable across calls:
	// every acquisition failure surfaces as this error.
	ErrEngineUnavailable = errors.New("style: formatting engine unavailable")

	// ErrFormatRejected indicates the engine parsed the input and refused it.
	// The wrapped message carries the engine's own diagnostics.
	ErrFormatRejected = errors.New("style: engine rejected source")
)

// EngineInfo describes an acquired engine for logs and reports.
type EngineInfo struct {
	Source  EngineSource `json:"source"`
	Version string       `json:"version"`
	Path    string       `json:"path"`
}

// FormatRequest carries one formatting invocation.
type FormatRequest struct {
	// Source is the text to format.
	Source string

	// FileName is the original file name hint, if any. Passed to the
	// engine for its own dialect-sensitive decisions.
	FileName string

	// Parser is the engine parser name resolved from the dialect.
	Parser string

	// Config holds the effective formatting options.
	Config Config
}

// Engine formats source text. Implementations must be safe for
// concurrent use.
type Engine interface {
	// Info reports how this engine was acquired.
	Info() EngineInfo

	// Format returns the formatted text, or an error wrapping
	// ErrFormatRejected when the engine refuses the input.
	Format(ctx context.Context, req FormatRequest) (string, error)
}

// EngineProvider supplies a shared engine handle on demand.
type EngineProvider interface {
	Engine(ctx context.Context) (Engine, error)
}
