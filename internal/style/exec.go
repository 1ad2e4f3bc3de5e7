package style

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"slices"
	"strconv"
	"strings"
	"time"
)

// execEngine invokes an external formatting binary per request.
// The argv prefix is either the resolved binary path or the package
// runner invocation; per-request flags are appended to it.
type execEngine struct {
	argv    []string
	info    EngineInfo
	timeout time.Duration
}

func newExecEngine(argv []string, info EngineInfo, timeout time.Duration) *execEngine {
	return &execEngine{argv: argv, info: info, timeout: timeout}
}

// Info reports how this engine was acquired.
func (e *execEngine) Info() EngineInfo {
	return e.info
}

// Format pipes req.Source through the engine binary. Engine diagnostics
// on a non-zero exit surface as ErrFormatRejected; hitting the format
// timeout surfaces the context error.
func (e *execEngine) Format(ctx context.Context, req FormatRequest) (string, error) {
	runCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	args := append(slices.Clone(e.argv[1:]), buildEngineArgs(req)...)

	cmd := exec.CommandContext(runCtx, e.argv[0], args...)
	cmd.Stdin = strings.NewReader(req.Source)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if runErr != nil {
		if runCtx.Err() != nil {
			return "", fmt.Errorf("format timed out after %s: %w", e.timeout, runCtx.Err())
		}

		message := strings.TrimSpace(stderr.String())
		if message == "" {
			message = runErr.Error()
		}

		return "", fmt.Errorf("%w: %s", ErrFormatRejected, message)
	}

	return stdout.String(), nil
}

// buildEngineArgs renders the effective options as engine CLI flags.
// --no-config pins behavior to these flags, ignoring ambient rc files.
func buildEngineArgs(req FormatRequest) []string {
	args := []string{
		"--no-config",
		"--parser", req.Parser,
		"--tab-width", strconv.Itoa(req.Config.IndentWidth),
		"--print-width", strconv.Itoa(req.Config.PrintWidth),
		"--trailing-comma", req.Config.TrailingComma,
		"--end-of-line", req.Config.LineEnding,
	}

	if req.FileName != "" {
		args = append(args, "--stdin-filepath", req.FileName)
	}

	if req.Config.UseTabs {
		args = append(args, "--use-tabs")
	}

	if req.Config.SingleQuote {
		args = append(args, "--single-quote")
	}

	if !req.Config.BracketSpacing {
		args = append(args, "--no-bracket-spacing")
	}

	return args
}
