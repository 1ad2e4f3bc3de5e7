package style

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	// engineBinaryName is the formatting engine executable name.
	engineBinaryName = "prettier"

	// remoteRunnerName is the package runner used for remote acquisition.
	remoteRunnerName = "npx"

	// remoteYesFlag suppresses the package runner's install prompt.
	remoteYesFlag = "--yes"

	// flagVersion asks the engine for its version string.
	flagVersion = "--version"

	// acquireKey is the singleflight key shared by all acquisition attempts.
	acquireKey = "engine"

	// nodeModulesBinDir is the per-project binary directory relative to
	// each ancestor directory searched during local acquisition.
	nodeModulesBinDir = "node_modules/.bin"

	defaultAcquireTimeout = 10 * time.Second
	defaultFormatTimeout  = 30 * time.Second
)

// LoaderOptions configures engine acquisition.
type LoaderOptions struct {
	// WorkDir is the directory the local search walks up from.
	// Empty means the process working directory.
	WorkDir string

	// PinnedVersion is the engine version requested on the remote path.
	PinnedVersion string

	// AllowRemote enables the package runner fallback when the local
	// search finds nothing.
	AllowRemote bool

	// AcquireTimeout bounds one acquisition attempt, including the
	// remote fallback. Zero means the default.
	AcquireTimeout time.Duration

	// FormatTimeout bounds each formatting invocation of an acquired
	// engine. Zero means the default.
	FormatTimeout time.Duration

	// Logger receives acquisition events. Nil discards them.
	Logger *slog.Logger
}

// Loader acquires a formatting engine lazily and caches the handle.
// Concurrent callers share a single in-flight acquisition: the first
// call starts the probe and every simultaneous call waits on the same
// result. A caller whose context expires abandons the wait without
// cancelling the shared attempt, so a late success still fills the cache.
type Loader struct {
	opts   LoaderOptions
	logger *slog.Logger

	group singleflight.Group

	mu     sync.RWMutex
	engine Engine

	// Test seams. Production values are exec.LookPath and probeVersion.
	lookPath func(file string) (string, error)
	probe    func(ctx context.Context, argv []string) (string, error)
}

// NewLoader creates a Loader. Zero-value timeouts take defaults.
func NewLoader(opts LoaderOptions) *Loader {
	if opts.AcquireTimeout <= 0 {
		opts.AcquireTimeout = defaultAcquireTimeout
	}

	if opts.FormatTimeout <= 0 {
		opts.FormatTimeout = defaultFormatTimeout
	}

	if opts.WorkDir == "" {
		if wd, err := os.Getwd(); err == nil {
			opts.WorkDir = wd
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Loader{
		opts:     opts,
		logger:   logger,
		lookPath: exec.LookPath,
		probe:    probeVersion,
	}
}

// Engine returns the cached engine handle, acquiring it on first use.
// All concurrent first calls share one acquisition. The returned error
// always wraps ErrEngineUnavailable on failure.
func (l *Loader) Engine(ctx context.Context) (Engine, error) {
	l.mu.RLock()
	cached := l.engine
	l.mu.RUnlock()

	if cached != nil {
		return cached, nil
	}

	ch := l.group.DoChan(acquireKey, func() (any, error) {
		return l.acquire()
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}

		eng, ok := res.Val.(Engine)
		if !ok {
			return nil, ErrEngineUnavailable
		}

		return eng, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", ErrEngineUnavailable, ctx.Err())
	}
}

// Ready reports whether an engine is acquired or acquirable. It is used
// as a readiness check by the MCP metrics endpoint.
func (l *Loader) Ready(ctx context.Context) error {
	_, err := l.Engine(ctx)

	return err
}

// acquire runs one acquisition attempt bounded by AcquireTimeout.
// It deliberately uses a detached context: the attempt is shared by all
// waiting callers, so no single caller's cancellation may abort it.
func (l *Loader) acquire() (Engine, error) {
	ctx, cancel := context.WithTimeout(context.Background(), l.opts.AcquireTimeout)
	defer cancel()

	eng, localErr := l.acquireLocal(ctx)
	if localErr == nil {
		l.store(eng)

		return eng, nil
	}

	if !l.opts.AllowRemote {
		return nil, fmt.Errorf("%w: %w", ErrEngineUnavailable, localErr)
	}

	eng, remoteErr := l.acquireRemote(ctx)
	if remoteErr == nil {
		l.store(eng)

		return eng, nil
	}

	return nil, fmt.Errorf("%w: %w", ErrEngineUnavailable, errors.Join(localErr, remoteErr))
}

func (l *Loader) store(eng Engine) {
	l.mu.Lock()
	l.engine = eng
	l.mu.Unlock()
}

// acquireLocal searches ancestor node_modules/.bin directories, then PATH.
func (l *Loader) acquireLocal(ctx context.Context) (Engine, error) {
	path, findErr := l.findLocalBinary()
	if findErr != nil {
		return nil, findErr
	}

	version, probeErr := l.probe(ctx, []string{path, flagVersion})
	if probeErr != nil {
		return nil, fmt.Errorf("probe %s: %w", path, probeErr)
	}

	info := EngineInfo{Source: EngineSourceLocal, Version: version, Path: path}
	l.logger.Info("formatting engine acquired",
		"source", info.Source, "version", info.Version, "path", info.Path)

	return newExecEngine([]string{path}, info, l.opts.FormatTimeout), nil
}

func (l *Loader) findLocalBinary() (string, error) {
	dir := l.opts.WorkDir

	for dir != "" {
		candidate := filepath.Join(dir, nodeModulesBinDir, engineBinaryName)
		if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}

		dir = parent
	}

	path, err := l.lookPath(engineBinaryName)
	if err != nil {
		return "", fmt.Errorf("locate %s: %w", engineBinaryName, err)
	}

	return path, nil
}

// acquireRemote probes the engine through the package runner, pinning
// the configured version so repeated acquisitions are reproducible.
func (l *Loader) acquireRemote(ctx context.Context) (Engine, error) {
	runnerPath, err := l.lookPath(remoteRunnerName)
	if err != nil {
		return nil, fmt.Errorf("locate %s: %w", remoteRunnerName, err)
	}

	spec := engineBinaryName
	if l.opts.PinnedVersion != "" {
		spec += "@" + l.opts.PinnedVersion
	}

	argv := []string{runnerPath, remoteYesFlag, spec}

	version, probeErr := l.probe(ctx, append(argv, flagVersion))
	if probeErr != nil {
		return nil, fmt.Errorf("probe %s %s: %w", remoteRunnerName, spec, probeErr)
	}

	info := EngineInfo{Source: EngineSourceRemote, Version: version, Path: runnerPath}
	l.logger.Info("formatting engine acquired",
		"source", info.Source, "version", info.Version, "path", info.Path)

	return newExecEngine(argv, info, l.opts.FormatTimeout), nil
}

// probeVersion runs argv and returns its trimmed stdout.
func probeVersion(ctx context.Context, argv []string) (string, error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("run %s: %w", argv[0], err)
	}

	return strings.TrimSpace(string(out)), nil
}
