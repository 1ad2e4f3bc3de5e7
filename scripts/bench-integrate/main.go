// bench-integrate measures pipeline throughput, per-operation latency,
// and heap growth over a batch of synthesized components.
//
// Usage:
//
//	go run ./scripts/bench-integrate --count 10000 \
//	  --profile-dir docs/profiles/integrate
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/codegraft/codegraft/internal/imports"
	"github.com/codegraft/codegraft/internal/integrate"
	"github.com/codegraft/codegraft/internal/quality"
	"github.com/codegraft/codegraft/internal/style"
)

// identityEngine satisfies the engine contract without an external
// process, so the bench isolates pipeline cost from engine cost.
type identityEngine struct{}

func (identityEngine) Info() style.EngineInfo {
	return style.EngineInfo{Source: style.EngineSourceLocal, Version: "bench", Path: "identity"}
}

func (identityEngine) Format(_ context.Context, req style.FormatRequest) (string, error) {
	return req.Source, nil
}

type staticProvider struct{}

func (staticProvider) Engine(_ context.Context) (style.Engine, error) {
	return identityEngine{}, nil
}

// componentVariants cycle through the shapes the pipeline sees in
// practice: clean markup, remediation targets, hook users, and
// import-heavy snippets.
var componentVariants = []string{
	"import axios from 'axios';\n\nexport const fetchUser = (id) => axios.get('/users/' + id);\n",

	"<img src=\"banner.png\">\n<div onClick={open}>Open</div>\n",

	"import { useMemo } from 'react';\n\nexport function Sum({ items }) {\n" +
		"  const total = useMemo(() => items.reduce((a, b) => a + b, 0), [items]);\n" +
		"  return <strong>{total}</strong>;\n}\n",

	"import moment from 'moment';\nimport _ from 'lodash';\n\n" +
		"export function Stamp() {\n  return <time>{moment().format()}</time>;\n}\n",

	"export function Counter() {\n  const [n, setN] = useState(0);\n" +
		"  return <button onClick={() => setN(n + 1)} style={{ padding: 8 }}>{n}</button>;\n}\n",
}

const benchDestination = "import React from 'react';\nimport './App.css';\n\n" +
	"export function App() {\n  return <main>app</main>;\n}\n"

func main() {
	count := flag.Int("count", 10000, "Number of integrations to run")
	profileDir := flag.String("profile-dir", "", "Directory to write profiles (empty = no profiles)")
	cpuProfile := flag.Bool("cpu-profile", false, "Write CPU profile to profile-dir/cpu.prof")
	realEngine := flag.Bool("real-engine", false, "Acquire a real formatting engine instead of the in-process one")

	flag.Parse()

	if *profileDir != "" {
		if err := os.MkdirAll(*profileDir, 0o755); err != nil {
			log.Fatalf("mkdir profile-dir: %v", err)
		}
	}

	if *cpuProfile {
		if *profileDir == "" {
			log.Fatal("--cpu-profile requires --profile-dir")
		}

		cpuFile, cpuErr := os.Create(filepath.Join(*profileDir, "cpu.prof"))
		if cpuErr != nil {
			log.Fatalf("create cpu profile: %v", cpuErr)
		}

		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			log.Fatalf("start cpu profile: %v", err)
		}

		defer func() {
			pprof.StopCPUProfile()
			_ = cpuFile.Close()
		}()
	}

	pipeline := buildPipeline(*realEngine)
	ctx := context.Background()

	runtime.GC()

	var before runtime.MemStats

	runtime.ReadMemStats(&before)

	start := time.Now()

	var findings, fixes int

	for i := 0; i < *count; i++ {
		result, err := pipeline.Integrate(ctx, integrate.Request{
			Source:      componentVariants[i%len(componentVariants)],
			FileName:    "Bench.jsx",
			Destination: benchDestination,
		})
		if err != nil {
			log.Fatalf("integrate: %v", err)
		}

		findings += len(result.Report.Findings)
		fixes += len(result.Report.AppliedFixes)
	}

	elapsed := time.Since(start)

	runtime.GC()

	var after runtime.MemStats

	runtime.ReadMemStats(&after)

	if *profileDir != "" {
		writeHeapProfile(filepath.Join(*profileDir, "heap.prof"))
	}

	fmt.Printf("ops:          %d\n", *count)
	fmt.Printf("total:        %v\n", elapsed)
	fmt.Printf("per op:       %v\n", elapsed/time.Duration(*count))
	fmt.Printf("findings:     %d\n", findings)
	fmt.Printf("fixes:        %d\n", fixes)
	fmt.Printf("alloc total:  %.1f MiB\n", float64(after.TotalAlloc-before.TotalAlloc)/(1<<20))
	fmt.Printf("heap in use:  %.1f MiB\n", float64(after.HeapInuse)/(1<<20))
}

func buildPipeline(realEngine bool) *integrate.Pipeline {
	logger := slog.New(slog.DiscardHandler)

	var provider style.EngineProvider = staticProvider{}
	if realEngine {
		provider = style.NewLoader(style.LoaderOptions{Logger: logger})
	}

	return integrate.New(integrate.Options{
		Normalizer: style.NewNormalizer(provider, style.DefaultConfig(), logger),
		Analyzer:   quality.NewAnalyzer(quality.DefaultPolicy()),
		Imports:    imports.NewEngine(imports.DefaultFrameworkPackage),
		Logger:     logger,
	})
}

func writeHeapProfile(path string) {
	file, err := os.Create(path)
	if err != nil {
		log.Printf("create heap profile: %v", err)

		return
	}

	defer func() { _ = file.Close() }()

	if err := pprof.WriteHeapProfile(file); err != nil {
		log.Printf("write heap profile: %v", err)
	}
}
