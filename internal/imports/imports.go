// Package imports resolves module import declarations in generated
// source text: parsing the leading import block, classifying modules by
// origin, merging a component's declarations into a destination file's,
// pruning unused bindings, and rendering one canonical grouped block.
//
// All analysis is lexical. Line shapes the parser does not recognize
// are skipped, never reported; Parse documents the accepted forms.
package imports

import (
	"cmp"
	"slices"
	"strings"
)

// DefaultFrameworkPackage is the UI framework module assumed when none
// is configured.
const DefaultFrameworkPackage = "react"

// Origin is the grouping bucket a module belongs to.
type Origin string

// Origin classes, listed in canonical block order.
const (
	OriginFramework  Origin = "framework"
	OriginThirdParty Origin = "thirdParty"
	OriginLocal      Origin = "local"
	OriginStyle      Origin = "style"
)

// originRank fixes the bucket order of the canonical import block.
var originRank = map[Origin]int{
	OriginFramework:  0,
	OriginThirdParty: 1,
	OriginLocal:      2,
	OriginStyle:      3,
}

// stylesheetSuffixes classify a module as style origin. Module-scoped
// variants (Button.module.css) end in the plain suffix and need no
// entries of their own.
var stylesheetSuffixes = []string{".css", ".scss", ".sass", ".less", ".styl"}

// Engine resolves imports against a configured framework package.
type Engine struct {
	frameworkPkg string
}

// NewEngine creates an Engine. An empty framework package falls back to
// DefaultFrameworkPackage.
func NewEngine(frameworkPkg string) *Engine {
	if frameworkPkg == "" {
		frameworkPkg = DefaultFrameworkPackage
	}

	return &Engine{frameworkPkg: frameworkPkg}
}

// Classify buckets a module by origin. The precedence is fixed:
// stylesheet suffixes first, then the framework package and its
// subpaths, then local paths, and everything else is third party.
func (e *Engine) Classify(module string) Origin {
	for _, suffix := range stylesheetSuffixes {
		if strings.HasSuffix(module, suffix) {
			return OriginStyle
		}
	}

	if module == e.frameworkPkg || strings.HasPrefix(module, e.frameworkPkg+"/") {
		return OriginFramework
	}

	if strings.HasPrefix(module, ".") || strings.HasPrefix(module, "/") {
		return OriginLocal
	}

	return OriginThirdParty
}

// Merge unions two declaration collections keyed on module. When both
// sides declare the same module, the existing default binding wins and
// named bindings union as a set; a bare side-effect form on either side
// marks the result. Modules present only in incoming append after all
// existing ones. Neither input is modified.
func Merge(existing, incoming []Declaration) []Declaration {
	merged := make([]Declaration, 0, len(existing)+len(incoming))
	index := make(map[string]int, len(existing)+len(incoming))

	for _, decl := range existing {
		merged = appendFold(merged, index, decl)
	}

	for _, decl := range incoming {
		merged = appendFold(merged, index, decl)
	}

	return merged
}

// appendFold adds decl to decls, folding it into the declaration
// already indexed under the same module when one exists.
func appendFold(decls []Declaration, index map[string]int, decl Declaration) []Declaration {
	if i, ok := index[decl.Module]; ok {
		decls[i] = foldDeclarations(decls[i], decl)

		return decls
	}

	index[decl.Module] = len(decls)

	return append(decls, decl)
}

// foldDeclarations merges b into a. The first default binding wins.
func foldDeclarations(a, b Declaration) Declaration {
	if a.Default == "" {
		a.Default = b.Default
	}

	a.Named = unionNamed(a.Named, b.Named)
	a.SideEffect = a.SideEffect || b.SideEffect

	return a
}

// unionNamed unions two binding lists preserving first-seen order.
func unionNamed(a, b []string) []string {
	if len(b) == 0 {
		return a
	}

	seen := make(map[string]struct{}, len(a)+len(b))
	union := make([]string, 0, len(a)+len(b))

	for _, binding := range a {
		if _, ok := seen[binding]; !ok {
			seen[binding] = struct{}{}

			union = append(union, binding)
		}
	}

	for _, binding := range b {
		if _, ok := seen[binding]; !ok {
			seen[binding] = struct{}{}

			union = append(union, binding)
		}
	}

	return union
}

// SortAndGroup orders declarations into the canonical block order:
// origin buckets [framework, thirdParty, local, style], lexical by
// module within each bucket. The input is left unmodified.
func (e *Engine) SortAndGroup(decls []Declaration) []Declaration {
	sorted := slices.Clone(decls)

	slices.SortStableFunc(sorted, func(a, b Declaration) int {
		if c := cmp.Compare(originRank[e.Classify(a.Module)], originRank[e.Classify(b.Module)]); c != 0 {
			return c
		}

		return cmp.Compare(a.Module, b.Module)
	})

	return sorted
}

// RenderBlock renders declarations as the canonical import block, one
// line per declaration with a blank line between origin groups. The
// input is expected in SortAndGroup order. Returns "" for no
// declarations.
func (e *Engine) RenderBlock(decls []Declaration) string {
	if len(decls) == 0 {
		return ""
	}

	lines := make([]string, 0, len(decls))

	var prev Origin

	for i, decl := range decls {
		origin := e.Classify(decl.Module)
		if i > 0 && origin != prev {
			lines = append(lines, "")
		}

		lines = append(lines, decl.Render())
		prev = origin
	}

	return strings.Join(lines, "\n")
}
