package imports

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/codegraft/codegraft/pkg/textscan"
)

// frameworkPrimitives are the composition primitives whose bare use in
// a body implies the ambient framework import.
var frameworkPrimitives = []string{"useState", "useEffect", "useMemo", "useCallback", "useRef"}

// reMarkupElement matches an opening markup element, the other signal
// that a body needs the framework in scope.
var reMarkupElement = regexp.MustCompile(`<[A-Za-z][\w-]*(\s[^<>]*)?/?>`)

// PruneUnused drops bindings with no whole-word occurrence in body and
// returns the surviving declarations. Import lines inside body are
// excluded from the search, so a binding referenced only by an import
// never counts as used. A declaration that loses every binding drops
// entirely unless it carries the side-effect form; those always
// survive. The input is left unmodified.
func PruneUnused(decls []Declaration, body string) []Declaration {
	searchable := stripImportLines(body)

	pruned := make([]Declaration, 0, len(decls))

	for _, decl := range decls {
		kept := decl

		if kept.Default != "" && !textscan.ContainsWord(searchable, kept.Default) {
			kept.Default = ""
		}

		var named []string

		for _, binding := range kept.Named {
			if textscan.ContainsWord(searchable, namedLocal(binding)) {
				named = append(named, binding)
			}
		}

		kept.Named = named

		if kept.bindsNothing() && !kept.SideEffect {
			continue
		}

		pruned = append(pruned, kept)
	}

	return pruned
}

// InferFrameworkNeeds synthesizes a framework declaration for a body
// that uses the framework without importing it: generated snippets
// often reference composition primitives or markup elements and assume
// an ambient import. The declaration carries the conventional default
// binding plus any referenced primitives as named bindings. ok is false
// when the body shows no framework use.
func (e *Engine) InferFrameworkNeeds(body string) (Declaration, bool) {
	searchable := stripImportLines(body)

	var named []string

	for _, primitive := range frameworkPrimitives {
		if textscan.ContainsWord(searchable, primitive) {
			named = append(named, primitive)
		}
	}

	if len(named) == 0 && !reMarkupElement.MatchString(searchable) {
		return Declaration{}, false
	}

	decl := Declaration{
		Module:  e.frameworkPkg,
		Default: defaultBindingName(e.frameworkPkg),
		Named:   named,
	}

	return decl, true
}

// defaultBindingName derives the conventional default binding for a
// framework package: the final path segment, capitalized, with
// non-identifier characters removed ("react" becomes "React").
func defaultBindingName(pkg string) string {
	base := pkg[strings.LastIndexByte(pkg, '/')+1:]

	var ident strings.Builder

	for _, r := range base {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '$' {
			ident.WriteRune(r)
		}
	}

	if ident.Len() == 0 {
		return ""
	}

	name := ident.String()

	return strings.ToUpper(name[:1]) + name[1:]
}
