package imports

import (
	"fmt"
	"slices"
	"strings"
)

// aliasSeparator splits an aliased named binding into its exported and
// local halves.
const aliasSeparator = " as "

// Declaration is one module import. Module keys the declaration: a
// resolved collection holds at most one Declaration per module.
type Declaration struct {
	// Module is the module specifier as written in source.
	Module string `json:"module"`

	// Default is the default binding name, empty when absent.
	Default string `json:"default,omitempty"`

	// Named holds the named bindings. Aliased bindings keep their
	// verbatim "Exported as Local" spelling. Storage order is
	// irrelevant; rendering sorts lexically.
	Named []string `json:"named,omitempty"`

	// SideEffect marks the bare form that binds nothing.
	SideEffect bool `json:"sideEffect,omitempty"`
}

// namedLocal returns the identifier a named binding puts in scope: the
// alias for "Exported as Local" spellings, the name itself otherwise.
func namedLocal(binding string) string {
	if i := strings.LastIndex(binding, aliasSeparator); i >= 0 {
		return binding[i+len(aliasSeparator):]
	}

	return binding
}

// bindsNothing reports whether the declaration carries no bindings.
func (d Declaration) bindsNothing() bool {
	return d.Default == "" && len(d.Named) == 0
}

// Render emits the declaration as one canonical source line. Named
// bindings sort lexically; a declaration without bindings renders in
// the bare side-effect form.
func (d Declaration) Render() string {
	named := slices.Clone(d.Named)
	slices.Sort(named)

	switch {
	case d.Default != "" && len(named) > 0:
		return fmt.Sprintf("import %s, { %s } from '%s';", d.Default, strings.Join(named, ", "), d.Module)
	case d.Default != "":
		return fmt.Sprintf("import %s from '%s';", d.Default, d.Module)
	case len(named) > 0:
		return fmt.Sprintf("import { %s } from '%s';", strings.Join(named, ", "), d.Module)
	default:
		return fmt.Sprintf("import '%s';", d.Module)
	}
}
