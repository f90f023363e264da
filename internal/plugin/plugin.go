// Package plugin is the extension layer of the generator: a registry of
// named, versioned plugins and the pipeline that runs their hooks.
//
// Plugins run strictly in registration order. Pipe hooks thread one value
// through every plugin and stop at the first failure; the property-method,
// custom-method and value hooks are aggregated instead, and a misbehaving
// plugin there is logged and skipped.
//
// A Manager is owned by one generation session. Registration is expected to
// finish before hooks run, so the Manager does no locking.
package plugin

import (
	"fmt"
	"slices"
	"strings"
)

// Plugin is the data a plugin author supplies. The Manager registers a copy
// and compiles its hooks at registration time.
type Plugin struct {
	Name        string
	Version     string
	Description string
	// HostVersion is an optional semver constraint on the generator version,
	// e.g. ">= 1.2, < 2".
	HostVersion string
	Imports     []Import
	Hooks       Hooks
}

func (p *Plugin) String() string {
	return p.Name + "@" + p.Version
}

// clone copies p deep enough that no slice is shared with the original.
func (p *Plugin) clone() *Plugin {
	cp := *p

	if p.Imports != nil {
		cp.Imports = make([]Import, len(p.Imports))
		for i, imp := range p.Imports {
			imp.Imports = slices.Clone(imp.Imports)
			cp.Imports[i] = imp
		}
	}

	return &cp
}

// ImportKind distinguishes project-relative imports from package imports.
type ImportKind string

const (
	ImportInternal ImportKind = "internal"
	ImportExternal ImportKind = "external"
)

// Import is one import declaration a plugin needs in generated code.
// Internal imports carry Path, external imports carry Package.
type Import struct {
	Kind        ImportKind
	Path        string
	Package     string
	Imports     []string
	IsTypeOnly  bool
	IsDefault   bool
	DefaultName string
}

// Source is the module specifier: Path for internal imports, Package for
// external ones.
func (i Import) Source() string {
	if i.Kind == ImportInternal {
		return i.Path
	}

	return i.Package
}

// Statement renders the import as a single statement.
func (i Import) Statement() string {
	var sb strings.Builder

	sb.WriteString("import ")

	if i.IsTypeOnly {
		sb.WriteString("type ")
	}

	var clauses []string

	if i.IsDefault && i.DefaultName != "" {
		clauses = append(clauses, i.DefaultName)
	}

	if len(i.Imports) > 0 {
		clauses = append(clauses, "{ "+strings.Join(i.Imports, ", ")+" }")
	}

	if len(clauses) == 0 {
		return fmt.Sprintf("import %q;", i.Source())
	}

	sb.WriteString(strings.Join(clauses, ", "))
	fmt.Fprintf(&sb, " from %q;", i.Source())

	return sb.String()
}
