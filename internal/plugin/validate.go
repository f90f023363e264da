package plugin

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"

	"fluent-gen/internal/diagnostic"
	"fluent-gen/internal/suggest"
)

// Diagnostic codes reported by plugin validation.
const (
	CodeMissingName         = "PLUGIN_MISSING_NAME"
	CodeNameWhitespace      = "PLUGIN_NAME_WHITESPACE"
	CodeMissingVersion      = "PLUGIN_MISSING_VERSION"
	CodeVersionNotSemver    = "PLUGIN_VERSION_NOT_SEMVER"
	CodeBadHostConstraint   = "PLUGIN_BAD_HOST_CONSTRAINT"
	CodeHostIncompatible    = "PLUGIN_HOST_INCOMPATIBLE"
	CodeImportKind          = "IMPORT_KIND"
	CodeImportMissingPath   = "IMPORT_MISSING_PATH"
	CodeImportMissingPkg    = "IMPORT_MISSING_PACKAGE"
	CodeImportMissingNames  = "IMPORT_MISSING_IMPORTS"
	CodeImportEmptyName     = "IMPORT_EMPTY_NAME"
	CodeImportDefaultName   = "IMPORT_MISSING_DEFAULT_NAME"
	CodeImportDefaultUnused = "IMPORT_DEFAULT_NAME_UNUSED"
)

var (
	// ErrInvalidPlugin matches every *ValidationError.
	ErrInvalidPlugin = errors.New("invalid plugin")
	// ErrDuplicatePlugin is returned when a name is already registered.
	ErrDuplicatePlugin = errors.New("plugin already registered")
)

// ValidationError lists every contract violation found in a plugin.
type ValidationError struct {
	Plugin      string
	Diagnostics diagnostic.Diagnostics
}

func (e *ValidationError) Error() string {
	name := e.Plugin
	if name == "" {
		name = "<unnamed>"
	}

	parts := make([]string, 0, len(e.Diagnostics.Errors))
	for _, d := range e.Diagnostics.Errors {
		parts = append(parts, d.String())
	}

	return fmt.Sprintf("invalid plugin %s: %s", name, strings.Join(parts, "; "))
}

// Is makes errors.Is(err, ErrInvalidPlugin) hold.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidPlugin
}

// Validate checks a plugin against the authoring contract. hostVersion may be
// empty, in which case HostVersion constraints are only parsed, not checked.
// Warnings never make a plugin invalid.
func Validate(p *Plugin, hostVersion string) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	if p == nil {
		diags.AddError(CodeMissingName, "plugin is nil", "", "")
		return diags
	}

	subject := strings.TrimSpace(p.Name)

	validateIdentity(&diags, p, subject)
	validateHost(&diags, p, subject, hostVersion)

	for i, imp := range p.Imports {
		validateImport(&diags, imp, subject, fmt.Sprintf("imports[%d]", i))
	}

	return diags
}

func validateIdentity(diags *diagnostic.Diagnostics, p *Plugin, subject string) {
	switch {
	case subject == "":
		diags.AddError(CodeMissingName, "name must be a non-empty string", subject, "name")
	case subject != p.Name:
		diags.AddError(CodeNameWhitespace, fmt.Sprintf("name %q has surrounding whitespace", p.Name), subject, "name", subject)
	}

	version := strings.TrimSpace(p.Version)
	if version == "" {
		diags.AddError(CodeMissingVersion, "version must be a non-empty string", subject, "version")
		return
	}

	if _, err := semver.NewVersion(version); err != nil {
		diags.AddWarning(CodeVersionNotSemver, fmt.Sprintf("version %q is not semver", version), subject, "version")
	}
}

func validateHost(diags *diagnostic.Diagnostics, p *Plugin, subject, hostVersion string) {
	if p.HostVersion == "" {
		return
	}

	constraint, err := semver.NewConstraint(p.HostVersion)
	if err != nil {
		diags.AddError(CodeBadHostConstraint, fmt.Sprintf("invalid version constraint %q: %v", p.HostVersion, err), subject, "hostVersion")
		return
	}

	if hostVersion == "" {
		return
	}

	host, err := semver.NewVersion(hostVersion)
	if err != nil {
		diags.AddWarning(CodeHostIncompatible, fmt.Sprintf("host version %q is not semver, constraint not checked", hostVersion), subject, "hostVersion")
		return
	}

	if !constraint.Check(host) {
		diags.AddError(CodeHostIncompatible, fmt.Sprintf("plugin requires host %s, but running %s", p.HostVersion, hostVersion), subject, "hostVersion")
	}
}

var importKinds = []string{string(ImportInternal), string(ImportExternal)}

func validateImport(diags *diagnostic.Diagnostics, imp Import, subject, path string) {
	switch imp.Kind {
	case ImportInternal:
		if strings.TrimSpace(imp.Path) == "" {
			diags.AddError(CodeImportMissingPath, "internal import requires a path", subject, path+".path")
		}
	case ImportExternal:
		if strings.TrimSpace(imp.Package) == "" {
			diags.AddError(CodeImportMissingPkg, "external import requires a package", subject, path+".package")
		}
	default:
		diags.AddError(CodeImportKind, fmt.Sprintf("kind %q must be internal or external", imp.Kind), subject, path+".kind",
			suggest.Closest(string(imp.Kind), importKinds, suggest.DefaultMinScore, 1)...)
	}

	if imp.Imports == nil {
		diags.AddError(CodeImportMissingNames, "imports must be a list of names", subject, path+".imports")
	}

	for j, name := range imp.Imports {
		if strings.TrimSpace(name) == "" {
			diags.AddError(CodeImportEmptyName, "import name must be non-empty", subject, fmt.Sprintf("%s.imports[%d]", path, j))
		}
	}

	switch {
	case imp.IsDefault && imp.DefaultName == "":
		diags.AddError(CodeImportDefaultName, "default import requires defaultName", subject, path+".defaultName")
	case !imp.IsDefault && imp.DefaultName != "":
		diags.AddWarning(CodeImportDefaultUnused, "defaultName is ignored unless isDefault is set", subject, path+".defaultName")
	}
}
