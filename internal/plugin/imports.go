package plugin

import (
	"slices"
)

// ImportManager accumulates import declarations and merges duplicates.
type ImportManager struct {
	imports []Import
}

// NewImportManager returns an empty manager.
func NewImportManager() *ImportManager {
	return &ImportManager{}
}

// Add appends one declaration as is.
func (im *ImportManager) Add(imp Import) *ImportManager {
	imp.Imports = slices.Clone(imp.Imports)
	if imp.Imports == nil {
		imp.Imports = []string{}
	}

	im.imports = append(im.imports, imp)

	return im
}

// AddInternal appends a project-relative import of names.
func (im *ImportManager) AddInternal(path string, names ...string) *ImportManager {
	return im.Add(Import{Kind: ImportInternal, Path: path, Imports: names})
}

// AddExternal appends a package import of names.
func (im *ImportManager) AddExternal(pkg string, names ...string) *ImportManager {
	return im.Add(Import{Kind: ImportExternal, Package: pkg, Imports: names})
}

// Merge appends every declaration of other.
func (im *ImportManager) Merge(other *ImportManager) *ImportManager {
	if other == nil {
		return im
	}

	for _, imp := range other.imports {
		im.Add(imp)
	}

	return im
}

// Imports returns a copy of the declarations in insertion order.
func (im *ImportManager) Imports() []Import {
	out := make([]Import, len(im.imports))
	for i, imp := range im.imports {
		imp.Imports = slices.Clone(imp.Imports)
		out[i] = imp
	}

	return out
}

// Len returns the number of declarations.
func (im *ImportManager) Len() int {
	return len(im.imports)
}

type importKey struct {
	kind       ImportKind
	source     string
	isTypeOnly bool
	isDefault  bool
}

// Deduplicate returns a new manager where declarations sharing kind, source,
// type-only and default flags are folded into one. Their names are unioned
// in first-seen order, and the first non-empty default name is kept.
func (im *ImportManager) Deduplicate() *ImportManager {
	index := make(map[importKey]int)
	out := NewImportManager()

	for _, imp := range im.imports {
		key := importKey{kind: imp.Kind, source: imp.Source(), isTypeOnly: imp.IsTypeOnly, isDefault: imp.IsDefault}

		at, seen := index[key]
		if !seen {
			index[key] = len(out.imports)
			out.Add(Import{
				Kind:        imp.Kind,
				Path:        imp.Path,
				Package:     imp.Package,
				IsTypeOnly:  imp.IsTypeOnly,
				IsDefault:   imp.IsDefault,
				DefaultName: imp.DefaultName,
				Imports:     uniqueNames(nil, imp.Imports),
			})

			continue
		}

		existing := &out.imports[at]
		existing.Imports = uniqueNames(existing.Imports, imp.Imports)

		if existing.DefaultName == "" {
			existing.DefaultName = imp.DefaultName
		}
	}

	return out
}

func uniqueNames(dst, names []string) []string {
	if dst == nil {
		dst = []string{}
	}

	for _, n := range names {
		if !slices.Contains(dst, n) {
			dst = append(dst, n)
		}
	}

	return dst
}

// ToImportStatements renders the deduplicated declarations, one statement
// each, in first-seen order.
func (im *ImportManager) ToImportStatements() []string {
	deduped := im.Deduplicate()

	out := make([]string, 0, deduped.Len())
	for _, imp := range deduped.imports {
		out = append(out, imp.Statement())
	}

	return out
}

// GetRequiredImports gathers the imports declared by every registered
// plugin, deduplicated.
func (m *Manager) GetRequiredImports() *ImportManager {
	im := NewImportManager()

	for _, e := range m.entries {
		for _, imp := range e.plugin.Imports {
			im.Add(imp)
		}
	}

	return im.Deduplicate()
}

// GenerateImportStatements appends the plugins' required import statements
// to ctx.Imports (skipping exact duplicates) and then pipes the list through
// the transformImports hooks.
func (m *Manager) GenerateImportStatements(ctx ImportTransformContext) Result[[]string] {
	working := slices.Clone(ctx.Imports)

	for _, stmt := range m.GetRequiredImports().ToImportStatements() {
		if !slices.Contains(working, stmt) {
			working = append(working, stmt)
		}
	}

	ctx.Imports = working

	res := ExecuteHook(m, HookCall[ImportTransformContext]{Hook: HookTransformImports, Input: ctx})
	if !res.IsOk() {
		return Fail[[]string](res.Err())
	}

	return Ok(res.Value().Imports)
}
