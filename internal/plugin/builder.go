package plugin

import (
	"fluent-gen/internal/typeinfo"
)

// Builder assembles a Plugin fluently:
//
//	p, err := plugin.New("dates", "1.0.0").
//		ExternalImport("dayjs", "Dayjs").
//		TransformPropertyMethod(fn).
//		Build()
type Builder struct {
	p Plugin
}

// New starts a plugin with the required name and version.
func New(name, version string) *Builder {
	return &Builder{p: Plugin{Name: name, Version: version}}
}

func (b *Builder) Description(d string) *Builder {
	b.p.Description = d
	return b
}

// RequiresHost sets the HostVersion semver constraint.
func (b *Builder) RequiresHost(constraint string) *Builder {
	b.p.HostVersion = constraint
	return b
}

func (b *Builder) Import(imp Import) *Builder {
	b.p.Imports = append(b.p.Imports, imp)
	return b
}

func (b *Builder) InternalImport(path string, names ...string) *Builder {
	return b.Import(Import{Kind: ImportInternal, Path: path, Imports: append([]string{}, names...)})
}

func (b *Builder) ExternalImport(pkg string, names ...string) *Builder {
	return b.Import(Import{Kind: ImportExternal, Package: pkg, Imports: append([]string{}, names...)})
}

func (b *Builder) BeforeParse(fn func(ParseContext) Result[ParseContext]) *Builder {
	b.p.Hooks.BeforeParse = fn
	return b
}

func (b *Builder) AfterParse(fn func(typeinfo.TypeInfo, ParseContext) Result[typeinfo.TypeInfo]) *Builder {
	b.p.Hooks.AfterParse = fn
	return b
}

func (b *Builder) BeforeResolve(fn func(ResolveContext) Result[ResolveContext]) *Builder {
	b.p.Hooks.BeforeResolve = fn
	return b
}

func (b *Builder) AfterResolve(fn func(typeinfo.TypeInfo, ResolveContext) Result[typeinfo.TypeInfo]) *Builder {
	b.p.Hooks.AfterResolve = fn
	return b
}

func (b *Builder) BeforeGenerate(fn func(GenerateContext) Result[GenerateContext]) *Builder {
	b.p.Hooks.BeforeGenerate = fn
	return b
}

func (b *Builder) AfterGenerate(fn func(string, GenerateContext) Result[string]) *Builder {
	b.p.Hooks.AfterGenerate = fn
	return b
}

func (b *Builder) TransformType(fn func(typeinfo.TypeInfo, TypeContext) Result[typeinfo.TypeInfo]) *Builder {
	b.p.Hooks.TransformType = fn
	return b
}

func (b *Builder) TransformProperty(fn func(typeinfo.PropertyInfo, PropertyContext) Result[typeinfo.PropertyInfo]) *Builder {
	b.p.Hooks.TransformProperty = fn
	return b
}

func (b *Builder) TransformBuildMethod(fn func(string, BuildMethodContext) Result[string]) *Builder {
	b.p.Hooks.TransformBuildMethod = fn
	return b
}

func (b *Builder) TransformImports(fn func(ImportTransformContext) Result[ImportTransformContext]) *Builder {
	b.p.Hooks.TransformImports = fn
	return b
}

func (b *Builder) TransformPropertyMethod(fn func(PropertyMethodContext) Result[PropertyMethodTransform]) *Builder {
	b.p.Hooks.TransformPropertyMethod = fn
	return b
}

func (b *Builder) AddCustomMethods(fn func(BuilderContext) Result[[]CustomMethod]) *Builder {
	b.p.Hooks.AddCustomMethods = fn
	return b
}

func (b *Builder) TransformValue(fn func(ValueContext) Result[*ValueTransform]) *Builder {
	b.p.Hooks.TransformValue = fn
	return b
}

// Build validates the plugin with the same rules as Manager.Register (minus
// the host version check, which needs a Manager) and returns it.
func (b *Builder) Build() (*Plugin, error) {
	p := b.p

	diags := Validate(&p, "")
	if diags.HasErrors() {
		return nil, &ValidationError{Plugin: p.Name, Diagnostics: diags}
	}

	return &p, nil
}
