package plugin

import (
	"fluent-gen/internal/generics"
	"fluent-gen/internal/matcher"
	"fluent-gen/internal/transform"
	"fluent-gen/internal/typeinfo"
)

// ParseContext describes the type about to be extracted.
type ParseContext struct {
	SourceFile string
	TypeName   string
}

// ResolveContext accompanies type resolution.
type ResolveContext struct {
	SourceFile string
	TypeName   string
	Type       typeinfo.TypeInfo
	Generics   *generics.Context
}

// GenerateContext accompanies code emission for one resolved type.
type GenerateContext struct {
	TypeName     string
	ResolvedType typeinfo.TypeInfo
	Options      map[string]any
}

// TypeContext accompanies transformType.
type TypeContext struct {
	TypeName string
	Path     []string
}

// PropertyContext accompanies transformProperty.
type PropertyContext struct {
	TypeName    string
	BuilderName string
	Parent      *typeinfo.Object
}

// BuildMethodContext accompanies transformBuildMethod. The build method
// source itself is the threaded value.
type BuildMethodContext struct {
	TypeName     string
	BuilderName  string
	ResolvedType typeinfo.TypeInfo
	Properties   []typeinfo.PropertyInfo
}

// PropertyMethodContext is handed to transformPropertyMethod for each
// generated property setter.
type PropertyMethodContext struct {
	TypeName    string
	BuilderName string
	Property    typeinfo.PropertyInfo
	// OriginalTypeString is the parameter type the generator would emit
	// without plugins.
	OriginalTypeString string
}

// TypeMatches reports whether the property's type satisfies m.
func (c PropertyMethodContext) TypeMatches(m matcher.Matcher) bool {
	return m != nil && m.Match(c.Property.Type)
}

// TypeContains reports whether the property's type contains a node
// satisfying m at any depth.
func (c PropertyMethodContext) TypeContains(m matcher.Matcher) bool {
	return transform.ContainsTypeDeep(c.Property.Type, m)
}

// Deep returns a rewriter bound to the property's type.
func (c PropertyMethodContext) Deep() *transform.TypeDeepTransformer {
	return transform.NewTypeDeepTransformer(c.Property.Type)
}

// BuilderContext is handed to addCustomMethods once per generated builder.
type BuilderContext struct {
	TypeName      string
	BuilderName   string
	Properties    []typeinfo.PropertyInfo
	GenericParams []typeinfo.GenericParam
}

// HasProperty reports whether the builder exposes a property called name.
func (c BuilderContext) HasProperty(name string) bool {
	for _, p := range c.Properties {
		if p.Name == name {
			return true
		}
	}

	return false
}

// ValueContext is handed to transformValue for each value assignment.
type ValueContext struct {
	Property      string
	ValueVariable string
	Type          typeinfo.TypeInfo
	IsOptional    bool
}

// TypeMatches reports whether the value's type satisfies m.
func (c ValueContext) TypeMatches(m matcher.Matcher) bool {
	return m != nil && m.Match(c.Type)
}

// ImportTransformContext is the threaded value of transformImports: the
// working list of import statements plus what they are generated for.
type ImportTransformContext struct {
	Imports              []string
	ResolvedType         typeinfo.TypeInfo
	IsGeneratingMultiple bool
	HasExistingCommon    bool
}

// PropertyMethodTransform customises one property setter. Empty fields are
// "not set" and do not override earlier plugins when merged.
type PropertyMethodTransform struct {
	ParameterType string
	ExtractValue  string
	Validate      string
}

func (t PropertyMethodTransform) isEmpty() bool {
	return t == PropertyMethodTransform{}
}

// CustomMethod is an extra method added to a generated builder.
type CustomMethod struct {
	Name           string
	Signature      string
	Implementation string
	JSDoc          string
}

// ValueTransform rewrites an assigned value when Condition holds (an empty
// condition always applies).
type ValueTransform struct {
	Condition string
	Transform string
}
