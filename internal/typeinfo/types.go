// Package typeinfo defines the structural type model shared by every stage of
// builder generation: the parser produces it, generic resolution refines it,
// matchers query it and the deep transformer renders it.
//
// TypeInfo is a closed sum type. Each kind has its own struct, so a Union can
// never carry an element type and an Array can never carry members. Trees are
// treated as immutable values: nothing in this module rewrites a node in place.
package typeinfo

// AnonymousName is the placeholder name the parser gives to anonymous object
// shapes. Such objects are never referenced by name in generated code.
const AnonymousName = "__type"

// TypeInfo is one node of a type tree.
type TypeInfo interface {
	// Kind returns the tag identifying the concrete variant.
	Kind() Kind

	typeInfo()
}

// PropertyInfo describes one property of an Object.
type PropertyInfo struct {
	Name     string
	Type     TypeInfo
	Optional bool
	Readonly bool
	JSDoc    string
}

// GenericParam is a declared generic parameter, optionally constrained and/or defaulted.
type GenericParam struct {
	Name       string
	Constraint TypeInfo // nil when unconstrained
	Default    TypeInfo // nil when no default
}

// IndexSignature represents `[key: K]: V` on an object shape.
type IndexSignature struct {
	KeyType   string // "string", "number" or "symbol"
	ValueType TypeInfo
	Readonly  bool
}

// Primitive is a built-in scalar type such as string, number or boolean.
// Literal carries the value for literal primitives (e.g. a `"draft"` status).
type Primitive struct {
	Name    string
	Literal any
}

// Object is a structural object shape.
type Object struct {
	Name               string // empty or AnonymousName for anonymous shapes
	Properties         []PropertyInfo
	GenericParams      []GenericParam
	IndexSignature     *IndexSignature
	UnresolvedGenerics []GenericParam
}

// Array is `Array<ElementType>`.
type Array struct {
	ElementType TypeInfo
}

// Union is `A | B | ...`.
type Union struct {
	UnionTypes []TypeInfo
}

// Intersection is `A & B & ...`.
type Intersection struct {
	IntersectionTypes []TypeInfo
}

// Generic is a generic parameter occurrence (or an instantiated generic alias
// when TypeArguments is set).
type Generic struct {
	Name               string
	TypeArguments      []TypeInfo
	Constraint         TypeInfo
	Default            TypeInfo
	UnresolvedGenerics []GenericParam
}

// Literal is a literal type; Literal holds a string, number or boolean value.
type Literal struct {
	Literal any
}

// Unknown is a type the parser could not describe further.
type Unknown struct{}

// Reference is a by-name reference to another type, such as `Promise<T>`.
type Reference struct {
	Name          string
	TypeArguments []TypeInfo
}

// Function is a callable type.
type Function struct {
	Name string
}

// Tuple is `[A, B, ...]`.
type Tuple struct {
	Elements []TypeInfo
}

// Enum is a named enumeration.
type Enum struct {
	Name   string
	Values []any
}

// Keyof is `keyof Target`.
type Keyof struct {
	Target TypeInfo
}

// Typeof is `typeof Target`.
type Typeof struct {
	Target TypeInfo
}

// Index is an indexed access `Object[Index]`.
type Index struct {
	Object TypeInfo
	Index  TypeInfo
}

// Conditional is `CheckType extends ExtendsType ? TrueType : FalseType`.
type Conditional struct {
	CheckType     TypeInfo
	ExtendsType   TypeInfo
	TrueType      TypeInfo
	FalseType     TypeInfo
	InferredTypes []string
}

// Never is the bottom type.
type Never struct{}

func (*Primitive) Kind() Kind    { return KindPrimitive }
func (*Object) Kind() Kind       { return KindObject }
func (*Array) Kind() Kind        { return KindArray }
func (*Union) Kind() Kind        { return KindUnion }
func (*Intersection) Kind() Kind { return KindIntersection }
func (*Generic) Kind() Kind      { return KindGeneric }
func (*Literal) Kind() Kind      { return KindLiteral }
func (*Unknown) Kind() Kind      { return KindUnknown }
func (*Reference) Kind() Kind    { return KindReference }
func (*Function) Kind() Kind     { return KindFunction }
func (*Tuple) Kind() Kind        { return KindTuple }
func (*Enum) Kind() Kind         { return KindEnum }
func (*Keyof) Kind() Kind        { return KindKeyof }
func (*Typeof) Kind() Kind       { return KindTypeof }
func (*Index) Kind() Kind        { return KindIndex }
func (*Conditional) Kind() Kind  { return KindConditional }
func (*Never) Kind() Kind        { return KindNever }

func (*Primitive) typeInfo()    {}
func (*Object) typeInfo()       {}
func (*Array) typeInfo()        {}
func (*Union) typeInfo()        {}
func (*Intersection) typeInfo() {}
func (*Generic) typeInfo()      {}
func (*Literal) typeInfo()      {}
func (*Unknown) typeInfo()      {}
func (*Reference) typeInfo()    {}
func (*Function) typeInfo()     {}
func (*Tuple) typeInfo()        {}
func (*Enum) typeInfo()         {}
func (*Keyof) typeInfo()        {}
func (*Typeof) typeInfo()       {}
func (*Index) typeInfo()        {}
func (*Conditional) typeInfo()  {}
func (*Never) typeInfo()        {}

// IsNamed reports whether the object has a real (non-placeholder) name.
func (o *Object) IsNamed() bool {
	return o.Name != "" && o.Name != AnonymousName
}

// Property returns the property with the given name, or nil.
func (o *Object) Property(name string) *PropertyInfo {
	for i := range o.Properties {
		if o.Properties[i].Name == name {
			return &o.Properties[i]
		}
	}

	return nil
}

// HasGenericParam reports whether the object declares a generic parameter
// with the given name. An empty name matches any declared parameter.
func (o *Object) HasGenericParam(name string) bool {
	for _, gp := range o.GenericParams {
		if name == "" || gp.Name == name {
			return true
		}
	}

	return false
}

// Children returns the direct child nodes of t in rendering order. Nil
// children (absent optional fields) are skipped.
func Children(t TypeInfo) []TypeInfo {
	var out []TypeInfo

	add := func(ts ...TypeInfo) {
		for _, c := range ts {
			if !IsNil(c) {
				out = append(out, c)
			}
		}
	}

	switch n := t.(type) {
	case *Object:
		if n == nil {
			return nil
		}
		for _, p := range n.Properties {
			add(p.Type)
		}
		if n.IndexSignature != nil {
			add(n.IndexSignature.ValueType)
		}
	case *Array:
		if n != nil {
			add(n.ElementType)
		}
	case *Union:
		if n != nil {
			add(n.UnionTypes...)
		}
	case *Intersection:
		if n != nil {
			add(n.IntersectionTypes...)
		}
	case *Generic:
		if n != nil {
			add(n.TypeArguments...)
		}
	case *Reference:
		if n != nil {
			add(n.TypeArguments...)
		}
	case *Tuple:
		if n != nil {
			add(n.Elements...)
		}
	case *Keyof:
		if n != nil {
			add(n.Target)
		}
	case *Typeof:
		if n != nil {
			add(n.Target)
		}
	case *Index:
		if n != nil {
			add(n.Object, n.Index)
		}
	case *Conditional:
		if n != nil {
			add(n.CheckType, n.ExtendsType, n.TrueType, n.FalseType)
		}
	}

	return out
}

// IsNil reports whether t is absent, including typed nil pointers.
func IsNil(t TypeInfo) bool {
	if t == nil {
		return true
	}

	switch n := t.(type) {
	case *Primitive:
		return n == nil
	case *Object:
		return n == nil
	case *Array:
		return n == nil
	case *Union:
		return n == nil
	case *Intersection:
		return n == nil
	case *Generic:
		return n == nil
	case *Literal:
		return n == nil
	case *Unknown:
		return n == nil
	case *Reference:
		return n == nil
	case *Function:
		return n == nil
	case *Tuple:
		return n == nil
	case *Enum:
		return n == nil
	case *Keyof:
		return n == nil
	case *Typeof:
		return n == nil
	case *Index:
		return n == nil
	case *Conditional:
		return n == nil
	case *Never:
		return n == nil
	default:
		return false
	}
}
