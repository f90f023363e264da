package typeinfo

// String returns the `string` primitive.
func String() *Primitive { return &Primitive{Name: "string"} }

// Number returns the `number` primitive.
func Number() *Primitive { return &Primitive{Name: "number"} }

// Boolean returns the `boolean` primitive.
func Boolean() *Primitive { return &Primitive{Name: "boolean"} }

// PrimitiveOf returns a primitive with the given name ("bigint", "null", ...).
func PrimitiveOf(name string) *Primitive { return &Primitive{Name: name} }

// ArrayOf returns `Array<elem>`.
func ArrayOf(elem TypeInfo) *Array { return &Array{ElementType: elem} }

// UnionOf returns a union of the given members.
func UnionOf(members ...TypeInfo) *Union { return &Union{UnionTypes: members} }

// IntersectionOf returns an intersection of the given members.
func IntersectionOf(members ...TypeInfo) *Intersection {
	return &Intersection{IntersectionTypes: members}
}

// ObjectOf returns an object shape. Pass an empty name for anonymous shapes.
func ObjectOf(name string, props ...PropertyInfo) *Object {
	return &Object{Name: name, Properties: props}
}

// Prop returns a required, mutable property.
func Prop(name string, t TypeInfo) PropertyInfo {
	return PropertyInfo{Name: name, Type: t}
}

// OptionalProp returns an optional property.
func OptionalProp(name string, t TypeInfo) PropertyInfo {
	return PropertyInfo{Name: name, Type: t, Optional: true}
}

// ReadonlyProp returns a readonly, required property.
func ReadonlyProp(name string, t TypeInfo) PropertyInfo {
	return PropertyInfo{Name: name, Type: t, Readonly: true}
}

// GenericOf returns a generic parameter occurrence.
func GenericOf(name string, args ...TypeInfo) *Generic {
	return &Generic{Name: name, TypeArguments: args}
}

// RefOf returns a named reference, e.g. RefOf("Promise", String()).
func RefOf(name string, args ...TypeInfo) *Reference {
	return &Reference{Name: name, TypeArguments: args}
}

// LiteralOf returns a literal type for a string, number or boolean value.
func LiteralOf(v any) *Literal { return &Literal{Literal: v} }

// TupleOf returns `[elems...]`.
func TupleOf(elems ...TypeInfo) *Tuple { return &Tuple{Elements: elems} }

// Param returns an unconstrained generic parameter declaration.
func Param(name string) GenericParam { return GenericParam{Name: name} }

// ParamExtends returns a generic parameter declaration with a constraint.
func ParamExtends(name string, constraint TypeInfo) GenericParam {
	return GenericParam{Name: name, Constraint: constraint}
}
