// Package transform renders typeinfo trees as type expressions and rewrites
// them on the way.
//
// Rendering is bottom-up: children are rendered (and possibly replaced by a
// callback) before their parent's default rendering is assembled, so a
// substitution deep in the tree shows up in every enclosing expression.
package transform

import (
	"strconv"
	"strings"

	"github.com/go-json-experiment/json"

	"fluent-gen/internal/typeinfo"
)

const (
	DefaultBuilderTypeName = "FluentBuilder"
	DefaultContextTypeName = "BaseBuildContext"
)

// Options tune the default rendering.
type Options struct {
	// IncludeBuilderTypes renders named objects as `Name | FluentBuilder<Name, Ctx>`.
	IncludeBuilderTypes bool
	BuilderTypeName     string
	ContextTypeName     string
	// MaxDepth bounds recursion; deeper nodes render as "unknown". Zero
	// means unlimited.
	MaxDepth int
}

func (o Options) withDefaults() Options {
	if o.BuilderTypeName == "" {
		o.BuilderTypeName = DefaultBuilderTypeName
	}

	if o.ContextTypeName == "" {
		o.ContextTypeName = DefaultContextTypeName
	}

	return o
}

// Visit locates a node inside the tree being rendered or walked.
type Visit struct {
	Depth int
	// Path holds one segment per step from the root: a property name,
	// "[]" for an array element, "[i]" for a member or element index,
	// "<i>" for a type argument, and so on.
	Path []string
}

func (v Visit) child(segment string) Visit {
	path := make([]string, len(v.Path), len(v.Path)+1)
	copy(path, v.Path)

	return Visit{Depth: v.Depth + 1, Path: append(path, segment)}
}

// String joins the path, e.g. "tags.[]".
func (v Visit) String() string {
	if len(v.Path) == 0 {
		return "$"
	}

	return "$." + strings.Join(v.Path, ".")
}

// Replacement is what a callback returns: a verbatim string, a type to render
// in place of the node, or the zero value to leave the node alone.
type Replacement struct {
	text string
	typ  typeinfo.TypeInfo
	set  bool
}

// Keep is the "no replacement" result.
var Keep = Replacement{}

// Text replaces a node with a literal type expression.
func Text(s string) Replacement { return Replacement{text: s, set: true} }

// Type replaces a node with another type, rendered with the default rules.
func Type(t typeinfo.TypeInfo) Replacement {
	if typeinfo.IsNil(t) {
		return Keep
	}

	return Replacement{typ: t, set: true}
}

// IsSet reports whether r replaces the node.
func (r Replacement) IsSet() bool { return r.set }

// Callbacks are optional per-kind overrides. A kind callback that returns
// Keep falls through to OnAny, and then to the default rendering.
type Callbacks struct {
	OnPrimitive    func(*typeinfo.Primitive, Visit) Replacement
	OnObject       func(*typeinfo.Object, Visit) Replacement
	OnArray        func(*typeinfo.Array, Visit) Replacement
	OnUnion        func(*typeinfo.Union, Visit) Replacement
	OnIntersection func(*typeinfo.Intersection, Visit) Replacement
	OnGeneric      func(*typeinfo.Generic, Visit) Replacement
	OnLiteral      func(*typeinfo.Literal, Visit) Replacement
	OnReference    func(*typeinfo.Reference, Visit) Replacement
	OnTuple        func(*typeinfo.Tuple, Visit) Replacement
	OnFunction     func(*typeinfo.Function, Visit) Replacement
	OnEnum         func(*typeinfo.Enum, Visit) Replacement
	OnUnknown      func(*typeinfo.Unknown, Visit) Replacement
	OnNever        func(*typeinfo.Never, Visit) Replacement
	OnKeyof        func(*typeinfo.Keyof, Visit) Replacement
	OnTypeof       func(*typeinfo.Typeof, Visit) Replacement
	OnIndex        func(*typeinfo.Index, Visit) Replacement
	OnConditional  func(*typeinfo.Conditional, Visit) Replacement
	OnAny          func(typeinfo.TypeInfo, Visit) Replacement
}

func call[T typeinfo.TypeInfo](fn func(T, Visit) Replacement, n T, v Visit) Replacement {
	if fn == nil {
		return Keep
	}

	return fn(n, v)
}

func (c *Callbacks) kindCallback(t typeinfo.TypeInfo, v Visit) Replacement {
	switch n := t.(type) {
	case *typeinfo.Primitive:
		return call(c.OnPrimitive, n, v)
	case *typeinfo.Object:
		return call(c.OnObject, n, v)
	case *typeinfo.Array:
		return call(c.OnArray, n, v)
	case *typeinfo.Union:
		return call(c.OnUnion, n, v)
	case *typeinfo.Intersection:
		return call(c.OnIntersection, n, v)
	case *typeinfo.Generic:
		return call(c.OnGeneric, n, v)
	case *typeinfo.Literal:
		return call(c.OnLiteral, n, v)
	case *typeinfo.Reference:
		return call(c.OnReference, n, v)
	case *typeinfo.Tuple:
		return call(c.OnTuple, n, v)
	case *typeinfo.Function:
		return call(c.OnFunction, n, v)
	case *typeinfo.Enum:
		return call(c.OnEnum, n, v)
	case *typeinfo.Unknown:
		return call(c.OnUnknown, n, v)
	case *typeinfo.Never:
		return call(c.OnNever, n, v)
	case *typeinfo.Keyof:
		return call(c.OnKeyof, n, v)
	case *typeinfo.Typeof:
		return call(c.OnTypeof, n, v)
	case *typeinfo.Index:
		return call(c.OnIndex, n, v)
	case *typeinfo.Conditional:
		return call(c.OnConditional, n, v)
	}

	return Keep
}

func (c *Callbacks) replacement(t typeinfo.TypeInfo, v Visit) Replacement {
	if r := c.kindCallback(t, v); r.set {
		return r
	}

	return call(c.OnAny, t, v)
}

// TransformTypeDeep renders t as a type expression, giving callbacks a chance
// to replace every node on the way down.
func TransformTypeDeep(t typeinfo.TypeInfo, callbacks Callbacks, opts Options) string {
	r := renderer{callbacks: callbacks, opts: opts.withDefaults()}

	return r.render(t, Visit{})
}

// String renders t with the default rules only.
func String(t typeinfo.TypeInfo) string {
	return TransformTypeDeep(t, Callbacks{}, Options{})
}

type renderer struct {
	callbacks Callbacks
	opts      Options
}

func (r *renderer) render(t typeinfo.TypeInfo, v Visit) string {
	if typeinfo.IsNil(t) || (r.opts.MaxDepth > 0 && v.Depth > r.opts.MaxDepth) {
		return "unknown"
	}

	rep := r.callbacks.replacement(t, v)
	switch {
	case !rep.set:
		return r.renderDefault(t, v)
	case rep.typ != nil:
		return r.renderDefault(rep.typ, v)
	default:
		return rep.text
	}
}

// renderDefault renders the node itself with the built-in rules; its
// children still go through render, so callbacks apply to them.
func (r *renderer) renderDefault(t typeinfo.TypeInfo, v Visit) string {
	switch n := t.(type) {
	case *typeinfo.Primitive:
		if n.Literal != nil {
			return literalString(n.Literal)
		}
		return n.Name

	case *typeinfo.Object:
		return r.renderObject(n, v)

	case *typeinfo.Array:
		return "Array<" + r.render(n.ElementType, v.child("[]")) + ">"

	case *typeinfo.Union:
		if len(n.UnionTypes) == 0 {
			return "never"
		}
		return strings.Join(r.renderMembers(n.UnionTypes, v, precUnion), " | ")

	case *typeinfo.Intersection:
		if len(n.IntersectionTypes) == 0 {
			return "unknown"
		}
		return strings.Join(r.renderMembers(n.IntersectionTypes, v, precIntersection), " & ")

	case *typeinfo.Generic:
		return n.Name + r.renderArgs(n.TypeArguments, v)

	case *typeinfo.Reference:
		return n.Name + r.renderArgs(n.TypeArguments, v)

	case *typeinfo.Literal:
		return literalString(n.Literal)

	case *typeinfo.Tuple:
		return "[" + strings.Join(r.renderMembers(n.Elements, v, precLowest), ", ") + "]"

	case *typeinfo.Function:
		if n.Name == "" {
			return "Function"
		}
		return n.Name

	case *typeinfo.Enum:
		return renderEnum(n)

	case *typeinfo.Keyof:
		return "keyof " + wrap(r.render(n.Target, v.child("keyof")), precPrefix)

	case *typeinfo.Typeof:
		return "typeof " + wrap(r.render(n.Target, v.child("typeof")), precPrefix)

	case *typeinfo.Index:
		return wrap(r.render(n.Object, v.child("object")), precPrimary) + "[" + r.render(n.Index, v.child("index")) + "]"

	case *typeinfo.Conditional:
		return wrap(r.render(n.CheckType, v.child("check")), precUnion) +
			" extends " + wrap(r.render(n.ExtendsType, v.child("extends")), precUnion) +
			" ? " + r.render(n.TrueType, v.child("true")) +
			" : " + r.render(n.FalseType, v.child("false"))

	case *typeinfo.Never:
		return "never"
	}

	return "unknown"
}

func (r *renderer) renderObject(n *typeinfo.Object, v Visit) string {
	if r.opts.IncludeBuilderTypes && n.IsNamed() {
		return n.Name + " | " + r.opts.BuilderTypeName + "<" + n.Name + ", " + r.opts.ContextTypeName + ">"
	}

	var members []string

	for _, p := range n.Properties {
		var sb strings.Builder

		if p.Readonly {
			sb.WriteString("readonly ")
		}

		sb.WriteString(propertyKey(p.Name))

		if p.Optional {
			sb.WriteString("?")
		}

		sb.WriteString(": ")
		sb.WriteString(r.render(p.Type, v.child(p.Name)))

		members = append(members, sb.String())
	}

	if sig := n.IndexSignature; sig != nil {
		prefix := ""
		if sig.Readonly {
			prefix = "readonly "
		}

		keyType := sig.KeyType
		if keyType == "" {
			keyType = "string"
		}

		members = append(members, prefix+"[key: "+keyType+"]: "+r.render(sig.ValueType, v.child("[key]")))
	}

	if len(members) == 0 {
		return "{}"
	}

	return "{ " + strings.Join(members, "; ") + " }"
}

// renderMembers renders ts, parenthesizing members that bind looser than at.
func (r *renderer) renderMembers(ts []typeinfo.TypeInfo, v Visit, at precedence) []string {
	out := make([]string, len(ts))

	for i, t := range ts {
		out[i] = wrap(r.render(t, v.child("["+strconv.Itoa(i)+"]")), at)
	}

	return out
}

func (r *renderer) renderArgs(args []typeinfo.TypeInfo, v Visit) string {
	if len(args) == 0 {
		return ""
	}

	out := make([]string, len(args))
	for i, a := range args {
		out[i] = r.render(a, v.child("<"+strconv.Itoa(i)+">"))
	}

	return "<" + strings.Join(out, ", ") + ">"
}

func renderEnum(n *typeinfo.Enum) string {
	if n.Name != "" {
		return n.Name
	}

	if len(n.Values) == 0 {
		return "never"
	}

	out := make([]string, len(n.Values))
	for i, val := range n.Values {
		out[i] = literalString(val)
	}

	return strings.Join(out, " | ")
}

// literalString renders a literal value as JSON: strings quoted, numbers and
// booleans bare.
func literalString(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "unknown"
	}

	return string(b)
}

// propertyKey quotes names that are not plain identifiers.
func propertyKey(name string) string {
	if isIdentifier(name) {
		return name
	}

	return literalString(name)
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}

	return true
}
