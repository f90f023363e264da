// Package matcher provides composable predicates over typeinfo trees.
//
// Every matcher is a small immutable value: the chained narrowing methods
// (Of, WithProperty, Containing, ...) return a new matcher and leave the
// receiver untouched, so partially configured matchers can be shared.
//
// Matching never panics on incomplete trees. A nil node or a missing field
// simply does not match.
package matcher

import (
	"fmt"
	"strings"

	"fluent-gen/internal/typeinfo"
)

// Matcher is a predicate over a TypeInfo with a readable description.
type Matcher interface {
	Match(t typeinfo.TypeInfo) bool
	Describe() string
}

func matches(m Matcher, t typeinfo.TypeInfo) bool {
	if m == nil || typeinfo.IsNil(t) {
		return false
	}

	return m.Match(t)
}

func describe(m Matcher) string {
	if m == nil {
		return "nothing"
	}

	return m.Describe()
}

func describeAll(ms []Matcher) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = describe(m)
	}

	return out
}

// kindMatcher matches one kind, optionally narrowed to an exact name.
type kindMatcher struct {
	kind typeinfo.Kind
	name string
}

func (m kindMatcher) Match(t typeinfo.TypeInfo) bool {
	if typeinfo.IsNil(t) || t.Kind() != m.kind {
		return false
	}

	if m.name == "" {
		return true
	}

	switch n := t.(type) {
	case *typeinfo.Reference:
		return n.Name == m.name
	case *typeinfo.Generic:
		return n.Name == m.name
	case *typeinfo.Enum:
		return n.Name == m.name
	case *typeinfo.Function:
		return n.Name == m.name
	}

	return false
}

func (m kindMatcher) Describe() string {
	if m.name == "" {
		return m.kind.String()
	}

	return fmt.Sprintf("%s %s", m.kind, m.name)
}

// Reference matches a named reference; an empty name matches any reference.
func Reference(name string) Matcher { return kindMatcher{kind: typeinfo.KindReference, name: name} }

// Generic matches a generic placeholder; an empty name matches any.
func Generic(name string) Matcher { return kindMatcher{kind: typeinfo.KindGeneric, name: name} }

// Enum matches an enum; an empty name matches any.
func Enum(name string) Matcher { return kindMatcher{kind: typeinfo.KindEnum, name: name} }

// Function matches any function type.
func Function() Matcher { return kindMatcher{kind: typeinfo.KindFunction} }

// Tuple matches any tuple.
func Tuple() Matcher { return kindMatcher{kind: typeinfo.KindTuple} }

// Never matches only the never kind.
func Never() Matcher { return kindMatcher{kind: typeinfo.KindNever} }

// Any matches every non-nil type.
func Any() Matcher { return anyMatcher{} }

type anyMatcher struct{}

func (anyMatcher) Match(t typeinfo.TypeInfo) bool { return !typeinfo.IsNil(t) }
func (anyMatcher) Describe() string               { return "any" }

// PrimitiveMatcher matches primitives by name.
type PrimitiveMatcher struct {
	names []string
}

// Primitive matches a primitive whose name is one of names, or any primitive
// when names is empty.
func Primitive(names ...string) PrimitiveMatcher {
	return PrimitiveMatcher{names: names}
}

func (m PrimitiveMatcher) Match(t typeinfo.TypeInfo) bool {
	p, ok := t.(*typeinfo.Primitive)
	if !ok || p == nil {
		return false
	}

	if len(m.names) == 0 {
		return true
	}

	for _, n := range m.names {
		if p.Name == n {
			return true
		}
	}

	return false
}

func (m PrimitiveMatcher) Describe() string {
	if len(m.names) == 0 {
		return "primitive"
	}

	return "primitive(" + strings.Join(m.names, " | ") + ")"
}

// LiteralMatcher matches a literal type holding one exact value.
type LiteralMatcher struct {
	value any
}

// Literal matches a literal whose value equals v. Numbers compare by value,
// so Literal(1) matches a literal holding float64(1).
func Literal(v any) LiteralMatcher {
	return LiteralMatcher{value: v}
}

func (m LiteralMatcher) Match(t typeinfo.TypeInfo) bool {
	l, ok := t.(*typeinfo.Literal)
	if !ok || l == nil {
		return false
	}

	return literalEqual(l.Literal, m.value)
}

func (m LiteralMatcher) Describe() string {
	if s, ok := m.value.(string); ok {
		return fmt.Sprintf("literal %q", s)
	}

	return fmt.Sprintf("literal %v", m.value)
}

func literalEqual(a, b any) bool {
	fa, aNum := toFloat(a)
	fb, bNum := toFloat(b)

	if aNum || bNum {
		return aNum && bNum && fa == fb
	}

	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	}

	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}

	return 0, false
}
