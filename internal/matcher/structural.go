package matcher

import (
	"fmt"
	"strings"

	"fluent-gen/internal/common"
	"fluent-gen/internal/typeinfo"
)

type propertyRule struct {
	name string
	typ  Matcher // nil = existence only
}

// ObjectMatcher matches object types.
type ObjectMatcher struct {
	name       string
	generic    *string
	properties []propertyRule
}

// Object matches an object, optionally with an exact name ("" = any name).
func Object(name string) ObjectMatcher {
	return ObjectMatcher{name: name}
}

// WithGeneric requires the object to declare a generic parameter. An empty
// name accepts any parameter.
func (m ObjectMatcher) WithGeneric(name string) ObjectMatcher {
	m.generic = &name
	return m
}

// WithProperty requires a property called name whose type satisfies typ. A
// nil typ only checks that the property exists.
func (m ObjectMatcher) WithProperty(name string, typ Matcher) ObjectMatcher {
	m.properties = append(common.Clone(m.properties), propertyRule{name: name, typ: typ})
	return m
}

// WithProperties requires every named property to exist.
func (m ObjectMatcher) WithProperties(names ...string) ObjectMatcher {
	props := common.Clone(m.properties)
	for _, n := range names {
		props = append(props, propertyRule{name: n})
	}

	m.properties = props

	return m
}

func (m ObjectMatcher) Match(t typeinfo.TypeInfo) bool {
	obj, ok := t.(*typeinfo.Object)
	if !ok || obj == nil {
		return false
	}

	if m.name != "" && obj.Name != m.name {
		return false
	}

	if m.generic != nil && !obj.HasGenericParam(*m.generic) {
		return false
	}

	for _, rule := range m.properties {
		p := obj.Property(rule.name)
		if p == nil {
			return false
		}

		if rule.typ != nil && !matches(rule.typ, p.Type) {
			return false
		}
	}

	return true
}

func (m ObjectMatcher) Describe() string {
	var sb strings.Builder

	sb.WriteString("object")

	if m.name != "" {
		sb.WriteString(" " + m.name)
	}

	var parts []string

	if m.generic != nil {
		if *m.generic == "" {
			parts = append(parts, "with generic")
		} else {
			parts = append(parts, "with generic "+*m.generic)
		}
	}

	for _, rule := range m.properties {
		if rule.typ == nil {
			parts = append(parts, "with property "+rule.name)
		} else {
			parts = append(parts, fmt.Sprintf("with property %s: %s", rule.name, rule.typ.Describe()))
		}
	}

	if len(parts) > 0 {
		sb.WriteString(" " + strings.Join(parts, ", "))
	}

	return sb.String()
}

// ArrayMatcher matches array types.
type ArrayMatcher struct {
	elem Matcher
}

// Array matches any array.
func Array() ArrayMatcher { return ArrayMatcher{} }

// Of requires the element type to satisfy elem.
func (m ArrayMatcher) Of(elem Matcher) ArrayMatcher {
	m.elem = elem
	return m
}

func (m ArrayMatcher) Match(t typeinfo.TypeInfo) bool {
	arr, ok := t.(*typeinfo.Array)
	if !ok || arr == nil {
		return false
	}

	return m.elem == nil || matches(m.elem, arr.ElementType)
}

func (m ArrayMatcher) Describe() string {
	if m.elem == nil {
		return "array"
	}

	return "array of " + m.elem.Describe()
}

// MembersMatcher matches unions or intersections by their members.
type MembersMatcher struct {
	kind       typeinfo.Kind
	containing []Matcher
	exact      []Matcher
	hasExact   bool
}

// Union matches any union.
func Union() MembersMatcher { return MembersMatcher{kind: typeinfo.KindUnion} }

// Intersection matches any intersection.
func Intersection() MembersMatcher { return MembersMatcher{kind: typeinfo.KindIntersection} }

// Containing requires at least one member to satisfy m. Repeated calls add
// requirements that must all hold.
func (mm MembersMatcher) Containing(m Matcher) MembersMatcher {
	mm.containing = append(common.Clone(mm.containing), m)
	return mm
}

// Including is Containing under the name used for intersections.
func (mm MembersMatcher) Including(m Matcher) MembersMatcher {
	return mm.Containing(m)
}

// Exact requires a one-to-one pairing between members and ms: every member
// matches a distinct matcher and every matcher is used once. Order does not
// matter.
func (mm MembersMatcher) Exact(ms ...Matcher) MembersMatcher {
	mm.exact = ms
	mm.hasExact = true

	return mm
}

func (mm MembersMatcher) members(t typeinfo.TypeInfo) ([]typeinfo.TypeInfo, bool) {
	switch n := t.(type) {
	case *typeinfo.Union:
		if n == nil || mm.kind != typeinfo.KindUnion {
			return nil, false
		}
		return n.UnionTypes, true
	case *typeinfo.Intersection:
		if n == nil || mm.kind != typeinfo.KindIntersection {
			return nil, false
		}
		return n.IntersectionTypes, true
	}

	return nil, false
}

func (mm MembersMatcher) Match(t typeinfo.TypeInfo) bool {
	members, ok := mm.members(t)
	if !ok {
		return false
	}

	for _, want := range mm.containing {
		found := false

		for _, member := range members {
			if matches(want, member) {
				found = true
				break
			}
		}

		if !found {
			return false
		}
	}

	if mm.hasExact {
		return perfectMatching(members, mm.exact)
	}

	return true
}

func (mm MembersMatcher) Describe() string {
	word := "containing"
	if mm.kind == typeinfo.KindIntersection {
		word = "including"
	}

	var parts []string

	for _, m := range mm.containing {
		parts = append(parts, word+" "+describe(m))
	}

	if mm.hasExact {
		parts = append(parts, "exactly ["+strings.Join(describeAll(mm.exact), ", ")+"]")
	}

	if len(parts) == 0 {
		return mm.kind.String()
	}

	return mm.kind.String() + " " + strings.Join(parts, ", ")
}

// perfectMatching reports whether members and ms can be paired one to one
// with every member satisfying its matcher. It grows a maximum bipartite
// matching with augmenting paths, so overlapping matchers are handled.
func perfectMatching(members []typeinfo.TypeInfo, ms []Matcher) bool {
	if len(members) != len(ms) {
		return false
	}

	owner := make([]int, len(ms)) // matcher index -> member index
	for i := range owner {
		owner[i] = -1
	}

	var augment func(member int, seen []bool) bool
	augment = func(member int, seen []bool) bool {
		for j, m := range ms {
			if seen[j] || !matches(m, members[member]) {
				continue
			}

			seen[j] = true

			if owner[j] < 0 || augment(owner[j], seen) {
				owner[j] = member
				return true
			}
		}

		return false
	}

	for i := range members {
		if !augment(i, make([]bool, len(ms))) {
			return false
		}
	}

	return true
}
