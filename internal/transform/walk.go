package transform

import (
	"strconv"

	"fluent-gen/internal/matcher"
	"fluent-gen/internal/typeinfo"
)

// Walk visits t and every descendant in pre-order. Returning false from fn
// skips the children of that node. Nil nodes are never visited.
func Walk(t typeinfo.TypeInfo, fn func(typeinfo.TypeInfo, Visit) bool) {
	walk(t, Visit{}, func(n typeinfo.TypeInfo, v Visit) (bool, bool) {
		return fn(n, v), true
	})
}

// walk reports false once fn asked to stop the whole traversal.
func walk(t typeinfo.TypeInfo, v Visit, fn func(typeinfo.TypeInfo, Visit) (descend, more bool)) bool {
	if typeinfo.IsNil(t) {
		return true
	}

	descend, more := fn(t, v)
	if !more {
		return false
	}

	if !descend {
		return true
	}

	for _, c := range children(t) {
		if !walk(c.typ, v.child(c.segment), fn) {
			return false
		}
	}

	return true
}

type edge struct {
	segment string
	typ     typeinfo.TypeInfo
}

// children lists the child nodes of t with the same path segments the
// renderer uses.
func children(t typeinfo.TypeInfo) []edge {
	var out []edge

	add := func(seg string, c typeinfo.TypeInfo) {
		if !typeinfo.IsNil(c) {
			out = append(out, edge{segment: seg, typ: c})
		}
	}

	indexed := func(open, close string, ts []typeinfo.TypeInfo) {
		for i, c := range ts {
			add(open+strconv.Itoa(i)+close, c)
		}
	}

	switch n := t.(type) {
	case *typeinfo.Object:
		for _, p := range n.Properties {
			add(p.Name, p.Type)
		}
		if n.IndexSignature != nil {
			add("[key]", n.IndexSignature.ValueType)
		}
	case *typeinfo.Array:
		add("[]", n.ElementType)
	case *typeinfo.Union:
		indexed("[", "]", n.UnionTypes)
	case *typeinfo.Intersection:
		indexed("[", "]", n.IntersectionTypes)
	case *typeinfo.Tuple:
		indexed("[", "]", n.Elements)
	case *typeinfo.Generic:
		indexed("<", ">", n.TypeArguments)
	case *typeinfo.Reference:
		indexed("<", ">", n.TypeArguments)
	case *typeinfo.Keyof:
		add("keyof", n.Target)
	case *typeinfo.Typeof:
		add("typeof", n.Target)
	case *typeinfo.Index:
		add("object", n.Object)
		add("index", n.Index)
	case *typeinfo.Conditional:
		add("check", n.CheckType)
		add("extends", n.ExtendsType)
		add("true", n.TrueType)
		add("false", n.FalseType)
	}

	return out
}

// ContainsTypeDeep reports whether t or any descendant satisfies m.
func ContainsTypeDeep(t typeinfo.TypeInfo, m matcher.Matcher) bool {
	if m == nil {
		return false
	}

	found := false

	walk(t, Visit{}, func(n typeinfo.TypeInfo, _ Visit) (bool, bool) {
		found = m.Match(n)
		return true, !found
	})

	return found
}

// FindTypesDeep returns every node of t (t included) that satisfies m, in
// pre-order.
func FindTypesDeep(t typeinfo.TypeInfo, m matcher.Matcher) []typeinfo.TypeInfo {
	if m == nil {
		return nil
	}

	var out []typeinfo.TypeInfo

	Walk(t, func(n typeinfo.TypeInfo, _ Visit) bool {
		if m.Match(n) {
			out = append(out, n)
		}

		return true
	})

	return out
}
