package transform

import (
	"fluent-gen/internal/matcher"
	"fluent-gen/internal/typeinfo"
)

type rule struct {
	when    func(typeinfo.TypeInfo, int) bool
	replace func(typeinfo.TypeInfo) Replacement
}

// TypeDeepTransformer binds one type tree and a list of replacement rules.
// Rules are tried in registration order at every node; the first that
// matches replaces the node (and its whole subtree).
type TypeDeepTransformer struct {
	typ   typeinfo.TypeInfo
	rules []rule
	opts  Options
}

// NewTypeDeepTransformer binds t.
func NewTypeDeepTransformer(t typeinfo.TypeInfo) *TypeDeepTransformer {
	return &TypeDeepTransformer{typ: t}
}

// WithOptions sets the rendering options used by String.
func (d *TypeDeepTransformer) WithOptions(opts Options) *TypeDeepTransformer {
	d.opts = opts
	return d
}

// Replace renders nodes matching m as text.
func (d *TypeDeepTransformer) Replace(m matcher.Matcher, text string) *TypeDeepTransformer {
	return d.ReplaceFunc(m, func(typeinfo.TypeInfo) string { return text })
}

// ReplaceFunc renders nodes matching m as fn(node).
func (d *TypeDeepTransformer) ReplaceFunc(m matcher.Matcher, fn func(typeinfo.TypeInfo) string) *TypeDeepTransformer {
	if m == nil || fn == nil {
		return d
	}

	d.rules = append(d.rules, rule{
		when:    func(n typeinfo.TypeInfo, _ int) bool { return m.Match(n) },
		replace: func(n typeinfo.TypeInfo) Replacement { return Text(fn(n)) },
	})

	return d
}

// ReplaceWithType renders nodes matching m as the type fn(node) instead.
func (d *TypeDeepTransformer) ReplaceWithType(m matcher.Matcher, fn func(typeinfo.TypeInfo) typeinfo.TypeInfo) *TypeDeepTransformer {
	if m == nil || fn == nil {
		return d
	}

	d.rules = append(d.rules, rule{
		when:    func(n typeinfo.TypeInfo, _ int) bool { return m.Match(n) },
		replace: func(n typeinfo.TypeInfo) Replacement { return Type(fn(n)) },
	})

	return d
}

// ReplaceIf renders nodes for which pred(node, depth) holds as text.
func (d *TypeDeepTransformer) ReplaceIf(pred func(typeinfo.TypeInfo, int) bool, text string) *TypeDeepTransformer {
	return d.ReplaceIfFunc(pred, func(typeinfo.TypeInfo) string { return text })
}

// ReplaceIfFunc renders nodes for which pred(node, depth) holds as fn(node).
func (d *TypeDeepTransformer) ReplaceIfFunc(pred func(typeinfo.TypeInfo, int) bool, fn func(typeinfo.TypeInfo) string) *TypeDeepTransformer {
	if pred == nil || fn == nil {
		return d
	}

	d.rules = append(d.rules, rule{
		when:    pred,
		replace: func(n typeinfo.TypeInfo) Replacement { return Text(fn(n)) },
	})

	return d
}

// String renders the bound type with every rule applied.
func (d *TypeDeepTransformer) String() string {
	return TransformTypeDeep(d.typ, Callbacks{OnAny: d.apply}, d.opts)
}

func (d *TypeDeepTransformer) apply(n typeinfo.TypeInfo, v Visit) Replacement {
	for _, r := range d.rules {
		if r.when(n, v.Depth) {
			return r.replace(n)
		}
	}

	return Keep
}

// HasMatch reports whether the bound type contains a node matching m.
func (d *TypeDeepTransformer) HasMatch(m matcher.Matcher) bool {
	return ContainsTypeDeep(d.typ, m)
}

// FindMatches returns the nodes of the bound type matching m.
func (d *TypeDeepTransformer) FindMatches(m matcher.Matcher) []typeinfo.TypeInfo {
	return FindTypesDeep(d.typ, m)
}
