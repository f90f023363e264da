package matcher

import (
	"strings"

	"fluent-gen/internal/typeinfo"
)

type orMatcher []Matcher

// Or matches when any of ms matches. Or() with no matchers matches nothing.
func Or(ms ...Matcher) Matcher { return orMatcher(ms) }

func (o orMatcher) Match(t typeinfo.TypeInfo) bool {
	for _, m := range o {
		if matches(m, t) {
			return true
		}
	}

	return false
}

func (o orMatcher) Describe() string {
	return "(" + strings.Join(describeAll(o), " or ") + ")"
}

type andMatcher []Matcher

// And matches when every one of ms matches. And() with no matchers matches
// any non-nil type.
func And(ms ...Matcher) Matcher { return andMatcher(ms) }

func (a andMatcher) Match(t typeinfo.TypeInfo) bool {
	if typeinfo.IsNil(t) {
		return false
	}

	for _, m := range a {
		if !matches(m, t) {
			return false
		}
	}

	return true
}

func (a andMatcher) Describe() string {
	return "(" + strings.Join(describeAll(a), " and ") + ")"
}

type notMatcher struct {
	inner Matcher
}

// Not negates m. A nil tree never matches, negated or not.
func Not(m Matcher) Matcher { return notMatcher{inner: m} }

func (n notMatcher) Match(t typeinfo.TypeInfo) bool {
	if typeinfo.IsNil(t) {
		return false
	}

	return !matches(n.inner, t)
}

func (n notMatcher) Describe() string {
	return "not " + describe(n.inner)
}

// Func adapts a plain predicate into a Matcher.
func Func(description string, fn func(typeinfo.TypeInfo) bool) Matcher {
	return funcMatcher{desc: description, fn: fn}
}

type funcMatcher struct {
	desc string
	fn   func(typeinfo.TypeInfo) bool
}

func (f funcMatcher) Match(t typeinfo.TypeInfo) bool {
	return f.fn != nil && !typeinfo.IsNil(t) && f.fn(t)
}

func (f funcMatcher) Describe() string { return f.desc }
