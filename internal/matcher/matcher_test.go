package matcher

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	ti "fluent-gen/internal/typeinfo"
)

func TestKindMatchers(t *testing.T) {
	generic := ti.GenericOf("T")
	ref := ti.RefOf("Promise", ti.String())

	tests := []struct {
		name    string
		matcher Matcher
		typ     ti.TypeInfo
		want    bool
	}{
		{"any primitive", Primitive(), ti.Number(), true},
		{"primitive by name", Primitive("string", "boolean"), ti.Boolean(), true},
		{"primitive wrong name", Primitive("string"), ti.Number(), false},
		{"primitive vs literal", Primitive(), ti.LiteralOf("x"), false},
		{"reference any", Reference(""), ref, true},
		{"reference by name", Reference("Promise"), ref, true},
		{"reference wrong name", Reference("Map"), ref, false},
		{"generic by name", Generic("T"), generic, true},
		{"generic wrong kind", Generic("T"), ti.RefOf("T"), false},
		{"literal string", Literal("a"), ti.LiteralOf("a"), true},
		{"literal number widening", Literal(1), ti.LiteralOf(float64(1)), true},
		{"literal type mismatch", Literal("1"), ti.LiteralOf(float64(1)), false},
		{"literal bool", Literal(true), ti.LiteralOf(true), true},
		{"any", Any(), &ti.Unknown{}, true},
		{"never", Never(), &ti.Never{}, true},
		{"never vs unknown", Never(), &ti.Unknown{}, false},
		{"tuple", Tuple(), ti.TupleOf(ti.String()), true},
		{"function", Function(), &ti.Function{}, true},
		{"enum by name", Enum("Color"), &ti.Enum{Name: "Color"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.matcher.Match(tt.typ))
		})
	}
}

func TestObjectMatcher(t *testing.T) {
	user := &ti.Object{
		Name: "User",
		Properties: []ti.PropertyInfo{
			ti.Prop("id", ti.String()),
			ti.OptionalProp("tags", ti.ArrayOf(ti.String())),
		},
		GenericParams: []ti.GenericParam{ti.Param("T")},
	}

	tests := []struct {
		name    string
		matcher Matcher
		want    bool
	}{
		{"any object", Object(""), true},
		{"by name", Object("User"), true},
		{"wrong name", Object("Account"), false},
		{"with any generic", Object("").WithGeneric(""), true},
		{"with named generic", Object("").WithGeneric("T"), true},
		{"missing generic", Object("").WithGeneric("U"), false},
		{"property exists", Object("").WithProperty("id", nil), true},
		{"property typed", Object("").WithProperty("tags", Array().Of(Primitive("string"))), true},
		{"property wrong type", Object("").WithProperty("id", Primitive("number")), false},
		{"properties all", Object("User").WithProperties("id", "tags"), true},
		{"properties missing one", Object("User").WithProperties("id", "email"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.matcher.Match(user))
		})
	}
}

func TestObjectMatcher_Immutable(t *testing.T) {
	base := Object("User")
	_ = base.WithProperty("missing", nil)

	assert.True(t, base.Match(ti.ObjectOf("User")))
}

func TestUnionExact_Bijection(t *testing.T) {
	a, b, c := ti.LiteralOf("a"), ti.LiteralOf("b"), ti.LiteralOf("c")
	m := Union().Exact(Literal("a"), Literal("b"))

	assert.True(t, m.Match(ti.UnionOf(a, b)))
	assert.True(t, m.Match(ti.UnionOf(b, a)))
	assert.False(t, m.Match(ti.UnionOf(a, b, c)))
	assert.False(t, m.Match(ti.UnionOf(a)))
	assert.False(t, m.Match(ti.UnionOf(a, a)))
}

func TestUnionExact_OverlappingMatchers(t *testing.T) {
	// Greedy pairing would give "a" to Any() and then fail Literal("a").
	m := Union().Exact(Any(), Literal("a"))

	assert.True(t, m.Match(ti.UnionOf(ti.LiteralOf("a"), ti.Number())))
	assert.False(t, m.Match(ti.UnionOf(ti.Number(), ti.String())))
}

func TestMembersMatcher(t *testing.T) {
	union := ti.UnionOf(ti.String(), ti.ArrayOf(ti.Number()))
	inter := ti.IntersectionOf(ti.RefOf("A"), ti.ObjectOf("", ti.Prop("x", ti.Number())))

	assert.True(t, Union().Match(union))
	assert.False(t, Union().Match(inter))
	assert.True(t, Union().Containing(Array().Of(Primitive("number"))).Match(union))
	assert.False(t, Union().Containing(Primitive("boolean")).Match(union))
	assert.False(t, Union().Containing(Primitive("string")).Containing(Primitive("boolean")).Match(union))

	assert.True(t, Intersection().Including(Reference("A")).Match(inter))
	assert.True(t, Intersection().Exact(Object("").WithProperty("x", nil), Reference("")).Match(inter))
	assert.False(t, Intersection().Match(union))

	assert.True(t, Union().Exact().Match(ti.UnionOf()))
}

func TestLogic(t *testing.T) {
	s := ti.String()

	assert.True(t, Or(Primitive("number"), Primitive("string")).Match(s))
	assert.False(t, Or().Match(s))
	assert.True(t, And(Primitive(), Primitive("string")).Match(s))
	assert.False(t, And(Primitive(), Primitive("number")).Match(s))
	assert.True(t, And().Match(s))
	assert.True(t, Not(Primitive("number")).Match(s))
	assert.False(t, Not(Any()).Match(s))
	assert.True(t, Func("short", func(n ti.TypeInfo) bool { return n.Kind() == ti.KindPrimitive }).Match(s))
}

func TestNilTolerance(t *testing.T) {
	matchers := []Matcher{
		Primitive(), Object("").WithProperty("x", Any()), Array().Of(Any()),
		Union().Containing(Any()), Union().Exact(Any()), Intersection(),
		Reference(""), Generic(""), Literal("a"), Any(), Never(),
		Or(Any()), And(), Not(Never()), Not(nil), Or(nil), Func("nil fn", nil),
	}

	inputs := []ti.TypeInfo{
		nil,
		(*ti.Object)(nil),
		(*ti.Union)(nil),
		&ti.Array{},
		&ti.Object{Properties: []ti.PropertyInfo{{Name: "x"}}},
		&ti.Union{UnionTypes: []ti.TypeInfo{nil}},
	}

	for _, m := range matchers {
		for _, in := range inputs {
			assert.NotPanics(t, func() { m.Match(in) }, m.Describe())
		}

		assert.False(t, m.Match(nil), m.Describe())
	}

	assert.False(t, Array().Of(Any()).Match(&ti.Array{}))
	assert.False(t, Object("").WithProperty("x", Any()).Match(&ti.Object{Properties: []ti.PropertyInfo{{Name: "x"}}}))
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		matcher Matcher
		want    string
	}{
		{Primitive(), "primitive"},
		{Primitive("string", "number"), "primitive(string | number)"},
		{Object("User").WithGeneric("T").WithProperty("id", Primitive("string")), "object User with generic T, with property id: primitive(string)"},
		{Array().Of(Reference("Date")), "array of reference Date"},
		{Union().Containing(Literal("a")), `union containing literal "a"`},
		{Intersection().Exact(Any(), Never()), "intersection exactly [any, never]"},
		{Or(Primitive("string"), Not(Generic(""))), "(primitive(string) or not generic)"},
		{And(Any(), Literal(1)), "(any and literal 1)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.matcher.Describe())
		})
	}
}

func TestBuilder(t *testing.T) {
	b := NewBuilder()
	m := b.Union().Containing(b.Array().Of(b.Primitive("string")))

	assert.True(t, m.Match(ti.UnionOf(ti.ArrayOf(ti.String()), ti.Number())))
	assert.Equal(t, Object("X").Describe(), b.Object("X").Describe())
}

func ExampleUnion() {
	status := ti.UnionOf(ti.LiteralOf("active"), ti.LiteralOf("disabled"))

	m := Union().Exact(Literal("disabled"), Literal("active"))
	fmt.Println(m.Describe())
	fmt.Println(m.Match(status))
	// Output:
	// union exactly [literal "disabled", literal "active"]
	// true
}
