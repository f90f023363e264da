package generics

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ti "fluent-gen/internal/typeinfo"
)

func TestRegister_CircularConstraint(t *testing.T) {
	tests := []struct {
		name    string
		setup   []ti.GenericParam
		param   ti.GenericParam
		wantErr bool
		chain   []string
	}{
		{
			name:  "plain constraint",
			param: ti.ParamExtends("T", ti.String()),
		},
		{
			name:    "self reference",
			param:   ti.ParamExtends("T", ti.GenericOf("T")),
			wantErr: true,
			chain:   []string{"T", "T"},
		},
		{
			name:    "two step",
			setup:   []ti.GenericParam{ti.ParamExtends("U", ti.GenericOf("T"))},
			param:   ti.ParamExtends("T", ti.GenericOf("U")),
			wantErr: true,
			chain:   []string{"T", "U", "T"},
		},
		{
			name: "three step through nested types",
			setup: []ti.GenericParam{
				ti.ParamExtends("U", ti.ArrayOf(ti.GenericOf("V"))),
				ti.ParamExtends("V", ti.ObjectOf("", ti.Prop("x", ti.RefOf("T")))),
			},
			param:   ti.ParamExtends("T", ti.UnionOf(ti.String(), ti.GenericOf("U"))),
			wantErr: true,
			chain:   []string{"T", "U", "V", "T"},
		},
		{
			name: "chain without cycle",
			setup: []ti.GenericParam{
				ti.ParamExtends("U", ti.GenericOf("V")),
				ti.Param("V"),
			},
			param: ti.ParamExtends("T", ti.GenericOf("U")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewContext()
			for _, p := range tt.setup {
				require.NoError(t, ctx.RegisterGenericParam(p))
			}

			err := ctx.RegisterGenericParam(tt.param)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.True(t, ctx.IsGenericParam(tt.param.Name))

				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrCircularConstraint))

			var gerr *Error
			require.True(t, errors.As(err, &gerr))
			assert.Equal(t, tt.chain, gerr.Chain)
			assert.False(t, ctx.IsGenericParam(tt.param.Name))
		})
	}
}

func TestFindCycle_ExistingCycleTerminates(t *testing.T) {
	params := map[string]ti.GenericParam{
		"A": ti.ParamExtends("A", ti.GenericOf("B")),
		"B": ti.ParamExtends("B", ti.GenericOf("A")),
		"C": ti.ParamExtends("C", ti.GenericOf("A")),
	}

	lookup := func(name string) (ti.GenericParam, bool) {
		p, ok := params[name]
		return p, ok
	}

	assert.Nil(t, findCycle("C", lookup))
	assert.Equal(t, []string{"A", "B", "A"}, findCycle("A", lookup))
}

func TestRegister_InvalidName(t *testing.T) {
	for _, name := range []string{"", "1T", "T-U", "a b"} {
		err := NewContext().RegisterGenericParam(ti.Param(name))
		assert.True(t, errors.Is(err, ErrInvalidParameterName), "name %q", name)
	}

	for _, name := range []string{"T", "_T", "$T", "TValue2"} {
		assert.NoError(t, NewContext().RegisterGenericParam(ti.Param(name)), "name %q", name)
	}
}

func TestRegisterGenericParams_AllOrNothing(t *testing.T) {
	ctx := NewContext()

	err := ctx.RegisterGenericParams([]ti.GenericParam{
		ti.Param("A"),
		ti.ParamExtends("B", ti.GenericOf("C")),
		ti.ParamExtends("C", ti.GenericOf("B")),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCircularConstraint))
	assert.Empty(t, ctx.GetAllGenericParams())

	err = ctx.RegisterGenericParams([]ti.GenericParam{ti.Param("A"), ti.Param("1bad")})
	assert.True(t, errors.Is(err, ErrInvalidParameterName))
	assert.False(t, ctx.IsGenericParam("A"))

	err = ctx.RegisterGenericParams([]ti.GenericParam{ti.Param("A"), ti.Param("A")})
	assert.True(t, errors.Is(err, ErrDuplicateParameter))
	assert.False(t, ctx.IsGenericParam("A"))

	require.NoError(t, ctx.RegisterGenericParams([]ti.GenericParam{
		ti.ParamExtends("K", &ti.Keyof{Target: ti.GenericOf("T")}),
		ti.Param("T"),
	}))
	assert.Len(t, ctx.GetAllGenericParams(), 2)
}

func TestRegister_ReplaceInSameScope(t *testing.T) {
	ctx := NewContext()
	require.NoError(t, ctx.RegisterGenericParam(ti.Param("T")))
	require.NoError(t, ctx.RegisterGenericParam(ti.ParamExtends("T", ti.String())))

	p, ok := ctx.GetGenericParam("T")
	require.True(t, ok)
	assert.Equal(t, ti.String(), p.Constraint)
	assert.Len(t, ctx.GetAllGenericParams(), 1)
}

func TestSetTypeArgument(t *testing.T) {
	ctx := NewContext()
	require.NoError(t, ctx.RegisterGenericParam(ti.Param("TValue")))

	require.NoError(t, ctx.SetTypeArgument("TValue", ti.Number()))

	err := ctx.SetTypeArgument("TValeu", ti.Number())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnregisteredParameter))
	assert.Contains(t, errors.FlattenHints(err), `did you mean "TValue"?`)

	err = ctx.SetTypeArgument("Zzz", ti.Number())
	assert.True(t, errors.Is(err, ErrUnregisteredParameter))
	assert.Empty(t, errors.FlattenHints(err))
}

func TestGetResolvedType_NeverDefault(t *testing.T) {
	ctx := NewContext()
	require.NoError(t, ctx.RegisterGenericParam(ti.GenericParam{Name: "T", Default: ti.String()}))

	_, ok := ctx.GetResolvedType("T")
	assert.False(t, ok)

	def, ok := ctx.GetDefaultType("T")
	require.True(t, ok)
	assert.Equal(t, ti.String(), def)

	require.NoError(t, ctx.SetTypeArgument("T", ti.Boolean()))

	got, ok := ctx.GetResolvedType("T")
	require.True(t, ok)
	assert.Equal(t, ti.Boolean(), got)
}

func TestChildContext_Shadowing(t *testing.T) {
	parent := NewContext()
	require.NoError(t, parent.RegisterGenericParam(ti.Param("T")))
	require.NoError(t, parent.SetTypeArgument("T", ti.String()))

	child := parent.CreateChildContext()
	assert.Same(t, parent, child.Parent())
	assert.Nil(t, parent.Parent())

	got, ok := child.GetResolvedType("T")
	require.True(t, ok)
	assert.Equal(t, ti.String(), got)

	require.NoError(t, child.SetTypeArgument("T", ti.Number()))

	got, _ = child.GetResolvedType("T")
	assert.Equal(t, ti.Number(), got)

	got, _ = parent.GetResolvedType("T")
	assert.Equal(t, ti.String(), got)

	require.NoError(t, child.RegisterGenericParam(ti.Param("U")))
	assert.False(t, parent.IsGenericParam("U"))
	assert.True(t, child.IsGenericParam("U"))
}

func TestGetUnresolvedGenerics_LocalOnly(t *testing.T) {
	parent := NewContext()
	require.NoError(t, parent.RegisterGenericParams([]ti.GenericParam{ti.Param("B"), ti.Param("A"), ti.Param("C")}))
	require.NoError(t, parent.SetTypeArgument("A", ti.String()))

	assert.Equal(t, []ti.GenericParam{ti.Param("B"), ti.Param("C")}, parent.GetUnresolvedGenerics())

	child := parent.CreateChildContext()
	assert.Empty(t, child.GetUnresolvedGenerics())
}

func TestGetAllGenericParams_Shadowed(t *testing.T) {
	parent := NewContext()
	require.NoError(t, parent.RegisterGenericParams([]ti.GenericParam{ti.Param("T"), ti.Param("U")}))

	child := parent.CreateChildContext()
	require.NoError(t, child.RegisterGenericParams([]ti.GenericParam{ti.ParamExtends("T", ti.String()), ti.Param("V")}))

	assert.Equal(t, []ti.GenericParam{
		ti.ParamExtends("T", ti.String()),
		ti.Param("U"),
		ti.Param("V"),
	}, child.GetAllGenericParams())
}

func TestClone_Independent(t *testing.T) {
	parent := NewContext()
	ctx := parent.CreateChildContext()
	require.NoError(t, ctx.RegisterGenericParam(ti.Param("T")))

	cp := ctx.Clone()
	assert.Same(t, parent, cp.Parent())

	require.NoError(t, cp.RegisterGenericParam(ti.Param("U")))
	require.NoError(t, cp.SetTypeArgument("T", ti.String()))

	assert.False(t, ctx.IsGenericParam("U"))
	_, ok := ctx.GetResolvedType("T")
	assert.False(t, ok)
}

func TestMerge(t *testing.T) {
	build := func(t *testing.T, constraint ti.TypeInfo, arg ti.TypeInfo) *Context {
		t.Helper()

		ctx := NewContext()
		require.NoError(t, ctx.RegisterGenericParam(ti.ParamExtends("T", constraint)))
		require.NoError(t, ctx.SetTypeArgument("T", arg))

		return ctx
	}

	tests := []struct {
		strategy   MergeStrategy
		wantErr    bool
		constraint ti.TypeInfo
		arg        ti.TypeInfo
	}{
		{KeepExisting, false, ti.String(), ti.LiteralOf("a")},
		{Overwrite, false, ti.Number(), ti.LiteralOf(float64(1))},
		{ErrorOnConflict, true, ti.String(), ti.LiteralOf("a")},
	}

	for _, tt := range tests {
		t.Run(string(tt.strategy), func(t *testing.T) {
			base := build(t, ti.String(), ti.LiteralOf("a"))
			other := build(t, ti.Number(), ti.LiteralOf(float64(1)))
			require.NoError(t, other.RegisterGenericParam(ti.Param("Extra")))

			err := base.Merge(other, tt.strategy)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrMergeConflict))
				assert.False(t, base.IsGenericParam("Extra"))
			} else {
				require.NoError(t, err)
				assert.True(t, base.IsGenericParam("Extra"))
			}

			p, _ := base.GetGenericParam("T")
			assert.Equal(t, tt.constraint, p.Constraint)

			got, _ := base.GetResolvedType("T")
			assert.Equal(t, tt.arg, got)
		})
	}
}

func TestMerge_BindingNeedsDeclaration(t *testing.T) {
	parent := NewContext()
	require.NoError(t, parent.RegisterGenericParam(ti.Param("T")))

	other := parent.CreateChildContext()
	require.NoError(t, other.SetTypeArgument("T", ti.String()))
	require.NoError(t, other.RegisterGenericParam(ti.Param("U")))

	for _, strategy := range []MergeStrategy{KeepExisting, Overwrite, ErrorOnConflict} {
		t.Run(string(strategy), func(t *testing.T) {
			c := NewContext()

			err := c.Merge(other, strategy)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnregisteredParameter))

			assert.False(t, c.IsGenericParam("T"))
			assert.False(t, c.IsGenericParam("U"))

			_, bound := c.GetResolvedType("T")
			assert.False(t, bound)
		})
	}

	// a sibling scope under the same parent sees T and may take the binding
	sibling := parent.CreateChildContext()
	require.NoError(t, sibling.Merge(other, Overwrite))

	got, ok := sibling.GetResolvedType("T")
	require.True(t, ok)
	assert.Equal(t, ti.String(), got)
	assert.True(t, sibling.IsGenericParam("U"))
}

func TestMerge_IdenticalIsNotConflict(t *testing.T) {
	a := NewContext()
	b := NewContext()

	for _, ctx := range []*Context{a, b} {
		require.NoError(t, ctx.RegisterGenericParam(ti.ParamExtends("T", ti.String())))
	}

	assert.NoError(t, a.Merge(b, ErrorOnConflict))
	assert.NoError(t, a.Merge(nil, ErrorOnConflict))

	err := a.Merge(b, MergeStrategy("last"))
	assert.True(t, errors.Is(err, ErrInvalidMergeStrategy))
}

func TestMerge_RejectsCycle(t *testing.T) {
	a := NewContext()
	require.NoError(t, a.RegisterGenericParam(ti.ParamExtends("T", ti.GenericOf("U"))))

	b := NewContext()
	require.NoError(t, b.RegisterGenericParam(ti.ParamExtends("U", ti.GenericOf("T"))))

	err := a.Merge(b, Overwrite)
	assert.True(t, errors.Is(err, ErrCircularConstraint))
	assert.False(t, a.IsGenericParam("U"))
}

func TestOrderedParams(t *testing.T) {
	ctx := NewContext()
	require.NoError(t, ctx.RegisterGenericParams([]ti.GenericParam{
		ti.ParamExtends("K", &ti.Keyof{Target: ti.GenericOf("T")}),
		{Name: "V", Default: &ti.Index{Object: ti.GenericOf("T"), Index: ti.GenericOf("K")}},
		ti.Param("T"),
		ti.Param("Z"),
	}))

	ordered, err := ctx.OrderedParams()
	require.NoError(t, err)

	names := make([]string, len(ordered))
	for i, p := range ordered {
		names[i] = p.Name
	}

	assert.Equal(t, []string{"T", "K", "V", "Z"}, names)
}

func TestOrderedParams_DefaultCycle(t *testing.T) {
	ctx := NewContext()
	require.NoError(t, ctx.RegisterGenericParams([]ti.GenericParam{
		{Name: "A", Default: ti.GenericOf("B")},
		{Name: "B", Default: ti.GenericOf("A")},
	}))

	_, err := ctx.OrderedParams()
	assert.True(t, errors.Is(err, ErrCircularConstraint))
}

func TestSubstitute(t *testing.T) {
	parent := NewContext()
	require.NoError(t, parent.RegisterGenericParams([]ti.GenericParam{ti.Param("T"), {Name: "D", Default: ti.String()}}))
	require.NoError(t, parent.SetTypeArgument("T", ti.Number()))

	child := parent.CreateChildContext()
	require.NoError(t, child.RegisterGenericParam(ti.Param("U")))

	in := &ti.Object{
		Name: "Box",
		Properties: []ti.PropertyInfo{
			ti.Prop("value", ti.GenericOf("T")),
			ti.Prop("items", ti.ArrayOf(ti.RefOf("T"))),
			ti.Prop("other", ti.GenericOf("U")),
			ti.Prop("fallback", ti.GenericOf("D")),
			ti.Prop("promise", ti.RefOf("Promise", ti.GenericOf("T"))),
		},
		UnresolvedGenerics: []ti.GenericParam{ti.Param("T"), ti.Param("U")},
	}

	out := child.Substitute(in).(*ti.Object)

	assert.Equal(t, ti.Number(), out.Properties[0].Type)
	assert.Equal(t, ti.ArrayOf(ti.Number()), out.Properties[1].Type)
	assert.Equal(t, ti.GenericOf("U"), out.Properties[2].Type)
	assert.Equal(t, ti.GenericOf("D"), out.Properties[3].Type)
	assert.Equal(t, ti.RefOf("Promise", ti.Number()), out.Properties[4].Type)
	assert.Equal(t, []ti.GenericParam{ti.Param("U")}, out.UnresolvedGenerics)

	// the input tree is untouched
	assert.Equal(t, ti.GenericOf("T"), in.Properties[0].Type)
	assert.Len(t, in.UnresolvedGenerics, 2)

	assert.Nil(t, child.Substitute(nil))
}
