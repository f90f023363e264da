package plugin

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fluent-gen/internal/diagnostic"
)

func TestRegister_Duplicate(t *testing.T) {
	m := NewManager()
	original := &Plugin{Name: "dates", Version: "1.0.0"}
	require.NoError(t, m.Register(original))

	err := m.Register(&Plugin{Name: "dates", Version: "2.0.0"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicatePlugin))

	assert.Equal(t, 1, m.Len())
	assert.Len(t, m.Plugins(), 1)

	got, ok := m.Plugin("dates")
	require.True(t, ok)
	assert.Equal(t, "1.0.0", got.Version)

	require.NoError(t, m.Register(&Plugin{Name: "dates-v2", Version: "2.0.0"}))
	assert.Equal(t, 2, m.Len())
}

func TestRegister_StoresCopy(t *testing.T) {
	m := NewManager()
	p := &Plugin{Name: "dates", Version: "1.0.0", Imports: []Import{
		{Kind: ImportExternal, Package: "dayjs", Imports: []string{"Dayjs"}},
	}}
	require.NoError(t, m.Register(p))

	p.Name = "renamed"
	p.Imports[0].Imports[0] = "Changed"
	p.Imports = append(p.Imports, Import{Kind: ImportExternal, Package: "extra", Imports: []string{"X"}})

	assert.True(t, m.Has("dates"))
	assert.False(t, m.Has("renamed"))

	got, ok := m.Plugin("dates")
	require.True(t, ok)
	assert.Equal(t, "dates", got.Name)
	assert.NotSame(t, p, got)

	assert.Equal(t, []string{`import { Dayjs } from "dayjs";`}, m.GetRequiredImports().ToImportStatements())
}

func TestRegister_NameWhitespace(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Register(&Plugin{Name: "dates", Version: "1.0.0"}))

	for _, name := range []string{" dates", "dates ", "\tdates"} {
		err := m.Register(&Plugin{Name: name, Version: "1.0.0"})
		require.Error(t, err, "%q", name)
		assert.True(t, errors.Is(err, ErrInvalidPlugin))

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, []string{CodeNameWhitespace}, verr.Diagnostics.Codes())
		assert.Equal(t, []string{"dates"}, verr.Diagnostics.Errors[0].Suggestions)
	}

	assert.Equal(t, 1, m.Len())
}

func TestRegister_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		p     *Plugin
		codes []string
		paths []string
	}{
		{
			name:  "nil",
			p:     nil,
			codes: []string{CodeMissingName},
		},
		{
			name:  "missing identity",
			p:     &Plugin{Name: "  "},
			codes: []string{CodeMissingName, CodeMissingVersion},
			paths: []string{"name", "version"},
		},
		{
			name: "bad imports",
			p: &Plugin{Name: "p", Version: "1.0.0", Imports: []Import{
				{Kind: ImportInternal, Path: "./a", Imports: []string{"A"}},
				{Kind: ImportInternal, Imports: []string{"B"}},
				{Kind: ImportExternal, Imports: []string{"C"}},
				{Kind: "externel", Package: "x", Imports: []string{"D"}},
				{Kind: ImportExternal, Package: "y"},
				{Kind: ImportExternal, Package: "z", Imports: []string{""}, IsDefault: true},
			}},
			codes: []string{CodeImportMissingPath, CodeImportMissingPkg, CodeImportKind, CodeImportMissingNames, CodeImportEmptyName, CodeImportDefaultName},
			paths: []string{"imports[1].path", "imports[2].package", "imports[3].kind", "imports[4].imports", "imports[5].imports[0]", "imports[5].defaultName"},
		},
		{
			name:  "bad host constraint",
			p:     &Plugin{Name: "p", Version: "1.0.0", HostVersion: "not a constraint"},
			codes: []string{CodeBadHostConstraint},
			paths: []string{"hostVersion"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager()

			err := m.Register(tt.p)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidPlugin))
			assert.Equal(t, 0, m.Len())

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.codes, verr.Diagnostics.Codes())

			if tt.paths != nil {
				paths := make([]string, len(verr.Diagnostics.Errors))
				for i, d := range verr.Diagnostics.Errors {
					paths[i] = d.Path
				}

				assert.Equal(t, tt.paths, paths)
			}
		})
	}
}

func TestValidate_KindSuggestion(t *testing.T) {
	diags := Validate(&Plugin{Name: "p", Version: "1.0.0", Imports: []Import{
		{Kind: "externel", Package: "x", Imports: []string{}},
	}}, "")

	require.Len(t, diags.Errors, 1)
	assert.Equal(t, []string{"external"}, diags.Errors[0].Suggestions)
	assert.Contains(t, errors.FlattenHints(diags.Err()), `did you mean "external"?`)
}

func TestValidate_Warnings(t *testing.T) {
	diags := Validate(&Plugin{Name: "p", Version: "latest", Imports: []Import{
		{Kind: ImportExternal, Package: "x", Imports: []string{"X"}, DefaultName: "x"},
	}}, "")

	assert.False(t, diags.HasErrors())

	codes := make([]string, len(diags.Warnings))
	for i, w := range diags.Warnings {
		codes[i] = w.Code
		assert.Equal(t, diagnostic.SeverityWarning, w.Severity)
	}

	assert.Equal(t, []string{CodeVersionNotSemver, CodeImportDefaultUnused}, codes)
}

func TestRegister_HostVersion(t *testing.T) {
	tests := []struct {
		name       string
		host       string
		constraint string
		wantErr    bool
	}{
		{"no constraint", "1.0.0", "", false},
		{"satisfied", "1.4.2", ">= 1.2, < 2", false},
		{"too new", "2.0.0", ">= 1.2, < 2", true},
		{"caret", "0.9.0", "^1.0.0", true},
		{"host unknown", "", "^1.0.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(WithHostVersion(tt.host))

			err := m.Register(&Plugin{Name: "p", Version: "1.0.0", HostVersion: tt.constraint})
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidPlugin))
			assert.Contains(t, err.Error(), "plugin requires host")
		})
	}
}

func TestUnregister(t *testing.T) {
	m := NewManager()
	mustRegister(t, m,
		&Plugin{Name: "a", Version: "1.0.0"},
		&Plugin{Name: "b", Version: "1.0.0"},
		&Plugin{Name: "c", Version: "1.0.0"},
	)

	assert.True(t, m.Unregister("b"))
	assert.False(t, m.Unregister("b"))
	assert.False(t, m.Has("b"))

	names := make([]string, 0, m.Len())
	for _, p := range m.Plugins() {
		names = append(names, p.Name)
	}

	assert.Equal(t, []string{"a", "c"}, names)

	got, ok := m.Plugin("c")
	require.True(t, ok)
	assert.Equal(t, "c", got.Name)

	require.NoError(t, m.Register(&Plugin{Name: "b", Version: "2.0.0"}))
	assert.Equal(t, "b", m.Plugins()[2].Name)
}

func TestBuilder_Build(t *testing.T) {
	p, err := New("dates", "1.0.0").
		Description("date helpers").
		RequiresHost("^1").
		ExternalImport("dayjs", "Dayjs").
		InternalImport("./types").
		BeforeParse(appendToTypeName("!")).
		Build()
	require.NoError(t, err)

	assert.Equal(t, "dates@1.0.0", p.String())
	assert.Equal(t, "date helpers", p.Description)
	require.Len(t, p.Imports, 2)
	assert.NotNil(t, p.Imports[1].Imports)
	assert.Equal(t, []HookType{HookBeforeParse}, p.Hooks.Implemented())

	m := NewManager(WithHostVersion("1.3.0"))
	require.NoError(t, m.Register(p))

	_, err = New("", "").Build()
	assert.True(t, errors.Is(err, ErrInvalidPlugin))
}
