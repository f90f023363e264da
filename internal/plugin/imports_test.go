package plugin

import (
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImport_Statement(t *testing.T) {
	tests := []struct {
		name string
		imp  Import
		want string
	}{
		{"named", Import{Kind: ImportExternal, Package: "dayjs", Imports: []string{"Dayjs"}}, `import { Dayjs } from "dayjs";`},
		{"type only", Import{Kind: ImportInternal, Path: "./types", Imports: []string{"A", "B"}, IsTypeOnly: true}, `import type { A, B } from "./types";`},
		{"default", Import{Kind: ImportExternal, Package: "dayjs", IsDefault: true, DefaultName: "dayjs", Imports: []string{}}, `import dayjs from "dayjs";`},
		{"default and named", Import{Kind: ImportExternal, Package: "react", IsDefault: true, DefaultName: "React", Imports: []string{"useState"}}, `import React, { useState } from "react";`},
		{"side effect", Import{Kind: ImportExternal, Package: "reflect-metadata", Imports: []string{}}, `import "reflect-metadata";`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.imp.Statement())
		})
	}
}

func TestImportManager_Deduplicate(t *testing.T) {
	im := NewImportManager().
		AddInternal("./types", "A").
		AddExternal("dayjs", "Dayjs").
		AddInternal("./types", "B", "A").
		Add(Import{Kind: ImportInternal, Path: "./types", Imports: []string{"C"}, IsTypeOnly: true}).
		Add(Import{Kind: ImportExternal, Package: "./types", Imports: []string{"D"}})

	deduped := im.Deduplicate()
	require.Equal(t, 4, deduped.Len())
	assert.Equal(t, 5, im.Len())

	imports := deduped.Imports()
	assert.Equal(t, []string{"A", "B"}, imports[0].Imports)
	assert.Equal(t, []string{"Dayjs"}, imports[1].Imports)

	assert.Equal(t, []string{
		`import { A, B } from "./types";`,
		`import { Dayjs } from "dayjs";`,
		`import type { C } from "./types";`,
		`import { D } from "./types";`,
	}, im.ToImportStatements())

	// the returned slices are copies
	imports[0].Imports[0] = "Z"
	assert.Equal(t, "A", deduped.Imports()[0].Imports[0])
}

func TestImportManager_Merge(t *testing.T) {
	a := NewImportManager().AddExternal("x", "X")
	b := NewImportManager().AddExternal("x", "Y").AddExternal("y", "Y")

	a.Merge(b).Merge(nil)

	assert.Equal(t, 3, a.Len())
	assert.Equal(t, []string{`import { X, Y } from "x";`, `import { Y } from "y";`}, a.ToImportStatements())
}

func TestGetRequiredImports(t *testing.T) {
	m := NewManager()
	mustRegister(t, m,
		&Plugin{Name: "a", Version: "1.0.0", Imports: []Import{
			{Kind: ImportExternal, Package: "dayjs", Imports: []string{"Dayjs"}},
			{Kind: ImportInternal, Path: "./validators", Imports: []string{"isEmail"}},
		}},
		&Plugin{Name: "b", Version: "1.0.0", Imports: []Import{
			{Kind: ImportExternal, Package: "dayjs", Imports: []string{"Dayjs", "ConfigType"}},
			{Kind: ImportExternal, Package: "dayjs", Imports: []string{"Dayjs"}, IsTypeOnly: true},
		}},
	)

	got := m.GetRequiredImports().Imports()
	require.Len(t, got, 3)
	assert.Equal(t, []string{"Dayjs", "ConfigType"}, got[0].Imports)
	assert.Equal(t, "./validators", got[1].Source())
	assert.True(t, got[2].IsTypeOnly)
}

func TestGenerateImportStatements(t *testing.T) {
	m := NewManager()
	mustRegister(t, m,
		&Plugin{Name: "dates", Version: "1.0.0", Imports: []Import{
			{Kind: ImportExternal, Package: "dayjs", Imports: []string{"Dayjs"}},
		}},
		&Plugin{Name: "sorter", Version: "1.0.0", Hooks: Hooks{
			TransformImports: func(ctx ImportTransformContext) Result[ImportTransformContext] {
				out := make([]string, 0, len(ctx.Imports))
				for _, s := range ctx.Imports {
					if !strings.Contains(s, "unused") {
						out = append(out, s)
					}
				}
				ctx.Imports = out
				return Ok(ctx)
			},
		}},
	)

	res := m.GenerateImportStatements(ImportTransformContext{Imports: []string{
		`import { Dayjs } from "dayjs";`,
		`import { unused } from "./x";`,
	}})
	require.True(t, res.IsOk())
	assert.Equal(t, []string{`import { Dayjs } from "dayjs";`}, res.Value())

	mustRegister(t, m, &Plugin{Name: "broken", Version: "1.0.0", Hooks: Hooks{
		TransformImports: func(ImportTransformContext) Result[ImportTransformContext] {
			return Fail[ImportTransformContext](errors.New("cannot"))
		},
	}})

	res = m.GenerateImportStatements(ImportTransformContext{})
	assert.False(t, res.IsOk())
}

func ExampleManager_GetRequiredImports() {
	m := NewManager()

	p, _ := New("dates", "1.0.0").
		ExternalImport("dayjs", "Dayjs").
		Build()
	q, _ := New("more-dates", "1.0.0").
		ExternalImport("dayjs", "Dayjs", "ConfigType").
		InternalImport("./common", "FluentBuilder").
		Build()

	_ = m.Register(p)
	_ = m.Register(q)

	for _, stmt := range m.GetRequiredImports().ToImportStatements() {
		fmt.Println(stmt)
	}
	// Output:
	// import { Dayjs, ConfigType } from "dayjs";
	// import { FluentBuilder } from "./common";
}
