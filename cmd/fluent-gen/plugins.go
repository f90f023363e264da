package main

import (
	"fmt"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"fluent-gen/internal/common"
	"fluent-gen/internal/plugin"
	"fluent-gen/internal/suggest"
	"fluent-gen/internal/typeinfo"
)

// builtinPlugins returns fresh copies of the plugins shipped with the CLI.
func builtinPlugins() []*plugin.Plugin {
	dates, _ := plugin.New("date-strings", "1.0.0").
		Description("accept ISO strings wherever a Date is expected").
		RequiresHost("^1").
		TransformType(func(t typeinfo.TypeInfo, _ plugin.TypeContext) plugin.Result[typeinfo.TypeInfo] {
			return plugin.Ok(widenDates(t))
		}).
		Build()

	readonly, _ := plugin.New("readonly", "1.0.0").
		Description("mark every object property readonly").
		RequiresHost(">= 1.2, < 2").
		TransformType(func(t typeinfo.TypeInfo, _ plugin.TypeContext) plugin.Result[typeinfo.TypeInfo] {
			return plugin.Ok(readonlyProperties(t))
		}).
		Build()

	return []*plugin.Plugin{dates, readonly}
}

func widenDates(t typeinfo.TypeInfo) typeinfo.TypeInfo {
	if r, ok := t.(*typeinfo.Reference); ok && r.Name == "Date" && len(r.TypeArguments) == 0 {
		return typeinfo.UnionOf(r, typeinfo.String())
	}

	return typeinfo.MapChildren(t, widenDates)
}

func readonlyProperties(t typeinfo.TypeInfo) typeinfo.TypeInfo {
	out := typeinfo.MapChildren(t, readonlyProperties)

	if obj, ok := out.(*typeinfo.Object); ok {
		for i := range obj.Properties {
			obj.Properties[i].Readonly = true
		}
	}

	return out
}

func builtinNames() []string {
	return common.Map(builtinPlugins(), func(p *plugin.Plugin) string { return p.Name })
}

// newManager returns a registry checked against plugins.hostVersion.
func (a *app) newManager() *plugin.Manager {
	return plugin.NewManager(
		plugin.WithLogger(a.log),
		plugin.WithHostVersion(a.cfg.Plugins.HostVersion),
	)
}

// applyPlugins registers the named built-ins in order and pipes t through
// their transformType hooks.
func (a *app) applyPlugins(t typeinfo.TypeInfo, names []string) (typeinfo.TypeInfo, error) {
	m := a.newManager()
	builtins := builtinPlugins()

	for _, name := range names {
		i := slices.IndexFunc(builtins, func(p *plugin.Plugin) bool { return p.Name == name })
		if i < 0 {
			err := errors.Newf("unknown plugin %q", name)
			if s, found := common.First(suggest.Closest(name, builtinNames(), suggest.DefaultMinScore, 1)); found {
				err = errors.WithHintf(err, "did you mean %q?", s)
			}

			return nil, err
		}

		if err := m.Register(builtins[i]); err != nil {
			return nil, err
		}
	}

	typeName := ""
	if obj, ok := t.(*typeinfo.Object); ok {
		typeName = obj.Name
	}

	return plugin.ExecuteHook(m, plugin.HookCall[typeinfo.TypeInfo]{
		Hook:  plugin.HookTransformType,
		Input: t,
		Args:  []any{plugin.TypeContext{TypeName: typeName}},
	}).Unwrap()
}

func newPluginsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "plugins",
		Short: "List the built-in plugins and whether they accept the configured host version",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			m := a.newManager()

			for _, p := range builtinPlugins() {
				status := "ok"
				if err := m.Register(p); err != nil {
					status = "incompatible"
				}

				fmt.Fprintf(a.out, "%s\t%s\t%s\t%s\n", p, p.HostVersion, status, p.Description)
			}

			return nil
		},
	}
}
