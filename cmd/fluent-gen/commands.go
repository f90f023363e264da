package main

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fluent-gen/internal/common"
	"fluent-gen/internal/generics"
	"fluent-gen/internal/matcher"
	"fluent-gen/internal/suggest"
	"fluent-gen/internal/transform"
	"fluent-gen/internal/typeinfo"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		builderTypes bool
		contextName  string
		maxDepth     int
		binds        []string
		plugins      []string
	)

	cmd := &cobra.Command{
		Use:   "render <document>",
		Short: "Print the TypeScript type string of a document",
		Long: `Print the TypeScript type string of a type document.

Generic parameters declared on the root object can be bound with --bind.
The value is itself a type document, so a bare name is a primitive:

  fluent-gen render page.yaml --bind T=string
  fluent-gen render page.yaml --bind 'T={kind: reference, name: User}'

Repeated bindings of one parameter are merged with generics.mergeStrategy.
Built-in plugins (see "fluent-gen plugins") rewrite the tree before it is
rendered:

  fluent-gen render user.yaml --plugin date-strings`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := typeinfo.DecodeFile(args[0])
			if err != nil {
				return err
			}

			if len(binds) > 0 {
				if t, err = bindGenerics(t, binds, a.cfg.Strategy()); err != nil {
					return err
				}
			}

			if len(plugins) > 0 {
				if t, err = a.applyPlugins(t, plugins); err != nil {
					return err
				}
			}

			opts := a.cfg.RenderOptions()
			if cmd.Flags().Changed("builder-types") {
				opts.IncludeBuilderTypes = builderTypes
			}
			if contextName != "" {
				opts.ContextTypeName = contextName
			}
			if maxDepth > 0 {
				opts.MaxDepth = maxDepth
			}

			_, err = fmt.Fprintln(a.out, transform.TransformTypeDeep(t, transform.Callbacks{}, opts))

			return err
		},
	}

	cmd.Flags().BoolVar(&builderTypes, "builder-types", false, "render named objects as Name | FluentBuilder<Name, Ctx>")
	cmd.Flags().StringVar(&contextName, "context", "", "context type name used in builder unions")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "maximum nesting depth before rendering unknown")
	cmd.Flags().StringArrayVar(&binds, "bind", nil, "bind a generic parameter, NAME=TYPE (repeatable)")
	cmd.Flags().StringSliceVar(&plugins, "plugin", nil, "apply built-in plugins in order")

	return cmd
}

// bindGenerics registers the root object's generic parameters in a fresh
// context and binds each NAME=TYPE pair in its own scope. The scopes are
// merged in flag order with strategy, so a repeated name is resolved the way
// the configuration asks.
func bindGenerics(t typeinfo.TypeInfo, binds []string, strategy generics.MergeStrategy) (typeinfo.TypeInfo, error) {
	root := generics.NewContext()

	if obj, ok := t.(*typeinfo.Object); ok && len(obj.GenericParams) > 0 {
		if err := root.RegisterGenericParams(obj.GenericParams); err != nil {
			return nil, err
		}
	}

	bound := root.CreateChildContext()

	for _, b := range binds {
		name, doc, ok := strings.Cut(b, "=")
		if !ok || name == "" || doc == "" {
			return nil, errors.Newf("bind %q: want NAME=TYPE", b)
		}

		arg, err := typeinfo.Decode([]byte(doc))
		if err != nil {
			return nil, errors.Wrapf(err, "bind %s", name)
		}

		scope := root.CreateChildContext()
		if err := scope.SetTypeArgument(name, arg); err != nil {
			return nil, err
		}

		if err := bound.Merge(scope, strategy); err != nil {
			return nil, errors.Wrapf(err, "bind %s", name)
		}
	}

	return bound.Substitute(t), nil
}

func newFindCmd(a *app) *cobra.Command {
	var (
		kind       string
		name       string
		properties []string
	)

	cmd := &cobra.Command{
		Use:   "find <document>",
		Short: "List the nodes matching a kind and name",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			m, err := kindMatcher(kind, name, properties)
			if err != nil {
				return err
			}

			t, err := typeinfo.DecodeFile(args[0])
			if err != nil {
				return err
			}

			found := 0

			transform.Walk(t, func(n typeinfo.TypeInfo, v transform.Visit) bool {
				if m.Match(n) {
					found++
					fmt.Fprintf(a.out, "%s\t%s\n", v, transform.String(n))
				}

				return true
			})

			a.log.Info("search finished",
				zap.String("matcher", m.Describe()),
				zap.Int("matches", found))

			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "node kind (object, reference, union, ...)")
	cmd.Flags().StringVar(&name, "name", "", "node name, for named kinds")
	cmd.Flags().StringSliceVar(&properties, "property", nil, "required property names, for objects")
	_ = cmd.MarkFlagRequired("kind")

	return cmd
}

func kindNames() []string {
	names := make([]string, 0, typeinfo.KindTotal-1)
	for k := typeinfo.Kind(1); int(k) < typeinfo.KindTotal; k++ {
		names = append(names, k.String())
	}

	return names
}

func kindMatcher(kind, name string, properties []string) (matcher.Matcher, error) {
	k, ok := typeinfo.ParseKind(kind)
	if !ok {
		err := errors.Newf("unknown kind %q", kind)
		if s, found := common.First(suggest.Closest(kind, kindNames(), suggest.DefaultMinScore, 1)); found {
			err = errors.WithHintf(err, "did you mean %q?", s)
		}

		return nil, err
	}

	if !common.IsEmpty(properties) && k != typeinfo.KindObject {
		return nil, errors.Newf("--property only applies to objects, not %s", k)
	}

	switch k {
	case typeinfo.KindPrimitive:
		if name == "" {
			return matcher.Primitive(), nil
		}
		return matcher.Primitive(name), nil
	case typeinfo.KindObject:
		return matcher.Object(name).WithProperties(properties...), nil
	case typeinfo.KindReference:
		return matcher.Reference(name), nil
	case typeinfo.KindGeneric:
		return matcher.Generic(name), nil
	case typeinfo.KindEnum:
		return matcher.Enum(name), nil
	case typeinfo.KindArray:
		return matcher.Array(), nil
	case typeinfo.KindUnion:
		return matcher.Union(), nil
	case typeinfo.KindIntersection:
		return matcher.Intersection(), nil
	case typeinfo.KindTuple:
		return matcher.Tuple(), nil
	case typeinfo.KindNever:
		return matcher.Never(), nil
	}

	if name != "" {
		return nil, errors.Newf("--name does not apply to %s", k)
	}

	return matcher.Func(k.String(), func(t typeinfo.TypeInfo) bool {
		return !typeinfo.IsNil(t) && t.Kind() == k
	}), nil
}

func newParamsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "params <document>",
		Short: "List the root object's generic parameters in dependency order",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			t, err := typeinfo.DecodeFile(args[0])
			if err != nil {
				return err
			}

			obj, ok := t.(*typeinfo.Object)
			if !ok {
				return errors.Newf("%s: root is %s, want object", args[0], t.Kind())
			}

			ctx := generics.NewContext()
			if err := ctx.RegisterGenericParams(obj.GenericParams); err != nil {
				return err
			}

			ordered, err := ctx.OrderedParams()
			if err != nil {
				return err
			}

			for _, p := range ordered {
				line := p.Name
				if p.Constraint != nil {
					line += " extends " + transform.String(p.Constraint)
				}
				if p.Default != nil {
					line += " = " + transform.String(p.Default)
				}

				fmt.Fprintln(a.out, line)
			}

			return nil
		},
	}
}

func newDumpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dump <document>",
		Short: "Print the decoded type tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			t, err := typeinfo.DecodeFile(args[0])
			if err != nil {
				return err
			}

			cfg := spew.ConfigState{
				Indent:                  "  ",
				DisablePointerAddresses: true,
				DisableCapacities:       true,
				SortKeys:                true,
			}
			cfg.Fdump(a.out, t)

			return nil
		},
	}
}
