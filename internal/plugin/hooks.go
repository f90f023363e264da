package plugin

import (
	"reflect"

	"github.com/cockroachdb/errors"

	"fluent-gen/internal/typeinfo"
)

// Hooks holds the optional handler slots of a plugin. The threaded value is
// always the first argument; context arguments follow.
type Hooks struct {
	BeforeParse    func(ParseContext) Result[ParseContext]
	AfterParse     func(typeinfo.TypeInfo, ParseContext) Result[typeinfo.TypeInfo]
	BeforeResolve  func(ResolveContext) Result[ResolveContext]
	AfterResolve   func(typeinfo.TypeInfo, ResolveContext) Result[typeinfo.TypeInfo]
	BeforeGenerate func(GenerateContext) Result[GenerateContext]
	AfterGenerate  func(string, GenerateContext) Result[string]

	TransformType        func(typeinfo.TypeInfo, TypeContext) Result[typeinfo.TypeInfo]
	TransformProperty    func(typeinfo.PropertyInfo, PropertyContext) Result[typeinfo.PropertyInfo]
	TransformBuildMethod func(string, BuildMethodContext) Result[string]
	TransformImports     func(ImportTransformContext) Result[ImportTransformContext]

	TransformPropertyMethod func(PropertyMethodContext) Result[PropertyMethodTransform]
	AddCustomMethods        func(BuilderContext) Result[[]CustomMethod]
	TransformValue          func(ValueContext) Result[*ValueTransform]
}

// handler is a hook slot with its types erased, selected once at
// registration time.
type handler func(input any, args []any) Result[any]

// compile turns the non-nil slots into a dispatch table.
func (h *Hooks) compile() map[HookType]handler {
	table := make(map[HookType]handler)

	add := func(t HookType, fn handler, present bool) {
		if present {
			table[t] = fn
		}
	}

	add(HookBeforeParse, unary(h.BeforeParse), h.BeforeParse != nil)
	add(HookAfterParse, binary(h.AfterParse), h.AfterParse != nil)
	add(HookBeforeResolve, unary(h.BeforeResolve), h.BeforeResolve != nil)
	add(HookAfterResolve, binary(h.AfterResolve), h.AfterResolve != nil)
	add(HookBeforeGenerate, unary(h.BeforeGenerate), h.BeforeGenerate != nil)
	add(HookAfterGenerate, binary(h.AfterGenerate), h.AfterGenerate != nil)
	add(HookTransformType, binary(h.TransformType), h.TransformType != nil)
	add(HookTransformProperty, binary(h.TransformProperty), h.TransformProperty != nil)
	add(HookTransformBuildMethod, binary(h.TransformBuildMethod), h.TransformBuildMethod != nil)
	add(HookTransformImports, unary(h.TransformImports), h.TransformImports != nil)
	add(HookTransformPropertyMethod, unary(h.TransformPropertyMethod), h.TransformPropertyMethod != nil)
	add(HookAddCustomMethods, unary(h.AddCustomMethods), h.AddCustomMethods != nil)
	add(HookTransformValue, unary(h.TransformValue), h.TransformValue != nil)

	return table
}

// Implemented lists the hooks with a handler, in HookType order.
func (h *Hooks) Implemented() []HookType {
	table := h.compile()

	var out []HookType

	for t := HookType(1); int(t) < HookTypeTotal; t++ {
		if _, ok := table[t]; ok {
			out = append(out, t)
		}
	}

	return out
}

func unary[I, O any](fn func(I) Result[O]) handler {
	return func(input any, _ []any) Result[any] {
		in, err := as[I](input, "input")
		if err != nil {
			return Fail[any](err)
		}

		return fn(in).erase()
	}
}

func binary[I, C, O any](fn func(I, C) Result[O]) handler {
	return func(input any, args []any) Result[any] {
		in, err := as[I](input, "input")
		if err != nil {
			return Fail[any](err)
		}

		var ctx C
		if len(args) > 0 {
			if ctx, err = as[C](args[0], "context argument"); err != nil {
				return Fail[any](err)
			}
		}

		return fn(in, ctx).erase()
	}
}

// as converts an erased value back, treating an untyped nil as the zero value.
func as[T any](v any, what string) (T, error) {
	var zero T

	if v == nil {
		return zero, nil
	}

	t, ok := v.(T)
	if !ok {
		return zero, errors.Newf("%s has type %T, want %s", what, v, reflect.TypeFor[T]())
	}

	return t, nil
}
